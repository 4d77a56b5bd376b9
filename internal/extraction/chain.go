package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// errNoText marks a method that ran but produced nothing usable.
var errNoText = errors.New("no text extracted")

// pageText is the raw output of one extraction method.
type pageText struct {
	Pages     []string // per-page text when the method knows page boundaries
	Text      string   // whole-document text otherwise
	PageCount int
}

func (p pageText) empty() bool {
	if strings.TrimSpace(p.Text) != "" {
		return false
	}
	for _, pg := range p.Pages {
		if strings.TrimSpace(pg) != "" {
			return false
		}
	}
	return true
}

// method is one strategy for turning a file into text.
type method struct {
	name string
	run  func(ctx context.Context, path string) (pageText, error)
}

// runChain tries methods in order and stops at the first that yields text.
// The returned error wraps the last method's failure.
func (e *Extractor) runChain(ctx context.Context, path string, methods []method) (pageText, string, error) {
	var lastErr error
	for _, m := range methods {
		if err := ctx.Err(); err != nil {
			return pageText{}, "", err
		}

		out, err := e.safeRun(ctx, m, path)
		if err == nil && out.empty() {
			err = errNoText
		}
		if err == nil {
			e.logger.Debug("extraction method succeeded", "path", path, "method", m.name)
			return out, m.name, nil
		}

		e.logger.Warn("extraction method failed", "path", path, "method", m.name, "error", err)
		lastErr = fmt.Errorf("%s: %w", m.name, err)
	}
	if lastErr == nil {
		lastErr = errors.New("no extraction methods configured")
	}
	return pageText{}, "", lastErr
}

// safeRun converts a panic inside a third-party parser into an error.
func (e *Extractor) safeRun(ctx context.Context, m method, path string) (out pageText, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return m.run(ctx, path)
}

// joinPages renders per-page text with page markers, skipping empty pages.
func joinPages(pages []string) string {
	parts := make([]string, 0, len(pages))
	for i, pg := range pages {
		pg = strings.TrimSpace(pg)
		if pg == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("--- Page %d ---\n%s", i+1, pg))
	}
	return strings.Join(parts, "\n\n")
}
