package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonathan/career-analyzer/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when the page cannot be fetched
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed is returned when no text can be pulled from the page
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
)

// URLContent is the cleaned main text of a web page.
type URLContent struct {
	URL         string
	Text        string
	Method      string // "http" or "browser"
	Hash        string
	ProcessedAt string
}

// URLOptions configures IngestFromURL.
type URLOptions struct {
	UseBrowser     bool
	BrowserTimeout time.Duration
	Fetch          *fetch.Options
	Logger         *slog.Logger
}

// IngestFromURL fetches a page, extracts its main text and cleans it.
// When UseBrowser is set and the plain HTTP result is too short, the page is
// rendered in a headless browser and extracted again.
func IngestFromURL(ctx context.Context, urlStr string, opts URLOptions) (*URLContent, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	logger.Debug("fetched page", "url", urlStr, "bytes", len(result.HTML))

	text, err := fetch.ExtractMainText(result.HTML, fetch.ContentSelectors())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	method := "http"

	if opts.UseBrowser && fetch.ShouldUseBrowser(text) {
		logger.Info("page text too short, rendering in browser",
			"url", urlStr, "chars", len(text), "min", fetch.MinContentLength)

		timeout := opts.BrowserTimeout
		if timeout <= 0 {
			timeout = fetch.DefaultTimeout
		}
		html, browserErr := fetch.WithBrowser(ctx, urlStr, timeout, logger)
		if browserErr != nil {
			logger.Warn("browser rendering failed, keeping HTTP content", "url", urlStr, "error", browserErr)
		} else if rendered, extractErr := fetch.ExtractMainText(html, fetch.ContentSelectors()); extractErr != nil {
			logger.Warn("browser content extraction failed", "url", urlStr, "error", extractErr)
		} else {
			text = rendered
			method = "browser"
		}
	}

	cleaned := CleanExtractedText(text)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: page has no readable text", ErrContentExtractionFailed)
	}

	return &URLContent{
		URL:         urlStr,
		Text:        cleaned,
		Method:      method,
		Hash:        ContentHash(cleaned),
		ProcessedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}
