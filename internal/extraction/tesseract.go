package extraction

import (
	"context"
	"fmt"
	"strings"
)

// Languages lists the OCR languages installed for tesseract.
// If tesseract cannot be queried it reports the configured default language.
func (e *Extractor) Languages(ctx context.Context) []string {
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, "--list-langs")
	if err != nil {
		e.logger.Warn("tesseract --list-langs failed", "error", err, "stderr", truncate(string(errb), 512))
		return []string{e.cfg.TesseractLang}
	}

	// older releases print the list to stderr
	raw := string(out)
	if strings.TrimSpace(raw) == "" {
		raw = string(errb)
	}

	var langs []string
	for _, ln := range strings.Split(raw, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" || strings.HasPrefix(ln, "List of available languages") {
			continue
		}
		langs = append(langs, ln)
	}
	if len(langs) == 0 {
		return []string{e.cfg.TesseractLang}
	}
	return langs
}

// TesseractVersion returns the first line of `tesseract --version`.
func (e *Extractor) TesseractVersion(ctx context.Context) (string, error) {
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, "--version")
	if err != nil {
		return "", fmt.Errorf("tesseract --version: %w", err)
	}
	raw := string(out)
	if strings.TrimSpace(raw) == "" {
		raw = string(errb)
	}
	first, _, _ := strings.Cut(strings.TrimSpace(raw), "\n")
	return strings.TrimSpace(first), nil
}
