package extraction

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/jonathan/career-analyzer/internal/types"
)

func (e *Extractor) extractPDF(ctx context.Context, path string) types.ExtractionResult {
	out, name, err := e.runChain(ctx, path, e.pdfMethods)
	if err != nil {
		return types.FailedExtraction(types.ExtractionPDF, fmt.Errorf("All PDF extraction methods failed: %w", err))
	}

	text := out.Text
	if len(out.Pages) > 0 {
		text = joinPages(out.Pages)
	}
	pages := out.PageCount
	if pages == 0 {
		pages = len(out.Pages)
	}

	return finish(types.ExtractionResult{
		ExtractionType:   types.ExtractionPDF,
		ExtractionMethod: name,
		PageCount:        types.IntPtr(pages),
	}, text)
}

// pdfToText runs `pdftotext -layout -enc UTF-8 -eol unix <path> -`.
// Pages are separated by form feeds in the output.
func (e *Extractor) pdfToText(ctx context.Context, path string) (pageText, error) {
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return pageText{}, fmt.Errorf("pdftotext: %w: %s", err, strings.TrimSpace(truncate(string(errb), 512)))
	}
	pages := splitFormFeeds(string(out))
	return pageText{Pages: pages, PageCount: len(pages)}, nil
}

func splitFormFeeds(text string) []string {
	pages := strings.Split(text, "\f")
	// pdftotext terminates every page, including the last, with a form feed
	if len(pages) > 1 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}
	return pages
}

// pdfPureGo reads the text layer with a pure Go parser.
func (e *Extractor) pdfPureGo(_ context.Context, path string) (pageText, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return pageText{}, fmt.Errorf("open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	n := r.NumPage()
	if e.cfg.MaxPages > 0 && n > e.cfg.MaxPages {
		n = e.cfg.MaxPages
	}
	pages := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		txt, err := p.GetPlainText(nil)
		if err != nil {
			return pageText{}, fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, txt)
	}
	return pageText{Pages: pages, PageCount: r.NumPage()}, nil
}

// pdfToOCR rasterizes each page with pdftoppm and runs tesseract on it.
func (e *Extractor) pdfToOCR(ctx context.Context, path string) (pageText, error) {
	tmpDir, err := os.MkdirTemp("", "pdf-ocr-*")
	if err != nil {
		return pageText{}, err
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			e.logger.Warn("failed to remove temp dir", "dir", tmpDir, "error", err)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 300 -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", strconv.Itoa(e.cfg.DPI), "-png", path, prefix)
	if err != nil {
		return pageText{}, fmt.Errorf("pdftoppm: %w: %s", err, strings.TrimSpace(truncate(string(errb), 512)))
	}

	// pdftoppm zero-pads page numbers, so lexical order is page order
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return pageText{}, fmt.Errorf("pdftoppm produced no images")
	}
	total := len(matches)
	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}

	pages := make([]string, 0, len(matches))
	for _, img := range matches {
		txt, err := e.tesseractOCR(ctx, img, e.cfg.TesseractLang)
		if err != nil {
			e.logger.Warn("page OCR failed", "image", filepath.Base(img), "error", err)
			pages = append(pages, "")
			continue
		}
		pages = append(pages, txt)
	}
	return pageText{Pages: pages, PageCount: total}, nil
}
