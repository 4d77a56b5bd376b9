// Package extraction turns images and documents into normalized plain text.
//
// Each format has an ordered list of methods. The first method that yields
// text wins; only the exhaustion of every method is reported as a failure.
package extraction

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/jonathan/career-analyzer/internal/ingestion"
	"github.com/jonathan/career-analyzer/internal/types"
)

// Config configures the external tools and limits used by the Extractor.
type Config struct {
	Tesseract string // binary name or absolute path; if empty -> "tesseract"
	Pdftotext string // if empty -> "pdftotext"
	Pdftoppm  string // if empty -> "pdftoppm"

	TesseractLang string // default "eng"
	TessdataDir   string
	OEM           int // default 3
	PSM           int // default 6, a uniform block of text

	DPI      int // rasterization DPI for scanned PDFs, default 300
	MaxPages int // 0 = no limit

	MaxFileSize int64 // default 10 MiB

	BlurSigma   float64 // Gaussian blur before binarization, default 1.1 (5x5 kernel)
	MorphKernel int     // structuring element size for close/open, default 1

	UseBrowser     bool // allow headless rendering for URL ingestion
	BrowserTimeout time.Duration
}

// Options are per-call OCR settings.
type Options struct {
	Language   string
	Preprocess bool
}

// DefaultOptions enables preprocessing with the configured language.
func DefaultOptions() Options {
	return Options{Preprocess: true}
}

// Extractor dispatches files to the extraction chain for their format.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger

	pdfMethods  []method
	docxMethods []method
	docMethods  []method
}

// New creates an Extractor, filling unset config fields with defaults.
func New(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return newWithRunner(cfg, execRunner{logger: logger}, logger)
}

func newWithRunner(cfg Config, runner Runner, logger *slog.Logger) *Extractor {
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.OEM <= 0 {
		cfg.OEM = 3
	}
	if cfg.PSM <= 0 {
		cfg.PSM = 6
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.BlurSigma <= 0 {
		cfg.BlurSigma = 1.1
	}
	if cfg.MorphKernel <= 0 {
		cfg.MorphKernel = 1
	}

	e := &Extractor{cfg: cfg, runner: runner, logger: logger}
	e.pdfMethods = []method{
		{name: "pdftotext", run: e.pdfToText},
		{name: "pdf-go", run: e.pdfPureGo},
		{name: "pdf-ocr", run: e.pdfToOCR},
	}
	e.docxMethods = []method{
		{name: "docconv", run: e.docxRich},
		{name: "docx-xml", run: e.docxPlain},
		{name: "docx-paragraphs", run: e.docxParagraphs},
	}
	e.docMethods = []method{
		{name: "docconv-doc", run: e.docLegacy},
	}
	return e
}

// MaxFileSize returns the configured upload limit.
func (e *Extractor) MaxFileSize() int64 {
	return e.cfg.MaxFileSize
}

// Extract validates path against kind and runs the matching extraction chain.
// It never returns an error: failures are reported in the result.
func (e *Extractor) Extract(ctx context.Context, path string, kind types.FileKind, opts Options) (res types.ExtractionResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("extraction panicked", "path", path, "panic", r)
			res = types.ExtractionResult{Success: false, Error: fmt.Sprintf("Extraction failed: %v", r)}
		}
	}()

	resolved, _, err := validateFile(path, kind, e.cfg.MaxFileSize)
	if err != nil {
		e.logger.Warn("file rejected", "path", path, "kind", kind, "error", err)
		return types.FailedExtraction(extractionTypeFor(path, kind), err)
	}

	ext := ingestion.NormalizeExt(filepath.Ext(path))
	e.logger.Debug("starting extraction", "path", path, "kind", resolved, "ext", ext)

	if resolved == types.KindImage {
		res = e.extractImage(ctx, path, opts)
	} else {
		switch ext {
		case ".pdf":
			res = e.extractPDF(ctx, path)
		case ".docx":
			res = e.extractDOCX(ctx, path)
		case ".doc":
			res = e.extractDOC(ctx, path)
		}
	}

	e.logger.Info("extraction finished",
		"path", path,
		"type", res.ExtractionType,
		"method", res.ExtractionMethod,
		"success", res.Success,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res
}

// Analyze detects the kind from the extension, extracts, and attaches file metadata.
func (e *Extractor) Analyze(ctx context.Context, path string, opts Options) types.ExtractionResult {
	res := e.Extract(ctx, path, types.KindAuto, opts)
	if meta, err := ingestion.NewFileMetadata(path); err == nil {
		res.Filename = meta.Filename
		res.FileExtension = meta.Extension
		res.FileSizeBytes = meta.SizeBytes
		res.FileSizeFormatted = meta.SizeFormatted
		res.ProcessedAt = meta.ProcessedAt
	}
	return res
}

// FromText wraps caller-supplied text as a direct-input extraction.
func FromText(text string) types.ExtractionResult {
	return finish(types.ExtractionResult{
		ExtractionType:   types.ExtractionDirectInput,
		ExtractionMethod: "direct",
	}, text)
}

// ExtractURL fetches a web page and extracts its main text.
func (e *Extractor) ExtractURL(ctx context.Context, url string, useBrowser bool) types.ExtractionResult {
	content, err := ingestion.IngestFromURL(ctx, url, ingestion.URLOptions{
		UseBrowser:     useBrowser && e.cfg.UseBrowser,
		BrowserTimeout: e.cfg.BrowserTimeout,
		Logger:         e.logger,
	})
	if err != nil {
		e.logger.Warn("url extraction failed", "url", url, "error", err)
		res := types.FailedExtraction(types.ExtractionHTML, err)
		res.SourceURL = url
		return res
	}

	return finish(types.ExtractionResult{
		ExtractionType:   types.ExtractionHTML,
		ExtractionMethod: content.Method,
		SourceURL:        url,
		ProcessedAt:      content.ProcessedAt,
	}, content.Text)
}

// finish cleans text and fills the derived counters.
func finish(res types.ExtractionResult, text string) types.ExtractionResult {
	res.Text = ingestion.CleanExtractedText(text)
	res.WordCount = ingestion.CountWords(res.Text)
	res.CharCount = ingestion.CountChars(res.Text)
	res.Success = true
	return res
}

func extractionTypeFor(path string, kind types.FileKind) types.ExtractionType {
	if kind == types.KindImage {
		return types.ExtractionOCR
	}
	switch ingestion.NormalizeExt(filepath.Ext(path)) {
	case ".pdf":
		return types.ExtractionPDF
	case ".docx":
		return types.ExtractionDOCX
	case ".doc":
		return types.ExtractionDOC
	}
	if detected, ok := DetectKind(path); ok && detected == types.KindImage {
		return types.ExtractionOCR
	}
	return ""
}

// SupportedFormats lists accepted extensions and the size limit.
type SupportedFormats struct {
	ImageFormats     []string `json:"image_formats"`
	DocumentFormats  []string `json:"document_formats"`
	MaxFileSizeBytes int64    `json:"max_file_size_bytes"`
	MaxFileSize      string   `json:"max_file_size"`
}

// Formats returns the formats this extractor accepts.
func (e *Extractor) Formats() SupportedFormats {
	return SupportedFormats{
		ImageFormats:     append([]string(nil), ImageExtensions...),
		DocumentFormats:  append([]string(nil), DocumentExtensions...),
		MaxFileSizeBytes: e.cfg.MaxFileSize,
		MaxFileSize:      ingestion.FormatFileSize(e.cfg.MaxFileSize),
	}
}
