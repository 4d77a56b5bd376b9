package extraction

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/jonathan/career-analyzer/internal/types"
)

func (e *Extractor) extractImage(ctx context.Context, path string, opts Options) types.ExtractionResult {
	lang := opts.Language
	if lang == "" {
		lang = e.cfg.TesseractLang
	}

	ocrPath := path
	method := "tesseract"
	if opts.Preprocess {
		processed, cleanup, err := e.preprocessImage(path)
		if err != nil {
			e.logger.Warn("image preprocessing failed, using original", "path", path, "error", err)
		} else {
			defer cleanup()
			ocrPath = processed
			method = "tesseract-preprocessed"
		}
	}

	text, err := e.tesseractOCR(ctx, ocrPath, lang)
	if err != nil {
		res := types.FailedExtraction(types.ExtractionOCR, fmt.Errorf("OCR extraction failed: %w", err))
		res.ExtractionMethod = method
		return res
	}

	conf, err := e.tesseractConfidence(ctx, ocrPath, lang)
	if err != nil {
		e.logger.Warn("tesseract confidence unavailable", "path", path, "error", err)
		conf = 0
	}

	return finish(types.ExtractionResult{
		ExtractionType:   types.ExtractionOCR,
		ExtractionMethod: method,
		Confidence:       types.Float64Ptr(conf),
		Language:         lang,
	}, text)
}

func (e *Extractor) tesseractArgs(path, lang string) []string {
	args := []string{path, "stdout", "-l", lang,
		"--oem", strconv.Itoa(e.cfg.OEM),
		"--psm", strconv.Itoa(e.cfg.PSM),
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}
	return args
}

// tesseractOCR runs `tesseract <file> stdout -l <lang> --oem N --psm N`.
func (e *Extractor) tesseractOCR(ctx context.Context, path, lang string) (string, error) {
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, e.tesseractArgs(path, lang)...)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w: %s", err, strings.TrimSpace(truncate(string(errb), 512)))
	}
	return string(out), nil
}

// tesseractConfidence runs tesseract in TSV mode and returns the mean of the
// positive word confidences on tesseract's 0..100 scale, rounded to 2 decimals.
func (e *Extractor) tesseractConfidence(ctx context.Context, path, lang string) (float64, error) {
	args := append(e.tesseractArgs(path, lang), "tsv")
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return 0, fmt.Errorf("tesseract TSV: %w: %s", err, strings.TrimSpace(truncate(string(errb), 512)))
	}
	return meanTSVConfidence(string(out)), nil
}

// meanTSVConfidence averages the conf column of a tesseract TSV dump,
// ignoring non-positive values (block and line rows report -1).
func meanTSVConfidence(tsv string) float64 {
	lines := strings.Split(tsv, "\n")
	if len(lines) == 0 {
		return 0
	}

	confCol := 10
	for i, h := range strings.Split(strings.TrimSpace(lines[0]), "\t") {
		if h == "conf" {
			confCol = i
		}
	}

	var sum, n float64
	for _, ln := range lines[1:] {
		cols := strings.Split(ln, "\t")
		if len(cols) <= confCol {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(cols[confCol]), 64)
		if err != nil || v <= 0 {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0
	}
	return math.Round(sum/n*100) / 100
}

// removeQuietly deletes a temp file, ignoring errors.
func removeQuietly(path string) {
	_ = os.Remove(path)
}
