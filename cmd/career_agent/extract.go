package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-analyzer/internal/extraction"
	"github.com/jonathan/career-analyzer/internal/observability"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract text from an image or document",
	Long: `Extract plain text from an image (OCR), PDF, DOC or DOCX file.

Each format tries its extraction methods in order; the first one that yields text wins.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

var (
	extractLang         string
	extractNoPreprocess bool
	extractJSON         bool
)

func init() {
	extractCmd.Flags().StringVar(&extractLang, "lang", "", "OCR language (defaults to the configured tesseract language)")
	extractCmd.Flags().BoolVar(&extractNoPreprocess, "no-preprocess", false, "Disable OCR image preprocessing")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "Print the result as JSON")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Verbose)

	opts := extraction.DefaultOptions()
	opts.Language = extractLang
	opts.Preprocess = !extractNoPreprocess

	res := newExtractor(cfg, false, logger).Analyze(cmd.Context(), args[0], opts)

	out := cmd.OutOrStdout()
	switch {
	case extractJSON:
		if err := writeJSON(out, res); err != nil {
			return err
		}
	case cfg.Verbose:
		observability.NewPrinter(out).PrintExtraction(&res)
	case res.Success:
		_, _ = out.Write([]byte(res.Text + "\n"))
	}

	if !res.Success {
		return errors.New(res.Error)
	}
	return nil
}
