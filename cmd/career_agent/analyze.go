package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-analyzer/internal/observability"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Run extraction, keywords, sectors and job recommendations",
	Long: `Analyze a file, raw text (--text) or a web page (--url).

Stages are selected with --keywords, --categorize and --recommend; without any of them every stage runs.
Categorization and recommendations work on the top ranked keywords.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeStages     stageFlags
	analyzeText       string
	analyzeURL        string
	analyzeUseBrowser bool
	analyzeJSON       bool
)

func init() {
	analyzeStages.register(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeText, "text", "", "Analyze this text instead of a file (use - to read stdin)")
	analyzeCmd.Flags().StringVar(&analyzeURL, "url", "", "Analyze the main text of this web page")
	analyzeCmd.Flags().BoolVar(&analyzeUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the result as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	sources := 0
	if len(args) == 1 {
		sources++
	}
	if analyzeText != "" {
		sources++
	}
	if analyzeURL != "" {
		sources++
	}
	if sources != 1 {
		return fmt.Errorf("provide exactly one of <file>, --text or --url")
	}

	req, err := analyzeStages.request()
	if err != nil {
		return err
	}
	switch {
	case len(args) == 1:
		req.FilePath = args[0]
	case analyzeURL != "":
		req.URL = analyzeURL
		req.UseBrowser = analyzeUseBrowser
	default:
		req.Text = analyzeText
		if analyzeText == "-" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			req.Text = string(data)
		}
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Verbose)

	p, closeFn := newPipeline(cmd.Context(), cfg, req, analyzeUseBrowser, logger)
	defer closeFn()

	result := p.Run(cmd.Context(), req)

	out := cmd.OutOrStdout()
	if analyzeJSON {
		if err := writeJSON(out, result); err != nil {
			return err
		}
	} else {
		observability.NewPrinter(out).PrintAnalysis(&result)
	}

	if !result.Success {
		return errors.New(result.Error)
	}
	return nil
}
