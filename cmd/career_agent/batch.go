package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-analyzer/internal/pipeline"
	"github.com/jonathan/career-analyzer/internal/report"
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Analyze every supported file in a directory into an XLSX report",
	Long: `Analyze every image and document directly under <dir> with a bounded worker pool and write
an XLSX workbook with Summary, Keywords and Jobs sheets.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

var (
	batchStages  stageFlags
	batchOut     string
	batchWorkers int
)

func init() {
	batchStages.register(batchCmd)
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "", "Output XLSX path (required)")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "Concurrent analyses (default: number of CPUs)")

	batchCmd.MarkFlagRequired("out") //nolint:errcheck

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	paths, err := pipeline.SupportedFiles(args[0])
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", args[0], err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no supported files in %s", args[0])
	}

	req, err := batchStages.request()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Verbose)

	p, closeFn := newPipeline(cmd.Context(), cfg, req, false, logger)
	defer closeFn()

	items := p.RunBatch(cmd.Context(), paths, req, batchWorkers)
	if err := report.WriteFile(batchOut, items, logger); err != nil {
		return err
	}

	succeeded := 0
	for _, item := range items {
		if item.Result.Success {
			succeeded++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Analyzed %d files (%d succeeded)\n", len(items), succeeded)
	fmt.Fprintf(cmd.OutOrStdout(), "Report: %s\n", batchOut)
	return nil
}
