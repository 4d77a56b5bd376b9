package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-analyzer/internal/types"
	"github.com/jonathan/career-analyzer/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Analyze files as they are added to a directory",
	Long: `Watch <dir> and analyze every supported file that is created or modified,
writing <name>.analysis.json to --out-dir (default: the watched directory). Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

var (
	watchStages   stageFlags
	watchOutDir   string
	watchDebounce time.Duration
)

func init() {
	watchStages.register(watchCmd)
	watchCmd.Flags().StringVar(&watchOutDir, "out-dir", "", "Directory for .analysis.json files (default: the watched directory)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "Quiet period before a changed file is analyzed")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	req, err := watchStages.request()
	if err != nil {
		return err
	}
	if watchOutDir != "" {
		if err := os.MkdirAll(watchOutDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Verbose)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, closeFn := newPipeline(ctx, cfg, req, false, logger)
	defer closeFn()

	out := cmd.OutOrStdout()
	w, err := watch.New(p, watch.Options{
		OutDir:   watchOutDir,
		Template: req,
		Debounce: watchDebounce,
		OnResult: func(path, outPath string, result types.AnalysisResult) {
			status := "ok"
			if !result.Success {
				status = "failed: " + result.Error
			}
			fmt.Fprintf(out, "%s -> %s (%s)\n", path, outPath, status)
		},
	}, logger)
	if err != nil {
		return err
	}
	defer w.Close() //nolint:errcheck

	fmt.Fprintf(out, "Watching %s (Ctrl-C to stop)\n", args[0])
	return w.Run(ctx, args[0])
}
