package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-analyzer/internal/config"
	"github.com/jonathan/career-analyzer/internal/extraction"
	"github.com/jonathan/career-analyzer/internal/pipeline"
	"github.com/jonathan/career-analyzer/internal/recommend"
	"github.com/jonathan/career-analyzer/internal/types"
)

// loadConfig merges defaults, --config, the environment and the root flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	if flags.Changed("api-key") {
		cfg.APIKey = apiKey
	}
	if flags.Changed("model") {
		cfg.Model = modelName
	}
	if flags.Changed("offline") {
		cfg.DisableRemote = offline
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger writes structured logs to stderr; debug level in verbose mode.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newExtractor(cfg config.Config, useBrowser bool, logger *slog.Logger) *extraction.Extractor {
	ec := cfg.Extraction()
	ec.UseBrowser = useBrowser
	return extraction.New(ec, logger)
}

// newRecommender checks the remote model unless it is disabled.
func newRecommender(ctx context.Context, cfg config.Config, logger *slog.Logger) *recommend.Service {
	return recommend.NewService(ctx, cfg.Recommend(), logger)
}

// recommendTimeout bounds one recommendation call, as the pipeline does.
func recommendTimeout(cfg config.Config) time.Duration {
	if d := cfg.RecommendTimeout(); d > 0 {
		return d
	}
	return pipeline.DefaultRecommendTimeout
}

// stageFlags selects the analysis stages of analyze, batch and watch.
type stageFlags struct {
	keywords      bool
	categorize    bool
	recommend     bool
	topK          int
	minConfidence float64
	sectors       []string
	language      string
	noPreprocess  bool
}

func (s *stageFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&s.keywords, "keywords", false, "Extract keywords")
	cmd.Flags().BoolVar(&s.categorize, "categorize", false, "Categorize the top keywords into sectors")
	cmd.Flags().BoolVar(&s.recommend, "recommend", false, "Recommend jobs from the top keywords")
	cmd.Flags().IntVar(&s.topK, "top-k", recommend.DefaultTopK, "Maximum number of job recommendations")
	cmd.Flags().Float64Var(&s.minConfidence, "min-confidence", 0, "Minimum keyword confidence (default 0.7)")
	cmd.Flags().StringSliceVar(&s.sectors, "sectors", nil, "Only recommend jobs in these sectors (comma-separated)")
	cmd.Flags().StringVar(&s.language, "lang", "", "OCR language (defaults to the configured tesseract language)")
	cmd.Flags().BoolVar(&s.noPreprocess, "no-preprocess", false, "Disable OCR image preprocessing")
}

// request builds the pipeline template. With no stage flag set, every stage runs.
func (s *stageFlags) request() (pipeline.Request, error) {
	if s.minConfidence < 0 || s.minConfidence > 1 {
		return pipeline.Request{}, fmt.Errorf("--min-confidence must be between 0 and 1")
	}
	if s.topK < 0 || s.topK > 50 {
		return pipeline.Request{}, fmt.Errorf("--top-k must be between 0 and 50")
	}

	flags := types.AnalysisFlags{
		ExtractKeywords:  s.keywords,
		CategorizeSkills: s.categorize,
		RecommendJobs:    s.recommend,
	}
	if !flags.Any() {
		flags = types.AnalysisFlags{ExtractKeywords: true, CategorizeSkills: true, RecommendJobs: true}
	}

	preprocess := !s.noPreprocess
	return pipeline.Request{
		AnalysisFlags: flags,
		AnalysisOptions: types.AnalysisOptions{
			Language:      s.language,
			Preprocessing: &preprocess,
			MinConfidence: s.minConfidence,
			Sectors:       cleanList(s.sectors),
			TopK:          s.topK,
		},
	}, nil
}

// newPipeline wires the extractor and, when needed, the recommender.
// The returned close func releases the remote client.
func newPipeline(ctx context.Context, cfg config.Config, req pipeline.Request, useBrowser bool, logger *slog.Logger) (*pipeline.Pipeline, func()) {
	ext := newExtractor(cfg, useBrowser, logger)
	if !req.RecommendJobs {
		return pipeline.New(ext, nil, pipeline.Options{RecommendTimeout: cfg.RecommendTimeout()}, logger), func() {}
	}
	rec := newRecommender(ctx, cfg, logger)
	p := pipeline.New(ext, rec, pipeline.Options{RecommendTimeout: cfg.RecommendTimeout()}, logger)
	return p, func() { _ = rec.Close() }
}

// cleanList trims entries and drops blanks.
func cleanList(items []string) []string {
	var out []string
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
