package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-analyzer/internal/observability"
	"github.com/jonathan/career-analyzer/internal/recommend"
	"github.com/jonathan/career-analyzer/internal/types"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend jobs for a skill list or a single keyword",
	Long: `Recommend jobs either from a list of skills (--skills) or for one keyword (--keyword).

Keyword recommendations include a learning path, an estimated time to proficiency and a difficulty.
The remote model is used when GEMINI_API_KEY is set and reachable; otherwise built-in mappings are used.`,
	Args: cobra.NoArgs,
	RunE: runRecommend,
}

var (
	recSkills  []string
	recKeyword string
	recContext []string
	recSectors []string
	recTopK    int
	recJSON    bool
)

func init() {
	recommendCmd.Flags().StringSliceVar(&recSkills, "skills", nil, "Skills to recommend jobs for (comma-separated)")
	recommendCmd.Flags().StringVar(&recKeyword, "keyword", "", "Single keyword to recommend jobs for (mutually exclusive with --skills)")
	recommendCmd.Flags().StringSliceVar(&recContext, "context", nil, "Additional skills the candidate has (with --keyword)")
	recommendCmd.Flags().StringSliceVar(&recSectors, "sectors", nil, "Only keep jobs in these sectors (with --skills)")
	recommendCmd.Flags().IntVar(&recTopK, "top-k", 0, "Maximum number of jobs (default 10 for --skills, 5 for --keyword)")
	recommendCmd.Flags().BoolVar(&recJSON, "json", false, "Print the result as JSON")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	skills := cleanList(recSkills)
	if len(skills) == 0 && recKeyword == "" {
		return fmt.Errorf("either --skills or --keyword must be provided")
	}
	if len(skills) > 0 && recKeyword != "" {
		return fmt.Errorf("--skills and --keyword are mutually exclusive; provide only one")
	}
	if recTopK < 0 || recTopK > 50 {
		return fmt.Errorf("--top-k must be between 0 and 50")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Verbose)

	svc := newRecommender(cmd.Context(), cfg, logger)
	defer svc.Close() //nolint:errcheck

	ctx, cancel := context.WithTimeout(cmd.Context(), recommendTimeout(cfg))
	defer cancel()

	var res *types.RecommendationResult
	if recKeyword != "" {
		res = svc.RecommendForKeyword(ctx, recommend.KeywordRequest{
			Keyword:       recKeyword,
			ContextSkills: cleanList(recContext),
			TopK:          recTopK,
		})
	} else {
		res = svc.Recommend(ctx, recommend.SkillRequest{
			Skills:  skills,
			Sectors: cleanList(recSectors),
			TopK:    recTopK,
		})
	}

	out := cmd.OutOrStdout()
	if recJSON {
		if err := writeJSON(out, res); err != nil {
			return err
		}
	} else {
		observability.NewPrinter(out).PrintRecommendations(res)
	}

	if !res.Success {
		return errors.New(res.Error)
	}
	return nil
}
