package recommend

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonathan/career-analyzer/internal/llm"
	"github.com/jonathan/career-analyzer/internal/ratelimit"
	"github.com/jonathan/career-analyzer/internal/types"
)

const defaultSelectTimeout = 30 * time.Second

// Config controls remote enablement.
type Config struct {
	APIKey        string
	Model         string        // tried before the default candidates
	MinInterval   time.Duration // spacing between remote calls; 0 = ratelimit.DefaultMinInterval
	DisableRemote bool
	SelectTimeout time.Duration
}

// Service picks the remote recommender when it was reachable at startup and
// substitutes the local one whenever a remote call fails.
type Service struct {
	client   llm.Client
	remote   *RemoteRecommender
	fallback *FallbackRecommender
	logger   *slog.Logger
}

// NewService builds a Service. Remote mode is enabled only if an API key is
// set, the client can be created and one model answers a short prompt;
// otherwise every call uses the local table.
func NewService(ctx context.Context, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{fallback: NewFallback(), logger: logger}

	if cfg.DisableRemote {
		logger.Info("remote recommendations disabled by configuration")
		return s
	}
	if cfg.APIKey == "" {
		logger.Warn("GEMINI_API_KEY not set; using local recommendations only")
		return s
	}
	client, err := llm.NewClient(ctx, llm.DefaultGeminiConfig(), cfg.APIKey)
	if err != nil {
		logger.Error("failed to create model client", "error", err)
		return s
	}
	s.enableRemote(ctx, client, cfg)
	return s
}

// NewServiceWithClient is NewService with a caller-supplied client.
func NewServiceWithClient(ctx context.Context, client llm.Client, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{fallback: NewFallback(), logger: logger}
	if client != nil && !cfg.DisableRemote {
		s.enableRemote(ctx, client, cfg)
	}
	return s
}

func (s *Service) enableRemote(ctx context.Context, client llm.Client, cfg Config) {
	timeout := cfg.SelectTimeout
	if timeout <= 0 {
		timeout = defaultSelectTimeout
	}
	selectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	model, err := llm.SelectModel(selectCtx, client, llm.ModelCandidates(cfg.Model))
	if err != nil {
		s.logger.Error("no remote model reachable; using local recommendations only", "error", err)
		_ = client.Close()
		return
	}

	interval := cfg.MinInterval
	if interval == 0 {
		interval = ratelimit.DefaultMinInterval
	}
	s.client = client
	s.remote = NewRemote(client, model, ratelimit.NewGate(interval), s.logger)
	s.logger.Info("remote recommendations enabled", "model", model, "min_interval", interval)
}

// RemoteAvailable reports whether remote mode was enabled at startup.
func (s *Service) RemoteAvailable() bool {
	return s.remote != nil
}

// Model returns the remote model name, or "" in local-only mode.
func (s *Service) Model() string {
	if s.remote == nil {
		return ""
	}
	return s.remote.Model()
}

// Close releases the model client.
func (s *Service) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// Recommend returns general recommendations. Failures are reported in the
// result; a remote failure only shows up as FallbackReason.
func (s *Service) Recommend(ctx context.Context, req SkillRequest) *types.RecommendationResult {
	if len(cleanSkills(req.Skills)) == 0 {
		return s.failed(MsgNoSkills, types.AnalysisGeneral)
	}

	var reason string
	if s.remote != nil {
		res, err := s.remote.Recommend(ctx, req)
		if err == nil {
			return res
		}
		s.logger.Error("remote recommendation failed; using local fallback", "error", err)
		reason = err.Error()
	}

	res, err := s.fallback.Recommend(ctx, req)
	if err != nil {
		return s.failed(err.Error(), types.AnalysisGeneral)
	}
	res.RemoteAvailable = s.RemoteAvailable()
	res.FallbackReason = reason
	return res
}

// RecommendForKeyword returns recommendations centered on one keyword.
func (s *Service) RecommendForKeyword(ctx context.Context, req KeywordRequest) *types.RecommendationResult {
	if len(cleanSkills([]string{req.Keyword})) == 0 {
		return s.failed(MsgNoKeyword, types.AnalysisKeywordSpecific)
	}

	var reason string
	if s.remote != nil {
		res, err := s.remote.RecommendForKeyword(ctx, req)
		if err == nil {
			return res
		}
		s.logger.Error("remote keyword recommendation failed; using local fallback",
			"keyword", req.Keyword, "error", err)
		reason = err.Error()
	}

	res, err := s.fallback.RecommendForKeyword(ctx, req)
	if err != nil {
		return s.failed(err.Error(), types.AnalysisKeywordSpecific)
	}
	res.RemoteAvailable = s.RemoteAvailable()
	res.FallbackReason = reason
	return res
}

func (s *Service) failed(msg, analysis string) *types.RecommendationResult {
	res := types.FailedRecommendation(msg)
	res.AnalysisType = analysis
	res.RemoteAvailable = s.RemoteAvailable()
	return res
}
