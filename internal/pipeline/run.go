// Package pipeline composes extraction, keyword extraction, skill
// categorization and job recommendation for a single request.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-analyzer/internal/extraction"
	"github.com/jonathan/career-analyzer/internal/keywords"
	"github.com/jonathan/career-analyzer/internal/recommend"
	"github.com/jonathan/career-analyzer/internal/skills"
	"github.com/jonathan/career-analyzer/internal/types"
)

// DefaultRecommendTimeout bounds the recommendation stage.
const DefaultRecommendTimeout = 60 * time.Second

// NoteRecommendationSkipped is added to a result whose text yielded no keywords
// to recommend jobs for.
const NoteRecommendationSkipped = "job recommendations skipped: no keywords found"

// Stage names used in progress events.
const (
	StageExtraction     = "extraction"
	StageKeywords       = "keywords"
	StageCategorization = "categorization"
	StageRecommendation = "recommendation"
)

// Request errors.
var (
	ErrSourceRequired = errors.New("exactly one of file path, text or URL is required")
	ErrNoText         = errors.New("no text provided")
)

// ProgressEvent reports the completion of one stage.
type ProgressEvent struct {
	RequestID string `json:"request_id"`
	Stage     string `json:"stage"`
	Message   string `json:"message"`
	Content   any    `json:"content,omitempty"`
}

// ProgressCallback is called after each stage. Categorization and
// recommendation run in parallel, so it may be called concurrently.
type ProgressCallback func(event ProgressEvent)

// Extractor produces text from files and web pages.
type Extractor interface {
	Analyze(ctx context.Context, path string, opts extraction.Options) types.ExtractionResult
	ExtractURL(ctx context.Context, url string, useBrowser bool) types.ExtractionResult
}

// JobRecommender turns skills into job recommendations.
type JobRecommender interface {
	Recommend(ctx context.Context, req recommend.SkillRequest) *types.RecommendationResult
}

// Request is one analysis. Exactly one of FilePath, Text and URL is set.
type Request struct {
	FilePath   string
	Text       string
	URL        string
	UseBrowser bool

	types.AnalysisFlags
	types.AnalysisOptions

	OnProgress ProgressCallback
}

// Options configures a Pipeline.
type Options struct {
	RecommendTimeout time.Duration
}

// Pipeline runs requests against shared, read-only components.
type Pipeline struct {
	extractor        Extractor
	recommender      JobRecommender
	recommendTimeout time.Duration
	logger           *slog.Logger
}

// New creates a Pipeline. recommender may be nil when recommendations are
// never requested.
func New(extractor Extractor, recommender JobRecommender, opts Options, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.RecommendTimeout
	if timeout <= 0 {
		timeout = DefaultRecommendTimeout
	}
	return &Pipeline{
		extractor:        extractor,
		recommender:      recommender,
		recommendTimeout: timeout,
		logger:           logger,
	}
}

func emitProgress(req *Request, id, stage, message string, content any) {
	if req.OnProgress != nil {
		req.OnProgress(ProgressEvent{RequestID: id, Stage: stage, Message: message, Content: content})
	}
}

// Run executes the requested stages. It never returns an error or panics:
// every failure is reported through Success and Error.
func (p *Pipeline) Run(ctx context.Context, req Request) (out types.AnalysisResult) {
	out.RequestID = uuid.NewString()
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("pipeline panicked", "request_id", out.RequestID, "panic", r)
			out.Success = false
			out.Error = fmt.Sprintf("Internal error: %v", r)
		}
		out.ProcessedAt = time.Now().UTC().Format(time.RFC3339)
	}()

	extracted, err := p.extract(ctx, req)
	if err != nil {
		out.Error = err.Error()
		return out
	}
	out.Extraction = &extracted
	emitProgress(&req, out.RequestID, StageExtraction,
		fmt.Sprintf("Extracted %d words using %s", extracted.WordCount, extracted.ExtractionMethod), nil)
	if !extracted.Success {
		out.Error = extracted.Error
		return out
	}

	if !req.Any() {
		out.Success = true
		return out
	}

	minConf := req.MinConfidence
	if minConf <= 0 {
		minConf = keywords.DefaultMinConfidence
	}
	kw := keywords.Extract(extracted.Text, minConf)
	out.Keywords = &kw
	emitProgress(&req, out.RequestID, StageKeywords,
		fmt.Sprintf("Found %d keywords in %d categories", kw.UniqueKeywords, len(kw.CategoriesFound)), kw.TopKeywordNames())

	skillNames := kw.TopKeywordNames()
	recommendJobs := req.RecommendJobs
	if recommendJobs && len(skillNames) == 0 {
		recommendJobs = false
		out.Notes = append(out.Notes, NoteRecommendationSkipped)
		emitProgress(&req, out.RequestID, StageRecommendation, NoteRecommendationSkipped, nil)
	}

	g, gCtx := errgroup.WithContext(ctx)
	if req.CategorizeSkills {
		g.Go(func() (err error) {
			defer recoverStage(StageCategorization, &err)
			cat := skills.Categorize(skillNames)
			out.Categorization = &cat
			emitProgress(&req, out.RequestID, StageCategorization,
				fmt.Sprintf("Categorized %d skills into %d sectors", cat.TotalSkills, len(cat.SectorsFound)), nil)
			return nil
		})
	}
	if recommendJobs {
		g.Go(func() (err error) {
			defer recoverStage(StageRecommendation, &err)
			if p.recommender == nil {
				return errors.New("job recommendations are not configured")
			}
			recCtx, cancel := context.WithTimeout(gCtx, p.recommendTimeout)
			defer cancel()
			rec := p.recommender.Recommend(recCtx, recommend.SkillRequest{
				Skills:  skillNames,
				Sectors: req.Sectors,
				TopK:    req.TopK,
			})
			out.Recommendations = rec
			emitProgress(&req, out.RequestID, StageRecommendation,
				fmt.Sprintf("Recommended %d jobs from %s", len(rec.JobRecommendations), rec.Source), nil)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		p.logger.Error("analysis stage failed", "request_id", out.RequestID, "error", err)
		out.Error = err.Error()
		return out
	}

	out.Success = true
	p.logger.Info("analysis finished",
		"request_id", out.RequestID,
		"keywords", kw.UniqueKeywords,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return out
}

func (p *Pipeline) extract(ctx context.Context, req Request) (types.ExtractionResult, error) {
	sources := 0
	for _, s := range []string{req.FilePath, req.Text, req.URL} {
		if strings.TrimSpace(s) != "" {
			sources++
		}
	}
	if sources != 1 {
		if req.FilePath == "" && req.URL == "" && req.Text != "" {
			return types.ExtractionResult{}, ErrNoText
		}
		return types.ExtractionResult{}, ErrSourceRequired
	}

	switch {
	case strings.TrimSpace(req.Text) != "":
		return extraction.FromText(req.Text), nil
	case req.URL != "":
		return p.extractor.ExtractURL(ctx, req.URL, req.UseBrowser), nil
	}

	opts := extraction.DefaultOptions()
	opts.Language = req.Language
	if req.Preprocessing != nil {
		opts.Preprocess = *req.Preprocessing
	}
	return p.extractor.Analyze(ctx, req.FilePath, opts), nil
}

func recoverStage(stage string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s stage failed: %v", stage, r)
	}
}
