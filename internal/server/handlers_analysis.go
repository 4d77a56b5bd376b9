package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/jonathan/career-analyzer/internal/keywords"
	"github.com/jonathan/career-analyzer/internal/pipeline"
	"github.com/jonathan/career-analyzer/internal/recommend"
	"github.com/jonathan/career-analyzer/internal/skills"
	"github.com/jonathan/career-analyzer/internal/types"
)

// validatable is implemented by the request DTOs in types.
type validatable interface {
	Validate() error
}

// decodeRequest decodes a JSON body into req and validates it.
func decodeRequest(r *http.Request, req validatable) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return &ErrValidation{Field: "body", Message: "Invalid request body: " + err.Error()}
	}
	return req.Validate()
}

// handleTextAnalyze runs the pipeline on raw text
func (s *Server) handleTextAnalyze(w http.ResponseWriter, r *http.Request) {
	var req types.TextAnalysisRequest
	if err := decodeRequest(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	out := s.pipeline.Run(r.Context(), pipeline.Request{
		Text:            req.Text,
		AnalysisFlags:   req.AnalysisFlags,
		AnalysisOptions: req.AnalysisOptions,
	})
	s.jsonResponse(w, http.StatusOK, out)
}

// handleTextAnalyzeStream runs the pipeline on raw text, sending one SSE
// event per finished stage and a final "complete" event with the result.
func (s *Server) handleTextAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	var req types.TextAnalysisRequest
	if err := decodeRequest(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	var mu sync.Mutex
	out := s.pipeline.Run(r.Context(), pipeline.Request{
		Text:            req.Text,
		AnalysisFlags:   req.AnalysisFlags,
		AnalysisOptions: req.AnalysisOptions,
		OnProgress: func(ev pipeline.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			sse.WriteEvent("progress", ev) //nolint:errcheck
		},
	})
	if !out.Success {
		sse.WriteError(out.Error)
	}
	sse.WriteComplete(out)
}

// handleURLAnalyze runs the pipeline on the main text of a web page
func (s *Server) handleURLAnalyze(w http.ResponseWriter, r *http.Request) {
	var req types.URLAnalysisRequest
	if err := decodeRequest(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	out := s.pipeline.Run(r.Context(), pipeline.Request{
		URL:             req.URL,
		UseBrowser:      req.UseBrowser,
		AnalysisFlags:   req.AnalysisFlags,
		AnalysisOptions: req.AnalysisOptions,
	})
	s.jsonResponse(w, http.StatusOK, out)
}

// handleKeywordExtract runs keyword extraction only
func (s *Server) handleKeywordExtract(w http.ResponseWriter, r *http.Request) {
	var req types.KeywordExtractRequest
	if err := decodeRequest(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	minConf := req.MinConfidence
	if minConf <= 0 {
		minConf = keywords.DefaultMinConfidence
	}
	summary := keywords.Extract(req.Text, minConf)
	status := http.StatusOK
	if !summary.Success {
		status = http.StatusBadRequest
	}
	s.jsonResponse(w, status, summary)
}

// handleCategorize runs skill categorization only
func (s *Server) handleCategorize(w http.ResponseWriter, r *http.Request) {
	var req types.CategorizeRequest
	if err := decodeRequest(r, &req); err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, skills.Categorize(req.Skills))
}

// handleJobRecommend returns general recommendations for a skill list
func (s *Server) handleJobRecommend(w http.ResponseWriter, r *http.Request) {
	if s.recommender == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Job recommendations are not configured")
		return
	}
	var req recommend.SkillRequest
	if err := decodeRequest(r, &req); err != nil {
		s.fail(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.recommendTimeout)
	defer cancel()
	s.recommendationResponse(w, s.recommender.Recommend(ctx, req))
}

// handleKeywordRecommend returns recommendations focused on one keyword
func (s *Server) handleKeywordRecommend(w http.ResponseWriter, r *http.Request) {
	if s.recommender == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Job recommendations are not configured")
		return
	}
	var req recommend.KeywordRequest
	if err := decodeRequest(r, &req); err != nil {
		s.fail(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.recommendTimeout)
	defer cancel()
	s.recommendationResponse(w, s.recommender.RecommendForKeyword(ctx, req))
}

// recommendationResponse answers 400 for results that failed validation.
func (s *Server) recommendationResponse(w http.ResponseWriter, res *types.RecommendationResult) {
	status := http.StatusOK
	if !res.Success {
		status = http.StatusBadRequest
	}
	s.jsonResponse(w, status, res)
}
