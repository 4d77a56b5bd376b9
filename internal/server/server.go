// Package server provides the HTTP JSON API for document analysis and job recommendations.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/career-analyzer/internal/extraction"
	"github.com/jonathan/career-analyzer/internal/pipeline"
	"github.com/jonathan/career-analyzer/internal/ratelimit"
	"github.com/jonathan/career-analyzer/internal/recommend"
	"github.com/jonathan/career-analyzer/internal/types"
)

// FileExtractor is the extraction surface the handlers need.
type FileExtractor interface {
	pipeline.Extractor
	Extract(ctx context.Context, path string, kind types.FileKind, opts extraction.Options) types.ExtractionResult
	Languages(ctx context.Context) []string
	TesseractVersion(ctx context.Context) (string, error)
	Formats() extraction.SupportedFormats
}

// Recommender serves both recommendation modes.
type Recommender interface {
	pipeline.JobRecommender
	RecommendForKeyword(ctx context.Context, req recommend.KeywordRequest) *types.RecommendationResult
	RemoteAvailable() bool
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	extractor   FileExtractor
	recommender Recommender
	pipeline    *pipeline.Pipeline
	rateLimiter *ratelimit.Limiter
	uploadDir   string
	maxUpload   int64

	recommendTimeout time.Duration
}

// Config holds server configuration
type Config struct {
	Port             int
	UploadDir        string            // empty = os.TempDir()
	MaxUploadBytes   int64             // empty = extraction.DefaultMaxFileSize
	RecommendTimeout time.Duration     // bounds every recommendation call; 0 = pipeline default
	RateLimit        *ratelimit.Config // nil = limiter defaults
}

// New creates a new server instance
func New(cfg Config, extractor FileExtractor, recommender Recommender, logger *slog.Logger) *Server {
	s := &Server{
		extractor:   extractor,
		recommender: recommender,
		uploadDir:   cfg.UploadDir,
		maxUpload:   cfg.MaxUploadBytes,
	}
	if s.uploadDir == "" {
		s.uploadDir = os.TempDir()
	}
	if s.maxUpload <= 0 {
		s.maxUpload = extraction.DefaultMaxFileSize
	}
	s.recommendTimeout = cfg.RecommendTimeout
	if s.recommendTimeout <= 0 {
		s.recommendTimeout = pipeline.DefaultRecommendTimeout
	}

	var jobs pipeline.JobRecommender
	if recommender != nil {
		jobs = recommender
	}
	s.pipeline = pipeline.New(extractor, jobs, pipeline.Options{RecommendTimeout: cfg.RecommendTimeout}, logger)

	s.rateLimiter = ratelimit.NewLimiter(cfg.RateLimit)

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// OCR
	mux.HandleFunc("POST /ocr/extract", s.handleOCRUpload)
	mux.HandleFunc("POST /ocr/extract_from_path", s.handleOCRPath)
	mux.HandleFunc("GET /ocr/languages", s.handleLanguages)

	// Documents
	mux.HandleFunc("POST /document/analyze", s.handleDocumentUpload)
	mux.HandleFunc("POST /document/analyze_from_path", s.handleDocumentPath)
	mux.HandleFunc("GET /document/supported_formats", s.handleSupportedFormats)

	// Full pipeline
	mux.HandleFunc("POST /text/analyze", s.handleTextAnalyze)
	mux.HandleFunc("POST /text/analyze/stream", s.handleTextAnalyzeStream)
	mux.HandleFunc("POST /url/analyze", s.handleURLAnalyze)

	// Single stages
	mux.HandleFunc("POST /keywords/extract", s.handleKeywordExtract)
	mux.HandleFunc("POST /skills/categorize", s.handleCategorize)
	mux.HandleFunc("POST /jobs/recommend", s.handleJobRecommend)
	mux.HandleFunc("POST /keywords/recommend", s.handleKeywordRecommend)

	s.handler = s.withRecovery(s.withRateLimit(s.withLogging(s.withCORS(mux))))

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 180 * time.Second, // OCR of scanned PDFs plus a remote model call
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped router.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Close releases background resources without serving.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		s.Close()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	log.Println("Server stopped")
	return nil
}

// withRecovery turns a handler panic into a 500 response
func (s *Server) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[panic] %s %s: %v", r.Method, r.URL.Path, rec)
				s.errorResponse(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth reports which extraction backends are usable
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	version, err := s.extractor.TesseractVersion(r.Context())
	formats := s.extractor.Formats()

	resp := map[string]any{
		"status":  "healthy",
		"service": "Career Document Analysis Service",
		"features": map[string]bool{
			"ocr":                    err == nil,
			"pdf_analysis":           true,
			"docx_analysis":          true,
			"doc_analysis":           true,
			"remote_recommendations": s.recommender != nil && s.recommender.RemoteAvailable(),
		},
		"supported_formats": map[string][]string{
			"images":    formats.ImageFormats,
			"documents": formats.DocumentFormats,
		},
	}
	if err == nil {
		resp["tesseract_version"] = version
	} else {
		resp["tesseract_version"] = nil
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]any{"success": false, "error": message})
}

// fail maps err to a status code and writes it.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	msg := validationMessage(err)
	if status == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
	}
	s.errorResponse(w, status, msg)
}

// extractClientID uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"success":   false,
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
