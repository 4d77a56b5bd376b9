package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/career-analyzer/internal/extraction"
	"github.com/jonathan/career-analyzer/internal/ingestion"
	"github.com/jonathan/career-analyzer/internal/pipeline"
	"github.com/jonathan/career-analyzer/internal/types"
)

// room for multipart boundaries and the small form fields next to the file
const multipartOverhead = 1 << 20

// PathRequest is the body of the *_from_path endpoints.
type PathRequest struct {
	FilePath      string `json:"file_path"`
	Language      string `json:"language,omitempty"`
	Preprocessing *bool  `json:"preprocessing,omitempty"`
}

// upload is a request file saved under a random name.
type upload struct {
	Path     string
	Filename string
}

// saveUpload stores the "file" form field in the upload directory. The
// caller must remove the returned path.
func (s *Server) saveUpload(w http.ResponseWriter, r *http.Request) (*upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload+multipartOverhead)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large") {
			return nil, &ErrFileTooLarge{Limit: s.maxUpload}
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, &ErrValidation{Field: "file", Message: "No file provided"}
		}
		return nil, &ErrValidation{Field: "file", Message: "Invalid multipart form: " + err.Error()}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, &ErrValidation{Field: "file", Message: "No file provided"}
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	if header.Filename == "" || name == "." || name == string(filepath.Separator) {
		return nil, &ErrValidation{Field: "file", Message: "No file selected"}
	}
	if header.Size > s.maxUpload {
		return nil, &ErrFileTooLarge{Limit: s.maxUpload}
	}

	dst := filepath.Join(s.uploadDir, uuid.NewString()+ingestion.NormalizeExt(filepath.Ext(name)))
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}
	n, err := io.Copy(out, io.LimitReader(file, s.maxUpload+1))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		removeUpload(dst)
		return nil, fmt.Errorf("save upload: %w", err)
	}
	if n > s.maxUpload {
		removeUpload(dst)
		return nil, &ErrFileTooLarge{Limit: s.maxUpload}
	}

	return &upload{Path: dst, Filename: name}, nil
}

func removeUpload(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to remove upload %s: %v", path, err)
	}
}

// formBool reads a "true"/"false" form value, defaulting when absent.
func formBool(r *http.Request, key string, def bool) bool {
	v := strings.TrimSpace(r.FormValue(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return def
	}
	return b
}

func (s *Server) decodePathRequest(r *http.Request) (PathRequest, error) {
	var req PathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, &ErrValidation{Field: "body", Message: "Invalid request body: " + err.Error()}
	}
	req.FilePath = strings.TrimSpace(req.FilePath)
	if req.FilePath == "" {
		return req, &ErrValidation{Field: "file_path", Message: "file_path is required"}
	}
	return req, nil
}

func ocrOptions(language string, preprocessing *bool) extraction.Options {
	opts := extraction.DefaultOptions()
	opts.Language = strings.TrimSpace(language)
	if preprocessing != nil {
		opts.Preprocess = *preprocessing
	}
	return opts
}

// handleOCRUpload runs OCR on an uploaded image
func (s *Server) handleOCRUpload(w http.ResponseWriter, r *http.Request) {
	up, err := s.saveUpload(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	defer removeUpload(up.Path)

	preprocess := formBool(r, "preprocessing", true)
	res := s.extractor.Extract(r.Context(), up.Path, types.KindImage, ocrOptions(r.FormValue("language"), &preprocess))
	s.jsonResponse(w, http.StatusOK, res)
}

// handleOCRPath runs OCR on a file already on the server
func (s *Server) handleOCRPath(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodePathRequest(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	res := s.extractor.Extract(r.Context(), req.FilePath, types.KindImage, ocrOptions(req.Language, req.Preprocessing))
	s.jsonResponse(w, http.StatusOK, res)
}

// handleLanguages lists installed OCR languages
func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":   true,
		"languages": s.extractor.Languages(r.Context()),
		"default":   "eng",
	})
}

// handleDocumentUpload analyzes an uploaded document or image. When any
// analysis flag is set the full pipeline runs and an AnalysisResult is
// returned; otherwise the bare ExtractionResult.
func (s *Server) handleDocumentUpload(w http.ResponseWriter, r *http.Request) {
	up, err := s.saveUpload(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	defer removeUpload(up.Path)

	flags := types.AnalysisFlags{
		ExtractKeywords:  formBool(r, "extract_keywords", false),
		CategorizeSkills: formBool(r, "categorize_skills", false),
		RecommendJobs:    formBool(r, "get_job_recommendations", false),
	}
	preprocess := formBool(r, "preprocessing", true)
	opts := types.AnalysisOptions{
		Language:      r.FormValue("language"),
		Preprocessing: &preprocess,
	}
	if v := r.FormValue("min_confidence"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 1 {
			s.fail(w, &ErrValidation{Field: "min_confidence", Message: "min_confidence must be between 0 and 1"})
			return
		}
		opts.MinConfidence = f
	}
	if v := r.FormValue("top_k"); v != "" {
		k, err := strconv.Atoi(v)
		if err != nil || k < 0 || k > 50 {
			s.fail(w, &ErrValidation{Field: "top_k", Message: "top_k must be between 0 and 50"})
			return
		}
		opts.TopK = k
	}
	if v := r.FormValue("sectors"); v != "" {
		for _, sec := range strings.Split(v, ",") {
			if sec = strings.TrimSpace(sec); sec != "" {
				opts.Sectors = append(opts.Sectors, sec)
			}
		}
	}

	if !flags.Any() {
		res := s.extractor.Analyze(r.Context(), up.Path, ocrOptions(opts.Language, opts.Preprocessing))
		renameResult(&res, up.Filename)
		s.jsonResponse(w, http.StatusOK, res)
		return
	}

	out := s.pipeline.Run(r.Context(), pipeline.Request{
		FilePath:        up.Path,
		AnalysisFlags:   flags,
		AnalysisOptions: opts,
	})
	if out.Extraction != nil {
		renameResult(out.Extraction, up.Filename)
	}
	s.jsonResponse(w, http.StatusOK, out)
}

// handleDocumentPath analyzes a document already on the server
func (s *Server) handleDocumentPath(w http.ResponseWriter, r *http.Request) {
	var req types.PathAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, &ErrValidation{Field: "body", Message: "Invalid request body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.FilePath) == "" {
		s.fail(w, &ErrValidation{Field: "file_path", Message: "file_path is required"})
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, err)
		return
	}

	if !req.AnalysisFlags.Any() {
		res := s.extractor.Analyze(r.Context(), req.FilePath, ocrOptions(req.Language, req.Preprocessing))
		s.jsonResponse(w, http.StatusOK, res)
		return
	}

	out := s.pipeline.Run(r.Context(), pipeline.Request{
		FilePath:        req.FilePath,
		AnalysisFlags:   req.AnalysisFlags,
		AnalysisOptions: req.AnalysisOptions,
	})
	s.jsonResponse(w, http.StatusOK, out)
}

// handleSupportedFormats lists accepted extensions
func (s *Server) handleSupportedFormats(w http.ResponseWriter, _ *http.Request) {
	f := s.extractor.Formats()
	all := append(append([]string{}, f.ImageFormats...), f.DocumentFormats...)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"formats": map[string][]string{
			"images":    f.ImageFormats,
			"documents": f.DocumentFormats,
			"all":       all,
		},
		"max_file_size_bytes": f.MaxFileSizeBytes,
		"max_file_size":       f.MaxFileSize,
	})
}

// renameResult reports the client's file name instead of the temp name.
func renameResult(res *types.ExtractionResult, filename string) {
	if res.Success || res.Filename != "" {
		res.Filename = filename
	}
}
