package types

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// AnalysisFlags selects which stages run after extraction.
type AnalysisFlags struct {
	ExtractKeywords  bool `json:"extract_keywords"`
	CategorizeSkills bool `json:"categorize_skills"`
	RecommendJobs    bool `json:"get_job_recommendations"`
}

// Any reports whether at least one downstream stage is requested.
func (f AnalysisFlags) Any() bool {
	return f.ExtractKeywords || f.CategorizeSkills || f.RecommendJobs
}

// AnalysisOptions carries the optional tuning knobs of an analysis request.
type AnalysisOptions struct {
	Language      string   `json:"language,omitempty"`
	Preprocessing *bool    `json:"preprocessing,omitempty"`
	MinConfidence float64  `json:"min_confidence,omitempty" validate:"gte=0,lte=1"`
	Sectors       []string `json:"sectors,omitempty"`
	TopK          int      `json:"top_k,omitempty" validate:"gte=0,lte=50"`
}

// TextAnalysisRequest analyzes raw text.
type TextAnalysisRequest struct {
	Text string `json:"text" validate:"required"`
	AnalysisFlags
	AnalysisOptions
}

// URLAnalysisRequest analyzes the main text of a web page.
type URLAnalysisRequest struct {
	URL        string `json:"url" validate:"required,url"`
	UseBrowser bool   `json:"use_browser,omitempty"`
	AnalysisFlags
	AnalysisOptions
}

// PathAnalysisRequest analyzes a file already present on the server.
type PathAnalysisRequest struct {
	FilePath string `json:"file_path" validate:"required"`
	AnalysisFlags
	AnalysisOptions
}

// KeywordExtractRequest runs keyword extraction only.
type KeywordExtractRequest struct {
	Text          string  `json:"text" validate:"required"`
	MinConfidence float64 `json:"min_confidence,omitempty" validate:"gte=0,lte=1"`
}

// CategorizeRequest runs skill categorization only.
type CategorizeRequest struct {
	Skills []string `json:"skills" validate:"required"`
}

// JobRecommendRequest asks for general recommendations from a skill list.
type JobRecommendRequest struct {
	Skills  []string `json:"skills" validate:"required"`
	Sectors []string `json:"sectors,omitempty"`
	TopK    int      `json:"top_k,omitempty" validate:"gte=0,lte=50"`
	Context string   `json:"context,omitempty"`
}

// KeywordRecommendRequest asks for recommendations focused on one skill.
type KeywordRecommendRequest struct {
	Keyword       string   `json:"keyword" validate:"required"`
	ContextSkills []string `json:"context_skills,omitempty"`
	TopK          int      `json:"top_k,omitempty" validate:"gte=0,lte=50"`
}

// Validate validates the TextAnalysisRequest using the validator.
func (r *TextAnalysisRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the URLAnalysisRequest using the validator.
func (r *URLAnalysisRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the PathAnalysisRequest using the validator.
func (r *PathAnalysisRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the KeywordExtractRequest using the validator.
func (r *KeywordExtractRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the CategorizeRequest using the validator.
func (r *CategorizeRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the JobRecommendRequest using the validator.
func (r *JobRecommendRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the KeywordRecommendRequest using the validator.
func (r *KeywordRecommendRequest) Validate() error {
	return validate.Struct(r)
}
