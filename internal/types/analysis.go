package types

// AnalysisResult combines whichever stages ran for one pipeline request.
type AnalysisResult struct {
	RequestID       string                `json:"request_id"`
	Success         bool                  `json:"success"`
	Error           string                `json:"error,omitempty"`
	Extraction      *ExtractionResult     `json:"extraction,omitempty"`
	Keywords        *KeywordSummary       `json:"keywords,omitempty"`
	Categorization  *Categorization       `json:"categorization,omitempty"`
	Recommendations *RecommendationResult `json:"recommendations,omitempty"`
	Notes           []string              `json:"notes,omitempty"`
	ProcessedAt     string                `json:"processed_at"`
}
