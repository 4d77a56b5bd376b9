package types

// KeywordCategory is one of the fixed keyword catalog categories.
type KeywordCategory string

const (
	CategoryProgrammingLanguages KeywordCategory = "programming_languages"
	CategoryFrameworksLibraries  KeywordCategory = "frameworks_libraries"
	CategoryDatabasesTools       KeywordCategory = "databases_tools"
	CategoryCertifications       KeywordCategory = "certifications"
	CategoryEducation            KeywordCategory = "education"
	CategoryMethodologies        KeywordCategory = "methodologies"
	CategoryCompanies            KeywordCategory = "companies"
)

// KeywordMatch is a single pattern hit in the normalized text.
type KeywordMatch struct {
	Keyword    string          `json:"keyword"`
	Category   KeywordCategory `json:"category"`
	Context    string          `json:"context"`
	Position   int             `json:"position"`
	Confidence float64         `json:"confidence"`
}

// RankedKeyword aggregates all matches of one case-folded keyword.
type RankedKeyword struct {
	Keyword    string          `json:"keyword"`
	Category   KeywordCategory `json:"category"`
	Frequency  int             `json:"frequency"`
	Confidence float64         `json:"confidence"`
	Score      float64         `json:"score"`
}

// KeywordSummary is the output of keyword extraction.
type KeywordSummary struct {
	Success            bool                               `json:"success"`
	Error              string                             `json:"error,omitempty"`
	KeywordsByCategory map[KeywordCategory][]KeywordMatch `json:"keywords_by_category"`
	TopKeywords        []RankedKeyword                    `json:"top_keywords"`
	TotalKeywordsFound int                                `json:"total_keywords_found"`
	UniqueKeywords     int                                `json:"unique_keywords"`
	CategoriesFound    []KeywordCategory                  `json:"categories_found"`
	MinConfidence      float64                            `json:"min_confidence"`
	TextLength         int                                `json:"text_length"`
}

// TopKeywordNames returns the keyword strings of the ranked list, in rank order.
func (s *KeywordSummary) TopKeywordNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.TopKeywords))
	for _, k := range s.TopKeywords {
		names = append(names, k.Keyword)
	}
	return names
}
