// Package types provides the value objects passed between the extraction, keyword, skill and recommendation stages.
package types

// ExtractionType identifies which family of extractor produced a text.
type ExtractionType string

const (
	ExtractionOCR         ExtractionType = "ocr"
	ExtractionPDF         ExtractionType = "pdf"
	ExtractionDOCX        ExtractionType = "docx"
	ExtractionDOC         ExtractionType = "doc"
	ExtractionDirectInput ExtractionType = "direct_input"
	ExtractionHTML        ExtractionType = "html"
)

// FileKind is the declared kind of an input file.
type FileKind string

const (
	KindImage    FileKind = "image"
	KindDocument FileKind = "document"
	// KindAuto lets the extractor pick the kind from the file extension.
	KindAuto FileKind = ""
)

// ExtractionResult is the outcome of one extraction call.
// Confidence and PageCount are only set by extractors that can report them.
type ExtractionResult struct {
	Success          bool           `json:"success"`
	Text             string         `json:"text"`
	WordCount        int            `json:"word_count"`
	CharCount        int            `json:"char_count"`
	ExtractionType   ExtractionType `json:"extraction_type,omitempty"`
	ExtractionMethod string         `json:"extraction_method,omitempty"`
	Confidence       *float64       `json:"confidence,omitempty"`
	PageCount        *int           `json:"page_count,omitempty"`
	Language         string         `json:"language,omitempty"`
	Error            string         `json:"error,omitempty"`

	// File metadata, filled by Analyze
	Filename          string `json:"filename,omitempty"`
	FileExtension     string `json:"file_extension,omitempty"`
	FileSizeBytes     int64  `json:"file_size_bytes,omitempty"`
	FileSizeFormatted string `json:"file_size_formatted,omitempty"`
	ProcessedAt       string `json:"processed_at,omitempty"`
	SourceURL         string `json:"source_url,omitempty"`
}

// FailedExtraction builds a failed result carrying only the error message.
func FailedExtraction(kind ExtractionType, err error) ExtractionResult {
	return ExtractionResult{
		Success:        false,
		ExtractionType: kind,
		Error:          err.Error(),
	}
}

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 { return &v }

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }
