package extraction

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/jonathan/career-analyzer/internal/ingestion"
	"github.com/jonathan/career-analyzer/internal/types"
)

// DefaultMaxFileSize is the largest file accepted for extraction.
const DefaultMaxFileSize int64 = 10 << 20

var (
	// ImageExtensions are the extensions accepted for OCR.
	ImageExtensions = []string{".png", ".jpg", ".jpeg", ".tiff", ".bmp", ".gif"}
	// DocumentExtensions are the extensions accepted for document extraction.
	DocumentExtensions = []string{".pdf", ".doc", ".docx"}
)

// ValidationError is returned when a file is rejected before any extraction runs.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError reports whether err is a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// DetectKind maps a file extension to the kind of extraction it needs.
func DetectKind(path string) (types.FileKind, bool) {
	ext := ingestion.NormalizeExt(filepath.Ext(path))
	switch {
	case slices.Contains(ImageExtensions, ext):
		return types.KindImage, true
	case slices.Contains(DocumentExtensions, ext):
		return types.KindDocument, true
	}
	return types.KindAuto, false
}

// validateFile checks existence, size and extension, in that order.
// It returns the resolved kind and the file size.
func validateFile(path string, kind types.FileKind, maxSize int64) (types.FileKind, int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return kind, 0, &ValidationError{Field: "file", Message: "File not found"}
		}
		return kind, 0, &ValidationError{Field: "file", Message: fmt.Sprintf("Cannot access file: %v", err)}
	}
	if info.IsDir() {
		return kind, 0, &ValidationError{Field: "file", Message: "Path is a directory"}
	}
	if info.Size() > maxSize {
		return kind, info.Size(), &ValidationError{Field: "file", Message: sizeLimitMessage(maxSize)}
	}

	ext := ingestion.NormalizeExt(filepath.Ext(path))
	switch kind {
	case types.KindImage:
		if !slices.Contains(ImageExtensions, ext) {
			return kind, info.Size(), &ValidationError{Field: "extension", Message: fmt.Sprintf("Unsupported image format: %s", ext)}
		}
	case types.KindDocument:
		if !slices.Contains(DocumentExtensions, ext) {
			return kind, info.Size(), &ValidationError{Field: "extension", Message: fmt.Sprintf("Unsupported document format: %s", ext)}
		}
	default:
		detected, ok := DetectKind(path)
		if !ok {
			return kind, info.Size(), &ValidationError{Field: "extension", Message: fmt.Sprintf("Unsupported file format: %s", ext)}
		}
		kind = detected
	}
	return kind, info.Size(), nil
}

// sizeLimitMessage renders the limit the way users see it, e.g. "10MB".
func sizeLimitMessage(maxSize int64) string {
	if maxSize >= 1<<20 && maxSize%(1<<20) == 0 {
		return fmt.Sprintf("File size exceeds %dMB limit", maxSize>>20)
	}
	return fmt.Sprintf("File size exceeds %s limit", ingestion.FormatFileSize(maxSize))
}
