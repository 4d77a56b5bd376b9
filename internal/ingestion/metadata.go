package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a byte count with two decimals in the largest unit
// that keeps the value at or above 1, e.g. 1536 -> "1.50 KB".
func FormatFileSize(size int64) string {
	if size <= 0 {
		return "0 Bytes"
	}

	value := float64(size)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", value, sizeUnits[unit])
}

// FileMetadata describes an input file.
type FileMetadata struct {
	Filename      string `json:"filename"`
	Extension     string `json:"file_extension"`
	SizeBytes     int64  `json:"file_size_bytes"`
	SizeFormatted string `json:"file_size_formatted"`
	ProcessedAt   string `json:"processed_at"` // RFC3339
}

// NewFileMetadata stats path and returns its metadata.
func NewFileMetadata(path string) (*FileMetadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return &FileMetadata{
		Filename:      filepath.Base(path),
		Extension:     NormalizeExt(filepath.Ext(path)),
		SizeBytes:     info.Size(),
		SizeFormatted: FormatFileSize(info.Size()),
		ProcessedAt:   time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// NormalizeExt lower-cases an extension and makes sure it starts with a dot.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// ContentHash returns the SHA256 hex digest of content.
func ContentHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
