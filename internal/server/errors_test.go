package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-analyzer/internal/extraction"
	"github.com/jonathan/career-analyzer/internal/types"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "file", Message: "No file provided"}
	assert.Equal(t, "No file provided", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestErrFileTooLarge(t *testing.T) {
	assert.Equal(t, "File too large (max 10MB)", (&ErrFileTooLarge{Limit: 10 << 20}).Error())
	assert.Equal(t, "File too large (max 1500 bytes)", (&ErrFileTooLarge{Limit: 1500}).Error())
	assert.Equal(t, http.StatusRequestEntityTooLarge, HTTPStatus(&ErrFileTooLarge{Limit: 1}))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "ErrFileTooLarge",
			err:      &ErrFileTooLarge{Limit: 10 << 20},
			expected: http.StatusRequestEntityTooLarge,
		},
		{
			name:     "MaxBytesError",
			err:      fmt.Errorf("read body: %w", &http.MaxBytesError{Limit: 10}),
			expected: http.StatusRequestEntityTooLarge,
		},
		{
			name:     "ErrValidation",
			err:      &ErrValidation{Field: "file_path", Message: "file_path is required"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "extraction.ValidationError",
			err:      &extraction.ValidationError{Field: "file", Message: "File not found"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "validator errors",
			err:      (&types.TextAnalysisRequest{}).Validate(),
			expected: http.StatusBadRequest,
		},
		{
			name:     "Unknown error",
			err:      assert.AnError,
			expected: http.StatusInternalServerError,
		},
		{
			name:     "Nil error",
			err:      nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestValidationMessage(t *testing.T) {
	err := (&types.JobRecommendRequest{TopK: 99}).Validate()
	require.Error(t, err)

	msg := validationMessage(err)
	assert.Contains(t, msg, "Skills is required")
	assert.Contains(t, msg, "TopK must be <= 50")

	err = (&types.URLAnalysisRequest{URL: "not a url"}).Validate()
	require.Error(t, err)
	assert.Contains(t, validationMessage(err), "URL must be a valid URL")

	assert.Equal(t, "plain", validationMessage(fmt.Errorf("plain")))
}
