package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/career-analyzer/internal/extraction"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// ErrFileTooLarge indicates an upload above the configured limit
type ErrFileTooLarge struct {
	Limit int64
}

func (e *ErrFileTooLarge) Error() string {
	if e.Limit >= 1<<20 && e.Limit%(1<<20) == 0 {
		return fmt.Sprintf("File too large (max %dMB)", e.Limit>>20)
	}
	return fmt.Sprintf("File too large (max %d bytes)", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		tooLarge   *ErrFileTooLarge
		maxBytes   *http.MaxBytesError
		validation *ErrValidation
		fields     validator.ValidationErrors
		file       *extraction.ValidationError
	)
	switch {
	case errors.As(err, &tooLarge), errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &validation), errors.As(err, &fields), errors.As(err, &file):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// validationMessage renders validator errors as one line, e.g.
// "Text is required; TopK must be <= 50".
func validationMessage(err error) string {
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return err.Error()
	}
	parts := make([]string, 0, len(fields))
	for _, fe := range fields {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case "url":
			parts = append(parts, fe.Field()+" must be a valid URL")
		case "gte":
			parts = append(parts, fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param()))
		case "lte":
			parts = append(parts, fmt.Sprintf("%s must be <= %s", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
