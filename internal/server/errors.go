// Package server provides the HTTP REST API for the skill profiler.
package server

import (
	"fmt"
	"net/http"
)

// ErrJobNotFound indicates the polled job id does not exist.
type ErrJobNotFound struct {
	JobID string
}

func (e *ErrJobNotFound) Error() string {
	return "Job not found"
}

// ErrProfileNotFound indicates no profile exists for the user yet.
type ErrProfileNotFound struct {
	UserID string
}

func (e *ErrProfileNotFound) Error() string {
	return fmt.Sprintf("profile not found: %s", e.UserID)
}

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnsupportedMedia indicates a file upload with a content type the
// extraction pipeline does not accept.
type ErrUnsupportedMedia struct {
	ContentType string
}

func (e *ErrUnsupportedMedia) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.ContentType)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrJobNotFound, *ErrProfileNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrUnsupportedMedia:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}
