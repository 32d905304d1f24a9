package server

import (
	"errors"
	"net/http"
)

var (
	// ErrNoFilesSubmitted is returned when the upload has no files part at all.
	ErrNoFilesSubmitted = errors.New("No file part") //nolint:staticcheck // shown to users verbatim
	ErrUploadTooLarge   = errors.New("upload too large")
	ErrInvalidUpload    = errors.New("invalid multipart upload")
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNoFilesSubmitted), errors.Is(err, ErrInvalidUpload):
		return http.StatusBadRequest
	case errors.Is(err, ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
