package eventmodels

import (
	"errors"
	"net/http"
)

// WebError carries the HTTP status a handler should answer with.
type WebError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *WebError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}

	return e.Message
}

func (e *WebError) Unwrap() error {
	return e.Cause
}

func NewWebError(statusCode int, message string, cause error) *WebError {
	return &WebError{
		StatusCode: statusCode,
		Message:    message,
		Cause:      cause,
	}
}

func NewBadRequestError(message string, cause error) *WebError {
	return NewWebError(http.StatusBadRequest, message, cause)
}

// StatusCodeOf falls back to 500 for errors that are not WebErrors.
func StatusCodeOf(err error) int {
	var webErr *WebError
	if errors.As(err, &webErr) {
		return webErr.StatusCode
	}

	if errors.Is(err, InvalidExecutionErr) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
