package server

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/placard/pkg/errors"
)

// APIError is the JSON body of every failed request.
type APIError struct {
	Status   int      `json:"-"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Subjects []string `json:"subjects,omitempty"`
	RunID    string   `json:"run_id,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Code + ": " + e.Message
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidDefinition, errors.ErrCodeInvalidLayout,
		errors.ErrCodeInvalidRoute, errors.ErrCodeInvalidRender:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// fromError converts err to an APIError. Uncoded errors become opaque
// internal errors.
func fromError(err error) *APIError {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return &APIError{Status: http.StatusGatewayTimeout, Code: string(errors.ErrCodeTimeout), Message: "request timed out"}
	}
	code := errors.GetCode(err)
	if code == "" {
		return &APIError{
			Status:  http.StatusInternalServerError,
			Code:    string(errors.ErrCodeInternal),
			Message: "an unexpected error occurred",
		}
	}
	return &APIError{
		Status:   statusFor(code),
		Code:     string(code),
		Message:  errors.UserMessage(err),
		Subjects: errors.Subjects(err),
	}
}

// newBadRequest creates a 400 error.
func newBadRequest(format string, args ...any) *APIError {
	e := errors.New(errors.ErrCodeInvalidInput, format, args...)
	return &APIError{Status: http.StatusBadRequest, Code: string(e.Code), Message: e.Message}
}
