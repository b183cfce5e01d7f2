package apperrors

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Error kind names as they appear in the JSON error envelope.
const (
	KindValidation = "ValidationError"
	KindNotFound   = "NotFoundError"
	KindInternal   = "InternalError"
)

// Error is a tagged error variant carrying the kind name and the HTTP status
// it translates to. It is matched exactly once, at the response boundary.
type Error struct {
	Kind    string `json:"error"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *Error) Error() string {
	return e.Message
}

// NewValidation returns a 400 validation error.
func NewValidation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message, Status: http.StatusBadRequest}
}

// NewNotFound returns a 404 not-found error.
func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message, Status: http.StatusNotFound}
}

// NewInternal returns a 500 internal error.
func NewInternal(message string) *Error {
	return &Error{Kind: KindInternal, Message: message, Status: http.StatusInternalServerError}
}

// From classifies any error into a tagged Error. Tagged errors pass through
// unchanged, Fiber errors keep their status code, and everything else becomes
// an internal error with a generic message so store faults are never exposed.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return &Error{
			Kind:    kindForStatus(fiberErr.Code),
			Message: fiberErr.Message,
			Status:  fiberErr.Code,
		}
	}

	return NewInternal("Internal Server Error")
}

func kindForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusNotFound:
		return KindNotFound
	default:
		return KindInternal
	}
}
