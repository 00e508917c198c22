package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies a service failure. Handlers map kinds to HTTP statuses;
// nothing below the handler layer sees a transport code.
type Kind int

const (
	KindBadRequest Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindUnprocessable
	KindInternal
)

// Error is the failure type returned by services.
type Error struct {
	Kind    Kind
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// New creates an Error with the given kind and message
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Convenience constructors

func BadRequest(message string) *Error {
	return New(KindBadRequest, message)
}

func Forbidden(message string) *Error {
	if message == "" {
		message = "Unauthorized"
	}
	return New(KindForbidden, message)
}

func NotFound(message string) *Error {
	if message == "" {
		message = "Resource not found"
	}
	return New(KindNotFound, message)
}

func Conflict(message string) *Error {
	return New(KindConflict, message)
}

func Internal(message string) *Error {
	if message == "" {
		message = "Internal server error"
	}
	return New(KindInternal, message)
}

// KindOf returns the kind of err, or KindInternal for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

var statusByKind = map[Kind]int{
	KindBadRequest:    http.StatusBadRequest,
	KindUnauthorized:  http.StatusUnauthorized,
	KindForbidden:     http.StatusForbidden,
	KindNotFound:      http.StatusNotFound,
	KindConflict:      http.StatusConflict,
	KindUnprocessable: http.StatusUnprocessableEntity,
	KindInternal:      http.StatusInternalServerError,
}

// StatusOf maps an error to its HTTP status, defaulting to 500.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		if status, ok := statusByKind[e.Kind]; ok {
			return status
		}
	}
	return http.StatusInternalServerError
}

// Respond writes the error envelope for err.
func Respond(c *gin.Context, err error) {
	message := "Internal server error"
	var e *Error
	if errors.As(err, &e) {
		message = e.Message
	}
	c.JSON(StatusOf(err), gin.H{"message": message})
}

// Unauthorized sends a 401 response directly; used by middleware before any
// service is involved.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	c.JSON(http.StatusUnauthorized, gin.H{"message": message})
}
