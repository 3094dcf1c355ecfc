package router

import (
	"fmt"
	"net/http"
)

// Error is a handler failure with a client visible message.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// BadRequest returns a 400 error.
func BadRequest(format string, args ...any) *Error {
	return &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized returns a 401 error.
func Unauthorized() *Error {
	return &Error{Status: http.StatusUnauthorized, Message: "Unauthorized"}
}

// NotFound returns a 404 error.
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Conflict returns a 409 error.
func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Message: message}
}

// MethodNotAllowed returns a 405 error.
func MethodNotAllowed() *Error {
	return &Error{Status: http.StatusMethodNotAllowed, Message: "Method not allowed"}
}

// StatusCoder is implemented by errors that know their HTTP status.
type StatusCoder interface {
	error
	StatusCode() int
}
