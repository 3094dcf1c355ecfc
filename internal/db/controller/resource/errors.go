package resource

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("already exists")
	// ErrNotSortable is returned by Reorder for records without a sort order.
	ErrNotSortable = errors.New("records cannot be reordered")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// EntityError ties a sentinel to the entity it happened on.
type EntityError struct {
	Entity  string
	Message string
	Err     error
}

func (e *EntityError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return e.Entity + " " + e.Err.Error()
}

func (e *EntityError) Unwrap() error { return e.Err }

// StatusCode maps the sentinel to an HTTP status.
func (e *EntityError) StatusCode() int {
	switch {
	case errors.Is(e.Err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(e.Err, ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
