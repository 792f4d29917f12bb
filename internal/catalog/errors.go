// ABOUTME: Error values for catalog snapshots and query validation
// ABOUTME: Invalid queries are rejected at the boundary, duplicate ids are defects

package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuery is the sentinel wrapped by every InvalidQueryError.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrEmptyID is returned when a snapshot is built from a record without an id.
	ErrEmptyID = errors.New("record has an empty id")

	// ErrDuplicateID is returned when two records in a snapshot share an id.
	ErrDuplicateID = errors.New("duplicate record id")
)

// InvalidQueryError describes which part of a Query is outside its domain.
type InvalidQueryError struct {
	Field  string // "page", "pageSize", "text", "kind" or "environment"
	Reason string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("invalid query: %s %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is(err, ErrInvalidQuery) match.
func (e *InvalidQueryError) Unwrap() error {
	return ErrInvalidQuery
}
