package parser

import (
	"errors"
	"fmt"
)

// ErrEmptyQuery is returned when the query text is empty or whitespace only.
var ErrEmptyQuery = errors.New("empty SQL query")

// UnsupportedError is returned by the feature gate when the query uses a
// construct the structural parser cannot handle.
type UnsupportedError struct {
	Feature string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported SQL: %s", e.Feature)
}

// ParseError is returned when the query text yields no usable statement
// structure at all.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse SQL query: %s", e.Reason)
}
