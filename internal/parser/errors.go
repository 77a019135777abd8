package parser

import "fmt"

// ParseError is a single accumulated parse failure: message plus the
// 1-based line/column where it was detected. The parser never panics
// across its API boundary — failures become ParseError values collected
// in insertion order and returned alongside whatever Schema could still
// be built.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}
