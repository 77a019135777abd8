// Package output renders a compare.SchemaDiff as human-readable text or
// JSON (spec.md §1 names "any output formatter" as an external
// collaborator of the core; this package is that collaborator).
package output

import (
	"fmt"
	"strings"

	"pgschemadiff/internal/compare"
)

// Format is the closed set of output formats pgdiff supports.
type Format string

const (
	FormatHuman Format = "human"
	FormatJSON  Format = "json"
)

// Formatter renders a SchemaDiff.
type Formatter interface {
	FormatDiff(*compare.SchemaDiff) (string, error)
}

// NewFormatter resolves a format name to a Formatter. An empty name
// defaults to human-readable text.
func NewFormatter(name string) (Formatter, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	switch format {
	case "", FormatHuman:
		return humanFormatter{}, nil
	case FormatJSON:
		return jsonFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s; use 'human' or 'json'", name)
	}
}
