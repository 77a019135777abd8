package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEmptyDocumentFallsBackToDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, "human", cfg.OutputFormat)
	require.Equal(t, Default().Compare, cfg.Compare)
}

func TestParseOverridesCompareOptions(t *testing.T) {
	doc := `
output_format = "json"
source_dsn = "postgres://localhost/src"
target_dsn = "postgres://localhost/tgt"

[compare]
case_sensitive = false
normalize_types = true
ignore_whitespace = true
ignore_constraint_names = true
compare_tablespaces = false
compare_storage_params = false
compare_constraints = true
`
	cfg, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, "json", cfg.OutputFormat)
	require.Equal(t, "postgres://localhost/src", cfg.SourceDSN)
	require.Equal(t, "postgres://localhost/tgt", cfg.TargetDSN)
	require.False(t, cfg.Compare.CaseSensitive)
	require.True(t, cfg.Compare.IgnoreConstraintNames)
	require.False(t, cfg.Compare.CompareTablespaces)
}

func TestParseFileMissingReturnsError(t *testing.T) {
	_, err := ParseFile("/nonexistent/pgdiff.toml")
	require.Error(t, err)
}

func TestParseInvalidTOMLReturnsError(t *testing.T) {
	_, err := Parse(strings.NewReader("this is not [valid toml"))
	require.Error(t, err)
}
