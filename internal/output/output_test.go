package output

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"pgschemadiff/internal/ast"
	"pgschemadiff/internal/compare"
)

func sampleDiff() *compare.SchemaDiff {
	src := ast.NewTableStmt(ast.TableRegular, "users")
	src.Elements = append(src.Elements, ast.ColumnElement(ast.NewColumnDef("id", "integer")))
	tgt := ast.NewTableStmt(ast.TableRegular, "users")
	tgt.Elements = append(tgt.Elements, ast.ColumnElement(ast.NewColumnDef("id", "bigint")))

	return compare.CompareSchemas(
		schemaWith(src),
		schemaWith(tgt),
		compare.DefaultOptions(),
		compare.NopSink{},
	)
}

func schemaWith(t *ast.TableStmt) *ast.Schema {
	s := ast.NewSchema()
	s.AddTable(t)
	return s
}

func TestNewFormatterDefaultsToHuman(t *testing.T) {
	f, err := NewFormatter("")
	require.NoError(t, err)
	require.IsType(t, humanFormatter{}, f)
}

func TestNewFormatterUnknownNameErrors(t *testing.T) {
	_, err := NewFormatter("xml")
	require.Error(t, err)
}

func TestHumanFormatterNoChanges(t *testing.T) {
	f := humanFormatter{}
	out, err := f.FormatDiff(&compare.SchemaDiff{})
	require.NoError(t, err)
	require.Equal(t, "No changes detected.\n", out)
}

func TestHumanFormatterReportsModifiedTable(t *testing.T) {
	f := humanFormatter{}
	out, err := f.FormatDiff(sampleDiff())
	require.NoError(t, err)
	require.Contains(t, out, "~ users")
	require.Contains(t, out, "COLUMN_TYPE_CHANGED")
	require.Contains(t, out, "CRITICAL")
}

func TestJSONFormatterProducesValidJSON(t *testing.T) {
	f := jsonFormatter{}
	out, err := f.FormatDiff(sampleDiff())
	require.NoError(t, err)

	var payload diffPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Equal(t, "json", payload.Format)
	require.Equal(t, 1, payload.Summary.ModifiedTables)
	require.Equal(t, 1, payload.Summary.Critical)
}

func TestJSONFormatterNilDiff(t *testing.T) {
	f := jsonFormatter{}
	out, err := f.FormatDiff(nil)
	require.NoError(t, err)
	require.Contains(t, out, `"format": "json"`)
}
