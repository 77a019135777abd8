package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pgschemadiff/internal/ast"
	"pgschemadiff/internal/parser"
)

func parseOneTable(t *testing.T, source string) *ast.TableStmt {
	t.Helper()
	schema, errs := parser.ParseSource(source)
	require.Empty(t, errs)
	require.Len(t, schema.Tables, 1)
	return schema.Tables[0]
}

func TestTableRoundTripSimpleColumns(t *testing.T) {
	src := `CREATE TABLE accounts (
		id integer NOT NULL,
		name text,
		balance numeric(10,2) DEFAULT 0
	);`
	first := parseOneTable(t, src)
	rendered := Table(first)
	second := parseOneTable(t, rendered)
	require.Equal(t, first, second)
}

func TestTableRoundTripConstraints(t *testing.T) {
	src := `CREATE TABLE orders (
		id integer,
		account_id integer,
		CONSTRAINT orders_pkey PRIMARY KEY (id),
		CONSTRAINT orders_account_fkey FOREIGN KEY (account_id) REFERENCES accounts (id) ON DELETE CASCADE,
		CONSTRAINT orders_check CHECK (id > 0)
	);`
	first := parseOneTable(t, src)
	rendered := Table(first)
	second := parseOneTable(t, rendered)
	require.Equal(t, first, second)
}

func TestTableRoundTripInheritsAndWithOptions(t *testing.T) {
	src := `CREATE TABLE children (
		id integer
	) INHERITS (parent_a, parent_b) WITH (fillfactor = 70);`
	first := parseOneTable(t, src)
	rendered := Table(first)
	second := parseOneTable(t, rendered)
	require.Equal(t, first, second)
}

func TestTableRoundTripQuotedIdentifier(t *testing.T) {
	src := `CREATE TABLE "Weird Name" (
		"Mixed Case" integer
	);`
	first := parseOneTable(t, src)
	rendered := Table(first)
	require.Contains(t, rendered, `"Weird Name"`)
	second := parseOneTable(t, rendered)
	require.Equal(t, first, second)
}

func TestTableRoundTripListPartitioned(t *testing.T) {
	parent := `CREATE TABLE events (
		id integer,
		region text
	) PARTITION BY LIST (region);`
	first := parseOneTable(t, parent)
	rendered := Table(first)
	second := parseOneTable(t, rendered)
	require.Equal(t, first, second)
}

func TestTableRoundTripPartitionOf(t *testing.T) {
	src := `CREATE TABLE events_us PARTITION OF events FOR VALUES IN ('us', 'ca');`
	first := parseOneTable(t, src)
	rendered := Table(first)
	second := parseOneTable(t, rendered)
	require.Equal(t, first, second)
}

func parseOneType(t *testing.T, source string) *ast.CreateTypeStmt {
	t.Helper()
	schema, errs := parser.ParseSource(source)
	require.Empty(t, errs)
	require.Len(t, schema.Types, 1)
	return schema.Types[0]
}

func TestTypeRoundTripEnum(t *testing.T) {
	src := `CREATE TYPE mood AS ENUM ('sad', 'ok', 'happy');`
	first := parseOneType(t, src)
	rendered := Type(first)
	second := parseOneType(t, rendered)
	require.Equal(t, first, second)
}

func TestTypeRoundTripComposite(t *testing.T) {
	src := `CREATE TYPE point AS (x integer, y integer);`
	first := parseOneType(t, src)
	rendered := Type(first)
	second := parseOneType(t, rendered)
	require.Equal(t, first, second)
}
