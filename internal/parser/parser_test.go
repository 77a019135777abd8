package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pgschemadiff/internal/ast"
	"pgschemadiff/internal/parser"
)

func TestParseSimpleCreateTable(t *testing.T) {
	schema, errs := parser.ParseSource(`CREATE TABLE users (id INTEGER);`)
	require.Empty(t, errs)
	require.Len(t, schema.Tables, 1)

	tbl := schema.Tables[0]
	require.Equal(t, ast.TableRegular, tbl.Variant)
	require.Equal(t, "users", tbl.Name)
	require.Len(t, tbl.Elements, 1)
	require.Equal(t, ast.ElementColumn, tbl.Elements[0].Kind)
	require.Equal(t, "id", tbl.Elements[0].Column.Name)
	require.Equal(t, "INTEGER", tbl.Elements[0].Column.RawType)
	require.Empty(t, tbl.Elements[0].Column.Constraints)
}

func TestParseColumnConstraintsAndDefault(t *testing.T) {
	schema, errs := parser.ParseSource(
		`CREATE TABLE t (id INT PRIMARY KEY, name VARCHAR(100) NOT NULL DEFAULT '');`)
	require.Empty(t, errs)
	tbl := schema.Tables[0]
	require.Len(t, tbl.Elements, 2)

	id := tbl.Elements[0].Column
	require.Equal(t, ast.ColConstraintPrimaryKey, id.Constraints[0].Kind)

	name := tbl.Elements[1].Column
	require.Equal(t, "VARCHAR(100)", name.RawType)
	require.Equal(t, ast.ColConstraintNotNull, name.Constraints[0].Kind)
	require.Equal(t, ast.ColConstraintDefault, name.Constraints[1].Kind)
	require.Equal(t, ast.Expression("''"), name.Constraints[1].DefaultExpr)
}

func TestParseForeignKeyWithOnDelete(t *testing.T) {
	schema, errs := parser.ParseSource(
		`CREATE TABLE orders (id INT, customer_id INT REFERENCES customers(id) ON DELETE CASCADE);`)
	require.Empty(t, errs)
	col := schema.Tables[0].Elements[1].Column
	require.Equal(t, ast.ColConstraintReferences, col.Constraints[0].Kind)
	require.Equal(t, "customers", col.Constraints[0].RefTable)
	require.Equal(t, "id", col.Constraints[0].RefColumn)
	require.Equal(t, ast.ActionCascade, col.Constraints[0].OnDelete)
}

func TestParseTableConstraintForeignKey(t *testing.T) {
	schema, errs := parser.ParseSource(`CREATE TABLE t (
		id INT,
		order_id INT,
		CONSTRAINT fk_order FOREIGN KEY (order_id) REFERENCES orders (id) ON DELETE RESTRICT
	);`)
	require.Empty(t, errs)
	tbl := schema.Tables[0]
	require.Len(t, tbl.Elements, 3)
	fk := tbl.Elements[2].Constraint
	require.Equal(t, ast.TblConstraintForeignKey, fk.Kind)
	require.Equal(t, "fk_order", fk.Name)
	require.Equal(t, []string{"order_id"}, fk.Columns)
	require.Equal(t, "orders", fk.RefTable)
	require.Equal(t, ast.ActionRestrict, fk.OnDelete)
}

func TestParseCreateTypeEnum(t *testing.T) {
	schema, errs := parser.ParseSource(`CREATE TYPE mood AS ENUM ('sad','ok','happy');`)
	require.Empty(t, errs)
	require.Len(t, schema.Types, 1)
	typ := schema.Types[0]
	require.Equal(t, ast.TypeEnum, typ.Variant)
	require.Equal(t, []string{"sad", "ok", "happy"}, typ.Labels)
}

func TestParsePartitionedTable(t *testing.T) {
	schema, errs := parser.ParseSource(`CREATE TABLE sales (id INT, sold_at DATE) PARTITION BY RANGE (sold_at);`)
	require.Empty(t, errs)
	tbl := schema.Tables[0]
	require.NotNil(t, tbl.PartitionBy)
	require.Equal(t, ast.PartitionRange, tbl.PartitionBy.Kind)
	require.Len(t, tbl.PartitionBy.Elements, 1)
	require.Equal(t, "sold_at", tbl.PartitionBy.Elements[0].ColumnOrExpr)
}

func TestParsePartitionOfRangeBound(t *testing.T) {
	schema, errs := parser.ParseSource(
		`CREATE TABLE sales_2024 PARTITION OF sales FOR VALUES FROM ('2024-01-01') TO ('2025-01-01');`)
	require.Empty(t, errs)
	tbl := schema.Tables[0]
	require.Equal(t, ast.TablePartition, tbl.Variant)
	require.Equal(t, "sales", tbl.Parent)
	require.NotNil(t, tbl.Bound)
	require.Equal(t, ast.BoundRange, tbl.Bound.Kind)
	require.Len(t, tbl.Bound.RangeFrom, 1)
	require.Len(t, tbl.Bound.RangeTo, 1)
}

func TestParsePartitionOfHashBound(t *testing.T) {
	schema, errs := parser.ParseSource(
		`CREATE TABLE p0 PARTITION OF h FOR VALUES WITH (MODULUS 4, REMAINDER 0);`)
	require.Empty(t, errs)
	tbl := schema.Tables[0]
	require.Equal(t, ast.BoundHash, tbl.Bound.Kind)
	require.Equal(t, 4, tbl.Bound.HashModulus)
	require.Equal(t, 0, tbl.Bound.HashRemainder)
}

func TestParseErrorRecoverySkipsBadStatementOnly(t *testing.T) {
	schema, errs := parser.ParseSource(`
		CREATE TABLE a (id INT);
		CREATE BOGUS THING;
		CREATE TABLE b (id INT);
	`)
	require.NotEmpty(t, errs)
	require.Len(t, schema.Tables, 2)
	require.Equal(t, "a", schema.Tables[0].Name)
	require.Equal(t, "b", schema.Tables[1].Name)
}

func TestParsePanicModeSuppressesFollowOnErrorsInSameStatement(t *testing.T) {
	_, errs := parser.ParseSource(`CREATE TABLE t (id !!! INT, name ### TEXT);`)
	require.Len(t, errs, 1)
}

func TestParseLikeClause(t *testing.T) {
	schema, errs := parser.ParseSource(
		`CREATE TABLE copy_of_t (LIKE t INCLUDING DEFAULTS INCLUDING INDEXES);`)
	require.Empty(t, errs)
	tbl := schema.Tables[0]
	require.Equal(t, ast.ElementLike, tbl.Elements[0].Kind)
	like := tbl.Elements[0].Like
	require.Equal(t, "t", like.SourceTable)
	require.Len(t, like.Options, 2)
	require.Equal(t, ast.LikeDefaults, like.Options[0].Option)
	require.True(t, like.Options[0].Include)
}

func TestParseInheritsPreservesOrder(t *testing.T) {
	schema, errs := parser.ParseSource(`CREATE TABLE c (x INT) INHERITS (a, b);`)
	require.Empty(t, errs)
	require.Equal(t, []string{"a", "b"}, schema.Tables[0].Inherits)
}

func TestParseCheckConstraintExpression(t *testing.T) {
	schema, errs := parser.ParseSource(`CREATE TABLE t (age INT CHECK (age >= 0));`)
	require.Empty(t, errs)
	col := schema.Tables[0].Elements[0].Column
	require.Equal(t, ast.Expression("age >= 0"), col.Constraints[0].CheckExpr)
}

func TestParseDeferrableTiming(t *testing.T) {
	schema, errs := parser.ParseSource(
		`CREATE TABLE t (id INT REFERENCES other(id) DEFERRABLE INITIALLY DEFERRED);`)
	require.Empty(t, errs)
	cc := schema.Tables[0].Elements[0].Column.Constraints[0]
	require.True(t, cc.Deferrable.Specified)
	require.True(t, cc.Deferrable.Value)
	require.True(t, cc.InitiallyDeferred.Specified)
	require.True(t, cc.InitiallyDeferred.Value)
}
