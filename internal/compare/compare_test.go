package compare

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pgschemadiff/internal/ast"
)

func notNullConstraint() ast.ColumnConstraint {
	return ast.NewColumnConstraint(ast.ColConstraintNotNull)
}

func simpleColumn(name, rawType string, notNull bool) *ast.ColumnDef {
	col := ast.NewColumnDef(name, rawType)
	if notNull {
		col.Constraints = append(col.Constraints, notNullConstraint())
	}
	return col
}

func simpleTable(name string, cols ...*ast.ColumnDef) *ast.TableStmt {
	t := ast.NewTableStmt(ast.TableRegular, name)
	for _, c := range cols {
		t.Elements = append(t.Elements, ast.ColumnElement(c))
	}
	return t
}

func schemaOf(tables ...*ast.TableStmt) *ast.Schema {
	s := ast.NewSchema()
	for _, t := range tables {
		s.AddTable(t)
	}
	return s
}

func TestCompareSchemasReflexive(t *testing.T) {
	s := schemaOf(simpleTable("users",
		simpleColumn("id", "integer", true),
		simpleColumn("email", "text", false),
	))
	d := CompareSchemas(s, s, DefaultOptions(), NopSink{})
	require.True(t, d.IsEmpty())
	require.Equal(t, 0, d.TotalDiffs())
}

func TestCompareSchemasTableAddedAndRemoved(t *testing.T) {
	src := schemaOf(simpleTable("users", simpleColumn("id", "integer", true)))
	tgt := schemaOf(simpleTable("orders", simpleColumn("id", "integer", true)))

	forward := CompareSchemas(src, tgt, DefaultOptions(), NopSink{})
	require.Len(t, forward.AddedTables, 1)
	require.Len(t, forward.RemovedTables, 1)
	require.Equal(t, "orders", forward.AddedTables[0].Name)
	require.Equal(t, "users", forward.RemovedTables[0].Name)

	backward := CompareSchemas(tgt, src, DefaultOptions(), NopSink{})
	require.Len(t, backward.AddedTables, 1)
	require.Len(t, backward.RemovedTables, 1)
	require.Equal(t, forward.AddedTables[0].Name, backward.RemovedTables[0].Name)
	require.Equal(t, forward.RemovedTables[0].Name, backward.AddedTables[0].Name)
}

func TestCompareTablesColumnTypeChangedIsCritical(t *testing.T) {
	src := simpleTable("users", simpleColumn("id", "integer", true))
	tgt := simpleTable("users", simpleColumn("id", "bigint", true))

	td := CompareTables(src, tgt, DefaultOptions(), NopSink{})
	require.NotNil(t, td)
	require.Len(t, td.ModifiedColumns, 1)
	require.True(t, td.ModifiedColumns[0].TypeChanged)
	require.Len(t, td.Diffs, 1)
	require.Equal(t, ColumnTypeChanged, td.Diffs[0].Kind)
	require.Equal(t, Critical, td.Diffs[0].Severity)
}

func TestCompareTablesColumnAddedIsWarning(t *testing.T) {
	src := simpleTable("users", simpleColumn("id", "integer", true))
	tgt := simpleTable("users",
		simpleColumn("id", "integer", true),
		simpleColumn("email", "text", false),
	)

	td := CompareTables(src, tgt, DefaultOptions(), NopSink{})
	require.NotNil(t, td)
	require.Len(t, td.AddedColumns, 1)
	require.Equal(t, "email", td.AddedColumns[0].Name)
	require.Len(t, td.Diffs, 1)
	require.Equal(t, ColumnAdded, td.Diffs[0].Kind)
	require.Equal(t, Warning, td.Diffs[0].Severity)
}

func TestCompareTablesNormalizeTypesCollapsesAlias(t *testing.T) {
	src := simpleTable("users", simpleColumn("id", "varchar(100)", true))
	tgt := simpleTable("users", simpleColumn("id", "character varying(100)", true))

	td := CompareTables(src, tgt, DefaultOptions(), NopSink{})
	require.Nil(t, td, "varchar(100) and character varying(100) normalize to the same spelling")
}

func TestCompareTablesNormalizeTypesOffSeesAliasAsChanged(t *testing.T) {
	opts := DefaultOptions()
	opts.NormalizeTypes = false

	src := simpleTable("users", simpleColumn("id", "varchar(100)", true))
	tgt := simpleTable("users", simpleColumn("id", "character varying(100)", true))

	td := CompareTables(src, tgt, opts, NopSink{})
	require.NotNil(t, td)
	require.Len(t, td.ModifiedColumns, 1)
	require.True(t, td.ModifiedColumns[0].TypeChanged)
}

func TestCompareTablesNullableChangedIsWarning(t *testing.T) {
	src := simpleTable("users", simpleColumn("email", "text", false))
	tgt := simpleTable("users", simpleColumn("email", "text", true))

	td := CompareTables(src, tgt, DefaultOptions(), NopSink{})
	require.NotNil(t, td)
	require.Len(t, td.ModifiedColumns, 1)
	require.True(t, td.ModifiedColumns[0].NullableChanged)
	require.Equal(t, Warning, td.Diffs[0].Severity)
}

func withCheckConstraint(t *ast.TableStmt, name string, expr ast.Expression) *ast.TableStmt {
	tc := ast.NewTableConstraint(ast.TblConstraintCheck)
	tc.Name = name
	tc.CheckExpr = expr
	t.Elements = append(t.Elements, ast.ConstraintElement(&tc))
	return t
}

func TestCompareTablesIgnoreConstraintNamesMatchesByFingerprint(t *testing.T) {
	src := withCheckConstraint(simpleTable("accounts", simpleColumn("balance", "numeric", true)),
		"chk_balance_nonneg", "balance >= 0")
	tgt := withCheckConstraint(simpleTable("accounts", simpleColumn("balance", "numeric", true)),
		"accounts_balance_check", "balance >= 0")

	opts := DefaultOptions()
	opts.IgnoreConstraintNames = true
	td := CompareTables(src, tgt, opts, NopSink{})
	require.Nil(t, td, "renamed-but-identical constraint should produce no diff under ignore_constraint_names")
}

func TestCompareTablesConstraintNameSignificantByDefault(t *testing.T) {
	src := withCheckConstraint(simpleTable("accounts", simpleColumn("balance", "numeric", true)),
		"chk_balance_nonneg", "balance >= 0")
	tgt := withCheckConstraint(simpleTable("accounts", simpleColumn("balance", "numeric", true)),
		"accounts_balance_check", "balance >= 0")

	td := CompareTables(src, tgt, DefaultOptions(), NopSink{})
	require.NotNil(t, td)
	require.Len(t, td.RemovedConstraints, 1)
	require.Len(t, td.AddedConstraints, 1)
}

func TestCompareTablesConstraintModifiedExpression(t *testing.T) {
	src := withCheckConstraint(simpleTable("accounts", simpleColumn("balance", "numeric", true)),
		"chk_balance", "balance >= 0")
	tgt := withCheckConstraint(simpleTable("accounts", simpleColumn("balance", "numeric", true)),
		"chk_balance", "balance > 0")

	td := CompareTables(src, tgt, DefaultOptions(), NopSink{})
	require.NotNil(t, td)
	require.Len(t, td.ModifiedConstraints, 1)
	require.Equal(t, ConstraintModified, td.Diffs[0].Kind)
	require.Equal(t, Warning, td.Diffs[0].Severity)
}

func TestCompareTablesInheritsOrderMatters(t *testing.T) {
	src := simpleTable("child", simpleColumn("id", "integer", true))
	src.Inherits = []string{"a", "b"}
	tgt := simpleTable("child", simpleColumn("id", "integer", true))
	tgt.Inherits = []string{"b", "a"}

	td := CompareTables(src, tgt, DefaultOptions(), NopSink{})
	require.NotNil(t, td)
	require.True(t, td.InheritsChanged)
}

func TestCompareTablesTableFilterExcludesTable(t *testing.T) {
	src := schemaOf(simpleTable("users", simpleColumn("id", "integer", true)))
	tgt := schemaOf(simpleTable("users", simpleColumn("id", "bigint", true)))

	opts := DefaultOptions()
	opts.TableFilter = func(name string) bool { return name != "users" }

	d := CompareSchemas(src, tgt, opts, NopSink{})
	require.True(t, d.IsEmpty())
}

func TestDiffTypeSeverityUnknownKindDefaultsToInfo(t *testing.T) {
	require.Equal(t, Info, DiffTypeSeverity(DiffKind(999)))
}

func TestSinkFuncAdapter(t *testing.T) {
	var got string
	sink := SinkFunc(func(format string, args ...any) { got = format })
	warnf(sink, "hello %s", "world")
	require.Equal(t, "hello %s", got)
}
