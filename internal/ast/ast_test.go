package ast_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pgschemadiff/internal/ast"
)

func TestNewTableStmtDefaultsToAbsent(t *testing.T) {
	tbl := ast.NewTableStmt(ast.TableRegular, "users")
	require.Equal(t, ast.PersistNormal, tbl.Persistence)
	require.Equal(t, ast.TempScopeNone, tbl.TempScope)
	require.Equal(t, ast.OnCommitUnspecified, tbl.OnCommit)
	require.False(t, tbl.IfNotExists)
	require.Nil(t, tbl.Tablespace)
	require.Empty(t, tbl.WithOptions)
}

func TestSetWithOptionPreservesOrder(t *testing.T) {
	tbl := ast.NewTableStmt(ast.TableRegular, "t")
	tbl.SetWithOption("fillfactor", "70")
	tbl.SetWithOption("autovacuum_enabled", "false")
	require.Equal(t, []string{"fillfactor", "autovacuum_enabled"}, tbl.WithOptionsOrder)
	require.Equal(t, "70", tbl.WithOptions["fillfactor"])
}

func TestOptBoolDistinguishesUnspecifiedFromFalse(t *testing.T) {
	var absent ast.OptBool
	explicit := ast.SetBool(false)

	require.False(t, absent.Specified)
	require.True(t, explicit.Specified)
	require.False(t, explicit.Value)
}

func TestNewColumnConstraintAbsentFields(t *testing.T) {
	c := ast.NewColumnConstraint(ast.ColConstraintCheck)
	require.Equal(t, ast.ColConstraintCheck, c.Kind)
	require.Empty(t, c.Name)
	require.False(t, c.Deferrable.Specified)
}
