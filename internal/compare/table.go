package compare

import (
	"strconv"
	"strings"

	"pgschemadiff/internal/ast"
)

// CompareTables computes a TableDiff between a matched pair of tables,
// or nil if they are identical under opts (spec §4.4 "Algorithm — table
// level"). sink receives a warning for any structural oddity the
// comparator degrades past rather than failing on.
func CompareTables(src, tgt *ast.TableStmt, opts Options, sink DiagnosticSink) *TableDiff {
	td := &TableDiff{Name: tgt.Name, Modified: true, SourceTable: src, TargetTable: tgt}

	if src.Variant != tgt.Variant {
		td.TypeChanged = true
		td.addDiff(TableTypeChanged, tgt.Name, variantName(src.Variant), variantName(tgt.Variant), "table variant changed")
	}

	compareInherits(src, tgt, td)
	comparePartitionBy(src, tgt, td, opts)

	if opts.CompareTablespaces {
		compareTablespace(src, tgt, td)
	}
	comparePersistence(src, tgt, td)
	if opts.CompareStorageParams {
		compareStorageParams(src, tgt, td)
	}

	compareColumns(src.Elements, tgt.Elements, td, opts)
	if opts.CompareConstraints {
		compareConstraints(src.Elements, tgt.Elements, td, opts, sink)
	}

	if td.isEmpty() {
		return nil
	}
	td.sort()
	return td
}

func variantName(v ast.TableVariant) string {
	switch v {
	case ast.TableRegular:
		return "Regular"
	case ast.TableOfType:
		return "OfType"
	case ast.TablePartition:
		return "Partition"
	default:
		return "Unknown"
	}
}

// compareInherits applies ordered equality (SPEC_FULL.md §4's
// resolution of spec.md §9's open INHERITS-comparison choice):
// inheritance order controls column precedence on name clashes in
// Postgres, so treating it as a set would hide a real behavioral
// change.
func compareInherits(src, tgt *ast.TableStmt, td *TableDiff) {
	if equalStringSliceOrdered(src.Inherits, tgt.Inherits) {
		return
	}
	td.InheritsChanged = true
	td.addDiff(InheritsChanged, td.Name, formatNameList(src.Inherits), formatNameList(tgt.Inherits), "INHERITS list changed")
}

func equalStringSliceOrdered(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func formatNameList(items []string) string {
	return "(" + strings.Join(items, ", ") + ")"
}

// comparePartitionBy structurally compares the PARTITION BY clause:
// type tag plus element list equality by name-or-expression text,
// collation, and opclass (spec §4.4 step 3).
func comparePartitionBy(src, tgt *ast.TableStmt, td *TableDiff, opts Options) {
	if equalPartitionBy(src.PartitionBy, tgt.PartitionBy, opts) {
		return
	}
	td.PartitionChanged = true
	td.addDiff(PartitionChanged, td.Name, "", "", "PARTITION BY clause changed")
}

func equalPartitionBy(a, b *ast.PartitionByClause, opts Options) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || len(a.Elements) != len(b.Elements) {
		return false
	}
	for i := range a.Elements {
		ea, eb := a.Elements[i], b.Elements[i]
		if ea.ColumnOrExpr != eb.ColumnOrExpr || ea.IsExpr != eb.IsExpr {
			return false
		}
		if ptrStr(ea.Collation) != ptrStr(eb.Collation) || ptrStr(ea.OpClass) != ptrStr(eb.OpClass) {
			return false
		}
	}
	return true
}

func compareTablespace(src, tgt *ast.TableStmt, td *TableDiff) {
	if ptrStr(src.Tablespace) == ptrStr(tgt.Tablespace) {
		return
	}
	td.TablespaceChanged = true
	td.addDiff(TablespaceChanged, td.Name, ptrStr(src.Tablespace), ptrStr(tgt.Tablespace), "tablespace changed")
}

// comparePersistence compares the attributes that always participate in
// comparison regardless of compare_storage_params (spec §4.4 step 1):
// persistence mode, temp scope, ON COMMIT action, WITHOUT OIDS, and
// access method.
func comparePersistence(src, tgt *ast.TableStmt, td *TableDiff) {
	if src.Persistence == tgt.Persistence &&
		src.TempScope == tgt.TempScope &&
		src.OnCommit == tgt.OnCommit &&
		src.WithoutOids == tgt.WithoutOids &&
		ptrStr(src.AccessMethod) == ptrStr(tgt.AccessMethod) {
		return
	}
	td.StorageParamsChanged = true
	td.addDiff(StorageParamsChanged, td.Name, "", "", "table persistence or access method changed")
}

// compareStorageParams compares WITH-options as a set of key→value
// pairs under plain string comparison, gated by compare_storage_params
// (spec §4.4 step 1).
func compareStorageParams(src, tgt *ast.TableStmt, td *TableDiff) {
	if mapsEqual(src.WithOptions, tgt.WithOptions) {
		return
	}
	td.StorageParamsChanged = true
	td.addDiff(StorageParamsChanged, td.Name, "", "", "storage parameters changed")
}

func mapsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

func ptrStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (td *TableDiff) sort() {
	sortNamed(td.AddedColumns)
	sortNamed(td.RemovedColumns)
	sortNamed(td.ModifiedColumns)
	sortNamed(td.AddedConstraints)
	sortNamed(td.RemovedConstraints)
	sortNamed(td.ModifiedConstraints)
}

// itoa is a tiny helper so callers recording a boolean as a Diff's
// OldValue/NewValue text don't each reach for strconv directly.
func itoa(b bool) string { return strconv.FormatBool(b) }
