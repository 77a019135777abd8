package compare

import (
	"sort"
	"strings"

	"pgschemadiff/internal/ast"
)

// Diff is a single flat change record: kind, its fixed severity, the
// table and element it occurred on, and optional before/after text.
type Diff struct {
	Kind        DiffKind
	Severity    Severity
	Table       string
	Element     string
	OldValue    string
	NewValue    string
	Description string
}

// ColumnDiff is the set of attribute changes between a matched pair of
// columns.
type ColumnDiff struct {
	Name              string
	Old               *ast.ColumnDef
	New               *ast.ColumnDef
	TypeChanged       bool
	NullableChanged   bool
	DefaultChanged    bool
	CollationChanged  bool
	StorageChanged    bool
	CompressionChanged bool
}

func (c *ColumnDiff) GetName() string { return c.Name }

// ConstraintDiff is the set of attribute changes between a matched pair
// of constraints, identified by name (or fingerprint, per
// ignore_constraint_names).
type ConstraintDiff struct {
	Name string
	Old  *constraintView
	New  *constraintView
}

func (c *ConstraintDiff) GetName() string { return c.Name }

// TableDiff is the comparison result for one pair of matched tables, or
// a standalone added/removed table. Exactly one of Added, Removed,
// Modified is true (spec §3 "Diff tree" invariant).
type TableDiff struct {
	Name     string
	Added    bool
	Removed  bool
	Modified bool

	SourceTable *ast.TableStmt // set on Removed, and as the "old" side of Modified
	TargetTable *ast.TableStmt // set on Added, and as the "new" side of Modified

	TypeChanged         bool
	TablespaceChanged   bool
	PartitionChanged    bool
	InheritsChanged     bool
	StorageParamsChanged bool

	AddedColumns    []*ColumnDiff
	RemovedColumns  []*ColumnDiff
	ModifiedColumns []*ColumnDiff

	AddedConstraints    []*ConstraintDiff
	RemovedConstraints  []*ConstraintDiff
	ModifiedConstraints []*ConstraintDiff

	Diffs []Diff
}

func (t *TableDiff) GetName() string { return t.Name }

func (t *TableDiff) isEmpty() bool {
	return !t.TypeChanged && !t.TablespaceChanged && !t.PartitionChanged &&
		!t.InheritsChanged && !t.StorageParamsChanged &&
		len(t.AddedColumns) == 0 && len(t.RemovedColumns) == 0 && len(t.ModifiedColumns) == 0 &&
		len(t.AddedConstraints) == 0 && len(t.RemovedConstraints) == 0 && len(t.ModifiedConstraints) == 0
}

func (t *TableDiff) addDiff(kind DiffKind, element, oldValue, newValue, description string) {
	t.Diffs = append(t.Diffs, Diff{
		Kind: kind, Severity: DiffTypeSeverity(kind), Table: t.Name,
		Element: element, OldValue: oldValue, NewValue: newValue, Description: description,
	})
}

// SchemaDiff is the comparison result for a full pair of schemas.
type SchemaDiff struct {
	AddedTables    []*TableDiff
	RemovedTables  []*TableDiff
	ModifiedTables []*TableDiff

	CriticalCount int
	WarningCount  int
	InfoCount     int
}

// IsEmpty reports whether the schema diff carries no changes at all.
func (d *SchemaDiff) IsEmpty() bool {
	return len(d.AddedTables) == 0 && len(d.RemovedTables) == 0 && len(d.ModifiedTables) == 0
}

// TotalDiffs returns the number of flat Diff records across every
// modified table, the invariant exercised by the reflexivity property
// (spec §8: compare_schemas(S, S, default_options).total_diffs == 0).
func (d *SchemaDiff) TotalDiffs() int {
	n := 0
	for _, td := range d.ModifiedTables {
		n += len(td.Diffs)
	}
	return n
}

func (d *SchemaDiff) tallySeverity(td *TableDiff) {
	for _, diff := range td.Diffs {
		switch diff.Severity {
		case Critical:
			d.CriticalCount++
		case Warning:
			d.WarningCount++
		default:
			d.InfoCount++
		}
	}
}

// Named is implemented by every diff-tree node with a stable name, for
// type-safe, case-insensitive sorting.
type Named interface {
	GetName() string
}

func sortNamed[T Named](items []T) {
	if len(items) <= 1 {
		return
	}
	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i].GetName()) < strings.ToLower(items[j].GetName())
	})
}

// CompareSchemas computes a SchemaDiff between src and tgt under opts.
// It is total: it never returns an error, and any structural oddity is
// reported to sink (which may be compare.NopSink{}) rather than
// aborting (spec §4.4 schema-level algorithm, §7). Diff lists preserve
// parse order rather than sorting: removed/modified tables follow
// src.Tables order, added tables follow tgt.Tables order (spec §5).
func CompareSchemas(src, tgt *ast.Schema, opts Options, sink DiagnosticSink) *SchemaDiff {
	d := &SchemaDiff{}

	srcTables, srcCollisions := mapTablesByName(src.Tables, opts)
	tgtTables, tgtCollisions := mapTablesByName(tgt.Tables, opts)
	for _, c := range srcCollisions {
		warnf(sink, "source schema: %s", c)
	}
	for _, c := range tgtCollisions {
		warnf(sink, "target schema: %s", c)
	}

	for _, st := range src.Tables {
		key := st.Name
		if !opts.CaseSensitive {
			key = strings.ToLower(key)
		}
		tt, ok := tgtTables[key]
		if !opts.ShouldCompareTable(st.Name) {
			continue
		}
		if !ok {
			td := &TableDiff{Name: st.Name, Removed: true, SourceTable: st}
			td.addDiff(TableRemoved, st.Name, st.Name, "", "table removed")
			d.RemovedTables = append(d.RemovedTables, td)
			d.tallySeverity(td)
			continue
		}
		td := CompareTables(st, tt, opts, sink)
		if td != nil {
			d.ModifiedTables = append(d.ModifiedTables, td)
			d.tallySeverity(td)
		}
	}
	for _, tt := range tgt.Tables {
		key := tt.Name
		if !opts.CaseSensitive {
			key = strings.ToLower(key)
		}
		if _, ok := srcTables[key]; ok {
			continue
		}
		if !opts.ShouldCompareTable(tt.Name) {
			continue
		}
		td := &TableDiff{Name: tt.Name, Added: true, TargetTable: tt}
		td.addDiff(TableAdded, tt.Name, "", tt.Name, "table added")
		d.AddedTables = append(d.AddedTables, td)
		d.tallySeverity(td)
	}

	return d
}
