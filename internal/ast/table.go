package ast

// TableVariant tags which of the three CREATE TABLE forms a TableStmt
// represents.
type TableVariant int

const (
	TableRegular TableVariant = iota
	TableOfType
	TablePartition
)

// Persistence is a table's durability mode.
type Persistence int

const (
	PersistNormal Persistence = iota
	PersistTemporary
	PersistUnlogged
)

// TempScope is the GLOBAL/LOCAL modifier on a temporary table.
type TempScope int

const (
	TempScopeNone TempScope = iota
	TempScopeGlobal
	TempScopeLocal
)

// OnCommitAction is the ON COMMIT clause. Unspecified is a legitimate
// absent state distinct from the other three named actions.
type OnCommitAction int

const (
	OnCommitUnspecified OnCommitAction = iota
	OnCommitPreserveRows
	OnCommitDeleteRows
	OnCommitDrop
)

// TableStmt is a single parsed or introspected CREATE TABLE statement.
// Fields below "Common attributes" apply to every variant; the grouped
// fields under each variant heading are only meaningful when Variant
// matches.
type TableStmt struct {
	Variant TableVariant
	Name    string

	Persistence  Persistence
	TempScope    TempScope
	IfNotExists  bool
	PartitionBy  *PartitionByClause
	AccessMethod *string
	// WithOptions is a parameter-name -> string-value mapping from a
	// WITH (...) clause. WithOptionsOrder preserves source order for
	// deterministic rendering; WithOptions alone is sufficient for
	// comparison.
	WithOptions      map[string]string
	WithOptionsOrder []string
	WithoutOids      bool
	OnCommit         OnCommitAction
	Tablespace       *string

	// Regular variant.
	Elements []TableElement
	Inherits []string

	// OfType variant.
	OfType string

	// Partition variant.
	Parent    string
	Bound     *PartitionBoundSpec
	IsDefault bool
}

// NewTableStmt returns a TableStmt with every optional field in its
// defined absent state, ready for a parser or introspector to populate
// incrementally.
func NewTableStmt(variant TableVariant, name string) *TableStmt {
	return &TableStmt{
		Variant:     variant,
		Name:        name,
		Persistence: PersistNormal,
		TempScope:   TempScopeNone,
		OnCommit:    OnCommitUnspecified,
		WithOptions: make(map[string]string),
	}
}

// SetWithOption records a WITH-clause parameter, preserving first-seen
// order in WithOptionsOrder.
func (t *TableStmt) SetWithOption(name, value string) {
	if _, exists := t.WithOptions[name]; !exists {
		t.WithOptionsOrder = append(t.WithOptionsOrder, name)
	}
	t.WithOptions[name] = value
}

// TableElementKind tags a TableElement's variant.
type TableElementKind int

const (
	ElementColumn TableElementKind = iota
	ElementTableConstraint
	ElementLike
)

// TableElement is one entry of a table's element list: a column
// definition, a table-level constraint, or a LIKE clause.
type TableElement struct {
	Kind       TableElementKind
	Column     *ColumnDef
	Constraint *TableConstraint
	Like       *LikeClause
}

// LikeOption is one of the closed set of LIKE-clause inclusion options.
type LikeOption int

const (
	LikeComments LikeOption = iota
	LikeCompression
	LikeConstraints
	LikeDefaults
	LikeGenerated
	LikeIdentity
	LikeIndexes
	LikeStatistics
	LikeStorage
	LikeAll
)

// LikeOptionEntry is one INCLUDING/EXCLUDING entry of a LIKE clause.
type LikeOptionEntry struct {
	Option  LikeOption
	Include bool // true: INCLUDING, false: EXCLUDING
}

// LikeClause copies a source table's column/constraint shape into a new
// table definition.
type LikeClause struct {
	SourceTable string
	Options     []LikeOptionEntry
}

// ColumnDef is a single column definition within a table's element list.
type ColumnDef struct {
	Name        string
	RawType     string // includes length/precision/array-bracket suffixes verbatim
	Storage     StorageType
	Compression *string
	Collation   *string
	Constraints []ColumnConstraint
}

// NewColumnDef returns a ColumnDef with all optional fields absent.
func NewColumnDef(name, rawType string) *ColumnDef {
	return &ColumnDef{Name: name, RawType: rawType, Storage: StorageUnspecified}
}
