package ast

// GeneratedStorage is the STORED/VIRTUAL suffix of a GENERATED ALWAYS AS
// column constraint.
type GeneratedStorage int

const (
	GeneratedStorageUnspecified GeneratedStorage = iota
	GeneratedStored
	GeneratedVirtual
)

// IdentityType is the ALWAYS/BY DEFAULT modifier of a GENERATED ... AS
// IDENTITY column constraint.
type IdentityType int

const (
	IdentityUnspecified IdentityType = iota
	IdentityAlways
	IdentityByDefault
)

// ColumnConstraintKind tags a ColumnConstraint's variant.
type ColumnConstraintKind int

const (
	ColConstraintNotNull ColumnConstraintKind = iota
	ColConstraintNull
	ColConstraintCheck
	ColConstraintDefault
	ColConstraintGeneratedAlways
	ColConstraintGeneratedIdentity
	ColConstraintUnique
	ColConstraintPrimaryKey
	ColConstraintReferences
)

// ColumnConstraint is a single constraint attached to a column
// definition. Name is "" when the constraint was not introduced by a
// CONSTRAINT clause. Only the fields relevant to Kind are populated; the
// rest remain at their zero/absent value.
type ColumnConstraint struct {
	Name string
	Kind ColumnConstraintKind

	// Check
	CheckExpr Expression
	NoInherit OptBool

	// Default
	DefaultExpr Expression

	// GeneratedAlways
	GeneratedExpr    Expression
	GeneratedStorage GeneratedStorage

	// GeneratedIdentity
	IdentityType    IdentityType
	SequenceOptions Expression

	// Unique / PrimaryKey
	NullsDistinct OptBool
	IndexParams   *string

	// References
	RefTable  string
	RefColumn string
	RefMatch  ReferentialMatch
	OnDelete  ReferentialAction
	OnUpdate  ReferentialAction

	// Timing, shared across every kind that permits it.
	Deferrable        OptBool
	InitiallyDeferred OptBool
	Enforced          OptBool
}

// NewColumnConstraint returns a ColumnConstraint of the given kind with
// every optional field in its absent state.
func NewColumnConstraint(kind ColumnConstraintKind) ColumnConstraint {
	return ColumnConstraint{Kind: kind}
}

// TableConstraintKind tags a TableConstraint's variant.
type TableConstraintKind int

const (
	TblConstraintCheck TableConstraintKind = iota
	TblConstraintNotNull
	TblConstraintUnique
	TblConstraintPrimaryKey
	TblConstraintExclude
	TblConstraintForeignKey
)

// ExcludeElement is one element of an EXCLUDE constraint's element list:
// a column name or expression paired with its exclusion operator.
type ExcludeElement struct {
	Expr     Expression
	Operator string
}

// TableConstraint is a constraint declared at table scope rather than
// attached to a single column.
type TableConstraint struct {
	Name string
	Kind TableConstraintKind

	// Check
	CheckExpr Expression

	// NotNull
	Column    string
	NoInherit OptBool

	// Unique / PrimaryKey
	Columns       []string
	NullsDistinct OptBool
	IndexParams   *string

	// Exclude
	IndexMethod string
	Elements    []ExcludeElement
	Where       Expression

	// ForeignKey
	RefTable   string
	RefColumns []string
	RefMatch   ReferentialMatch
	OnDelete   ReferentialAction
	OnUpdate   ReferentialAction

	Deferrable        OptBool
	InitiallyDeferred OptBool
	Enforced          OptBool
}

// NewTableConstraint returns a TableConstraint of the given kind with
// every optional field in its absent state.
func NewTableConstraint(kind TableConstraintKind) TableConstraint {
	return TableConstraint{Kind: kind}
}
