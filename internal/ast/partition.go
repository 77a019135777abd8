package ast

// PartitionKind is the RANGE/LIST/HASH tag of a PARTITION BY clause.
type PartitionKind int

const (
	PartitionRange PartitionKind = iota
	PartitionList
	PartitionHash
)

// PartitionElement is one column or expression of a PARTITION BY
// element list.
type PartitionElement struct {
	ColumnOrExpr string
	IsExpr       bool
	Collation    *string
	OpClass      *string
}

// PartitionByClause is a table's PARTITION BY clause.
type PartitionByClause struct {
	Kind     PartitionKind
	Elements []PartitionElement
}

// PartitionBoundKind tags a PartitionBoundSpec's variant.
type PartitionBoundKind int

const (
	BoundIn PartitionBoundKind = iota
	BoundRange
	BoundHash
	BoundDefault
)

// PartitionBoundValue is one bound in a RANGE partition's FROM/TO list:
// either MINVALUE, MAXVALUE, or an explicit expression.
type PartitionBoundValue struct {
	IsMinValue bool
	IsMaxValue bool
	Expr       Expression
}

// PartitionBoundSpec is the FOR VALUES clause of a partition table.
type PartitionBoundSpec struct {
	Kind PartitionBoundKind

	// In
	InExprs []Expression

	// Range
	RangeFrom []PartitionBoundValue
	RangeTo   []PartitionBoundValue

	// Hash
	HashModulus   int
	HashRemainder int
}
