package ast

// This file collects the remaining node constructors referenced by
// spec.md §6 ("AST builder constructors for every node kind, used by
// the introspector"). Each initializes its node to a defined absent
// state; the parser and the introspector share these so that a schema
// built either way has the identical shape for the comparator.

// ColumnElement wraps a ColumnDef as a TableElement.
func ColumnElement(col *ColumnDef) TableElement {
	return TableElement{Kind: ElementColumn, Column: col}
}

// ConstraintElement wraps a TableConstraint as a TableElement.
func ConstraintElement(c *TableConstraint) TableElement {
	return TableElement{Kind: ElementTableConstraint, Constraint: c}
}

// LikeElement wraps a LikeClause as a TableElement.
func LikeElement(l *LikeClause) TableElement {
	return TableElement{Kind: ElementLike, Like: l}
}

// NewLikeClause returns a LikeClause with no inclusion options set.
func NewLikeClause(sourceTable string) *LikeClause {
	return &LikeClause{SourceTable: sourceTable}
}

// NewPartitionByClause returns an empty PartitionByClause of the given
// kind.
func NewPartitionByClause(kind PartitionKind) *PartitionByClause {
	return &PartitionByClause{Kind: kind}
}

// NewInBound returns a PartitionBoundSpec for a LIST partition's FOR
// VALUES IN (...) clause.
func NewInBound(exprs []Expression) *PartitionBoundSpec {
	return &PartitionBoundSpec{Kind: BoundIn, InExprs: exprs}
}

// NewRangeBound returns a PartitionBoundSpec for a RANGE partition's FOR
// VALUES FROM (...) TO (...) clause.
func NewRangeBound(from, to []PartitionBoundValue) *PartitionBoundSpec {
	return &PartitionBoundSpec{Kind: BoundRange, RangeFrom: from, RangeTo: to}
}

// NewHashBound returns a PartitionBoundSpec for a HASH partition's FOR
// VALUES WITH (MODULUS ..., REMAINDER ...) clause.
func NewHashBound(modulus, remainder int) *PartitionBoundSpec {
	return &PartitionBoundSpec{Kind: BoundHash, HashModulus: modulus, HashRemainder: remainder}
}

// NewDefaultBound returns a PartitionBoundSpec for FOR VALUES DEFAULT.
func NewDefaultBound() *PartitionBoundSpec {
	return &PartitionBoundSpec{Kind: BoundDefault}
}
