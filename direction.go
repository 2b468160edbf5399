package keypage

// Direction defines the sort direction for one column of the requested
// dataset. DirectionDESCNullsLast sorts like DirectionDESC but places null
// values after all non-null values instead of before them.
type Direction string

const (
	DirectionASC           Direction = "ASC"
	DirectionDESC          Direction = "DESC"
	DirectionDESCNullsLast Direction = "DESC_NULLS_LAST"
)

func (d Direction) Valid() bool {
	return d == DirectionASC || d == DirectionDESC || d == DirectionDESCNullsLast
}

// Order collapses the nulls-last variant to plain DESC. The result is the
// direction used for value comparison and for the ORDER BY value term.
func (d Direction) Order() Direction {
	if d == DirectionDESCNullsLast {
		return DirectionDESC
	}

	return d
}

// NullsFirst reports whether the null equivalence class sorts before all
// non-null values for this direction. Only DirectionDESCNullsLast places
// nulls last.
func (d Direction) NullsFirst() bool {
	return d != DirectionDESCNullsLast
}

// ForOperator returns the comparison operator selecting rows strictly past a
// non-null boundary value under this direction.
func (d Direction) ForOperator() Operator {
	if d.Order() == DirectionASC {
		return OperatorGT
	}

	return OperatorLT
}

// Operator defines a comparison operator for filtering by column.
// Used in boundary predicate conditions.
type Operator string

const (
	OperatorGT Operator = ">"
	OperatorLT Operator = "<"

	// operatorEq is the equality operator. It is private because we use it
	// ONLY while building tie-break conditions.
	operatorEq Operator = "="
)

func (o Operator) Valid() bool {
	return o == OperatorLT || o == OperatorGT
}
