package keypage

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type (
	// OrderTerm is one ordering instruction: an expression (a bare column
	// name or a raw SQL expression) plus the direction to sort it by.
	OrderTerm struct {
		Expr      string
		Direction Direction
	}

	// OrderTerms is the full ordering of a dataset, highest priority first.
	OrderTerms []OrderTerm
)

// ToSQLSlice converts OrderTerms to a slice of strings in the form
// "<expr> <direction>" suitable for SQL query builders.
//
// Example: for OrderTerms [{"a", ASC}, {"b", DESC}] returns ["a ASC", "b DESC"].
func (o OrderTerms) ToSQLSlice() []string {
	ret := make([]string, 0, len(o))
	for _, term := range o {
		ret = append(ret, fmt.Sprintf("%s %s", term.Expr, term.Direction.Order()))
	}

	return ret
}

// ToSQL converts OrderTerms to a single string
// "<expr_1> <direction_1>, <expr_2> <direction_2>"
// suitable for embedding into an SQL query.
//
// Usage:
//
//	query := fmt.Sprintf("SELECT * FROM table ORDER BY %s", terms.ToSQL())
func (o OrderTerms) ToSQL() string {
	return strings.Join(o.ToSQLSlice(), ", ")
}

// Apply applies the ordering to a gorm query.
func (o OrderTerms) Apply(db *gorm.DB) *gorm.DB {
	if len(o) == 0 {
		return db
	}

	return db.Order(o.ToSQL())
}

// nullPlacementTerm orders rows by whether the column is null, before the
// value term orders rows within each of the two groups. Composite ORDER BY
// facilities offer no portable NULLS FIRST/LAST, so an auxiliary expression
// guarantees identical null placement across database engines.
func nullPlacementTerm(column string, direction Direction) OrderTerm {
	term := OrderTerm{
		Expr:      fmt.Sprintf("CASE WHEN %s IS NULL THEN 0 ELSE 1 END", column),
		Direction: DirectionASC,
	}
	if !direction.NullsFirst() {
		term.Direction = DirectionDESC
	}

	return term
}
