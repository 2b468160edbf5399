package keypage

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	// tNode is one node of a boundary predicate tree. The tree is built by
	// BoundaryChain.ApplyBoundary and consists of comparisons, null checks
	// and nested AND/OR groups. Unlike a flat DNF, nesting is unbounded:
	// every tie-break on a column introduces one more level.
	tNode interface {
		toGORMExpression() clause.Expression
		toSQLClause() (string, []driver.Value)
	}

	tCompare struct {
		Column   string
		Operator Operator
		Value    any
	}

	tNullCheck struct {
		Column string
		// Negate flips the check to IS NOT NULL.
		Negate bool
	}

	tAnd []tNode

	tOr []tNode

	// tNothing matches no rows. Emitted when a boundary is the terminal
	// equivalence class of the whole sort.
	tNothing struct{}
)

// toGORMExpression converts a comparison of the form Operator(Column, Value)
// into an SQL condition "Column Operator Value" represented as a clause.Expression.
//
// IMPORTANT: The method uses the SQL placeholder "?".
func (c tCompare) toGORMExpression() clause.Expression {
	sqlClause, arg := c.toSQLClause()

	return clause.Expr{
		SQL:  sqlClause,
		Vars: []any{arg[0]},
	}
}

// toSQLClause converts the comparison to an SQL condition of the form
// "Column Operator ?" with a corresponding value.
//
// Example:
//
//	tCompare = { Column: "id", Operator: ">", Value: 123}
//
// Result:
//
//	("id > ?", [123])
func (c tCompare) toSQLClause() (string, []driver.Value) {
	return fmt.Sprintf("%s %s ?", c.Column, c.Operator), []driver.Value{parseAnyValue(c.Value)}
}

func parseAnyValue(v any) any {
	// Try parsing a value as time.Time. If it succeeds, return time.Time.
	// Otherwise return the original value.
	fnParseBytesToTimeOrValue := func(vBytes []byte) any {
		dst := time.Time{}
		err := dst.UnmarshalText(vBytes)
		if err == nil {
			return dst
		}

		return v
	}

	switch vt := v.(type) {
	case string:
		return fnParseBytesToTimeOrValue([]byte(vt))
	case []byte:
		return fnParseBytesToTimeOrValue(vt)
	default:
		return v
	}
}

func (n tNullCheck) toGORMExpression() clause.Expression {
	sqlClause, _ := n.toSQLClause()

	return clause.Expr{SQL: sqlClause}
}

func (n tNullCheck) toSQLClause() (string, []driver.Value) {
	if n.Negate {
		return n.Column + " IS NOT NULL", nil
	}

	return n.Column + " IS NULL", nil
}

// toGORMExpression converts a group (K1, K2, K3) into a gorm expression
// "K1 AND K2 AND K3" where each Ki is expanded recursively.
func (a tAnd) toGORMExpression() clause.Expression {
	andExpressions := make([]clause.Expression, 0, len(a))
	for _, node := range a {
		andExpressions = append(andExpressions, node.toGORMExpression())
	}

	if len(andExpressions) == 1 {
		return andExpressions[0]
	} else if len(andExpressions) > 1 {
		return clause.And(andExpressions...)
	}

	return nil
}

// toSQLClause converts a group (K1, K2, K3) into an SQL condition
// "(K1 AND K2 AND K3)" with corresponding values.
func (a tAnd) toSQLClause() (string, []driver.Value) {
	return joinSQLClauses([]tNode(a), " AND ")
}

// toGORMExpression converts a group (K1, K2, K3) into a gorm expression
// "K1 OR K2 OR K3" where each Ki is expanded recursively.
func (o tOr) toGORMExpression() clause.Expression {
	orExpressions := make([]clause.Expression, 0, len(o))
	for _, node := range o {
		orExpressions = append(orExpressions, node.toGORMExpression())
	}

	if len(orExpressions) == 1 {
		return orExpressions[0]
	} else if len(orExpressions) > 1 {
		return clause.Or(orExpressions...)
	}

	return nil
}

// toSQLClause converts a group (K1, K2, K3) into an SQL condition
// "(K1 OR K2 OR K3)" with corresponding values.
func (o tOr) toSQLClause() (string, []driver.Value) {
	return joinSQLClauses([]tNode(o), " OR ")
}

func joinSQLClauses(nodes []tNode, separator string) (string, []driver.Value) {
	clauses := make([]string, 0, len(nodes))
	values := make([]driver.Value, 0, len(nodes))

	for _, node := range nodes {
		nodeClause, nodeValues := node.toSQLClause()
		if nodeClause == "" {
			continue
		}

		clauses = append(clauses, nodeClause)
		values = append(values, nodeValues...)
	}

	if len(clauses) == 1 {
		return clauses[0], values
	} else if len(clauses) > 1 {
		return fmt.Sprintf("(%s)", strings.Join(clauses, separator)), values
	}

	return "", nil
}

func (tNothing) toGORMExpression() clause.Expression {
	return clause.Expr{SQL: "1 = 0"}
}

func (tNothing) toSQLClause() (string, []driver.Value) {
	return "1 = 0", nil
}

// Boundary is the filtering condition selecting exactly the rows strictly
// after a boundary row in chain order. The zero value restricts nothing.
type Boundary struct {
	root tNode
}

// IsEmpty returns true if the boundary restricts nothing.
func (b Boundary) IsEmpty() bool {
	return b.root == nil
}

// Apply applies the boundary condition to a gorm query.
func (b Boundary) Apply(db *gorm.DB) *gorm.DB {
	if b.root == nil {
		return db
	}

	exp := b.root.toGORMExpression()
	if exp == nil {
		return db
	}

	return db.Clauses(exp)
}

// ToSQL returns the string representation of the boundary condition as an
// SQL expression with placeholder values.
//
// Usage:
//
//	cond, args := boundary.ToSQL()
//	query := fmt.Sprintf("SELECT * FROM table WHERE %s", cond)
func (b Boundary) ToSQL() (string, []driver.Value) {
	if b.root == nil {
		return "TRUE", nil
	}

	sqlClause, values := b.root.toSQLClause()
	if sqlClause == "" {
		return "TRUE", nil
	}

	return sqlClause, values
}
