package keypage

// BoundaryChain is a compiled, immutable sort order: an ordered sequence of
// normalized sort descriptors, highest priority first. It produces the two
// halves of keyset pagination for that order:
//
//   - OrderTerms, the ordering instructions making the sort deterministic
//     and null placement explicit;
//   - ApplyBoundary, the predicate selecting exactly the rows strictly after
//     a remembered boundary row.
//
// A chain is built once per sort declaration and reused for the life of the
// process.
type BoundaryChain struct {
	descriptors []normalizedDescriptor
	anyNullable bool
}

// BuildChain compiles sort descriptors into a BoundaryChain. At least one
// descriptor is required: a deterministic order needs at least one column.
func BuildChain(descriptors ...SortDescriptor) (*BoundaryChain, error) {
	if len(descriptors) == 0 {
		return nil, newConfigurationError("cannot build a boundary chain without sort descriptors")
	}

	chain := &BoundaryChain{
		descriptors: make([]normalizedDescriptor, 0, len(descriptors)),
	}
	for _, raw := range descriptors {
		norm, err := normalizeDescriptor(raw)
		if err != nil {
			return nil, err
		}

		chain.descriptors = append(chain.descriptors, norm)
		chain.anyNullable = chain.anyNullable || norm.nullable
	}

	return chain, nil
}

// Len returns the number of columns in the chain.
func (c *BoundaryChain) Len() int {
	return len(c.descriptors)
}

// OrderTerms returns the ordering instructions for the chain. Without
// nullable columns this is one term per column. With any nullable column
// every column contributes two terms: a null placement term, then the value
// term. Doing it for all columns keeps the ORDER BY shape uniform, which
// matters for index design.
func (c *BoundaryChain) OrderTerms() OrderTerms {
	perColumn := 1
	if c.anyNullable {
		perColumn = 2
	}

	terms := make(OrderTerms, 0, perColumn*len(c.descriptors))
	for _, d := range c.descriptors {
		if c.anyNullable {
			terms = append(terms, nullPlacementTerm(d.column, d.direction))
		}

		terms = append(terms, OrderTerm{Expr: d.column, Direction: d.direction.Order()})
	}

	return terms
}

// ExtractBoundary projects a row onto the sort key: one value per chain
// position, in chain order. Values are validated in Configuration context.
func (c *BoundaryChain) ExtractBoundary(row any) ([]any, error) {
	values := make([]any, 0, len(c.descriptors))
	for _, d := range c.descriptors {
		value, err := d.extractValue(row)
		if err != nil {
			return nil, err
		}

		values = append(values, value)
	}

	return values, nil
}

// ApplyBoundary builds the predicate selecting exactly the rows strictly
// after the boundary row whose sort-key projection is values. Values are
// validated in Cursor context, since boundaries normally arrive in client
// cursors.
func (c *BoundaryChain) ApplyBoundary(values []any) (Boundary, error) {
	if len(values) != len(c.descriptors) {
		e := newInvalidCursorError("", "boundary value count mismatch")
		e.Got = len(values)
		e.Want = len(c.descriptors)
		return Boundary{}, e
	}

	root, err := c.applyFrom(0, values)
	if err != nil {
		return Boundary{}, err
	}

	return Boundary{root: root}, nil
}

// applyFrom builds the predicate for the chain suffix starting at position
// idx. Two cases per node, depending on the boundary value:
//
// Null boundary. Nulls form a single equivalence class per column, and a
// plain inequality against null matches nothing, so the class is handled by
// placement. Rows null on this column are resolved by the tie-break on the
// tail; rows non-null qualify wholesale iff they sort after the null class
// (nulls first), and are excluded wholesale otherwise (nulls last). Without
// a tail the null class cannot be subdivided, leaving IS NOT NULL for nulls
// first and nothing for nulls last.
//
// Non-null boundary. Rows strictly past the value qualify unconditionally;
// rows exactly tied qualify only if they pass the tie-break on the tail.
// On a nullable column the inequality alone drops every null row, so nulls
// are re-included when they sort after all values (nulls last).
func (c *BoundaryChain) applyFrom(idx int, values []any) (tNode, error) {
	d := c.descriptors[idx]
	hasTail := idx+1 < len(c.descriptors)

	value, err := d.validateValue(values[idx], contextCursor)
	if err != nil {
		return nil, err
	}

	if value == nil {
		if !hasTail {
			if d.direction.NullsFirst() {
				return tNullCheck{Column: d.column, Negate: true}, nil
			}

			return tNothing{}, nil
		}

		tail, err := c.applyFrom(idx+1, values)
		if err != nil {
			return nil, err
		}

		withinNulls := tAnd{tNullCheck{Column: d.column}, tail}
		if d.direction.NullsFirst() {
			return tOr{withinNulls, tNullCheck{Column: d.column, Negate: true}}, nil
		}

		return withinNulls, nil
	}

	past := tCompare{Column: d.column, Operator: d.direction.ForOperator(), Value: value}

	disjuncts := tOr{past}
	if d.nullable && !d.direction.NullsFirst() {
		disjuncts = append(disjuncts, tNullCheck{Column: d.column})
	}

	if hasTail {
		tail, err := c.applyFrom(idx+1, values)
		if err != nil {
			return nil, err
		}

		tied := tAnd{tCompare{Column: d.column, Operator: operatorEq, Value: value}, tail}
		disjuncts = append(disjuncts, tied)
	}

	if len(disjuncts) == 1 {
		return disjuncts[0], nil
	}

	return disjuncts, nil
}
