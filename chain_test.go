package keypage

import (
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_BuildChain(t *testing.T) {
	_, err := BuildChain()
	var configErr *ConfigurationError
	require.True(t, errors.As(err, &configErr), "empty chain: got %T", err)

	chain, err := BuildChain(Asc("role"), Asc("id").Typed(TypeInteger))
	require.NoError(t, err)
	assert.Equal(t, 2, chain.Len())
	assert.False(t, chain.anyNullable)

	chain, err = BuildChain(Asc("role"), Asc("score").Typed(TypeFloat).AsNullable())
	require.NoError(t, err)
	assert.True(t, chain.anyNullable)

	_, err = BuildChain(Asc("bad column"))
	require.True(t, errors.As(err, &configErr), "bad descriptor: got %T", err)
}

func Test_BoundaryChain_OrderTerms(t *testing.T) {
	plain, err := BuildChain(Asc("role"), Desc("id").Typed(TypeInteger))
	require.NoError(t, err)

	terms := plain.OrderTerms()
	require.Len(t, terms, plain.Len())
	assert.Equal(t, "role ASC, id DESC", terms.ToSQL())

	// One nullable column doubles every node: null placement term first,
	// value term second.
	nullable, err := BuildChain(Asc("role"), DescNullsLast("score").Typed(TypeFloat).AsNullable())
	require.NoError(t, err)

	terms = nullable.OrderTerms()
	require.Len(t, terms, 2*nullable.Len())
	assert.Equal(
		t,
		"CASE WHEN role IS NULL THEN 0 ELSE 1 END ASC, role ASC, "+
			"CASE WHEN score IS NULL THEN 0 ELSE 1 END DESC, score DESC",
		terms.ToSQL(),
	)
}

func Test_BoundaryChain_ExtractBoundary(t *testing.T) {
	type user struct {
		ID    int
		Role  string
		Score *float64
	}

	chain, err := BuildChain(
		Asc("role"),
		DescNullsLast("score").Typed(TypeFloat).AsNullable(),
		Asc("id").Typed(TypeInteger),
	)
	require.NoError(t, err)

	score := 9.5
	values, err := chain.ExtractBoundary(user{ID: 3, Role: "admin", Score: &score})
	require.NoError(t, err)
	assert.Equal(t, []any{"admin", 9.5, 3}, values)

	values, err = chain.ExtractBoundary(user{ID: 4, Role: "user"})
	require.NoError(t, err)
	assert.Equal(t, []any{"user", nil, 4}, values)
}

// The standard multi-column keyset disjunction: rows strictly past the
// boundary on a column qualify unconditionally, ties recurse into the
// subordinate columns.
func Test_ApplyBoundary_TieBreak(t *testing.T) {
	chain, err := BuildChain(
		Asc("role"),
		Asc("first_name"),
		Asc("last_name"),
		Asc("id").Typed(TypeInteger),
	)
	require.NoError(t, err)

	boundary, err := chain.ApplyBoundary([]any{"admin", "Dude", "Bro", 3})
	require.NoError(t, err)

	gotSQL, gotVars := boundary.ToSQL()
	assert.Equal(
		t,
		"(role > ? OR (role = ? AND "+
			"(first_name > ? OR (first_name = ? AND "+
			"(last_name > ? OR (last_name = ? AND id > ?))))))",
		gotSQL,
	)
	assert.Equal(t, []driver.Value{"admin", "admin", "Dude", "Dude", "Bro", "Bro", 3}, gotVars)
}

func Test_ApplyBoundary_NullRule(t *testing.T) {
	tests := []struct {
		name     string
		chain    []SortDescriptor
		values   []any
		wantSQL  string
		wantVars []driver.Value
	}{
		{
			name:    "no tail, nulls last: null is the terminal class, nothing follows",
			chain:   []SortDescriptor{DescNullsLast("score").Typed(TypeFloat).AsNullable()},
			values:  []any{nil},
			wantSQL: "1 = 0",
		},
		{
			name:    "no tail, nulls first: every non-null row follows the null class",
			chain:   []SortDescriptor{Asc("score").Typed(TypeFloat).AsNullable()},
			values:  []any{nil},
			wantSQL: "score IS NOT NULL",
		},
		{
			name: "with tail, nulls first: ties recurse, non-null rows qualify wholesale",
			chain: []SortDescriptor{
				Asc("score").Typed(TypeFloat).AsNullable(),
				Asc("id").Typed(TypeInteger),
			},
			values:   []any{nil, 7},
			wantSQL:  "((score IS NULL AND id > ?) OR score IS NOT NULL)",
			wantVars: []driver.Value{7},
		},
		{
			name: "with tail, nulls last: only ties within the null class remain",
			chain: []SortDescriptor{
				DescNullsLast("score").Typed(TypeFloat).AsNullable(),
				Asc("id").Typed(TypeInteger),
			},
			values:   []any{nil, 7},
			wantSQL:  "(score IS NULL AND id > ?)",
			wantVars: []driver.Value{7},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain, err := BuildChain(tt.chain...)
			require.NoError(t, err)

			boundary, err := chain.ApplyBoundary(tt.values)
			require.NoError(t, err)

			gotSQL, gotVars := boundary.ToSQL()
			assert.Equal(t, tt.wantSQL, gotSQL)
			assert.Equal(t, tt.wantVars, gotVars)
		})
	}
}

func Test_ApplyBoundary_NullableValueRule(t *testing.T) {
	// Non-null boundary on a nullable column: the bare inequality drops all
	// null rows, so they are re-included when they sort after the values.
	chain, err := BuildChain(DescNullsLast("score").Typed(TypeFloat).AsNullable())
	require.NoError(t, err)

	boundary, err := chain.ApplyBoundary([]any{4.2})
	require.NoError(t, err)

	gotSQL, gotVars := boundary.ToSQL()
	assert.Equal(t, "(score < ? OR score IS NULL)", gotSQL)
	assert.Equal(t, []driver.Value{4.2}, gotVars)

	// Nulls-first directions already consumed the null class before any
	// non-null boundary, so nothing is re-included.
	chain, err = BuildChain(Asc("score").Typed(TypeFloat).AsNullable())
	require.NoError(t, err)

	boundary, err = chain.ApplyBoundary([]any{4.2})
	require.NoError(t, err)

	gotSQL, _ = boundary.ToSQL()
	assert.Equal(t, "score > ?", gotSQL)
}

func Test_ApplyBoundary_NullableValueRule_WithTail(t *testing.T) {
	chain, err := BuildChain(
		DescNullsLast("score").Typed(TypeFloat).AsNullable(),
		Asc("id").Typed(TypeInteger),
	)
	require.NoError(t, err)

	boundary, err := chain.ApplyBoundary([]any{4.2, 7})
	require.NoError(t, err)

	gotSQL, gotVars := boundary.ToSQL()
	assert.Equal(t, "(score < ? OR score IS NULL OR (score = ? AND id > ?))", gotSQL)
	assert.Equal(t, []driver.Value{4.2, 4.2, 7}, gotVars)
}

func Test_ApplyBoundary_Invalid(t *testing.T) {
	chain, err := BuildChain(Asc("role"), Asc("id").Typed(TypeInteger))
	require.NoError(t, err)

	var cursorErr *InvalidCursorError

	_, err = chain.ApplyBoundary([]any{"admin"})
	require.True(t, errors.As(err, &cursorErr), "value count mismatch: got %T", err)
	assert.Equal(t, "boundary value count mismatch", cursorErr.Reason)

	_, err = chain.ApplyBoundary([]any{"admin", "not-an-integer"})
	require.True(t, errors.As(err, &cursorErr), "bad value: got %T", err)

	_, err = chain.ApplyBoundary([]any{nil, 3})
	require.True(t, errors.As(err, &cursorErr), "null on non-nullable: got %T", err)
}
