package keypage

import "testing"

func Test_OrderTerms_ToSQL(t *testing.T) {
	terms := OrderTerms{
		{Expr: "a", Direction: DirectionASC},
		{Expr: "b", Direction: DirectionDESC},
		{Expr: "c", Direction: DirectionDESCNullsLast},
	}

	want := "a ASC, b DESC, c DESC"
	if got := terms.ToSQL(); got != want {
		t.Errorf("ToSQL: got %q want %q", got, want)
	}

	slice := terms.ToSQLSlice()
	if len(slice) != 3 || slice[0] != "a ASC" {
		t.Errorf("ToSQLSlice: got %v", slice)
	}
}

func Test_nullPlacementTerm(t *testing.T) {
	tests := []struct {
		name      string
		direction Direction
		wantDir   Direction
	}{
		{"asc places nulls first", DirectionASC, DirectionASC},
		{"desc places nulls first", DirectionDESC, DirectionASC},
		{"desc nulls last places nulls last", DirectionDESCNullsLast, DirectionDESC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term := nullPlacementTerm("score", tt.direction)
			if term.Expr != "CASE WHEN score IS NULL THEN 0 ELSE 1 END" {
				t.Errorf("%s: unexpected expr %q", tt.name, term.Expr)
			}
			if term.Direction != tt.wantDir {
				t.Errorf("%s: direction %s want %s", tt.name, term.Direction, tt.wantDir)
			}
		})
	}
}
