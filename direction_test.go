package keypage

import "testing"

func Test_Direction(t *testing.T) {
	tests := []struct {
		name       string
		in         Direction
		valid      bool
		order      Direction
		nullsFirst bool
		operator   Operator
	}{
		{"ASC", DirectionASC, true, DirectionASC, true, OperatorGT},
		{"DESC", DirectionDESC, true, DirectionDESC, true, OperatorLT},
		{"DESC_NULLS_LAST collapses to DESC", DirectionDESCNullsLast, true, DirectionDESC, false, OperatorLT},
		{"unknown is invalid", Direction("SIDEWAYS"), false, Direction("SIDEWAYS"), true, OperatorLT},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Valid(); got != tt.valid {
				t.Errorf("%s: Valid=%v want %v", tt.name, got, tt.valid)
			}
			if !tt.valid {
				return
			}
			if got := tt.in.Order(); got != tt.order {
				t.Errorf("%s: Order=%v want %v", tt.name, got, tt.order)
			}
			if got := tt.in.NullsFirst(); got != tt.nullsFirst {
				t.Errorf("%s: NullsFirst=%v want %v", tt.name, got, tt.nullsFirst)
			}
			if got := tt.in.ForOperator(); got != tt.operator {
				t.Errorf("%s: ForOperator=%v want %v", tt.name, got, tt.operator)
			}
		})
	}
}

func Test_Operator_Valid(t *testing.T) {
	tests := []struct {
		name  string
		in    Operator
		valid bool
	}{
		{"GT valid", OperatorGT, true},
		{"LT valid", OperatorLT, true},
		{"EQ is internal only", operatorEq, false},
		{"garbage invalid", Operator(">="), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Valid(); got != tt.valid {
				t.Errorf("%s: Valid=%v want %v", tt.name, got, tt.valid)
			}
		})
	}
}
