package keypage

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// SortDescriptor declares one column of a sort order. Only Column is
// required; every other field is defaulted during compilation:
//
//	Type      -> TypeString
//	Direction -> DirectionASC
//	Path      -> Column
//
// The shorthand constructors Asc, Desc and DescNullsLast cover the common
// cases.
type SortDescriptor struct {
	// Column the dataset is ordered and filtered by. Either a bare name or
	// a single-qualified "table.column".
	Column string
	// Type of the column values.
	Type ColumnType
	// Nullable marks the column as allowed to hold nulls.
	Nullable bool
	// Direction of the ordering on this column.
	Direction Direction
	// Path locates the column value within a result row. Dotted segments
	// traverse nested structs and maps, numeric segments index slices.
	Path string
	// Check is an optional custom validator run after the type check.
	Check ValueCheck
}

func Asc(column string) SortDescriptor {
	return SortDescriptor{Column: column, Direction: DirectionASC}
}

func Desc(column string) SortDescriptor {
	return SortDescriptor{Column: column, Direction: DirectionDESC}
}

func DescNullsLast(column string) SortDescriptor {
	return SortDescriptor{Column: column, Direction: DirectionDESCNullsLast}
}

// Typed sets the column type.
func (d SortDescriptor) Typed(t ColumnType) SortDescriptor {
	d.Type = t
	return d
}

// AsNullable marks the column as nullable.
func (d SortDescriptor) AsNullable() SortDescriptor {
	d.Nullable = true
	return d
}

// At sets the value path within a row when it differs from the column name.
func (d SortDescriptor) At(path string) SortDescriptor {
	d.Path = path
	return d
}

// CheckedBy attaches a custom value check.
func (d SortDescriptor) CheckedBy(check ValueCheck) SortDescriptor {
	d.Check = check
	return d
}

// CheckResult is the outcome of a custom value check.
type CheckResult struct {
	Valid   bool
	Message string
}

// CheckOK reports a valid value.
func CheckOK() CheckResult {
	return CheckResult{Valid: true}
}

// CheckFail reports an invalid value. An empty message falls back to a
// default one when the failure is surfaced.
func CheckFail(message string) CheckResult {
	return CheckResult{Message: message}
}

// ValueCheck validates one boundary value beyond its declared type.
type ValueCheck func(value any) CheckResult

// valueContext selects the error taxonomy for a failed value validation.
// The validation logic is identical in both contexts; only the direction of
// data flow differs.
type valueContext int

const (
	// contextConfiguration - the value was extracted from a server-side row.
	// A failure is a developer/config bug.
	contextConfiguration valueContext = iota
	// contextCursor - the value arrived in a client cursor. A failure means
	// a malformed, tampered or stale cursor.
	contextCursor
)

var _availableColumnNameSymbols = append([]rune("_"), lo.AlphanumericCharset...)

// normalizedDescriptor is a fully defaulted, validated SortDescriptor.
// Immutable once built.
type normalizedDescriptor struct {
	column    string
	typ       ColumnType
	nullable  bool
	direction Direction
	path      valuePath
	check     ValueCheck
}

// normalizeDescriptor applies defaults and validates the declaration.
func normalizeDescriptor(raw SortDescriptor) (normalizedDescriptor, error) {
	norm := normalizedDescriptor{
		column:    raw.Column,
		typ:       raw.Type,
		nullable:  raw.Nullable,
		direction: raw.Direction,
		check:     raw.Check,
	}

	if norm.typ == "" {
		norm.typ = TypeString
	}
	if norm.direction == "" {
		norm.direction = DirectionASC
	}

	if !norm.typ.Valid() {
		return normalizedDescriptor{}, newConfigurationError("unknown column type '%s' for column '%s'", norm.typ, raw.Column)
	}
	if !norm.direction.Valid() {
		return normalizedDescriptor{}, newConfigurationError("unknown direction '%s' for column '%s'", norm.direction, raw.Column)
	}
	if err := validateColumnName(raw.Column); err != nil {
		return normalizedDescriptor{}, err
	}

	path := raw.Path
	if path == "" {
		path = raw.Column
	}
	norm.path = parseValuePath(path)

	return norm, nil
}

// validateColumnName accepts "column" or "table.column". Guards against SQL
// injection by restricting allowed characters, since column names end up
// embedded in ORDER BY and WHERE clauses verbatim.
func validateColumnName(column string) error {
	segments := strings.Split(column, ".")
	if len(segments) > 2 {
		return newConfigurationError("column name '%s' has more than one qualifier", column)
	}

	for _, segment := range segments {
		if segment == "" {
			return newConfigurationError("column name '%s' contains an empty segment", column)
		}
		if !lo.Every(_availableColumnNameSymbols, []rune(segment)) {
			return newConfigurationError("column name '%s' contains forbidden symbols", column)
		}
	}

	return nil
}

// validateValue runs the null check, the type check and the custom check
// against a single boundary value. The context picks the error class:
// ConfigurationError for server-extracted values, InvalidCursorError for
// values consumed from a client cursor.
func (d normalizedDescriptor) validateValue(value any, ctx valueContext) (any, error) {
	fail := func(format string, args ...any) error {
		if ctx == contextCursor {
			e := newInvalidCursorError("", "bad boundary value for column '"+d.column+"'")
			e.Got = value
			e.cause = fmt.Errorf(format, args...)
			return e
		}

		return newConfigurationError(format, args...)
	}

	if value == nil {
		if !d.nullable {
			return nil, fail("null value for non-nullable column '%s'", d.column)
		}

		return nil, nil
	}

	if !d.typ.Check(value) {
		return nil, fail("value '%v' does not match type '%s' of column '%s'", value, d.typ, d.column)
	}

	if d.check != nil {
		res := d.check(value)
		if !res.Valid {
			msg := res.Message
			if msg == "" {
				msg = "custom check failed"
			}

			return nil, fail("invalid value '%v' for column '%s': %s", value, d.column, msg)
		}
	}

	return value, nil
}

// extractValue reads the boundary value of this descriptor from a row.
// A missing value is normalized to null before validation, which runs in
// Configuration context: the row came from our own storage, so a bad value
// is a declaration bug, not client input.
func (d normalizedDescriptor) extractValue(row any) (any, error) {
	return d.validateValue(d.path.lookup(row), contextConfiguration)
}
