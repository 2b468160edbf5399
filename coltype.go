package keypage

import (
	"math"
	"reflect"
	"time"
)

// ColumnType is the declared value type of a sort column. Boundary values
// arrive both from Go rows and from JSON-decoded cursors, so each type
// accepts every representation those two sources can produce.
type ColumnType string

const (
	TypeString   ColumnType = "string"
	TypeInteger  ColumnType = "integer"
	TypeFloat    ColumnType = "float"
	TypeBoolean  ColumnType = "boolean"
	TypeDatetime ColumnType = "datetime"
)

func (t ColumnType) Valid() bool {
	switch t {
	case TypeString, TypeInteger, TypeFloat, TypeBoolean, TypeDatetime:
		return true
	default:
		return false
	}
}

// Check reports whether value has the shape of this column type.
// It never panics and returns false for nil.
func (t ColumnType) Check(value any) bool {
	if value == nil {
		return false
	}

	switch t {
	case TypeString:
		switch value.(type) {
		case string, []byte:
			return true
		}

		return false
	case TypeBoolean:
		_, ok := value.(bool)
		return ok
	case TypeInteger:
		rv := reflect.ValueOf(value)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return true
		case reflect.Float32, reflect.Float64:
			// JSON carries every number as a float; accept integral ones.
			f := rv.Float()
			return f == math.Trunc(f)
		default:
			return false
		}
	case TypeFloat:
		switch reflect.ValueOf(value).Kind() {
		case reflect.Float32, reflect.Float64,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return true
		default:
			return false
		}
	case TypeDatetime:
		switch vt := value.(type) {
		case time.Time:
			return true
		case string:
			return isTimeText([]byte(vt))
		case []byte:
			return isTimeText(vt)
		}

		return false
	default:
		return false
	}
}

func isTimeText(b []byte) bool {
	dst := time.Time{}
	return dst.UnmarshalText(b) == nil
}
