package keypage

import (
	"reflect"
	"strconv"
	"strings"

	"gorm.io/gorm/schema"
)

// valuePath locates a boundary value within a result row. Segments are
// separated by dots; a numeric segment indexes a slice or array, any other
// segment selects a map key or a struct field. Struct fields match either by
// exact name or by their conventional database column name, so a path
// "created_at" finds the field CreatedAt.
type valuePath []string

func parseValuePath(s string) valuePath {
	return valuePath(strings.Split(s, "."))
}

// lookup reads the value at the path from a row. Anything missing along the
// way (nil pointer, absent key, out-of-range index, unknown field) is
// normalized to nil.
func (p valuePath) lookup(row any) any {
	v := reflect.ValueOf(row)
	for _, segment := range p {
		v = indirect(v)
		if !v.IsValid() {
			return nil
		}

		switch v.Kind() {
		case reflect.Map:
			if v.Type().Key().Kind() != reflect.String {
				return nil
			}
			v = v.MapIndex(reflect.ValueOf(segment))
		case reflect.Struct:
			v = structFieldByColumn(v, segment)
		case reflect.Slice, reflect.Array:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= v.Len() {
				return nil
			}
			v = v.Index(idx)
		default:
			return nil
		}
	}

	v = indirect(v)
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}

	return v.Interface()
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}

	return v
}

// structFieldByColumn finds a struct field matching a path segment, looking
// through embedded structs the same way GORM flattens them.
func structFieldByColumn(v reflect.Value, segment string) reflect.Value {
	typ := v.Type()
	for i := 0; i < typ.NumField(); i++ {
		structField := typ.Field(i)

		// Embedded structs are flattened even when the embedded type itself
		// is unexported; only their promoted exported fields are reachable.
		if structField.Anonymous {
			if nestedVal := indirect(v.Field(i)); nestedVal.IsValid() && nestedVal.Kind() == reflect.Struct {
				if nested := structFieldByColumn(nestedVal, segment); nested.IsValid() {
					return nested
				}
				continue
			}
		}

		if !structField.IsExported() {
			continue
		}

		if structField.Name == segment || columnNameOf(structField) == segment {
			return v.Field(i)
		}
	}

	return reflect.Value{}
}

func columnNameOf(field reflect.StructField) string {
	if tagged := field.Tag.Get("cursor"); tagged != "" {
		return tagged
	}

	return (&schema.NamingStrategy{}).ColumnName("", field.Name)
}
