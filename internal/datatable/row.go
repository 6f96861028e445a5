package datatable

import (
	"reflect"
	"strconv"
)

// DefaultRowKey is the identity field used when Props.RowKey is empty.
const DefaultRowKey = "id"

// Row maps field names to values.
type Row map[string]any

// Key returns the row's display identity. The positional index is used only
// when field is strictly absent: missing or nil. Zero values such as 0, "" and
// false are valid keys.
func (r Row) Key(field string, index int) string {
	if field == "" {
		field = DefaultRowKey
	}
	v, ok := r[field]
	if !ok || isAbsent(v) {
		return strconv.Itoa(index)
	}
	return scalarString(v)
}

func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
