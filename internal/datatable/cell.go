package datatable

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Labels are the localized tokens used by default cell formatting.
type Labels struct {
	NotAvailable string
	Yes          string
	No           string
}

// DefaultLabels is used for any Labels field left empty.
var DefaultLabels = Labels{NotAvailable: "N/A", Yes: "Yes", No: "No"}

func (l Labels) withDefaults() Labels {
	if l.NotAvailable == "" {
		l.NotAvailable = DefaultLabels.NotAvailable
	}
	if l.Yes == "" {
		l.Yes = DefaultLabels.Yes
	}
	if l.No == "" {
		l.No = DefaultLabels.No
	}
	return l
}

type valueShape int

const (
	shapeAbsent valueShape = iota
	shapeBoolean
	shapeStructured
	shapeScalar
)

func shapeOf(v any) valueShape {
	if isAbsent(v) {
		return shapeAbsent
	}
	switch v.(type) {
	case bool:
		return shapeBoolean
	case fmt.Stringer, error, []byte:
		return shapeScalar
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return shapeBoolean
	case reflect.Pointer:
		return shapeOf(rv.Elem().Interface())
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return shapeStructured
	}
	return shapeScalar
}

// FormatValue is the default cell formatting: absent values render the
// not-available sentinel, booleans the Yes/No tokens, structured values their
// JSON encoding, and everything else its default string conversion.
func FormatValue(v any, labels Labels) string {
	labels = labels.withDefaults()
	switch shapeOf(v) {
	case shapeAbsent:
		return labels.NotAvailable
	case shapeBoolean:
		if deref(reflect.ValueOf(v)).Bool() {
			return labels.Yes
		}
		return labels.No
	case shapeStructured:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	default:
		return scalarString(v)
	}
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	}
	switch v.(type) {
	case fmt.Stringer, error:
		return fmt.Sprint(v)
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer {
		return fmt.Sprint(deref(rv).Interface())
	}
	return fmt.Sprint(v)
}

func deref(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	return rv
}

func renderCell(col Column, row Row, index int, labels Labels) string {
	value := row[col.Key]
	if col.Render != nil {
		return col.Render(value, row, index)
	}
	return FormatValue(value, labels)
}
