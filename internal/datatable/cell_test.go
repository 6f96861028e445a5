package datatable

import (
	"errors"
	"testing"
	"time"
)

type rank string

func TestFormatValueShapes(t *testing.T) {
	var nilPtr *int
	var nilMap map[string]any
	yes := true
	n := 7
	when := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	cases := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, "N/A"},
		{"typed nil pointer", nilPtr, "N/A"},
		{"nil map", nilMap, "N/A"},
		{"true", true, "Yes"},
		{"false", false, "No"},
		{"bool pointer", &yes, "Yes"},
		{"map", map[string]any{"b": 1, "a": "x"}, `{"a":"x","b":1}`},
		{"slice", []int{1, 2}, `[1,2]`},
		{"struct", struct {
			Level int `json:"level"`
		}{3}, `{"level":3}`},
		{"string", "Alice", "Alice"},
		{"empty string", "", ""},
		{"int", 42, "42"},
		{"zero", 0, "0"},
		{"float", 1.5, "1.5"},
		{"int pointer", &n, "7"},
		{"named string", rank("gold"), "gold"},
		{"time is scalar", when, when.String()},
		{"error is scalar", errors.New("boom"), "boom"},
		{"bytes are scalar", []byte("raw"), "raw"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatValue(tc.value, Labels{}); got != tc.want {
				t.Fatalf("FormatValue(%#v) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestFormatValueLocalizedLabels(t *testing.T) {
	labels := Labels{NotAvailable: "—", Yes: "Oui", No: "Non"}
	if got := FormatValue(nil, labels); got != "—" {
		t.Fatalf("nil = %q, want —", got)
	}
	if got := FormatValue(true, labels); got != "Oui" {
		t.Fatalf("true = %q, want Oui", got)
	}
	if got := FormatValue(false, labels); got != "Non" {
		t.Fatalf("false = %q, want Non", got)
	}
	if FormatValue(true, labels) == FormatValue("Oui!", labels) {
		t.Fatal("boolean token should be distinct from other values")
	}
}

func TestFormatValueUnmarshalableFallsBack(t *testing.T) {
	v := map[string]any{"ch": make(chan int)}
	got := FormatValue(v, Labels{})
	if got == "" || got == "N/A" {
		t.Fatalf("fallback = %q, want %%v rendering", got)
	}
}

func TestRenderCellPrefersColumnRenderer(t *testing.T) {
	col := Column{Key: "active", Render: func(value any, row Row, index int) string {
		return "custom"
	}}
	if got := renderCell(col, Row{"active": nil}, 0, Labels{}); got != "custom" {
		t.Fatalf("renderCell = %q, want custom", got)
	}
}
