package datatable

import (
	"fmt"
	"strings"
)

// Align is a column's horizontal alignment. The zero value is left.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// ParseAlign maps "left", "center" and "right" to an Align. Anything else is left.
func ParseAlign(s string) Align {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "center", "centre":
		return AlignCenter
	case "right":
		return AlignRight
	default:
		return AlignLeft
	}
}

// CellRenderer fully replaces default formatting for a column. Its output is
// used verbatim.
type CellRenderer func(value any, row Row, index int) string

// Column describes one header/body column.
type Column struct {
	Key    string
	Title  string
	Align  Align
	Width  int // terminal cells; 0 = auto
	Render CellRenderer
}

// Validate reports empty or duplicate column keys.
func Validate(columns []Column) error {
	seen := make(map[string]int, len(columns))
	for i, c := range columns {
		if strings.TrimSpace(c.Key) == "" {
			return fmt.Errorf("column %d: empty key", i)
		}
		if prev, ok := seen[c.Key]; ok {
			return fmt.Errorf("column %d: duplicate key %q (first used by column %d)", i, c.Key, prev)
		}
		seen[c.Key] = i
	}
	return nil
}

// Actions renders the trailing actions cell for a row.
type Actions func(row Row, index int) string

// StaticActions returns Actions that render the same content for every row.
func StaticActions(content string) Actions {
	return func(Row, int) string { return content }
}
