package datatable

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
)

// Styles controls how a View is drawn in the terminal.
type Styles struct {
	Border     lipgloss.Style
	Header     lipgloss.Style
	Cell       lipgloss.Style
	Selected   lipgloss.Style
	Message    lipgloss.Style
	Error      lipgloss.Style
	Hint       lipgloss.Style
	Summary    lipgloss.Style
	Page       lipgloss.Style
	PageActive lipgloss.Style
}

// DefaultStyles is a monochrome style set; theme.TableStyles is the coloured one.
func DefaultStyles() Styles {
	return Styles{
		Border:     lipgloss.NewStyle(),
		Header:     lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:       lipgloss.NewStyle().Padding(0, 1),
		Selected:   lipgloss.NewStyle().Reverse(true).Padding(0, 1),
		Message:    lipgloss.NewStyle().Italic(true),
		Error:      lipgloss.NewStyle().Bold(true),
		Hint:       lipgloss.NewStyle().Faint(true),
		Summary:    lipgloss.NewStyle().Faint(true),
		Page:       lipgloss.NewStyle().Padding(0, 1),
		PageActive: lipgloss.NewStyle().Bold(true).Underline(true).Padding(0, 1),
	}
}

// DrawOptions are per-frame drawing inputs.
type DrawOptions struct {
	Width   int    // 0 = natural width
	Cursor  int    // highlighted row; -1 for none
	Spinner string // prefix for the loading placeholder
}

// Draw renders the view with lipgloss.
func (v View) Draw(st Styles, opts DrawOptions) string {
	switch v.State {
	case StateLoading:
		msg := v.Message
		if opts.Spinner != "" {
			msg = opts.Spinner + " " + msg
		}
		return st.Message.Render(msg)
	case StateError:
		out := st.Error.Render(v.Message)
		if v.Retry {
			out += "\n" + st.Hint.Render("[r] Retry")
		}
		return out
	case StateEmpty:
		return st.Message.Render(v.Message)
	}

	rows := make([][]string, len(v.Rows))
	for i, r := range v.Rows {
		cells := r.cellsWithActions(v.HasActions)
		for j := range cells {
			if j < len(v.Widths) && v.Widths[j] > 0 {
				cells[j] = ansi.Truncate(cells[j], v.Widths[j], "…")
			}
		}
		rows[i] = cells
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.Border).
		Headers(v.Header...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var s lipgloss.Style
			switch {
			case row == table.HeaderRow:
				s = st.Header
			case row == opts.Cursor:
				s = st.Selected
			default:
				s = st.Cell
			}
			if col < len(v.Aligns) {
				s = s.Align(alignPosition(v.Aligns[col]))
			}
			if col < len(v.Widths) && v.Widths[col] > 0 {
				s = s.Width(v.Widths[col] + s.GetHorizontalPadding())
			}
			return s
		})
	if opts.Width > 0 {
		t = t.Width(opts.Width)
	}

	out := t.String()
	if v.Footer != nil {
		out += "\n" + v.Footer.draw(st)
	}
	return out
}

func (f *Footer) draw(st Styles) string {
	parts := make([]string, 0, len(f.Items)+2)
	parts = append(parts, st.Page.Render("‹"))
	for _, it := range f.Items {
		if it.Selected {
			parts = append(parts, st.PageActive.Render(it.Label()))
			continue
		}
		parts = append(parts, st.Page.Render(it.Label()))
	}
	parts = append(parts, st.Page.Render("›"))
	return st.Summary.Render(f.State.Summary()) + "  " + strings.Join(parts, "")
}

func alignPosition(a Align) lipgloss.Position {
	switch a {
	case AlignCenter:
		return lipgloss.Center
	case AlignRight:
		return lipgloss.Right
	default:
		return lipgloss.Left
	}
}
