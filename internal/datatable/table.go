package datatable

// DefaultEmptyMessage is shown when Props.EmptyMessage is empty.
const DefaultEmptyMessage = "No data available"

// DefaultActionsTitle heads the trailing actions column.
const DefaultActionsTitle = "Actions"

// Props is the full configuration surface of the table. The caller owns the
// data and the current page; both are supplied fresh on every render.
type Props struct {
	Columns []Column
	Data    []Row

	Loading bool
	Error   error
	OnRetry func()

	Pagination   *Pagination
	OnPageChange func(page int)

	EmptyMessage string
	RowKey       string
	OnRowClick   func(row Row, index int)

	Actions      Actions
	ActionsTitle string

	ServerSide   bool
	TotalCount   int
	ItemsPerPage int

	Labels Labels
}

// State is the display state, chosen by SelectState.
type State int

const (
	StateLoading State = iota
	StateError
	StateEmpty
	StateTable
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateEmpty:
		return "empty"
	default:
		return "table"
	}
}

// SelectState applies the state priority: loading, error, empty, table.
func SelectState(p Props) State {
	switch {
	case p.Loading:
		return StateLoading
	case p.Error != nil:
		return StateError
	case len(p.Data) == 0:
		return StateEmpty
	default:
		return StateTable
	}
}

// RenderedRow is one body row after cell formatting.
type RenderedRow struct {
	Key     string
	Cells   []string
	Actions string
}

// Footer is the pagination footer. It is nil when no footer is drawn.
type Footer struct {
	State PageState
	Items []PageItem
}

// View is the rendered output of Props, independent of how it is drawn.
type View struct {
	State   State
	Message string
	Retry   bool

	Header     []string
	Aligns     []Align
	Widths     []int
	HasActions bool
	Rows       []RenderedRow
	Footer     *Footer
}

// Render turns Props into a View. It never fails on incomplete props.
func Render(p Props) View {
	v := View{State: SelectState(p)}
	switch v.State {
	case StateLoading:
		v.Message = "Loading..."
		return v
	case StateError:
		v.Message = p.Error.Error()
		v.Retry = p.OnRetry != nil
		return v
	case StateEmpty:
		v.Message = p.EmptyMessage
		if v.Message == "" {
			v.Message = DefaultEmptyMessage
		}
		return v
	}

	for _, c := range p.Columns {
		v.Header = append(v.Header, c.Title)
		v.Aligns = append(v.Aligns, c.Align)
		v.Widths = append(v.Widths, c.Width)
	}
	if p.Actions != nil {
		v.HasActions = true
		title := p.ActionsTitle
		if title == "" {
			title = DefaultActionsTitle
		}
		v.Header = append(v.Header, title)
		v.Aligns = append(v.Aligns, AlignRight)
		v.Widths = append(v.Widths, 0)
	}

	v.Rows = make([]RenderedRow, len(p.Data))
	for i, row := range p.Data {
		cells := make([]string, len(p.Columns))
		for j, c := range p.Columns {
			cells[j] = renderCell(c, row, i, p.Labels)
		}
		r := RenderedRow{Key: row.Key(p.RowKey, i), Cells: cells}
		if p.Actions != nil {
			r.Actions = p.Actions(row, i)
		}
		v.Rows[i] = r
	}

	if state, ok := ResolveMode(p).Resolve(); ok {
		v.Footer = &Footer{
			State: state,
			Items: Window(SelectedIndex(state.Current), state.TotalPages, PageRangeDisplayed, MarginPagesDisplayed),
		}
	}
	return v
}

// ColumnCount is the number of rendered columns including actions.
func (v View) ColumnCount() int { return len(v.Header) }

// cellsWithActions appends the actions cell when the view has one.
func (r RenderedRow) cellsWithActions(hasActions bool) []string {
	out := make([]string, 0, len(r.Cells)+1)
	out = append(out, r.Cells...)
	if hasActions {
		out = append(out, r.Actions)
	}
	return out
}
