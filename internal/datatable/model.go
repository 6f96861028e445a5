package datatable

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the interactive wrapper around Render. It keeps only view-local
// state (cursor, size, spinner); data and the current page stay with the caller.
type Model struct {
	props   Props
	view    View
	keys    KeyMap
	styles  Styles
	spinner spinner.Model
	cursor  int
	width   int
}

// Option configures a Model.
type Option func(*Model)

func WithStyles(s Styles) Option { return func(m *Model) { m.styles = s } }
func WithKeyMap(k KeyMap) Option { return func(m *Model) { m.keys = k } }

func New(p Props, opts ...Option) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	m := Model{
		keys:    DefaultKeyMap(),
		styles:  DefaultStyles(),
		spinner: s,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.SetProps(p)
	return m
}

// SetProps replaces the props and re-renders. The returned command restarts
// the spinner when the table enters the loading state.
func (m *Model) SetProps(p Props) tea.Cmd {
	wasLoading := m.props.Loading
	m.props = p
	m.view = Render(p)
	m.cursor = clamp(m.cursor, 0, max(len(m.view.Rows)-1, 0))
	if p.Loading && !wasLoading {
		return m.spinner.Tick
	}
	return nil
}

func (m *Model) SetSize(width int) { m.width = width }

func (m Model) Props() Props   { return m.props }
func (m Model) Rendered() View { return m.view }
func (m Model) KeyMap() KeyMap { return m.keys }
func (m Model) Styles() Styles { return m.styles }

// Cursor is the highlighted row index, or -1 when no rows are shown.
func (m Model) Cursor() int {
	if m.view.State != StateTable {
		return -1
	}
	return m.cursor
}

// SelectedRow returns the row under the cursor.
func (m Model) SelectedRow() (Row, bool) {
	c := m.Cursor()
	if c < 0 || c >= len(m.props.Data) {
		return nil, false
	}
	return m.props.Data[c], true
}

func (m Model) Init() tea.Cmd {
	if m.props.Loading {
		return m.spinner.Tick
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.view.State != StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		switch m.view.State {
		case StateError:
			if key.Matches(msg, m.keys.Retry) && m.props.OnRetry != nil {
				m.props.OnRetry()
			}
		case StateTable:
			m.handleTableKey(msg)
		}
	}
	return m, nil
}

func (m *Model) handleTableKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.view.Rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		if row, ok := m.SelectedRow(); ok && m.props.OnRowClick != nil {
			m.props.OnRowClick(row, m.cursor)
		}
	case key.Matches(msg, m.keys.PrevPage):
		m.withSelector(PageSelector.Prev)
	case key.Matches(msg, m.keys.NextPage):
		m.withSelector(PageSelector.Next)
	case key.Matches(msg, m.keys.FirstPage):
		m.withSelector(PageSelector.First)
	case key.Matches(msg, m.keys.LastPage):
		m.withSelector(PageSelector.Last)
	}
}

func (m *Model) withSelector(fn func(PageSelector) bool) {
	if m.view.Footer == nil {
		return
	}
	if fn(NewPageSelector(m.view.Footer.State, m.props.OnPageChange)) {
		m.cursor = 0
	}
}

func (m Model) View() string {
	return m.view.Draw(m.styles, DrawOptions{
		Width:   m.width,
		Cursor:  m.Cursor(),
		Spinner: m.spinner.View(),
	})
}
