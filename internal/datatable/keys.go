package datatable

import "github.com/charmbracelet/bubbles/key"

// KeyMap binds the table's interactions.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Open      key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	FirstPage key.Binding
	LastPage  key.Binding
	Retry     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		PrevPage:  key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←/h", "prev page")),
		NextPage:  key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→/l", "next page")),
		FirstPage: key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first page")),
		LastPage:  key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last page")),
		Retry:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.PrevPage, k.NextPage}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open},
		{k.PrevPage, k.NextPage, k.FirstPage, k.LastPage},
		{k.Retry},
	}
}
