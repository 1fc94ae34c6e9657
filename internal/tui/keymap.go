package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings of the app.
type KeyMap struct {
	// Sections
	Home    key.Binding
	Posts   key.Binding
	Contact key.Binding

	// Navigation
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding

	// Actions
	Theme      key.Binding
	Fetch      key.Binding
	Details    key.Binding
	Open       key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	Submit     key.Binding
	CloseToast key.Binding
	Close      key.Binding
	Help       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Home: key.NewBinding(
			key.WithKeys("f1", "1"),
			key.WithHelp("1/F1", "home"),
		),
		Posts: key.NewBinding(
			key.WithKeys("f2", "2"),
			key.WithHelp("2/F2", "posts"),
		),
		Contact: key.NewBinding(
			key.WithKeys("f3", "3"),
			key.WithHelp("3/F3", "contact"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous card"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next card"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "card above"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "card below"),
		),
		Theme: key.NewBinding(
			key.WithKeys("ctrl+t", "t"),
			key.WithHelp("t/ctrl+t", "change theme"),
		),
		Fetch: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fetch / clear posts"),
		),
		Details: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "view details"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in browser"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "send message"),
		),
		CloseToast: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "dismiss toast"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "enter", "q"),
			key.WithHelp("esc", "close"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// ShortHelp returns key bindings to be shown in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Home, k.Posts, k.Contact, k.Theme, k.Help, k.Quit}
}

// FullHelp returns key bindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Home, k.Posts, k.Contact, k.Theme},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Fetch, k.Details, k.Open, k.Close, k.CloseToast},
		{k.NextField, k.PrevField, k.Submit, k.Help, k.Quit},
	}
}
