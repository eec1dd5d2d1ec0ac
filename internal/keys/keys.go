package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Search
	Search key.Binding

	// Command palette
	Command key.Binding

	// Help toggle
	Help key.Binding

	// Task actions
	New      key.Binding
	Edit     key.Binding
	Toggle   key.Binding
	Delete   key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding

	// View
	CycleFilter key.Binding
	CycleSort   key.Binding
	Theme       key.Binding

	// Pomodoro
	FocusStart   key.Binding
	FocusReset   key.Binding
	FocusSkip    key.Binding
	WorkLonger   key.Binding
	WorkShorter  key.Binding
	BreakLonger  key.Binding
	BreakShorter key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open detail"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new task"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit task"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "toggle done"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete task"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		CycleFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "cycle filter"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "cycle sort"),
		),
		Theme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "dark/light"),
		),
		FocusStart: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "start/pause timer"),
		),
		FocusReset: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "reset timer"),
		),
		FocusSkip: key.NewBinding(
			key.WithKeys(">"),
			key.WithHelp(">", "skip phase"),
		),
		WorkLonger: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "work +1m"),
		),
		WorkShorter: key.NewBinding(
			key.WithKeys("W"),
			key.WithHelp("W", "work -1m"),
		),
		BreakLonger: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "break +1m"),
		),
		BreakShorter: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "break -1m"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.New,
		k.Toggle, k.FocusStart, k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.New, k.Edit, k.Toggle, k.Delete, k.MoveUp, k.MoveDown},
		{k.Search, k.CycleFilter, k.CycleSort, k.Command, k.Theme, k.Help},
		{k.FocusStart, k.FocusReset, k.FocusSkip, k.WorkLonger, k.WorkShorter, k.BreakLonger, k.BreakShorter},
	}
}
