package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	NextPane   key.Binding
	PrevPane   key.Binding
	Up         key.Binding
	Down       key.Binding
	ExtendUp   key.Binding
	ExtendDown key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Toggle     key.Binding
	SelectAll  key.Binding
	Deselect   key.Binding
	MoveUp     key.Binding
	MoveDown   key.Binding
	Remove     key.Binding
	ClearAll   key.Binding
	Add        key.Binding
	Menu       key.Binding
	Properties key.Binding
	SetOutput  key.Binding
	Forget     key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
	Enter      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NextPane:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next module")),
		PrevPane:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev module")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		ExtendUp:   key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("shift+↑", "extend up")),
		ExtendDown: key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("shift+↓", "extend down")),
		Top:        key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home", "first")),
		Bottom:     key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end", "last")),
		Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		SelectAll:  key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),
		Deselect:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "deselect")),
		MoveUp:     key.NewBinding(key.WithKeys("alt+up", "alt+k"), key.WithHelp("alt+↑", "move up")),
		MoveDown:   key.NewBinding(key.WithKeys("alt+down", "alt+j"), key.WithHelp("alt+↓", "move down")),
		Remove:     key.NewBinding(key.WithKeys("delete", "backspace", "x"), key.WithHelp("del", "remove")),
		ClearAll:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear all")),
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add files")),
		Menu:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		Properties: key.NewBinding(key.WithKeys("alt+p"), key.WithHelp("alt+p", "properties")),
		SetOutput:  key.NewBinding(key.WithKeys("alt+o"), key.WithHelp("alt+o", "set output")),
		Forget:     key.NewBinding(key.WithKeys("ctrl+h"), key.WithHelp("ctrl+h", "forget recent")),
		Confirm:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		Cancel:     key.NewBinding(key.WithKeys("esc", "n"), key.WithHelp("esc", "cancel")),
		Enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	}
}

func (k keyMap) tableHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.MoveUp, k.MoveDown, k.Remove, k.Menu, k.NextPane, k.Quit}
}

func (k keyMap) menuHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Cancel}
}

func (k keyMap) promptHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "accept")),
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "suggestion")),
		key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "forget suggestion")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k keyMap) confirmHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}
