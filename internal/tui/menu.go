package tui

import "github.com/jask/pdfsel/internal/selection"

type menuAction int

const (
	actionRemove menuAction = iota
	actionMoveUp
	actionMoveDown
	actionProperties
	actionSetOutput
	actionClearAll
	actionForgetHistory
)

type menuItem struct {
	action  menuAction
	label   string
	hint    string
	enabled bool
}

// menuItems mirrors the table's context menu: every item starts disabled and
// is enabled from the last selection event.
func menuItems(ev selection.SelectionChanged, rows int, history bool) []menuItem {
	return []menuItem{
		{action: actionRemove, label: "Remove", hint: "del", enabled: !ev.IsClear()},
		{action: actionMoveUp, label: "Move Up", hint: "alt+↑", enabled: ev.CanMove(selection.Up)},
		{action: actionMoveDown, label: "Move Down", hint: "alt+↓", enabled: ev.CanMove(selection.Down)},
		{action: actionProperties, label: "Document properties", hint: "alt+p", enabled: ev.IsSingleSelection()},
		{action: actionSetOutput, label: "Set output", hint: "alt+o", enabled: ev.IsSingleSelection()},
		{action: actionClearAll, label: "Clear all", hint: "ctrl+x", enabled: rows > 0},
		{action: actionForgetHistory, label: "Forget recent documents", hint: "ctrl+h", enabled: history},
	}
}

type menuState struct {
	items  []menuItem
	cursor int
}

func (m *menuState) up() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *menuState) down() {
	if m.cursor < len(m.items)-1 {
		m.cursor++
	}
}

// current returns the item under the cursor if it is enabled.
func (m *menuState) current() (menuItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return menuItem{}, false
	}
	it := m.items[m.cursor]
	return it, it.enabled
}
