package selection

import (
	"fmt"
	"slices"
)

// SelectionAndFocus is the selection a move leaves behind. The zero value is
// not meaningful; compare against NoMove with IsNoop.
type SelectionAndFocus struct {
	Rows  []int
	Focus int
	noop  bool
}

// NoMove is returned when a move would not change anything.
var NoMove = SelectionAndFocus{Focus: NoFocus, noop: true}

// IsNoop reports whether s is the NoMove sentinel.
func (s SelectionAndFocus) IsNoop() bool { return s.noop }

func (s SelectionAndFocus) String() string {
	if s.noop {
		return "SelectionAndFocus{noop}"
	}
	return fmt.Sprintf("SelectionAndFocus{rows=%v focus=%d}", s.Rows, s.Focus)
}

// move shifts the selected rows of items one step in direction d, swapping in
// place. selected must hold valid, unique indices into items. items is left
// untouched when NoMove is returned.
func move(d Direction, selected []int, items []Entry, focus int) SelectionAndFocus {
	if len(selected) == 0 || len(items) == 0 {
		return NoMove
	}
	rows := slices.Clone(selected)
	slices.Sort(rows)

	var step int
	switch d {
	case Up:
		if rows[0] <= 0 {
			return NoMove
		}
		step = -1
	case Down:
		if rows[len(rows)-1] >= len(items)-1 {
			return NoMove
		}
		// walk from the bottom so a moved row never lands on one still waiting
		slices.Reverse(rows)
		step = 1
	default:
		return NoMove
	}

	newFocus := focus
	for k, i := range rows {
		j := i + step
		items[i], items[j] = items[j], items[i]
		rows[k] = j
		// focus follows the entry it was on
		switch newFocus {
		case i:
			newFocus = j
		case j:
			newFocus = i
		}
	}
	slices.Sort(rows)

	before := slices.Clone(selected)
	slices.Sort(before)
	if slices.Equal(rows, before) && newFocus == focus {
		return NoMove
	}
	return SelectionAndFocus{Rows: rows, Focus: newFocus}
}
