// Package selection keeps the ordered list of documents picked for a job
// together with the rows the user has selected and the focused row.
//
// Every selected index and the focus always point inside the list, or the
// focus is NoFocus. The Engine is not safe for concurrent use; callers
// serialize access, typically from a single UI loop.
package selection

import (
	"slices"

	"go.uber.org/zap"
)

// Entry is one document held in the list. Entries are compared by identity,
// so implementations must be comparable, normally pointer types.
type Entry interface {
	// Invalidate releases the document behind the entry. It must be idempotent.
	Invalidate()
}

// State is a snapshot of the selection. Selected is ascending.
type State struct {
	Selected []int
	Focus    int
}

// IsEmpty reports whether no rows are selected.
func (s State) IsEmpty() bool { return len(s.Selected) == 0 }

// Engine owns the ordered entries and the selection over them.
type Engine struct {
	owner    string
	logger   *zap.Logger
	items    []Entry
	selected []int
	focus    int
	anchor   int
	sinks    []Sink
}

// New creates an empty engine for the named owner (the module the list
// belongs to). Sinks are notified in the order given, then in Subscribe order.
func New(owner string, logger *zap.Logger, sinks ...Sink) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		owner:  owner,
		logger: logger.With(zap.String("owner", owner)),
		focus:  NoFocus,
		anchor: NoFocus,
		sinks:  slices.Clone(sinks),
	}
}

// Subscribe appends s to the observer list.
func (e *Engine) Subscribe(s Sink) {
	if s != nil {
		e.sinks = append(e.sinks, s)
	}
}

// Owner names the list; it is carried on every event the engine emits.
func (e *Engine) Owner() string { return e.owner }

// Len returns the number of entries.
func (e *Engine) Len() int { return len(e.items) }

// At returns the entry at i, or nil when i is out of range.
func (e *Engine) At(i int) Entry {
	if i < 0 || i >= len(e.items) {
		return nil
	}
	return e.items[i]
}

// Index returns the position of entry, or -1.
func (e *Engine) Index(entry Entry) int {
	return slices.Index(e.items, entry)
}

// Entries returns a copy of the ordered entries.
func (e *Engine) Entries() []Entry { return slices.Clone(e.items) }

// Selection returns a copy of the current selection.
func (e *Engine) Selection() State {
	return State{Selected: slices.Clone(e.selected), Focus: e.focus}
}

// SelectedEntries returns the selected entries in list order.
func (e *Engine) SelectedEntries() []Entry {
	out := make([]Entry, 0, len(e.selected))
	for _, i := range e.selected {
		out = append(out, e.items[i])
	}
	return out
}

// AddAll appends entries in order. Nil entries and entries already in the
// list are skipped. The selection is untouched; when rows are selected,
// observers get a SelectionChanged carrying the new row count.
func (e *Engine) AddAll(entries []Entry) {
	present := make(map[Entry]struct{}, len(e.items)+len(entries))
	for _, it := range e.items {
		present[it] = struct{}{}
	}
	added := 0
	for _, it := range entries {
		if it == nil {
			continue
		}
		if _, ok := present[it]; ok {
			continue
		}
		present[it] = struct{}{}
		e.items = append(e.items, it)
		added++
	}
	if added == 0 {
		return
	}
	e.logger.Debug("entries added", zap.Int("added", added), zap.Int("total_rows", len(e.items)))
	if len(e.selected) > 0 {
		e.notifySelection()
	}
}

// RemoveSelected invalidates and removes every selected entry, then clears
// the selection and focus. It does nothing when no rows are selected.
func (e *Engine) RemoveSelected() {
	if len(e.selected) == 0 {
		return
	}
	doomed := make(map[Entry]struct{}, len(e.selected))
	for _, it := range e.SelectedEntries() {
		it.Invalidate()
		doomed[it] = struct{}{}
	}
	e.items = slices.DeleteFunc(e.items, func(it Entry) bool {
		_, ok := doomed[it]
		return ok
	})
	e.logger.Debug("selected entries removed", zap.Int("removed", len(doomed)), zap.Int("total_rows", len(e.items)))
	e.resetSelection()
	e.notifySelection()
}

// ClearAll invalidates every entry and empties the list and the selection.
func (e *Engine) ClearAll() {
	if len(e.items) == 0 && len(e.selected) == 0 && e.focus == NoFocus {
		return
	}
	hadSelection := len(e.selected) > 0
	for _, it := range e.items {
		it.Invalidate()
	}
	e.logger.Debug("entries cleared", zap.Int("removed", len(e.items)))
	clear(e.items)
	e.items = e.items[:0]
	e.resetSelection()
	if hadSelection {
		e.notifySelection()
	}
}

// Move shifts the selected rows one position in direction d. It returns
// NoMove, leaving everything untouched, when nothing is selected or the
// selection already touches the edge it is moving towards.
func (e *Engine) Move(d Direction) SelectionAndFocus {
	res := move(d, e.selected, e.items, e.focus)
	if res.IsNoop() {
		e.logger.Debug("move skipped", zap.Stringer("direction", d))
		return NoMove
	}
	e.selected = slices.Clone(res.Rows)
	e.focus = res.Focus
	e.anchor = res.Focus
	e.logger.Debug("selection moved", zap.Stringer("direction", d), zap.Ints("rows", res.Rows), zap.Int("focus", res.Focus))
	e.notifySelection()
	for _, s := range e.sinks {
		s.OnMoveResult(MoveResult{Owner: e.owner, Direction: d, Result: res})
	}
	return res
}

// Select replaces the selection. Out of range indices are dropped and
// duplicates collapsed; an out of range focus becomes NoFocus.
func (e *Engine) Select(indices []int, focus int) {
	next := make([]int, 0, len(indices))
	dropped := 0
	for _, i := range indices {
		if i < 0 || i >= len(e.items) {
			dropped++
			continue
		}
		next = append(next, i)
	}
	slices.Sort(next)
	next = slices.Compact(next)
	if focus < 0 || focus >= len(e.items) {
		focus = NoFocus
	}
	if dropped > 0 {
		e.logger.Warn("out of range selection ignored", zap.Int("dropped", dropped), zap.Int("total_rows", len(e.items)))
	}
	e.anchor = focus
	e.apply(next, focus)
}

// SetFocus focuses row i and makes it the only selected row.
func (e *Engine) SetFocus(i int) {
	e.Select([]int{i}, i)
}

// ExtendTo selects the rows between the anchor and i, inclusive, and focuses i.
func (e *Engine) ExtendTo(i int) {
	if i < 0 || i >= len(e.items) {
		return
	}
	anchor := e.anchor
	if anchor < 0 || anchor >= len(e.items) {
		anchor = i
	}
	lo, hi := min(anchor, i), max(anchor, i)
	rows := make([]int, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		rows = append(rows, r)
	}
	e.apply(rows, i)
	e.anchor = anchor
}

// Toggle flips the membership of row i and focuses it.
func (e *Engine) Toggle(i int) {
	if i < 0 || i >= len(e.items) {
		return
	}
	rows := slices.Clone(e.selected)
	if pos, found := slices.BinarySearch(rows, i); found {
		rows = slices.Delete(rows, pos, pos+1)
	} else {
		rows = slices.Insert(rows, pos, i)
	}
	e.anchor = i
	e.apply(rows, i)
}

// SelectAll selects every row, keeping the focus.
func (e *Engine) SelectAll() {
	rows := make([]int, len(e.items))
	for i := range rows {
		rows[i] = i
	}
	e.apply(rows, e.focus)
}

// ClearSelection deselects every row, keeping the focus.
func (e *Engine) ClearSelection() {
	e.apply(nil, e.focus)
}

func (e *Engine) apply(rows []int, focus int) {
	changed := !slices.Equal(rows, e.selected)
	if !changed && focus == e.focus {
		return
	}
	e.selected = rows
	e.focus = focus
	if changed {
		e.notifySelection()
	}
}

func (e *Engine) resetSelection() {
	e.selected = nil
	e.focus = NoFocus
	e.anchor = NoFocus
}

func (e *Engine) notifySelection() {
	ev := SelectionChanged{
		Owner:     e.owner,
		Selected:  slices.Clone(e.selected),
		TotalRows: len(e.items),
	}
	e.logger.Debug("selection changed", zap.Stringer("event", ev))
	for _, s := range e.sinks {
		s.OnSelectionChanged(ev)
	}
}
