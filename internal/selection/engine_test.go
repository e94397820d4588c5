package selection

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeDoc struct {
	name        string
	invalidated int
}

func (d *fakeDoc) Invalidate() { d.invalidated++ }

type recorder struct {
	events []string
	last   SelectionChanged
	moves  []MoveResult
}

func (r *recorder) OnSelectionChanged(e SelectionChanged) {
	r.last = e
	r.events = append(r.events, fmt.Sprintf("changed %v/%d", e.Selected, e.TotalRows))
}

func (r *recorder) OnMoveResult(m MoveResult) {
	r.moves = append(r.moves, m)
	r.events = append(r.events, fmt.Sprintf("moved %s %v/%d", m.Direction, m.Result.Rows, m.Result.Focus))
}

func docs(names ...string) []*fakeDoc {
	out := make([]*fakeDoc, len(names))
	for i, n := range names {
		out[i] = &fakeDoc{name: n}
	}
	return out
}

func newEngine(t *testing.T, names ...string) (*Engine, []*fakeDoc, *recorder) {
	t.Helper()
	rec := &recorder{}
	e := New("merge", nil, rec)
	ds := docs(names...)
	entries := make([]Entry, len(ds))
	for i, d := range ds {
		entries[i] = d
	}
	e.AddAll(entries)
	return e, ds, rec
}

func order(e *Engine) string {
	var out []string
	for _, it := range e.Entries() {
		out = append(out, it.(*fakeDoc).name)
	}
	return fmt.Sprint(out)
}

func TestMoveUpContiguousBlock(t *testing.T) {
	t.Parallel()
	e, _, _ := newEngine(t, "A", "B", "C", "D")
	e.Select([]int{1, 2}, 2)

	res := e.Move(Up)
	require.False(t, res.IsNoop())
	require.Equal(t, []int{0, 1}, res.Rows)
	require.Equal(t, 1, res.Focus)
	require.Equal(t, "[B C A D]", order(e))
	require.Equal(t, State{Selected: []int{0, 1}, Focus: 1}, e.Selection())
}

func TestMoveUpAtTopIsNoop(t *testing.T) {
	t.Parallel()
	e, _, rec := newEngine(t, "A", "B", "C")
	e.Select([]int{0}, 0)
	before := len(rec.events)

	res := e.Move(Up)
	require.True(t, res.IsNoop())
	require.Equal(t, "[A B C]", order(e))
	require.Equal(t, State{Selected: []int{0}, Focus: 0}, e.Selection())
	require.Len(t, rec.events, before)
}

func TestMoveDownAtBottomIsNoop(t *testing.T) {
	t.Parallel()
	e, _, _ := newEngine(t, "A", "B", "C")
	e.Select([]int{1, 2}, 1)

	require.True(t, e.Move(Down).IsNoop())
	require.Equal(t, "[A B C]", order(e))
	require.Equal(t, State{Selected: []int{1, 2}, Focus: 1}, e.Selection())
}

func TestMoveDownContiguousBlock(t *testing.T) {
	t.Parallel()
	e, _, _ := newEngine(t, "A", "B", "C", "D")
	e.Select([]int{1, 2}, 1)

	res := e.Move(Down)
	require.Equal(t, []int{2, 3}, res.Rows)
	require.Equal(t, 2, res.Focus)
	require.Equal(t, "[A D B C]", order(e))
}

func TestMoveNonContiguous(t *testing.T) {
	t.Parallel()
	e, _, _ := newEngine(t, "A", "B", "C", "D", "E")
	e.Select([]int{1, 3}, 3)

	res := e.Move(Up)
	require.Equal(t, []int{0, 2}, res.Rows)
	require.Equal(t, 2, res.Focus)
	require.Equal(t, "[B A D C E]", order(e))
}

func TestMoveFocusOutsideSelectionFollowsEntry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		dir       Direction
		selected  []int
		focus     int
		wantOrder string
		wantFocus int
	}{
		{name: "displaced above block", dir: Up, selected: []int{1, 2}, focus: 0, wantOrder: "[B C A D]", wantFocus: 2},
		{name: "untouched below block", dir: Up, selected: []int{1, 2}, focus: 3, wantOrder: "[B C A D]", wantFocus: 3},
		{name: "displaced below block", dir: Down, selected: []int{0, 1}, focus: 2, wantOrder: "[C A B D]", wantFocus: 0},
		{name: "no focus", dir: Down, selected: []int{0}, focus: NoFocus, wantOrder: "[B A C D]", wantFocus: NoFocus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, _ := newEngine(t, "A", "B", "C", "D")
			e.Select(tt.selected, tt.focus)
			res := e.Move(tt.dir)
			require.False(t, res.IsNoop())
			require.Equal(t, tt.wantOrder, order(e))
			require.Equal(t, tt.wantFocus, res.Focus)
			require.Equal(t, tt.wantFocus, e.Selection().Focus)
		})
	}
}

func TestMoveRoundTrip(t *testing.T) {
	t.Parallel()
	e, _, _ := newEngine(t, "A", "B", "C", "D")
	e.Select([]int{2}, 2)

	require.False(t, e.Move(Up).IsNoop())
	require.Equal(t, "[A C B D]", order(e))
	require.False(t, e.Move(Down).IsNoop())
	require.Equal(t, "[A B C D]", order(e))
	require.Equal(t, State{Selected: []int{2}, Focus: 2}, e.Selection())
}

func TestMoveEmpty(t *testing.T) {
	t.Parallel()
	e := New("split", nil)
	require.True(t, e.Move(Up).IsNoop())
	require.True(t, e.Move(Down).IsNoop())

	e2, _, _ := newEngine(t, "A", "B")
	require.True(t, e2.Move(Down).IsNoop())
	require.Equal(t, "[A B]", order(e2))
}

func TestMoveNotifiesSelectionThenMove(t *testing.T) {
	t.Parallel()
	e, _, rec := newEngine(t, "A", "B", "C")
	e.Select([]int{1}, 1)
	rec.events = nil

	e.Move(Down)
	require.Equal(t, []string{"changed [2]/3", "moved down [2]/2"}, rec.events)
	require.Len(t, rec.moves, 1)
	require.Equal(t, "merge", rec.moves[0].Owner)
}

// Exhaustive check of the move contract over every selection of small lists.
func TestMoveProperties(t *testing.T) {
	t.Parallel()
	names := []string{"A", "B", "C", "D", "E"}

	for n := 1; n <= len(names); n++ {
		for mask := 1; mask < 1<<n; mask++ {
			for focus := NoFocus; focus < n; focus++ {
				for _, dir := range []Direction{Up, Down} {
					e, _, _ := newEngine(t, names[:n]...)
					var sel []int
					for i := 0; i < n; i++ {
						if mask&(1<<i) != 0 {
							sel = append(sel, i)
						}
					}
					e.Select(sel, focus)
					before := e.Entries()
					selectedBefore := e.SelectedEntries()
					var focusedBefore Entry
					if focus != NoFocus {
						focusedBefore = before[focus]
					}

					res := e.Move(dir)
					atEdge := (dir == Up && sel[0] == 0) || (dir == Down && sel[len(sel)-1] == n-1)
					label := fmt.Sprintf("n=%d sel=%v focus=%d dir=%s", n, sel, focus, dir)

					if atEdge {
						require.True(t, res.IsNoop(), label)
						require.Equal(t, before, e.Entries(), label)
						require.Equal(t, State{Selected: sel, Focus: focus}, e.Selection(), label)
						continue
					}
					require.False(t, res.IsNoop(), label)
					require.Len(t, res.Rows, len(sel), label)
					for _, r := range res.Rows {
						require.GreaterOrEqual(t, r, 0, label)
						require.Less(t, r, n, label)
					}
					require.ElementsMatch(t, before, e.Entries(), label)
					require.ElementsMatch(t, selectedBefore, e.SelectedEntries(), label)
					if focusedBefore != nil {
						require.Equal(t, focusedBefore, e.At(res.Focus), label)
					} else {
						require.Equal(t, NoFocus, res.Focus, label)
					}
				}
			}
		}
	}
}

func TestRemoveSelectedAll(t *testing.T) {
	t.Parallel()
	e, ds, rec := newEngine(t, "A", "B")
	e.Select([]int{0, 1}, 1)

	e.RemoveSelected()
	require.Equal(t, 0, e.Len())
	require.Equal(t, State{Focus: NoFocus}, e.Selection())
	require.Equal(t, 1, ds[0].invalidated)
	require.Equal(t, 1, ds[1].invalidated)
	require.True(t, rec.last.IsClear())
	require.Equal(t, 0, rec.last.TotalRows)

	events := len(rec.events)
	e.RemoveSelected()
	require.Equal(t, 0, e.Len())
	require.Len(t, rec.events, events)
	require.Equal(t, 1, ds[0].invalidated)
}

func TestRemoveSelectedNonContiguous(t *testing.T) {
	t.Parallel()
	e, ds, _ := newEngine(t, "A", "B", "C", "D", "E")
	e.Select([]int{4, 0, 2}, 2)

	e.RemoveSelected()
	require.Equal(t, "[B D]", order(e))
	got := make([]int, len(ds))
	for i, d := range ds {
		got[i] = d.invalidated
	}
	require.Equal(t, []int{1, 0, 1, 0, 1}, got)

	e.RemoveSelected()
	require.Equal(t, "[B D]", order(e))
}

func TestAddAllKeepsSelection(t *testing.T) {
	t.Parallel()
	e, _, rec := newEngine(t, "A", "B")
	e.Select([]int{1}, 1)
	require.False(t, rec.last.CanMove(Down))

	e.AddAll([]Entry{&fakeDoc{name: "C"}})
	require.Equal(t, State{Selected: []int{1}, Focus: 1}, e.Selection())
	require.Equal(t, 3, rec.last.TotalRows)
	require.Equal(t, []int{1}, rec.last.Selected)
	require.True(t, rec.last.CanMove(Down))
}

func TestAddAllWithoutSelectionIsSilent(t *testing.T) {
	t.Parallel()
	e, _, rec := newEngine(t)
	e.AddAll([]Entry{&fakeDoc{name: "A"}})
	require.Empty(t, rec.events)
	require.Equal(t, 1, e.Len())
}

func TestAddAllSkipsDuplicatesAndNil(t *testing.T) {
	t.Parallel()
	e, ds, _ := newEngine(t, "A", "B")
	e.AddAll([]Entry{ds[0], nil, &fakeDoc{name: "C"}, ds[1]})
	require.Equal(t, "[A B C]", order(e))
	require.Equal(t, 1, e.Index(ds[1]))
}

func TestClearAll(t *testing.T) {
	t.Parallel()
	e, ds, rec := newEngine(t, "A", "B", "C")
	e.Select([]int{1}, 1)

	e.ClearAll()
	require.Equal(t, 0, e.Len())
	require.Equal(t, State{Focus: NoFocus}, e.Selection())
	for _, d := range ds {
		require.Equal(t, 1, d.invalidated)
	}
	require.True(t, rec.last.IsClear())

	events := len(rec.events)
	e.ClearAll()
	require.Len(t, rec.events, events)
}

func TestSelectDropsOutOfRange(t *testing.T) {
	t.Parallel()
	e, _, rec := newEngine(t, "A", "B", "C")

	e.Select([]int{2, -1, 7, 2, 0}, 9)
	require.Equal(t, State{Selected: []int{0, 2}, Focus: NoFocus}, e.Selection())
	require.Equal(t, []int{0, 2}, rec.last.Selected)

	events := len(rec.events)
	e.Select([]int{0, 2}, NoFocus)
	require.Len(t, rec.events, events)
}

func TestToggleExtendAndSelectAll(t *testing.T) {
	t.Parallel()
	e, _, _ := newEngine(t, "A", "B", "C", "D")

	e.SetFocus(1)
	e.ExtendTo(3)
	require.Equal(t, State{Selected: []int{1, 2, 3}, Focus: 3}, e.Selection())
	e.ExtendTo(0)
	require.Equal(t, State{Selected: []int{0, 1}, Focus: 0}, e.Selection())

	e.Toggle(0)
	require.Equal(t, State{Selected: []int{1}, Focus: 0}, e.Selection())
	e.Toggle(3)
	require.Equal(t, State{Selected: []int{1, 3}, Focus: 3}, e.Selection())

	e.SelectAll()
	require.Equal(t, []int{0, 1, 2, 3}, e.Selection().Selected)
	e.ClearSelection()
	require.True(t, e.Selection().IsEmpty())
	require.Equal(t, 3, e.Selection().Focus)
}

func TestSnapshotsAreCopies(t *testing.T) {
	t.Parallel()
	e, _, _ := newEngine(t, "A", "B")
	e.Select([]int{0}, 0)

	s := e.Selection()
	s.Selected[0] = 1
	entries := e.Entries()
	slices.Reverse(entries)

	require.Equal(t, []int{0}, e.Selection().Selected)
	require.Equal(t, "[A B]", order(e))
}

func TestSelectionChangedCanMove(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ev       SelectionChanged
		up, down bool
		single   bool
	}{
		{name: "clear", ev: SelectionChanged{TotalRows: 3}},
		{name: "middle", ev: SelectionChanged{Selected: []int{1}, TotalRows: 3}, up: true, down: true, single: true},
		{name: "top", ev: SelectionChanged{Selected: []int{0, 1}, TotalRows: 3}, down: true},
		{name: "bottom", ev: SelectionChanged{Selected: []int{2}, TotalRows: 3}, up: true, single: true},
		{name: "all", ev: SelectionChanged{Selected: []int{0, 1, 2}, TotalRows: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.up, tt.ev.CanMove(Up))
			require.Equal(t, tt.down, tt.ev.CanMove(Down))
			require.Equal(t, tt.single, tt.ev.IsSingleSelection())
		})
	}
}
