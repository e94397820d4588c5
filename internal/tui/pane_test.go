package tui

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jask/pdfsel/internal/document"
	"github.com/jask/pdfsel/internal/prefs"
	"github.com/jask/pdfsel/internal/selection"
)

func descriptors(paths ...string) []*document.Descriptor {
	out := make([]*document.Descriptor, len(paths))
	for i, p := range paths {
		out[i] = document.NewDescriptor(p)
	}
	return out
}

func TestPaneNameComesFromEngine(t *testing.T) {
	t.Parallel()
	p := newPane("split", zap.NewNop())
	require.Equal(t, "split", p.name())
	require.Equal(t, p.engine.Owner(), p.name())
	require.Equal(t, "split", p.last.Owner)
	require.Equal(t, "Split", capitalize(p.name()))
	require.Empty(t, capitalize(""))
}

func TestPaneTracksEvents(t *testing.T) {
	t.Parallel()
	p := newPane("merge", zap.NewNop())
	p.add(descriptors("/a.pdf", "/b.pdf", "/c.pdf"))
	require.True(t, p.last.IsClear())

	p.engine.SetFocus(1)
	require.Equal(t, []int{1}, p.last.Selected)
	require.Equal(t, 3, p.last.TotalRows)
	require.Nil(t, p.lastMove)

	p.engine.Move(selection.Down)
	require.NotNil(t, p.lastMove)
	require.Equal(t, selection.Down, p.lastMove.Direction)
	require.Equal(t, []int{2}, p.last.Selected)
	require.Equal(t, "b.pdf", p.doc(2).Name)
}

func TestPaneSingle(t *testing.T) {
	t.Parallel()
	p := newPane("split", zap.NewNop())
	p.add(descriptors("/a.pdf", "/b.pdf"))

	_, ok := p.single()
	require.False(t, ok)

	p.engine.SetFocus(1)
	d, ok := p.single()
	require.True(t, ok)
	require.Equal(t, "b.pdf", d.Name)

	p.engine.SelectAll()
	_, ok = p.single()
	require.False(t, ok)
}

func TestPaneStateAndRestore(t *testing.T) {
	t.Parallel()
	p := newPane("merge", zap.NewNop())
	p.add(descriptors("/a.pdf", "/b.pdf", "/c.pdf"))
	p.engine.Select([]int{0, 2}, 2)
	p.output = "/out/merged.pdf"

	st := p.state()
	require.Equal(t, prefs.ModuleState{
		Name:      "merge",
		Documents: []string{"/a.pdf", "/b.pdf", "/c.pdf"},
		Selected:  []int{0, 2},
		Focus:     2,
		Output:    "/out/merged.pdf",
	}, st)

	q := newPane("merge", zap.NewNop())
	q.add(descriptors("/a.pdf", "/b.pdf"))
	q.restore(st, 0, 2)
	require.Equal(t, []int{0}, q.engine.Selection().Selected, "indices past the reloaded rows are dropped")
	require.Equal(t, selection.NoFocus, q.engine.Selection().Focus)
	require.Equal(t, "/out/merged.pdf", q.output)
}

func TestPaneRestoreOffsetsPastExistingRows(t *testing.T) {
	t.Parallel()
	p := newPane("merge", zap.NewNop())
	p.add(descriptors("/x.pdf"))
	p.add(descriptors("/b.pdf", "/c.pdf"))

	p.restore(prefs.ModuleState{Documents: []string{"/b.pdf", "/c.pdf"}, Selected: []int{1}, Focus: 1}, 1, 2)
	require.Equal(t, selection.State{Selected: []int{2}, Focus: 2}, p.engine.Selection())
	require.Equal(t, "c.pdf", p.doc(2).Name)
}

func TestPaneRestoreRepeatedAndSkippedPaths(t *testing.T) {
	t.Parallel()
	p := newPane("split", zap.NewNop())
	p.add(descriptors("/a.pdf", "/a.pdf", "/b.pdf"))
	require.Equal(t, 3, p.engine.Len())

	p.restore(prefs.ModuleState{
		Documents: []string{"/a.pdf", "/notes.txt", "/a.pdf", "/b.pdf"},
		Selected:  []int{1, 3},
		Focus:     3,
	}, 0, 3)
	require.Equal(t, selection.State{Selected: []int{2}, Focus: 2}, p.engine.Selection())
	require.Equal(t, "b.pdf", p.doc(2).Name)
}

func TestPaneScroll(t *testing.T) {
	t.Parallel()
	p := newPane("merge", zap.NewNop())
	p.add(descriptors("/1.pdf", "/2.pdf", "/3.pdf", "/4.pdf", "/5.pdf", "/6.pdf"))

	p.scrollTo(4, 3)
	require.Equal(t, 2, p.offset)
	p.scrollTo(5, 3)
	require.Equal(t, 3, p.offset)
	p.scrollTo(0, 3)
	require.Equal(t, 0, p.offset)
	p.scrollTo(5, 10)
	require.Equal(t, 0, p.offset)
}
