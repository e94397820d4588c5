package tui

import (
	"go.uber.org/zap"

	"github.com/jask/pdfsel/internal/document"
	"github.com/jask/pdfsel/internal/prefs"
	"github.com/jask/pdfsel/internal/selection"
)

// pane is one module's selection table. It listens to its own engine so the
// action menu always reflects the latest selection.
type pane struct {
	engine   *selection.Engine
	output   string
	last     selection.SelectionChanged
	lastMove *selection.MoveResult
	offset   int
}

func newPane(name string, logger *zap.Logger) *pane {
	p := &pane{last: selection.SelectionChanged{Owner: name}}
	p.engine = selection.New(name, logger, p)
	return p
}

// name is the module the pane's engine serves.
func (p *pane) name() string { return p.engine.Owner() }

func (p *pane) OnSelectionChanged(e selection.SelectionChanged) { p.last = e }

func (p *pane) OnMoveResult(m selection.MoveResult) { p.lastMove = &m }

func (p *pane) add(docs []*document.Descriptor) {
	entries := make([]selection.Entry, len(docs))
	for i, d := range docs {
		entries[i] = d
	}
	p.engine.AddAll(entries)
}

func (p *pane) doc(i int) *document.Descriptor {
	d, _ := p.engine.At(i).(*document.Descriptor)
	return d
}

func (p *pane) docs() []*document.Descriptor {
	entries := p.engine.Entries()
	out := make([]*document.Descriptor, 0, len(entries))
	for _, e := range entries {
		if d, ok := e.(*document.Descriptor); ok {
			out = append(out, d)
		}
	}
	return out
}

// single returns the selected document when exactly one row is selected.
func (p *pane) single() (*document.Descriptor, bool) {
	sel := p.engine.Selection().Selected
	if len(sel) != 1 {
		return nil, false
	}
	d := p.doc(sel[0])
	return d, d != nil
}

// focusOr returns the focus, or fallback when nothing is focused.
func (p *pane) focusOr(fallback int) int {
	if f := p.engine.Selection().Focus; f != selection.NoFocus {
		return f
	}
	return fallback
}

// scrollTo keeps row inside a window of height rows.
func (p *pane) scrollTo(row, height int) {
	if height <= 0 {
		return
	}
	if row < p.offset {
		p.offset = row
	}
	if row >= p.offset+height {
		p.offset = row - height + 1
	}
	if maxOffset := max(p.engine.Len()-height, 0); p.offset > maxOffset {
		p.offset = maxOffset
	}
	if p.offset < 0 {
		p.offset = 0
	}
}

func (p *pane) state() prefs.ModuleState {
	st := p.engine.Selection()
	ms := prefs.ModuleState{Name: p.name(), Selected: st.Selected, Focus: st.Focus, Output: p.output}
	for _, d := range p.docs() {
		ms.Documents = append(ms.Documents, d.Path)
	}
	return ms
}

// restore applies a saved selection to the n documents just appended at
// base. The documents were loaded with Loader.LoadAll, so the i-th PDF path of
// ms.Documents is row base+k where k counts the PDF paths before it. Saved
// indices that map past the loaded rows are dropped.
func (p *pane) restore(ms prefs.ModuleState, base, n int) {
	p.output = ms.Output
	rows := make([]int, len(ms.Documents))
	k := 0
	for i, path := range ms.Documents {
		rows[i] = selection.NoFocus
		if document.PDF.Matches(path) {
			if k < n {
				rows[i] = base + k
			}
			k++
		}
	}
	row := func(i int) int {
		if i < 0 || i >= len(rows) {
			return selection.NoFocus
		}
		return rows[i]
	}
	var sel []int
	for _, i := range ms.Selected {
		if r := row(i); r != selection.NoFocus {
			sel = append(sel, r)
		}
	}
	focus := row(ms.Focus)
	if len(sel) > 0 || focus != selection.NoFocus {
		p.engine.Select(sel, focus)
	}
}
