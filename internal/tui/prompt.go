package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/jask/pdfsel/internal/service"
)

type promptKind int

const (
	promptAdd promptKind = iota
	promptOutput
)

// promptState is the single line input used for adding files and for
// setting the output destination. Add prompts also list recent documents.
type promptState struct {
	kind        promptKind
	input       textinput.Model
	suggestions []service.Suggestion
	// cursor indexes suggestions; -1 means the typed text is used.
	cursor int
}

func newPrompt(kind promptKind, value string) promptState {
	in := textinput.New()
	in.Prompt = "› "
	in.CharLimit = 4096
	in.Width = 60
	switch kind {
	case promptAdd:
		in.Placeholder = "paths or a name from recent documents"
	case promptOutput:
		in.Placeholder = "output file"
	}
	in.SetValue(value)
	in.CursorEnd()
	in.Focus()
	return promptState{kind: kind, input: in, cursor: -1}
}

func (p *promptState) title() string {
	if p.kind == promptOutput {
		return "Set output"
	}
	return "Add PDF files"
}

func (p *promptState) setSuggestions(items []service.Suggestion) {
	p.suggestions = items
	if p.cursor >= len(items) {
		p.cursor = len(items) - 1
	}
}

func (p *promptState) up() {
	if p.cursor >= 0 {
		p.cursor--
	}
}

func (p *promptState) down() {
	if p.cursor < len(p.suggestions)-1 {
		p.cursor++
	}
}

// selected returns the highlighted suggestion.
func (p *promptState) selected() (service.Suggestion, bool) {
	if p.cursor >= 0 && p.cursor < len(p.suggestions) {
		return p.suggestions[p.cursor], true
	}
	return service.Suggestion{}, false
}

// drop removes the suggestion for path, keeping the cursor in range.
func (p *promptState) drop(path string) {
	p.suggestions = slices.DeleteFunc(p.suggestions, func(s service.Suggestion) bool { return s.Path == path })
	p.cursor = min(p.cursor, len(p.suggestions)-1)
}

// value is the highlighted suggestion's path, or the typed text.
func (p *promptState) value() string {
	if p.cursor >= 0 && p.cursor < len(p.suggestions) {
		return p.suggestions[p.cursor].Path
	}
	return p.input.Value()
}
