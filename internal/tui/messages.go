package tui

import (
	"github.com/jask/pdfsel/internal/document"
	"github.com/jask/pdfsel/internal/prefs"
	"github.com/jask/pdfsel/internal/service"
)

type statusMsg string

type errMsg struct{ error }

// workspaceMsg carries a restored workspace.
type workspaceMsg struct{ ws prefs.Workspace }

// loadedMsg carries inspected documents for module. restore, when set, is the
// saved selection to apply once the documents are in the table.
type loadedMsg struct {
	module  string
	docs    []*document.Descriptor
	restore *prefs.ModuleState
}

type suggestionsMsg struct {
	query string
	items []service.Suggestion
}

type historyForgottenMsg struct{}

type suggestionForgottenMsg struct{ path string }
