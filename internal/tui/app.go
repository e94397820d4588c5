package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/pdfsel/internal/document"
	"github.com/jask/pdfsel/internal/prefs"
	"github.com/jask/pdfsel/internal/selection"
	"github.com/jask/pdfsel/internal/service"
	"github.com/jask/pdfsel/internal/session"
)

// App ties the module panes together.
type App struct {
	ctx    context.Context
	deps   Deps
	logger *zap.Logger
	keys   keyMap

	panes  []*pane
	active int

	mode   mode
	menu   menuState
	prompt promptState
	status string

	width  int
	height int
}

// Deps are the collaborators the TUI drives. Recent and Maintenance are
// optional; without them history suggestions and forgetting are disabled.
type Deps struct {
	Session      *session.Session
	Loader       *document.Loader
	Recent       *service.RecentService
	Maintenance  *service.MaintenanceService
	Logger       *zap.Logger
	RecentLimit  int
	InitialPaths []string
}

type mode string

const (
	modeTable         mode = "table"
	modeMenu          mode = "menu"
	modePrompt        mode = "prompt"
	modeProperties    mode = "properties"
	modeConfirmClear  mode = "confirmClear"
	modeConfirmForget mode = "confirmForget"
)

func New(ctx context.Context, deps Deps) *App {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Loader == nil {
		deps.Loader = document.NewLoader(0, deps.Logger)
	}
	if deps.RecentLimit <= 0 {
		deps.RecentLimit = 20
	}
	a := &App{
		ctx:    ctx,
		deps:   deps,
		logger: deps.Logger,
		keys:   newKeyMap(),
		mode:   modeTable,
	}
	for _, name := range deps.Session.Modules() {
		a.panes = append(a.panes, newPane(name, deps.Logger.With(zap.String("module", name))))
	}
	if i := a.paneIndex(deps.Session.InitActiveModule()); i >= 0 {
		a.active = i
	}
	return a
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.restoreCmd()}
	if len(a.deps.InitialPaths) > 0 {
		cmds = append(cmds, a.loadCmd(a.current().name(), a.deps.InitialPaths, nil))
	}
	return tea.Batch(cmds...)
}

func (a *App) current() *pane { return a.panes[a.active] }

func (a *App) paneIndex(name string) int {
	return slices.IndexFunc(a.panes, func(p *pane) bool { return p.name() == name })
}

func (a *App) paneByName(name string) *pane {
	if i := a.paneIndex(name); i >= 0 {
		return a.panes[i]
	}
	return nil
}

// workspace snapshots every pane for saving on exit.
func (a *App) workspace() prefs.Workspace {
	ws := prefs.Workspace{ActiveModule: a.current().name(), SavedAt: time.Now().UTC()}
	for _, p := range a.panes {
		ws.Modules = append(ws.Modules, p.state())
	}
	return ws
}

// commands

func (a *App) restoreCmd() tea.Cmd {
	return func() tea.Msg {
		ws, ok, err := a.deps.Session.RestoreWorkspace()
		if err != nil {
			return errMsg{err}
		}
		if !ok {
			return nil
		}
		return workspaceMsg{ws: ws}
	}
}

func (a *App) loadCmd(module string, paths []string, restore *prefs.ModuleState) tea.Cmd {
	load := a.deps.Loader.Load
	if restore != nil {
		load = a.deps.Loader.LoadAll
	}
	return func() tea.Msg {
		docs, err := load(a.ctx, paths)
		if err != nil {
			return errMsg{err}
		}
		return loadedMsg{module: module, docs: docs, restore: restore}
	}
}

func (a *App) recordCmd(module string, docs []*document.Descriptor) tea.Cmd {
	if a.deps.Recent == nil {
		return nil
	}
	return func() tea.Msg {
		if err := a.deps.Recent.Record(a.ctx, module, docs); err != nil {
			return errMsg{fmt.Errorf("record recent documents: %w", err)}
		}
		return nil
	}
}

func (a *App) suggestCmd(query string) tea.Cmd {
	if a.deps.Recent == nil {
		return nil
	}
	return func() tea.Msg {
		items, err := a.deps.Recent.Suggest(a.ctx, query, a.deps.RecentLimit)
		if err != nil {
			return errMsg{err}
		}
		return suggestionsMsg{query: query, items: items}
	}
}

func (a *App) forgetCmd() tea.Cmd {
	return func() tea.Msg {
		if err := a.deps.Maintenance.ForgetHistory(a.ctx); err != nil {
			return errMsg{err}
		}
		return historyForgottenMsg{}
	}
}

func (a *App) forgetSuggestionCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if err := a.deps.Recent.Forget(a.ctx, path); err != nil {
			return errMsg{err}
		}
		return suggestionForgottenMsg{path: path}
	}
}

// quit saves the workspace when the preferences ask for it, then exits.
func (a *App) quit() (tea.Model, tea.Cmd) {
	saved, err := a.deps.Session.SaveWorkspaceIfRequired(a.workspace())
	if err != nil {
		a.logger.Error("save workspace on exit", zap.Error(err))
	} else if saved {
		a.logger.Debug("workspace saved on exit")
	}
	return a, tea.Quit
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
	case tea.KeyMsg:
		if m.Paste {
			return a.handlePaste(m)
		}
		switch a.mode {
		case modeMenu:
			return a.handleMenuKey(m)
		case modePrompt:
			return a.handlePromptKey(m)
		case modeProperties:
			a.mode = modeTable
			return a, nil
		case modeConfirmClear, modeConfirmForget:
			return a.handleConfirmKey(m)
		}
		return a.handleTableKey(m)
	case workspaceMsg:
		var cmds []tea.Cmd
		for _, ms := range m.ws.Modules {
			if a.paneByName(ms.Name) == nil || len(ms.Documents) == 0 {
				continue
			}
			restore := ms
			cmds = append(cmds, a.loadCmd(ms.Name, ms.Documents, &restore))
		}
		a.logger.Info("workspace restored", zap.Int("modules", len(cmds)))
		return a, tea.Batch(cmds...)
	case loadedMsg:
		p := a.paneByName(m.module)
		if p == nil {
			return a, nil
		}
		base := p.engine.Len()
		p.add(m.docs)
		if m.restore != nil {
			p.restore(*m.restore, base, p.engine.Len()-base)
		}
		a.status = loadSummary(m.docs)
		return a, a.recordCmd(m.module, m.docs)
	case suggestionsMsg:
		if a.mode == modePrompt && a.prompt.kind == promptAdd && m.query == a.prompt.input.Value() {
			a.prompt.setSuggestions(m.items)
		}
	case suggestionForgottenMsg:
		a.status = "forgot " + m.path
		if a.mode == modePrompt {
			a.prompt.drop(m.path)
		}
	case historyForgottenMsg:
		a.status = "recent documents forgotten"
		if a.mode == modePrompt {
			a.prompt.setSuggestions(nil)
		}
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.logger.Error("command failed", zap.Error(m.error))
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func loadSummary(docs []*document.Descriptor) string {
	failed := 0
	for _, d := range docs {
		if !d.Loaded() {
			failed++
		}
	}
	switch {
	case len(docs) == 0:
		return "no PDF files to add"
	case failed > 0:
		return fmt.Sprintf("added %s, %d failed", plural(len(docs), "document"), failed)
	default:
		return "added " + plural(len(docs), "document")
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func (a *App) handlePaste(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.mode == modePrompt {
		var cmd tea.Cmd
		a.prompt.input, cmd = a.prompt.input.Update(m)
		return a, tea.Batch(cmd, a.suggestCmd(a.prompt.input.Value()))
	}
	paths := document.FilterPDF(document.ParseDropped(string(m.Runes)))
	if len(paths) == 0 {
		a.status = "no PDF files in the dropped text"
		return a, nil
	}
	a.mode = modeTable
	a.status = "loading " + plural(len(paths), "file") + "..."
	return a, a.loadCmd(a.current().name(), paths, nil)
}

func (a *App) handleTableKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := a.current()
	e := p.engine
	last := e.Len() - 1
	switch {
	case key.Matches(m, a.keys.Quit):
		return a.quit()
	case key.Matches(m, a.keys.NextPane):
		a.active = (a.active + 1) % len(a.panes)
	case key.Matches(m, a.keys.PrevPane):
		a.active = (a.active + len(a.panes) - 1) % len(a.panes)
	case key.Matches(m, a.keys.Up):
		if last >= 0 {
			e.SetFocus(max(p.focusOr(1)-1, 0))
		}
	case key.Matches(m, a.keys.Down):
		if last >= 0 {
			e.SetFocus(min(p.focusOr(-1)+1, last))
		}
	case key.Matches(m, a.keys.ExtendUp):
		if last >= 0 {
			e.ExtendTo(max(p.focusOr(1)-1, 0))
		}
	case key.Matches(m, a.keys.ExtendDown):
		if last >= 0 {
			e.ExtendTo(min(p.focusOr(-1)+1, last))
		}
	case key.Matches(m, a.keys.Top):
		if last >= 0 {
			e.SetFocus(0)
		}
	case key.Matches(m, a.keys.Bottom):
		if last >= 0 {
			e.SetFocus(last)
		}
	case key.Matches(m, a.keys.Toggle):
		if f := e.Selection().Focus; f != selection.NoFocus {
			e.Toggle(f)
		} else if last >= 0 {
			e.Toggle(0)
		}
	case key.Matches(m, a.keys.SelectAll):
		e.SelectAll()
	case key.Matches(m, a.keys.Deselect):
		e.ClearSelection()
	case key.Matches(m, a.keys.MoveUp):
		a.run(actionMoveUp)
	case key.Matches(m, a.keys.MoveDown):
		a.run(actionMoveDown)
	case key.Matches(m, a.keys.Remove):
		a.run(actionRemove)
	case key.Matches(m, a.keys.ClearAll):
		a.run(actionClearAll)
	case key.Matches(m, a.keys.Forget):
		a.run(actionForgetHistory)
	case key.Matches(m, a.keys.Properties):
		a.run(actionProperties)
	case key.Matches(m, a.keys.SetOutput):
		a.run(actionSetOutput)
	case key.Matches(m, a.keys.Add):
		a.prompt = newPrompt(promptAdd, "")
		a.mode = modePrompt
		return a, a.suggestCmd("")
	case key.Matches(m, a.keys.Menu):
		a.menu = menuState{items: menuItems(p.last, e.Len(), a.deps.Maintenance != nil)}
		a.mode = modeMenu
	}
	return a, nil
}

// run performs a table action from its key or from the menu.
func (a *App) run(action menuAction) {
	p := a.current()
	e := p.engine
	switch action {
	case actionMoveUp, actionMoveDown:
		d := selection.Up
		if action == actionMoveDown {
			d = selection.Down
		}
		if res := e.Move(d); res.IsNoop() {
			a.status = "cannot move " + d.String()
		} else {
			a.status = ""
		}
	case actionRemove:
		n := len(e.Selection().Selected)
		if n == 0 {
			a.status = "nothing selected"
			return
		}
		e.RemoveSelected()
		a.status = "removed " + plural(n, "document")
	case actionClearAll:
		if e.Len() > 0 {
			a.mode = modeConfirmClear
		}
	case actionForgetHistory:
		if a.deps.Maintenance != nil {
			a.mode = modeConfirmForget
		}
	case actionProperties:
		if _, ok := p.single(); ok {
			a.mode = modeProperties
		}
	case actionSetOutput:
		if d, ok := p.single(); ok {
			value := d.OutputPath()
			if p.output != "" {
				value = p.output
			}
			a.prompt = newPrompt(promptOutput, value)
			a.mode = modePrompt
		}
	}
}

func (a *App) handleMenuKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.String() == "ctrl+c":
		return a.quit()
	case key.Matches(m, a.keys.Up):
		a.menu.up()
	case key.Matches(m, a.keys.Down):
		a.menu.down()
	case key.Matches(m, a.keys.Cancel), key.Matches(m, a.keys.Menu):
		a.mode = modeTable
	case key.Matches(m, a.keys.Enter):
		it, ok := a.menu.current()
		if !ok {
			return a, nil
		}
		a.mode = modeTable
		a.run(it.action)
	}
	return a, nil
}

func (a *App) handlePromptKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "ctrl+c":
		return a.quit()
	case "esc":
		a.mode = modeTable
		return a, nil
	case "up":
		a.prompt.up()
		return a, nil
	case "down":
		a.prompt.down()
		return a, nil
	case "enter":
		return a.submitPrompt()
	case "ctrl+d":
		if sg, ok := a.prompt.selected(); ok && a.deps.Recent != nil {
			return a, a.forgetSuggestionCmd(sg.Path)
		}
		return a, nil
	}
	before := a.prompt.input.Value()
	var cmd tea.Cmd
	a.prompt.input, cmd = a.prompt.input.Update(m)
	if a.prompt.kind == promptAdd && a.prompt.input.Value() != before {
		a.prompt.cursor = -1
		return a, tea.Batch(cmd, a.suggestCmd(a.prompt.input.Value()))
	}
	return a, cmd
}

func (a *App) submitPrompt() (tea.Model, tea.Cmd) {
	a.mode = modeTable
	p := a.current()
	switch a.prompt.kind {
	case promptOutput:
		p.output = strings.TrimSpace(a.prompt.value())
		if p.output == "" {
			a.status = "output cleared"
		} else {
			a.status = "output: " + p.output
		}
		return a, nil
	default:
		var paths []string
		if sg, ok := a.prompt.selected(); ok {
			paths = []string{sg.Path}
		} else {
			paths = document.ParseDropped(a.prompt.value())
		}
		if len(paths) == 0 {
			return a, nil
		}
		a.status = "loading " + plural(len(paths), "file") + "..."
		return a, a.loadCmd(p.name(), paths, nil)
	}
}

func (a *App) handleConfirmKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Confirm):
		confirmed := a.mode
		a.mode = modeTable
		if confirmed == modeConfirmForget {
			a.status = "forgetting recent documents..."
			return a, a.forgetCmd()
		}
		n := a.current().engine.Len()
		a.current().engine.ClearAll()
		a.status = "cleared " + plural(n, "document")
	case key.Matches(m, a.keys.Cancel):
		a.mode = modeTable
	case m.String() == "ctrl+c":
		return a.quit()
	}
	return a, nil
}
