package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/pdfsel/internal/document"
)

const (
	appName     = "pdfsel"
	placeholder = "Drag and drop PDF files here"
	// header, status and footer lines, the box border, the section title
	// with its separator and the table header.
	chromeLines = 8
)

func (a *App) View() string {
	header := a.renderHeader()
	body := header + "\n" + a.renderSection()
	status := a.renderStatus(a.status)
	footer := a.renderFooter(a.helpBindings())
	if a.mode == modeTable {
		return a.placeWithFooter(body, status, footer)
	}
	return a.composeModal(body, status, footer)
}

func (a *App) helpBindings() []key.Binding {
	switch a.mode {
	case modeMenu:
		return a.keys.menuHelp()
	case modePrompt:
		return a.keys.promptHelp()
	case modeConfirmClear, modeConfirmForget:
		return a.keys.confirmHelp()
	case modeProperties:
		return []key.Binding{key.NewBinding(key.WithKeys("esc"), key.WithHelp("any key", "close"))}
	default:
		return a.keys.tableHelp()
	}
}

func (a *App) renderHeader() string {
	var tabs []string
	for i, p := range a.panes {
		label := capitalize(p.name())
		if n := p.engine.Len(); n > 0 {
			label += fmt.Sprintf(" (%d)", n)
		}
		if i == a.active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	line := headerAppStyle.Render(appName) + tabSepStyle.Render("  ") + strings.Join(tabs, tabSepStyle.Render("│"))
	if out := a.current().output; out != "" {
		line += headerOutputStyle.Render("  → " + out)
	}
	if a.width <= 0 {
		return headerBarStyle.Render(line)
	}
	return headerBarStyle.Width(a.width).Render(line)
}

func (a *App) sectionWidth() int {
	if a.width <= 0 {
		return 100
	}
	return max(a.width-2, 20)
}

func (a *App) renderSection() string {
	p := a.current()
	contentWidth := a.sectionWidth() - 4
	sel := p.engine.Selection()
	title := titleStyle.Render(capitalize(p.name()))
	if n := p.engine.Len(); n > 0 {
		title += scrollStyle.Render(fmt.Sprintf("  %d documents, %d selected", n, len(sel.Selected)))
	}
	sep := lipgloss.NewStyle().Foreground(colorSurface2).Render(strings.Repeat("─", contentWidth))

	visible := p.engine.Len()
	if a.height > 0 {
		visible = max(a.height-chromeLines, 1)
	}
	if sel.Focus >= 0 {
		p.scrollTo(sel.Focus, visible)
	}
	table := renderTable(p, visible, contentWidth)
	return listBoxStyle.Width(a.sectionWidth()).Render(padRight(title, contentWidth) + "\n" + sep + "\n" + table)
}

// renderTable draws the rows of p starting at its scroll offset.
func renderTable(p *pane, visible, width int) string {
	if p.engine.Len() == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, placeholderStyle.Render(placeholder))
	}
	const (
		idxW     = 4
		markW    = 5
		sizeW    = 9
		versionW = 7
		statusW  = 10
		modW     = 16
	)
	nameW := max(width-idxW-markW-sizeW-versionW-statusW-modW-6, 10)

	header := fmt.Sprintf("%-*s%-*s%-*s %*s %-*s %-*s %-*s",
		idxW, "#", markW, "", nameW, "Name", sizeW, "Size", versionW, "Version", statusW, "Status", modW, "Modified")
	lines := []string{tableHeaderStyle.Render(header)}

	sel := p.engine.Selection()
	end := min(p.offset+visible, p.engine.Len())
	for i := p.offset; i < end; i++ {
		d := p.doc(i)
		if d == nil {
			continue
		}
		cursor := " "
		if i == sel.Focus {
			cursor = cursorStyle.Render("▶")
		}
		box := "[ ]"
		_, selected := slices.BinarySearch(sel.Selected, i)
		if selected {
			box = "[x]"
		}
		modified := ""
		if !d.ModTime.IsZero() {
			modified = d.ModTime.Local().Format("2006-01-02 15:04")
		}
		row := fmt.Sprintf("%-*d%s %s %-*s %*s %-*s %s %-*s",
			idxW, i+1, cursor, box,
			nameW, truncate(d.Name, nameW),
			sizeW, humanSize(d.Size),
			versionW, d.Version,
			renderDocStatus(d, statusW),
			modW, modified)
		if selected {
			row = selectedRowStyle.Render(row)
		}
		lines = append(lines, row)
	}
	if end < p.engine.Len() || p.offset > 0 {
		lines = append(lines, scrollStyle.Render(fmt.Sprintf("rows %d-%d of %d", p.offset+1, end, p.engine.Len())))
	}
	return strings.Join(lines, "\n")
}

func renderDocStatus(d *document.Descriptor, width int) string {
	label := padRight(string(d.Status), width)
	switch d.Status {
	case document.StatusLoaded:
		return statusLoadedStyle.Render(label)
	case document.StatusFailed:
		return statusFailedStyle.Render(label)
	default:
		return statusRequestedStyle.Render(label)
	}
}

func humanSize(n int64) string {
	const unit = 1024
	if n <= 0 {
		return ""
	}
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func (a *App) renderFooter(bindings []key.Binding) string {
	bg := colorMantle
	keyStyle := helpKeyStyle.Background(bg)
	descStyle := helpDescStyle.Background(bg)
	space := lipgloss.NewStyle().Background(bg).Render(" ")
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" && h.Desc == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(h.Key)+space+descStyle.Render(h.Desc))
	}
	content := strings.Join(parts, sep)
	if a.width <= 0 {
		return footerStyle.Render(content)
	}
	return footerStyle.Width(a.width).Render(content)
}

func (a *App) renderStatus(text string) string {
	flat := strings.ReplaceAll(text, "\n", " ")
	if a.width <= 0 {
		return statusBarStyle.Render(flat)
	}
	return statusBarStyle.Width(a.width).Render(flat)
}

func (a *App) placeWithFooter(body, status, footer string) string {
	if a.height <= 0 {
		return body + "\n\n" + status + "\n" + footer
	}
	contentHeight := max(a.height-2, 1)
	if lipgloss.Height(body) >= contentHeight {
		return body + "\n" + status + "\n" + footer
	}
	main := lipgloss.Place(a.width, contentHeight, lipgloss.Left, lipgloss.Top, body)
	lines := splitLines(main)
	for i, line := range lines {
		lines[i] = padRight(line, a.width)
	}
	return strings.Join(lines, "\n") + "\n" + status + "\n" + footer
}

func (a *App) composeModal(base, status, footer string) string {
	view := a.placeWithFooter(base, status, footer)
	modal := modalStyle.Render(a.popupView())
	if a.height <= 0 || a.width <= 0 {
		return view + "\n\n" + modal
	}
	lines := splitLines(modal)
	target := max(a.height-2, 1)
	x := max((a.width-maxLineWidth(lines))/2, 0)
	y := max((target-len(lines))/2, 0)
	return overlayAt(view, modal, x, y, a.width, target)
}

func (a *App) popupView() string {
	switch a.mode {
	case modeMenu:
		return a.renderMenu()
	case modePrompt:
		return a.renderPrompt()
	case modeProperties:
		return a.renderProperties()
	case modeConfirmClear:
		return titleStyle.Render("Clear all documents?") +
			fmt.Sprintf("\nRemove all %d documents from %s.\n[y] Yes  [n] No", a.current().engine.Len(), a.current().name())
	case modeConfirmForget:
		return titleStyle.Render("Forget recent documents?") + "\nThe history used for suggestions will be emptied.\n[y] Yes  [n] No"
	default:
		return ""
	}
}

func (a *App) renderMenu() string {
	out := titleStyle.Render("Actions")
	for i, it := range a.menu.items {
		marker := " "
		if i == a.menu.cursor {
			marker = cursorStyle.Render("▶")
		}
		label := fmt.Sprintf("%-26s %s", it.label, it.hint)
		if !it.enabled {
			label = disabledStyle.Render(label)
		}
		out += "\n" + marker + " " + label
	}
	return out
}

func (a *App) renderPrompt() string {
	out := titleStyle.Render(a.prompt.title()) + "\n" + a.prompt.input.View()
	if a.prompt.kind != promptAdd || len(a.prompt.suggestions) == 0 {
		return out
	}
	out += "\n" + scrollStyle.Render("recent")
	for i, s := range a.prompt.suggestions {
		marker := " "
		if i == a.prompt.cursor {
			marker = cursorStyle.Render("▶")
		}
		out += fmt.Sprintf("\n%s %-28s %s", marker, truncate(s.Name, 28), scrollStyle.Render(truncate(s.Path, 48)))
	}
	return out
}

func (a *App) renderProperties() string {
	d, ok := a.current().single()
	if !ok {
		return ""
	}
	rows := [][2]string{
		{"Name", d.Name},
		{"Path", d.Path},
		{"Size", humanSize(d.Size)},
		{"Version", d.Version},
		{"Status", string(d.Status)},
	}
	if !d.ModTime.IsZero() {
		rows = append(rows, [2]string{"Modified", d.ModTime.Local().Format("2006-01-02 15:04:05")})
	}
	if d.Err != "" {
		rows = append(rows, [2]string{"Error", d.Err})
	}
	out := titleStyle.Render("Document properties")
	for _, r := range rows {
		out += "\n" + infoStyle.Render(fmt.Sprintf("%-9s", r[0])) + " " + r[1]
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
