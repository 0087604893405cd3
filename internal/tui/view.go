package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/guidegen/internal/toast"
)

const pickerRows = 10

// View draws the screen, with the busy or picker popup and any notices on top.
func (a *App) View() string {
	header := headerStyle.Render("Buying Guide Generator")
	if a.server != "" {
		header += mutedStyle.Render("  " + a.server)
	}

	sections := []string{header, a.renderDropZone()}
	if a.showProgress {
		sections = append(sections, a.renderProgress())
	}
	sections = append(sections, a.searchInput.View())
	top := strings.Join(sections, "\n")
	footer := a.renderFooter()

	bodyHeight := 0
	if a.height > 0 {
		bodyHeight = max(a.height-lipgloss.Height(top)-lipgloss.Height(footer)-1, 1)
	}
	view := top + "\n\n" + a.renderCards(bodyHeight)
	if a.height > 0 {
		view = strings.Join(canvas(view, a.width, a.height-1), "\n")
	}
	view += "\n" + footer

	switch {
	case a.busy:
		view = a.overlay(view, a.renderBusy(), centerOverlay)
	case a.picker != nil:
		view = a.overlay(view, a.renderPicker(), centerOverlay)
	}
	if a.toasts.Len() > 0 {
		view = a.overlay(view, renderToasts(a.toasts.Items()), topRightOverlay)
	}
	return view
}

func (a *App) overlay(base, box string, place func(string, string, int, int) string) string {
	if a.width <= 0 || a.height <= 0 {
		return base + "\n" + box
	}
	return place(base, box, a.width, a.height)
}

func (a *App) renderDropZone() string {
	style := dropZoneStyle
	label := mutedStyle.Render("drop a CSV here")
	if a.dropActive() {
		style = dropZoneActiveStyle
		label = headerStyle.Render("drop a CSV here")
	}
	return style.Render(label + "\n" + a.fileInput.View())
}

func (a *App) renderProgress() string {
	st := statusStyle
	if a.statusErr {
		st = statusErrStyle
	}
	return a.bar.ViewAs(float64(a.prog.Percent())/100) + "  " + st.Render(a.status)
}

func (a *App) renderBusy() string {
	body := a.spin.View() + " " + a.status
	return overlayStyle.Render(body + "\n\n" + mutedStyle.Render("waiting for the server..."))
}

func (a *App) renderPicker() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Pick a CSV file") + "\n")
	b.WriteString("> " + a.picker.Query() + "\n\n")
	items := a.picker.Items()
	if len(items) == 0 {
		b.WriteString(mutedStyle.Render("no .csv files here"))
	}
	start := 0
	if c := a.picker.Cursor(); c >= pickerRows {
		start = c - pickerRows + 1
	}
	for i := start; i < len(items) && i < start+pickerRows; i++ {
		row := "  " + items[i]
		if i == a.picker.Cursor() {
			row = pickerRowSel.Render("> " + items[i])
		}
		b.WriteString(row + "\n")
	}
	return overlayStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// renderCards lays out visible cards and scrolls so the selected one is on
// screen. height 0 means unbounded.
func (a *App) renderCards(height int) string {
	if a.deck.Len() == 0 {
		if a.session.Generated() {
			return mutedStyle.Render("The server returned no guides.")
		}
		return mutedStyle.Render("No guides yet. Pick a CSV and press enter.")
	}
	visible := a.deck.Visible()
	if len(visible) == 0 {
		return mutedStyle.Render("No guides match the search.")
	}

	var lines []string
	selStart, selEnd := 0, 0
	for pos, idx := range visible {
		card, _ := a.deck.Card(idx)
		selected := a.focus == focusCards && pos == a.cursor
		if pos == a.cursor {
			selStart = len(lines)
		}

		title := cardTitleStyle.Render(card.Title)
		prefix := "  "
		if selected {
			title = cardSelectedStyle.Render(card.Title)
			prefix = "> "
		}
		lines = append(lines, prefix+title)
		if card.Summary != "" {
			lines = append(lines, "    "+mutedStyle.Render(a.truncate(card.Summary, 4)))
		}
		marker := "[+] Toggle JSON"
		if card.Expanded {
			marker = "[-] Toggle JSON"
		}
		lines = append(lines, "    "+toggleStyle.Render(marker))
		if card.Expanded {
			for _, l := range strings.Split(card.JSON, "\n") {
				lines = append(lines, "    "+jsonStyle.Render(a.truncate(l, 4)))
			}
		}
		lines = append(lines, "")
		if pos == a.cursor {
			selEnd = len(lines)
		}
	}

	if height <= 0 || len(lines) <= height {
		return strings.Join(lines, "\n")
	}
	offset := 0
	if selEnd > height {
		offset = selEnd - height
	}
	if selStart < offset {
		offset = selStart
	}
	end := min(offset+height, len(lines))
	return strings.Join(lines[offset:end], "\n")
}

func (a *App) truncate(s string, indent int) string {
	if a.width <= 0 {
		return s
	}
	return ansi.Truncate(s, max(a.width-indent, 1), "…")
}

func (a *App) renderFooter() string {
	parts := make([]string, 0, 8)
	for _, b := range a.keys.helpFor(a.focus) {
		h := b.Help()
		parts = append(parts, keyStyle.Render(h.Key)+helpDescStyle.Render(" "+h.Desc))
	}
	line := strings.Join(parts, helpDescStyle.Render("  "))
	if a.lastSaved != "" {
		line += helpDescStyle.Render("  saved " + a.lastSaved)
	}
	if a.width > 0 {
		line = padRight(line, a.width)
	}
	return footerStyle.Render(line)
}

func renderToasts(items []toast.Toast) string {
	boxes := make([]string, 0, len(items))
	for _, t := range items {
		st := toastStyle
		if t.Err {
			st = toastErrStyle
		}
		boxes = append(boxes, st.Render(t.Text))
	}
	return lipgloss.JoinVertical(lipgloss.Right, boxes...)
}
