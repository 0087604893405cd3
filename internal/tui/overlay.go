package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// centerOverlay paints box over the middle of base.
func centerOverlay(base, box string, width, height int) string {
	x := (width - lipgloss.Width(box)) / 2
	y := (height - lipgloss.Height(box)) / 2
	return paint(base, box, max(x, 0), max(y, 0), width, height)
}

// topRightOverlay paints box in the top-right corner of base, one cell in.
func topRightOverlay(base, box string, width, height int) string {
	x := width - lipgloss.Width(box) - 1
	return paint(base, box, max(x, 0), 1, width, height)
}

// paint writes box onto a width x height canvas of base with its top-left
// corner at column x, row y. Rows of box are padded to its widest row so
// the box stays rectangular.
func paint(base, box string, x, y, width, height int) string {
	rows := canvas(base, width, height)
	boxWidth := lipgloss.Width(box)
	for i, line := range strings.Split(box, "\n") {
		r := y + i
		if r >= len(rows) {
			break
		}
		row := rows[r]
		rows[r] = ansi.Truncate(row, x, "") + padRight(line, boxWidth) + ansi.TruncateLeft(row, x+boxWidth, "")
	}
	return strings.Join(rows, "\n")
}

// canvas cuts or extends s to exactly height rows of exactly width cells.
func canvas(s string, width, height int) []string {
	rows := strings.Split(s, "\n")
	if len(rows) > height {
		rows = rows[:height]
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	for i := range rows {
		rows[i] = padRight(rows[i], width)
	}
	return rows
}

func padRight(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if gap := width - ansi.StringWidth(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}
