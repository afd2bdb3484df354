// Package overlay draws modal boxes over an already rendered view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/signup/internal/ui/styles"
)

// Position is the vertical anchor of the foreground.
type Position int

const (
	Center Position = iota
	Top
	Bottom // one blank row above the bottom edge
)

// Place draws fg over bg inside a width x height viewport, horizontally
// centered. Styling on both sides of the foreground is preserved.
func Place(width, height int, pos Position, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, strings.Repeat(" ", width))
	}

	x := max((width-lipgloss.Width(fg))/2, 0)
	y := 0
	switch pos {
	case Center:
		y = max((height-len(fgLines))/2, 0)
	case Bottom:
		y = max(height-len(fgLines)-1, 0)
	}

	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLine := bgLines[row]

		left := ansi.Truncate(bgLine, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ""
		if end := x + ansi.StringWidth(line); end < ansi.StringWidth(bgLine) {
			right = ansi.TruncateLeft(bgLine, end, "")
		}
		bgLines[row] = left + line + right
	}
	return strings.Join(bgLines, "\n")
}

// Box frames body in a rounded border with a title and footer line.
func Box(title, body, footer string, width int) string {
	inner := max(width-4, 1)
	parts := []string{styles.TitleStyle.Render(title), "", body}
	if footer != "" {
		parts = append(parts, "", styles.HintStyle.Render(footer))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Padding(0, 1).
		Width(inner + 2).
		Render(strings.Join(parts, "\n"))
}
