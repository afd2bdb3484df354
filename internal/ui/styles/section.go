package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Rounded border characters.
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// Section is a bordered block with the title inlined in the top border:
//
//	╭─ Title (hint) ─────╮
//	│content             │
//	╰────────────────────╯
type Section struct {
	Title   string
	Hint    string
	Lines   []string
	Width   int
	Focused bool
	Invalid bool
}

// Render draws the section. An invalid section uses the error color; a
// focused one the focus color.
func (s Section) Render() string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	switch {
	case s.Invalid:
		borderColor = StatusErrorColor
	case s.Focused:
		borderColor = BorderFocusColor
	}
	border := lipgloss.NewStyle().Foreground(borderColor)
	title := lipgloss.NewStyle().Bold(true).Foreground(borderColor)

	inner := max(s.Width-2, 1)

	var top string
	if s.Title == "" {
		top = border.Render(borderTopLeft + strings.Repeat(borderHorizontal, inner) + borderTopRight)
	} else {
		label := s.Title
		if s.Hint != "" {
			label += " (" + s.Hint + ")"
		}
		dashes := max(inner-lipgloss.Width(label)-3, 0)
		top = border.Render(borderTopLeft+borderHorizontal+" ") + title.Render(s.Title)
		if s.Hint != "" {
			top += " " + HintStyle.Render("("+s.Hint+")")
		}
		top += border.Render(" " + strings.Repeat(borderHorizontal, dashes) + borderTopRight)
	}

	rows := make([]string, 0, len(s.Lines)+2)
	rows = append(rows, top)
	for _, line := range s.Lines {
		pad := max(inner-lipgloss.Width(line), 0)
		rows = append(rows, border.Render(borderVertical)+line+strings.Repeat(" ", pad)+border.Render(borderVertical))
	}
	rows = append(rows, border.Render(borderBottomLeft+strings.Repeat(borderHorizontal, inner)+borderBottomRight))
	return strings.Join(rows, "\n")
}
