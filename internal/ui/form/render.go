package form

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/signup/internal/ui/styles"
)

// View renders the fields followed by the submit button. Zone markers are
// included; the program root must call zone.Scan.
func (m Model) View() string {
	var b strings.Builder
	for i := range m.fields {
		b.WriteString(m.renderField(i))
		b.WriteString("\n")
		if msg := m.errors[m.fields[i].config.Key]; msg != "" {
			b.WriteString(styles.FieldErrorStyle.Render(" " + msg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(m.renderButton())
	return b.String()
}

func (m Model) renderField(i int) string {
	fs := &m.fields[i]
	cfg := fs.config
	focused := m.focused == i

	var line string
	switch cfg.Kind {
	case KindText:
		line = " " + fs.input.View()
	case KindToggle:
		line = m.renderToggle(i, focused)
	case KindSelect:
		line = renderSelect(fs, focused)
	case KindCheckbox:
		box := "[ ]"
		if fs.checked {
			box = "[x]"
		}
		line = " " + box + " " + cfg.CheckLabel
	}
	if focused {
		line = styles.SelectionIndicatorStyle.Render(">") + strings.TrimPrefix(line, " ")
	}

	section := styles.Section{
		Title:   cfg.Label,
		Hint:    cfg.Hint,
		Lines:   []string{line},
		Width:   m.config.Width,
		Focused: focused,
		Invalid: m.errors[cfg.Key] != "",
	}.Render()
	return zone.Mark(m.fieldZoneID(i), section)
}

func (m Model) renderToggle(i int, focused bool) string {
	fs := &m.fields[i]
	selected := lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimaryColor)
	unselected := lipgloss.NewStyle().Foreground(styles.TextMutedColor)

	parts := make([]string, len(fs.config.Options))
	for j, opt := range fs.config.Options {
		label := unselected.Render("○ " + opt.Label)
		if fs.selected == j {
			label = selected.Render("● " + opt.Label)
		}
		parts[j] = zone.Mark(m.optionZoneID(i, j), label)
	}
	line := " " + strings.Join(parts, "    ")
	if focused {
		line += styles.HintStyle.Render("  [←/→]")
	}
	return line
}

func renderSelect(fs *fieldState, focused bool) string {
	text := styles.PlaceholderStyle.Render(fs.config.Placeholder)
	if fs.selected >= 0 && fs.selected < len(fs.config.Options) {
		text = lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Render(fs.config.Options[fs.selected].Label)
	}
	line := " ‹ " + text + " ›"
	if focused {
		line += styles.HintStyle.Render("  [←/→]")
	}
	return line
}

func (m Model) renderButton() string {
	onButton := m.focused == len(m.fields)
	btn := styles.ButtonStyle(onButton, !m.submitEnabled).Render(m.config.SubmitLabel)
	return " " + zone.Mark(m.buttonZoneID(), btn)
}
