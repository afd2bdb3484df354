// Package logoverlay shows the buffered debug log over the form.
package logoverlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/signup/internal/keys"
	"github.com/zjrosen/signup/internal/log"
	"github.com/zjrosen/signup/internal/ui/overlay"
	"github.com/zjrosen/signup/internal/ui/styles"
)

const (
	viewportMaxHeight = 20
	viewportMinHeight = 5
	boxMaxWidth       = 120
	boxMinWidth       = 40
)

// CloseMsg is sent when the overlay closes itself.
type CloseMsg struct{}

// Model is the log overlay state.
type Model struct {
	visible  bool
	minLevel log.Level
	width    int
	height   int
	viewport viewport.Model
}

// New creates a hidden overlay showing every level.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// Update handles keys while visible. Entries are pulled from the log buffer
// on Refresh; the caller forwards log events.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Overlay.Close), key.Matches(keyMsg, keys.Form.DebugLog):
		m.visible = false
		return m, func() tea.Msg { return CloseMsg{} }
	case key.Matches(keyMsg, keys.Overlay.ScrollDown):
		m.viewport.ScrollDown(1)
	case key.Matches(keyMsg, keys.Overlay.ScrollUp):
		m.viewport.ScrollUp(1)
	case key.Matches(keyMsg, keys.Overlay.Top):
		m.viewport.GotoTop()
	case key.Matches(keyMsg, keys.Overlay.Bottom):
		m.viewport.GotoBottom()
	}

	switch keyMsg.String() {
	case "c":
		log.ClearBuffer()
		m.Refresh()
	case "d":
		m.setLevel(log.LevelDebug)
	case "i":
		m.setLevel(log.LevelInfo)
	case "w":
		m.setLevel(log.LevelWarn)
	case "e":
		m.setLevel(log.LevelError)
	}
	return m, nil
}

func (m *Model) setLevel(level log.Level) {
	m.minLevel = level
	m.Refresh()
}

// MinLevel returns the active filter.
func (m Model) MinLevel() log.Level {
	return m.minLevel
}

// View renders the overlay box, or nothing when hidden.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	return overlay.Box("Logs", m.viewport.View(), m.filterHint(), m.boxWidth())
}

// Overlay draws the box centered over bg.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(m.width, m.height, overlay.Center, m.View(), bg)
}

// Visible reports whether the overlay is shown.
func (m Model) Visible() bool {
	return m.visible
}

// Toggle flips visibility.
func (m *Model) Toggle() {
	if m.visible {
		m.Hide()
		return
	}
	m.Show()
}

// Show makes the overlay visible with fresh content.
func (m *Model) Show() {
	m.visible = true
	m.Refresh()
}

// Hide makes the overlay invisible.
func (m *Model) Hide() {
	m.visible = false
}

// SetSize updates the screen size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.Refresh()
}

// Refresh reloads entries from the log buffer and keeps the view pinned to
// the newest entry when it was already at the bottom.
func (m *Model) Refresh() {
	if m.width == 0 || m.height == 0 {
		return
	}
	follow := m.viewport.AtBottom() || m.viewport.TotalLineCount() == 0

	// Header, footer, blank separators and borders.
	height := max(min(viewportMaxHeight, m.height-8), viewportMinHeight)
	width := m.contentWidth()
	if m.viewport.Width != width || m.viewport.Height != height {
		m.viewport = viewport.New(width, height)
	}
	m.viewport.SetContent(m.content(width))
	if follow {
		m.viewport.GotoBottom()
	}
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

func (m Model) contentWidth() int {
	return m.boxWidth() - 4
}

func (m Model) content(width int) string {
	var lines []string
	for _, entry := range log.Entries() {
		level := log.ParseLevel(entry)
		if level < m.minLevel {
			continue
		}
		lines = append(lines, colorize(entry, level, width))
	}
	if len(lines) == 0 {
		return lipgloss.NewStyle().Foreground(styles.TextMutedColor).Italic(true).Render("No logs to display")
	}
	return strings.Join(lines, "\n")
}

func colorize(entry string, level log.Level, width int) string {
	if ansi.StringWidth(entry) > width {
		entry = ansi.Truncate(entry, width, "…")
	}

	color := styles.LogDebugColor
	switch level {
	case log.LevelInfo:
		color = styles.LogInfoColor
	case log.LevelWarn:
		color = styles.LogWarnColor
	case log.LevelError:
		color = styles.LogErrorColor
	}
	return lipgloss.NewStyle().Foreground(color).Render(entry)
}

func (m Model) filterHint() string {
	filters := []struct {
		label string
		level log.Level
	}{
		{"[d] debug", log.LevelDebug},
		{"[i] info", log.LevelInfo},
		{"[w] warn", log.LevelWarn},
		{"[e] error", log.LevelError},
	}

	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)
	hints := []string{"[c] clear"}
	for _, f := range filters {
		if f.level == m.minLevel {
			hints = append(hints, active.Render(f.label))
			continue
		}
		hints = append(hints, f.label)
	}
	return strings.Join(hints, "  ")
}
