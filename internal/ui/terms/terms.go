// Package terms renders the registration terms in a scrollable overlay.
package terms

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/zjrosen/signup/internal/keys"
	"github.com/zjrosen/signup/internal/log"
	"github.com/zjrosen/signup/internal/ui/overlay"
)

// Document is the terms text in markdown.
//
//go:embed terms.md
var Document string

const (
	boxMaxWidth = 80
	boxMinWidth = 40
)

// CloseMsg is sent when the overlay closes itself.
type CloseMsg struct{}

// Model is the terms overlay state.
type Model struct {
	style    string
	visible  bool
	width    int
	height   int
	rendered string
	viewport viewport.Model
}

// New creates a hidden overlay rendering with a glamour standard style
// ("dark" or "light").
func New(style string) Model {
	return Model{style: style}
}

// SetStyle changes the markdown style and re-renders.
func (m *Model) SetStyle(style string) {
	if style == m.style {
		return
	}
	m.style = style
	m.rendered = ""
	m.layout()
}

// Render renders markdown at width using the named standard style.
func Render(markdown, style string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return strings.Trim(out, "\n"), nil
}

// Update handles keys while visible.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Overlay.Close), key.Matches(keyMsg, keys.Form.Terms):
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
	return m, nil
}

// View renders the box, or nothing when hidden.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	return overlay.Box("Terms", m.viewport.View(), "j/k scroll · esc close", m.boxWidth())
}

// Overlay draws the box near the top of bg.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(m.width, m.height, overlay.Top, m.View(), bg)
}

// Visible reports whether the overlay is shown.
func (m Model) Visible() bool {
	return m.visible
}

// Show makes the overlay visible, scrolled to the top.
func (m *Model) Show() {
	m.visible = true
	m.layout()
	m.viewport.GotoTop()
}

// Hide makes the overlay invisible.
func (m *Model) Hide() {
	m.visible = false
}

// SetSize updates the screen size.
func (m *Model) SetSize(width, height int) {
	if width != m.width {
		m.rendered = ""
	}
	m.width = width
	m.height = height
	m.layout()
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	width := m.boxWidth() - 4
	if m.rendered == "" {
		out, err := Render(Document, m.style, width)
		if err != nil {
			log.ErrorErr(log.CatUI, "terms render failed", err, "style", m.style)
			out = Document
		}
		m.rendered = out
	}

	// Title, footer, blank separators and borders.
	height := max(m.height-8, 3)
	offset := m.viewport.YOffset
	m.viewport = viewport.New(width, height)
	m.viewport.SetContent(m.rendered)
	m.viewport.SetYOffset(offset)
}
