package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/signup/internal/keys"
	"github.com/zjrosen/signup/internal/ui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	width := min(max(m.width-4, 20), maxFormWidth)

	parts := []string{styles.TitleStyle.Render("Create an Account")}
	if banner := m.banner(width); banner != "" {
		parts = append(parts, banner)
	}
	parts = append(parts, "", m.fields.View())
	if m.submitting {
		parts = append(parts, styles.HintStyle.Render("Registering…"))
	}
	if m.cfg.UI.ShowHints {
		parts = append(parts, "", m.help.View(keys.Form))
	}

	view := lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(parts, "\n"))

	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}
	if m.terms.Visible() {
		view = m.terms.Overlay(view)
	}
	if m.debug && m.logOverlay.Visible() {
		view = m.logOverlay.Overlay(view)
	}
	return zone.Scan(view)
}

func (m Model) banner(width int) string {
	res := m.form.Result()
	switch {
	case res.Success != "":
		return styles.SuccessBannerStyle.Render(wordwrap.String(res.Success, width))
	case res.Failure != "":
		return styles.FailureBannerStyle.Render(wordwrap.String(res.Failure, width))
	}
	return ""
}
