// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#CCCCCC"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#8C8C8C", Dark: "#696969"} // hints, help text
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#777777"}

	// Borders
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#FFFFFF"}

	// Buttons
	ButtonTextColor           = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ButtonPrimaryBgColor      = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#1A5276"}
	ButtonPrimaryFocusBgColor = lipgloss.AdaptiveColor{Light: "#3498DB", Dark: "#3498DB"}
	ButtonDisabledTextColor   = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#777777"}
	ButtonDisabledBgColor     = lipgloss.AdaptiveColor{Light: "#2D2D2D", Dark: "#2D2D2D"}

	// Overlays
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#8C8C8C"}

	// Log levels
	LogDebugColor = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#777777"}
	LogInfoColor  = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	LogWarnColor  = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	LogErrorColor = StatusErrorColor

	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	baseButtonStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true)

	PrimaryButtonStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(ButtonPrimaryBgColor)

	PrimaryButtonFocusedStyle = baseButtonStyle.
					Foreground(ButtonTextColor).
					Background(ButtonPrimaryFocusBgColor).
					Underline(true).
					UnderlineSpaces(true)

	DisabledButtonStyle = baseButtonStyle.
				Bold(false).
				Foreground(ButtonDisabledTextColor).
				Background(ButtonDisabledBgColor)

	// Form
	FieldLabelStyle        = lipgloss.NewStyle().Foreground(TextMutedColor)
	FieldLabelFocusedStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor).Bold(true)
	FieldErrorStyle        = lipgloss.NewStyle().Foreground(StatusErrorColor)
	PlaceholderStyle       = lipgloss.NewStyle().Foreground(TextPlaceholderColor)
	HintStyle              = lipgloss.NewStyle().Foreground(TextMutedColor)

	// Result banners
	SuccessBannerStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor).Bold(true)
	FailureBannerStyle = lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true)

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(OverlayTitleColor)
)

// ButtonStyle picks the style for a button's state. Disabled wins over focus.
func ButtonStyle(focused, disabled bool) lipgloss.Style {
	switch {
	case disabled:
		return DisabledButtonStyle
	case focused:
		return PrimaryButtonFocusedStyle
	default:
		return PrimaryButtonStyle
	}
}
