package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TruncateString shortens s to maxWidth cells, ending in "..." when cut.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	var b strings.Builder
	for _, r := range s {
		if lipgloss.Width(b.String()+string(r)) > maxWidth-3 {
			break
		}
		b.WriteRune(r)
	}
	return b.String() + "..."
}
