package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestPlace_Center(t *testing.T) {
	out := Place(5, 3, Center, "XX\nXX", "AAAAA\nAAAAA\nAAAAA")

	require.Equal(t, []string{"AXXAA", "AXXAA", "AAAAA"}, strings.Split(out, "\n"))
}

func TestPlace_Top(t *testing.T) {
	out := Place(5, 3, Top, "XX", "AAAAA\nAAAAA\nAAAAA")

	require.Equal(t, []string{"AXXAA", "AAAAA", "AAAAA"}, strings.Split(out, "\n"))
}

func TestPlace_Bottom(t *testing.T) {
	out := Place(5, 4, Bottom, "XX", "AAAAA\nAAAAA\nAAAAA\nAAAAA")

	require.Equal(t, []string{"AAAAA", "AAAAA", "AXXAA", "AAAAA"}, strings.Split(out, "\n"))
}

func TestPlace_PadsShortBackground(t *testing.T) {
	out := Place(4, 3, Center, "X", "")

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	require.Equal(t, " X  ", lines[1])
}

func TestPlace_OversizedForeground(t *testing.T) {
	out := Place(3, 2, Center, "XXXXX\nXXXXX\nXXXXX", "AAA\nAAA")

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "XXXXX", lines[0])
}

func TestBox(t *testing.T) {
	out := ansi.Strip(Box("Terms", "body text", "esc close", 30))

	require.Contains(t, out, "Terms")
	require.Contains(t, out, "body text")
	require.Contains(t, out, "esc close")
	require.Equal(t, 30, lipgloss.Width(out))
}
