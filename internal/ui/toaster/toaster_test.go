package toaster

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m := New()

	require.False(t, m.Visible())
	require.Empty(t, m.View())
}

func TestShow(t *testing.T) {
	m, cmd := New().Show("Config reloaded", StyleInfo)

	require.True(t, m.Visible())
	require.NotNil(t, cmd)
	require.Contains(t, m.View(), "Config reloaded")
	require.Contains(t, m.View(), "ℹ")
}

func TestShow_Warn(t *testing.T) {
	m, _ := New().Show("Endpoint unreachable", StyleWarn)

	require.Contains(t, m.View(), "⚠")
}

func TestDismiss(t *testing.T) {
	m, _ := New().Show("hello", StyleInfo)

	m = m.Update(DismissMsg{seq: m.seq})

	require.False(t, m.Visible())
	require.Empty(t, m.View())
}

func TestDismiss_StaleIgnored(t *testing.T) {
	m, _ := New().Show("first", StyleInfo)
	first := m.seq
	m, _ = m.Show("second", StyleInfo)

	m = m.Update(DismissMsg{seq: first})

	require.True(t, m.Visible(), "older dismissal does not hide the newer toast")
	require.Contains(t, m.View(), "second")
	require.NotContains(t, m.View(), "first")
}

func TestScheduleDismiss(t *testing.T) {
	msg := ScheduleDismiss(7, time.Millisecond)()

	require.Equal(t, DismissMsg{seq: 7}, msg)
}

func TestOverlay(t *testing.T) {
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 40)+"\n", 10), "\n")

	require.Equal(t, bg, New().Overlay(bg, 40, 10))

	m, _ := New().Show("saved", StyleInfo)
	lines := strings.Split(ansi.Strip(m.Overlay(bg, 40, 10)), "\n")

	require.Len(t, lines, 10)
	require.Contains(t, lines[7], "saved", "box bottom sits one row above the edge")
	require.Equal(t, strings.Repeat(".", 40), lines[9])
}
