package logoverlay

import (
	"io"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/signup/internal/log"
)

func TestMain(m *testing.M) {
	log.InitWriter(io.Discard)
	os.Exit(m.Run())
}

func shown(t *testing.T) Model {
	t.Helper()
	log.ClearBuffer()
	m := New()
	m.SetSize(100, 40)
	m.Show()
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_Hidden(t *testing.T) {
	m := New()

	require.False(t, m.Visible())
	require.Empty(t, m.View())
	require.Equal(t, log.LevelDebug, m.MinLevel())
	require.Equal(t, "background", m.Overlay("background"))
}

func TestToggle(t *testing.T) {
	m := New()
	m.Toggle()
	require.True(t, m.Visible())
	m.Toggle()
	require.False(t, m.Visible())
}

func TestUpdate_IgnoredWhenHidden(t *testing.T) {
	m := New()
	m, cmd := m.Update(keyRunes("e"))

	require.Nil(t, cmd)
	require.Equal(t, log.LevelDebug, m.MinLevel())
}

func TestUpdate_FilterKeys(t *testing.T) {
	tests := []struct {
		key  string
		want log.Level
	}{
		{"d", log.LevelDebug},
		{"i", log.LevelInfo},
		{"w", log.LevelWarn},
		{"e", log.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := shown(t)
			m, _ = m.Update(keyRunes(tt.key))
			require.Equal(t, tt.want, m.MinLevel())
		})
	}
}

func TestUpdate_Close(t *testing.T) {
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlX},
		keyRunes("q"),
	} {
		t.Run(msg.String(), func(t *testing.T) {
			m := shown(t)
			m, cmd := m.Update(msg)

			require.False(t, m.Visible())
			require.NotNil(t, cmd)
			require.IsType(t, CloseMsg{}, cmd())
		})
	}
}

func TestView_FiltersByLevel(t *testing.T) {
	m := shown(t)
	log.Debug(log.CatForm, "typing in username")
	log.Warn(log.CatConfig, "config reload failed")
	log.Error(log.CatSubmit, "registration failed")
	m.Refresh()

	view := ansi.Strip(m.View())
	require.Contains(t, view, "Logs")
	require.Contains(t, view, "typing in username")
	require.Contains(t, view, "registration failed")

	m, _ = m.Update(keyRunes("w"))
	view = ansi.Strip(m.View())
	require.NotContains(t, view, "typing in username")
	require.Contains(t, view, "config reload failed")
	require.Contains(t, view, "registration failed")
}

func TestView_EmptyMessage(t *testing.T) {
	m := shown(t)
	require.Contains(t, ansi.Strip(m.View()), "No logs to display")
}

func TestView_FilterHint(t *testing.T) {
	m := shown(t)
	view := ansi.Strip(m.View())

	for _, hint := range []string{"[c] clear", "[d] debug", "[i] info", "[w] warn", "[e] error"} {
		require.Contains(t, view, hint)
	}
}

func TestUpdate_ClearBuffer(t *testing.T) {
	m := shown(t)
	log.Info(log.CatUI, "something happened")
	m.Refresh()
	require.Contains(t, ansi.Strip(m.View()), "something happened")

	m, _ = m.Update(keyRunes("c"))

	require.Empty(t, log.Entries())
	require.Contains(t, ansi.Strip(m.View()), "No logs to display")
}

func TestRefresh_FollowsNewestEntry(t *testing.T) {
	m := shown(t)
	for i := range 40 {
		log.Info(log.CatUI, "entry", "n", i)
	}
	m.Refresh()

	require.Contains(t, ansi.Strip(m.View()), "n=39")

	m, _ = m.Update(keyRunes("g"))
	require.NotContains(t, ansi.Strip(m.View()), "n=39")
	require.Contains(t, ansi.Strip(m.View()), "n=0")
}

func TestColorize_Truncates(t *testing.T) {
	long := strings.Repeat("x", 200)
	got := ansi.Strip(colorize(long, log.LevelInfo, 20))

	require.Equal(t, 20, ansi.StringWidth(got))
	require.True(t, strings.HasSuffix(got, "…"))
}

func TestOverlay_CentersOverBackground(t *testing.T) {
	m := shown(t)
	bg := strings.Repeat(strings.Repeat(".", 100)+"\n", 39) + strings.Repeat(".", 100)

	out := ansi.Strip(m.Overlay(bg))
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 40)
	require.True(t, strings.HasPrefix(lines[0], "...."), "rows above the box keep the background")
	require.Contains(t, out, "Logs")
}
