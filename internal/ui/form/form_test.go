package form

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"
)

func init() {
	zone.NewGlobal()
}

func testConfig() Config {
	return Config{
		ID: "test",
		Fields: []FieldConfig{
			{Key: "username", Kind: KindText, Label: "Username", Placeholder: "Type Username"},
			{Key: "favLanguage", Kind: KindToggle, Label: "Favorite Language", Options: []Option{
				{Label: "JavaScript", Value: "javascript"},
				{Label: "Rust", Value: "rust"},
			}},
			{Key: "favFood", Kind: KindSelect, Label: "Favorite Food", Placeholder: "-- Select Favorite Food --", Options: []Option{
				{Label: "Pizza", Value: "pizza"},
				{Label: "Spaghetti", Value: "spaghetti"},
				{Label: "Broccoli", Value: "broccoli"},
			}},
			{Key: "agreement", Kind: KindCheckbox, Label: "Terms", CheckLabel: "Agree to our terms"},
		},
		SubmitLabel: "Register",
	}
}

// run executes cmd and returns the messages it produces, expanding batches.
// Commands that do not return promptly (cursor blinks) are dropped.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(50 * time.Millisecond):
		return nil
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// edit sends msg and drains the edits it recorded.
func edit(m Model, msg tea.Msg) (Model, []Change) {
	m, _ = m.Update(msg)
	return m.TakeChanges()
}

func submits(cmd tea.Cmd) []SubmitMsg {
	var out []SubmitMsg
	for _, msg := range run(cmd) {
		if s, ok := msg.(SubmitMsg); ok {
			out = append(out, s)
		}
	}
	return out
}

func press(m Model, msgs ...tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

var (
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyLeft     = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight    = tea.KeyMsg{Type: tea.KeyRight}
	keySpace    = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keyCtrlS    = tea.KeyMsg{Type: tea.KeyCtrlS}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_EmptyValues(t *testing.T) {
	m := New(testConfig())

	require.Equal(t, map[string]any{
		"username":    "",
		"favLanguage": "",
		"favFood":     "",
		"agreement":   false,
	}, m.Values())
	require.Equal(t, "username", m.FocusedKey())
	require.False(t, m.SubmitEnabled())
}

func TestFocusCycling(t *testing.T) {
	m := New(testConfig())

	m, _ = press(m, keyTab)
	require.Equal(t, "favLanguage", m.FocusedKey())
	m, _ = press(m, keyTab, keyTab, keyTab)
	require.Equal(t, "", m.FocusedKey(), "on the button")
	m, _ = press(m, keyTab)
	require.Equal(t, "username", m.FocusedKey(), "wraps to the first field")
	m, _ = press(m, keyShiftTab)
	require.Equal(t, "", m.FocusedKey(), "wraps backwards to the button")
}

func TestText_TypingEmitsChange(t *testing.T) {
	m := New(testConfig())

	m, edits := edit(m, runes("a"))
	require.Equal(t, []Change{{Key: "username", Value: "a"}}, edits)

	m, edits = edit(m, runes("b"))
	require.Equal(t, []Change{{Key: "username", Value: "ab"}}, edits)
	require.Equal(t, "ab", m.Value("username"))
}

func TestTakeChanges_KeepsOrderAndClears(t *testing.T) {
	m := New(testConfig())
	m, _ = press(m, runes("a"), runes("b"), runes("c"), keyTab, keyRight, keyRight)

	m, edits := m.TakeChanges()
	require.Equal(t, []Change{
		{Key: "username", Value: "a"},
		{Key: "username", Value: "ab"},
		{Key: "username", Value: "abc"},
		{Key: "favLanguage", Value: "javascript"},
		{Key: "favLanguage", Value: "rust"},
	}, edits)

	_, edits = m.TakeChanges()
	require.Empty(t, edits)
}

func TestText_SpaceIsTyped(t *testing.T) {
	m := New(testConfig())

	m, _ = m.Update(keySpace)
	require.Equal(t, " ", m.Value("username"))
}

func TestText_CursorKeysDoNotEmit(t *testing.T) {
	m := New(testConfig())
	m, _ = edit(m, runes("abc"))

	_, edits := edit(m, keyLeft)
	require.Empty(t, edits)
}

func TestToggle_StartsUnselected(t *testing.T) {
	m := New(testConfig())
	m, _ = press(m, keyTab)

	m, edits := edit(m, keyRight)
	require.Equal(t, []Change{{Key: "favLanguage", Value: "javascript"}}, edits,
		"first move selects the first option")

	m, edits = edit(m, keyRight)
	require.Equal(t, []Change{{Key: "favLanguage", Value: "rust"}}, edits)

	m, edits = edit(m, keyRight)
	require.Empty(t, edits, "stops at the end")

	m, edits = edit(m, keySpace)
	require.Equal(t, []Change{{Key: "favLanguage", Value: "javascript"}}, edits, "space wraps")

	_, edits = edit(m, keyLeft)
	require.Empty(t, edits, "cannot go back to none")
}

func TestSelect_PlaceholderIsEmptyValue(t *testing.T) {
	m := New(testConfig())
	m, _ = press(m, keyTab, keyTab)
	require.Equal(t, "favFood", m.FocusedKey())

	m, edits := edit(m, keyRight)
	require.Equal(t, []Change{{Key: "favFood", Value: "pizza"}}, edits)

	m, edits = edit(m, keyLeft)
	require.Equal(t, []Change{{Key: "favFood", Value: ""}}, edits, "back to the placeholder")

	m, _ = press(m, keySpace, keySpace, keySpace)
	require.Equal(t, "broccoli", m.Value("favFood"))
	m, _ = m.Update(keySpace)
	require.Equal(t, "", m.Value("favFood"), "space wraps onto the placeholder")
}

func TestCheckbox_Flips(t *testing.T) {
	m := New(testConfig())
	m, _ = press(m, keyTab, keyTab, keyTab)

	m, edits := edit(m, keySpace)
	require.Equal(t, []Change{{Key: "agreement", Value: true}}, edits)

	_, edits = edit(m, keyEnter)
	require.Equal(t, []Change{{Key: "agreement", Value: false}}, edits)
}

func TestSubmit_DisabledProducesNothing(t *testing.T) {
	m := New(testConfig())

	_, cmd := m.Update(keyCtrlS)
	require.Empty(t, submits(cmd))

	m, _ = press(m, keyShiftTab)
	_, cmd = m.Update(keyEnter)
	require.Empty(t, submits(cmd))
}

func TestSubmit_Enabled(t *testing.T) {
	m := New(testConfig()).SetSubmitEnabled(true)
	m, _ = m.Update(runes("alice"))

	_, cmd := m.Update(keyCtrlS)
	got := submits(cmd)
	require.Len(t, got, 1)
	require.Equal(t, "alice", got[0].Values["username"])

	m, _ = press(m, keyShiftTab)
	_, cmd = m.Update(keyEnter)
	require.Len(t, submits(cmd), 1, "enter on the button")
}

func TestSetValues_DoesNotEmit(t *testing.T) {
	m := New(testConfig()).SetValues(map[string]any{
		"username":    "bob",
		"favLanguage": "rust",
		"favFood":     "spaghetti",
		"agreement":   true,
	})
	require.Equal(t, "rust", m.Value("favLanguage"))

	m = m.SetValues(map[string]any{
		"username":    "",
		"favLanguage": "",
		"favFood":     "",
		"agreement":   false,
	})
	require.Equal(t, map[string]any{
		"username":    "",
		"favLanguage": "",
		"favFood":     "",
		"agreement":   false,
	}, m.Values())
}

func TestView_ShowsErrorsAndLabels(t *testing.T) {
	m := New(testConfig()).SetErrors(map[string]string{
		"username": "username must be at least 3 characters",
		"favFood":  "",
	})

	view := ansi.Strip(zone.Scan(m.View()))

	require.Contains(t, view, "Username")
	require.Contains(t, view, "username must be at least 3 characters")
	require.Contains(t, view, "○ JavaScript")
	require.Contains(t, view, "○ Rust")
	require.Contains(t, view, "-- Select Favorite Food --")
	require.Contains(t, view, "[ ] Agree to our terms")
	require.Contains(t, view, "Register")
	require.Equal(t, "", m.Error("favFood"))
}

func TestView_ReflectsSelections(t *testing.T) {
	m := New(testConfig()).SetValues(map[string]any{
		"favLanguage": "javascript",
		"favFood":     "broccoli",
		"agreement":   true,
	})

	view := ansi.Strip(zone.Scan(m.View()))
	require.Contains(t, view, "● JavaScript")
	require.Contains(t, view, "Broccoli")
	require.Contains(t, view, "[x] Agree to our terms")
}

func clickZone(t *testing.T, m Model, id string) (Model, tea.Cmd) {
	t.Helper()
	zone.Scan(m.View())

	var info *zone.ZoneInfo
	require.Eventually(t, func() bool {
		info = zone.Get(id)
		return info != nil && !info.IsZero()
	}, time.Second, 5*time.Millisecond, "zone %s not registered", id)

	return m.Update(tea.MouseMsg{
		X:      info.StartX,
		Y:      info.StartY,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionRelease,
	})
}

// clickable gives each test its own zone IDs so positions recorded by
// earlier scans cannot match.
func clickable(t *testing.T) Model {
	cfg := testConfig()
	cfg.ID = strings.ReplaceAll(strings.ToLower(t.Name()), "/", "-")
	return New(cfg)
}

func TestClick_ToggleOption(t *testing.T) {
	m := clickable(t)

	m, _ = clickZone(t, m, m.optionZoneID(1, 1))

	require.Equal(t, "favLanguage", m.FocusedKey())
	_, edits := m.TakeChanges()
	require.Equal(t, []Change{{Key: "favLanguage", Value: "rust"}}, edits)
}

func TestClick_Checkbox(t *testing.T) {
	m := clickable(t)

	m, _ = clickZone(t, m, m.fieldZoneID(3))

	require.Equal(t, true, m.Value("agreement"))
	_, edits := m.TakeChanges()
	require.Equal(t, []Change{{Key: "agreement", Value: true}}, edits)
}

func TestClick_DisabledButton(t *testing.T) {
	m := clickable(t)

	_, cmd := clickZone(t, m, m.buttonZoneID())
	require.Empty(t, submits(cmd))
}
