package form

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/signup/internal/keys"
)

// Change records that the user edited one field.
type Change struct {
	Key   string
	Value any
}

// SubmitMsg is sent when the enabled submit button is pressed.
type SubmitMsg struct {
	Values map[string]any
}

// Model is the form state. Methods return a new Model.
type Model struct {
	config        Config
	fields        []fieldState
	focused       int // index into fields; len(fields) is the submit button
	errors        map[string]string
	submitEnabled bool
	changes       []Change // edits since the last TakeChanges, oldest first
}

// New creates a form focused on its first field.
func New(cfg Config) Model {
	if cfg.Width == 0 {
		cfg.Width = 50
	}
	if cfg.SubmitLabel == "" {
		cfg.SubmitLabel = "Submit"
	}
	if cfg.ID == "" {
		cfg.ID = "form"
	}

	m := Model{
		config: cfg,
		fields: make([]fieldState, len(cfg.Fields)),
		errors: make(map[string]string),
	}
	for i, fc := range cfg.Fields {
		m.fields[i] = newFieldState(fc, cfg.Width)
	}
	m.focusField(0)
	return m
}

// Init starts the cursor blink when a text field has focus.
func (m Model) Init() tea.Cmd {
	if fs := m.focusedField(); fs != nil && fs.config.Kind == KindText {
		return fs.input.Focus()
	}
	return nil
}

// Values returns every field value keyed by FieldConfig.Key.
func (m Model) Values() map[string]any {
	values := make(map[string]any, len(m.fields))
	for i := range m.fields {
		values[m.fields[i].config.Key] = m.fields[i].value()
	}
	return values
}

// Value returns one field's value, or nil for an unknown key.
func (m Model) Value(key string) any {
	for i := range m.fields {
		if m.fields[i].config.Key == key {
			return m.fields[i].value()
		}
	}
	return nil
}

// SetValues loads values into the widgets without recording a Change.
// Fields missing from values are left unchanged.
func (m Model) SetValues(values map[string]any) Model {
	for i := range m.fields {
		if v, ok := values[m.fields[i].config.Key]; ok {
			m.fields[i].setValue(v)
		}
	}
	return m
}

// SetErrors replaces the inline error messages.
func (m Model) SetErrors(errs map[string]string) Model {
	m.errors = make(map[string]string, len(errs))
	for k, v := range errs {
		m.errors[k] = v
	}
	return m
}

// Error returns the inline message shown under a field.
func (m Model) Error(key string) string {
	return m.errors[key]
}

// SetSubmitEnabled enables or disables the submit button.
func (m Model) SetSubmitEnabled(enabled bool) Model {
	m.submitEnabled = enabled
	return m
}

// SubmitEnabled reports whether the submit button is enabled.
func (m Model) SubmitEnabled() bool {
	return m.submitEnabled
}

// SetWidth resizes the form.
func (m Model) SetWidth(width int) Model {
	m.config.Width = max(width, 20)
	for i := range m.fields {
		if m.fields[i].config.Kind == KindText {
			m.fields[i].input.Width = max(m.config.Width-6, 1)
		}
	}
	return m
}

// FocusedKey returns the key of the focused field, or "" on the button.
func (m Model) FocusedKey() string {
	if fs := m.focusedField(); fs != nil {
		return fs.config.Key
	}
	return ""
}

// TakeChanges returns the edits made by Update calls since the previous
// TakeChanges, in the order they happened, and clears them. Callers that
// mirror the values elsewhere must drain it after every Update.
func (m Model) TakeChanges() (Model, []Change) {
	out := m.changes
	m.changes = nil
	return m, out
}

// Update handles key and mouse input. Field edits are recorded on the
// returned Model; see TakeChanges.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
			return m.handleClick(msg)
		}
		return m, nil
	}

	// Cursor blink and other textinput messages.
	if fs := m.focusedField(); fs != nil && fs.config.Kind == KindText {
		var cmd tea.Cmd
		fs.input, cmd = fs.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Form.Submit):
		return m, m.submit()
	case key.Matches(msg, keys.Form.NextField):
		return m.moveFocus(1)
	case key.Matches(msg, keys.Form.PrevField):
		return m.moveFocus(-1)
	}

	fs := m.focusedField()
	if fs == nil {
		if key.Matches(msg, keys.Form.Confirm, keys.Form.Toggle) {
			return m, m.submit()
		}
		return m, nil
	}

	switch fs.config.Kind {
	case KindText:
		if key.Matches(msg, keys.Form.Confirm) {
			return m.moveFocus(1)
		}
		before := fs.input.Value()
		var cmd tea.Cmd
		fs.input, cmd = fs.input.Update(msg)
		if after := fs.input.Value(); after != before {
			m.record(fs.config.Key, after)
		}
		return m, cmd

	case KindToggle, KindSelect:
		var moved bool
		switch {
		case key.Matches(msg, keys.Form.Left):
			moved = fs.step(-1)
		case key.Matches(msg, keys.Form.Right):
			moved = fs.step(1)
		case key.Matches(msg, keys.Form.Toggle):
			moved = fs.cycle()
		case key.Matches(msg, keys.Form.Confirm):
			return m.moveFocus(1)
		}
		if moved {
			m.record(fs.config.Key, fs.value())
		}
		return m, nil

	case KindCheckbox:
		if key.Matches(msg, keys.Form.Toggle, keys.Form.Confirm) {
			fs.checked = !fs.checked
			m.record(fs.config.Key, fs.checked)
		}
	}
	return m, nil
}

func (m Model) handleClick(msg tea.MouseMsg) (Model, tea.Cmd) {
	if z := zone.Get(m.buttonZoneID()); z != nil && z.InBounds(msg) {
		m, cmd := m.setFocus(len(m.fields))
		return m, tea.Batch(cmd, m.submit())
	}

	for i := range m.fields {
		fs := &m.fields[i]
		for j := range fs.config.Options {
			if fs.config.Kind != KindToggle {
				break
			}
			if z := zone.Get(m.optionZoneID(i, j)); z != nil && z.InBounds(msg) {
				m, cmd := m.setFocus(i)
				fs = &m.fields[i]
				if fs.selected == j {
					return m, cmd
				}
				fs.selected = j
				m.record(fs.config.Key, fs.value())
				return m, cmd
			}
		}

		z := zone.Get(m.fieldZoneID(i))
		if z == nil || !z.InBounds(msg) {
			continue
		}
		m, cmd := m.setFocus(i)
		fs = &m.fields[i]
		switch fs.config.Kind {
		case KindCheckbox:
			fs.checked = !fs.checked
			m.record(fs.config.Key, fs.checked)
		case KindSelect:
			fs.cycle()
			m.record(fs.config.Key, fs.value())
		}
		return m, cmd
	}
	return m, nil
}

func (m Model) submit() tea.Cmd {
	if !m.submitEnabled {
		return nil
	}
	values := m.Values()
	return func() tea.Msg { return SubmitMsg{Values: values} }
}

func (m Model) moveFocus(delta int) (Model, tea.Cmd) {
	n := len(m.fields) + 1
	return m.setFocus(((m.focused+delta)%n + n) % n)
}

func (m Model) setFocus(index int) (Model, tea.Cmd) {
	if fs := m.focusedField(); fs != nil && fs.config.Kind == KindText {
		fs.input.Blur()
	}
	return m, m.focusField(index)
}

// focusField moves focus to index and returns the text cursor command.
func (m *Model) focusField(index int) tea.Cmd {
	m.focused = index
	if fs := m.focusedField(); fs != nil && fs.config.Kind == KindText {
		return fs.input.Focus()
	}
	return nil
}

func (m *Model) focusedField() *fieldState {
	if m.focused >= 0 && m.focused < len(m.fields) {
		return &m.fields[m.focused]
	}
	return nil
}

func (m *Model) record(key string, value any) {
	m.changes = append(m.changes, Change{Key: key, Value: value})
}

func (m Model) fieldZoneID(i int) string     { return fmt.Sprintf("%s-field-%d", m.config.ID, i) }
func (m Model) optionZoneID(i, j int) string { return fmt.Sprintf("%s-opt-%d-%d", m.config.ID, i, j) }
func (m Model) buttonZoneID() string         { return m.config.ID + "-submit" }
