// Package form is a keyboard and mouse driven form component for Bubble Tea.
//
// The form owns only presentation state: focus, cursor positions and the
// current widget values. Every edit is recorded on the returned Model and
// drained by the parent with TakeChanges in the same Update, so the parent
// sees edits in order and can push inline errors back with SetErrors. The
// submit button is enabled or disabled by the parent with SetSubmitEnabled;
// while disabled no SubmitMsg is ever produced.
//
// Keyboard:
//
//	Tab, Down          - Next field
//	Shift+Tab, Up      - Previous field
//	Left/Right         - Change toggle or select option
//	Space              - Select/cycle option, flip checkbox
//	Enter              - Next field; flip checkbox; press button
//	Ctrl+S             - Submit from anywhere
package form

// Kind identifies the widget used for a field.
type Kind int

const (
	// KindText is a single-line text input. Value type: string.
	KindText Kind = iota

	// KindToggle is a horizontal radio group. Nothing is selected until the
	// user picks an option. Value type: string ("" when unselected).
	KindToggle

	// KindSelect cycles through a placeholder followed by Options.
	// Value type: string ("" while on the placeholder).
	KindSelect

	// KindCheckbox is a single checkbox. Value type: bool.
	KindCheckbox
)

// Option is one choice of a toggle or select field.
type Option struct {
	Label string
	Value string
}

// FieldConfig defines a single field.
type FieldConfig struct {
	Key   string
	Kind  Kind
	Label string // section title
	Hint  string // shown next to the title, e.g. "required"

	Placeholder string // text: empty input hint; select: first entry
	MaxLength   int    // text: character limit (0 = unlimited)

	Options []Option // toggle and select choices

	CheckLabel string // checkbox: text after the box
}

// Config defines the whole form.
type Config struct {
	ID          string // zone prefix; must be unique per program
	Fields      []FieldConfig
	SubmitLabel string // default "Submit"
	Width       int    // default 50
}
