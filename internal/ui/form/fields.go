package form

import (
	"github.com/charmbracelet/bubbles/textinput"
)

// fieldState holds runtime state for one field.
type fieldState struct {
	config FieldConfig

	input textinput.Model // KindText

	// KindToggle and KindSelect: index into config.Options, -1 for none or
	// the placeholder.
	selected int

	checked bool // KindCheckbox
}

func newFieldState(cfg FieldConfig, width int) fieldState {
	fs := fieldState{config: cfg, selected: -1}
	if cfg.Kind == KindText {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = cfg.Placeholder
		if cfg.MaxLength > 0 {
			ti.CharLimit = cfg.MaxLength
		}
		ti.Width = max(width-6, 1)
		fs.input = ti
	}
	return fs
}

// value extracts the field's current value.
func (fs *fieldState) value() any {
	switch fs.config.Kind {
	case KindText:
		return fs.input.Value()
	case KindToggle, KindSelect:
		if fs.selected >= 0 && fs.selected < len(fs.config.Options) {
			return fs.config.Options[fs.selected].Value
		}
		return ""
	case KindCheckbox:
		return fs.checked
	}
	return nil
}

// setValue loads v into the widget. Values of the wrong type or unknown
// options reset the widget to empty.
func (fs *fieldState) setValue(v any) {
	switch fs.config.Kind {
	case KindText:
		s, _ := v.(string)
		fs.input.SetValue(s)
	case KindToggle, KindSelect:
		s, _ := v.(string)
		fs.selected = -1
		for i, opt := range fs.config.Options {
			if opt.Value == s {
				fs.selected = i
				break
			}
		}
	case KindCheckbox:
		b, _ := v.(bool)
		fs.checked = b
	}
}

// step moves a toggle or select by delta, stopping at the ends. An
// unselected toggle selects its first option; a select may step back onto
// the placeholder.
func (fs *fieldState) step(delta int) bool {
	n := len(fs.config.Options)
	if n == 0 {
		return false
	}

	next := fs.selected + delta
	lowest := -1
	if fs.config.Kind == KindToggle {
		lowest = 0
		if fs.selected < 0 {
			next = 0
		}
	}
	next = max(min(next, n-1), lowest)
	if next == fs.selected {
		return false
	}
	fs.selected = next
	return true
}

// cycle advances a toggle or select, wrapping around.
func (fs *fieldState) cycle() bool {
	n := len(fs.config.Options)
	if n == 0 {
		return false
	}
	switch fs.config.Kind {
	case KindToggle:
		fs.selected = (fs.selected + 1) % n
	case KindSelect:
		fs.selected++
		if fs.selected >= n {
			fs.selected = -1
		}
	default:
		return false
	}
	return true
}
