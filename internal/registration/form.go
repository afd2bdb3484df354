package registration

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/zjrosen/signup/internal/log"
	"github.com/zjrosen/signup/internal/pubsub"
)

// Form owns the registration form's state: the field values, the inline
// error messages, the submit gate and the result banner.
//
// Every state change is published as a snapshot on the form's broker. The
// submit gate is never computed inline; it is recomputed by whoever reacts
// to those snapshots (WatchGate, or the TUI's gate listener) and stored with
// SetGate.
type Form struct {
	mu        sync.Mutex
	validator *Validator
	state     FormState
	errors    ErrorMap
	gate      bool
	result    ResultMessage
	broker    *pubsub.Broker[FormState]
}

// NewForm creates an empty form validated by v. The gate starts closed.
func NewForm(v *Validator) *Form {
	return &Form{
		validator: v,
		state:     DefaultState(),
		errors:    ErrorMap{},
		broker:    pubsub.NewBroker[FormState](),
	}
}

// Change replaces field f with value, validates f against value alone and
// updates only f's error entry, then publishes the new state. Errors are
// returned for unknown fields, values of the wrong kind, or a validator that
// fails outright; in each case nothing changes.
func (f *Form) Change(ctx context.Context, field Field, value any) (FormState, error) {
	f.mu.Lock()
	next, err := f.state.With(field, value)
	if err != nil {
		f.mu.Unlock()
		return f.State(), err
	}

	msg := ""
	if verr := f.validator.ValidateField(ctx, field, value); verr != nil {
		var fe *FieldError
		if !errors.As(verr, &fe) {
			prev := f.state
			f.mu.Unlock()
			return prev, fmt.Errorf("validating %s: %w", field, verr)
		}
		msg = fe.Message
	}
	f.state = next
	f.errors[field] = msg
	f.mu.Unlock()

	log.Debug(log.CatForm, "field changed", "field", field, "error", msg)
	f.broker.Publish(pubsub.UpdatedEvent, next)
	return next, nil
}

// State returns the current values.
func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Errors returns a copy of the inline error messages.
func (f *Form) Errors() ErrorMap {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors.Clone()
}

// Error returns the inline message for one field.
func (f *Form) Error(field Field) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors[field]
}

// Gate reports whether submission is allowed.
func (f *Form) Gate() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gate
}

// SetGate stores a whole-form validity verdict.
func (f *Form) SetGate(valid bool) {
	f.mu.Lock()
	f.gate = valid
	f.mu.Unlock()
	log.Debug(log.CatGate, "gate updated", "valid", valid)
}

// Result returns the current banner.
func (f *Form) Result() ResultMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

// BeginSubmit clears the banner and returns the state to send. The state is
// returned as-is; the gate only disables the submit control.
func (f *Form) BeginSubmit() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.result = ResultMessage{}
	return f.state
}

// Finish records a submission outcome. A success also resets the values to
// defaults and publishes the reset state so the gate is recomputed. Inline
// error messages are left untouched.
func (f *Form) Finish(res ResultMessage) {
	f.mu.Lock()
	if res.OK() {
		f.result = ResultMessage{Success: res.Success}
		f.state = DefaultState()
	} else {
		f.result = ResultMessage{Failure: res.Failure}
	}
	state := f.state
	f.mu.Unlock()

	if res.OK() {
		f.broker.Publish(pubsub.ResetEvent, state)
	}
}

// Subscribe returns a channel of state snapshots, one per change.
func (f *Form) Subscribe(ctx context.Context) <-chan pubsub.Event[FormState] {
	return f.broker.Subscribe(ctx)
}

// Broker exposes the snapshot broker for Bubble Tea listeners.
func (f *Form) Broker() *pubsub.Broker[FormState] {
	return f.broker
}

// Close closes every subscription.
func (f *Form) Close() {
	f.broker.Close()
}
