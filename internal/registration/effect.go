package registration

import (
	"context"

	"github.com/zjrosen/signup/internal/log"
)

// GateFunc reports whole-form validity for a snapshot.
type GateFunc func(ctx context.Context, state FormState) (bool, error)

// Recompute runs gate on state and reduces failures of the gate itself to
// "not valid".
func Recompute(ctx context.Context, gate GateFunc, state FormState) bool {
	valid, err := gate(ctx, state)
	if err != nil {
		log.ErrorErr(log.CatGate, "gate recompute failed", err)
		return false
	}
	return valid
}

// WatchGate keeps form's gate in sync with its state until ctx is done or
// the form is closed. The current state is evaluated once up front; after
// that every published snapshot is evaluated and stored with SetGate.
// onResult, when non-nil, observes each verdict.
func WatchGate(ctx context.Context, form *Form, gate GateFunc, onResult func(FormState, bool)) {
	events := form.Subscribe(ctx)

	apply := func(state FormState) {
		valid := Recompute(ctx, gate, state)
		form.SetGate(valid)
		if onResult != nil {
			onResult(state, valid)
		}
	}

	apply(form.State())
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			apply(ev.Payload)
		}
	}
}
