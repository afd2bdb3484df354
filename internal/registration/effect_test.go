package registration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type verdictLog struct {
	mu     sync.Mutex
	states []FormState
	valid  []bool
}

func (v *verdictLog) record(state FormState, valid bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.states = append(v.states, state)
	v.valid = append(v.valid, valid)
}

func (v *verdictLog) last() (FormState, bool, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.valid) == 0 {
		return FormState{}, false, 0
	}
	return v.states[len(v.states)-1], v.valid[len(v.valid)-1], len(v.valid)
}

func startWatch(t *testing.T, f *Form, gate GateFunc) *verdictLog {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	verdicts := &verdictLog{}
	go WatchGate(ctx, f, gate, verdicts.record)

	require.Eventually(t, func() bool {
		_, _, n := verdicts.last()
		return n >= 1
	}, time.Second, 5*time.Millisecond, "initial evaluation")
	return verdicts
}

func TestWatchGate_Scenario_ShortUsername(t *testing.T) {
	f := newTestForm(t)
	verdicts := startWatch(t, f, newTestGate(t).Valid)

	want := FormState{Username: "ab", FavLanguage: "rust", FavFood: "pizza", Agreement: true}
	fill(t, f, want)

	require.Eventually(t, func() bool {
		state, _, _ := verdicts.last()
		return state == want
	}, time.Second, 5*time.Millisecond)

	require.False(t, f.Gate())
	require.Equal(t, MsgUsernameMin, f.Error(FieldUsername))
}

func TestWatchGate_Scenario_AllValid(t *testing.T) {
	f := newTestForm(t)
	verdicts := startWatch(t, f, newTestGate(t).Valid)

	want := FormState{Username: "alice", FavLanguage: "javascript", FavFood: "broccoli", Agreement: true}
	fill(t, f, want)

	require.Eventually(t, func() bool {
		state, valid, _ := verdicts.last()
		return state == want && valid
	}, time.Second, 5*time.Millisecond)

	require.True(t, f.Gate())
	require.False(t, f.Errors().Any())
}

func TestWatchGate_ResetClosesGate(t *testing.T) {
	f := newTestForm(t)
	verdicts := startWatch(t, f, newTestGate(t).Valid)

	fill(t, f, FormState{Username: "alice", FavLanguage: "javascript", FavFood: "broccoli", Agreement: true})
	require.Eventually(t, f.Gate, time.Second, 5*time.Millisecond)

	f.Finish(Succeeded(MsgSubmitSuccess))

	require.Eventually(t, func() bool {
		state, valid, _ := verdicts.last()
		return state == DefaultState() && !valid
	}, time.Second, 5*time.Millisecond)
	require.False(t, f.Gate())
}

func TestWatchGate_GateErrorMeansInvalid(t *testing.T) {
	f := newTestForm(t)
	f.SetGate(true)

	startWatch(t, f, func(context.Context, FormState) (bool, error) {
		return true, errors.New("engine exploded")
	})

	require.Eventually(t, func() bool { return !f.Gate() }, time.Second, 5*time.Millisecond)
}

func TestWatchGate_StopsWhenFormCloses(t *testing.T) {
	f := NewForm(NewValidator(DefaultSchema()))
	gate := newTestGate(t)

	done := make(chan struct{})
	go func() {
		WatchGate(context.Background(), f, gate.Valid, nil)
		close(done)
	}()

	// Give WatchGate time to subscribe before closing.
	time.Sleep(20 * time.Millisecond)
	f.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "WatchGate did not return")
	}
}
