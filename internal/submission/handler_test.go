package submission

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/signup/internal/registration"
)

type registrarFunc func(context.Context, registration.FormState) error

func (f registrarFunc) Register(ctx context.Context, s registration.FormState) error {
	return f(ctx, s)
}

func TestHandler_Submit(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want registration.ResultMessage
	}{
		{"success", nil, registration.ResultMessage{Success: registration.MsgSubmitSuccess}},
		{"conflict", &StatusError{StatusCode: http.StatusConflict, Status: "409 Conflict"}, registration.ResultMessage{Failure: registration.MsgSubmitFailure}},
		{"server error", &StatusError{StatusCode: http.StatusInternalServerError, Status: "500"}, registration.ResultMessage{Failure: registration.MsgSubmitFailure}},
		{"network", errors.New("connection refused"), registration.ResultMessage{Failure: registration.MsgSubmitFailure}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(registrarFunc(func(context.Context, registration.FormState) error { return tt.err }), nil)
			require.Equal(t, tt.want, h.Submit(context.Background(), validState))
		})
	}
}

func TestHandler_SendsStateUnchanged(t *testing.T) {
	var got registration.FormState
	h := NewHandler(registrarFunc(func(_ context.Context, s registration.FormState) error {
		got = s
		return nil
	}), nil)

	invalid := registration.FormState{Username: "ab"}
	h.Submit(context.Background(), invalid)
	require.Equal(t, invalid, got, "the handler does not validate")
}

func TestHandler_EndToEnd(t *testing.T) {
	srv, requests := newRecordingServer(t, http.StatusCreated)
	h := NewHandler(NewClient(srv.URL), nil)

	res := h.Submit(context.Background(), validState)
	require.True(t, res.OK())
	require.Len(t, requests(), 1)
}

func TestHandler_SetRegistrar(t *testing.T) {
	fail := registrarFunc(func(context.Context, registration.FormState) error { return errors.New("x") })
	ok := registrarFunc(func(context.Context, registration.FormState) error { return nil })

	h := NewHandler(fail, nil)
	require.False(t, h.Submit(context.Background(), validState).OK())

	h.SetRegistrar(ok)
	require.True(t, h.Submit(context.Background(), validState).OK())
}
