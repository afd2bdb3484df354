package log

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormat_FieldsAndOrphanKey(t *testing.T) {
	ts := time.Date(2025, 12, 6, 10, 45, 0, 0, time.UTC)

	got := format(ts, LevelError, CatSubmit, "post failed", "status", 409, "attempt")

	require.Equal(t, "2025-12-06T10:45:00 [ERROR] [submit] post failed status=409 attempt=<missing>", got)
}

func TestLog_WritesAndBuffers(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)

	Info(CatForm, "field changed", "field", "username")
	ErrorErr(CatSubmit, "register", errors.New("boom"))

	require.Contains(t, buf.String(), "[INFO] [form] field changed field=username")
	require.Contains(t, buf.String(), "error=boom")

	entries := Entries()
	require.Len(t, entries, 2)
	require.Equal(t, LevelInfo, ParseLevel(entries[0]))
	require.Equal(t, LevelError, ParseLevel(entries[1]))

	ClearBuffer()
	require.Empty(t, Entries())
}

func TestLog_MinLevelAndDisable(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)

	SetMinLevel(LevelWarn)
	Debug(CatUI, "ignored")
	Warn(CatUI, "kept")
	require.NotContains(t, buf.String(), "ignored")
	require.Contains(t, buf.String(), "kept")

	SetEnabled(false)
	Error(CatUI, "silenced")
	require.NotContains(t, buf.String(), "silenced")
}

func TestLog_BufferCapacity(t *testing.T) {
	InitWriter(nil)
	current().capacity = 3

	for i := 0; i < 5; i++ {
		Debug(CatCache, "entry", "i", i)
	}

	entries := Entries()
	require.Len(t, entries, 3)
	require.Contains(t, entries[0], "i=2")
	require.Contains(t, entries[2], "i=4")
}

func TestNewListener_ReceivesEntries(t *testing.T) {
	InitWriter(nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewListener(ctx)
	require.NotNil(t, listener)

	Info(CatConfig, "reloaded")

	msg := listener.Listen()()
	event, ok := msg.(LogEvent)
	require.True(t, ok)
	require.Contains(t, event.Payload, "reloaded")
}
