package watcher_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/signup/internal/config"
	"github.com/zjrosen/signup/internal/pubsub"
	"github.com/zjrosen/signup/internal/watcher"
)

func startWatcher(t *testing.T) (string, <-chan pubsub.Event[config.Config]) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(path))

	w, err := watcher.New(path, 50*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	events := w.Subscribe(ctx)
	require.NoError(t, w.Start())
	return path, events
}

func writeEndpoint(t *testing.T, path, endpoint string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("endpoint: "+endpoint+"\n"), 0o600))
}

func TestWatcher_ReloadsAfterWrite(t *testing.T) {
	path, events := startWatcher(t)

	writeEndpoint(t, path, "http://127.0.0.1:9000/registration")

	select {
	case ev := <-events:
		require.Equal(t, pubsub.ReloadedEvent, ev.Type)
		require.Equal(t, "http://127.0.0.1:9000/registration", ev.Payload.Endpoint)
	case <-time.After(2 * time.Second):
		t.Fatal("expected reload")
	}
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	path, events := startWatcher(t)

	for i := 0; i < 10; i++ {
		writeEndpoint(t, path, fmt.Sprintf("http://127.0.0.1:%d/registration", 9000+i))
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case ev := <-events:
		require.Equal(t, "http://127.0.0.1:9009/registration", ev.Payload.Endpoint)
	case <-time.After(2 * time.Second):
		t.Fatal("expected reload")
	}

	select {
	case <-events:
		t.Fatal("unexpected second reload")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_SkipsInvalidConfig(t *testing.T) {
	path, events := startWatcher(t)

	writeEndpoint(t, path, "ftp://nope")

	select {
	case ev := <-events:
		t.Fatalf("invalid config published: %+v", ev.Payload)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_SeesAtomicSetValue(t *testing.T) {
	path, events := startWatcher(t)

	require.NoError(t, config.SetValue(path, "timeout", "3s"))

	select {
	case ev := <-events:
		require.Equal(t, 3*time.Second, ev.Payload.Timeout)
	case <-time.After(2 * time.Second):
		t.Fatal("expected reload after rename")
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	path, events := startWatcher(t)

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.yaml"), []byte("x: 1\n"), 0o600))

	select {
	case <-events:
		t.Fatal("unexpected reload")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_StopClosesSubscriptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	w, err := watcher.New(path, 0)
	require.NoError(t, err)

	events := w.Subscribe(context.Background())
	require.NoError(t, w.Start())
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())

	select {
	case _, ok := <-events:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription not closed")
	}
}
