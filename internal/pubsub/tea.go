package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ListenCmd returns a Bubble Tea command that waits for the next event on ch
// and delivers it as a tea.Msg. It yields nil once ctx is done or ch closes.
func ListenCmd[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	return func() tea.Msg {
		event, ok := next(ctx, ch)
		if !ok {
			return nil
		}
		return event
	}
}

// ListenLatestCmd is ListenCmd for consumers that only care about the current
// value: once an event arrives, events already queued behind it are skipped
// and the newest one is delivered.
func ListenLatestCmd[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	return func() tea.Msg {
		event, ok := next(ctx, ch)
		if !ok {
			return nil
		}
		for {
			select {
			case newer, open := <-ch:
				if !open {
					return event
				}
				event = newer
			default:
				return event
			}
		}
	}
}

func next[T any](ctx context.Context, ch <-chan Event[T]) (Event[T], bool) {
	select {
	case <-ctx.Done():
		return Event[T]{}, false
	case event, ok := <-ch:
		return event, ok
	}
}

// ContinuousListener keeps one broker subscription alive across Update calls.
// Call Listen again after handling each event to keep receiving.
type ContinuousListener[T any] struct {
	ctx    context.Context
	ch     <-chan Event[T]
	latest bool
}

// NewContinuousListener subscribes to the broker for the lifetime of ctx and
// delivers every event in order.
func NewContinuousListener[T any](ctx context.Context, broker *Broker[T]) *ContinuousListener[T] {
	return &ContinuousListener[T]{
		ctx: ctx,
		ch:  broker.Subscribe(ctx),
	}
}

// NewLatestListener is NewContinuousListener for snapshot streams: a Listen
// that finds a backlog delivers only its newest event.
func NewLatestListener[T any](ctx context.Context, broker *Broker[T]) *ContinuousListener[T] {
	l := NewContinuousListener(ctx, broker)
	l.latest = true
	return l
}

// Listen returns a tea.Cmd that waits for the next event.
func (l *ContinuousListener[T]) Listen() tea.Cmd {
	if l.latest {
		return ListenLatestCmd(l.ctx, l.ch)
	}
	return ListenCmd(l.ctx, l.ch)
}
