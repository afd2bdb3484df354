// Package watcher reloads the config file when it changes on disk.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/signup/internal/config"
	"github.com/zjrosen/signup/internal/log"
	"github.com/zjrosen/signup/internal/pubsub"
)

// DefaultDebounce coalesces editor save bursts.
const DefaultDebounce = 200 * time.Millisecond

// Watcher publishes a freshly loaded config.Config after the watched file
// settles. Files that fail to load or validate are logged and skipped, so
// subscribers only ever see valid configs.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	broker    *pubsub.Broker[config.Config]
	done      chan struct{}
	stopOnce  sync.Once
}

// New creates a watcher for the config file at path. A non-positive debounce
// uses DefaultDebounce.
func New(path string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	return &Watcher{
		fsWatcher: fsw,
		path:      filepath.Clean(path),
		debounce:  debounce,
		broker:    pubsub.NewBrokerWithBuffer[config.Config](1),
		done:      make(chan struct{}),
	}, nil
}

// Subscribe returns reloaded configs until ctx is cancelled or Stop is called.
func (w *Watcher) Subscribe(ctx context.Context) <-chan pubsub.Event[config.Config] {
	return w.broker.Subscribe(ctx)
}

// Broker exposes reloads for Bubble Tea listeners.
func (w *Watcher) Broker() *pubsub.Broker[config.Config] {
	return w.broker
}

// Start watches the directory containing the file. The directory is watched
// rather than the file so atomic rename-over saves are seen.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}
	log.Debug(log.CatWatcher, "watching config", "path", w.path)
	go w.loop()
	return nil
}

// Stop terminates the watcher and closes subscriptions. Safe to call twice.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
		w.broker.Close()
	})
	return err
}

func (w *Watcher) loop() {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevant(event) {
				continue
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			w.reload()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Warn(log.CatWatcher, "watch error", "error", err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := config.LoadFile(w.path)
	if err != nil {
		log.Warn(log.CatWatcher, "ignoring config change", "path", w.path, "error", err)
		return
	}
	log.Info(log.CatWatcher, "config reloaded", "endpoint", cfg.Endpoint, "timeout", cfg.Timeout)
	w.broker.Publish(pubsub.ReloadedEvent, cfg)
}

func (w *Watcher) isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}
