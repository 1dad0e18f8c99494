// Package watcher provides debounced file-change notification, used to
// hot-reload the planning configuration while the viewer is running.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher watches files and fires a callback after changes settle.
// Editors typically replace files via rename, so renamed and removed
// paths are re-added transparently.
type Watcher struct {
	fs       *fsnotify.Watcher
	log      *log.Logger
	debounce time.Duration

	mu        sync.Mutex
	callbacks map[string]func(string)
	timers    map[string]*time.Timer
	done      chan struct{}
}

// New creates a watcher with the given debounce interval
func New(debounce time.Duration, logger *log.Logger) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Watcher{
		fs:        fs,
		log:       logger,
		debounce:  debounce,
		callbacks: make(map[string]func(string)),
		timers:    make(map[string]*time.Timer),
		done:      make(chan struct{}),
	}, nil
}

// Watch registers a file; callback receives the absolute path after
// each settled change.
func (w *Watcher) Watch(file string, callback func(string)) error {
	abs, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", file, err)
	}
	if err := w.fs.Add(abs); err != nil {
		return fmt.Errorf("watch %s: %w", abs, err)
	}

	w.mu.Lock()
	w.callbacks[abs] = callback
	w.mu.Unlock()
	return nil
}

// Start begins delivering change events until Close
func (w *Watcher) Start() {
	go w.loop()
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			switch {
			case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
				w.schedule(event.Name)
			case event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove):
				// Atomic save: the watched inode is gone, re-add the
				// path and treat it as a change once it reappears.
				w.rearm(event.Name)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Error("watcher", "err", err)
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	callback, ok := w.callbacks[path]
	if !ok {
		return
	}
	if timer, ok := w.timers[path]; ok {
		timer.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		callback(path)
	})
}

func (w *Watcher) rearm(path string) {
	w.mu.Lock()
	_, watched := w.callbacks[path]
	w.mu.Unlock()
	if !watched {
		return
	}

	// The file may not exist yet mid-save; retry briefly
	go func() {
		for i := 0; i < 20; i++ {
			if err := w.fs.Add(path); err == nil {
				w.schedule(path)
				return
			}
			select {
			case <-w.done:
				return
			case <-time.After(50 * time.Millisecond):
			}
		}
		w.log.Warn("watched file did not reappear", "path", path)
	}()
}

// Close stops the watcher and releases its resources
func (w *Watcher) Close() error {
	close(w.done)
	w.mu.Lock()
	for _, timer := range w.timers {
		timer.Stop()
	}
	w.timers = make(map[string]*time.Timer)
	w.mu.Unlock()
	return w.fs.Close()
}
