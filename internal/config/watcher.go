package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a configuration file's parent directory for changes
// and calls OnChange, debounced, whenever the watched file itself is
// written. Watching the directory rather than the file directly
// survives editors that save by rename, the same reasoning behind the
// teacher's FSNotifyWatcher in project/watcher/fsnotify.go; the debounce
// timer is adapted from project/watcher/debounce.go's single-path
// coalescing, simplified to the one file this watcher cares about.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	delay    time.Duration
	onChange func()

	mu    sync.Mutex
	timer *time.Timer

	done chan struct{}
}

// NewWatcher creates a Watcher for path. onChange is invoked (on its own
// goroutine) no more than once per delay window after the file settles.
// delay <= 0 defaults to 200ms.
func NewWatcher(path string, delay time.Duration, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if delay <= 0 {
		delay = 200 * time.Millisecond
	}

	absDir := filepath.Dir(path)
	if err := fsw.Add(absDir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		path:     filepath.Clean(path),
		delay:    delay,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.schedule()
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.onChange)
}

// Close stops the watcher and releases the underlying fsnotify handle.
func (w *Watcher) Close() error {
	close(w.done)
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.fsw.Close()
}
