// Package watch reports changes to the set of packages in a directory.
package watch

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts such as a large copy into one rescan.
const DefaultDebounce = 500 * time.Millisecond

// Watcher calls onChange once a burst of package additions, removals or
// rewrites in dir has settled.
type Watcher struct {
	watcher *fsnotify.Watcher

	dir      string
	suffix   string
	onChange func()
	debounce time.Duration

	mu        sync.Mutex
	timer     *time.Timer
	closed    bool
	closeOnce sync.Once
}

func New(dir, suffix string, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	clean := filepath.Clean(dir)
	if err := fw.Add(clean); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return &Watcher{
		watcher:  fw,
		dir:      clean,
		suffix:   suffix,
		onChange: onChange,
		debounce: DefaultDebounce,
	}, nil
}

// Run forwards filesystem events until ctx is done or Close is called.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				w.schedule()
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
		}
	}
}

func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		if w.timer != nil {
			w.timer.Stop()
			w.timer = nil
		}
		w.mu.Unlock()
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	name := filepath.Clean(event.Name)
	if filepath.Dir(name) != w.dir {
		return false
	}
	if !strings.HasSuffix(filepath.Base(name), w.suffix) {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) != 0
}

func (w *Watcher) schedule() {
	if w.onChange == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, w.fire)
	} else {
		w.timer.Reset(w.debounce)
	}
}

func (w *Watcher) fire() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.timer = nil
	w.mu.Unlock()
	w.onChange()
}
