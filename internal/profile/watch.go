package profile

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDelay coalesces the burst of events editors emit on save.
const DefaultWatchDelay = 200 * time.Millisecond

// ReportHandler receives a fresh report after each change, or the load error.
type ReportHandler func(Report, error)

// Watcher reloads a profile file whenever it changes and reports the result.
// The parent directory is watched so editors that save by rename are seen.
type Watcher struct {
	path    string
	loader  *Loader
	watcher *fsnotify.Watcher
	onCheck ReportHandler
	delay   time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	checks  sync.WaitGroup

	done chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher creates a watcher for path. Call Start to begin.
func NewWatcher(path string, loader *Loader, onCheck ReportHandler) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	return &Watcher{
		path:    abs,
		loader:  loader,
		watcher: fw,
		onCheck: onCheck,
		delay:   DefaultWatchDelay,
		done:    make(chan struct{}),
	}, nil
}

// SetDelay overrides the debounce delay. Must be called before Start.
func (w *Watcher) SetDelay(d time.Duration) {
	w.delay = d
}

// Start reports the current file once, then watches for changes.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	w.check()

	w.wg.Add(1)
	go w.eventLoop()
	return nil
}

// Stop ends watching. Pending reloads are dropped and a running one finishes
// before Stop returns.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	close(w.done)
	_ = w.watcher.Close()
	w.wg.Wait()
	w.checks.Wait()
}

func (w *Watcher) eventLoop() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("profile watch error", "path", w.path, "error", err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.check)
}

func (w *Watcher) check() {
	w.mu.Lock()
	if w.stopped || w.onCheck == nil {
		w.mu.Unlock()
		return
	}
	// Stop waits for a check that got past this point.
	w.checks.Add(1)
	w.mu.Unlock()
	defer w.checks.Done()

	p, err := w.loader.Load(w.path)
	if err != nil {
		w.onCheck(Report{}, err)
		return
	}
	w.onCheck(Check(p), nil)
}
