package body

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reload is emitted when the watched catalogue file changes. Err is set when
// the new contents failed to load; Registry is then empty.
type Reload struct {
	Path     string
	Registry Registry
	Err      error
}

// Watcher reloads a catalogue file whenever it is written. It watches the
// containing directory so editors that replace the file by rename are seen.
type Watcher struct {
	Path    string
	Changes <-chan Reload

	changes  chan Reload
	done     chan struct{}
	watcher  *fsnotify.Watcher
	debounce time.Duration
	started  bool
	stop     sync.Once
}

// NewWatcher creates a watcher for the catalogue at path.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan Reload, 4)
	return &Watcher{
		Path:     abs,
		Changes:  ch,
		changes:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
		debounce: 150 * time.Millisecond,
	}, nil
}

// Start begins watching. If it fails the watcher is closed.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		w.watcher.Close()
		return err
	}
	w.started = true
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel. It may be called more
// than once, and without a successful Start.
func (w *Watcher) Stop() {
	w.stop.Do(func() {
		w.watcher.Close()
		if w.started {
			<-w.done
		}
		close(w.changes)
	})
}

func (w *Watcher) loop() {
	defer close(w.done)

	var pending time.Time
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= w.debounce {
				pending = time.Time{}
				w.emit()
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) emit() {
	reg, err := Load(w.Path)
	r := Reload{Path: w.Path, Registry: reg, Err: err}
	select {
	case w.changes <- r:
	default:
		// Consumer is behind; drop.
	}
}
