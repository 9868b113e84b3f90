package formulary

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pediadose/dosage-api/interfaces"
	"github.com/pediadose/dosage-api/logging"
)

// debounceDelay coalesces the burst of fsnotify events editors emit when
// saving a file.
const debounceDelay = 500 * time.Millisecond

// Watcher reloads the formulary override file when it changes on disk.
// It watches the parent directory rather than the file itself, because
// most editors replace the file on save and the old watch would go stale.
type Watcher struct {
	path   string
	store  interfaces.FormularyStore
	loader interfaces.FormularyLoader
	fsw    *fsnotify.Watcher
	done   chan struct{}
}

// NewWatcher creates a watcher for the given formulary file.
func NewWatcher(path string, store interfaces.FormularyStore, loader interfaces.FormularyLoader) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return &Watcher{
		path:   path,
		store:  store,
		loader: loader,
		fsw:    fsw,
		done:   make(chan struct{}),
	}, nil
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	go w.loop()
	logging.Info("Watching formulary file for changes", "path", w.path)
}

func (w *Watcher) loop() {
	var timer *time.Timer
	reload := func() {
		_ = Reload(w.store, w.loader, w.path)
	}

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDelay, reload)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logging.Warn("Formulary watcher error", "error", err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
