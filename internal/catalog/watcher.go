package catalog

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ddbaker/papyru2/internal/event"
	"github.com/ddbaker/papyru2/internal/logging"
)

// Watcher observes the document tree and republishes filesystem changes
// as catalog.changed events. Events are debounced because editors and the
// atomic writer produce bursts of operations for a single logical change.
type Watcher struct {
	watcher *fsnotify.Watcher
	root    string
	bus     *event.Bus
	logger  *logging.Logger

	mu     sync.Mutex
	stopCh chan struct{}
	done   chan struct{}
}

const debounceWindow = 50 * time.Millisecond

// NewWatcher creates a watcher over the document root. Call Start to
// begin observing.
func NewWatcher(root string, bus *event.Bus, logger *logging.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Watcher{
		watcher: fsw,
		root:    root,
		bus:     bus,
		logger:  logger.WithComponent("catalog"),
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}, nil
}

// Start registers the document tree with the watcher and launches the
// event loop. The root is created if it does not exist yet.
func (w *Watcher) Start() error {
	if err := os.MkdirAll(w.root, 0o755); err != nil {
		return err
	}
	if err := w.watchRecursive(w.root); err != nil {
		return err
	}
	go w.watchLoop()
	return nil
}

// Stop halts the watcher and waits for the event loop to exit. Safe to
// call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	select {
	case <-w.stopCh:
		w.mu.Unlock()
		return
	default:
		close(w.stopCh)
	}
	w.mu.Unlock()

	_ = w.watcher.Close()
	<-w.done
}

// watchRecursive adds dir and every subdirectory to the watcher.
func (w *Watcher) watchRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors, continue walking
		}
		if skipName(filepath.Base(path)) && path != dir {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			_ = w.watcher.Add(path)
		}
		return nil
	})
}

// watchLoop processes filesystem events until Stop is called.
func (w *Watcher) watchLoop() {
	defer close(w.done)

	debounceTimer := time.NewTimer(0)
	<-debounceTimer.C // drain initial timer

	pending := make(map[string]fsnotify.Op)

	for {
		select {
		case <-w.stopCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Chmod != 0 && ev.Op&^fsnotify.Chmod == 0 {
				continue
			}
			if skipName(filepath.Base(ev.Name)) {
				continue
			}

			// A directory created inside the tree must be watched too,
			// before anything lands in it.
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = w.watchRecursive(ev.Name)
				}
			}

			pending[ev.Name] |= ev.Op
			debounceTimer.Reset(debounceWindow)

		case <-debounceTimer.C:
			for path, op := range pending {
				w.publish(path, op)
			}
			pending = make(map[string]fsnotify.Op)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// publish maps a debounced filesystem operation to a catalog event.
// Create wins over Write so a freshly created note reports as created
// even when the first content lands in the same debounce window.
func (w *Watcher) publish(path string, op fsnotify.Op) {
	var catalogOp event.CatalogOp
	switch {
	case op&fsnotify.Create != 0:
		catalogOp = event.CatalogCreated
	case op&fsnotify.Rename != 0:
		catalogOp = event.CatalogRenamed
	case op&fsnotify.Remove != 0:
		catalogOp = event.CatalogRemoved
	case op&fsnotify.Write != 0:
		catalogOp = event.CatalogWritten
	default:
		return
	}

	w.logger.Debug("catalog change", "op", string(catalogOp), "path", path)
	if w.bus != nil {
		w.bus.Publish(event.NewCatalogChangedEvent(catalogOp, path))
	}
}
