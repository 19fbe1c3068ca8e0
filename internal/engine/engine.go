// Package engine assembles the note file-lifecycle machinery behind the
// editor: the dispatcher that serializes filesystem mutations, the
// workflow state machine, the autosave coordinator with its ticking
// worker, and the catalog with its filesystem watcher.
//
// The engine exposes the four inbound intents the editor surface raises
// (title committed, new-note pressed, file opened, body text changed) and
// pushes every outcome back through the event bus, so the UI layer never
// reaches into the machinery directly.
package engine

import (
	"context"
	"time"

	"github.com/ddbaker/papyru2/internal/autosave"
	"github.com/ddbaker/papyru2/internal/catalog"
	"github.com/ddbaker/papyru2/internal/config"
	"github.com/ddbaker/papyru2/internal/dispatch"
	"github.com/ddbaker/papyru2/internal/event"
	"github.com/ddbaker/papyru2/internal/logging"
	"github.com/ddbaker/papyru2/internal/naming"
	"github.com/ddbaker/papyru2/internal/workflow"
)

// Engine owns the complete file-lifecycle machinery for one document root.
type Engine struct {
	documentRoot string

	bus         *event.Bus
	logger      *logging.Logger
	dispatcher  *dispatch.Dispatcher
	workflow    *workflow.Workflow
	coordinator *autosave.Coordinator
	worker      *autosave.Worker
	catalog     *catalog.Catalog
	watcher     *catalog.Watcher // nil when watching is disabled
}

// New assembles an engine from configuration. A nil bus gets a private
// one; a nil logger disables logging.
func New(cfg *config.Config, documentRoot string, bus *event.Bus, logger *logging.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if bus == nil {
		bus = event.NewBus()
	}
	if logger == nil {
		logger = logging.NopLogger()
	}

	dispatcher := dispatch.New(logger)
	wf := workflow.New(dispatcher,
		workflow.WithCreateMinInterval(cfg.Create.MinInterval()),
		workflow.WithBus(bus),
		workflow.WithLogger(logger),
	)
	coordinator := autosave.NewCoordinator(logger)
	worker := autosave.NewWorker(coordinator, wf,
		autosave.WithIdleDuration(cfg.Autosave.IdleDuration()),
		autosave.WithTickInterval(cfg.Autosave.TickInterval()),
		autosave.WithBus(bus),
		autosave.WithLogger(logger),
	)

	e := &Engine{
		documentRoot: documentRoot,
		bus:          bus,
		logger:       logger.WithComponent("engine"),
		dispatcher:   dispatcher,
		workflow:     wf,
		coordinator:  coordinator,
		worker:       worker,
		catalog:      catalog.New(documentRoot, logger),
	}

	if cfg.Catalog.WatchEnabled {
		watcher, err := catalog.NewWatcher(documentRoot, bus, logger)
		if err != nil {
			dispatcher.Shutdown()
			return nil, err
		}
		e.watcher = watcher
	}

	return e, nil
}

// Start resets the workflow to a known state and launches the background
// workers. The supplied context bounds the autosave worker.
func (e *Engine) Start(ctx context.Context) error {
	e.workflow.ResetStartupToNeutral()
	e.worker.Start(ctx)
	if e.watcher != nil {
		if err := e.watcher.Start(); err != nil {
			return err
		}
	}
	e.logger.Info("engine started", "document_root", e.documentRoot)
	return nil
}

// Shutdown flushes any pending autosave, stops the background workers,
// and drains the dispatcher queue. The engine cannot be restarted.
func (e *Engine) Shutdown() {
	e.worker.Stop()
	e.worker.FlushNow(time.Now())
	if e.watcher != nil {
		e.watcher.Stop()
	}
	e.dispatcher.Shutdown()
	e.logger.Info("engine stopped")
}

// Bus returns the event bus outcomes are published on.
func (e *Engine) Bus() *event.Bus {
	return e.bus
}

// Snapshot returns the workflow's current state and edit path.
func (e *Engine) Snapshot() workflow.Snapshot {
	return e.workflow.Snapshot()
}

// Catalog returns the read-only document tree view.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// -----------------------------------------------------------------------------
// Inbound intents
// -----------------------------------------------------------------------------

// TitleCommitted handles the user finishing a title edit. In Neutral the
// title creates a new note; in Edit it renames the bound one; parked in
// New it does nothing. The returned path is empty when no file changed.
//
// When the on-disk stem differs from what the title would naively produce
// (collision numbering or sanitized characters), a title.adjusted event
// pushes the actual name back to the UI so the title field never silently
// diverges from filesystem truth.
func (e *Engine) TitleCommitted(title string, now time.Time) (string, error) {
	switch e.workflow.State() {
	case workflow.StateNeutral:
		path, err := e.workflow.TryCreateFromNeutral(title, e.documentRoot, now)
		if err != nil || path == "" {
			return "", err
		}
		e.coordinator.OnEditPathChanged(path)
		e.bus.Publish(event.NewNoteCreatedEvent(path, title))
		if stem, forced := naming.ForcedStemAfterCreate(title, path, now); forced {
			e.bus.Publish(event.NewTitleAdjustedEvent(stem, title))
		}
		return path, nil

	case workflow.StateEdit:
		oldPath := e.workflow.CurrentEditPath()
		path, err := e.workflow.TryRenameInEdit(title, now)
		if err != nil || path == "" {
			return "", err
		}
		e.coordinator.OnEditPathChanged(path)
		e.bus.Publish(event.NewNoteRenamedEvent(oldPath, path))
		if stem, forced := naming.ForcedStemAfterRename(title, path, now); forced {
			e.bus.Publish(event.NewTitleAdjustedEvent(stem, title))
		}
		return path, nil

	default:
		return "", nil
	}
}

// NewNotePressed closes the current note and returns the session to
// Neutral, discarding any pending autosave. Reports whether a note was
// actually closed.
func (e *Engine) NewNotePressed() bool {
	if !e.workflow.TransitionEditToNeutral() {
		return false
	}
	e.coordinator.OnEditPathChanged("")
	return true
}

// FileOpened binds an existing note to the editor from any state. A
// pending autosave snapshot is retargeted to the opened file.
func (e *Engine) FileOpened(path string) {
	e.workflow.SetEditFromOpenFile(path)
	e.coordinator.OnEditPathChanged(path)
}

// BodyTextChanged records an editor snapshot for autosave. Outside Edit
// the edit is ignored; there is no file to save into yet.
func (e *Engine) BodyTextChanged(text string, now time.Time) {
	snap := e.workflow.Snapshot()
	if snap.State != workflow.StateEdit || snap.CurrentEditPath == "" {
		return
	}
	e.coordinator.MarkUserEdit(dispatch.AutosavePayload{
		CurrentPath: snap.CurrentEditPath,
		EditorText:  text,
	}, now)
}

// SaveNow flushes any pending autosave immediately, bypassing the idle
// window. Used for explicit save requests.
func (e *Engine) SaveNow() {
	e.worker.FlushNow(time.Now())
}
