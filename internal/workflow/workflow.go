// Package workflow implements the editing state machine that drives note
// creation, renaming, and autosave eligibility.
//
// A session is always in one of three states. Neutral means no note is
// bound to the editor; New means a creation has been claimed but not yet
// completed; Edit means a note file is bound and may be renamed or
// autosaved. All transitions go through this package so the rest of the
// engine never has to reason about half-finished state.
package workflow

import (
	"sync"
	"time"

	"github.com/ddbaker/papyru2/internal/dispatch"
	"github.com/ddbaker/papyru2/internal/event"
	"github.com/ddbaker/papyru2/internal/logging"
)

// State is the position of the editing session in its lifecycle.
type State int

const (
	// StateNeutral means no note is bound to the editor.
	StateNeutral State = iota
	// StateNew means a creation attempt has claimed the session but the
	// file does not exist yet (or the attempt was throttled).
	StateNew
	// StateEdit means a note file is bound and accepts renames and
	// autosaves.
	StateEdit
)

// String returns a human-readable name for a state.
func (s State) String() string {
	switch s {
	case StateNeutral:
		return "neutral"
	case StateNew:
		return "new"
	case StateEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// DefaultCreateMinInterval is the minimum gap between two create attempts.
// A second attempt inside this window is dropped, absorbing key repeat and
// double taps of the new-note shortcut.
const DefaultCreateMinInterval = time.Second

// Snapshot is a consistent copy of the workflow's observable state.
type Snapshot struct {
	State           State
	CurrentEditPath string // empty outside Edit
}

// Workflow is the editing state machine. It is safe for concurrent use.
// The internal lock is never held across a dispatch, so filesystem latency
// cannot block state reads.
type Workflow struct {
	mu              sync.Mutex
	state           State
	currentEditPath string
	lastCreateAt    time.Time // zero until the first create attempt passes the throttle gate

	dispatcher  *dispatch.Dispatcher
	minInterval time.Duration
	bus         *event.Bus
	logger      *logging.Logger
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithCreateMinInterval overrides the creation throttle window.
func WithCreateMinInterval(interval time.Duration) Option {
	return func(w *Workflow) {
		w.minInterval = interval
	}
}

// WithBus attaches an event bus; state transitions are published to it.
func WithBus(bus *event.Bus) Option {
	return func(w *Workflow) {
		w.bus = bus
	}
}

// WithLogger attaches a logger for transition tracing.
func WithLogger(logger *logging.Logger) Option {
	return func(w *Workflow) {
		w.logger = logger.WithComponent("workflow")
	}
}

// New creates a Workflow in Neutral bound to the given dispatcher.
func New(dispatcher *dispatch.Dispatcher, opts ...Option) *Workflow {
	w := &Workflow{
		state:       StateNeutral,
		dispatcher:  dispatcher,
		minInterval: DefaultCreateMinInterval,
		logger:      logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Snapshot returns a consistent copy of the current state and edit path.
func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Snapshot{
		State:           w.state,
		CurrentEditPath: w.currentEditPath,
	}
}

// State returns the current state.
func (w *Workflow) State() State {
	return w.Snapshot().State
}

// CurrentEditPath returns the bound note path, or "" outside Edit.
func (w *Workflow) CurrentEditPath() string {
	return w.Snapshot().CurrentEditPath
}

// ResetStartupToNeutral unconditionally returns the session to Neutral.
// Used at startup to clear any state left over from a previous run.
func (w *Workflow) ResetStartupToNeutral() {
	w.mu.Lock()
	previous := w.state
	w.state = StateNeutral
	w.currentEditPath = ""
	w.mu.Unlock()

	w.publishChange(previous, StateNeutral, "")
}

// SetEditFromOpenFile binds an existing note to the editor, moving to Edit
// from any state.
func (w *Workflow) SetEditFromOpenFile(path string) {
	w.mu.Lock()
	previous := w.state
	w.state = StateEdit
	w.currentEditPath = path
	w.mu.Unlock()

	w.publishChange(previous, StateEdit, path)
}

// TransitionEditToNeutral closes the current note. It only applies in Edit;
// in any other state it reports false and changes nothing.
func (w *Workflow) TransitionEditToNeutral() bool {
	w.mu.Lock()
	if w.state != StateEdit {
		w.mu.Unlock()
		return false
	}
	w.state = StateNeutral
	w.currentEditPath = ""
	w.mu.Unlock()

	w.publishChange(StateEdit, StateNeutral, "")
	return true
}

// TryCreateFromNeutral attempts to create a new note for the given title.
// It returns the created path, or "" when the attempt did not apply: the
// session was not in Neutral, or the throttle window absorbed the attempt.
//
// The session claims New before the throttle gate, so a throttled attempt
// parks in New rather than rolling back to Neutral. A later open or close
// returns it to a usable state.
func (w *Workflow) TryCreateFromNeutral(title, documentRoot string, now time.Time) (string, error) {
	w.mu.Lock()
	if w.state != StateNeutral {
		w.mu.Unlock()
		return "", nil
	}

	w.state = StateNew

	if !w.lastCreateAt.IsZero() {
		elapsed := now.Sub(w.lastCreateAt)
		if elapsed <= w.minInterval {
			w.mu.Unlock()
			w.logger.Debug("create throttled", "elapsed_ms", elapsed.Milliseconds())
			w.publishChange(StateNeutral, StateNew, "")
			return "", nil
		}
	}
	w.lastCreateAt = now
	w.mu.Unlock()

	w.publishChange(StateNeutral, StateNew, "")

	result, err := w.dispatcher.Dispatch(dispatch.CreateCommand{
		DocumentRoot: documentRoot,
		Title:        title,
		Now:          now,
	})
	if err != nil {
		return "", err
	}

	w.mu.Lock()
	w.state = StateEdit
	w.currentEditPath = result.Path
	w.mu.Unlock()

	w.logger.Info("note created", "path", result.Path)
	w.publishChange(StateNew, StateEdit, result.Path)
	return result.Path, nil
}

// TryRenameInEdit attempts to rename the bound note to match the given
// title. It returns the resolved path, or "" when the session is not in
// Edit. On success the bound path is updated to the resolved target.
func (w *Workflow) TryRenameInEdit(title string, now time.Time) (string, error) {
	w.mu.Lock()
	if w.state != StateEdit || w.currentEditPath == "" {
		w.mu.Unlock()
		return "", nil
	}
	currentPath := w.currentEditPath
	w.mu.Unlock()

	result, err := w.dispatcher.Dispatch(dispatch.RenameCommand{
		CurrentPath: currentPath,
		Title:       title,
		Now:         now,
	})
	if err != nil {
		return "", err
	}

	w.mu.Lock()
	w.currentEditPath = result.Path
	w.mu.Unlock()

	w.logger.Info("note renamed", "from", currentPath, "to", result.Path)
	return result.Path, nil
}

// TryAutosaveInEdit attempts to flush editor content to the bound note. It
// reports false without writing when the session is not in Edit or the
// payload targets a different path than the one currently bound; a rename
// or close that lands between payload capture and the flush must not
// resurrect the old file.
func (w *Workflow) TryAutosaveInEdit(payload dispatch.AutosavePayload) (bool, error) {
	w.mu.Lock()
	if w.state != StateEdit || w.currentEditPath == "" || w.currentEditPath != payload.CurrentPath {
		w.mu.Unlock()
		return false, nil
	}
	w.mu.Unlock()

	if _, err := w.dispatcher.Dispatch(dispatch.AutosaveCommand{Payload: payload}); err != nil {
		return false, err
	}
	return true, nil
}

// publishChange notifies subscribers of a state transition.
func (w *Workflow) publishChange(previous, current State, path string) {
	if w.bus == nil {
		return
	}
	w.bus.Publish(event.NewWorkflowChangedEvent(previous.String(), current.String(), path))
}
