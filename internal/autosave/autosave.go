// Package autosave schedules background flushes of editor content.
//
// The Coordinator tracks when the user last began an idle period and which
// payload should be written once the idle threshold passes. A Worker polls
// the coordinator on a fixed tick and hands due payloads to the workflow,
// which decides whether the write still applies.
package autosave

import (
	"context"
	"sync"
	"time"

	"github.com/ddbaker/papyru2/internal/dispatch"
	"github.com/ddbaker/papyru2/internal/event"
	"github.com/ddbaker/papyru2/internal/logging"
)

// DefaultIdleDuration is how long the editor must sit unchanged before a
// pending payload becomes due.
const DefaultIdleDuration = 6 * time.Second

// DefaultTickInterval is how often the worker polls for due payloads.
const DefaultTickInterval = 200 * time.Millisecond

// Coordinator accumulates editor snapshots and releases the latest one
// after an idle period. It is safe for concurrent use.
//
// The idle pin is armed by the first edit after a flush and is not pushed
// forward by later edits, so a continuously typing user still gets a save
// every idle period rather than never.
type Coordinator struct {
	mu                 sync.Mutex
	pinnedAt           time.Time // zero when unarmed
	pending            *dispatch.AutosavePayload
	lastDeltaTraceSecs int64 // -1 when no trace emitted since arming

	logger *logging.Logger
}

// NewCoordinator creates an unarmed Coordinator. A nil logger disables
// tracing.
func NewCoordinator(logger *logging.Logger) *Coordinator {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Coordinator{
		lastDeltaTraceSecs: -1,
		logger:             logger.WithComponent("autosave"),
	}
}

// MarkUserEdit records an editor snapshot. The first edit after a flush
// arms the idle pin; every edit replaces the pending payload so only the
// latest snapshot is ever written.
func (c *Coordinator) MarkUserEdit(payload dispatch.AutosavePayload, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pinnedAt.IsZero() {
		c.pinnedAt = now
		c.lastDeltaTraceSecs = -1
	}
	c.pending = &payload
}

// OnEditPathChanged retargets or cancels the pending payload when the
// bound note changes. A non-empty path redirects the pending snapshot to
// the new location after a rename; an empty path means the note was closed
// and any pending write is discarded.
func (c *Coordinator) OnEditPathChanged(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if path == "" {
		c.pinnedAt = time.Time{}
		c.pending = nil
		c.lastDeltaTraceSecs = -1
		return
	}
	if c.pending != nil {
		c.pending.CurrentPath = path
	}
}

// PopDuePayload returns the pending payload once the idle duration has
// elapsed since the pin was armed, clearing both. It returns false while
// unarmed or still inside the idle window.
func (c *Coordinator) PopDuePayload(now time.Time, idle time.Duration) (dispatch.AutosavePayload, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pinnedAt.IsZero() {
		return dispatch.AutosavePayload{}, false
	}
	delta := now.Sub(c.pinnedAt)
	if delta < 0 {
		delta = 0
	}

	if c.pending != nil {
		// Trace once per elapsed second, not per tick.
		deltaSecs := int64(delta / time.Second)
		if c.lastDeltaTraceSecs != deltaSecs {
			c.lastDeltaTraceSecs = deltaSecs
			c.logger.Debug("autosave countdown",
				"delta_ms", delta.Milliseconds(),
				"threshold_ms", idle.Milliseconds())
		}
	}

	if delta < idle {
		return dispatch.AutosavePayload{}, false
	}

	payload := c.pending
	c.pending = nil
	c.pinnedAt = time.Time{}
	c.lastDeltaTraceSecs = -1
	if payload == nil {
		return dispatch.AutosavePayload{}, false
	}
	return *payload, true
}

// HasPendingPayload reports whether a snapshot is waiting to be flushed.
func (c *Coordinator) HasPendingPayload() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// -----------------------------------------------------------------------------
// Worker
// -----------------------------------------------------------------------------

// Saver flushes a payload if the session still accepts it. Implemented by
// the workflow.
type Saver interface {
	TryAutosaveInEdit(payload dispatch.AutosavePayload) (bool, error)
}

// Worker polls a Coordinator and flushes due payloads through a Saver.
type Worker struct {
	coordinator *Coordinator
	saver       Saver
	idle        time.Duration
	tick        time.Duration
	bus         *event.Bus
	logger      *logging.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// WorkerOption configures a Worker.
type WorkerOption func(*Worker)

// WithIdleDuration overrides the idle threshold.
func WithIdleDuration(idle time.Duration) WorkerOption {
	return func(w *Worker) {
		w.idle = idle
	}
}

// WithTickInterval overrides the poll interval.
func WithTickInterval(tick time.Duration) WorkerOption {
	return func(w *Worker) {
		w.tick = tick
	}
}

// WithBus attaches an event bus; flush outcomes are published to it.
func WithBus(bus *event.Bus) WorkerOption {
	return func(w *Worker) {
		w.bus = bus
	}
}

// WithLogger attaches a logger for flush tracing.
func WithLogger(logger *logging.Logger) WorkerOption {
	return func(w *Worker) {
		w.logger = logger.WithComponent("autosave")
	}
}

// NewWorker creates a Worker with default timing. Call Start to begin
// polling.
func NewWorker(coordinator *Coordinator, saver Saver, opts ...WorkerOption) *Worker {
	w := &Worker{
		coordinator: coordinator,
		saver:       saver,
		idle:        DefaultIdleDuration,
		tick:        DefaultTickInterval,
		logger:      logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start launches the polling goroutine. It runs until Stop is called or
// the supplied context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})

	go func() {
		defer close(w.done)
		w.logger.Debug("autosave worker started", "tick_ms", w.tick.Milliseconds())

		ticker := time.NewTicker(w.tick)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.flushDue(time.Now())
			}
		}
	}()
}

// Stop halts the worker and waits for the polling goroutine to exit. A
// pending payload stays in the coordinator; the engine drains it during
// shutdown.
func (w *Worker) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.done
}

// FlushNow immediately flushes any pending payload regardless of the idle
// window. Used on shutdown and explicit save requests so no edits are lost.
func (w *Worker) FlushNow(now time.Time) {
	w.flushDue(now.Add(w.idle))
}

func (w *Worker) flushDue(now time.Time) {
	payload, ok := w.coordinator.PopDuePayload(now, w.idle)
	if !ok {
		return
	}

	saved, err := w.saver.TryAutosaveInEdit(payload)
	switch {
	case err != nil:
		w.logger.Error("autosave failed",
			"path", payload.CurrentPath,
			"error", err)
		if w.bus != nil {
			w.bus.Publish(event.NewAutosaveFailedEvent(payload.CurrentPath, err.Error()))
		}
	case !saved:
		// The note was closed or renamed between pop and flush. The payload
		// is already cleared, so the stale write simply evaporates.
		w.logger.Debug("autosave skipped", "path", payload.CurrentPath)
	default:
		w.logger.Debug("autosave complete",
			"path", payload.CurrentPath,
			"bytes", len(payload.EditorText))
		if w.bus != nil {
			w.bus.Publish(event.NewNoteAutosavedEvent(payload.CurrentPath, len(payload.EditorText)))
		}
	}
}
