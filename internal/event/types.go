// Package event defines event types for decoupling components in papyru2.
// These events let the workflow, autosave coordinator, and catalog notify
// the editor surface without requiring direct dependencies.
package event

import "time"

// Event is the interface that all events must implement.
// It provides a common way to identify and timestamp events.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "note.created", "workflow.changed")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Note Lifecycle Events
// -----------------------------------------------------------------------------

// NoteCreatedEvent is emitted when a new note file has been created on disk.
type NoteCreatedEvent struct {
	baseEvent
	Path  string // Resolved path of the new note
	Title string // Title the user typed (may differ from the file stem)
}

// NewNoteCreatedEvent creates a NoteCreatedEvent.
func NewNoteCreatedEvent(path, title string) NoteCreatedEvent {
	return NoteCreatedEvent{
		baseEvent: newBaseEvent("note.created"),
		Path:      path,
		Title:     title,
	}
}

// NoteRenamedEvent is emitted when a note file has been renamed.
type NoteRenamedEvent struct {
	baseEvent
	OldPath string // Path before the rename
	NewPath string // Path after the rename (may equal OldPath for a no-op)
}

// NewNoteRenamedEvent creates a NoteRenamedEvent.
func NewNoteRenamedEvent(oldPath, newPath string) NoteRenamedEvent {
	return NoteRenamedEvent{
		baseEvent: newBaseEvent("note.renamed"),
		OldPath:   oldPath,
		NewPath:   newPath,
	}
}

// NoteAutosavedEvent is emitted after editor content has been atomically
// flushed to the note file.
type NoteAutosavedEvent struct {
	baseEvent
	Path  string // Note file that was written
	Bytes int    // Size of the flushed content
}

// NewNoteAutosavedEvent creates a NoteAutosavedEvent.
func NewNoteAutosavedEvent(path string, bytes int) NoteAutosavedEvent {
	return NoteAutosavedEvent{
		baseEvent: newBaseEvent("note.autosaved"),
		Path:      path,
		Bytes:     bytes,
	}
}

// AutosaveFailedEvent is emitted when a due autosave could not be written.
// The pending payload has been dropped; the next keystroke re-arms the timer.
type AutosaveFailedEvent struct {
	baseEvent
	Path  string // Target note file
	Error string // Failure description
}

// NewAutosaveFailedEvent creates an AutosaveFailedEvent.
func NewAutosaveFailedEvent(path, errMsg string) AutosaveFailedEvent {
	return AutosaveFailedEvent{
		baseEvent: newBaseEvent("autosave.failed"),
		Path:      path,
		Error:     errMsg,
	}
}

// -----------------------------------------------------------------------------
// Workflow Events
// -----------------------------------------------------------------------------

// WorkflowChangedEvent is emitted when the editing state machine moves
// between Neutral, New, and Edit. States are carried as strings to keep this
// package free of workflow dependencies.
type WorkflowChangedEvent struct {
	baseEvent
	Previous string // State before the transition
	Current  string // State after the transition
	Path     string // Current edit path, empty outside Edit
}

// NewWorkflowChangedEvent creates a WorkflowChangedEvent.
func NewWorkflowChangedEvent(previous, current, path string) WorkflowChangedEvent {
	return WorkflowChangedEvent{
		baseEvent: newBaseEvent("workflow.changed"),
		Previous:  previous,
		Current:   current,
		Path:      path,
	}
}

// TitleAdjustedEvent is emitted when the engine settled on a different file
// stem than the user's title would naively produce. The editor pushes the
// adjusted stem back into the title field.
type TitleAdjustedEvent struct {
	baseEvent
	Stem  string // Stem the engine actually used
	Title string // Title the user typed
}

// NewTitleAdjustedEvent creates a TitleAdjustedEvent.
func NewTitleAdjustedEvent(stem, title string) TitleAdjustedEvent {
	return TitleAdjustedEvent{
		baseEvent: newBaseEvent("title.adjusted"),
		Stem:      stem,
		Title:     title,
	}
}

// -----------------------------------------------------------------------------
// Catalog Events
// -----------------------------------------------------------------------------

// CatalogOp identifies the kind of filesystem change the catalog observed.
type CatalogOp string

const (
	CatalogCreated CatalogOp = "created"
	CatalogRemoved CatalogOp = "removed"
	CatalogRenamed CatalogOp = "renamed"
	CatalogWritten CatalogOp = "written"
)

// CatalogChangedEvent is emitted when the document tree under the root
// changed on disk, whether through this engine or an outside program.
type CatalogChangedEvent struct {
	baseEvent
	Op   CatalogOp // Kind of change
	Path string    // File or directory that changed
}

// NewCatalogChangedEvent creates a CatalogChangedEvent.
func NewCatalogChangedEvent(op CatalogOp, path string) CatalogChangedEvent {
	return CatalogChangedEvent{
		baseEvent: newBaseEvent("catalog.changed"),
		Op:        op,
		Path:      path,
	}
}
