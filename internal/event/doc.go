// Package event provides a pub-sub event bus for decoupled inter-component
// communication in papyru2.
//
// This package enables loose coupling between the engine, the autosave
// coordinator, the catalog watcher, and the editor surface by allowing them
// to communicate through events rather than direct method calls. Components
// can publish events without knowing who will receive them, and subscribe to
// events without knowing who will produce them.
//
// # Main Types
//
//   - [Event]: Interface that all events must implement, providing EventType() and Timestamp()
//   - [Bus]: Synchronous pub-sub event dispatcher with thread-safe operations
//   - [Handler]: Function type for event handlers (func(Event))
//
// # Event Categories
//
// The package defines several categories of events:
//
// Note Lifecycle:
//   - [NoteCreatedEvent]: Emitted when a new note file is created
//   - [NoteRenamedEvent]: Emitted when a note file is renamed
//   - [NoteAutosavedEvent]: Emitted after an autosave flush reaches disk
//   - [AutosaveFailedEvent]: Emitted when a due autosave could not be written
//
// Workflow:
//   - [WorkflowChangedEvent]: Emitted when the editing state machine transitions
//   - [TitleAdjustedEvent]: Emitted when the engine forced a different file stem
//
// Catalog:
//   - [CatalogChangedEvent]: Emitted when the document tree changes on disk
//
// # Thread Safety
//
// The [Bus] type is safe for concurrent use. Multiple goroutines can publish
// and subscribe concurrently. Handlers are called synchronously and protected
// against panics - a panicking handler will not prevent other handlers from
// being called.
//
// # Basic Usage
//
//	bus := event.NewBus()
//
//	// Subscribe to specific event types
//	bus.Subscribe("note.created", func(e event.Event) {
//	    created := e.(event.NoteCreatedEvent)
//	    log.Printf("note created at %s", created.Path)
//	})
//
//	// Subscribe to all events (useful for logging)
//	bus.SubscribeAll(func(e event.Event) {
//	    log.Printf("Event: %s at %v", e.EventType(), e.Timestamp())
//	})
//
//	// Publish events
//	bus.Publish(event.NewNoteCreatedEvent("/docs/2026/02/28/hello.txt", "hello"))
//
//	// Unsubscribe when done
//	id := bus.Subscribe("note.renamed", handler)
//	bus.Unsubscribe(id)
//
// # Event Type Naming Convention
//
// Event types follow the pattern "category.action":
//   - note.created, note.renamed, note.autosaved
//   - autosave.failed
//   - workflow.changed
//   - title.adjusted
//   - catalog.changed
package event
