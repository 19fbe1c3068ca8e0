package event

import (
	"sync"
	"testing"
)

func TestBus_Subscribe(t *testing.T) {
	bus := NewBus()

	called := false
	id := bus.Subscribe("test.event", func(e Event) {
		called = true
	})

	if id == "" {
		t.Error("Subscribe should return a non-empty ID")
	}

	if bus.SubscriptionCount() != 1 {
		t.Errorf("Expected 1 subscription, got %d", bus.SubscriptionCount())
	}

	if called {
		t.Error("Handler should not be called until an event is published")
	}
}

func TestBus_Publish(t *testing.T) {
	bus := NewBus()

	var receivedEvent Event
	bus.Subscribe("note.created", func(e Event) {
		receivedEvent = e
	})

	bus.Publish(NewNoteCreatedEvent("/docs/2026/02/28/hello.txt", "hello"))

	if receivedEvent == nil {
		t.Fatal("Handler should have received the event")
	}

	if receivedEvent.EventType() != "note.created" {
		t.Errorf("Expected event type 'note.created', got '%s'", receivedEvent.EventType())
	}

	created, ok := receivedEvent.(NoteCreatedEvent)
	if !ok {
		t.Fatalf("received event has unexpected concrete type %T", receivedEvent)
	}
	if created.Path != "/docs/2026/02/28/hello.txt" {
		t.Errorf("Path = %q, want %q", created.Path, "/docs/2026/02/28/hello.txt")
	}
	if created.Title != "hello" {
		t.Errorf("Title = %q, want %q", created.Title, "hello")
	}
}

func TestBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewBus()

	callCount := 0
	bus.Subscribe("note.renamed", func(e Event) {
		callCount++
	})
	bus.Subscribe("note.renamed", func(e Event) {
		callCount++
	})

	bus.Publish(NewNoteRenamedEvent("/d/a.txt", "/d/b.txt"))

	if callCount != 2 {
		t.Errorf("Expected 2 handler calls, got %d", callCount)
	}
}

func TestBus_PublishOnlyMatchingType(t *testing.T) {
	bus := NewBus()

	renameCalls := 0
	autosaveCalls := 0
	bus.Subscribe("note.renamed", func(e Event) { renameCalls++ })
	bus.Subscribe("note.autosaved", func(e Event) { autosaveCalls++ })

	bus.Publish(NewNoteAutosavedEvent("/d/a.txt", 12))

	if renameCalls != 0 {
		t.Errorf("rename handler called %d times for autosave event", renameCalls)
	}
	if autosaveCalls != 1 {
		t.Errorf("autosave handler called %d times, want 1", autosaveCalls)
	}
}

func TestBus_SubscribeAll(t *testing.T) {
	bus := NewBus()

	var types []string
	bus.SubscribeAll(func(e Event) {
		types = append(types, e.EventType())
	})

	bus.Publish(NewWorkflowChangedEvent("neutral", "new", ""))
	bus.Publish(NewTitleAdjustedEvent("hello_2", "hello"))
	bus.Publish(NewCatalogChangedEvent(CatalogCreated, "/d/a.txt"))

	want := []string{"workflow.changed", "title.adjusted", "catalog.changed"}
	if len(types) != len(want) {
		t.Fatalf("wildcard handler received %d events, want %d", len(types), len(want))
	}
	for i, eventType := range want {
		if types[i] != eventType {
			t.Errorf("event %d: got %q, want %q", i, types[i], eventType)
		}
	}
}

func TestBus_SpecificHandlersBeforeWildcard(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.SubscribeAll(func(e Event) { order = append(order, "wildcard") })
	bus.Subscribe("note.created", func(e Event) { order = append(order, "specific") })

	bus.Publish(NewNoteCreatedEvent("/d/a.txt", "a"))

	if len(order) != 2 || order[0] != "specific" || order[1] != "wildcard" {
		t.Errorf("dispatch order = %v, want [specific wildcard]", order)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()

	callCount := 0
	id := bus.Subscribe("note.created", func(e Event) { callCount++ })

	if !bus.Unsubscribe(id) {
		t.Error("Unsubscribe should return true for a known ID")
	}
	if bus.Unsubscribe(id) {
		t.Error("Unsubscribe should return false for an already-removed ID")
	}
	if bus.Unsubscribe("nonexistent") {
		t.Error("Unsubscribe should return false for an unknown ID")
	}

	bus.Publish(NewNoteCreatedEvent("/d/a.txt", "a"))
	if callCount != 0 {
		t.Errorf("unsubscribed handler was called %d times", callCount)
	}
}

func TestBus_PanickingHandlerDoesNotBlockOthers(t *testing.T) {
	bus := NewBus()

	secondCalled := false
	bus.Subscribe("note.created", func(e Event) {
		panic("handler failure")
	})
	bus.Subscribe("note.created", func(e Event) {
		secondCalled = true
	})

	bus.Publish(NewNoteCreatedEvent("/d/a.txt", "a"))

	if !secondCalled {
		t.Error("second handler should run despite first handler panicking")
	}
}

func TestBus_Clear(t *testing.T) {
	bus := NewBus()

	bus.Subscribe("note.created", func(e Event) {})
	bus.SubscribeAll(func(e Event) {})

	bus.Clear()

	if bus.SubscriptionCount() != 0 {
		t.Errorf("Expected 0 subscriptions after Clear, got %d", bus.SubscriptionCount())
	}
}

func TestBus_ConcurrentPublishAndSubscribe(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	received := 0
	bus.Subscribe("note.autosaved", func(e Event) {
		mu.Lock()
		received++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			bus.Publish(NewNoteAutosavedEvent("/d/a.txt", 1))
		}()
		go func() {
			defer wg.Done()
			id := bus.Subscribe("note.renamed", func(e Event) {})
			bus.Unsubscribe(id)
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if received != 8 {
		t.Errorf("received %d events, want 8", received)
	}
}

func TestEventTimestamps(t *testing.T) {
	evt := NewNoteCreatedEvent("/d/a.txt", "a")
	if evt.Timestamp().IsZero() {
		t.Error("event timestamp should be set at construction")
	}
}
