package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ddbaker/papyru2/internal/config"
	"github.com/ddbaker/papyru2/internal/event"
	"github.com/ddbaker/papyru2/internal/workflow"
)

func fixedNow() time.Time {
	return time.Date(2026, 2, 28, 12, 34, 56, 789*int(time.Millisecond), time.Local)
}

func newTestEngine(t *testing.T, mutate func(*config.Config)) (*Engine, string) {
	t.Helper()

	cfg := config.Default()
	cfg.Catalog.WatchEnabled = false
	cfg.Autosave.IdleSeconds = 1
	cfg.Autosave.TickMs = 20
	if mutate != nil {
		mutate(cfg)
	}

	root := t.TempDir()
	e, err := New(cfg, root, event.NewBus(), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(e.Shutdown)
	return e, root
}

func TestTitleCommittedCreatesFromNeutral(t *testing.T) {
	e, root := newTestEngine(t, nil)

	path, err := e.TitleCommitted("meeting notes", fixedNow())
	if err != nil {
		t.Fatalf("TitleCommitted() error = %v", err)
	}
	want := filepath.Join(root, "2026", "02", "28", "meeting notes.txt")
	if path != want {
		t.Fatalf("TitleCommitted() path = %q, want %q", path, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("created note missing: %v", err)
	}

	snap := e.Snapshot()
	if snap.State != workflow.StateEdit {
		t.Errorf("state after create = %v, want %v", snap.State, workflow.StateEdit)
	}
	if snap.CurrentEditPath != path {
		t.Errorf("edit path = %q, want %q", snap.CurrentEditPath, path)
	}
}

func TestTitleCommittedRenamesInEdit(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	oldPath, err := e.TitleCommitted("draft", fixedNow())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newPath, err := e.TitleCommitted("final", fixedNow().Add(2*time.Second))
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if filepath.Base(newPath) != "final.txt" {
		t.Fatalf("rename produced %q, want base final.txt", newPath)
	}
	if _, err := os.Stat(oldPath); !os.IsNotExist(err) {
		t.Errorf("old path still exists after rename")
	}
	if _, err := os.Stat(newPath); err != nil {
		t.Errorf("new path missing after rename: %v", err)
	}
	if got := e.Snapshot().CurrentEditPath; got != newPath {
		t.Errorf("edit path = %q, want %q", got, newPath)
	}
}

func TestTitleCommittedParkedInNewIsNoop(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	base := fixedNow()
	if _, err := e.TitleCommitted("first", base); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if !e.NewNotePressed() {
		t.Fatalf("NewNotePressed() = false, want true")
	}

	// Inside the throttle window the create is absorbed and the session
	// parks in New.
	path, err := e.TitleCommitted("second", base.Add(200*time.Millisecond))
	if err != nil {
		t.Fatalf("throttled create: %v", err)
	}
	if path != "" {
		t.Fatalf("throttled create returned path %q, want empty", path)
	}
	if got := e.Snapshot().State; got != workflow.StateNew {
		t.Fatalf("state = %v, want %v", got, workflow.StateNew)
	}

	// Parked in New, a further title commit does nothing at all.
	path, err = e.TitleCommitted("third", base.Add(5*time.Second))
	if err != nil || path != "" {
		t.Errorf("parked commit = (%q, %v), want (\"\", nil)", path, err)
	}
}

func TestNewNotePressed(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	if e.NewNotePressed() {
		t.Errorf("NewNotePressed() in Neutral = true, want false")
	}

	if _, err := e.TitleCommitted("note", fixedNow()); err != nil {
		t.Fatalf("create: %v", err)
	}
	if !e.NewNotePressed() {
		t.Fatalf("NewNotePressed() in Edit = false, want true")
	}
	if got := e.Snapshot().State; got != workflow.StateNeutral {
		t.Errorf("state after press = %v, want %v", got, workflow.StateNeutral)
	}
}

func TestFileOpenedBindsAnyState(t *testing.T) {
	e, root := newTestEngine(t, nil)

	notePath := filepath.Join(root, "existing.txt")
	if err := os.WriteFile(notePath, []byte("body"), 0o644); err != nil {
		t.Fatalf("seed note: %v", err)
	}

	e.FileOpened(notePath)

	snap := e.Snapshot()
	if snap.State != workflow.StateEdit {
		t.Errorf("state = %v, want %v", snap.State, workflow.StateEdit)
	}
	if snap.CurrentEditPath != notePath {
		t.Errorf("edit path = %q, want %q", snap.CurrentEditPath, notePath)
	}
}

func TestBodyTextChangedThenSaveNow(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	path, err := e.TitleCommitted("journal", fixedNow())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	e.BodyTextChanged("dear diary", time.Now())
	e.SaveNow()

	deadline := time.Now().Add(2 * time.Second)
	for {
		data, err := os.ReadFile(path)
		if err == nil && string(data) == "dear diary" {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("note content = %q (err %v), want %q", data, err, "dear diary")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestBodyTextChangedIgnoredOutsideEdit(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	saved := make(chan event.Event, 4)
	e.Bus().Subscribe("note.autosaved", func(ev event.Event) {
		saved <- ev
	})

	e.BodyTextChanged("orphan text", time.Now())
	e.SaveNow()

	select {
	case ev := <-saved:
		t.Fatalf("unexpected autosave outside Edit: %+v", ev)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestForcedStemPublishesTitleAdjusted(t *testing.T) {
	e, _ := newTestEngine(t, func(cfg *config.Config) {
		cfg.Create.MinIntervalMs = 50
	})

	adjusted := make(chan event.TitleAdjustedEvent, 4)
	e.Bus().Subscribe("title.adjusted", func(ev event.Event) {
		if ta, ok := ev.(event.TitleAdjustedEvent); ok {
			adjusted <- ta
		}
	})

	base := fixedNow()
	if _, err := e.TitleCommitted("todo", base); err != nil {
		t.Fatalf("first create: %v", err)
	}
	e.NewNotePressed()

	// Same title on the same day collides, so the second note lands on a
	// numbered stem and the UI is told about it.
	path, err := e.TitleCommitted("todo", base.Add(time.Second))
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if filepath.Base(path) != "todo_2.txt" {
		t.Fatalf("second create path = %q, want base todo_2.txt", path)
	}

	select {
	case ta := <-adjusted:
		if ta.Stem != "todo_2" {
			t.Errorf("adjusted stem = %q, want %q", ta.Stem, "todo_2")
		}
		if ta.Title != "todo" {
			t.Errorf("adjusted title = %q, want %q", ta.Title, "todo")
		}
	default:
		t.Fatalf("no title.adjusted event after collision create")
	}
}

func TestCreateAndRenamePublishLifecycleEvents(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	created := make(chan event.NoteCreatedEvent, 1)
	renamed := make(chan event.NoteRenamedEvent, 1)
	e.Bus().Subscribe("note.created", func(ev event.Event) {
		if c, ok := ev.(event.NoteCreatedEvent); ok {
			created <- c
		}
	})
	e.Bus().Subscribe("note.renamed", func(ev event.Event) {
		if r, ok := ev.(event.NoteRenamedEvent); ok {
			renamed <- r
		}
	})

	path, err := e.TitleCommitted("alpha", fixedNow())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	select {
	case c := <-created:
		if c.Path != path {
			t.Errorf("created event path = %q, want %q", c.Path, path)
		}
	default:
		t.Fatalf("no note.created event")
	}

	newPath, err := e.TitleCommitted("beta", fixedNow().Add(2*time.Second))
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	select {
	case r := <-renamed:
		if r.OldPath != path || r.NewPath != newPath {
			t.Errorf("renamed event = %q -> %q, want %q -> %q", r.OldPath, r.NewPath, path, newPath)
		}
	default:
		t.Fatalf("no note.renamed event")
	}
}

func TestShutdownFlushesPendingAutosave(t *testing.T) {
	cfg := config.Default()
	cfg.Catalog.WatchEnabled = false
	cfg.Autosave.IdleSeconds = 3600 // never fires on its own

	root := t.TempDir()
	e, err := New(cfg, root, event.NewBus(), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	path, err := e.TitleCommitted("unsaved", fixedNow())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	e.BodyTextChanged("last words", time.Now())

	e.Shutdown()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read after shutdown: %v", err)
	}
	if string(data) != "last words" {
		t.Errorf("content after shutdown = %q, want %q", data, "last words")
	}
}
