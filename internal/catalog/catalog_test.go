package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeNote(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte("note"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func TestListMissingRootIsEmpty(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "nowhere"), nil)

	tree, err := c.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tree) != 0 {
		t.Errorf("got %d entries for missing root, want 0", len(tree))
	}
}

func TestListOrdersFoldersFirstThenByName(t *testing.T) {
	root := t.TempDir()
	writeNote(t, filepath.Join(root, "zebra.txt"))
	writeNote(t, filepath.Join(root, "alpha.txt"))
	if err := os.MkdirAll(filepath.Join(root, "2026"), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(root, "archive"), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	tree, err := New(root, nil).List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	var names []string
	for _, e := range tree {
		names = append(names, e.Name)
	}
	want := []string{"2026", "archive", "alpha.txt", "zebra.txt"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("order = %v, want %v", names, want)
	}
	if !tree[0].IsDir || tree[2].IsDir {
		t.Error("IsDir flags wrong in listing")
	}
}

func TestListRecursesIntoDatedTree(t *testing.T) {
	root := t.TempDir()
	writeNote(t, filepath.Join(root, "2026", "02", "28", "hello.txt"))

	tree, err := New(root, nil).List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tree) != 1 || tree[0].Name != "2026" {
		t.Fatalf("top level = %+v, want single 2026 dir", tree)
	}
	day := tree[0].Children[0].Children[0]
	if day.Name != "28" || len(day.Children) != 1 {
		t.Fatalf("day entry = %+v, want 28 with one note", day)
	}
	if day.Children[0].Name != "hello.txt" {
		t.Errorf("note = %q, want hello.txt", day.Children[0].Name)
	}
}

func TestListSkipsHiddenAndTempEntries(t *testing.T) {
	root := t.TempDir()
	writeNote(t, filepath.Join(root, "keep.txt"))
	writeNote(t, filepath.Join(root, ".hidden.txt"))
	writeNote(t, filepath.Join(root, "keep.txt.tmp"))
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	tree, err := New(root, nil).List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tree) != 1 || tree[0].Name != "keep.txt" {
		t.Errorf("tree = %+v, want only keep.txt", tree)
	}
}

func TestNotesFlattensAndSorts(t *testing.T) {
	root := t.TempDir()
	writeNote(t, filepath.Join(root, "2026", "02", "28", "b.txt"))
	writeNote(t, filepath.Join(root, "2026", "02", "27", "c.txt"))
	writeNote(t, filepath.Join(root, "2026", "02", "28", "a.txt"))
	writeNote(t, filepath.Join(root, "2026", "02", "28", "readme.md"))

	notes, err := New(root, nil).Notes()
	if err != nil {
		t.Fatalf("Notes failed: %v", err)
	}
	want := []string{
		filepath.Join(root, "2026", "02", "27", "c.txt"),
		filepath.Join(root, "2026", "02", "28", "a.txt"),
		filepath.Join(root, "2026", "02", "28", "b.txt"),
	}
	if !reflect.DeepEqual(notes, want) {
		t.Errorf("notes = %v, want %v", notes, want)
	}
}
