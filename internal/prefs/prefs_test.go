package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsEmptyPrefs(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "prefs.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.LastOpenedPath != "" {
		t.Errorf("LastOpenedPath = %q, want empty", p.LastOpenedPath)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "prefs.toml")

	if err := Save(path, Prefs{LastOpenedPath: "/notes/2026/02/28/hello.txt"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.LastOpenedPath != "/notes/2026/02/28/hello.txt" {
		t.Errorf("LastOpenedPath = %q, want %q", p.LastOpenedPath, "/notes/2026/02/28/hello.txt")
	}
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "conf", "prefs.toml")

	if err := Save(path, Prefs{}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("prefs file missing: %v", err)
	}
}

func TestLoadMalformedFileDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("last_opened_path = [not toml"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.LastOpenedPath != "" {
		t.Errorf("LastOpenedPath = %q, want empty after malformed file", p.LastOpenedPath)
	}
}

func TestSaveOverwritesPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")

	if err := Save(path, Prefs{LastOpenedPath: "/a.txt"}); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if err := Save(path, Prefs{LastOpenedPath: "/b.txt"}); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.LastOpenedPath != "/b.txt" {
		t.Errorf("LastOpenedPath = %q, want %q", p.LastOpenedPath, "/b.txt")
	}
}

func TestLoadEmptyPathDegradesToEmpty(t *testing.T) {
	p, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.LastOpenedPath != "" {
		t.Errorf("LastOpenedPath = %q, want empty", p.LastOpenedPath)
	}
}
