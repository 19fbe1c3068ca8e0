// Package prefs handles papyru2 session preferences persistence.
// Preferences are stored as TOML in the application's conf directory and
// remember which note was open so the editor can restore it at startup.
package prefs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds session preferences restored at startup.
type Prefs struct {
	// LastOpenedPath is the path of the note bound to the editor when the
	// previous session ended. Empty when the session ended in neutral.
	LastOpenedPath string `toml:"last_opened_path"`
}

// FileName is the preferences file name inside the conf directory.
const FileName = "prefs.toml"

// Load reads preferences from the given path. A missing, unreadable, or
// malformed file degrades to empty preferences so a damaged prefs file can
// never stop the application from starting.
func Load(path string) (Prefs, error) {
	resolved, err := expandPath(path)
	if err != nil {
		return Prefs{}, nil
	}

	var prefs Prefs

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return prefs, nil // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return prefs, nil // Graceful degradation
	}

	if err := toml.Unmarshal(data, &prefs); err != nil {
		return Prefs{}, nil // Graceful degradation
	}

	return prefs, nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := expandPath(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return err
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return err
	}

	return os.WriteFile(resolved, data, 0o644)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("prefs path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
