package dispatch

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ddbaker/papyru2/internal/atomicfile"
	"github.com/ddbaker/papyru2/internal/errors"
	"github.com/ddbaker/papyru2/internal/naming"
)

// createNote resolves a collision-free path under the daily directory and
// creates the file exclusively. A concurrent creator winning the race
// surfaces as ErrNoteExists rather than silently reusing the path.
func createNote(cmd CreateCommand) (string, error) {
	dir := naming.DailyDirectory(cmd.DocumentRoot, cmd.Now)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(err, "failed to create daily directory")
	}

	stem := naming.StemFromTitle(cmd.Title, cmd.Now)
	path := naming.ResolveUniquePath(dir, stem, "")

	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", errors.Wrapf(errors.ErrNoteExists, "note %s", path)
		}
		return "", errors.Wrapf(err, "failed to create note %s", path)
	}
	if err := file.Close(); err != nil {
		return "", errors.Wrapf(err, "failed to close new note %s", path)
	}

	return path, nil
}

// renameNote renames the current note file to match the new title, keeping
// it in the same directory. Resolving back to the current name is a no-op.
func renameNote(cmd RenameCommand) (string, error) {
	info, err := os.Lstat(cmd.CurrentPath)
	if err != nil || !info.Mode().IsRegular() {
		return "", errors.NewNotFoundError("note", cmd.CurrentPath)
	}

	parent := filepath.Dir(cmd.CurrentPath)
	if parent == cmd.CurrentPath {
		return "", errors.NewValidationError("current note path has no parent directory").
			WithField("path").WithValue(cmd.CurrentPath)
	}

	stem := naming.StemFromTitle(cmd.Title, cmd.Now)
	target := naming.ResolveUniquePath(parent, stem, cmd.CurrentPath)

	if target == cmd.CurrentPath {
		return target, nil
	}

	if err := os.Rename(cmd.CurrentPath, target); err != nil {
		return "", errors.Wrapf(err, "failed to rename note %s", cmd.CurrentPath)
	}
	return target, nil
}

// autosaveNote round-trips the payload through its wire encoding, then
// atomically writes the decoded editor text.
func autosaveNote(cmd AutosaveCommand) (string, error) {
	serialized, err := json.Marshal(cmd.Payload)
	if err != nil {
		return "", errors.NewValidationError("autosave payload failed to encode").
			WithCause(errors.Join(errors.ErrInvalidPayload, err))
	}

	var decoded AutosavePayload
	if err := json.Unmarshal(serialized, &decoded); err != nil {
		return "", errors.NewValidationError("autosave payload failed to decode").
			WithCause(errors.Join(errors.ErrInvalidPayload, err))
	}

	if err := atomicfile.WriteFile(decoded.CurrentPath, []byte(decoded.EditorText)); err != nil {
		return "", err
	}
	return decoded.CurrentPath, nil
}

// execute runs a single command and produces its result.
func execute(cmd Command) (Result, error) {
	switch c := cmd.(type) {
	case CreateCommand:
		path, err := createNote(c)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: KindCreate, Path: path}, nil
	case RenameCommand:
		path, err := renameNote(c)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: KindRename, Path: path}, nil
	case AutosaveCommand:
		path, err := autosaveNote(c)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: KindAutosave, Path: path}, nil
	default:
		return Result{}, errors.NewDispatchError(string(cmd.Kind()), errors.New("unknown command type"))
	}
}
