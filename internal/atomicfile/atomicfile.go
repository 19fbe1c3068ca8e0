// Package atomicfile writes note content to disk without ever exposing a
// partially written file.
//
// Content is staged in a sibling temp file, flushed to stable storage, and
// then swapped over the target in a single filesystem operation. If any step
// fails, the existing target file is left untouched, so the last good
// autosave always survives a crash or a full disk.
package atomicfile

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ddbaker/papyru2/internal/errors"
)

// TempSuffix is appended to the target file name to form the staging path.
// The temp file lives in the same directory as the target so the final swap
// never crosses a filesystem boundary.
const TempSuffix = ".tmp"

// replaceFunc swaps the staged temp file over the target. Split out so tests
// can inject a failing replacement.
type replaceFunc func(tempPath, targetPath string) error

// WriteFile atomically writes data to path. The parent directory is created
// if missing. The target file is never touched until the staged content has
// been fully written and synced; a failed swap leaves the previous target
// intact.
func WriteFile(path string, data []byte) error {
	return writeFileWith(path, data, replaceTarget)
}

func writeFileWith(path string, data []byte, replace replaceFunc) error {
	tempPath, err := TempPath(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewWriteError(errors.StageCreateTemp, path, err)
	}

	// A stale temp from an earlier crashed write must not survive into
	// this attempt.
	if info, err := os.Lstat(tempPath); err == nil && info.Mode().IsRegular() {
		if err := os.Remove(tempPath); err != nil {
			return errors.NewWriteError(errors.StageCreateTemp, path, err)
		}
	}

	tempFile, err := os.Create(tempPath)
	if err != nil {
		return errors.NewWriteError(errors.StageCreateTemp, path, err)
	}

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return errors.NewWriteError(errors.StageWriteTemp, path, err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return errors.NewWriteError(errors.StageSyncTemp, path, err)
	}

	if err := tempFile.Close(); err != nil {
		return errors.NewWriteError(errors.StageSyncTemp, path, err)
	}

	if err := replace(tempPath, path); err != nil {
		writeErr := errors.NewWriteError(errors.StageReplaceTarget, path, err)
		if cleanupErr := cleanupTemp(tempPath); cleanupErr != nil {
			return writeErr.WithCleanupErr(cleanupErr)
		}
		return writeErr
	}

	return nil
}

// TempPath returns the staging path for an atomic write to path: the target
// file name with TempSuffix appended, in the same directory. It rejects
// paths with no usable file name.
func TempPath(path string) (string, error) {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "", errors.NewValidationError("autosave path has no file name").
			WithField("path").WithValue(path)
	}
	return filepath.Join(filepath.Dir(path), base+TempSuffix), nil
}

// cleanupTemp removes the orphaned temp file after a failed swap. A temp
// that is already gone is not an error.
func cleanupTemp(tempPath string) error {
	err := os.Remove(tempPath)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
