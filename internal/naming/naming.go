// Package naming implements title sanitization and note path resolution.
//
// A note's file name is derived from the title the user typed: characters
// that are unsafe in file names are replaced, the stem is capped at a fixed
// rune count, and empty titles fall back to a timestamped placeholder. Notes
// live in per-day directories under the document root, and collisions are
// resolved with a numeric suffix.
package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

const (
	// MaxStemRunes is the maximum length of a file stem in Unicode code
	// points. Multibyte characters count as one.
	MaxStemRunes = 64

	// NoteExtension is the file extension for all note files.
	NoteExtension = ".txt"
)

// InvalidStemChar reports whether a character may not appear in a note file
// stem. The set is the union of characters rejected by Windows, macOS, and
// Linux filesystems, plus all control characters.
func InvalidStemChar(r rune) bool {
	switch r {
	case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
		return true
	}
	return unicode.IsControl(r)
}

// HasInvalidChars reports whether the title contains any character that
// SanitizeStem would replace.
func HasInvalidChars(title string) bool {
	return strings.ContainsFunc(title, InvalidStemChar)
}

// SanitizeStem replaces every invalid character in raw with an underscore
// and truncates the result to MaxStemRunes code points. Valid multibyte
// characters pass through unchanged.
func SanitizeStem(raw string) string {
	runes := []rune(raw)
	for i, r := range runes {
		if InvalidStemChar(r) {
			runes[i] = '_'
		}
	}
	if len(runes) > MaxStemRunes {
		runes = runes[:MaxStemRunes]
	}
	return string(runes)
}

// NotitleStem returns the placeholder stem for an untitled note:
// "notitle-" followed by the local creation time as fourteen digits of
// seconds precision plus three digits of milliseconds.
func NotitleStem(now time.Time) string {
	return fmt.Sprintf("notitle-%s%03d", now.Format("20060102150405"), now.Nanosecond()/int(time.Millisecond))
}

// StemFromTitle derives the file stem for a note title. An empty title, or
// one that sanitizes to nothing, falls back to the timestamped placeholder.
func StemFromTitle(title string, now time.Time) string {
	if title == "" {
		return NotitleStem(now)
	}

	sanitized := SanitizeStem(title)
	if sanitized == "" {
		return NotitleStem(now)
	}

	return sanitized
}

// DailyDirectory returns the per-day directory for notes created at the
// given time: root/YYYY/MM/DD using the local calendar date.
func DailyDirectory(documentRoot string, now time.Time) string {
	return filepath.Join(documentRoot, now.Format("2006"), now.Format("01"), now.Format("02"))
}

// ResolveUniquePath finds the first available .txt path for stem inside dir.
// The first candidate is stem.txt; subsequent candidates append _2, _3, and
// so on. A candidate equal to excludePath is treated as available, so a
// rename that resolves back to the file's own name is a no-op rather than a
// forced suffix bump.
//
// Resolution races with concurrent creators by design; callers creating a
// file must use exclusive create and retry on collision.
func ResolveUniquePath(dir, stem, excludePath string) string {
	for suffix := 1; ; suffix++ {
		var fileName string
		if suffix == 1 {
			fileName = stem + NoteExtension
		} else {
			fileName = fmt.Sprintf("%s_%d%s", stem, suffix, NoteExtension)
		}
		candidate := filepath.Join(dir, fileName)

		if excludePath != "" && candidate == excludePath {
			return candidate
		}
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// PathStem returns the file name of path without its extension, or "" if
// the path has no file name.
func PathStem(path string) string {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ForcedStem reports the stem the engine actually used when it differs from
// what the user's title alone would produce. The editor uses this to push
// the adjusted name back into the title field. A non-empty result means the
// stem was forced, either by a collision suffix or by character
// sanitization.
func ForcedStem(title, resolvedPath string, now time.Time) (string, bool) {
	resolvedStem := PathStem(resolvedPath)
	if resolvedStem == "" {
		return "", false
	}

	baseStem := StemFromTitle(title, now)
	hadCollision := resolvedStem != baseStem
	hadInvalidChars := title != "" && HasInvalidChars(title)

	if hadCollision || hadInvalidChars {
		return resolvedStem, true
	}

	return "", false
}

// ForcedStemAfterCreate reports the adjusted stem after a successful
// creation. See ForcedStem.
func ForcedStemAfterCreate(title, createdPath string, now time.Time) (string, bool) {
	return ForcedStem(title, createdPath, now)
}

// ForcedStemAfterRename reports the adjusted stem after a successful
// rename. See ForcedStem.
func ForcedStemAfterRename(title, renamedPath string, now time.Time) (string, bool) {
	return ForcedStem(title, renamedPath, now)
}
