// Package util provides shared utility functions used across the codebase.
package util

import (
	"path/filepath"
	"strings"
)

// TruncateString truncates a string to maxLen runes, adding "..." if truncated.
// Control characters are folded to spaces first so a truncated editor snapshot
// stays on one terminal line.
func TruncateString(s string, maxLen int) string {
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return ' '
		}
		return r
	}, s)
	if maxLen <= 3 {
		return "..."
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

// ShortenPath truncates a path to maxLen runes from the left, keeping the
// trailing components intact. The file name matters more than the prefix
// when a dated note path overflows a terminal column.
func ShortenPath(path string, maxLen int) string {
	if len([]rune(path)) <= maxLen {
		return path
	}
	sep := string(filepath.Separator)
	parts := strings.Split(path, sep)
	for len(parts) > 1 {
		parts = parts[1:]
		shortened := "..." + sep + strings.Join(parts, sep)
		if len([]rune(shortened)) <= maxLen {
			return shortened
		}
	}
	return TruncateString(parts[len(parts)-1], maxLen)
}
