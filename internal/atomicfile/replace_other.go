//go:build !windows

package atomicfile

import "os"

// replaceTarget swaps the temp file over the target. POSIX rename replaces
// an existing target atomically.
func replaceTarget(tempPath, targetPath string) error {
	return os.Rename(tempPath, targetPath)
}
