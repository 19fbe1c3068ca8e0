//go:build windows

package atomicfile

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32         = windows.NewLazySystemDLL("kernel32.dll")
	procReplaceFileW = kernel32.NewProc("ReplaceFileW")
)

// replaceTarget swaps the temp file over the target. On Windows a bare
// rename fails when the target exists, so an existing target goes through
// ReplaceFileW, which preserves the target's attributes and ACLs.
func replaceTarget(tempPath, targetPath string) error {
	if _, err := os.Stat(targetPath); os.IsNotExist(err) {
		return os.Rename(tempPath, targetPath)
	}

	targetPtr, err := windows.UTF16PtrFromString(targetPath)
	if err != nil {
		return err
	}
	tempPtr, err := windows.UTF16PtrFromString(tempPath)
	if err != nil {
		return err
	}

	ret, _, callErr := procReplaceFileW.Call(
		uintptr(unsafe.Pointer(targetPtr)),
		uintptr(unsafe.Pointer(tempPtr)),
		0, 0, 0, 0,
	)
	if ret == 0 {
		return callErr
	}
	return nil
}
