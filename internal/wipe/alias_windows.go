//go:build windows

package wipe

import (
	"io/fs"
	"syscall"

	"golang.org/x/sys/windows"
)

// IsDirAlias reports whether info describes a junction or another reparse
// point directory. Such entries are removed as a unit and never walked into.
func IsDirAlias(info fs.FileInfo) bool {
	attrs, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok || attrs == nil {
		return false
	}

	const mask = windows.FILE_ATTRIBUTE_DIRECTORY | windows.FILE_ATTRIBUTE_REPARSE_POINT

	return attrs.FileAttributes&mask == mask
}
