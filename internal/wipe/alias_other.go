//go:build !windows

package wipe

import "io/fs"

// IsDirAlias always reports false: there are no junctions outside Windows.
func IsDirAlias(fs.FileInfo) bool {
	return false
}
