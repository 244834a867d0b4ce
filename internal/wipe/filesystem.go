package wipe

import (
	"io/fs"
	"os"
)

// FileSystem is the set of filesystem operations the Cleaner performs.
type FileSystem interface {
	Lstat(name string) (fs.FileInfo, error)
	Chmod(name string, mode fs.FileMode) error
	Remove(name string) error
	RemoveAll(name string) error
}

// OS is an implementation wrapping operating system functions.
type OS struct{}

// Lstat wraps around [os.Lstat].
func (OS) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}

// Chmod wraps around [os.Chmod].
func (OS) Chmod(name string, mode fs.FileMode) error {
	return os.Chmod(name, mode)
}

// Remove wraps around [os.Remove].
func (OS) Remove(name string) error {
	return os.Remove(name)
}

// RemoveAll wraps around [os.RemoveAll].
func (OS) RemoveAll(name string) error {
	return os.RemoveAll(name)
}
