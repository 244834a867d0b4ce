package wipe

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
)

// Cleaner empties a single directory tree. It is meant to be used for one
// Clean call and then discarded.
type Cleaner struct {
	path    string
	dirs    []Record
	threads int
	fs      FileSystem
	isAlias func(fs.FileInfo) bool
	log     *slog.Logger
}

// New creates a Cleaner for opt.Path.
func New(opt Options) *Cleaner {
	if opt.Path == "" {
		opt.Path = "."
	}

	if opt.FileSystem == nil {
		opt.FileSystem = OS{}
	}

	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}

	return &Cleaner{
		path:    filepath.Clean(opt.Path),
		threads: Threads(opt.Factor, opt.Threads),
		fs:      opt.FileSystem,
		isAlias: IsDirAlias,
		log:     opt.Logger,
	}
}

// Clean removes everything below the root, leaving the root as an empty
// directory. Failures on individual entries are logged and skipped; the
// returned error is only non-nil when the root itself cannot be walked.
func (c *Cleaner) Clean() error {
	info, err := c.fs.Lstat(c.path)
	if err != nil {
		return fmt.Errorf("accessing path %q: %w", c.path, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path %q is not a directory", c.path)
	}

	dirs, err := c.removeFiles()
	if err != nil {
		return fmt.Errorf("walking %q: %w", c.path, err)
	}

	c.dirs = dirs
	c.removeDirs(c.dirs)

	return nil
}
