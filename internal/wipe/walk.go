package wipe

import (
	"io/fs"
	"path/filepath"

	"github.com/charlievieth/fastwalk"
	"github.com/dustin/go-humanize"
)

// writeBit is added to entries without any write permission.
const writeBit fs.FileMode = 0o200

// removeFiles walks the tree, removing every non-directory entry and
// returning the directories it found, deepest first.
func (c *Cleaner) removeFiles() ([]Record, error) {
	collector := newCollector(c.threads)

	conf := &fastwalk.Config{
		Follow:     false, // Never traverse into link targets
		NumWorkers: c.threads,
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, c.path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			c.log.Error("Error processing directory entry", "path", path, "err", err)

			return nil
		}

		depth := calculateDepth(path, c.path)

		if !c.visit(path, depth, collector) && d.IsDir() {
			return filepath.SkipDir
		}

		return nil
	})

	dirs := collector.finalize()

	if walkErr != nil {
		return dirs, walkErr
	}

	c.log.Debug("Walk finished", "path", c.path, "directories", humanize.Comma(int64(len(dirs))))

	return dirs, nil
}

// visit handles a single entry and reports whether the walk may descend into it.
func (c *Cleaner) visit(path string, depth int, collector *collector) bool {
	info, err := c.fs.Lstat(path)
	if err != nil {
		c.log.Error("Failed to read metadata", "path", path, "err", err)

		return false
	}

	if depth > 0 && c.isAlias(info) {
		if err := c.fs.Remove(path); err != nil {
			c.log.Error("Failed to remove junction", "path", path, "err", err)
		}

		return false
	}

	mode := info.Mode()
	if mode&fs.ModeSymlink == 0 && mode.Perm()&0o222 == 0 {
		if err := c.fs.Chmod(path, mode.Perm()|writeBit); err != nil {
			c.log.Error("Error making entry write-accessible", "path", path, "err", err)
		}
	}

	if depth == 0 {
		return true
	}

	if !info.IsDir() {
		if err := c.fs.Remove(path); err != nil {
			c.log.Error("Failed to remove file", "path", path, "err", err)
		}

		return false
	}

	collector.add(path, depth)

	return true
}
