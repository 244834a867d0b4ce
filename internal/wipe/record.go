package wipe

import (
	"path/filepath"
	"slices"
	"strings"
)

// Record is a directory found during the walk, awaiting removal.
type Record struct {
	// Path is the directory path.
	Path string
	// Depth is the distance from the root (root = 0).
	Depth int
}

// collector gathers records sent from concurrent fastwalk callbacks.
// A single goroutine owns the slice; walkers only ever send on the channel.
type collector struct {
	records chan Record
	done    chan struct{}
	dirs    []Record
}

// newCollector starts a collector with the given channel buffer size.
func newCollector(buffer int) *collector {
	c := &collector{
		records: make(chan Record, buffer),
		done:    make(chan struct{}),
	}

	go func() {
		defer close(c.done)

		for r := range c.records {
			c.dirs = append(c.dirs, r)
		}
	}()

	return c
}

// add hands a record to the collector. Safe for concurrent use.
func (c *collector) add(path string, depth int) {
	c.records <- Record{Path: path, Depth: depth}
}

// finalize stops the collector and returns the records sorted deepest first.
// No add may happen after finalize is called.
func (c *collector) finalize() []Record {
	close(c.records)
	<-c.done

	sortByDepth(c.dirs)

	return c.dirs
}

// sortByDepth orders records by descending depth.
func sortByDepth(records []Record) {
	slices.SortStableFunc(records, func(a, b Record) int {
		return b.Depth - a.Depth
	})
}

// groupByDepth splits sorted records into runs of equal depth.
func groupByDepth(records []Record) [][]Record {
	var groups [][]Record

	for start := 0; start < len(records); {
		end := start + 1
		for end < len(records) && records[end].Depth == records[start].Depth {
			end++
		}

		groups = append(groups, records[start:end])
		start = end
	}

	return groups
}

// calculateDepth returns the depth of a path relative to the root.
func calculateDepth(path, root string) int {
	relPath := strings.TrimPrefix(path, root)

	relPath = strings.TrimPrefix(relPath, string(filepath.Separator))
	if relPath == "" {
		return 0
	}

	return strings.Count(relPath, string(filepath.Separator)) + 1
}
