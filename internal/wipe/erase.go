package wipe

import (
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
)

// removeDirs removes the recorded directories one depth level at a time.
// records must already be sorted deepest first. A level is only started
// once every removal of the previous (deeper) level has returned.
func (c *Cleaner) removeDirs(records []Record) {
	groups := groupByDepth(records)

	c.log.Debug("Removing directories",
		"path", c.path,
		"directories", humanize.Comma(int64(len(records))),
		"levels", len(groups),
	)

	for _, group := range groups {
		var g errgroup.Group

		g.SetLimit(c.threads)

		for _, dir := range group {
			dir := dir

			g.Go(func() error {
				if err := c.fs.RemoveAll(dir.Path); err != nil {
					c.log.Error("Error removing directory", "path", dir.Path, "depth", dir.Depth, "err", err)
				}

				return nil
			})
		}

		_ = g.Wait()
	}
}
