package wipe

import (
	"log/slog"
	"runtime"
)

// DefaultFactor is the default number of walk workers per logical CPU.
// Deletion is bound by syscalls rather than CPU, so many workers can be
// blocked in the kernel at once.
const DefaultFactor = 100

// Options configures a Cleaner.
type Options struct {
	// Path is the root of the tree to clean. The root itself is kept.
	Path string
	// Factor is the number of workers per logical CPU (0 = DefaultFactor).
	Factor int
	// Threads is an explicit worker count, overriding Factor when > 0.
	Threads int
	// FileSystem performs the actual filesystem calls (nil = OS).
	FileSystem FileSystem
	// Logger receives per-entry failures and debug output (nil = slog.Default()).
	Logger *slog.Logger
}

// Threads returns the worker count for the given factor and explicit thread count.
func Threads(factor, threads int) int {
	if threads > 0 {
		return threads
	}

	if factor <= 0 {
		factor = DefaultFactor
	}

	return runtime.NumCPU() * factor
}
