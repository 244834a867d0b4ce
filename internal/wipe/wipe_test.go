package wipe

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBlocked = errors.New("blocked")

// recordingFS records the order of directory removals.
type recordingFS struct {
	OS

	mu      sync.Mutex
	removed []string
}

func (r *recordingFS) RemoveAll(name string) error {
	r.mu.Lock()
	r.removed = append(r.removed, name)
	r.mu.Unlock()

	return r.OS.RemoveAll(name)
}

// blockingFS refuses to remove one file, and every directory containing it.
type blockingFS struct {
	OS

	blocked string
}

func (b blockingFS) Remove(name string) error {
	if name == b.blocked {
		return &fs.PathError{Op: "remove", Path: name, Err: errBlocked}
	}

	return b.OS.Remove(name)
}

func (b blockingFS) RemoveAll(name string) error {
	if strings.HasPrefix(b.blocked, name+string(filepath.Separator)) {
		return &fs.PathError{Op: "removeall", Path: name, Err: errBlocked}
	}

	return b.OS.RemoveAll(name)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(filepath.Base(path)+" content"), 0o644))
}

func mkdirs(t *testing.T, root string, dirs ...string) {
	t.Helper()

	for _, dir := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
	}
}

// countEntries returns the number of entries in the tree, root included.
func countEntries(t *testing.T, root string) int {
	t.Helper()

	count := 0
	err := filepath.WalkDir(root, func(_ string, _ fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		count++

		return nil
	})
	require.NoError(t, err)

	return count
}

// TestClean_Nested tests removal of files spread over nested directories.
func TestClean_Nested(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "dir1", "file1.txt"))
	writeFile(t, filepath.Join(root, "dir1", "dir2", "file2.txt"))
	writeFile(t, filepath.Join(root, "dir1", "dir2", "dir3", "file3.txt"))

	require.NoError(t, New(Options{Path: root, Logger: discardLogger()}).Clean())

	assert.DirExists(t, root)
	assert.Equal(t, 1, countEntries(t, root))
}

// TestClean_Dirs tests removal of nested and sibling empty directories.
func TestClean_Dirs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mkdirs(t, root,
		"dir1",
		"dir1a",
		filepath.Join("dir1", "dir2"),
		filepath.Join("dir1", "dir2a"),
		filepath.Join("dir1", "dir2", "dir3"),
		filepath.Join("dir1", "dir2", "dir3a"),
	)

	require.NoError(t, New(Options{Path: root, Logger: discardLogger()}).Clean())

	assert.Equal(t, 1, countEntries(t, root))
}

// TestClean_Files tests removal of files directly below the root.
func TestClean_Files(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, name := range []string{"file1.txt", "file2.txt", "file3.txt", "file4.txt", "file5.txt", ".hidden"} {
		writeFile(t, filepath.Join(root, name))
	}

	require.NoError(t, New(Options{Path: root, Threads: 2, Logger: discardLogger()}).Clean())

	assert.Equal(t, 1, countEntries(t, root))
}

// TestClean_ReadOnly tests that read-only files and directories are removed.
func TestClean_ReadOnly(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := filepath.Join(root, "locked")
	file := filepath.Join(dir, "readonly.txt")

	writeFile(t, file)
	require.NoError(t, os.Chmod(file, 0o444))
	require.NoError(t, os.Chmod(dir, 0o555))

	require.NoError(t, New(Options{Path: root, Logger: discardLogger()}).Clean())

	assert.NoFileExists(t, file)
	assert.NoDirExists(t, dir)
	assert.Equal(t, 1, countEntries(t, root))
}

// TestClean_SymlinkNotFollowed tests that a symlinked directory is unlinked
// without touching its target.
func TestClean_SymlinkNotFollowed(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on windows")
	}

	outside := t.TempDir()
	kept := filepath.Join(outside, "keep.txt")
	writeFile(t, kept)

	root := t.TempDir()
	link := filepath.Join(root, "dir1", "link")
	mkdirs(t, root, "dir1")
	require.NoError(t, os.Symlink(outside, link))

	require.NoError(t, New(Options{Path: root, Logger: discardLogger()}).Clean())

	assert.FileExists(t, kept)
	assert.Equal(t, 1, countEntries(t, root))
}

// TestClean_AliasRemovedAsUnit tests that a directory alias is removed with
// a single non-recursive call and never descended into.
func TestClean_AliasRemovedAsUnit(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	empty := filepath.Join(root, "dir1", "junction")
	full := filepath.Join(root, "junction")
	target := filepath.Join(full, "target.txt")

	mkdirs(t, root, filepath.Join("dir1", "junction"))
	writeFile(t, target)
	writeFile(t, filepath.Join(root, "dir1", "file1.txt"))

	cleaner := New(Options{Path: root, Logger: discardLogger()})
	cleaner.isAlias = func(info fs.FileInfo) bool {
		return info.IsDir() && info.Name() == "junction"
	}

	require.NoError(t, cleaner.Clean())

	assert.NoDirExists(t, empty)
	assert.NoDirExists(t, filepath.Join(root, "dir1"))

	// A non-empty alias cannot be removed non-recursively, and its contents
	// are never visited.
	assert.FileExists(t, target)
	assert.Equal(t, 3, countEntries(t, root))

	for _, r := range cleaner.dirs {
		assert.NotEqual(t, "junction", filepath.Base(r.Path))
	}
}

// TestClean_ErrorIsolation tests that a file that cannot be removed does not
// stop the rest of the tree from being removed.
func TestClean_ErrorIsolation(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	blocked := filepath.Join(root, "dir1", "dir2", "held.txt")

	writeFile(t, blocked)
	writeFile(t, filepath.Join(root, "dir1", "dir2", "other.txt"))
	writeFile(t, filepath.Join(root, "dir1", "file1.txt"))
	writeFile(t, filepath.Join(root, "dir3", "file3.txt"))
	mkdirs(t, root, filepath.Join("dir3", "dir4", "dir5"))

	var buf bytes.Buffer

	cleaner := New(Options{
		Path:       root,
		FileSystem: blockingFS{blocked: blocked},
		Logger:     slog.New(slog.NewTextHandler(&buf, nil)),
	})

	require.NoError(t, cleaner.Clean())

	assert.FileExists(t, blocked)
	assert.NoFileExists(t, filepath.Join(root, "dir1", "dir2", "other.txt"))
	assert.NoFileExists(t, filepath.Join(root, "dir1", "file1.txt"))
	assert.NoDirExists(t, filepath.Join(root, "dir3"))

	// Only the blocked file and its ancestors remain.
	assert.Equal(t, 4, countEntries(t, root))
	assert.Contains(t, buf.String(), "Failed to remove file")
	assert.Contains(t, buf.String(), "Error removing directory")
}

// TestClean_DepthOrder tests that directories are removed deepest first.
func TestClean_DepthOrder(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mkdirs(t, root,
		filepath.Join("a", "b", "c", "d"),
		filepath.Join("a", "b2"),
		filepath.Join("e", "f", "g"),
		"h",
	)
	writeFile(t, filepath.Join(root, "a", "b", "c", "file.txt"))
	writeFile(t, filepath.Join(root, "e", "file.txt"))

	recorder := &recordingFS{}

	require.NoError(t, New(Options{Path: root, FileSystem: recorder, Logger: discardLogger()}).Clean())

	require.Len(t, recorder.removed, 9)

	last := calculateDepth(recorder.removed[0], root)
	for _, path := range recorder.removed[1:] {
		depth := calculateDepth(path, root)
		assert.LessOrEqual(t, depth, last, "removed %s out of order", path)
		last = depth
	}

	assert.Equal(t, 1, countEntries(t, root))
}

// TestClean_RecordsDepths tests the depths recorded during the walk.
func TestClean_RecordsDepths(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mkdirs(t, root, filepath.Join("a", "b", "c"), "d")

	cleaner := New(Options{Path: root, Logger: discardLogger()})
	require.NoError(t, cleaner.Clean())

	depths := make(map[string]int, len(cleaner.dirs))
	for _, r := range cleaner.dirs {
		rel, err := filepath.Rel(root, r.Path)
		require.NoError(t, err)

		depths[filepath.ToSlash(rel)] = r.Depth
	}

	assert.Equal(t, map[string]int{"a": 1, "a/b": 2, "a/b/c": 3, "d": 1}, depths)
}

// TestClean_InvalidRoot tests that an unusable root is reported.
func TestClean_InvalidRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	file := filepath.Join(root, "file.txt")
	writeFile(t, file)

	err := New(Options{Path: filepath.Join(root, "missing"), Logger: discardLogger()}).Clean()
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	err = New(Options{Path: file, Logger: discardLogger()}).Clean()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")
	assert.FileExists(t, file)
}
