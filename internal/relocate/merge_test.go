package relocate

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeIntoItself(t *testing.T) {
	e := newEngine(false)
	dir := t.TempDir()
	build(t, dir, map[string]string{"a.txt": "a", "sub/b.txt": "b"})
	before := snapshot(t, dir)

	res, err := e.Merge(dir, dir)
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, before, snapshot(t, dir))

	res, err = e.Merge(dir, dir, Moving())
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, before, snapshot(t, dir))
}

func TestMergeRequiresDirectories(t *testing.T) {
	e := newEngine(true)
	dir := t.TempDir()
	build(t, dir, map[string]string{"file": "x", "src/a": "a"})

	_, err := e.Merge(filepath.Join(dir, "src"), filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, ErrNotDirectory)

	_, err = e.Merge(filepath.Join(dir, "file"), filepath.Join(dir, "src"))
	assert.ErrorIs(t, err, ErrNotDirectory)

	var pathErr *fs.PathError
	require.True(t, errors.As(err, &pathErr))
	assert.Equal(t, filepath.Join(dir, "file"), pathErr.Path)
}

func TestMergeDstInsideSrc(t *testing.T) {
	e := newEngine(true)
	root := t.TempDir()
	build(t, root, map[string]string{
		"a/x.txt":       "x",
		"a/b/y.txt":     "y",
		"a/b/c/z.txt":   "z",
		"a/other/w.txt": "w",
	})
	before := snapshot(t, root)

	for _, moving := range []bool{false, true} {
		var opts []Option
		if moving {
			opts = append(opts, Moving())
		}

		_, err := e.Merge(filepath.Join(root, "a"), filepath.Join(root, "a", "b", "c"), opts...)
		assert.ErrorIs(t, err, ErrDstInsideSrc)
		assert.ErrorIs(t, err, fs.ErrPermission)
		assert.Equal(t, before, snapshot(t, root))
	}
}

func TestMergeSrcInsideDstClone(t *testing.T) {
	e := newEngine(false)
	root := t.TempDir()
	dst := filepath.Join(root, "b")
	src := filepath.Join(dst, "nested", "a")
	build(t, root, map[string]string{
		"b/keep.txt":           "keep",
		"b/nested/a/x.txt":     "x",
		"b/nested/a/sub/y.txt": "y",
	})
	srcBefore := snapshot(t, src)

	res, err := e.Merge(src, dst)
	require.NoError(t, err)
	assert.True(t, res.OK())

	got := snapshot(t, dst)
	assert.Equal(t, "x", got["x.txt"])
	assert.Equal(t, "y", got["sub/y.txt"])
	assert.Equal(t, "keep", got["keep.txt"])
	assert.Equal(t, srcBefore, snapshot(t, src))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "staging directory must not be left behind")
}

func TestMergeSrcInsideDstMove(t *testing.T) {
	e := newEngine(false)
	root := t.TempDir()
	dst := filepath.Join(root, "b")
	src := filepath.Join(dst, "a")
	build(t, root, map[string]string{
		"b/a/x.txt":     "x",
		"b/a/sub/y.txt": "y",
	})

	res, err := e.Merge(src, dst, Moving())
	require.NoError(t, err)
	assert.True(t, res.OK())

	assert.Equal(t, map[string]string{"x.txt": "x", "sub/y.txt": "y"}, snapshot(t, dst))
	assert.False(t, exists(src))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMergeSrcInsideDstRestoresIntoRecreatedPath(t *testing.T) {
	e := New(newEngine(false).FS(), fixedNamer{name: "stage"}, false)
	root := t.TempDir()
	dst := filepath.Join(root, "b")
	src := filepath.Join(dst, "a")
	// The source contains a folder named like itself, so the walk
	// recreates b/a before the staged tree is put back.
	build(t, root, map[string]string{
		"b/a/a/inner.txt": "inner",
		"b/a/top.txt":     "top",
	})

	res, err := e.Merge(src, dst)
	require.NoError(t, err)
	assert.True(t, res.OK())

	assert.Equal(t, "top", snapshot(t, dst)["top.txt"])
	got := snapshot(t, src)
	assert.Equal(t, "inner", got["a/inner.txt"])
	assert.Equal(t, "top", got["top.txt"])
	assert.Equal(t, "inner", got["inner.txt"])
	assert.False(t, exists(filepath.Join(root, "stage")))
}

func TestMergeOverwritesAndPreservesSiblings(t *testing.T) {
	e := newEngine(false)
	root := t.TempDir()
	build(t, root, map[string]string{
		"src/a.txt":     "new",
		"src/sub/b.txt": "b",
		"dst/a.txt":     "old",
		"dst/only.txt":  "only",
	})

	res, err := e.Merge(filepath.Join(root, "src"), filepath.Join(root, "dst"))
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, filepath.Join(root, "dst"), res.Path)

	assert.Equal(t, map[string]string{
		"a.txt":     "new",
		"sub/b.txt": "b",
		"only.txt":  "only",
	}, snapshot(t, filepath.Join(root, "dst")))
	assert.Equal(t, map[string]string{"a.txt": "new", "sub/b.txt": "b"}, snapshot(t, filepath.Join(root, "src")))
}

func TestMergeConflictsWithoutForce(t *testing.T) {
	e := newEngine(false)
	root := t.TempDir()
	build(t, root, map[string]string{
		"src/blocked/x.txt": "x",
		"src/file.txt":      "file",
		"src/ok.txt":        "ok",
		"src/z/after.txt":   "after",
		"dst/blocked":       "a file where a folder should go",
		"dst/file.txt/":     "",
	})

	res, err := e.Merge(filepath.Join(root, "src"), filepath.Join(root, "dst"))
	require.NoError(t, err)
	require.False(t, res.OK())
	require.Len(t, res.Failures, 2)

	assert.Equal(t, filepath.Join(root, "src", "file.txt"), res.Failures[0].Path)
	assert.False(t, res.Failures[0].IsDir)
	assert.ErrorIs(t, res.Failures[0], fs.ErrExist)

	assert.Equal(t, filepath.Join(root, "src", "blocked"), res.Failures[1].Path)
	assert.True(t, res.Failures[1].IsDir)
	assert.ErrorIs(t, res.Err(), ErrTypeConflict)

	got := snapshot(t, filepath.Join(root, "dst"))
	assert.Equal(t, "ok", got["ok.txt"])
	assert.Equal(t, "after", got["z/after.txt"])
	assert.Equal(t, "a file where a folder should go", got["blocked"])
	assert.Contains(t, got, "file.txt/")
}

func TestMergeConflictsWithForce(t *testing.T) {
	e := newEngine(false)
	root := t.TempDir()
	build(t, root, map[string]string{
		"src/blocked/x.txt":       "x",
		"src/file.txt":            "file",
		"dst/blocked":             "a file",
		"dst/file.txt/inside.txt": "gone",
	})

	res, err := e.Merge(filepath.Join(root, "src"), filepath.Join(root, "dst"), WithForce(true))
	require.NoError(t, err)
	assert.True(t, res.OK())

	assert.Equal(t, map[string]string{
		"blocked/x.txt": "x",
		"file.txt":      "file",
	}, snapshot(t, filepath.Join(root, "dst")))
}

func TestMergeMovingRemovesSource(t *testing.T) {
	e := newEngine(false)
	root := t.TempDir()
	build(t, root, map[string]string{
		"src/a.txt":       "a",
		"src/sub/b.txt":   "b",
		"src/empty/":      "",
		"dst/existing.md": "e",
	})

	res, err := e.Merge(filepath.Join(root, "src"), filepath.Join(root, "dst"), Moving())
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.False(t, exists(filepath.Join(root, "src")))

	assert.Equal(t, map[string]string{
		"a.txt":       "a",
		"sub/b.txt":   "b",
		"empty/":      "",
		"existing.md": "e",
	}, snapshot(t, filepath.Join(root, "dst")))
}

func TestMergeMovingKeepsUnmovedFiles(t *testing.T) {
	e := newEngine(false)
	root := t.TempDir()
	build(t, root, map[string]string{
		"src/stuck.txt":  "stuck",
		"src/moved.txt":  "moved",
		"src/done/x.txt": "x",
		"dst/stuck.txt/": "",
	})

	res, err := e.Merge(filepath.Join(root, "src"), filepath.Join(root, "dst"), Moving())
	require.NoError(t, err)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, filepath.Join(root, "src", "stuck.txt"), res.Failures[0].Path)

	assert.Equal(t, map[string]string{"stuck.txt": "stuck"}, snapshot(t, filepath.Join(root, "src")))
	assert.False(t, exists(filepath.Join(root, "src", "done")))
}

func TestMergeStagedMovingRestoresUnmovedFiles(t *testing.T) {
	e := New(newEngine(false).FS(), fixedNamer{name: "stage"}, false)
	root := t.TempDir()
	dst := filepath.Join(root, "dst")
	src := filepath.Join(dst, "sub")
	build(t, root, map[string]string{
		"dst/sub/stuck.txt": "stuck",
		"dst/sub/ok.txt":    "ok",
		"dst/stuck.txt/":    "",
	})

	res, err := e.Merge(src, dst, Moving())
	require.NoError(t, err)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, filepath.Join(src, "stuck.txt"), res.Failures[0].Path)

	assert.Equal(t, map[string]string{
		"dst/ok.txt":        "ok",
		"dst/stuck.txt/":    "",
		"dst/sub/stuck.txt": "stuck",
	}, snapshot(t, root))
}

func TestMoveOntoAncestorRestoresUnmovedFiles(t *testing.T) {
	e := New(newEngine(false).FS(), fixedNamer{name: "stage"}, false)
	root := t.TempDir()
	dst := filepath.Join(root, "dst")
	src := filepath.Join(dst, "sub")
	build(t, root, map[string]string{
		"dst/sub/stuck.txt": "stuck",
		"dst/sub/ok.txt":    "ok",
		"dst/stuck.txt/":    "",
	})

	res, err := e.Move(src, dst)
	require.NoError(t, err)
	require.Len(t, res.Failures, 1)

	assert.Equal(t, "stuck", snapshot(t, src)["stuck.txt"])
	assert.False(t, exists(filepath.Join(root, "stage")))
}

func TestMergeStagedCloneReportsSourcePaths(t *testing.T) {
	e := New(newEngine(false).FS(), fixedNamer{name: "stage"}, false)
	root := t.TempDir()
	dst := filepath.Join(root, "dst")
	src := filepath.Join(dst, "sub")
	build(t, root, map[string]string{
		"dst/sub/deep/x.txt": "x",
		"dst/deep/x.txt/":    "",
	})

	res, err := e.Merge(src, dst)
	require.NoError(t, err)
	require.Len(t, res.Failures, 1)

	failed := res.Failures[0].Path
	assert.Equal(t, filepath.Join(src, "deep", "x.txt"), failed)
	assert.True(t, exists(failed))
	assert.False(t, exists(filepath.Join(root, "stage")))
}

func TestForceInheritedByRecursion(t *testing.T) {
	e := newEngine(false)
	root := t.TempDir()
	build(t, root, map[string]string{
		"src/a/b/c/deep.txt": "deep",
		"dst/a/b/c":          "blocking file",
	})

	restore := e.OverrideForce(true)
	res, err := e.Merge(filepath.Join(root, "src"), filepath.Join(root, "dst"))
	restore()

	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, "deep", snapshot(t, filepath.Join(root, "dst"))["a/b/c/deep.txt"])
	assert.False(t, e.ForceDefault())
}
