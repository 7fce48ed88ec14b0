package fsys

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestKind(t *testing.T) {
	fs := NewOS()
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	writeFile(t, file, "a")

	assert.Equal(t, KindDir, fs.Kind(dir))
	assert.Equal(t, KindFile, fs.Kind(file))
	assert.Equal(t, KindMissing, fs.Kind(filepath.Join(dir, "nope")))
	assert.True(t, fs.Exists(file))
	assert.True(t, fs.IsFile(file))
	assert.False(t, fs.IsDir(file))
	assert.Equal(t, "dir", KindDir.String())
}

func TestIsSymlink(t *testing.T) {
	fs := NewOS()
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	link := filepath.Join(dir, "link")
	writeFile(t, file, "a")
	if err := os.Symlink(file, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	assert.True(t, fs.IsSymlink(link))
	assert.False(t, fs.IsSymlink(file))
	assert.True(t, fs.IsFile(link))
}

func TestMakeDir(t *testing.T) {
	fs := NewOS()
	dir := t.TempDir()

	t.Run("creates chain", func(t *testing.T) {
		created, err := fs.MakeDir(filepath.Join(dir, "x", "y", "z"), false)
		require.NoError(t, err)
		assert.True(t, created)
		assert.True(t, fs.IsDir(filepath.Join(dir, "x", "y", "z")))
	})

	t.Run("existing is not created", func(t *testing.T) {
		created, err := fs.MakeDir(dir, false)
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("blocking file without force", func(t *testing.T) {
		blocker := filepath.Join(dir, "blocked")
		writeFile(t, blocker, "data")

		_, err := fs.MakeDir(filepath.Join(blocker, "child"), false)
		assert.Error(t, err)
		assert.True(t, fs.IsFile(blocker))
	})

	t.Run("blocking file with force", func(t *testing.T) {
		blocker := filepath.Join(dir, "forced")
		writeFile(t, blocker, "data")

		created, err := fs.MakeDir(filepath.Join(blocker, "child"), true)
		require.NoError(t, err)
		assert.True(t, created)
		assert.True(t, fs.IsDir(filepath.Join(blocker, "child")))
	})

	t.Run("file at path with force", func(t *testing.T) {
		target := filepath.Join(dir, "file-at-target")
		writeFile(t, target, "data")

		created, err := fs.MakeDir(target, true)
		require.NoError(t, err)
		assert.True(t, created)
		assert.True(t, fs.IsDir(target))
	})
}

func TestMakeParents(t *testing.T) {
	fs := NewOS()
	dir := t.TempDir()

	created, err := fs.MakeParents(filepath.Join(dir, "p", "q", "file.txt"), false)
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, fs.IsDir(filepath.Join(dir, "p", "q")))
	assert.False(t, fs.Exists(filepath.Join(dir, "p", "q", "file.txt")))
}

func TestCopyFile(t *testing.T) {
	fs := NewOS()
	dir := t.TempDir()
	src := filepath.Join(dir, "src.sh")
	dst := filepath.Join(dir, "dst.sh")
	writeFile(t, src, "#!/bin/sh\n")
	require.NoError(t, os.Chmod(src, 0750))
	writeFile(t, dst, "old content that is longer")

	require.NoError(t, fs.CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\n", string(data))
	assert.False(t, fs.Exists(dst+".ferry.tmp"))
	assert.True(t, fs.IsFile(src))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0750), info.Mode().Perm())
}

func TestCopyFileRejectsDirectory(t *testing.T) {
	fs := NewOS()
	dir := t.TempDir()

	err := fs.CopyFile(dir, filepath.Join(t.TempDir(), "x"))
	assert.Error(t, err)
}

func TestMoveFile(t *testing.T) {
	fs := NewOS()
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")
	writeFile(t, src, "a")

	require.NoError(t, fs.MoveFile(src, dst))
	assert.False(t, fs.Exists(src))
	assert.True(t, fs.IsFile(dst))
}

func TestReadDirSorted(t *testing.T) {
	fs := NewOS()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b"), "")
	writeFile(t, filepath.Join(dir, "a"), "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "c"), 0755))

	entries, err := fs.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "a", entries[0].Name())
	assert.Equal(t, "b", entries[1].Name())
	assert.True(t, entries[2].IsDir())
}

func TestFType(t *testing.T) {
	fs := NewOS()
	dir := t.TempDir()
	file := filepath.Join(dir, "note.txt")
	writeFile(t, file, "plain text\n")

	ft, err := fs.FType(file)
	require.NoError(t, err)
	assert.Equal(t, KindFile, ft.Kind)
	assert.Contains(t, ft.MIME, "text/plain")

	ft, err = fs.FType(dir)
	require.NoError(t, err)
	assert.Equal(t, KindDir, ft.Kind)
	assert.Empty(t, ft.MIME)

	ft, err = fs.FType(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Equal(t, KindMissing, ft.Kind)
}

func TestUUIDNamer(t *testing.T) {
	n := UUIDNamer{}
	a, b := n.NewName(), n.NewName()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}
