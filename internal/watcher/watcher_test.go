package watcher

import (
	"ferry/internal/model"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWatcher(t *testing.T, ignoreList []string) (*Watcher, string) {
	t.Helper()
	root := t.TempDir()
	w, err := New(root, ignoreList, 100)
	require.NoError(t, err)
	return w, root
}

// next waits for the next event and fails the test if none arrives.
func next(t *testing.T, w *Watcher) model.FileEvent {
	t.Helper()
	select {
	case e, ok := <-w.Events():
		require.True(t, ok, "event channel closed")
		return e
	case <-time.After(5 * time.Second):
		t.Fatal("no event")
		return model.FileEvent{}
	}
}

func TestNewRequiresDirectory(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	_, err := New(file, nil, 1)
	assert.Error(t, err)

	_, err = New(filepath.Join(root, "missing"), nil, 1)
	assert.Error(t, err)
}

func TestEntry(t *testing.T) {
	w, root := newWatcher(t, nil)

	entry, ok := w.entry(filepath.Join(root, "album", "disc1", "track.mp3"))
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(root, "album"), entry)

	entry, ok = w.entry(filepath.Join(root, "single.txt"))
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(root, "single.txt"), entry)

	_, ok = w.entry(root)
	assert.False(t, ok)

	_, ok = w.entry(filepath.Dir(root))
	assert.False(t, ok)
}

func TestIgnoredIsRelativeToRoot(t *testing.T) {
	w, root := newWatcher(t, []string{".git", "*.tmp"})

	assert.True(t, w.ignored(filepath.Join(root, ".git", "HEAD")))
	assert.True(t, w.ignored(filepath.Join(root, "album", "part.tmp")))
	assert.False(t, w.ignored(filepath.Join(root, "album", "track.mp3")))
	assert.True(t, w.ignored(filepath.Dir(root)))
}

func TestStartReportsExistingEntries(t *testing.T) {
	w, root := newWatcher(t, []string{"*.tmp"})
	require.NoError(t, os.MkdirAll(filepath.Join(root, "album", "disc1"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "note.txt"), []byte("n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "scratch.tmp"), []byte("t"), 0644))

	require.NoError(t, w.Start())
	defer w.Stop()

	first := next(t, w)
	second := next(t, w)
	assert.Equal(t, model.EventCreate, first.Type)
	assert.Equal(t, filepath.Join(root, "album"), first.Path)
	assert.Equal(t, filepath.Join(root, "note.txt"), second.Path)
}

func TestEventsAreKeyedByEntry(t *testing.T) {
	w, root := newWatcher(t, []string{"*.tmp"})
	require.NoError(t, os.MkdirAll(filepath.Join(root, "album"), 0755))

	require.NoError(t, w.Start())
	defer w.Stop()
	assert.Equal(t, filepath.Join(root, "album"), next(t, w).Path)

	require.NoError(t, os.WriteFile(filepath.Join(root, "album", "part.tmp"), []byte("t"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "album", "track.mp3"), []byte("x"), 0644))

	e := next(t, w)
	assert.Equal(t, filepath.Join(root, "album"), e.Path)
}

func TestNewFoldersAreWatched(t *testing.T) {
	w, root := newWatcher(t, nil)
	require.NoError(t, w.Start())
	defer w.Stop()

	dir := filepath.Join(root, "drop")
	require.NoError(t, os.Mkdir(dir, 0755))
	assert.Equal(t, dir, next(t, w).Path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "late.txt"), []byte("x"), 0644))
	assert.Equal(t, dir, next(t, w).Path)
}
