package repository

import (
	"errors"
	"ferry/internal/db"
	"ferry/internal/model"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) {
	t.Helper()
	require.NoError(t, db.Init(filepath.Join(t.TempDir(), "test.db")))
}

func TestHistorySaveAndStats(t *testing.T) {
	setupDB(t)
	repo := NewHistoryRepository()

	require.NoError(t, repo.Save(model.OpClone, "a", "b", 0, nil))
	require.NoError(t, repo.Save(model.OpMove, "c", "d", 2, nil))
	require.NoError(t, repo.Save(model.OpMerge, "e", "f", 0, errors.New("boom")))

	stats, err := repo.GetStats()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Success)
	assert.Equal(t, int64(2), stats.Failed)

	recent, err := repo.GetRecent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, model.OpMerge, recent[0].Operation)
	assert.Equal(t, model.StatusFailed, recent[0].Status)
	assert.Equal(t, "boom", recent[0].ErrMsg)

	failed, err := repo.GetFailed()
	require.NoError(t, err)
	require.Len(t, failed, 2)
	assert.Equal(t, model.StatusPartial, failed[1].Status)
	assert.Equal(t, 2, failed[1].Failed)
}

func TestMarkAddListClear(t *testing.T) {
	setupDB(t)
	repo := NewMarkRepository()

	require.NoError(t, repo.Add(model.MarkCut, "/x", "/y"))
	require.NoError(t, repo.Add(model.MarkCopy, "/z"))
	require.NoError(t, repo.Add(model.MarkCopy))

	marks, err := repo.List()
	require.NoError(t, err)
	require.Len(t, marks, 3)
	assert.Equal(t, "/x", marks[0].Path)
	assert.Equal(t, model.MarkCut, marks[1].Kind)
	assert.Equal(t, model.MarkCopy, marks[2].Kind)

	require.NoError(t, repo.Clear())
	marks, err = repo.List()
	require.NoError(t, err)
	assert.Empty(t, marks)
}
