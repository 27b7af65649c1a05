package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"qsweeper/qtable"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleSnapshot() qtable.Snapshot {
	table := qtable.New()
	table.Adjust("1000000000000000000000000", 0, 0.5)
	table.Adjust("2x1x0xxxx01xxxxx0xx1xxxxx", 7, -0.375)
	return table.Snapshot()
}

func TestFileStore(t *testing.T) {
	t.Run("missing file is not found", func(t *testing.T) {
		s := NewFileStore(filepath.Join(t.TempDir(), "trained_model.json"))
		_, err := s.Load()
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("round trips a snapshot", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "models", "trained_model.json")
		s := NewFileStore(path)
		require.NoError(t, s.Save(sampleSnapshot()))

		loaded, err := s.Load()
		require.NoError(t, err)
		require.Equal(t, sampleSnapshot(), loaded)

		_, err = os.Stat(path + ".tmp")
		require.True(t, os.IsNotExist(err))
	})

	t.Run("reads the action keyed json format", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "trained_model.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"3101":{"0":0.5,"7":-1}}`), 0644))

		loaded, err := NewFileStore(path).Load()
		require.NoError(t, err)
		require.Equal(t, qtable.Snapshot{"3101": {0: 0.5, 7: -1}}, loaded)
	})

	t.Run("corrupt file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "trained_model.json")
		require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))

		_, err := NewFileStore(path).Load()
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrNotFound)
	})
}

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "qtable.db"), "qtable")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore(t *testing.T) {
	t.Run("rejects names that are not letters", func(t *testing.T) {
		db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "bad.db"))
		require.NoError(t, err)
		defer db.Close()

		_, err = NewSQLiteStore(db, "qtable; DROP TABLE x")
		require.ErrorIs(t, err, ErrBadName)
		_, err = NewSQLiteStore(db, "")
		require.ErrorIs(t, err, ErrBadName)
	})

	t.Run("empty store is not found", func(t *testing.T) {
		_, err := setupSQLiteStore(t).Load()
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("round trips a snapshot", func(t *testing.T) {
		s := setupSQLiteStore(t)
		require.NoError(t, s.Save(sampleSnapshot()))

		loaded, err := s.Load()
		require.NoError(t, err)
		require.Equal(t, sampleSnapshot(), loaded)
	})

	t.Run("save overwrites the previous table", func(t *testing.T) {
		s := setupSQLiteStore(t)
		require.NoError(t, s.Save(sampleSnapshot()))
		require.NoError(t, s.Save(qtable.Snapshot{"k": {1: 1}}))

		loaded, err := s.Load()
		require.NoError(t, err)
		require.Equal(t, qtable.Snapshot{"k": {1: 1}}, loaded)
	})
}

func TestOpen(t *testing.T) {
	t.Run("opens both kinds", func(t *testing.T) {
		dir := t.TempDir()

		s, err := Open(JSON, filepath.Join(dir, "model.json"))
		require.NoError(t, err)
		require.IsType(t, &FileStore{}, s)
		require.NoError(t, s.Close())

		s, err = Open(SQLite, filepath.Join(dir, "model.db"))
		require.NoError(t, err)
		require.IsType(t, &SQLiteStore{}, s)
		require.NoError(t, s.Close())
	})

	t.Run("unknown kind is an error", func(t *testing.T) {
		_, err := Open(Kind("yaml"), "x")
		require.Error(t, err)
	})
}
