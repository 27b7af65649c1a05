package main

import (
	"os"
	"path/filepath"
	"qsweeper/store"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run("evaluation without a model fails", func(t *testing.T) {
		model := filepath.Join(t.TempDir(), "trained_model.json")
		err := run([]string{"-run", "-model", model, "-tests", "3", "-log-level", "error"})
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("training then evaluation", func(t *testing.T) {
		dir := t.TempDir()
		model := filepath.Join(dir, "trained_model.json")

		require.NoError(t, run([]string{"-episodes", "20", "-model", model, "-log-level", "error"}))
		_, err := os.Stat(model)
		require.NoError(t, err)

		records := filepath.Join(dir, "records")
		require.NoError(t, run([]string{"-run", "-tests", "10", "-model", model, "-records", records, "-log-level", "error"}))

		matches, err := filepath.Glob(filepath.Join(records, "eval", "*", "summary.json"))
		require.NoError(t, err)
		require.Len(t, matches, 1)
	})

	t.Run("sqlite store with parquet records", func(t *testing.T) {
		dir := t.TempDir()
		model := filepath.Join(dir, "qtable.db")
		records := filepath.Join(dir, "records")

		require.NoError(t, run([]string{"-episodes", "10", "-store", "sqlite", "-model", model,
			"-records", records, "-format", "parquet", "-log-level", "error"}))

		matches, err := filepath.Glob(filepath.Join(records, "train", "*", "episodes.parquet"))
		require.NoError(t, err)
		require.Len(t, matches, 1)
	})

	t.Run("random baseline on a custom board", func(t *testing.T) {
		require.NoError(t, run([]string{"-rand", "-tests", "10", "-width", "8", "-height", "3", "-bombs", "4", "-log-level", "error"}))
	})

	t.Run("invalid configuration is rejected", func(t *testing.T) {
		require.Error(t, run([]string{"-rand", "-bombs", "30", "-log-level", "error"}))
		require.Error(t, run([]string{"-store", "redis", "-log-level", "error"}))
		require.Error(t, run([]string{"-log-level", "loud"}))
	})
}
