package qtable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	t.Run("lookup does not insert", func(t *testing.T) {
		table := New()
		_, ok := table.Lookup("3101")
		require.False(t, ok)
		require.Equal(t, 0, table.Len())
	})

	t.Run("insert creates a zeroed row once", func(t *testing.T) {
		table := New()
		require.Equal(t, Row{}, table.Insert("1xx0"))

		table.Adjust("1xx0", 2, 0.5)
		row := table.Insert("1xx0")
		require.Equal(t, 0.5, row[2], "Insert must not reset an existing row")
		require.Equal(t, 1, table.Len())
	})

	t.Run("adjust inserts on demand and accumulates", func(t *testing.T) {
		table := New()
		table.Adjust("2", 7, 0.5)
		table.Adjust("2", 7, -0.375)
		table.Adjust("2", 0, 0.1)

		row, ok := table.Lookup("2")
		require.True(t, ok)
		require.InDelta(t, 0.125, row[7], 1e-9)
		require.InDelta(t, 0.225, table.Sum("2"), 1e-9)
	})

	t.Run("adjust panics on invalid action", func(t *testing.T) {
		table := New()
		require.Panics(t, func() { table.Adjust("k", 8, 1) })
		require.Panics(t, func() { table.Adjust("k", -1, 1) })
	})

	t.Run("sum of unseen key is zero", func(t *testing.T) {
		require.Equal(t, 0.0, New().Sum("missing"))
	})

	t.Run("lookup returns a copy", func(t *testing.T) {
		table := New()
		table.Adjust("k", 1, 1)
		row, _ := table.Lookup("k")
		row[1] = 42
		require.Equal(t, 1.0, table.Sum("k"))
	})

	t.Run("keys are sorted", func(t *testing.T) {
		table := New()
		table.Insert("b")
		table.Insert("a")
		table.Insert("c")
		require.Equal(t, []string{"a", "b", "c"}, table.Keys())
	})
}

func TestSnapshot(t *testing.T) {
	t.Run("snapshot holds all eight actions", func(t *testing.T) {
		table := New()
		table.Adjust("k", 3, -0.5)

		snapshot := table.Snapshot()
		require.Len(t, snapshot["k"], Actions)
		require.Equal(t, -0.5, snapshot["k"][3])
		require.Equal(t, 0.0, snapshot["k"][0])
	})

	t.Run("rebuilds a table and fills missing actions", func(t *testing.T) {
		table, err := FromSnapshot(Snapshot{"k": {1: 0.25, 6: -1}})
		require.NoError(t, err)

		row, ok := table.Lookup("k")
		require.True(t, ok)
		require.Equal(t, Row{0, 0.25, 0, 0, 0, 0, -1, 0}, row)
	})

	t.Run("rejects out of range actions", func(t *testing.T) {
		_, err := FromSnapshot(Snapshot{"k": {8: 1}})
		require.Error(t, err)
	})

	t.Run("snapshot does not alias the table", func(t *testing.T) {
		table := New()
		table.Adjust("k", 0, 1)
		snapshot := table.Snapshot()
		snapshot["k"][0] = 5

		require.Equal(t, 1.0, table.Sum("k"))
	})
}
