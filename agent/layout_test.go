package agent

import (
	"qsweeper/game"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, rows ...string) *game.Board {
	b, err := game.ParseBoard(rows...)
	require.NoError(t, err)
	return b
}

func TestLayout(t *testing.T) {
	t.Run("inner ring is at distance one and outer ring at distance two", func(t *testing.T) {
		seen := map[game.Coord]bool{}
		for i, offset := range Layout {
			distance := max(abs(offset.X), abs(offset.Y))
			if i < 8 {
				require.Equal(t, 1, distance)
			} else {
				require.Equal(t, 2, distance)
			}
			require.False(t, seen[offset], "Offset %v is listed twice", offset)
			seen[offset] = true
		}
	})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestEncode(t *testing.T) {
	t.Run("marks hidden, revealed and off-board positions", func(t *testing.T) {
		b := mustParse(t,
			"*..",
			"...",
			"...",
		)
		b.RevealTile(game.Coord{X: 1, Y: 0})

		key := Encode(b, game.Coord{X: 1, Y: 0})
		expected := "1" + "xxx00000" + "xxxxx" + "xx" + "xx" + "xx" + "x000x"
		require.Equal(t, expected, key)
	})

	t.Run("differs when a neighbor is revealed", func(t *testing.T) {
		b := mustParse(t,
			"*..",
			"...",
			"...",
		)
		b.RevealTile(game.Coord{X: 1, Y: 0})
		before := Encode(b, game.Coord{X: 1, Y: 0})
		require.Equal(t, before, Encode(b, game.Coord{X: 1, Y: 0}), "Encoding is deterministic")

		b.RevealTile(game.Coord{X: 0, Y: 1})
		after := Encode(b, game.Coord{X: 1, Y: 0})
		require.NotEqual(t, before, after)
		require.Equal(t, byte('1'), after[1+5])
	})

	t.Run("does not mutate the board", func(t *testing.T) {
		b := mustParse(t, "*..", "...")
		b.RevealTile(game.Coord{X: 1, Y: 0})
		rendered := b.String()
		states := b.GetPossibleStates()

		Encode(b, game.Coord{X: 1, Y: 0})

		require.Equal(t, rendered, b.String())
		require.Equal(t, states, b.GetPossibleStates())
	})
}

func TestConvert(t *testing.T) {
	t.Run("maps actions through the inner ring", func(t *testing.T) {
		c := game.Coord{X: 2, Y: 2}
		require.Equal(t, game.Coord{X: 1, Y: 1}, Convert(c, 0))
		require.Equal(t, game.Coord{X: 2, Y: 1}, Convert(c, 1))
		require.Equal(t, game.Coord{X: 3, Y: 2}, Convert(c, 4))
		require.Equal(t, game.Coord{X: 3, Y: 3}, Convert(c, 7))
	})
}
