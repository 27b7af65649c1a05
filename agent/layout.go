package agent

import (
	"qsweeper/game"
	"qsweeper/meta"
	"strconv"
	"strings"
)

// Layout enumerates the 5x5 neighborhood around a focal tile. The first 8 entries are the
// ring at distance 1 and double as the relative actions, the remaining 16 are the outer ring.
var Layout = [24]game.Coord{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -1, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},

	{X: -2, Y: -2}, {X: -1, Y: -2}, {X: 0, Y: -2}, {X: 1, Y: -2}, {X: 2, Y: -2},
	{X: -2, Y: -1}, {X: 2, Y: -1},
	{X: -2, Y: 0}, {X: 2, Y: 0},
	{X: -2, Y: 1}, {X: 2, Y: 1},
	{X: -2, Y: 2}, {X: -1, Y: 2}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2},
}

// Encode builds the state key of the tile at c: its adjacency count followed by one symbol per
// layout position, '1' revealed, '0' hidden, 'x' off the board.
func Encode(b *game.Board, c game.Coord) string {
	local := b.GetLocalState(c.X, c.Y, meta.LOCAL_SIZE)
	center := meta.LOCAL_SIZE / 2

	var sb strings.Builder
	sb.Grow(len(Layout) + 2)
	if focal := local[center][center]; focal != nil {
		sb.WriteString(strconv.Itoa(focal.AdjacentCount))
	} else {
		sb.WriteString("x")
	}

	for _, offset := range Layout {
		tile := local[center+offset.Y][center+offset.X]
		switch {
		case tile == nil:
			sb.WriteByte('x')
		case tile.IsRevealed:
			sb.WriteByte('1')
		default:
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Convert maps a relative action to the absolute coordinate it targets from c.
func Convert(c game.Coord, action int) game.Coord {
	offset := Layout[action]
	return c.Add(offset.X, offset.Y)
}
