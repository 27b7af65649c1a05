package game

import (
	"fmt"
	"strings"
)

// String dumps the grid one row per line: [P] flagged, [ ] hidden, [*] bomb, [n] count.
func (b *Board) String() string {
	var sb strings.Builder
	for _, row := range b.tiles {
		for _, tile := range row {
			sb.WriteString(tile.Symbol())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Symbol renders a single tile the way the board dump shows it.
func (t Tile) Symbol() string {
	switch {
	case t.IsFlagged:
		return "[P]"
	case !t.IsRevealed:
		return "[ ]"
	case t.IsBomb:
		return "[*]"
	default:
		return fmt.Sprintf("[%d]", t.AdjacentCount)
	}
}
