package game

// Tile is a single cell of the board.
type Tile struct {
	AdjacentCount int  // Bombs in the 8-neighborhood, -1 until computed (stays -1 for bombs)
	IsBomb        bool // Fixed once the board is generated
	IsFlagged     bool
	IsRevealed    bool // Never reverts once set
}

func newTile() Tile {
	return Tile{AdjacentCount: -1}
}
