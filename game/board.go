package game

import (
	"fmt"
	"qsweeper/meta"
	"qsweeper/utils"

	"golang.org/x/exp/rand"
)

// Board is a single Minesweeper grid. Tiles are stored row-major: tiles[y][x].
type Board struct {
	width           int
	height          int
	tiles           [][]Tile
	bombCount       int
	displayCount    int     // Bombs minus flags placed on bombs
	unrevealedCount int     // Non-bomb reveals decrement this, bomb reveals do not
	frontier        []Coord // Revealed non-zero tiles with at least one hidden neighbor, in insertion order
}

// NewBoard generates a board with randomly placed bombs and performs the initial reveal.
func NewBoard(width, height, bombCount int, rng *rand.Rand) *Board {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("board dimensions must be positive, got %dx%d", width, height))
	}
	if bombCount < 0 || bombCount > width*height {
		panic(fmt.Sprintf("cannot place %d bombs on a %dx%d board", bombCount, width, height))
	}

	b := newEmptyBoard(width, height, bombCount)
	b.populate(rng)
	b.setAdjacencies()
	b.revealInit(rng)
	return b
}

// ParseBoard builds a board from rows of '*' (bomb) and '.' (safe) without the initial reveal.
func ParseBoard(rows ...string) (*Board, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("empty board layout")
	}
	width := len(rows[0])
	bombs := 0
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d tiles, expected %d", y, len(row), width)
		}
		for x, ch := range row {
			switch ch {
			case '*':
				bombs++
			case '.':
			default:
				return nil, fmt.Errorf("unexpected tile %q at (%d,%d)", ch, x, y)
			}
		}
	}

	b := newEmptyBoard(width, len(rows), bombs)
	for y, row := range rows {
		for x, ch := range row {
			b.tiles[y][x].IsBomb = ch == '*'
		}
	}
	b.setAdjacencies()
	return b, nil
}

func newEmptyBoard(width, height, bombCount int) *Board {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = newTile()
		}
	}
	return &Board{
		width:           width,
		height:          height,
		tiles:           tiles,
		bombCount:       bombCount,
		displayCount:    bombCount,
		unrevealedCount: width * height,
		frontier:        []Coord{},
	}
}

// populate places bombs at distinct uniformly random coordinates, resampling on collision.
func (b *Board) populate(rng *rand.Rand) {
	for placed := 0; placed < b.bombCount; {
		x := rng.Intn(b.width)
		y := rng.Intn(b.height)
		if b.tiles[y][x].IsBomb {
			continue
		}
		b.tiles[y][x].IsBomb = true
		placed++
	}
}

func (b *Board) setAdjacencies() {
	for y := range b.tiles {
		for x := range b.tiles[y] {
			tile := &b.tiles[y][x]
			if tile.IsBomb {
				continue
			}
			tile.AdjacentCount = 0
			for _, n := range b.neighbors(Coord{X: x, Y: y}) {
				if b.tiles[n.Y][n.X].IsBomb {
					tile.AdjacentCount++
				}
			}
		}
	}
}

// revealInit looks for a blank tile to open the game with. After the attempt cap the
// last sampled tile is revealed regardless of what it is.
func (b *Board) revealInit(rng *rand.Rand) {
	var c Coord
	for attempt := 0; attempt < meta.INITIAL_REVEAL_ATTEMPTS; attempt++ {
		c = Coord{X: rng.Intn(b.width), Y: rng.Intn(b.height)}
		tile := b.tiles[c.Y][c.X]
		if !tile.IsBomb && tile.AdjacentCount == 0 {
			break
		}
	}
	b.RevealTile(c)
}

func (b *Board) Width() int           { return b.width }
func (b *Board) Height() int          { return b.height }
func (b *Board) BombCount() int       { return b.bombCount }
func (b *Board) DisplayCount() int    { return b.displayCount }
func (b *Board) UnrevealedCount() int { return b.unrevealedCount }

// Tile returns a copy of the tile at c.
func (b *Board) Tile(c Coord) (Tile, bool) {
	if !b.ValidateCoordinates(c) {
		return Tile{}, false
	}
	return b.tiles[c.Y][c.X], true
}

// ValidateCoordinates reports whether c lies on the board.
func (b *Board) ValidateCoordinates(c Coord) bool {
	return c.X >= 0 && c.X < b.width && c.Y >= 0 && c.Y < b.height
}

// neighbors returns the in-bounds coordinates at Chebyshev distance 1 from c.
func (b *Board) neighbors(c Coord) []Coord {
	result := make([]Coord, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if n := c.Add(dx, dy); b.ValidateCoordinates(n) {
				result = append(result, n)
			}
		}
	}
	return result
}

// RevealTile opens the tile at c. Revealing a zero tile opens its whole connected
// zero region plus the bordering numbered tiles.
func (b *Board) RevealTile(c Coord) RevealResponse {
	if !b.ValidateCoordinates(c) {
		return Nothing
	}
	tile := &b.tiles[c.Y][c.X]
	if tile.IsFlagged || tile.IsRevealed {
		return Nothing
	}

	tile.IsRevealed = true
	if tile.IsBomb {
		b.refreshPossibleStates([]Coord{c})
		return Bomb
	}
	b.unrevealedCount--

	revealed := []Coord{c}
	pending := []Coord{}
	if tile.AdjacentCount == 0 {
		pending = append(pending, c)
	} else {
		b.addPossibleState(c)
	}

	for len(pending) > 0 {
		current := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		for _, n := range b.neighbors(current) {
			neighbor := &b.tiles[n.Y][n.X]
			if neighbor.IsRevealed || neighbor.IsFlagged || neighbor.IsBomb {
				continue
			}
			neighbor.IsRevealed = true
			b.unrevealedCount--
			revealed = append(revealed, n)

			if neighbor.AdjacentCount == 0 {
				pending = append(pending, n)
			} else {
				b.addPossibleState(n)
			}
		}
	}

	b.refreshPossibleStates(revealed)
	return Success
}

// FlagTile toggles the flag on a hidden tile. It returns false if the tile is already revealed.
func (b *Board) FlagTile(c Coord) bool {
	if !b.ValidateCoordinates(c) {
		return false
	}
	tile := &b.tiles[c.Y][c.X]
	if tile.IsRevealed {
		return false
	}

	tile.IsFlagged = !tile.IsFlagged
	if tile.IsBomb {
		if tile.IsFlagged {
			b.displayCount--
		} else {
			b.displayCount++
		}
	}
	return true
}

// CheckWinState reports whether every non-bomb tile has been revealed.
func (b *Board) CheckWinState() bool {
	return b.displayCount == b.bombCount && (b.bombCount == 0 || b.unrevealedCount == b.bombCount)
}

// GetPossibleStates returns a copy of the frontier.
func (b *Board) GetPossibleStates() []Coord {
	states := make([]Coord, len(b.frontier))
	copy(states, b.frontier)
	return states
}

func (b *Board) addPossibleState(c Coord) {
	b.frontier = utils.AppendUnique(b.frontier, c)
}

func (b *Board) removePossibleState(c Coord) {
	b.frontier = utils.Remove(b.frontier, c)
}

// UpdatePossibleState drops c from the frontier once all of its neighbors are revealed.
func (b *Board) UpdatePossibleState(c Coord) {
	for _, n := range b.neighbors(c) {
		if !b.tiles[n.Y][n.X].IsRevealed {
			return
		}
	}
	b.removePossibleState(c)
}

// refreshPossibleStates re-derives frontier membership around freshly revealed tiles.
func (b *Board) refreshPossibleStates(revealed []Coord) {
	seen := make(map[Coord]bool, len(revealed)*9)
	for _, c := range revealed {
		for _, n := range append(b.neighbors(c), c) {
			if seen[n] {
				continue
			}
			seen[n] = true
			b.UpdatePossibleState(n)
		}
	}
}

// GetLocalState returns the size x size window of tiles centered on (x, y).
// Cells outside the board are nil.
func (b *Board) GetLocalState(x, y, size int) [][]*Tile {
	state := make([][]*Tile, size)
	offset := size / 2
	for i := 0; i < size; i++ {
		row := make([]*Tile, size)
		for j := 0; j < size; j++ {
			c := Coord{X: x + j - offset, Y: y + i - offset}
			if b.ValidateCoordinates(c) {
				row[j] = &b.tiles[c.Y][c.X]
			}
		}
		state[i] = row
	}
	return state
}

// GetPercentageCleared returns the fraction of non-bomb tiles that have been revealed.
func (b *Board) GetPercentageCleared() float64 {
	total := b.width * b.height
	safe := total - b.bombCount
	if safe == 0 {
		return 1
	}
	return float64(total-b.unrevealedCount) / float64(safe)
}
