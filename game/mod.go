package game

// RevealResponse is the result of revealing a single tile.
type RevealResponse int

const (
	Bomb    RevealResponse = -1
	Nothing RevealResponse = 0
	Success RevealResponse = 1
)

func (r RevealResponse) String() string {
	switch r {
	case Bomb:
		return "Bomb"
	case Nothing:
		return "Nothing"
	case Success:
		return "Success"
	}
	return "Unknown"
}

// Outcome is how an episode ended.
type Outcome int

const (
	Loss      Outcome = iota // 0
	Win                      // 1
	Undefined                // 2
)

func (o Outcome) String() string {
	switch o {
	case Loss:
		return "Loss"
	case Win:
		return "Win"
	case Undefined:
		return "Undefined"
	}
	return "Unknown"
}

// Coord addresses a tile. X is the column and Y the row.
type Coord struct {
	X int
	Y int
}

// Add returns c shifted by the given offsets.
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}
