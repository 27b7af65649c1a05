// meta/meta.go
package meta

// INITIAL_REVEAL_ATTEMPTS caps the search for a blank tile when a board opens.
const INITIAL_REVEAL_ATTEMPTS = 5

// MAX_MOVES caps an evaluation or random-baseline episode.
const MAX_MOVES = 200

// RANDOM_ATTEMPTS caps resampling of already visited coordinates by the random baseline.
const RANDOM_ATTEMPTS = 200

// NUM_TESTS defines the number of evaluation episodes.
const NUM_TESTS = 1000

// EPISODES defines the number of training episodes.
const EPISODES = 10_000_000

// LOCAL_SIZE is the side of the window encoded around a frontier tile.
const LOCAL_SIZE = 5

// MODEL_PATH is where the value table is persisted by default.
const MODEL_PATH = "trained_model.json"

// Default board, 5x5 with 5 bombs.
const (
	WIDTH  = 5
	HEIGHT = 5
	BOMBS  = 5
)
