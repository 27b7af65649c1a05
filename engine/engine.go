package engine

import (
	"qsweeper/game"
	"time"
)

// Step is one move chosen by a policy: the encoded state it was taken from, the relative
// action and the absolute tile it targets.
type Step struct {
	Key    string
	Action int
	Target game.Coord
}

// Episode is the per-episode bookkeeping shared between the runner and the policy.
type Episode struct {
	Visited map[game.Coord]bool // Targets revealed by the policy this episode
	History []Step
	Moves   int
}

func NewEpisode() *Episode {
	return &Episode{
		Visited: make(map[game.Coord]bool),
		History: []Step{},
	}
}

type Policy interface {
	// Begin resets per-episode policy state
	Begin()
	// Next picks the next move, false ends the episode
	Next(b *game.Board, ep *Episode) (Step, bool)
	// Learn observes the result of the move just played
	Learn(step Step, resp game.RevealResponse)
	// End is called once the episode terminated
	End(ep *Episode, outcome game.Outcome)
}

type Result struct {
	Outcome   game.Outcome
	Moves     int
	Cleared   float64
	Capped    bool // Stopped by the move cap rather than by the board
	StartTime time.Time
	Duration  time.Duration
	History   []Step
}
