package agent

import (
	"qsweeper/engine"
	"qsweeper/game"

	"golang.org/x/exp/rand"
)

type randomPolicy struct {
	attempts int
	rng      *rand.Rand
}

// newRandomPolicy returns the baseline that reveals uniformly random tiles and ignores the table.
func newRandomPolicy(attempts int, rng *rand.Rand) *randomPolicy {
	return &randomPolicy{attempts: attempts, rng: rng}
}

func (p *randomPolicy) Begin() {}

// Next samples the whole board, skipping tiles already chosen this episode. It gives up after
// the configured number of attempts.
func (p *randomPolicy) Next(b *game.Board, ep *engine.Episode) (engine.Step, bool) {
	for attempt := 0; attempt < p.attempts; attempt++ {
		target := game.Coord{X: p.rng.Intn(b.Width()), Y: p.rng.Intn(b.Height())}
		if !ep.Visited[target] {
			return engine.Step{Action: -1, Target: target}, true
		}
	}
	return engine.Step{}, false
}

func (p *randomPolicy) Learn(step engine.Step, resp game.RevealResponse) {}

func (p *randomPolicy) End(ep *engine.Episode, outcome game.Outcome) {}
