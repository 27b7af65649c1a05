package agent

import (
	"qsweeper/engine"
	"qsweeper/game"
	"qsweeper/qtable"

	"golang.org/x/exp/rand"
)

type evaluationPolicy struct {
	table *qtable.Table
	rng   *rand.Rand
}

// newEvaluationPolicy returns the greedy policy used to measure a trained table. It never
// writes to the table.
func newEvaluationPolicy(table *qtable.Table, rng *rand.Rand) *evaluationPolicy {
	return &evaluationPolicy{table: table, rng: rng}
}

func (p *evaluationPolicy) Begin() {}

func (p *evaluationPolicy) Next(b *game.Board, ep *engine.Episode) (engine.Step, bool) {
	frontier := b.GetPossibleStates()
	if len(frontier) == 0 {
		return engine.Step{}, false
	}
	focus, key := selectState(b, p.table, frontier)

	row, ok := p.table.Lookup(key)
	if !ok {
		action := p.rng.Intn(qtable.Actions)
		return engine.Step{Key: key, Action: action, Target: Convert(focus, action)}, true
	}

	best, bestValue := 0, row[0]
	for action, value := range row {
		if value < bestValue {
			continue
		}
		target := Convert(focus, action)
		if !b.ValidateCoordinates(target) || ep.Visited[target] {
			continue
		}
		best, bestValue = action, value
	}
	return engine.Step{Key: key, Action: best, Target: Convert(focus, best)}, true
}

func (p *evaluationPolicy) Learn(step engine.Step, resp game.RevealResponse) {}

func (p *evaluationPolicy) End(ep *engine.Episode, outcome game.Outcome) {}
