package agent

import (
	"qsweeper/engine"
	"qsweeper/game"
	"qsweeper/qtable"

	"golang.org/x/exp/rand"
)

type trainingPolicy struct {
	config      *Config
	table       *qtable.Table
	rng         *rand.Rand
	temperature float64
}

// newTrainingPolicy returns the exploring policy that updates the table after every move.
func newTrainingPolicy(config *Config, table *qtable.Table, rng *rand.Rand) *trainingPolicy {
	return &trainingPolicy{config: config, table: table, rng: rng}
}

func (p *trainingPolicy) Begin() {
	p.temperature = p.config.InitialTemperature
}

func (p *trainingPolicy) Next(b *game.Board, ep *engine.Episode) (engine.Step, bool) {
	frontier := b.GetPossibleStates()
	if len(frontier) == 0 {
		return engine.Step{}, false
	}
	focus, key := selectState(b, p.table, frontier)
	row := p.table.Insert(key)

	best, bestValue := 0, row[0]
	for action, value := range row {
		if value+p.temperature*value < bestValue {
			continue
		}
		// Random tie-break towards later actions
		if value == bestValue && p.rng.Float64() < p.config.TieSkipChance {
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

func (p *trainingPolicy) Learn(step engine.Step, resp game.RevealResponse) {
	switch resp {
	case game.Success:
		p.table.Adjust(step.Key, step.Action, p.config.LearningRate*p.config.SuccessReward)
	case game.Nothing:
		p.table.Adjust(step.Key, step.Action, -p.config.LearningRate*p.config.NothingPenalty)
	case game.Bomb:
		p.table.Adjust(step.Key, step.Action, -p.config.LearningRate*p.config.BombPenalty)
	}
	p.temperature -= p.temperature * p.config.TemperatureDecay
}

// End applies the flat outcome modifier to every move of the episode, once per occurrence.
func (p *trainingPolicy) End(ep *engine.Episode, outcome game.Outcome) {
	var modifier float64
	switch outcome {
	case game.Win:
		modifier = p.config.WinBonus
	case game.Loss:
		modifier = -p.config.LossPenalty
	default:
		return
	}
	for _, step := range ep.History {
		p.table.Adjust(step.Key, step.Action, modifier)
	}
}
