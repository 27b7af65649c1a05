package agent

import (
	"fmt"
	"qsweeper/engine"
	"qsweeper/experiments/metrics"
	"qsweeper/game"
	"qsweeper/qtable"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// BoardFactory creates the fresh board of the next episode.
type BoardFactory func() *game.Board

// Saver persists the value table.
type Saver interface {
	Save(snapshot qtable.Snapshot) error
}

type Agent struct {
	config   Config
	table    *qtable.Table
	newBoard BoardFactory
	rng      *rand.Rand
	metrics  metrics.Collector
}

func NewAgent(newBoard BoardFactory, table *qtable.Table, rng *rand.Rand, options ...Option) *Agent {
	if newBoard == nil || table == nil || rng == nil {
		panic("agent needs a board factory, a value table and a random source")
	}
	a := &Agent{ // Default values
		config:   DefaultConfig(),
		table:    table,
		newBoard: newBoard,
		rng:      rng,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(a)
	}
	if a.config.SaveEvery <= 0 {
		a.config.SaveEvery = 1
	}
	if a.config.LogEvery <= 0 {
		a.config.LogEvery = DefaultConfig().LogEvery
	}
	return a
}

func (a *Agent) Config() Config {
	return a.config
}

func (a *Agent) Table() *qtable.Table {
	return a.table
}

// Train plays the configured number of learning episodes. The table is handed to saver every
// SaveEvery episodes; a failed save stops training.
func (a *Agent) Train(saver Saver) (metrics.Summary, error) {
	policy := newTrainingPolicy(&a.config, a.table, a.rng)
	return a.play(metrics.Train, a.config.Episodes, 0, policy, func(episode int) error {
		if saver == nil || episode%a.config.SaveEvery != 0 {
			return nil
		}
		if err := saver.Save(a.table.Snapshot()); err != nil {
			return fmt.Errorf("failed to save value table after episode %d: %w", episode, err)
		}
		return nil
	})
}

// Evaluate plays greedy episodes without touching the table.
func (a *Agent) Evaluate() metrics.Summary {
	policy := newEvaluationPolicy(a.table, a.rng)
	summary, _ := a.play(metrics.Evaluate, a.config.Tests, a.config.MaxMoves, policy, nil)
	return summary
}

// Random plays the uniformly random baseline.
func (a *Agent) Random() metrics.Summary {
	policy := newRandomPolicy(a.config.RandomAttempts, a.rng)
	summary, _ := a.play(metrics.Random, a.config.Tests, a.config.MaxMoves, policy, nil)
	return summary
}

func (a *Agent) play(mode metrics.Mode, episodes, maxMoves int, policy engine.Policy, afterEpisode func(episode int) error) (metrics.Summary, error) {
	a.metrics.Start(mode)
	summary := metrics.NewSummary(mode)

	log.Info().Msgf("%s: starting %d episodes", mode, episodes)
	for i := 1; i <= episodes; i++ {
		result := engine.Run(a.newBoard(), policy, maxMoves)

		metric := metrics.EpisodeMetric{
			Episode:   i,
			Mode:      mode,
			Outcome:   result.Outcome,
			Moves:     result.Moves,
			Cleared:   result.Cleared,
			Capped:    result.Capped,
			StartTime: result.StartTime,
			Duration:  result.Duration,
		}
		summary.Add(metric)
		a.metrics.Record(metric)

		if afterEpisode != nil {
			if err := afterEpisode(i); err != nil {
				return summary, err
			}
		}

		if i%a.config.LogEvery == 0 {
			log.Info().Msgf("%s: win count %d out of %d (%.2f%%), %d states known",
				mode, summary.Wins, summary.Episodes, 100*summary.WinRate, a.table.Len())
		}
	}

	log.Info().Msgf("%s: finished with win rate %.2f%%, mean cleared %.3f",
		mode, 100*summary.WinRate, summary.MeanCleared)
	return summary, nil
}

// selectState picks the frontier coordinate whose state has the highest total value. The first
// coordinate wins ties.
func selectState(b *game.Board, table *qtable.Table, frontier []game.Coord) (game.Coord, string) {
	selected := frontier[0]
	selectedKey := Encode(b, selected)
	selectedScore := table.Sum(selectedKey)
	for _, c := range frontier[1:] {
		key := Encode(b, c)
		if score := table.Sum(key); score > selectedScore {
			selected, selectedKey, selectedScore = c, key, score
		}
	}
	return selected, selectedKey
}
