package agent

import (
	"qsweeper/experiments/metrics"
	"qsweeper/meta"
)

type Option func(a *Agent)

// Config holds the learning parameters of an agent.
type Config struct {
	LearningRate       float64
	InitialTemperature float64
	TemperatureDecay   float64 // Fraction of the temperature removed after every move
	SuccessReward      float64
	NothingPenalty     float64
	BombPenalty        float64
	WinBonus           float64 // Added to every move of a won episode
	LossPenalty        float64 // Subtracted from every move of a lost episode
	TieSkipChance      float64
	Episodes           int
	Tests              int
	MaxMoves           int // Move cap of evaluation and random episodes
	RandomAttempts     int
	SaveEvery          int // Persist the table every n training episodes
	LogEvery           int
}

func DefaultConfig() Config {
	return Config{
		LearningRate:       0.5,
		InitialTemperature: 0.5,
		TemperatureDecay:   0.25,
		SuccessReward:      1,
		NothingPenalty:     0.75,
		BombPenalty:        1,
		WinBonus:           0.1,
		LossPenalty:        0.1,
		TieSkipChance:      0.5,
		Episodes:           meta.EPISODES,
		Tests:              meta.NUM_TESTS,
		MaxMoves:           meta.MAX_MOVES,
		RandomAttempts:     meta.RANDOM_ATTEMPTS,
		SaveEvery:          1,
		LogEvery:           1000,
	}
}

func WithConfig(config Config) Option {
	return func(a *Agent) {
		a.config = config
	}
}

func WithLearningRate(rate float64) Option {
	return func(a *Agent) {
		if rate > 0 {
			a.config.LearningRate = rate
		}
	}
}

func WithTemperature(initial, decay float64) Option {
	return func(a *Agent) {
		if initial >= 0 && decay >= 0 && decay <= 1 {
			a.config.InitialTemperature = initial
			a.config.TemperatureDecay = decay
		}
	}
}

func WithRewards(success, nothing, bomb float64) Option {
	return func(a *Agent) {
		a.config.SuccessReward = success
		a.config.NothingPenalty = nothing
		a.config.BombPenalty = bomb
	}
}

func WithOutcomeModifiers(win, loss float64) Option {
	return func(a *Agent) {
		a.config.WinBonus = win
		a.config.LossPenalty = loss
	}
}

func WithTieSkipChance(chance float64) Option {
	return func(a *Agent) {
		if chance >= 0 && chance <= 1 {
			a.config.TieSkipChance = chance
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(a *Agent) {
		if episodes >= 0 {
			a.config.Episodes = episodes
		}
	}
}

func WithTests(tests int) Option {
	return func(a *Agent) {
		if tests >= 0 {
			a.config.Tests = tests
		}
	}
}

func WithMaxMoves(moves int) Option {
	return func(a *Agent) {
		if moves > 0 {
			a.config.MaxMoves = moves
		}
	}
}

func WithRandomAttempts(attempts int) Option {
	return func(a *Agent) {
		if attempts > 0 {
			a.config.RandomAttempts = attempts
		}
	}
}

func WithSaveEvery(episodes int) Option {
	return func(a *Agent) {
		if episodes > 0 {
			a.config.SaveEvery = episodes
		}
	}
}

func WithLogEvery(episodes int) Option {
	return func(a *Agent) {
		if episodes > 0 {
			a.config.LogEvery = episodes
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(a *Agent) {
		if collector != nil {
			a.metrics = collector
		}
	}
}
