package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"qsweeper/agent"
	"qsweeper/experiments/metrics"
	"qsweeper/meta"
	"qsweeper/store"
)

type LearningConfig struct {
	LearningRate       float64 `json:"learning_rate"`
	InitialTemperature float64 `json:"initial_temperature"`
	TemperatureDecay   float64 `json:"temperature_decay"`
	SuccessReward      float64 `json:"success_reward"`
	NothingPenalty     float64 `json:"nothing_penalty"`
	BombPenalty        float64 `json:"bomb_penalty"`
	WinBonus           float64 `json:"win_bonus"`
	LossPenalty        float64 `json:"loss_penalty"`
	TieSkipChance      float64 `json:"tie_skip_chance"`
}

type Config struct {
	Width          int            `json:"width"`
	Height         int            `json:"height"`
	Bombs          int            `json:"bombs"`
	Episodes       int            `json:"episodes"`
	Tests          int            `json:"tests"`
	MaxMoves       int            `json:"max_moves"`
	RandomAttempts int            `json:"random_attempts"`
	SaveEvery      int            `json:"save_every"`
	LogEvery       int            `json:"log_every"`
	Seed           uint64         `json:"seed"`
	ModelPath      string         `json:"model_path"`
	Store          store.Kind     `json:"store"`
	RecordsDir     string         `json:"records_dir"` // Empty disables episode records
	RecordsFormat  metrics.Format `json:"records_format"`
	LogLevel       string         `json:"log_level"`
	Learning       LearningConfig `json:"learning"`
}

func Default() Config {
	defaults := agent.DefaultConfig()
	return Config{
		Width:          meta.WIDTH,
		Height:         meta.HEIGHT,
		Bombs:          meta.BOMBS,
		Episodes:       defaults.Episodes,
		Tests:          defaults.Tests,
		MaxMoves:       defaults.MaxMoves,
		RandomAttempts: defaults.RandomAttempts,
		SaveEvery:      defaults.SaveEvery,
		LogEvery:       defaults.LogEvery,
		Seed:           1,
		ModelPath:      meta.MODEL_PATH,
		Store:          store.JSON,
		RecordsFormat:  metrics.CSV,
		LogLevel:       "info",
		Learning: LearningConfig{
			LearningRate:       defaults.LearningRate,
			InitialTemperature: defaults.InitialTemperature,
			TemperatureDecay:   defaults.TemperatureDecay,
			SuccessReward:      defaults.SuccessReward,
			NothingPenalty:     defaults.NothingPenalty,
			BombPenalty:        defaults.BombPenalty,
			WinBonus:           defaults.WinBonus,
			LossPenalty:        defaults.LossPenalty,
			TieSkipChance:      defaults.TieSkipChance,
		},
	}
}

// Load overlays the JSON file at path onto config. Fields missing from the file keep their value.
func Load(path string, config *Config) error {
	if b, err := os.ReadFile(path); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	} else if err := json.Unmarshal(b, config); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("board must be at least 1x1, got %dx%d", c.Width, c.Height))
	}
	if c.Bombs < 0 || c.Bombs > c.Width*c.Height {
		errs = append(errs, fmt.Errorf("cannot place %d bombs on a %dx%d board", c.Bombs, c.Width, c.Height))
	}
	if c.Episodes < 0 || c.Tests < 0 {
		errs = append(errs, fmt.Errorf("episodes and tests must not be negative"))
	}
	if c.MaxMoves <= 0 || c.RandomAttempts <= 0 || c.SaveEvery <= 0 || c.LogEvery <= 0 {
		errs = append(errs, fmt.Errorf("max_moves, random_attempts, save_every and log_every must be positive"))
	}
	if c.ModelPath == "" {
		errs = append(errs, fmt.Errorf("model_path is required"))
	}
	if c.Store != store.JSON && c.Store != store.SQLite {
		errs = append(errs, fmt.Errorf("unknown store %q", c.Store))
	}
	if c.RecordsFormat != metrics.CSV && c.RecordsFormat != metrics.Parquet {
		errs = append(errs, fmt.Errorf("unknown records format %q", c.RecordsFormat))
	}
	if c.Learning.LearningRate <= 0 {
		errs = append(errs, fmt.Errorf("learning_rate must be positive"))
	}
	if c.Learning.TemperatureDecay < 0 || c.Learning.TemperatureDecay > 1 {
		errs = append(errs, fmt.Errorf("temperature_decay must be within [0, 1]"))
	}
	if c.Learning.TieSkipChance < 0 || c.Learning.TieSkipChance > 1 {
		errs = append(errs, fmt.Errorf("tie_skip_chance must be within [0, 1]"))
	}
	return errors.Join(errs...)
}

// Fields flattens the configuration for structured logging.
func (c Config) Fields() map[string]any {
	return map[string]any{
		"width":          c.Width,
		"height":         c.Height,
		"bombs":          c.Bombs,
		"episodes":       c.Episodes,
		"tests":          c.Tests,
		"max_moves":      c.MaxMoves,
		"seed":           c.Seed,
		"model_path":     c.ModelPath,
		"store":          c.Store,
		"records_dir":    c.RecordsDir,
		"records_format": c.RecordsFormat,
		"learning_rate":  c.Learning.LearningRate,
		"temperature":    c.Learning.InitialTemperature,
	}
}

func (c Config) AgentConfig() agent.Config {
	return agent.Config{
		LearningRate:       c.Learning.LearningRate,
		InitialTemperature: c.Learning.InitialTemperature,
		TemperatureDecay:   c.Learning.TemperatureDecay,
		SuccessReward:      c.Learning.SuccessReward,
		NothingPenalty:     c.Learning.NothingPenalty,
		BombPenalty:        c.Learning.BombPenalty,
		WinBonus:           c.Learning.WinBonus,
		LossPenalty:        c.Learning.LossPenalty,
		TieSkipChance:      c.Learning.TieSkipChance,
		Episodes:           c.Episodes,
		Tests:              c.Tests,
		MaxMoves:           c.MaxMoves,
		RandomAttempts:     c.RandomAttempts,
		SaveEvery:          c.SaveEvery,
		LogEvery:           c.LogEvery,
	}
}

// AgentOptions converts the configuration into agent options.
func (c Config) AgentOptions() []agent.Option {
	return []agent.Option{agent.WithConfig(c.AgentConfig())}
}
