package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"qsweeper/agent"
	"qsweeper/config"
	"qsweeper/experiments/metrics"
	"qsweeper/game"
	"qsweeper/manual"
	"qsweeper/qtable"
	"qsweeper/store"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Error().Err(err).Msg("qsweeper failed")
		os.Exit(1)
	}
}

func run(args []string) error {
	defaults := config.Default()

	fs := flag.NewFlagSet("qsweeper", flag.ContinueOnError)
	evaluate := fs.Bool("run", false, "Evaluate the trained value table")
	baseline := fs.Bool("rand", false, "Play the random baseline")
	play := fs.Bool("manual", false, "Play boards by hand in the terminal")
	configPath := fs.String("config", "", "JSON configuration file, flags override it")
	width := fs.Int("width", defaults.Width, "Board width")
	height := fs.Int("height", defaults.Height, "Board height")
	bombs := fs.Int("bombs", defaults.Bombs, "Bombs per board")
	episodes := fs.Int("episodes", defaults.Episodes, "Training episodes")
	tests := fs.Int("tests", defaults.Tests, "Evaluation and baseline episodes")
	seed := fs.Uint64("seed", defaults.Seed, "Random seed")
	modelPath := fs.String("model", defaults.ModelPath, "Where the value table is stored")
	storeKind := fs.String("store", string(defaults.Store), "Value table store: json or sqlite")
	recordsDir := fs.String("records", defaults.RecordsDir, "Directory for per-episode records, empty disables them")
	recordsFormat := fs.String("format", string(defaults.RecordsFormat), "Episode record format: csv or parquet")
	logLevel := fs.String("log-level", defaults.LogLevel, "Log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := defaults
	if *configPath != "" {
		if err := config.Load(*configPath, &cfg); err != nil {
			return err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "bombs":
			cfg.Bombs = *bombs
		case "episodes":
			cfg.Episodes = *episodes
		case "tests":
			cfg.Tests = *tests
		case "seed":
			cfg.Seed = *seed
		case "model":
			cfg.ModelPath = *modelPath
		case "store":
			cfg.Store = store.Kind(*storeKind)
		case "records":
			cfg.RecordsDir = *recordsDir
		case "format":
			cfg.RecordsFormat = metrics.Format(*recordsFormat)
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	if err := setupLogging(cfg.LogLevel); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	log.Info().Fields(cfg.Fields()).Msg("configuration loaded")

	rng := rand.New(rand.NewSource(cfg.Seed))
	newBoard := func() *game.Board {
		return game.NewBoard(cfg.Width, cfg.Height, cfg.Bombs, rng)
	}

	switch {
	case *play:
		return manual.Run(newBoard)
	case *baseline:
		a, collector := newAgent(cfg, newBoard, qtable.New(), rng)
		return report(cfg, metrics.Random, a.Random(), collector)
	case *evaluate:
		return runEvaluation(cfg, newBoard, rng)
	default:
		return runTraining(cfg, newBoard, rng)
	}
}

func setupLogging(level string) error {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	return nil
}

func newAgent(cfg config.Config, newBoard agent.BoardFactory, table *qtable.Table, rng *rand.Rand) (*agent.Agent, metrics.Collector) {
	collector := metrics.NewDummyCollector()
	if cfg.RecordsDir != "" {
		collector = metrics.NewCollector()
	}
	options := append(cfg.AgentOptions(), agent.WithMetrics(collector))
	return agent.NewAgent(newBoard, table, rng, options...), collector
}

func runTraining(cfg config.Config, newBoard agent.BoardFactory, rng *rand.Rand) error {
	s, err := store.Open(cfg.Store, cfg.ModelPath)
	if err != nil {
		return err
	}
	defer s.Close()

	table := qtable.New()
	snapshot, err := s.Load()
	switch {
	case errors.Is(err, store.ErrNotFound):
		log.Warn().Msgf("no value table at %s, training from scratch", cfg.ModelPath)
	case err != nil:
		return err
	default:
		if table, err = qtable.FromSnapshot(snapshot); err != nil {
			return err
		}
		log.Info().Msgf("resuming training with %d known states", table.Len())
	}

	a, collector := newAgent(cfg, newBoard, table, rng)
	summary, err := a.Train(s)
	if err != nil {
		return err
	}
	return report(cfg, metrics.Train, summary, collector)
}

func runEvaluation(cfg config.Config, newBoard agent.BoardFactory, rng *rand.Rand) error {
	s, err := store.Open(cfg.Store, cfg.ModelPath)
	if err != nil {
		return err
	}
	defer s.Close()

	snapshot, err := s.Load()
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("the model was not found at %s: %w", cfg.ModelPath, err)
	} else if err != nil {
		return err
	}
	table, err := qtable.FromSnapshot(snapshot)
	if err != nil {
		return err
	}

	a, collector := newAgent(cfg, newBoard, table, rng)
	return report(cfg, metrics.Evaluate, a.Evaluate(), collector)
}

// report logs the summary and exports the collected episodes when records are enabled.
func report(cfg config.Config, mode metrics.Mode, summary metrics.Summary, collector metrics.Collector) error {
	log.Info().
		Int("episodes", summary.Episodes).
		Int("wins", summary.Wins).
		Float64("win_rate", summary.WinRate).
		Float64("mean_cleared", summary.MeanCleared).
		Interface("step_histogram", summary.StepHistogram).
		Msgf("%s complete", mode)

	if cfg.RecordsDir == "" {
		return nil
	}
	w, err := metrics.NewWriter(cfg.RecordsDir, mode)
	if err != nil {
		return err
	}
	if err := w.WriteEpisodes(collector.Complete(), cfg.RecordsFormat); err != nil {
		return err
	}
	if err := w.WriteSummary(summary); err != nil {
		return err
	}
	log.Info().Msgf("episode records written to %s", w.Dir())
	return nil
}
