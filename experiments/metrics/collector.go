package metrics

import (
	"qsweeper/game"
	"time"
)

// Mode names the kind of run an episode belongs to.
type Mode string

const (
	Train    Mode = "train"
	Evaluate Mode = "eval"
	Random   Mode = "random"
)

type EpisodeMetric struct {
	Episode   int
	Mode      Mode
	Outcome   game.Outcome
	Moves     int
	Cleared   float64 // Fraction of non-bomb tiles revealed at the end
	Capped    bool    // Stopped by the move cap
	StartTime time.Time
	Duration  time.Duration
}

type Collector interface {
	Start(mode Mode)
	Record(metric EpisodeMetric)
	Complete() []EpisodeMetric
}

type collector struct {
	mode    Mode
	records []EpisodeMetric
}

func NewCollector() Collector {
	return &collector{}
}

// Start discards the records of the previous run.
func (m *collector) Start(mode Mode) {
	m.mode = mode
	m.records = []EpisodeMetric{}
}

func (m *collector) Record(metric EpisodeMetric) {
	if metric.Mode == "" {
		metric.Mode = m.mode
	}
	m.records = append(m.records, metric)
}

func (m *collector) Complete() []EpisodeMetric {
	return m.records
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(mode Mode)             {}
func (m *dummyCollector) Record(metric EpisodeMetric) {}
func (m *dummyCollector) Complete() []EpisodeMetric   { return nil }
