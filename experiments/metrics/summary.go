package metrics

import "qsweeper/game"

// Summary aggregates the episodes of one run.
type Summary struct {
	Mode          Mode        `json:"mode"`
	Episodes      int         `json:"episodes"`
	Wins          int         `json:"wins"`
	Losses        int         `json:"losses"`
	Undefined     int         `json:"undefined"`
	Capped        int         `json:"capped"`
	WinRate       float64     `json:"win_rate"`
	StepHistogram map[int]int `json:"step_histogram"` // Moves per episode -> number of episodes
	MeanCleared   float64     `json:"mean_cleared"`
}

func NewSummary(mode Mode) Summary {
	return Summary{Mode: mode, StepHistogram: make(map[int]int)}
}

func (s *Summary) Add(metric EpisodeMetric) {
	s.Episodes++
	switch metric.Outcome {
	case game.Win:
		s.Wins++
	case game.Loss:
		s.Losses++
	default:
		s.Undefined++
	}
	if metric.Capped {
		s.Capped++
	}
	if s.StepHistogram == nil {
		s.StepHistogram = make(map[int]int)
	}
	s.StepHistogram[metric.Moves]++
	s.WinRate = float64(s.Wins) / float64(s.Episodes)
	s.MeanCleared += (metric.Cleared - s.MeanCleared) / float64(s.Episodes)
}
