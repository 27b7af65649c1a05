package metrics

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"qsweeper/game"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []EpisodeMetric {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []EpisodeMetric{
		{Episode: 1, Mode: Evaluate, Outcome: game.Win, Moves: 4, Cleared: 1, StartTime: start, Duration: time.Millisecond},
		{Episode: 2, Mode: Evaluate, Outcome: game.Loss, Moves: 2, Cleared: 0.25, StartTime: start, Duration: time.Millisecond},
		{Episode: 3, Mode: Evaluate, Outcome: game.Undefined, Moves: 4, Cleared: 0.5, Capped: true, StartTime: start},
	}
}

func TestSummary(t *testing.T) {
	t.Run("aggregates outcomes, moves and cleared fraction", func(t *testing.T) {
		summary := NewSummary(Evaluate)
		for _, record := range sampleRecords() {
			summary.Add(record)
		}

		require.Equal(t, 3, summary.Episodes)
		require.Equal(t, 1, summary.Wins)
		require.Equal(t, 1, summary.Losses)
		require.Equal(t, 1, summary.Undefined)
		require.Equal(t, 1, summary.Capped)
		require.InDelta(t, 1.0/3, summary.WinRate, 1e-9)
		require.InDelta(t, 1.75/3, summary.MeanCleared, 1e-9)
		require.Equal(t, map[int]int{4: 2, 2: 1}, summary.StepHistogram)
	})

	t.Run("zero value summary accepts episodes", func(t *testing.T) {
		var summary Summary
		summary.Add(EpisodeMetric{Outcome: game.Win, Moves: 1, Cleared: 1})
		require.Equal(t, 1.0, summary.WinRate)
		require.Equal(t, map[int]int{1: 1}, summary.StepHistogram)
	})
}

func TestCollector(t *testing.T) {
	t.Run("records episodes until restarted", func(t *testing.T) {
		c := NewCollector()
		c.Start(Train)
		c.Record(EpisodeMetric{Episode: 1})
		c.Record(EpisodeMetric{Episode: 2, Mode: Random})

		records := c.Complete()
		require.Len(t, records, 2)
		require.Equal(t, Train, records[0].Mode, "Mode defaults to the running mode")
		require.Equal(t, Random, records[1].Mode)

		c.Start(Evaluate)
		require.Empty(t, c.Complete())
	})

	t.Run("dummy collector keeps nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(Train)
		c.Record(EpisodeMetric{Episode: 1})
		require.Nil(t, c.Complete())
	})
}

func TestWriter(t *testing.T) {
	t.Run("writes episode csv", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), Evaluate)
		require.NoError(t, err)
		require.NoError(t, w.WriteEpisodes(sampleRecords(), CSV))

		f, err := os.Open(filepath.Join(w.Dir(), "episodes.csv"))
		require.NoError(t, err)
		defer f.Close()

		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 4)
		require.Equal(t, "outcome", rows[0][2])
		require.Equal(t, []string{"1", "eval", "Win", "4", "1.0000", "false"}, rows[1][:6])
		require.Equal(t, "true", rows[3][5])
	})

	t.Run("writes episode parquet", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), Evaluate)
		require.NoError(t, err)
		require.NoError(t, w.WriteEpisodes(sampleRecords(), Parquet))

		rows, err := parquet.ReadFile[EpisodeRow](filepath.Join(w.Dir(), "episodes.parquet"))
		require.NoError(t, err)
		require.Len(t, rows, 3)
		require.Equal(t, "Loss", rows[1].Outcome)
		require.Equal(t, int32(2), rows[1].Moves)
		require.True(t, rows[2].Capped)

		_, err = os.Stat(filepath.Join(w.Dir(), "episodes.parquet.tmp"))
		require.True(t, os.IsNotExist(err))
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), Train)
		require.NoError(t, err)
		require.Error(t, w.WriteEpisodes(sampleRecords(), Format("xml")))
	})

	t.Run("writes summary json", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), Random)
		require.NoError(t, err)

		summary := NewSummary(Random)
		for _, record := range sampleRecords() {
			summary.Add(record)
		}
		require.NoError(t, w.WriteSummary(summary))

		data, err := os.ReadFile(filepath.Join(w.Dir(), "summary.json"))
		require.NoError(t, err)

		var decoded Summary
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Equal(t, summary.Wins, decoded.Wins)
		require.Equal(t, summary.StepHistogram, decoded.StepHistogram)
	})
}
