package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// Format selects the file format of episode records.
type Format string

const (
	CSV     Format = "csv"
	Parquet Format = "parquet"
)

// EpisodeRow is the columnar form of an EpisodeMetric.
type EpisodeRow struct {
	Episode     int32   `parquet:"episode"`
	Mode        string  `parquet:"mode,dict"`
	Outcome     string  `parquet:"outcome,dict"`
	Moves       int32   `parquet:"moves"`
	Cleared     float64 `parquet:"cleared"`
	Capped      bool    `parquet:"capped"`
	StartTimeMs int64   `parquet:"start_time_ms"`
	DurationNs  int64   `parquet:"duration_ns"`
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<mode>/<timestamp> to hold the files of one run.
func NewWriter(root string, mode Mode) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, string(mode), timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteEpisodes(records []EpisodeMetric, format Format) error {
	switch format {
	case CSV:
		return w.WriteEpisodeRecords(records)
	case Parquet:
		return w.WriteEpisodeParquet(records)
	}
	return fmt.Errorf("unknown record format %q", format)
}

func (w *Writer) WriteEpisodeRecords(records []EpisodeMetric) error {
	// Create a file
	path := filepath.Join(w.baseDir, "episodes.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create episode records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	// Write header
	header := []string{"episode", "mode", "outcome", "moves", "cleared", "capped", "start_time", "duration"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write episode records header: %w", err)
	}

	// Write each row
	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Episode),
			string(record.Mode),
			record.Outcome.String(),
			strconv.Itoa(record.Moves),
			strconv.FormatFloat(record.Cleared, 'f', 4, 64),
			strconv.FormatBool(record.Capped),
			record.StartTime.Format(time.RFC3339Nano),
			record.Duration.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write episode record row: %w", err)
		}
	}

	return nil
}

// WriteEpisodeParquet writes zstd compressed rows to a temp file and renames it into place.
func (w *Writer) WriteEpisodeParquet(records []EpisodeMetric) error {
	rows := make([]EpisodeRow, len(records))
	for i, record := range records {
		rows[i] = EpisodeRow{
			Episode:     int32(record.Episode),
			Mode:        string(record.Mode),
			Outcome:     record.Outcome.String(),
			Moves:       int32(record.Moves),
			Cleared:     record.Cleared,
			Capped:      record.Capped,
			StartTimeMs: record.StartTime.UnixMilli(),
			DurationNs:  record.Duration.Nanoseconds(),
		}
	}

	path := filepath.Join(w.baseDir, "episodes.parquet")
	tmpPath := path + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "episode_v1"),
	); err != nil {
		return fmt.Errorf("failed to write episode parquet: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename episode parquet: %w", err)
	}
	return nil
}

func (w *Writer) WriteSummary(summary Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	path := filepath.Join(w.baseDir, "summary.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
