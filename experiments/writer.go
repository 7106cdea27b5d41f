package experiments

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Writer persists experiment results as CSV files under a timestamped
// subfolder.
type Writer struct {
	baseDir string
}

func NewWriter(name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join("experiments", name, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

func (w *Writer) WriteGames(games []GameMetric) error {
	path := filepath.Join(w.baseDir, "games.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create games file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "winner", "moves", "startTime", "endTime", "durationMS"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, g := range games {
		record := []string{
			g.ID.String(),
			g.Winner,
			strconv.Itoa(g.Moves),
			g.StartTime.UTC().Format(time.RFC3339Nano),
			g.EndTime.UTC().Format(time.RFC3339Nano),
			strconv.FormatInt(g.Duration.Milliseconds(), 10),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write game record: %w", err)
		}
	}
	return nil
}

func (w *Writer) WriteMoves(gameID string, moves []MoveMetric) error {
	path := filepath.Join(w.baseDir, "moves.csv")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open moves file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat moves file: %w", err)
	}

	writer := csv.NewWriter(f)
	defer writer.Flush()

	if info.Size() == 0 {
		header := []string{"game", "move", "mark", "planningSteps", "durationUS", "memorySize"}
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	for _, m := range moves {
		record := []string{
			gameID,
			strconv.Itoa(m.Move),
			m.Mark,
			strconv.Itoa(m.PlanningSteps),
			strconv.FormatInt(m.Duration.Microseconds(), 10),
			strconv.Itoa(m.MemorySize),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write move record: %w", err)
		}
	}
	return nil
}
