package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"uctzero/selfplay"
)

// Game is the on-disk form of one self-play game.
type Game struct {
	ID       string             `json:"id"`
	Winner   string             `json:"winner"`
	Plies    int                `json:"plies"`
	Examples []selfplay.Example `json:"examples"`
}

type Writer struct {
	baseDir string
}

// NewWriter creates a subfolder of root named by the current timestamp.
func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, timestamp)

	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteConfig(config any) error {
	return w.writeJSON("config.json", config)
}

// WriteGame stores the training examples of game n.
func (w *Writer) WriteGame(n int, record selfplay.Record) (string, error) {
	filename := fmt.Sprintf("game_%d_%s.json", n, record.ID)
	g := Game{
		ID:       record.ID.String(),
		Winner:   record.Winner.String(),
		Plies:    record.Plies,
		Examples: record.Examples,
	}
	if err := w.writeJSON(filename, g); err != nil {
		return "", fmt.Errorf("failed to write game %d: %w", n, err)
	}
	return filepath.Join(w.baseDir, filename), nil
}

func (w *Writer) writeJSON(filename string, v any) error {
	f, err := os.Create(filepath.Join(w.baseDir, filename))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", filename, err)
	}
	return nil
}

// WriteGameRecords writes a CSV summary with one row per game, in order.
func (w *Writer) WriteGameRecords(records []selfplay.Record) error {
	path := filepath.Join(w.baseDir, "games.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create game records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	header := []string{"game", "id", "winner", "plies", "start_time", "duration", "iterations"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write game records header: %w", err)
	}

	for i, record := range records {
		iterations := 0
		for _, move := range record.Moves {
			iterations += move.Iterations
		}
		row := []string{
			strconv.Itoa(i),
			record.ID.String(),
			record.Winner.String(),
			strconv.Itoa(record.Plies),
			record.StartTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(iterations),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write game record row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
