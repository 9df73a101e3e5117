// Package storage records run metadata and metric histories next to the
// frame output, so finished runs can be listed and plotted later.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/johnxnguyen/newton/internal/metrics"
)

// RunMetadata describes one completed simulation run.
type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Config    string             `json:"config"`
	Seed      int64              `json:"seed"`
	Frames    int                `json:"frames"`
	Bodies    int                `json:"bodies"`
	G         float64            `json:"g"`
	Theta     float64            `json:"theta"`
	Dt        float64            `json:"dt"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Store persists run artifacts in a single directory, alongside the
// per-frame position files.
type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.dir, 0755)
}

// Save writes the run metadata and the full metric histories.
func (s *Store) Save(meta RunMetadata, observed []metrics.Metric) error {
	if meta.Metrics == nil {
		meta.Metrics = make(map[string]float64, len(observed))
	}
	for _, m := range observed {
		meta.Metrics[m.Name()] = m.Value()
	}

	file, err := os.Create(filepath.Join(s.dir, "metadata.json"))
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}

	if len(observed) == 0 {
		return nil
	}
	return s.saveHistory(observed)
}

func (s *Store) saveHistory(observed []metrics.Metric) error {
	file, err := os.Create(filepath.Join(s.dir, "metrics.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{"frame"}
	rows := 0
	for _, m := range observed {
		header = append(header, m.Name())
		if n := len(m.History()); n > rows {
			rows = n
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for frame := 0; frame < rows; frame++ {
		row := []string{strconv.Itoa(frame)}
		for _, m := range observed {
			h := m.History()
			if frame < len(h) {
				row = append(row, strconv.FormatFloat(h[frame], 'g', -1, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// Load reads the metadata of the run stored in the directory.
func (s *Store) Load() (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("corrupt metadata: %w", err)
	}
	return &meta, nil
}

// LoadHistory reads the metric histories back as named columns.
func (s *Store) LoadHistory() (map[string][]float64, error) {
	file, err := os.Open(filepath.Join(s.dir, "metrics.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return map[string][]float64{}, nil
	}

	header := records[0]
	history := make(map[string][]float64, len(header)-1)

	for _, record := range records[1:] {
		for col := 1; col < len(header) && col < len(record); col++ {
			if record[col] == "" {
				continue
			}
			val, err := strconv.ParseFloat(record[col], 64)
			if err != nil {
				continue
			}
			history[header[col]] = append(history[header[col]], val)
		}
	}

	return history, nil
}

// List scans a directory of runs for stored metadata.
func List(parent string) ([]RunMetadata, error) {
	entries, err := os.ReadDir(parent)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := New(filepath.Join(parent, entry.Name())).Load()
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}
