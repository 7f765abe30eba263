package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/quickreturn/internal/sweep"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

// Columns is the header of samples.csv.
var Columns = []string{"index", "theta2", "theta4", "theta5", "r3", "r6", "omega4", "omega5", "r3_dot", "r6_dot"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Units     string             `json:"units"`
	Assembly  string             `json:"assembly"`
	R1        float64            `json:"r1"`
	R2        float64            `json:"r2"`
	R4        float64            `json:"r4"`
	R5        float64            `json:"r5"`
	R7        float64            `json:"r7"`
	Theta1    float64            `json:"theta1"`
	Omega2    float64            `json:"omega2"`
	Samples   int                `json:"samples"`
	Skipped   []float64          `json:"skipped,omitempty"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a sweep result under a fresh run directory and returns its id.
func (s *Store) Save(name string, res *sweep.Result, metrics map[string]float64) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	cfg := res.Config
	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: now,
		Units:     cfg.Units.String(),
		Assembly:  cfg.Assembly.String(),
		R1:        cfg.R1,
		R2:        cfg.R2,
		R4:        cfg.R4,
		R5:        cfg.R5,
		R7:        cfg.R7,
		Theta1:    cfg.Theta1,
		Omega2:    cfg.Omega2,
		Samples:   cfg.Samples,
		Metrics:   metrics,
	}
	for _, f := range res.Skipped {
		meta.Skipped = append(meta.Skipped, f.Angle)
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, samplesFile), res); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSamples(path string, res *sweep.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteCSV writes the samples of res with a Columns header.
func WriteCSV(out io.Writer, res *sweep.Result) error {
	w := csv.NewWriter(out)
	if err := w.Write(Columns); err != nil {
		return err
	}
	for _, s := range res.Samples {
		row := []string{strconv.Itoa(s.Index)}
		for _, v := range []float64{s.Theta2, s.Theta4, s.Theta5, s.R3, s.R6, s.Omega4, s.Omega5, s.R3Dot, s.R6Dot} {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns the metadata of every run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSamples reads samples.csv back as rows ordered like Columns.
func (s *Store) LoadSamples(runID string) ([][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(Columns)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return [][]float64{}, nil
	}

	rows := make([][]float64, 0, len(records)-1)
	for i, record := range records[1:] {
		row := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: row %d column %s: %w", runID, i+1, Columns[j], err)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Column returns the index of a samples.csv column, or -1.
func Column(name string) int {
	for i, c := range Columns {
		if c == name {
			return i
		}
	}
	return -1
}
