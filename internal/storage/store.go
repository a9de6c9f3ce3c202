package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

const (
	metadataFile   = "metadata.json"
	finalStateFile = "final_state.csv"
)

var stateHeader = []string{"name", "mass", "px", "py", "pz", "vx", "vy", "vz"}

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
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Bodies    int                `json:"bodies"`
	Dt        float64            `json:"dt"`
	TotalTime float64            `json:"total_time"`
	Steps     int                `json:"steps"`
	Mode      string             `json:"mode"`
	Trace     string             `json:"trace,omitempty"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save assigns an ID and timestamp to meta, then writes it together with the
// final state of u.
func (s *Store) Save(meta RunMetadata, u *dynamo.Universe) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("run_%d", now.UnixNano())
	meta.Timestamp = now
	meta.Bodies = u.Len()

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, finalStateFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(stateHeader); err != nil {
		return "", err
	}

	for _, b := range u.All() {
		row := []string{b.Name}
		for _, val := range []float64{
			b.Mass,
			b.Position.X, b.Position.Y, b.Position.Z,
			b.Velocity.X, b.Velocity.Y, b.Velocity.Z,
		} {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns every readable run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadFinalState reads back the bodies saved with a run.
func (s *Store) LoadFinalState(runID string) ([]dynamo.Body, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, finalStateFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(stateHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []dynamo.Body{}, nil
	}

	bodies := make([]dynamo.Body, 0, len(records)-1)
	for i, record := range records[1:] {
		vals := make([]float64, 0, 7)
		for _, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: %w", finalStateFile, i+1, err)
			}
			vals = append(vals, v)
		}
		bodies = append(bodies, dynamo.Body{
			Name:     record[0],
			Mass:     vals[0],
			Position: dynamo.Vector3{X: vals[1], Y: vals[2], Z: vals[3]},
			Velocity: dynamo.Vector3{X: vals[4], Y: vals[5], Z: vals[6]},
		})
	}

	return bodies, nil
}
