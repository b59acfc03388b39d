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
)

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// RunMetadata describes one replayed scenario.
type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	GridSize  int                `json:"grid_size"`
	Layout    string             `json:"layout"`
	Theme     string             `json:"theme"`
	Frames    int                `json:"frames"`
	Steps     int                `json:"steps"`
	State     string             `json:"state"`
	Metrics   map[string]float64 `json:"metrics"`
	Artifacts []string           `json:"artifacts,omitempty"`
}

// RunDir is the directory holding the given run.
func (s *Store) RunDir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

// Save writes metadata.json and profile.csv into a fresh run directory. ID and
// Timestamp are filled in and the new ID is returned.
func (s *Store) Save(meta *RunMetadata, heights []float64) (string, error) {
	now := s.now()
	name := meta.Scenario
	if name == "" {
		name = "run"
	}
	meta.ID = fmt.Sprintf("%s_%d", name, now.UnixNano())
	meta.Timestamp = now

	runDir := s.RunDir(meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "profile.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"column", "height"}); err != nil {
		return "", err
	}
	for x, h := range heights {
		if err := w.Write([]string{strconv.Itoa(x), strconv.FormatFloat(h, 'f', -1, 64)}); err != nil {
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
	data, err := os.ReadFile(filepath.Join(s.RunDir(runID), "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadProfile reads the column heights saved with a run.
func (s *Store) LoadProfile(runID string) ([]float64, error) {
	file, err := os.Open(filepath.Join(s.RunDir(runID), "profile.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []float64{}, nil
	}

	heights := make([]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		h, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		heights = append(heights, h)
	}
	return heights, nil
}
