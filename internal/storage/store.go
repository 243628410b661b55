package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/blobline/internal/blob"
	"github.com/san-kum/blobline/internal/config"
	"github.com/san-kum/blobline/internal/sink"
)

const (
	metadataFile = "metadata.json"
	rasterFile   = "raster.png"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata records enough to regenerate a run: the full config,
// including its seed.
type RunMetadata struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Frames    int                `json:"frames"`
	Width     int                `json:"width"`
	Config    config.Config      `json:"config"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and raster.png into a fresh run directory.
func (s *Store) Save(preset string, cfg *config.Config, rows []blob.Row, metrics map[string]float64) (string, error) {
	now := time.Now()
	runID, runDir, err := s.createRunDir(fmt.Sprintf("run_%d_%d", now.Unix(), cfg.Seed))
	if err != nil {
		return "", err
	}

	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}

	meta := RunMetadata{
		ID:        runID,
		Preset:    preset,
		Timestamp: now,
		Seed:      cfg.Seed,
		Frames:    len(rows),
		Width:     width,
		Config:    *cfg,
		Metrics:   metrics,
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

	// png cannot encode an empty image
	if len(rows) == 0 || width == 0 {
		return runID, nil
	}

	if err := sink.SavePNG(filepath.Join(runDir, rasterFile), sink.Raster(rows)); err != nil {
		return "", err
	}

	return runID, nil
}

// createRunDir makes a new directory named base, adding a numeric suffix
// when runs with the same seed land in the same second.
func (s *Store) createRunDir(base string) (string, string, error) {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", "", err
	}
	runID := base
	for i := 1; ; i++ {
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s_%d", base, i)
	}
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

// LoadRaster returns the stored rows, or none for an empty run.
func (s *Store) LoadRaster(runID string) ([]blob.Row, error) {
	path := filepath.Join(s.baseDir, runID, rasterFile)
	img, err := sink.LoadPNG(path)
	if err != nil {
		if os.IsNotExist(err) {
			if _, metaErr := s.Load(runID); metaErr == nil {
				return []blob.Row{}, nil
			}
		}
		return nil, err
	}
	return sink.Rows(img), nil
}

// RasterPath is where the run's image lives on disk.
func (s *Store) RasterPath(runID string) string {
	return filepath.Join(s.baseDir, runID, rasterFile)
}
