package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Makepad-fr/listbench/internal/model"
)

// JSON export of a stats dump. Single file, human-readable, overwritten on
// every save; the file mirrors the session history, it does not accumulate.

const DefaultFileName = "listbench-stats.json"

// DefaultPath puts the dump next to where listbench was started.
func DefaultPath() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	return filepath.Join(wd, DefaultFileName), nil
}

func Load(path string) ([]model.FetchStats, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.FetchStats{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var stats []model.FetchStats
	if err := json.Unmarshal(b, &stats); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return stats, nil
}

func Save(path string, stats []model.FetchStats) error {
	if stats == nil {
		stats = []model.FetchStats{}
	}
	b, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
