// Package config loads listbench settings from a JSON file, .env and the environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Makepad-fr/listbench/internal/model"
)

// Config is the persistent application configuration.
type Config struct {
	BaseURL string  `json:"base_url"`
	Size    float64 `json:"size_mb"`

	// RefetchDelayMs is the fixed wait before a manual refetch is dispatched.
	RefetchDelayMs int `json:"refetch_delay_ms"`
	// TimeoutMs bounds a request; 0 means none.
	TimeoutMs         int     `json:"timeout_ms"`
	RequestsPerSecond float64 `json:"requests_per_second"`

	Theme     string `json:"theme"`
	LogDir    string `json:"log_dir,omitempty"`
	StatsFile string `json:"stats_file,omitempty"`
	// HistoryDB enables the SQLite history when set.
	HistoryDB string `json:"history_db,omitempty"`

	Features Features `json:"features"`
}

// Features switch the optional parts of the screen on and off.
type Features struct {
	Selection bool `json:"selection"`
	History   bool `json:"history"`
	SizeInput bool `json:"size_input"`
	// DiscardOnError drops the displayed rows when a fetch fails instead of
	// keeping the previous ones.
	DiscardOnError bool `json:"discard_on_error"`
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:        "http://localhost:3001",
		Size:           1,
		RefetchDelayMs: 500,
		Theme:          "classic",
		Features: Features{
			Selection: true,
			History:   true,
			SizeInput: true,
		},
	}
}

// Path returns LISTBENCH_CONFIG or ~/.listbench/config.json.
func Path() string {
	if p := os.Getenv("LISTBENCH_CONFIG"); p != "" {
		return p
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".listbench", "config.json")
}

// Load reads path, falling back to defaults when the file does not exist.
// Missing keys keep their default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ApplyEnv loads an optional .env file from the working directory and then
// overrides fields from LISTBENCH_* variables.
func (c *Config) ApplyEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	if v := os.Getenv("LISTBENCH_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("LISTBENCH_THEME"); v != "" {
		c.Theme = v
	}
	if v := os.Getenv("LISTBENCH_LOG_DIR"); v != "" {
		c.LogDir = v
	}
	if v := os.Getenv("LISTBENCH_STATS_FILE"); v != "" {
		c.StatsFile = v
	}
	if v := os.Getenv("LISTBENCH_HISTORY_DB"); v != "" {
		c.HistoryDB = v
	}

	var err error
	if c.Size, err = envFloat("LISTBENCH_SIZE", c.Size); err != nil {
		return err
	}
	if c.RequestsPerSecond, err = envFloat("LISTBENCH_RPS", c.RequestsPerSecond); err != nil {
		return err
	}
	if c.RefetchDelayMs, err = envInt("LISTBENCH_REFETCH_DELAY_MS", c.RefetchDelayMs); err != nil {
		return err
	}
	if c.TimeoutMs, err = envInt("LISTBENCH_TIMEOUT_MS", c.TimeoutMs); err != nil {
		return err
	}
	if c.Features.DiscardOnError, err = envBool("LISTBENCH_DISCARD_ON_ERROR", c.Features.DiscardOnError); err != nil {
		return err
	}
	return nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("base URL required")
	}
	if err := model.Size(c.Size).Validate(); err != nil {
		return fmt.Errorf("size: %w", err)
	}
	if c.RefetchDelayMs < 0 {
		return errors.New("refetch delay must not be negative")
	}
	if c.TimeoutMs < 0 {
		return errors.New("timeout must not be negative")
	}
	return nil
}

func (c *Config) RefetchDelay() time.Duration {
	return time.Duration(c.RefetchDelayMs) * time.Millisecond
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def, fmt.Errorf("invalid %s env variable", key)
	}
	return f, nil
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s env variable", key)
	}
	return n, nil
}

func envBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s env variable", key)
	}
	return b, nil
}
