package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/angelajeffers/simulation-power-analysis/internal/errors"
)

// Config holds the run parameters sourced from the environment. CLI flags
// override these values.
type Config struct {
	Seed        int64
	Iterations  int
	GroupSize   int
	DoseGroups  int // treated dose groups in addition to control
	Workers     int
	TopEffect   float64 // effect multiplier at the highest dose
	TopVariance float64 // SD multiplier at the highest dose
	Direction   string
	DesignFile  string // optional pilot-data workbook (.xlsx or .csv)
	ReportFile  string // optional report output path
	LogLevel    string
}

// Load reads configuration from the environment, honoring an optional .env
// file, and validates it.
func Load() (*Config, error) {
	// Missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	cfg := &Config{
		Seed:        1563,
		Iterations:  10000,
		GroupSize:   10,
		DoseGroups:  3,
		Workers:     1,
		TopEffect:   0.85,
		TopVariance: 2.0,
		Direction:   "decreasing",
		DesignFile:  os.Getenv("POWERSIM_DESIGN_FILE"),
		ReportFile:  os.Getenv("POWERSIM_REPORT_FILE"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
	}

	var err error
	if cfg.Seed, err = envInt64("POWERSIM_SEED", cfg.Seed); err != nil {
		return nil, err
	}
	if cfg.Iterations, err = envInt("POWERSIM_ITERATIONS", cfg.Iterations); err != nil {
		return nil, err
	}
	if cfg.GroupSize, err = envInt("POWERSIM_GROUP_SIZE", cfg.GroupSize); err != nil {
		return nil, err
	}
	if cfg.DoseGroups, err = envInt("POWERSIM_DOSE_GROUPS", cfg.DoseGroups); err != nil {
		return nil, err
	}
	if cfg.Workers, err = envInt("POWERSIM_WORKERS", cfg.Workers); err != nil {
		return nil, err
	}
	if cfg.TopEffect, err = envFloat("POWERSIM_TOP_EFFECT", cfg.TopEffect); err != nil {
		return nil, err
	}
	if cfg.TopVariance, err = envFloat("POWERSIM_TOP_VARIANCE", cfg.TopVariance); err != nil {
		return nil, err
	}
	if v := os.Getenv("POWERSIM_DIRECTION"); v != "" {
		cfg.Direction = v
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Iterations <= 0 {
		return errors.ConfigInvalid(fmt.Sprintf("iterations must be positive, got %d", c.Iterations))
	}
	if c.GroupSize <= 0 {
		return errors.ConfigInvalid(fmt.Sprintf("group size must be positive, got %d", c.GroupSize))
	}
	if c.DoseGroups <= 0 {
		return errors.ConfigInvalid(fmt.Sprintf("dose groups must be positive, got %d", c.DoseGroups))
	}
	if c.Workers <= 0 {
		return errors.ConfigInvalid(fmt.Sprintf("workers must be positive, got %d", c.Workers))
	}
	if c.TopEffect <= 0 || c.TopVariance <= 0 {
		return errors.ConfigInvalid("top effect and top variance multipliers must be positive")
	}
	if c.Direction != "increasing" && c.Direction != "decreasing" {
		return errors.ConfigInvalid(fmt.Sprintf("direction must be increasing or decreasing, got %q", c.Direction))
	}
	return nil
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s: %q is not an integer", key, v))
	}
	return parsed, nil
}

func envInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s: %q is not an integer", key, v))
	}
	return parsed, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s: %q is not a number", key, v))
	}
	return parsed, nil
}
