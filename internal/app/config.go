package app

import (
	"errors"
	"fmt"
)

// Mode selects what the App does.
type Mode string

const (
	ModeRun      Mode = "run"
	ModeValidate Mode = "validate"
	ModeSummary  Mode = "summary"
)

// DefaultOutputDir is where results are written when no directory is given.
const DefaultOutputDir = "results"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Mode Mode

	SettingsPath string // .hcl file or directory, or .json
	InputsPath   string // base-input collection, unless UseAPI
	UseAPI       bool
	DesignsPath  string
	OutputDir    string
	Name         string
	ResultsPath  string // summary mode

	BuildBatchSize  int
	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates the fields each mode needs.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.Mode {
	case ModeRun:
		if cfg.SettingsPath == "" {
			return nil, errors.New("settings path is required")
		}
		if cfg.InputsPath == "" && !cfg.UseAPI {
			return nil, errors.New("either an inputs file or the api source is required")
		}
		if cfg.InputsPath != "" && cfg.UseAPI {
			return nil, errors.New("inputs file and api source are mutually exclusive")
		}
	case ModeValidate:
		if cfg.SettingsPath == "" {
			return nil, errors.New("settings path is required")
		}
	case ModeSummary:
		if cfg.ResultsPath == "" {
			return nil, errors.New("results path is required")
		}
	default:
		return nil, fmt.Errorf("unknown mode '%s'", cfg.Mode)
	}
	if cfg.BuildBatchSize < 0 {
		return nil, errors.New("build batch size must not be negative")
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	return &cfg, nil
}
