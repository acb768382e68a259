package config

import (
	"context"
	"fmt"

	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
)

// Loader is the interface for a format-specific settings loader.
type Loader interface {
	// Load reads the settings file at path and translates it into the
	// format-agnostic model.
	Load(ctx context.Context, path string) (*Model, error)
}

// LoadSettings reads path with loader and normalises the result.
func LoadSettings(ctx context.Context, loader Loader, path string) (*sensitivity.Settings, error) {
	m, err := loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	settings, err := m.Settings()
	if err != nil {
		return nil, fmt.Errorf("settings '%s': %w", path, err)
	}
	return settings, nil
}
