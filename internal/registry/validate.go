package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/sweepgrid/internal/ctxlog"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
)

// Validate checks every sweep of every scenario against the registered
// transforms. All problems are reported together.
func (r *Registry) Validate(ctx context.Context, settings *sensitivity.Settings) error {
	logger := ctxlog.FromContext(ctx)
	if settings == nil {
		return errors.New("settings are required")
	}

	errs := []error{settings.Validate()}
	for _, sc := range settings.Scenarios {
		for _, sw := range sc.Sweeps {
			adj, ok := r.Lookup(sw.Component)
			if !ok {
				errs = append(errs, fmt.Errorf("scenario '%s', sweep '%s': %w: '%s'", sc.Name, sw.Name, ErrUnknownComponent, sw.Component))
				continue
			}
			if !adj.Supports(sw.Kind) {
				errs = append(errs, fmt.Errorf("scenario '%s', sweep '%s': %w", sc.Name, sw.Name, Unsupported(sw.Component, sw.Kind)))
			}
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("sensitivity settings validation failed: %w", err)
	}
	logger.Debug("Sensitivity settings validated.", "scenarios", len(settings.Scenarios), "combinations", settings.TotalCombinations())
	return nil
}
