// This file contains the logic for translating the HCL schema structs into
// the format-agnostic settings model defined in the config package.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/specialistvlad/sweepgrid/internal/config"
	"github.com/specialistvlad/sweepgrid/internal/ctxlog"
)

// translateScenario converts the HCL-specific scenario schema into the
// agnostic model.
func (l *Loader) translateScenario(ctx context.Context, s *scenarioBlock) (*config.Scenario, error) {
	logger := ctxlog.FromContext(ctx).With("scenario", s.Name)
	ctx = ctxlog.WithLogger(ctx, logger)

	sc := &config.Scenario{Name: s.Name}
	for _, sw := range s.Sweeps {
		sweep, err := l.translateSweep(ctx, sw)
		if err != nil {
			return nil, fmt.Errorf("scenario '%s', sweep '%s': %w", s.Name, sw.Name, err)
		}
		sc.Sweeps = append(sc.Sweeps, sweep)
	}
	logger.Debug("Translated HCL scenario.", "sweeps", len(sc.Sweeps))
	return sc, nil
}

// translateSweep converts one sweep block. A missing values attribute yields
// an empty sweep, which settings validation rejects.
func (l *Loader) translateSweep(ctx context.Context, s *sweepBlock) (*config.Sweep, error) {
	sweep := &config.Sweep{
		Name:      s.Name,
		Component: s.Component,
		Type:      s.Type,
	}
	if !isExprDefined(ctx, s.Values, "values") {
		return sweep, nil
	}
	values, err := evalNumbers(s.Values)
	if err != nil {
		return nil, err
	}
	sweep.Values = values
	return sweep, nil
}
