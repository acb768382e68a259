package scenario

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/specialistvlad/sweepgrid/internal/ctxlog"
	"github.com/specialistvlad/sweepgrid/internal/model"
	"github.com/specialistvlad/sweepgrid/internal/progress"
	"github.com/specialistvlad/sweepgrid/internal/registry"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
)

// DefaultBatchSize is the number of variants per batch when none is set.
const DefaultBatchSize = 5000

// Option configures a Builder.
type Option func(*Builder)

// WithBatchSize sets the number of variants per batch. Non-positive values
// keep the default.
func WithBatchSize(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.batchSize = n
		}
	}
}

// WithClock replaces time.Now for telemetry.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// WithLogger sets the logger. Without it the logger is taken from the
// context passed to Batches.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) { b.logger = logger }
}

// WithBoard reports built variants to board.
func WithBoard(board *progress.Board) Option {
	return func(b *Builder) { b.board = board }
}

// Builder expands settings into batches of variants.
type Builder struct {
	reg       *registry.Registry
	settings  *sensitivity.Settings
	batchSize int
	now       func() time.Time
	logger    *slog.Logger
	board     *progress.Board
}

// NewBuilder creates a Builder for settings using the transforms in reg.
func NewBuilder(reg *registry.Registry, settings *sensitivity.Settings, opts ...Option) *Builder {
	b := &Builder{
		reg:       reg,
		settings:  settings,
		batchSize: DefaultBatchSize,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Total returns how many variants Batches yields for n base inputs.
func (b *Builder) Total(n int) int {
	return b.settings.TotalCombinations() * n
}

// Batches lazily yields batches of variants. Every batch except possibly the
// last holds exactly the configured batch size. The settings are validated
// before anything is yielded; a validation or transform error is yielded once
// as the final element. Ranging over the sequence again starts from scratch.
func (b *Builder) Batches(ctx context.Context, bases []model.BaseInput) iter.Seq2[[]model.ScenarioVariant, error] {
	return func(yield func([]model.ScenarioVariant, error) bool) {
		logger := b.logger
		if logger == nil {
			logger = ctxlog.FromContext(ctx)
		}

		if err := b.reg.Validate(ctx, b.settings); err != nil {
			yield(nil, err)
			return
		}

		start := b.now()
		total := b.Total(len(bases))
		built := 0
		logger.Info("Building scenario variants.", "projects", len(bases), "scenarios", len(b.settings.Scenarios), "total", total)

		batch := make([]model.ScenarioVariant, 0, min(b.batchSize, max(total, 1)))
		flush := func() bool {
			elapsed := b.now().Sub(start)
			logger.Info("Built batch of scenario variants.",
				"batch_size", len(batch),
				"built", built,
				"total", total,
				"elapsed", progress.FormatDuration(elapsed),
				"remaining", progress.FormatDuration(progress.Remaining(elapsed, built, total)),
			)
			b.board.AddBuilt(len(batch))
			out := batch
			batch = make([]model.ScenarioVariant, 0, cap(out))
			return yield(out, nil)
		}

		for _, sc := range b.settings.Scenarios {
			logger.Info("Building combinations for scenario.", "scenario", sc.Name, "combinations", sc.CombinationCount())
			for combo := range sc.All() {
				logger.Debug("Building combination.", "scenario", sc.Name, "combination", combo.String())
				for _, base := range bases {
					if err := ctx.Err(); err != nil {
						yield(nil, err)
						return
					}
					variant, err := b.Variant(base, sc, combo)
					if err != nil {
						yield(nil, err)
						return
					}
					batch = append(batch, variant)
					built++
					if len(batch) >= b.batchSize && !flush() {
						return
					}
				}
			}
		}
		if len(batch) > 0 {
			flush()
		}
	}
}

// Variant derives the variant of base for one combination of sc. A base
// without engine input yields a variant without one.
func (b *Builder) Variant(base model.BaseInput, sc sensitivity.ScenarioDefinition, combo sensitivity.Combination) (model.ScenarioVariant, error) {
	variant := model.ScenarioVariant{
		Project:     base.Project,
		Scenario:    sc.Name,
		Combination: combo,
	}
	if base.EngineInput == nil || base.EngineInput.IsZero() {
		return variant, nil
	}

	doc := *base.EngineInput
	for _, sweep := range sc.Sweeps {
		value, ok := combo.Value(sweep.Component)
		if !ok {
			return model.ScenarioVariant{}, fmt.Errorf("project '%s', scenario '%s', component '%s': %w",
				base.ProjectID, sc.Name, sweep.Component, sensitivity.ErrMissingSweepValue)
		}
		next, err := b.reg.Apply(doc, sweep.Component, sweep.Kind, value, b.settings)
		if err != nil {
			return model.ScenarioVariant{}, fmt.Errorf("project '%s', scenario '%s', component '%s': %w",
				base.ProjectID, sc.Name, sweep.Component, err)
		}
		doc = next
	}
	variant.EngineInput = &doc
	return variant, nil
}
