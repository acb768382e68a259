package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/specialistvlad/sweepgrid/internal/artifacts"
	"github.com/specialistvlad/sweepgrid/internal/calc"
	"github.com/specialistvlad/sweepgrid/internal/ctxlog"
	"github.com/specialistvlad/sweepgrid/internal/model"
	"github.com/specialistvlad/sweepgrid/internal/progress"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/specialistvlad/sweepgrid/internal/dispatch"

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithBoard reports every outcome to board.
func WithBoard(board *progress.Board) Option {
	return func(d *Dispatcher) { d.board = board }
}

// WithClock replaces time.Now for telemetry.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// WithTracer replaces the global tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(d *Dispatcher) { d.tracer = tracer }
}

// Dispatcher calculates variants through a calc.Calculator.
type Dispatcher struct {
	cfg    Config
	calc   calc.Calculator
	store  artifacts.Store
	board  *progress.Board
	now    func() time.Time
	tracer trace.Tracer
}

// New creates a Dispatcher. Failed variants are written to store.
func New(calculator calc.Calculator, store artifacts.Store, cfg Config, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		cfg:   cfg,
		calc:  calculator,
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.tracer == nil {
		d.tracer = otel.Tracer(tracerName)
	}
	return d
}

// DispatchBatch calculates every variant of batch concurrently and returns
// one result per variant, in input order. It never returns early: errors are
// folded into the results.
func (d *Dispatcher) DispatchBatch(ctx context.Context, batch []model.ScenarioVariant) []model.VariantResult {
	ctx, span := d.tracer.Start(ctx, "dispatch.batch",
		trace.WithAttributes(attribute.Int("batch.size", len(batch))))
	defer span.End()

	results := make([]model.VariantResult, len(batch))

	var g errgroup.Group
	if d.cfg.MaxConcurrency > 0 {
		g.SetLimit(d.cfg.MaxConcurrency)
	}
	for i, v := range batch {
		g.Go(func() error {
			results[i] = d.dispatch(ctx, v)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// DispatchAll runs variants in chunks of Config.BatchSize, one chunk after
// another, and logs telemetry after each chunk.
func (d *Dispatcher) DispatchAll(ctx context.Context, variants []model.ScenarioVariant) []model.VariantResult {
	logger := ctxlog.FromContext(ctx)
	size := d.cfg.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}

	results := make([]model.VariantResult, 0, len(variants))
	runStart := d.now()
	chunk := 0
	for start := 0; start < len(variants); start += size {
		end := min(start+size, len(variants))
		chunk++
		chunkStart := d.now()
		results = append(results, d.DispatchBatch(ctx, variants[start:end])...)

		stats := progress.NewChunkStats(d.now(), runStart, chunkStart, chunk, end-start, len(results), len(variants))
		logger.Info("Dispatch batch complete", stats.LogAttrs()...)
	}
	return results
}

func (d *Dispatcher) dispatch(ctx context.Context, v model.ScenarioVariant) (result model.VariantResult) {
	ctx, logger := ctxlog.With(ctx, v.LogAttrs()...)
	defer func() { d.board.AddOutcome(result.Computed(), result.Failed()) }()

	if !v.HasInput() {
		logger.Debug("No engine input, nothing to calculate")
		return model.Succeeded(v, nil)
	}

	ctx, span := d.tracer.Start(ctx, "dispatch.item", trace.WithAttributes(
		attribute.String("project_id", v.ProjectID),
		attribute.String("scenario", v.Scenario),
		attribute.String("combination", v.Combination.String()),
	))
	defer span.End()

	start := d.now()
	attempt := 0
	operation := func() (*model.CalculationResult, error) {
		attempt++
		body, err := d.calc.Calculate(ctx, *v.EngineInput)
		if err != nil {
			return nil, err
		}
		parsed, err := calc.ParseResult(body)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		return parsed, nil
	}

	parsed, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(d.cfg.BackOff()),
		backoff.WithMaxTries(uint(max(d.cfg.Attempts, 1))),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, delay time.Duration) {
			logger.Warn("Calculation failed, retrying",
				"attempt", attempt,
				"delay", progress.FormatDuration(delay),
				"error", err,
			)
		}),
	)
	span.SetAttributes(attribute.Int("attempts", attempt))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		d.saveFailure(ctx, logger, v, attempt, err)
		return model.Failed(v, model.ReasonCalculationError)
	}

	logger.Debug("Calculation complete",
		"attempts", attempt,
		"duration", progress.FormatDuration(d.now().Sub(start)),
	)
	return model.Succeeded(v, parsed)
}

func (d *Dispatcher) saveFailure(ctx context.Context, logger *slog.Logger, v model.ScenarioVariant, attempts int, cause error) {
	if d.store == nil {
		logger.Error("Calculation failed", "attempts", attempts, "error", cause)
		return
	}
	location, err := artifacts.SaveJSON(ctx, d.store, v.ProjectID, v)
	if err != nil {
		logger.Error("Calculation failed, could not save artifact",
			"attempts", attempts, "error", cause, "artifact_error", err)
		return
	}
	logger.Error("Calculation failed", "attempts", attempts, "error", cause, "artifact", location)
}
