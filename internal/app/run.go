package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/sweepgrid/internal/artifacts"
	"github.com/specialistvlad/sweepgrid/internal/calc"
	"github.com/specialistvlad/sweepgrid/internal/config"
	"github.com/specialistvlad/sweepgrid/internal/ctxlog"
	"github.com/specialistvlad/sweepgrid/internal/dispatch"
	"github.com/specialistvlad/sweepgrid/internal/hcl_adapter"
	"github.com/specialistvlad/sweepgrid/internal/model"
	"github.com/specialistvlad/sweepgrid/internal/progress"
	"github.com/specialistvlad/sweepgrid/internal/results"
	"github.com/specialistvlad/sweepgrid/internal/scenario"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
	"github.com/specialistvlad/sweepgrid/internal/source"
	"github.com/specialistvlad/sweepgrid/internal/telemetry"
)

// Run executes the configured mode.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.ctx = ctx
	a.logger.Debug("App.Run method started.", "mode", a.config.Mode)

	switch a.config.Mode {
	case ModeValidate:
		return a.validate(ctx)
	case ModeSummary:
		return a.summary()
	default:
		return a.run(ctx)
	}
}

func (a *App) run(ctx context.Context) (err error) {
	shutdown, err := telemetry.Setup(ctx, a.env.OTLPEndpoint, Version)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		if serr := shutdown(context.Background()); serr != nil {
			a.logger.Warn("Tracing shutdown failed", "error", serr)
		}
	}()

	a.healthCheckServer()
	defer func() { _ = a.closeHealthCheckServer() }()
	defer func() { a.board.Finish(err) }()

	a.board.Start(progress.PhaseLoading, 0)
	start := a.now()
	a.logger.Info("🚀 Starting sensitivity run", "settings", a.config.SettingsPath, "name", a.config.Name)

	settings, err := a.loadSettings(ctx)
	if err != nil {
		return err
	}
	if err := a.registry.Validate(ctx, settings); err != nil {
		return err
	}

	bases, err := a.loadBases(ctx, settings)
	if err != nil {
		return err
	}

	dispatchCfg := a.env.Dispatch()
	if err := dispatchCfg.Validate(); err != nil {
		return fmt.Errorf("invalid dispatch configuration: %w", err)
	}
	calculator, err := a.newCalculator()
	if err != nil {
		return err
	}
	if c, ok := calculator.(interface{ Close() }); ok {
		defer c.Close()
	}
	store, err := a.newArtifactStore()
	if err != nil {
		return err
	}

	var sink *results.SQLStore
	if a.env.ResultsDSN != "" {
		sink, err = results.OpenSQL(ctx, a.env.ResultsDSN, a.runID)
		if err != nil {
			return err
		}
		defer sink.Close()
	}

	builder := scenario.NewBuilder(a.registry, settings,
		scenario.WithBatchSize(a.config.BuildBatchSize),
		scenario.WithClock(a.now),
		scenario.WithBoard(a.board),
	)
	dispatcher := dispatch.New(calculator, store, dispatchCfg,
		dispatch.WithBoard(a.board),
		dispatch.WithClock(a.now),
	)

	total := builder.Total(bases.Len())
	a.board.Start(progress.PhaseRunning, total)
	a.logger.Info("Scenarios expanded",
		"base_inputs", bases.Len(),
		"scenarios", len(settings.Scenarios),
		"combinations", settings.TotalCombinations(),
		"variants", total,
	)

	collected := model.NewCollection[model.VariantResult]()
	for batch, err := range builder.Batches(ctx, bases.Items()) {
		if err != nil {
			return err
		}
		out := dispatcher.DispatchAll(ctx, batch)
		collected.Add(out...)
		if sink != nil {
			if err := sink.Append(ctx, out); err != nil {
				return err
			}
		}
	}

	path := results.Path(a.config.OutputDir, a.config.Name)
	if err := results.WriteJSON(path, collected); err != nil {
		return err
	}

	for _, s := range results.Summarize(collected) {
		a.logger.Info("Scenario summary",
			"scenario", s.Scenario,
			"variants", s.Variants,
			"computed", s.Computed,
			"failed", s.Failed,
			"no_data", s.NoData,
		)
	}
	a.logger.Info("🏁 Sensitivity run finished",
		"results", path,
		"variants", collected.Len(),
		"duration", progress.FormatDuration(a.now().Sub(start)),
	)
	return nil
}

func (a *App) validate(ctx context.Context) error {
	settings, err := a.loadSettings(ctx)
	if err != nil {
		return err
	}
	if err := a.registry.Validate(ctx, settings); err != nil {
		return err
	}
	for _, sc := range settings.Scenarios {
		fmt.Fprintf(a.outW, "scenario %q: %d sweeps, %d combinations\n", sc.Name, len(sc.Sweeps), sc.CombinationCount())
	}
	fmt.Fprintf(a.outW, "settings are valid: %d combinations per project\n", settings.TotalCombinations())
	return nil
}

func (a *App) summary() error {
	collected, err := results.LoadJSON(a.config.ResultsPath)
	if err != nil {
		return err
	}
	return results.WriteSummary(a.outW, results.Summarize(collected))
}

// loaderFor picks the settings loader from the file extension.
func loaderFor(path string) config.Loader {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return config.NewJSONLoader()
	}
	return hcl_adapter.NewLoader()
}

func (a *App) loadSettings(ctx context.Context) (*sensitivity.Settings, error) {
	settings, err := config.LoadSettings(ctx, loaderFor(a.config.SettingsPath), a.config.SettingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// loadBases reads the base inputs and, when a designs file is configured,
// replaces them with their design variants. With the api source and pinned
// assessments in the designs file, exactly those assessments are fetched.
func (a *App) loadBases(ctx context.Context, settings *sensitivity.Settings) (*model.BaseInputs, error) {
	var designs *source.Designs
	if a.config.DesignsPath != "" {
		d, err := source.LoadDesigns(a.config.DesignsPath)
		if err != nil {
			return nil, err
		}
		designs = d
	}

	src, err := a.newSource(ctx)
	if err != nil {
		return nil, err
	}

	var bases *model.BaseInputs
	if api, ok := src.(*source.APISource); ok && designs != nil && len(designs.ProjectAssessments) > 0 {
		bases, err = api.Assessments(ctx, designs.ProjectAssessments)
	} else {
		bases, err = src.BaseInputs(ctx, settings)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load base inputs: %w", err)
	}

	if designs != nil {
		return source.ExpandDesigns(ctx, a.registry, bases, designs, settings)
	}
	return bases, nil
}

func (a *App) newSource(ctx context.Context) (source.Source, error) {
	if a.source != nil {
		return a.source, nil
	}
	if a.config.UseAPI {
		return source.NewAPISource(ctx, a.env.ProjectAPI())
	}
	return source.FileSource{Path: a.config.InputsPath}, nil
}

func (a *App) newCalculator() (calc.Calculator, error) {
	if a.calculator != nil {
		return a.calculator, nil
	}
	if a.env.CalcURL == "" {
		return nil, errors.New("SWEEPGRID_CALC_URL is required to run calculations")
	}
	return calc.NewHTTPCalculator(a.env.CalcURL, a.env.CalcKey,
		calc.WithTimeout(a.env.RequestTimeout),
		calc.WithUserAgent(a.env.UserAgent),
		calc.WithHTTPClient(calc.NewClient(a.env.DispatchBatchSize)),
	), nil
}

func (a *App) newArtifactStore() (artifacts.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	if a.env.UsesObjectStore() {
		s, err := artifacts.NewObjectStore(a.env.ObjectStore())
		if err != nil {
			return nil, fmt.Errorf("failed to create artifact store: %w", err)
		}
		return s, nil
	}
	return artifacts.NewFileStore(a.env.ArtifactDir), nil
}
