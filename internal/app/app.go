package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/specialistvlad/sweepgrid/internal/artifacts"
	"github.com/specialistvlad/sweepgrid/internal/calc"
	"github.com/specialistvlad/sweepgrid/internal/config"
	"github.com/specialistvlad/sweepgrid/internal/ctxlog"
	"github.com/specialistvlad/sweepgrid/internal/progress"
	"github.com/specialistvlad/sweepgrid/internal/registry"
	"github.com/specialistvlad/sweepgrid/internal/source"
)

// Version is reported in telemetry.
const Version = "0.1.0"

// Option overrides one of the App's collaborators.
type Option func(*App)

// WithModules replaces the compiled-in adjustment modules.
func WithModules(modules ...registry.Module) Option {
	return func(a *App) { a.modules = modules }
}

// WithCalculator replaces the HTTP calculation client.
func WithCalculator(c calc.Calculator) Option {
	return func(a *App) { a.calculator = c }
}

// WithArtifactStore replaces the artifact store chosen from the environment.
func WithArtifactStore(s artifacts.Store) Option {
	return func(a *App) { a.store = s }
}

// WithSource replaces the project data source chosen from the configuration.
func WithSource(s source.Source) Option {
	return func(a *App) { a.source = s }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	ctx      context.Context
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	env      config.Env
	registry *registry.Registry
	board    *progress.Board
	runID    string

	modules    []registry.Module
	calculator calc.Calculator
	store      artifacts.Store
	source     source.Source
	now        func() time.Time

	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
func NewApp(outW io.Writer, cfg *Config, env config.Env, opts ...Option) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	a := &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		env:     env,
		modules: coreModules,
		now:     time.Now,
		runID:   strings.ReplaceAll(uuid.NewString(), "-", "")[:12],
	}
	for _, opt := range opts {
		opt(a)
	}

	a.logger = logger.With("run_id", a.runID)
	a.ctx = ctxlog.WithLogger(context.Background(), a.logger)
	a.registry = registry.New(a.modules...)
	a.board = progress.NewBoard(a.runID, a.now)
	a.logger.Debug("App initialized.", "modules", len(a.modules), "components", len(a.registry.Components()))
	return a
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Board returns the progress board of the current run.
func (a *App) Board() *progress.Board {
	return a.board
}
