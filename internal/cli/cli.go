package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/sweepgrid/internal/app"
	"github.com/specialistvlad/sweepgrid/internal/scenario"
	"github.com/spf13/cobra"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// commonFlags are shared by every subcommand.
type commonFlags struct {
	logFormat string
	logLevel  string
}

func (f *commonFlags) apply(cfg *app.Config) error {
	cfg.LogFormat = strings.ToLower(f.logFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return usageError("invalid log-format: must be 'text' or 'json'")
	}
	cfg.LogLevel = strings.ToLower(f.logLevel)
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	return nil
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var (
		common commonFlags
		parsed *app.Config
	)
	finish := func(cfg app.Config) error {
		if err := common.apply(&cfg); err != nil {
			return err
		}
		validated, err := app.NewConfig(cfg)
		if err != nil {
			return usageError("%s", err.Error())
		}
		parsed = validated
		return nil
	}

	root := &cobra.Command{
		Use:   "sweepgrid",
		Short: "Parameter-sweep sensitivity analysis for renewable-energy projects.",
		Long: `sweepgrid expands every project of a portfolio into scenario variants,
sends each variant to the calculation engine and collects the results.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&common.logFormat, "log-format", "json", "Log output format. Options: 'text' or 'json'.")
	root.PersistentFlags().StringVar(&common.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	root.AddCommand(runCommand(finish), validateCommand(finish), summaryCommand(finish))
	root.SetArgs(args)
	root.SetOut(output)
	root.SetErr(output)

	if err := root.Execute(); err != nil {
		if exitErr, ok := err.(*ExitError); ok {
			return nil, false, exitErr
		}
		return nil, false, usageError("%s", err.Error())
	}
	if parsed == nil {
		// Help was printed.
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "mode", parsed.Mode)
	return parsed, false, nil
}

func runCommand(finish func(app.Config) error) *cobra.Command {
	var (
		cfg        = app.Config{Mode: app.ModeRun}
		sourceKind string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build every scenario variant, calculate it and write the results",
		Example: `  sweepgrid run --settings sweeps.hcl --inputs base_inputs.json --name q4
  sweepgrid run --settings sweeps.hcl --source api --designs designs.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch strings.ToLower(sourceKind) {
			case "file":
			case "api":
				cfg.UseAPI = true
			default:
				return usageError("invalid source: must be 'file' or 'api'")
			}
			return finish(cfg)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&cfg.SettingsPath, "settings", "s", "", "Path to the sweep settings (.hcl file or directory, or .json).")
	f.StringVarP(&cfg.InputsPath, "inputs", "i", "", "Path to a base-input collection file.")
	f.StringVar(&sourceKind, "source", "file", "Where base inputs come from. Options: 'file' or 'api'.")
	f.StringVar(&cfg.DesignsPath, "designs", "", "Optional design-options YAML file.")
	f.StringVarP(&cfg.OutputDir, "output", "o", app.DefaultOutputDir, "Directory the results file is written to.")
	f.StringVarP(&cfg.Name, "name", "n", "", "Name prefix of the results file.")
	f.IntVar(&cfg.BuildBatchSize, "build-batch-size", scenario.DefaultBatchSize, "Number of variants built per batch.")
	f.IntVar(&cfg.HealthcheckPort, "healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	return cmd
}

func validateCommand(finish func(app.Config) error) *cobra.Command {
	cfg := app.Config{Mode: app.ModeValidate}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the sweep settings against the registered components",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return finish(cfg)
		},
	}
	cmd.Flags().StringVarP(&cfg.SettingsPath, "settings", "s", "", "Path to the sweep settings (.hcl file or directory, or .json).")
	return cmd
}

func summaryCommand(finish func(app.Config) error) *cobra.Command {
	return &cobra.Command{
		Use:   "summary RESULTS_JSON",
		Short: "Print per-scenario counts of a results file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return finish(app.Config{Mode: app.ModeSummary, ResultsPath: args[0]})
		},
	}
}
