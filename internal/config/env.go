package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/specialistvlad/sweepgrid/internal/artifacts"
	"github.com/specialistvlad/sweepgrid/internal/dispatch"
	"github.com/specialistvlad/sweepgrid/internal/source"
)

// Env is the process environment of a run.
type Env struct {
	CalcURL        string        `env:"SWEEPGRID_CALC_URL"`
	CalcKey        string        `env:"SWEEPGRID_CALC_KEY"`
	RequestTimeout time.Duration `env:"SWEEPGRID_REQUEST_TIMEOUT"   envDefault:"360s"`
	UserAgent      string        `env:"SWEEPGRID_USER_AGENT"        envDefault:"sweepgrid/1.0"`

	DispatchBatchSize int           `env:"SWEEPGRID_DISPATCH_BATCH_SIZE" envDefault:"120"`
	MaxConcurrency    int           `env:"SWEEPGRID_MAX_CONCURRENCY"     envDefault:"0"`
	RetryAttempts     int           `env:"SWEEPGRID_RETRY_ATTEMPTS"      envDefault:"3"`
	RetryInitialDelay time.Duration `env:"SWEEPGRID_RETRY_INITIAL_DELAY" envDefault:"2m"`
	RetryMaxDelay     time.Duration `env:"SWEEPGRID_RETRY_MAX_DELAY"     envDefault:"100m"`
	RetryMultiplier   float64       `env:"SWEEPGRID_RETRY_MULTIPLIER"    envDefault:"2"`

	ProjectAPIURL          string   `env:"SWEEPGRID_PROJECT_API_URL"`
	ProjectAPITokenURL     string   `env:"SWEEPGRID_PROJECT_API_TOKEN_URL"`
	ProjectAPIClientID     string   `env:"SWEEPGRID_PROJECT_API_CLIENT_ID"`
	ProjectAPIClientSecret string   `env:"SWEEPGRID_PROJECT_API_CLIENT_SECRET"`
	ProjectAPIScopes       []string `env:"SWEEPGRID_PROJECT_API_SCOPES" envSeparator:","`

	ArtifactDir string `env:"SWEEPGRID_ARTIFACT_DIR" envDefault:"error_logs"`
	S3Endpoint  string `env:"SWEEPGRID_S3_ENDPOINT"`
	S3AccessKey string `env:"SWEEPGRID_S3_ACCESS_KEY"`
	S3SecretKey string `env:"SWEEPGRID_S3_SECRET_KEY"`
	S3Region    string `env:"SWEEPGRID_S3_REGION"`
	S3Bucket    string `env:"SWEEPGRID_S3_BUCKET"`
	S3Prefix    string `env:"SWEEPGRID_S3_PREFIX" envDefault:"error_logs"`
	S3UseSSL    bool   `env:"SWEEPGRID_S3_USE_SSL" envDefault:"true"`

	ResultsDSN   string `env:"SWEEPGRID_RESULTS_DSN"`
	OTLPEndpoint string `env:"SWEEPGRID_OTEL_ENDPOINT"`
}

// ParseEnv reads Env from the process environment.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// ParseEnvFrom reads Env from the given variables instead of the process
// environment.
func ParseEnvFrom(vars map[string]string) (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Environment: vars}); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// Dispatch returns the dispatcher configuration.
func (e Env) Dispatch() dispatch.Config {
	return dispatch.Config{
		BatchSize:      e.DispatchBatchSize,
		MaxConcurrency: e.MaxConcurrency,
		Attempts:       e.RetryAttempts,
		InitialDelay:   e.RetryInitialDelay,
		MaxDelay:       e.RetryMaxDelay,
		Multiplier:     e.RetryMultiplier,
	}
}

// ProjectAPI returns the project API configuration.
func (e Env) ProjectAPI() source.APIConfig {
	return source.APIConfig{
		BaseURL:      e.ProjectAPIURL,
		TokenURL:     e.ProjectAPITokenURL,
		ClientID:     e.ProjectAPIClientID,
		ClientSecret: e.ProjectAPIClientSecret,
		Scopes:       e.ProjectAPIScopes,
		UserAgent:    e.UserAgent,
	}
}

// UsesObjectStore reports whether artifacts go to an S3-compatible bucket
// instead of the local directory.
func (e Env) UsesObjectStore() bool {
	return e.S3Endpoint != "" || e.S3Bucket != ""
}

// ObjectStore returns the artifact bucket configuration.
func (e Env) ObjectStore() artifacts.ObjectStoreConfig {
	return artifacts.ObjectStoreConfig{
		Endpoint:  e.S3Endpoint,
		AccessKey: e.S3AccessKey,
		SecretKey: e.S3SecretKey,
		Region:    e.S3Region,
		Bucket:    e.S3Bucket,
		Prefix:    e.S3Prefix,
		UseSSL:    e.S3UseSSL,
	}
}
