package dispatch

import (
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	DefaultBatchSize    = 120
	DefaultAttempts     = 3
	DefaultInitialDelay = 2 * time.Minute
	DefaultMaxDelay     = 100 * time.Minute
	DefaultMultiplier   = 2.0
)

// Config holds the dispatch and retry parameters.
type Config struct {
	// BatchSize is the number of variants in one DispatchAll chunk.
	BatchSize int
	// MaxConcurrency caps in-flight calculations per chunk. Zero means the
	// whole chunk runs at once.
	MaxConcurrency int
	// Attempts is the total number of tries per variant, the first included.
	Attempts     int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		BatchSize:    DefaultBatchSize,
		Attempts:     DefaultAttempts,
		InitialDelay: DefaultInitialDelay,
		MaxDelay:     DefaultMaxDelay,
		Multiplier:   DefaultMultiplier,
	}
}

// Validate checks the parameters for consistency.
func (c Config) Validate() error {
	var errs []error
	if c.BatchSize <= 0 {
		errs = append(errs, errors.New("batch size must be positive"))
	}
	if c.MaxConcurrency < 0 {
		errs = append(errs, errors.New("max concurrency must not be negative"))
	}
	if c.Attempts <= 0 {
		errs = append(errs, errors.New("attempts must be positive"))
	}
	if c.InitialDelay < 0 || c.MaxDelay < c.InitialDelay {
		errs = append(errs, errors.New("retry delays must satisfy 0 <= initial <= max"))
	}
	if c.Multiplier < 1 {
		errs = append(errs, errors.New("retry multiplier must be at least 1"))
	}
	return errors.Join(errs...)
}

// BackOff returns a fresh, jitter-free exponential policy. Each variant gets
// its own instance because ExponentialBackOff is stateful.
func (c Config) BackOff() *backoff.ExponentialBackOff {
	return &backoff.ExponentialBackOff{
		InitialInterval:     c.InitialDelay,
		RandomizationFactor: 0,
		Multiplier:          c.Multiplier,
		MaxInterval:         c.MaxDelay,
	}
}
