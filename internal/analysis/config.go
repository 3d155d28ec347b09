package analysis

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults for the analysis constants. They are deliberate, named values
// rather than derived quantities; override them through Config.
const (
	// DefaultDegree is the polynomial degree of the latency model.
	DefaultDegree = 2

	// DefaultConfidenceLevel is the two-sided confidence level used for
	// coefficient intervals.
	DefaultConfidenceLevel = 0.95

	// DefaultSignificanceThreshold is the |a|/σa cutoff above which the
	// curvature coefficient is considered statistically significant.
	// A fixed 2.0 approximates the two-tailed 95% critical t-value for
	// moderate degrees of freedom; it is intentionally not replaced by
	// the exact quantile.
	DefaultSignificanceThreshold = 2.0

	// DefaultDegradationThreshold is the degradation rate, in ms per
	// concurrency unit, whose crossing defines the critical concurrency.
	DefaultDegradationThreshold = 10.0

	// DefaultMaxCriticalConcurrency bounds the reported critical point.
	// Solutions beyond it are extrapolation artifacts and are nulled.
	DefaultMaxCriticalConcurrency = 10000.0

	// DefaultWeightEpsilon is added to per-point standard deviations
	// before inverting them into fit weights, so a zero-variance point
	// cannot produce an infinite weight.
	DefaultWeightEpsilon = 0.001
)

// curvatureEpsilon separates genuinely curved fits from numerical noise.
const curvatureEpsilon = 1e-10

// Config carries the fixed constants of the pipeline as an explicit
// parameter object. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	// Degree of the fitted polynomial.
	Degree int `json:"degree" yaml:"degree"`

	// ConfidenceLevel for coefficient confidence intervals (0..1).
	ConfidenceLevel float64 `json:"confidenceLevel" yaml:"confidenceLevel"`

	// SignificanceThreshold is the t-statistic cutoff for the curvature
	// significance test.
	SignificanceThreshold float64 `json:"significanceThreshold" yaml:"significanceThreshold"`

	// DegradationThreshold is the T'(x) level, in ms per concurrency
	// unit, defining the critical concurrency.
	DegradationThreshold float64 `json:"degradationThreshold" yaml:"degradationThreshold"`

	// MaxCriticalConcurrency is the upper sanity bound on the reported
	// critical point.
	MaxCriticalConcurrency float64 `json:"maxCriticalConcurrency" yaml:"maxCriticalConcurrency"`

	// WeightEpsilon guards the 1/stddev weight against zero variance.
	WeightEpsilon float64 `json:"weightEpsilon" yaml:"weightEpsilon"`
}

// DefaultConfig returns the standard analysis configuration.
func DefaultConfig() Config {
	return Config{
		Degree:                 DefaultDegree,
		ConfidenceLevel:        DefaultConfidenceLevel,
		SignificanceThreshold:  DefaultSignificanceThreshold,
		DegradationThreshold:   DefaultDegradationThreshold,
		MaxCriticalConcurrency: DefaultMaxCriticalConcurrency,
		WeightEpsilon:          DefaultWeightEpsilon,
	}
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if c.Degree < 1 {
		return fmt.Errorf("degree must be at least 1, got %d", c.Degree)
	}
	if c.ConfidenceLevel <= 0 || c.ConfidenceLevel >= 1 {
		return fmt.Errorf("confidenceLevel must be in (0, 1), got %g", c.ConfidenceLevel)
	}
	if c.SignificanceThreshold <= 0 {
		return fmt.Errorf("significanceThreshold must be positive, got %g", c.SignificanceThreshold)
	}
	if c.DegradationThreshold <= 0 {
		return fmt.Errorf("degradationThreshold must be positive, got %g", c.DegradationThreshold)
	}
	if c.MaxCriticalConcurrency <= 0 {
		return fmt.Errorf("maxCriticalConcurrency must be positive, got %g", c.MaxCriticalConcurrency)
	}
	if c.WeightEpsilon < 0 {
		return fmt.Errorf("weightEpsilon must not be negative, got %g", c.WeightEpsilon)
	}
	return nil
}

// LoadConfig reads a YAML configuration file and merges it over the
// defaults, so a file only needs to name the constants it overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}
