// Package config loads a Scheduler's static configuration — time zone,
// worker pool size, log level, and a declarative job list — from YAML,
// with godotenv + ${VAR} expansion.
package config

// Config is the top-level static configuration for a warp Scheduler.
type Config struct {
	// Zone is the IANA time zone name jobs and the clock operate in.
	// Empty means UTC.
	Zone string `yaml:"zone"`

	// Workers bounds the Live Driver's worker pool concurrency.
	Workers int `yaml:"workers"`

	// LogLevel controls the slog handler's minimum level: debug, info,
	// warn, or error.
	LogLevel string `yaml:"log_level"`

	// Jobs declares jobs to register at startup, in addition to any added
	// programmatically via the Scheduler facade.
	Jobs []JobSpec `yaml:"jobs"`
}

// JobSpec declaratively describes a job to register, expressed as data
// instead of Go calls, for the CLI inspector and config-driven deployments.
type JobSpec struct {
	Name string `yaml:"name"`

	// Kind selects which trigger builder to use: "cron", "interval",
	// "date", or "descriptor".
	Kind string `yaml:"kind"`

	// Cron is the 6-field expression, used when Kind == "cron".
	Cron string `yaml:"cron,omitempty"`

	// Descriptor is a shorthand like "@daily" or "@every 5m", used when
	// Kind == "descriptor".
	Descriptor string `yaml:"descriptor,omitempty"`

	// At is an RFC3339 instant, used when Kind == "date".
	At string `yaml:"at,omitempty"`

	// Every describes an interval trigger, used when Kind == "interval".
	Every IntervalSpec `yaml:"every,omitempty"`

	Once    bool     `yaml:"once,omitempty"`
	Enabled bool     `yaml:"enabled"`
	Labels  []string `yaml:"labels,omitempty"`
}

// IntervalSpec mirrors trigger.IntervalTrigger's fields for YAML config.
type IntervalSpec struct {
	Years, Months, Weeks, Days int
	Hours, Minutes, Seconds    int
}

// DefaultConfig returns the base configuration that Parse overlays a
// document onto: UTC, a worker pool of 4, and info logging.
func DefaultConfig() *Config {
	return &Config{
		Zone:     "UTC",
		Workers:  4,
		LogLevel: "info",
	}
}
