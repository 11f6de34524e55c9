// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and LUNGRISK_ env vars.
// - External errors are wrapped with this package's sentinel errors.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// PackPrice is the price of one pack of 20 cigarettes used for the
	// monthly cost estimate.
	PackPrice float64 `koanf:"pack_price"`

	// Currency is the display label attached to cost estimates.
	Currency string `koanf:"currency"`

	// MaxBodyBytes caps POST /assessments request bodies, at most 1 MiB.
	// Batch bodies may hold MaxBatchSize times as much.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// MaxBatchSize caps the number of questionnaires in one batch, at most 10000.
	MaxBatchSize int `koanf:"max_batch_size"`

	// Workers sets the batch worker count; 0 means one per CPU.
	Workers int `koanf:"workers"`

	// EnableDocs serves /api-docs and /openapi.yaml.
	EnableDocs bool `koanf:"enable_docs"`

	// EnableSite serves the embedded assessment form at /.
	EnableSite bool `koanf:"enable_site"`

	// MetricsNamespace prefixes every Prometheus metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`

	// Environment, when set, is attached to every metric as the env label.
	Environment string `koanf:"environment"`
}

// Upper bounds enforced by Validate.
const (
	MaxBodyBytesLimit = 1 << 20
	MaxBatchSizeLimit = 10000
)

// MetricLabels returns the constant labels for every metric.
func (c *Config) MetricLabels() map[string]string {
	if c.Environment == "" {
		return nil
	}
	return map[string]string{"env": c.Environment}
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		LogFormat:    "text",
		Addr:         ":9080",
		PackPrice:    100,
		Currency:     "TL",
		MaxBodyBytes: 16 << 10,
		MaxBatchSize: 100,
		Workers:      0,
		EnableDocs:   true,
		EnableSite:   true,

		MetricsNamespace: "lungrisk",
	}
}
