package config

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables recognised by Load.
const (
	EnvPrefix = "LUNGRISK_"
	EnvFile   = "LUNGRISK_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if LUNGRISK_CONFIG is set
//  3. env (prefix LUNGRISK_)
func Load(ctx context.Context) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	base := New()
	k := koanf.New(".")

	if path := os.Getenv(EnvFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", ErrLoadConfig, path, err)
		}
	}

	// LUNGRISK_PACK_PRICE -> pack_price. Keys stay flat so underscores
	// match the koanf tags on the struct.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, strings.ToLower(EnvPrefix))
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var metricName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return invalidf("addr must not be empty")
	case c.PackPrice <= 0:
		return invalidf("pack_price must be positive, got %v", c.PackPrice)
	case strings.TrimSpace(c.Currency) == "":
		return invalidf("currency must not be empty")
	case c.MaxBodyBytes <= 0 || c.MaxBodyBytes > MaxBodyBytesLimit:
		return invalidf("max_body_bytes must be in (0, %d], got %d", MaxBodyBytesLimit, c.MaxBodyBytes)
	case c.MaxBatchSize <= 0 || c.MaxBatchSize > MaxBatchSizeLimit:
		return invalidf("max_batch_size must be in (0, %d], got %d", MaxBatchSizeLimit, c.MaxBatchSize)
	case !metricName.MatchString(c.MetricsNamespace):
		return invalidf("metrics_namespace %q is not a valid metric name prefix", c.MetricsNamespace)
	case c.Workers < 0:
		return invalidf("workers must not be negative")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return invalidf("log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}
