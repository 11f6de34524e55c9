package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/lungrisk/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.PackPrice, convey.ShouldEqual, 100.0)
				convey.So(cfg.Currency, convey.ShouldEqual, "TL")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("LUNGRISK_ADDR", ":8080")
			_ = os.Setenv("LUNGRISK_PACK_PRICE", "85.5")
			_ = os.Setenv("LUNGRISK_CURRENCY", "EUR")
			_ = os.Setenv("LUNGRISK_ENABLE_DOCS", "false")
			_ = os.Setenv("LUNGRISK_LOG_FORMAT", "json")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should pick them up", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.PackPrice, convey.ShouldEqual, 85.5)
				convey.So(cfg.Currency, convey.ShouldEqual, "EUR")
				convey.So(cfg.EnableDocs, convey.ShouldBeFalse)
				convey.So(cfg.EnableSite, convey.ShouldBeTrue)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
# pricing
addr: ":9090"
log_level: debug
pack_price: 120
currency: USD
max_body_bytes: 4096
enable_site: false
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("LUNGRISK_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.PackPrice, convey.ShouldEqual, 120.0)
				convey.So(cfg.Currency, convey.ShouldEqual, "USD")
				convey.So(cfg.MaxBodyBytes, convey.ShouldEqual, int64(4096))
				convey.So(cfg.EnableSite, convey.ShouldBeFalse)
				convey.So(cfg.EnableDocs, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
currency: USD
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("LUNGRISK_CONFIG", tmpFile)
			_ = os.Setenv("LUNGRISK_ADDR", ":8081")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8081")
				convey.So(cfg.Currency, convey.ShouldEqual, "USD")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("LUNGRISK_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("LUNGRISK_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a zero pack price", func() {
			_ = os.Setenv("LUNGRISK_PACK_PRICE", "0")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "pack_price")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown log format", func() {
			_ = os.Setenv("LUNGRISK_LOG_FORMAT", "logfmt")

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with batch settings", func() {
			_ = os.Setenv("LUNGRISK_MAX_BATCH_SIZE", "25")
			_ = os.Setenv("LUNGRISK_WORKERS", "3")

			cfg, err := config.Load(ctx)

			convey.Convey("Then they are applied", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.MaxBatchSize, convey.ShouldEqual, 25)
				convey.So(cfg.Workers, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When loading config with metrics settings", func() {
			_ = os.Setenv("LUNGRISK_METRICS_NAMESPACE", "lungrisk_eu")
			_ = os.Setenv("LUNGRISK_ENVIRONMENT", "prod")

			cfg, err := config.Load(ctx)

			convey.Convey("Then they are applied", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "lungrisk_eu")
				convey.So(cfg.MetricLabels(), convey.ShouldResemble, map[string]string{"env": "prod"})
			})
		})

		convey.Convey("When loading config with an invalid metrics namespace", func() {
			_ = os.Setenv("LUNGRISK_METRICS_NAMESPACE", "lung-risk")

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "metrics_namespace")
			})
		})

		convey.Convey("When loading config with limits whose product would overflow", func() {
			_ = os.Setenv("LUNGRISK_MAX_BODY_BYTES", "4611686018427387904")
			_ = os.Setenv("LUNGRISK_MAX_BATCH_SIZE", "4")

			_, err := config.Load(ctx)

			convey.Convey("Then the body limit is rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "max_body_bytes")
			})
		})

		convey.Convey("When loading config with an oversized batch cap", func() {
			_ = os.Setenv("LUNGRISK_MAX_BATCH_SIZE", "10001")

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "max_batch_size")
			})
		})

		convey.Convey("When loading config at the upper limits", func() {
			_ = os.Setenv("LUNGRISK_MAX_BODY_BYTES", "1048576")
			_ = os.Setenv("LUNGRISK_MAX_BATCH_SIZE", "10000")

			cfg, err := config.Load(ctx)

			convey.Convey("Then they are accepted", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.MaxBodyBytes, convey.ShouldEqual, int64(config.MaxBodyBytesLimit))
				convey.So(cfg.MaxBatchSize, convey.ShouldEqual, config.MaxBatchSizeLimit)
			})
		})

		convey.Convey("When loading config with a negative worker count", func() {
			_ = os.Setenv("LUNGRISK_WORKERS", "-1")

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "workers")
			})
		})

		convey.Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			_, err := config.Load(cctx)

			convey.Convey("Then loading is refused", func() {
				convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
			})
		})
	})
}

func TestConfigValidate(t *testing.T) {
	convey.Convey("Given a config with an empty addr", t, func() {
		cfg := config.New()
		cfg.Addr = " "

		convey.So(cfg.Validate(), convey.ShouldNotBeNil)
		convey.So(cfg.Validate().Error(), convey.ShouldContainSubstring, "addr must not be empty")
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"LUNGRISK_CONFIG",
		"LUNGRISK_ADDR",
		"LUNGRISK_LOG_LEVEL",
		"LUNGRISK_LOG_FORMAT",
		"LUNGRISK_PACK_PRICE",
		"LUNGRISK_CURRENCY",
		"LUNGRISK_MAX_BODY_BYTES",
		"LUNGRISK_MAX_BATCH_SIZE",
		"LUNGRISK_WORKERS",
		"LUNGRISK_ENABLE_DOCS",
		"LUNGRISK_ENABLE_SITE",
		"LUNGRISK_METRICS_NAMESPACE",
		"LUNGRISK_ENVIRONMENT",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "lungrisk-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
