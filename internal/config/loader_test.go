package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/nora/internal/config"
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
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.Mobile, convey.ShouldBeFalse)
				convey.So(cfg.SeedCatalog, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("NORA_ADDR", ":8080")
			_ = os.Setenv("NORA_MOBILE", "true")
			_ = os.Setenv("NORA_SEED_CATALOG", "false")
			_ = os.Setenv("NORA_MAX_ROSTER_SIZE", "30")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Mobile, convey.ShouldBeTrue)
				convey.So(cfg.SeedCatalog, convey.ShouldBeFalse)
				convey.So(cfg.MaxRosterSize, convey.ShouldEqual, 30)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
# demo deployment
addr: ":9090"
log_level: debug
mobile: true
metrics_namespace: research
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("NORA_CONFIG", tmpFile)
			_ = os.Setenv("NORA_ADDR", ":8080")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.Mobile, convey.ShouldBeTrue)
				convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "research")
				convey.So(cfg.SeedCatalog, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the file sets metric naming and latency buckets", func() {
			tmpFile := createTempConfigFile(`
metrics_subsystem: api
http_latency_buckets: [1, 5, 25, 100]
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("NORA_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then they are loaded", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.MetricsSubsystem, convey.ShouldEqual, "api")
				convey.So(cfg.HTTPLatencyBuckets, convey.ShouldResemble, []float64{1, 5, 25, 100})
			})
		})

		convey.Convey("When latency buckets are out of order", func() {
			tmpFile := createTempConfigFile(`http_latency_buckets: [10, 5]`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("NORA_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("NORA_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("NORA_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("NORA_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a negative roster cap", func() {
			_ = os.Setenv("NORA_MAX_ROSTER_SIZE", "-1")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("NORA_MAX_ROSTER_SIZE", "not_a_number")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"NORA_CONFIG",
		"NORA_ADDR",
		"NORA_LOG_LEVEL",
		"NORA_MOBILE",
		"NORA_SEED_CATALOG",
		"NORA_METRICS_NAMESPACE",
		"NORA_METRICS_SUBSYSTEM",
		"NORA_HTTP_LATENCY_BUCKETS",
		"NORA_MAX_ROSTER_SIZE",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "nora-config-*.yaml")
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
