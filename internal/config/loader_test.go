package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/ufcradar/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.DefaultWindow, convey.ShouldEqual, 5)
				convey.So(cfg.WatchData, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("UFCRADAR_ADDR", ":8080")
			_ = os.Setenv("UFCRADAR_DATA_DIR", "/srv/ufc")
			_ = os.Setenv("UFCRADAR_DEFAULT_WINDOW", "3")
			_ = os.Setenv("UFCRADAR_MAX_WINDOW", "10")
			_ = os.Setenv("UFCRADAR_WATCH_DATA", "true")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DataDir, convey.ShouldEqual, "/srv/ufc")
				convey.So(cfg.DefaultWindow, convey.ShouldEqual, 3)
				convey.So(cfg.MaxWindow, convey.ShouldEqual, 10)
				convey.So(cfg.WatchData, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
data_dir: "/data"
stats_file: "stats.csv"
warm_cache: true
watch_debounce_ms: 250
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("UFCRADAR_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values merge with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.Path(cfg.StatsFile), convey.ShouldEqual, "/data/stats.csv")
				convey.So(cfg.EventsFile, convey.ShouldEqual, config.DefaultEventsFile)
				convey.So(cfg.WarmCache, convey.ShouldBeTrue)
				convey.So(cfg.WatchDebounceMS, convey.ShouldEqual, 250)
			})
		})

		convey.Convey("When both file and environment variables are set", func() {
			tmpFile := createTempConfigFile("addr: \":9090\"\nmax_window: 20\n")
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("UFCRADAR_CONFIG", tmpFile)
			_ = os.Setenv("UFCRADAR_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables win", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MaxWindow, convey.ShouldEqual, 20)
			})
		})

		convey.Convey("When the YAML file is invalid", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("UFCRADAR_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the file does not exist", func() {
			_ = os.Setenv("UFCRADAR_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When addr is empty", func() {
			_ = os.Setenv("UFCRADAR_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the default window exceeds the maximum", func() {
			_ = os.Setenv("UFCRADAR_DEFAULT_WINDOW", "30")
			_ = os.Setenv("UFCRADAR_MAX_WINDOW", "10")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should be rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When numeric variables are not numbers", func() {
			_ = os.Setenv("UFCRADAR_MAX_WINDOW", "lots")
			defer clearConfigEnvVars()

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
		"UFCRADAR_CONFIG",
		"UFCRADAR_ADDR",
		"UFCRADAR_DATA_DIR",
		"UFCRADAR_DEFAULT_WINDOW",
		"UFCRADAR_MAX_WINDOW",
		"UFCRADAR_WATCH_DATA",
		"UFCRADAR_ARCHIVE_DB",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "ufcradar-config-*.yaml")
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
