package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/talentdesk/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.SimilarLimit, convey.ShouldEqual, 10)
			convey.So(cfg.SaveNoticeMS, convey.ShouldEqual, 3000)
			convey.So(cfg.DefaultLocale, convey.ShouldEqual, "en")
			convey.So(cfg.SimulatedLatencyMinMS, convey.ShouldEqual, 0)
			convey.So(cfg.Validate(context.Background()), convey.ShouldBeNil)
		})
	})
}

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
				convey.So(cfg.NotifyQueueSize, convey.ShouldEqual, 1000)
				convey.So(cfg.NotifyWorkers, convey.ShouldEqual, 2)
				convey.So(cfg.WizardSessionsMax, convey.ShouldEqual, 10000)
			})
		})

		convey.Convey("When the wizard session bound is set", func() {
			_ = os.Setenv("TALENTDESK_WIZARD_SESSIONS_MAX", "25")

			cfg, err := config.Load(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.WizardSessionsMax, convey.ShouldEqual, 25)

			_ = os.Setenv("TALENTDESK_WIZARD_SESSIONS_MAX", "-1")
			_, err = config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("TALENTDESK_ADDR", ":8080")
			_ = os.Setenv("TALENTDESK_NOTIFY_QUEUE_SIZE", "50")
			_ = os.Setenv("TALENTDESK_SIMILAR_LIMIT", "5")
			_ = os.Setenv("TALENTDESK_NOTIFY_RATE_PER_SEC", "2.5")
			_ = os.Setenv("TALENTDESK_DEFAULT_LOCALE", "ar")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.NotifyQueueSize, convey.ShouldEqual, 50)
				convey.So(cfg.SimilarLimit, convey.ShouldEqual, 5)
				convey.So(cfg.NotifyRatePerSec, convey.ShouldEqual, 2.5)
				convey.So(cfg.DefaultLocale, convey.ShouldEqual, "ar")
			})
		})

		convey.Convey("When loading config with a YAML file and env overrides", func() {
			tmpFile := createTempConfigFile(`
# console settings
addr: ":9090"
similar_limit: 7
simulated_latency_min_ms: 1000
simulated_latency_max_ms: 1500
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("TALENTDESK_CONFIG", tmpFile)
			_ = os.Setenv("TALENTDESK_SIMILAR_LIMIT", "3")

			cfg, err := config.Load(ctx)

			convey.Convey("Then env wins over file and file wins over defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.SimilarLimit, convey.ShouldEqual, 3)
				convey.So(cfg.SimulatedLatencyMinMS, convey.ShouldEqual, 1000)
				convey.So(cfg.SimulatedLatencyMaxMS, convey.ShouldEqual, 1500)
				convey.So(cfg.SaveNoticeMS, convey.ShouldEqual, 3000)
			})
		})

		convey.Convey("When the YAML file is invalid", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("TALENTDESK_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then a load error is returned", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the file does not exist", func() {
			_ = os.Setenv("TALENTDESK_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)
			convey.So(cfg, convey.ShouldBeNil)
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("When addr is empty", func() {
			_ = os.Setenv("TALENTDESK_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then a validation error is returned", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
			})
		})

		convey.Convey("When the latency range is inverted", func() {
			_ = os.Setenv("TALENTDESK_SIMULATED_LATENCY_MIN_MS", "1500")
			_ = os.Setenv("TALENTDESK_SIMULATED_LATENCY_MAX_MS", "1000")

			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When similar_limit is zero", func() {
			_ = os.Setenv("TALENTDESK_SIMILAR_LIMIT", "0")

			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When a numeric variable is not a number", func() {
			_ = os.Setenv("TALENTDESK_NOTIFY_WORKERS", "many")

			cfg, err := config.Load(ctx)
			convey.So(cfg, convey.ShouldBeNil)
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func clearConfigEnvVars() {
	for _, v := range []string{
		"TALENTDESK_CONFIG",
		"TALENTDESK_ADDR",
		"TALENTDESK_NOTIFY_QUEUE_SIZE",
		"TALENTDESK_NOTIFY_WORKERS",
		"TALENTDESK_NOTIFY_RATE_PER_SEC",
		"TALENTDESK_SIMILAR_LIMIT",
		"TALENTDESK_SIMULATED_LATENCY_MIN_MS",
		"TALENTDESK_SIMULATED_LATENCY_MAX_MS",
		"TALENTDESK_DEFAULT_LOCALE",
		"TALENTDESK_WIZARD_SESSIONS_MAX",
	} {
		_ = os.Unsetenv(v)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "talentdesk-config-*.yaml")
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
