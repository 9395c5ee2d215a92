package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/talentdesk/internal/config"
	"github.com/okian/talentdesk/pkg/logger"
)

func init() {
	_ = logger.Init()
}

func TestMainWiring(t *testing.T) {
	convey.Convey("Given configuration from the environment", t, func() {
		t.Setenv("TALENTDESK_ADDR", ":8081")
		t.Setenv("TALENTDESK_NOTIFY_WORKERS", "3")
		t.Setenv("TALENTDESK_DEFAULT_LOCALE", "ar")

		cfg, err := config.Load(context.Background())
		convey.So(err, convey.ShouldBeNil)
		convey.So(cfg.Addr, convey.ShouldEqual, ":8081")
		convey.So(cfg.NotifyWorkers, convey.ShouldEqual, 3)

		convey.Convey("When the service and mux are built", func() {
			svc := newService(cfg, logger.Get())
			convey.So(svc.Start(context.Background()), convey.ShouldBeNil)
			convey.Reset(svc.Stop)
			mux := newMux(cfg, svc, logger.Get())

			get := func(path string) *httptest.ResponseRecorder {
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
				return w
			}

			convey.Convey("Then every surface answers", func() {
				convey.So(svc.GetStats()["workerCount"], convey.ShouldEqual, 3)
				convey.So(get("/healthz").Code, convey.ShouldEqual, http.StatusOK)
				convey.So(get("/candidates").Code, convey.ShouldEqual, http.StatusOK)
				convey.So(get("/openapi.yaml").Code, convey.ShouldEqual, http.StatusOK)
				convey.So(get("/api-docs").Code, convey.ShouldEqual, http.StatusOK)
			})

			convey.Convey("Then the configured locale is the fallback", func() {
				w := get("/careers")
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, `dir="rtl"`)
				convey.So(get("/i18n").Header().Get("Content-Language"), convey.ShouldEqual, "ar")
			})
		})
	})

	convey.Convey("Given an empty listen address", t, func() {
		t.Setenv("TALENTDESK_ADDR", "")
		_, err := config.Load(context.Background())
		convey.So(err, convey.ShouldNotBeNil)
	})
}

func TestMetricsUpdaters(t *testing.T) {
	convey.Convey("Given a short-lived context", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
	})
}
