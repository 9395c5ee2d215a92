package smoke

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/talentdesk/internal/adapters/http/api"
	service "github.com/okian/talentdesk/internal/app"
	"github.com/okian/talentdesk/pkg/logger"
)

func init() {
	_ = logger.Init()
}

func TestRunAgainstConsole(t *testing.T) {
	Convey("Given a console served over HTTP", t, func() {
		svc := service.New(service.WithNotifyRate(0, 0), service.WithWorkerCount(1))
		So(svc.Start(context.Background()), ShouldBeNil)
		mux := http.NewServeMux()
		api.NewServer(svc).Register(mux)
		srv := httptest.NewServer(mux)
		Reset(func() {
			srv.Close()
			svc.Stop()
		})

		Convey("When the smoke run executes", func() {
			stats, err := Run(context.Background(), Config{
				BaseURL:     srv.URL,
				Candidate:   "cand-001",
				JobID:       "job-be",
				Concurrency: 2,
				Rounds:      2,
				Timeout:     5 * time.Second,
			})

			Convey("Then every check passes", func() {
				So(err, ShouldBeNil)
				So(stats.Failed.Load(), ShouldEqual, 0)
				So(stats.Passed.Load(), ShouldEqual, 2*2*3+2)
				So(stats.Requests.Load(), ShouldBeGreaterThan, 20)
			})

			Convey("Then the walk created a candidate", func() {
				So(svc.GetStats()["totalCandidates"], ShouldEqual, 13)
			})
		})
	})
}

func TestRunAgainstBrokenService(t *testing.T) {
	Convey("Given a service that only answers health checks", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/healthz" {
				w.WriteHeader(http.StatusOK)
				return
			}
			http.Error(w, "down", http.StatusInternalServerError)
		}))
		Reset(srv.Close)

		Convey("When the smoke run executes", func() {
			stats, err := Run(context.Background(), Config{BaseURL: srv.URL, Candidate: "cand-001", JobID: "job-be", Timeout: time.Second})

			Convey("Then it reports every failed check", func() {
				So(errors.Is(err, ErrChecksFailed), ShouldBeTrue)
				So(stats.Failed.Load(), ShouldEqual, 5)
				So(stats.Passed.Load(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given nothing listening", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := Run(context.Background(), Config{BaseURL: url, Timeout: 200 * time.Millisecond})
		So(err, ShouldNotBeNil)
		So(errors.Is(err, ErrChecksFailed), ShouldBeFalse)
	})
}
