package site

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/talentdesk/pkg/metrics"

	service "github.com/okian/talentdesk/internal/app"
	"github.com/okian/talentdesk/internal/domain/locale"
	"github.com/okian/talentdesk/internal/domain/model"
	"github.com/okian/talentdesk/internal/domain/portal"
)

type stubDeps struct {
	settings portal.Settings
	jobs     []model.JobRequisition
	err      error
}

func (s *stubDeps) PortalSettings(context.Context) (service.SettingsView, error) {
	return service.SettingsView{Settings: s.settings}, s.err
}

func (s *stubDeps) Jobs(_ context.Context, status model.JobStatus, _ string) ([]model.JobRequisition, error) {
	var out []model.JobRequisition
	for _, j := range s.jobs {
		if j.Status == status {
			out = append(out, j)
		}
	}
	return out, nil
}

func get(mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

// careersRequests sums the recorded careers requests with status code.
func careersRequests(code string) float64 {
	families, err := metrics.GetRegistry().Gather()
	So(err, ShouldBeNil)
	total := 0.0
	for _, f := range families {
		if f.GetName() != "talentdesk_console_http_requests_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["endpoint"] == "careers" && labels["status_code"] == code {
				total += m.GetCounter().GetValue()
			}
		}
	}
	return total
}

func TestCareersPage(t *testing.T) {
	Convey("Given a careers page over two open jobs and a closed one", t, func() {
		deps := &stubDeps{
			settings: portal.Defaults(),
			jobs: []model.JobRequisition{
				{ID: "job-be", Title: "Backend Engineer", Department: "Engineering", Status: model.JobOpen},
				{ID: "job-pd", Title: "Product Designer", Department: "Design", Status: model.JobOpen},
				{ID: "job-hr", Title: "HR Intern", Department: "People", Status: model.JobClosed},
			},
		}
		mux := http.NewServeMux()
		Register(mux, deps, locale.English)

		Convey("When rendered in English", func() {
			w := get(mux, "/careers")
			body := w.Body.String()

			Convey("Then open jobs and markdown content are shown", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				So(body, ShouldContainSubstring, `dir="ltr"`)
				So(body, ShouldContainSubstring, "Backend Engineer")
				So(body, ShouldContainSubstring, "Product Designer")
				So(body, ShouldNotContainSubstring, "HR Intern")
				So(body, ShouldContainSubstring, "<strong>small, focused</strong>")
				So(body, ShouldContainSubstring, "Open positions")
			})
		})

		Convey("When rendered in Arabic", func() {
			w := get(mux, "/careers?lang=ar")
			So(w.Body.String(), ShouldContainSubstring, `dir="rtl"`)
			So(w.Header().Get("Content-Language"), ShouldEqual, "ar")
		})

		Convey("When searching", func() {
			body := get(mux, "/careers?q=design").Body.String()
			So(body, ShouldContainSubstring, "Product Designer")
			So(body, ShouldNotContainSubstring, "Backend Engineer")
		})

		Convey("When the about text carries raw HTML", func() {
			deps.settings.Content.AboutUs = "<script>alert(1)</script>"
			So(get(mux, "/careers").Body.String(), ShouldNotContainSubstring, "<script>alert(1)</script>")
		})

		Convey("When jobs per page is one and nothing matches", func() {
			deps.settings.Layout.JobsPerPage = 1
			So(get(mux, "/careers").Body.String(), ShouldNotContainSubstring, "Product Designer")
			So(get(mux, "/careers?q=zzz").Body.String(), ShouldContainSubstring, "No open positions")
		})

		Convey("When settings cannot be read", func() {
			deps.err = errors.New("boom")
			So(get(mux, "/careers").Code, ShouldEqual, http.StatusInternalServerError)
		})

		Convey("When pages are served", func() {
			ok, failed := careersRequests("200"), careersRequests("500")
			get(mux, "/careers")
			deps.err = errors.New("boom")
			get(mux, "/careers")

			Convey("Then both outcomes are recorded as metrics", func() {
				So(careersRequests("200"), ShouldEqual, ok+1)
				So(careersRequests("500"), ShouldEqual, failed+1)
			})
		})
	})
}
