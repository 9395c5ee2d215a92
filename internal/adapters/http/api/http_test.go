package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/talentdesk/internal/adapters/export"
	"github.com/okian/talentdesk/internal/adapters/http/api"
	service "github.com/okian/talentdesk/internal/app"
	"github.com/okian/talentdesk/pkg/logger"
)

func init() {
	_ = logger.Init()
}

type harness struct {
	mux *http.ServeMux
	svc *service.Service
}

func newHarness() *harness {
	svc := service.New(service.WithNotifyRate(0, 0), service.WithWorkerCount(1))
	So(svc.Start(context.Background()), ShouldBeNil)
	mux := http.NewServeMux()
	api.NewServer(svc).Register(mux)
	return &harness{mux: mux, svc: svc}
}

func (h *harness) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	h.mux.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](w *httptest.ResponseRecorder) T {
	var v T
	So(json.Unmarshal(w.Body.Bytes(), &v), ShouldBeNil)
	return v
}

func TestSystemRoutes(t *testing.T) {
	Convey("Given a registered server", t, func() {
		h := newHarness()
		Reset(h.svc.Stop)

		Convey("When scraping /healthz", func() {
			h.do(http.MethodGet, "/candidates", "")
			w := h.do(http.MethodGet, "/healthz", "")

			Convey("Then console metrics are exposed", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "talentdesk_console_http_requests_total")
			})
		})

		Convey("When reading stats", func() {
			w := h.do(http.MethodGet, "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			stats := decodeBody[map[string]any](w)
			So(stats["totalCandidates"], ShouldEqual, 12.0)
		})

		Convey("When asking for labels with ?lang=ar", func() {
			w := h.do(http.MethodGet, "/i18n?lang=ar", "")
			body := decodeBody[map[string]any](w)

			Convey("Then the Arabic table comes back right to left", func() {
				So(w.Header().Get("Content-Language"), ShouldEqual, "ar")
				So(body["direction"], ShouldEqual, "rtl")
			})
		})

		Convey("When negotiating from Accept-Language", func() {
			w := h.do(http.MethodGet, "/i18n", "", "Accept-Language", "ar-JO,ar;q=0.9,en;q=0.5")
			So(w.Header().Get("Content-Language"), ShouldEqual, "ar")
			w = h.do(http.MethodGet, "/i18n", "", "Accept-Language", "fr-FR")
			So(w.Header().Get("Content-Language"), ShouldEqual, "en")
		})
	})
}

func TestCandidateRoutes(t *testing.T) {
	Convey("Given a registered server", t, func() {
		h := newHarness()
		Reset(h.svc.Stop)

		Convey("When listing new candidates by score", func() {
			w := h.do(http.MethodGet, "/candidates?stage=new&sort=-ai_score", "")
			body := decodeBody[struct {
				Candidates []struct {
					Stage   string  `json:"stage"`
					AIScore float64 `json:"aiScore"`
				} `json:"candidates"`
				Total int `json:"total"`
			}](w)

			Convey("Then only new candidates come back", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(body.Total, ShouldEqual, len(body.Candidates))
				for _, c := range body.Candidates {
					So(c.Stage, ShouldEqual, "new")
				}
			})
		})

		Convey("When filters are malformed", func() {
			So(h.do(http.MethodGet, "/candidates?stage=limbo", "").Code, ShouldEqual, http.StatusBadRequest)
			So(h.do(http.MethodGet, "/candidates?sort=height", "").Code, ShouldEqual, http.StatusBadRequest)
			So(h.do(http.MethodGet, "/candidates?minScore=101", "").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When fetching one candidate", func() {
			So(h.do(http.MethodGet, "/candidates/cand-001", "").Code, ShouldEqual, http.StatusOK)
			w := h.do(http.MethodGet, "/candidates/nope", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(decodeBody[map[string]string](w)["code"], ShouldEqual, "not_found")
		})

		Convey("When ranking similar candidates", func() {
			w := h.do(http.MethodGet, "/candidates/cand-001/similar", "")
			matches := decodeBody[[]struct {
				Score float64 `json:"similarityScore"`
			}](w)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(len(matches), ShouldBeLessThanOrEqualTo, 10)
		})

		Convey("When moving a candidate", func() {
			w := h.do(http.MethodPost, "/candidates/cand-003/stage", `{"stage":"shortlisted"}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decodeBody[map[string]any](w)["stage"], ShouldEqual, "shortlisted")

			So(h.do(http.MethodPost, "/candidates/cand-003/stage", `{"stage":"limbo"}`).Code, ShouldEqual, http.StatusBadRequest)
			So(h.do(http.MethodPost, "/candidates/cand-003/stage", `{}`).Code, ShouldEqual, http.StatusBadRequest)
			So(h.do(http.MethodPost, "/candidates/nope/stage", `{"stage":"hired"}`).Code, ShouldEqual, http.StatusNotFound)

			activity := decodeBody[[]map[string]any](h.do(http.MethodGet, "/candidates/cand-003/activity", ""))
			So(activity[0]["kind"], ShouldEqual, "stage_changed")
		})

		Convey("When rejecting a candidate", func() {
			w := h.do(http.MethodPost, "/candidates/cand-009/reject", `{"reason":"role closed","notify":true}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decodeBody[map[string]any](w)["stage"], ShouldEqual, "rejected")
		})

		Convey("When reading the leaderboard", func() {
			w := h.do(http.MethodGet, "/candidates/top?limit=3", "")
			entries := decodeBody[[]map[string]any](w)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(len(entries), ShouldEqual, 3)

			So(h.do(http.MethodGet, "/candidates/top?limit=0", "").Code, ShouldEqual, http.StatusBadRequest)
			So(h.do(http.MethodGet, "/candidates/top?limit=abc", "").Code, ShouldEqual, http.StatusBadRequest)
			w = h.do(http.MethodGet, "/candidates/top?limit=1000", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeBody[map[string]string](w)["code"], ShouldEqual, "limit_exceeded")

			So(h.do(http.MethodGet, "/candidates/cand-006/rank", "").Code, ShouldEqual, http.StatusOK)
			So(h.do(http.MethodGet, "/candidates/nope/rank", "").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When exporting", func() {
			w := h.do(http.MethodGet, "/candidates/export.xlsx?lang=ar", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldEqual, export.ContentType)
			So(w.Body.Len(), ShouldBeGreaterThan, 0)
		})

		Convey("When reading the pipeline and feedback", func() {
			w := h.do(http.MethodGet, "/pipeline", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"columns"`)

			w = h.do(http.MethodPost, "/candidates/cand-001/feedback", `{"interviewer":"Lina","rating":5,"recommendation":"strong_hire"}`)
			So(w.Code, ShouldEqual, http.StatusCreated)
			w = h.do(http.MethodPost, "/candidates/cand-001/feedback", `{"interviewer":"Lina","rating":5,"recommendation":"maybe"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(h.do(http.MethodGet, "/candidates/cand-001/feedback", "").Code, ShouldEqual, http.StatusOK)
		})
	})
}

func TestHiringRoutes(t *testing.T) {
	Convey("Given a registered server", t, func() {
		h := newHarness()
		Reset(h.svc.Stop)

		Convey("When filtering jobs", func() {
			w := h.do(http.MethodGet, "/jobs?status=open", "")
			So(len(decodeBody[[]map[string]any](w)), ShouldEqual, 3)
			So(h.do(http.MethodGet, "/jobs?status=paused", "").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When scheduling and completing an interview", func() {
			w := h.do(http.MethodPost, "/interviews",
				`{"candidateId":"cand-003","type":"video","scheduledAt":"2025-03-01T10:00:00Z","notify":true}`)
			So(w.Code, ShouldEqual, http.StatusCreated)
			id := decodeBody[map[string]any](w)["id"].(string)

			So(h.do(http.MethodPost, "/interviews/"+id+"/status", `{"status":"completed"}`).Code, ShouldEqual, http.StatusOK)
			So(h.do(http.MethodPost, "/interviews/"+id+"/status", `{"status":"cancelled"}`).Code, ShouldEqual, http.StatusConflict)
			So(h.do(http.MethodPost, "/interviews/nope/status", `{"status":"cancelled"}`).Code, ShouldEqual, http.StatusNotFound)

			list := decodeBody[[]map[string]any](h.do(http.MethodGet, "/interviews?candidateId=cand-003", ""))
			So(len(list), ShouldEqual, 1)
		})

		Convey("When an offer skips approval", func() {
			w := h.do(http.MethodPost, "/offers", `{"candidateId":"cand-002","salary":80000,"currency":"usd"}`)
			So(w.Code, ShouldEqual, http.StatusCreated)
			id := decodeBody[map[string]any](w)["id"].(string)

			w = h.do(http.MethodPost, "/offers/"+id+"/status", `{"status":"sent"}`)
			So(w.Code, ShouldEqual, http.StatusConflict)
			So(h.do(http.MethodPost, "/offers/"+id+"/status", `{"status":"pending_approval"}`).Code, ShouldEqual, http.StatusOK)
			So(h.do(http.MethodPost, "/offers/"+id+"/status", `{"status":"bogus"}`).Code, ShouldEqual, http.StatusBadRequest)
			So(h.do(http.MethodGet, "/offers?candidateId=cand-002", "").Code, ShouldEqual, http.StatusOK)
		})

		Convey("When listing notifications", func() {
			So(h.do(http.MethodGet, "/notifications", "").Code, ShouldEqual, http.StatusOK)
		})
	})
}

func TestPortalRoutes(t *testing.T) {
	Convey("Given a registered server", t, func() {
		h := newHarness()
		Reset(h.svc.Stop)

		Convey("When changing and saving settings", func() {
			w := h.do(http.MethodPatch, "/portal/settings", `{"section":"branding","key":"primaryColor","value":"#123456"}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decodeBody[map[string]any](w)["dirty"], ShouldBeTrue)

			w = h.do(http.MethodPatch, "/portal/settings",
				`{"changes":[{"section":"layout","key":"jobsPerPage","value":25},{"section":"layout","key":"showSalary","value":true}]}`)
			So(w.Code, ShouldEqual, http.StatusOK)

			w = h.do(http.MethodPost, "/portal/settings/save", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			body := decodeBody[map[string]any](w)
			So(body["saved"], ShouldBeTrue)
			So(body["dirty"], ShouldBeFalse)
		})

		Convey("When a change is invalid", func() {
			So(h.do(http.MethodPatch, "/portal/settings", `{"section":"branding","key":"primaryColor","value":"red"}`).Code,
				ShouldEqual, http.StatusBadRequest)
			So(h.do(http.MethodPatch, "/portal/settings", `{"section":"footer","key":"x","value":1}`).Code,
				ShouldEqual, http.StatusBadRequest)
			So(h.do(http.MethodPatch, "/portal/settings", `{}`).Code, ShouldEqual, http.StatusBadRequest)
			So(h.do(http.MethodPatch, "/portal/settings", `not json`).Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestApplicationRoutes(t *testing.T) {
	Convey("Given a registered server", t, func() {
		h := newHarness()
		Reset(h.svc.Stop)

		Convey("When an applicant completes the wizard", func() {
			w := h.do(http.MethodPost, "/applications", `{"jobId":"job-be"}`)
			So(w.Code, ShouldEqual, http.StatusCreated)
			id := decodeBody[map[string]any](w)["id"].(string)
			base := "/applications/" + id

			So(h.do(http.MethodPut, base+"/basic", `{"firstName":"Zaid","lastName":"Hamad","email":"zaid@example.com"}`).Code,
				ShouldEqual, http.StatusOK)
			So(h.do(http.MethodPut, base+"/photos", `{}`).Code, ShouldEqual, http.StatusBadRequest)

			var last map[string]any
			for range 4 {
				w = h.do(http.MethodPost, base+"/next", "")
				So(w.Code, ShouldEqual, http.StatusOK)
				last = decodeBody[map[string]any](w)
			}

			Convey("Then it lands on success with a candidate", func() {
				So(last["step"], ShouldEqual, "success")
				So(last["candidateId"], ShouldNotBeEmpty)
				So(h.do(http.MethodGet, "/candidates/"+last["candidateId"].(string), "").Code, ShouldEqual, http.StatusOK)
			})

			Convey("Then a second submit conflicts and edits are refused", func() {
				So(h.do(http.MethodPost, base+"/submit", "").Code, ShouldEqual, http.StatusConflict)
				So(h.do(http.MethodPut, base+"/review", `{"agreeTerms":true}`).Code, ShouldEqual, http.StatusConflict)
			})

			Convey("Then close succeeds without confirmation", func() {
				w := h.do(http.MethodPost, base+"/close", "")
				So(decodeBody[map[string]bool](w)["closed"], ShouldBeTrue)
				So(h.do(http.MethodGet, base, "").Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When submitting off the review step", func() {
			w := h.do(http.MethodPost, "/applications", `{"jobId":"job-fe"}`)
			id := decodeBody[map[string]any](w)["id"].(string)
			So(h.do(http.MethodPost, "/applications/"+id+"/submit", "").Code, ShouldEqual, http.StatusConflict)
			So(h.do(http.MethodPost, "/applications/"+id+"/close", "").Code, ShouldEqual, http.StatusOK)
			So(h.do(http.MethodPost, "/applications/"+id+"/jump", "").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When the job is missing", func() {
			So(h.do(http.MethodPost, "/applications", `{"jobId":"job-x"}`).Code, ShouldEqual, http.StatusNotFound)
			So(h.do(http.MethodPost, "/applications", `{}`).Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestCancelledRequests(t *testing.T) {
	Convey("Given a server whose similarity ranking is slow", t, func() {
		svc := service.New(service.WithNotifyRate(0, 0), service.WithWorkerCount(1),
			service.WithSimulatedLatency(time.Second, 2*time.Second))
		So(svc.Start(context.Background()), ShouldBeNil)
		Reset(svc.Stop)
		mux := http.NewServeMux()
		api.NewServer(svc).Register(mux)

		Convey("When the caller abandons the request", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			req := httptest.NewRequest(http.MethodGet, "/candidates/cand-001/similar", nil).WithContext(ctx)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it is reported as cancelled, not as a server failure", func() {
				So(w.Code, ShouldEqual, 499)
				So(w.Code, ShouldBeLessThan, http.StatusInternalServerError)
				So(w.Body.String(), ShouldContainSubstring, `"cancelled"`)
			})
		})
	})
}
