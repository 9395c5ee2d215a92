// Package site renders the public careers page preview.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/okian/talentdesk/internal/adapters/http/api"
	service "github.com/okian/talentdesk/internal/app"
	"github.com/okian/talentdesk/internal/domain/locale"
	"github.com/okian/talentdesk/internal/domain/model"
	"github.com/okian/talentdesk/internal/domain/portal"
)

// Error constants
var (
	ErrRender = errors.New("careers page render failed")
)

// Dependencies supplies the portal settings and job list.
type Dependencies interface {
	PortalSettings(ctx context.Context) (service.SettingsView, error)
	Jobs(ctx context.Context, status model.JobStatus, department string) ([]model.JobRequisition, error)
}

type page struct {
	Locale   locale.Locale
	Settings portal.Settings
	About    template.HTML
	Jobs     []model.JobRequisition
	Query    string
}

// Register attaches GET /careers to mux, recorded under the "careers" endpoint.
func Register(mux *http.ServeMux, deps Dependencies, fallback locale.Locale) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("GET /careers", api.MetricsMiddleware(NewHandler(deps, fallback).ServeHTTP, "careers"))
}

// Handler renders the careers page from the current settings.
type Handler struct {
	deps     Dependencies
	fallback locale.Locale
	md       goldmark.Markdown
}

// NewHandler creates a careers page handler.
func NewHandler(deps Dependencies, fallback locale.Locale) *Handler {
	return &Handler{deps: deps, fallback: fallback, md: goldmark.New()}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	loc, ok := locale.Lookup(r.URL.Query().Get("lang"))
	if !ok {
		loc = locale.Negotiate(r.Header.Get("Accept-Language"), h.fallback)
	}
	ctx := locale.WithLocale(r.Context(), loc)

	body, err := h.render(ctx, loc, strings.TrimSpace(r.URL.Query().Get("q")))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", loc.Code)
	_, _ = w.Write(body)
}

func (h *Handler) render(ctx context.Context, loc locale.Locale, query string) ([]byte, error) {
	view, err := h.deps.PortalSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	jobs, err := h.deps.Jobs(ctx, model.JobOpen, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	s := view.Settings

	if query != "" && s.Layout.EnableSearch {
		q := strings.ToLower(query)
		kept := jobs[:0]
		for _, j := range jobs {
			if strings.Contains(strings.ToLower(j.Title), q) || strings.Contains(strings.ToLower(j.Department), q) {
				kept = append(kept, j)
			}
		}
		jobs = kept
	}
	if n := s.Layout.JobsPerPage; n > 0 && len(jobs) > n {
		jobs = jobs[:n]
	}

	var about bytes.Buffer
	if err := h.md.Convert([]byte(s.Content.AboutUs), &about); err != nil {
		return nil, fmt.Errorf("%w: about text: %w", ErrRender, err)
	}

	var out bytes.Buffer
	err = pages.ExecuteTemplate(&out, "careers.html", page{
		Locale:   loc,
		Settings: s,
		About:    template.HTML(about.String()), //nolint:gosec // goldmark escapes raw HTML by default
		Jobs:     jobs,
		Query:    query,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	return out.Bytes(), nil
}
