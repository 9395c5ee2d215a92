package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/talentdesk/internal/domain/locale"
	"github.com/okian/talentdesk/pkg/metrics"
)

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() map[string]any
}

var metricsHandler = promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})

// handleHealth serves GET /healthz as the Prometheus exposition of the
// console registry.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	metricsHandler.ServeHTTP(w, r)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.GetStats())
}

type labelsResponse struct {
	Locale    string            `json:"locale"`
	Direction locale.Direction  `json:"direction"`
	Labels    map[string]string `json:"labels"`
}

// handleLabels serves GET /i18n with the labels of the negotiated locale.
func (s *Server) handleLabels(w http.ResponseWriter, r *http.Request) {
	loc := locale.FromContext(r.Context())
	writeJSON(w, http.StatusOK, labelsResponse{
		Locale:    loc.Code,
		Direction: loc.Direction,
		Labels:    loc.Labels(),
	})
}
