package api

import (
	"context"
	"net/http"
	"time"

	service "github.com/okian/talentdesk/internal/app"
)

// PortalDependencies edits the careers portal configuration.
type PortalDependencies interface {
	PortalSettings(ctx context.Context) (service.SettingsView, error)
	ApplySetting(ctx context.Context, section, key string, value any) (service.SettingsView, error)
	SaveSettings(ctx context.Context) (service.SettingsView, time.Time, error)
}

// settingChange is one edit; Changes applies several in order.
type settingChange struct {
	Section string          `json:"section"`
	Key     string          `json:"key"`
	Value   any             `json:"value"`
	Changes []settingChange `json:"changes,omitempty"`
}

type saveResponse struct {
	service.SettingsView
	NoticeUntil time.Time `json:"noticeUntil"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_settings"
	v, err := s.deps.PortalSettings(r.Context())
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// handlePatchSettings serves PATCH /portal/settings. A batch stops at the
// first invalid change; earlier changes stay applied.
func (s *Server) handlePatchSettings(w http.ResponseWriter, r *http.Request) {
	const op = "api.patch_settings"
	var req settingChange
	if err := decode(r, op, &req); err != nil {
		s.fail(w, r, op, err)
		return
	}
	changes := req.Changes
	if len(changes) == 0 {
		if req.Section == "" || req.Key == "" {
			s.fail(w, r, op, NewKind(op, ErrBadRequest))
			return
		}
		changes = []settingChange{req}
	}
	var (
		v   service.SettingsView
		err error
	)
	for _, c := range changes {
		if v, err = s.deps.ApplySetting(r.Context(), c.Section, c.Key, c.Value); err != nil {
			s.fail(w, r, op, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	const op = "api.save_settings"
	v, until, err := s.deps.SaveSettings(r.Context())
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, saveResponse{SettingsView: v, NoticeUntil: until})
}
