package service

import (
	"context"
	"time"

	"github.com/okian/talentdesk/internal/domain/portal"
	"github.com/okian/talentdesk/pkg/logger"
	"github.com/okian/talentdesk/pkg/metrics"
)

// SettingsView is the portal configuration plus the save notice state.
type SettingsView struct {
	Settings portal.Settings `json:"settings"`
	Dirty    bool            `json:"dirty"`
	Saved    bool            `json:"saved"`
}

func (s *Service) settingsView() SettingsView {
	return SettingsView{
		Settings: s.settings.Settings(),
		Dirty:    s.settings.Dirty(),
		Saved:    s.settings.SavedAt(s.now()),
	}
}

// PortalSettings returns the current careers portal configuration.
func (s *Service) PortalSettings(_ context.Context) (SettingsView, error) {
	if err := s.ready(); err != nil {
		return SettingsView{}, err
	}
	return s.settingsView(), nil
}

// ApplySetting changes one key of one section.
func (s *Service) ApplySetting(ctx context.Context, section, key string, value any) (SettingsView, error) {
	if err := s.ready(); err != nil {
		return SettingsView{}, err
	}
	if _, err := s.settings.Apply(section, key, value); err != nil {
		return SettingsView{}, err
	}
	metrics.RecordSettingChange(section)
	s.logger.Debug(ctx, "portal setting changed",
		logger.String("section", section),
		logger.String("key", key),
	)
	return s.settingsView(), nil
}

// SaveSettings marks the settings saved and returns when the notice expires.
func (s *Service) SaveSettings(ctx context.Context) (SettingsView, time.Time, error) {
	if err := s.ready(); err != nil {
		return SettingsView{}, time.Time{}, err
	}
	until := s.settings.Save(s.now())
	metrics.RecordSettingsSave()
	s.logger.Info(ctx, "portal settings saved", logger.Time("noticeUntil", until))
	return s.settingsView(), until, nil
}
