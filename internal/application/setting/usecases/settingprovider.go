package usecases

import (
	"context"
	"strings"

	"github.com/civictrack/civictrack/internal/domain/setting"
	sharedConfig "github.com/civictrack/civictrack/internal/shared/config"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

// SettingProvider serves the report catalogs with database-first,
// config-fallback logic so staff can change them without a restart.
type SettingProvider struct {
	settingRepo setting.Repository
	fallback    sharedConfig.ReportConfig
	logger      logger.Interface
}

var _ setting.ReportSettings = (*SettingProvider)(nil)

func NewSettingProvider(settingRepo setting.Repository, fallback sharedConfig.ReportConfig, logger logger.Interface) *SettingProvider {
	return &SettingProvider{
		settingRepo: settingRepo,
		fallback:    fallback,
		logger:      logger,
	}
}

// Districts returns the district catalog.
func (p *SettingProvider) Districts(ctx context.Context) []string {
	if values, ok := p.stringArray(ctx, setting.KeyDistricts); ok {
		return values
	}
	return append([]string(nil), p.fallback.Districts...)
}

// NotificationEvents returns the allow-listed notification codes. A stored
// empty list disables all notifications.
func (p *SettingProvider) NotificationEvents(ctx context.Context) []string {
	if values, ok := p.stringArray(ctx, setting.KeyNotificationEvents); ok {
		return values
	}
	return append([]string(nil), p.fallback.NotificationEvents...)
}

func (p *SettingProvider) SurveyBaseURL(ctx context.Context) string {
	s, err := p.settingRepo.GetByKey(ctx, setting.CategoryReport, setting.KeySurveyBaseURL)
	if err != nil {
		p.logger.Warnw("failed to get survey base url from database, using config", "error", err)
		return p.fallback.SurveyBaseURL
	}
	if s != nil && s.HasValue() {
		return strings.TrimSpace(s.Value())
	}
	return p.fallback.SurveyBaseURL
}

// stringArray reports ok=false when the key is absent or unreadable so the
// caller falls back to configuration.
func (p *SettingProvider) stringArray(ctx context.Context, key string) ([]string, bool) {
	s, err := p.settingRepo.GetByKey(ctx, setting.CategoryReport, key)
	if err != nil {
		p.logger.Warnw("failed to get report setting from database, using config", "key", key, "error", err)
		return nil, false
	}
	if s == nil || !s.HasValue() {
		return nil, false
	}
	values, err := s.GetStringArrayValue()
	if err != nil {
		p.logger.Warnw("malformed report setting, using config", "key", key, "error", err)
		return nil, false
	}
	if values == nil {
		values = []string{}
	}
	return values, true
}
