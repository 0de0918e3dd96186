package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/civictrack/civictrack/internal/domain/setting"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

// UpdateReportSettingsCommand replaces the given report settings; nil fields
// are left as they are.
type UpdateReportSettingsCommand struct {
	Districts          []string
	NotificationEvents []string
	SurveyBaseURL      *string
}

type UpdateReportSettingsUseCase struct {
	settingRepo setting.Repository
	now         func() time.Time
	logger      logger.Interface
}

func NewUpdateReportSettingsUseCase(settingRepo setting.Repository, now func() time.Time, logger logger.Interface) *UpdateReportSettingsUseCase {
	return &UpdateReportSettingsUseCase{
		settingRepo: settingRepo,
		now:         now,
		logger:      logger,
	}
}

func (uc *UpdateReportSettingsUseCase) Execute(ctx context.Context, cmd UpdateReportSettingsCommand) error {
	if cmd.Districts != nil {
		districts, err := normalizeList(cmd.Districts)
		if err != nil {
			return errors.NewValidationError("invalid districts", err.Error())
		}
		if err := uc.upsertJSON(ctx, setting.KeyDistricts, districts); err != nil {
			return err
		}
	}
	if cmd.NotificationEvents != nil {
		events, err := normalizeList(cmd.NotificationEvents)
		if err != nil {
			return errors.NewValidationError("invalid notification events", err.Error())
		}
		if err := uc.upsertJSON(ctx, setting.KeyNotificationEvents, events); err != nil {
			return err
		}
	}
	if cmd.SurveyBaseURL != nil {
		if err := uc.upsertString(ctx, setting.KeySurveyBaseURL, strings.TrimSpace(*cmd.SurveyBaseURL)); err != nil {
			return err
		}
	}
	return nil
}

func (uc *UpdateReportSettingsUseCase) load(ctx context.Context, key string, valueType setting.ValueType) (*setting.SystemSetting, error) {
	s, err := uc.settingRepo.GetByKey(ctx, setting.CategoryReport, key)
	if err != nil {
		uc.logger.Errorw("failed to load setting", "key", key, "error", err)
		return nil, errors.NewInternalError("failed to load setting")
	}
	if s != nil {
		return s, nil
	}
	s, err = setting.NewSystemSetting(setting.CategoryReport, key, valueType, uc.now())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	return s, nil
}

func (uc *UpdateReportSettingsUseCase) upsertJSON(ctx context.Context, key string, value any) error {
	s, err := uc.load(ctx, key, setting.ValueTypeJSON)
	if err != nil {
		return err
	}
	if err := s.SetJSONValue(value, uc.now()); err != nil {
		return errors.NewValidationError(err.Error())
	}
	return uc.save(ctx, s)
}

func (uc *UpdateReportSettingsUseCase) upsertString(ctx context.Context, key, value string) error {
	s, err := uc.load(ctx, key, setting.ValueTypeString)
	if err != nil {
		return err
	}
	if err := s.SetStringValue(value, uc.now()); err != nil {
		return errors.NewValidationError(err.Error())
	}
	return uc.save(ctx, s)
}

func (uc *UpdateReportSettingsUseCase) save(ctx context.Context, s *setting.SystemSetting) error {
	if err := uc.settingRepo.Upsert(ctx, s); err != nil {
		uc.logger.Errorw("failed to save setting", "key", s.Key(), "error", err)
		return errors.NewInternalError("failed to save setting")
	}
	uc.logger.Infow("setting updated", "category", s.Category(), "key", s.Key(), "version", s.Version())
	return nil
}

// normalizeList trims entries and rejects blanks and duplicates.
func normalizeList(values []string) ([]string, error) {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, fmt.Errorf("blank entry")
		}
		if seen[v] {
			return nil, fmt.Errorf("duplicate entry %q", v)
		}
		seen[v] = true
		out = append(out, v)
	}
	return out, nil
}
