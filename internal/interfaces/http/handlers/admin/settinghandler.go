// Package admin provides HTTP handlers for administrative operations.
package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/civictrack/civictrack/internal/application/setting/usecases"
	"github.com/civictrack/civictrack/internal/domain/setting"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/utils"
)

// ReportSettingsUpdater persists report workflow settings.
type ReportSettingsUpdater interface {
	Execute(ctx context.Context, cmd usecases.UpdateReportSettingsCommand) error
}

// ReportSettingsResponse is the effective configuration after database
// overrides are applied to the static defaults.
type ReportSettingsResponse struct {
	Districts          []string `json:"districts"`
	NotificationEvents []string `json:"notification_events"`
	SurveyBaseURL      string   `json:"survey_base_url"`
}

// UpdateReportSettingsRequest replaces the provided fields; omitted fields keep
// their current values.
type UpdateReportSettingsRequest struct {
	Districts          []string `json:"districts" binding:"omitempty,max=200,dive,max=100"`
	NotificationEvents []string `json:"notificationEvents" binding:"omitempty,dive,max=64"`
	SurveyBaseURL      *string  `json:"surveyBaseUrl" binding:"omitempty,url"`
}

// SettingHandler handles report settings admin API operations
type SettingHandler struct {
	settings setting.ReportSettings
	updateUC ReportSettingsUpdater
	logger   logger.Interface
}

func NewSettingHandler(settings setting.ReportSettings, updateUC ReportSettingsUpdater, logger logger.Interface) *SettingHandler {
	return &SettingHandler{
		settings: settings,
		updateUC: updateUC,
		logger:   logger,
	}
}

// GetReportSettings handles GET /admin/settings/report
func (h *SettingHandler) GetReportSettings(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", h.current(c.Request.Context()))
}

// UpdateReportSettings handles PUT /admin/settings/report
func (h *SettingHandler) UpdateReportSettings(c *gin.Context) {
	var req UpdateReportSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update report settings", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateReportSettingsCommand{
		Districts:          req.Districts,
		NotificationEvents: req.NotificationEvents,
		SurveyBaseURL:      req.SurveyBaseURL,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if p := utils.GetPrincipal(c); p != nil {
		h.logger.Infow("report settings updated", "account_id", p.AccountID)
	}
	utils.SuccessResponse(c, http.StatusOK, "Settings updated successfully", h.current(c.Request.Context()))
}

func (h *SettingHandler) current(ctx context.Context) ReportSettingsResponse {
	districts := h.settings.Districts(ctx)
	if districts == nil {
		districts = []string{}
	}
	events := h.settings.NotificationEvents(ctx)
	if events == nil {
		events = []string{}
	}
	return ReportSettingsResponse{
		Districts:          districts,
		NotificationEvents: events,
		SurveyBaseURL:      h.settings.SurveyBaseURL(ctx),
	}
}
