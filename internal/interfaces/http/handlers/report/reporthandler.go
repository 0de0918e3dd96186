// Package report exposes the incident report workflow over HTTP.
package report

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/civictrack/civictrack/internal/application/report/usecases"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/id"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/utils"
)

// Handlers groups the use cases the report handler dispatches to.
type Handlers struct {
	Create       usecases.CreateReportExecutor
	ChangeStatus usecases.ChangeStatusExecutor
	SetTriage    usecases.SetTriageExecutor
	Assign       usecases.AssignReportExecutor
	Schedule     usecases.ScheduleReportExecutor
	District     usecases.UpdateDistrictExecutor
	AddEvidence  usecases.AddEvidenceExecutor
	AddComment   usecases.AddCommentExecutor
	Get          usecases.GetReportExecutor
	List         usecases.ListReportsExecutor
	Map          usecases.ListMapMarkersExecutor
	Events       usecases.ListEventsExecutor
	Evidence     usecases.ListEvidenceExecutor
	Stats        usecases.GetReportStatsExecutor
}

type ReportHandler struct {
	uc     Handlers
	logger logger.Interface
}

func NewReportHandler(uc Handlers, logger logger.Interface) *ReportHandler {
	return &ReportHandler{uc: uc, logger: logger}
}

// CreateReport handles POST /reports
func (h *ReportHandler) CreateReport(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create report", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Create.Execute(c.Request.Context(), req.ToCommand(utils.GetPrincipal(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Report submitted successfully")
}

// ListReports handles GET /reports
func (h *ReportHandler) ListReports(c *gin.Context) {
	h.listReports(c, false)
}

// ListMyReports handles GET /reports/mine
func (h *ReportHandler) ListMyReports(c *gin.Context) {
	h.listReports(c, true)
}

func (h *ReportHandler) listReports(c *gin.Context, mine bool) {
	var req ListReportsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.List.Execute(c.Request.Context(), req.ToQuery(c, utils.GetPrincipal(c), mine))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Reports, result.Total, result.Page, result.PageSize)
}

// ListMapMarkers handles GET /reports/map
func (h *ReportHandler) ListMapMarkers(c *gin.Context) {
	var req ListMarkersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Map.Execute(c.Request.Context(), req.ToQuery(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetStats handles GET /reports/stats
func (h *ReportHandler) GetStats(c *gin.Context) {
	result, err := h.uc.Stats.Execute(c.Request.Context(), usecases.GetReportStatsQuery{
		Actor: utils.GetPrincipal(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetReport handles GET /reports/:id
func (h *ReportHandler) GetReport(c *gin.Context) {
	reportID, err := parseReportID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Get.Execute(c.Request.Context(), usecases.GetReportQuery{
		ReportID: reportID,
		Actor:    utils.GetPrincipal(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ChangeStatus handles PATCH /reports/:id/status
func (h *ReportHandler) ChangeStatus(c *gin.Context) {
	reportID, err := parseReportID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for change status", "report_id", reportID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.ChangeStatus.Execute(c.Request.Context(), usecases.ChangeStatusCommand{
		ReportID: reportID,
		Status:   req.Status,
		Note:     req.Note,
		Actor:    utils.GetPrincipal(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Report status updated", result)
}

// SetTriage handles PATCH /reports/:id/triage
func (h *ReportHandler) SetTriage(c *gin.Context) {
	reportID, err := parseReportID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetTriageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.SetTriage.Execute(c.Request.Context(), req.ToCommand(reportID, utils.GetPrincipal(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Report triage updated", result)
}

// Assign handles PATCH /reports/:id/assignment
func (h *ReportHandler) Assign(c *gin.Context) {
	reportID, err := parseReportID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AssignReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Assign.Execute(c.Request.Context(), usecases.AssignReportCommand{
		ReportID:   reportID,
		AssigneeID: req.AssigneeID,
		Note:       req.Note,
		Actor:      utils.GetPrincipal(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Report assignment updated", result)
}

// Schedule handles PATCH /reports/:id/schedule
func (h *ReportHandler) Schedule(c *gin.Context) {
	reportID, err := parseReportID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ScheduleReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Schedule.Execute(c.Request.Context(), usecases.ScheduleReportCommand{
		ReportID:    reportID,
		ScheduledAt: req.ScheduledAt,
		SLAHours:    req.SLAHours,
		SLATargetAt: req.SLATargetAt,
		Note:        req.Note,
		Actor:       utils.GetPrincipal(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Report scheduled", result)
}

// UpdateDistrict handles PATCH /reports/:id/district
func (h *ReportHandler) UpdateDistrict(c *gin.Context) {
	reportID, err := parseReportID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateDistrictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.District.Execute(c.Request.Context(), usecases.UpdateDistrictCommand{
		ReportID: reportID,
		District: req.District,
		Note:     req.Note,
		Actor:    utils.GetPrincipal(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Report district updated", result)
}

// AddEvidence handles POST /reports/:id/evidence (multipart: file, type, note)
func (h *ReportHandler) AddEvidence(c *gin.Context) {
	reportID, err := parseReportID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var form AddEvidenceForm
	if err := c.ShouldBind(&form); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("file is required"))
		return
	}
	file, err := header.Open()
	if err != nil {
		h.logger.Errorw("failed to open uploaded evidence", "report_id", reportID, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("file could not be read"))
		return
	}
	defer file.Close()

	result, err := h.uc.AddEvidence.Execute(c.Request.Context(), usecases.AddEvidenceCommand{
		ReportID:    reportID,
		Type:        form.Type,
		Note:        form.Note,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
		Actor:       utils.GetPrincipal(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Evidence uploaded successfully")
}

// AddComment handles POST /reports/:id/comments
func (h *ReportHandler) AddComment(c *gin.Context) {
	reportID, err := parseReportID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.AddComment.Execute(c.Request.Context(), usecases.AddCommentCommand{
		ReportID: reportID,
		Note:     req.Note,
		Actor:    utils.GetPrincipal(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Comment added successfully")
}

// ListEvents handles GET /reports/:id/events
func (h *ReportHandler) ListEvents(c *gin.Context) {
	reportID, err := parseReportID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p := utils.ParsePagination(c)
	result, err := h.uc.Events.Execute(c.Request.Context(), usecases.ListEventsQuery{
		ReportID: reportID,
		Actor:    utils.GetPrincipal(c),
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Events, result.Total, result.Page, result.PageSize)
}

// ListEvidence handles GET /reports/:id/evidence
func (h *ReportHandler) ListEvidence(c *gin.Context) {
	reportID, err := parseReportID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Evidence.Execute(c.Request.Context(), usecases.ListEvidenceQuery{
		ReportID: reportID,
		Type:     c.Query("type"),
		Actor:    utils.GetPrincipal(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func parseReportID(c *gin.Context) (string, error) {
	return utils.ParseSIDParam(c, "id", id.PrefixReport, "report")
}
