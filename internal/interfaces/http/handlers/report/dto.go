package report

import (
	"github.com/gin-gonic/gin"

	"github.com/civictrack/civictrack/internal/application/report/usecases"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/utils"
)

type CreateReportRequest struct {
	Category    string   `json:"category" binding:"required,report_category"`
	Description string   `json:"description" binding:"required,max=5000"`
	Latitude    *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
	Address     string   `json:"address" binding:"omitempty,max=255"`
	District    *string  `json:"district" binding:"omitempty,max=100"`
	PhotoURLs   []string `json:"photoUrls" binding:"omitempty,max=10,dive,url"`
	Email       string   `json:"email" binding:"omitempty,email,max=255"`
	DisplayName string   `json:"displayName" binding:"omitempty,max=100"`
}

func (r *CreateReportRequest) ToCommand(actor *authorization.Principal) usecases.CreateReportCommand {
	return usecases.CreateReportCommand{
		Actor:       actor,
		Email:       r.Email,
		DisplayName: r.DisplayName,
		Category:    r.Category,
		Description: r.Description,
		Latitude:    *r.Latitude,
		Longitude:   *r.Longitude,
		Address:     r.Address,
		District:    r.District,
		PhotoURLs:   r.PhotoURLs,
	}
}

// Staff mutation bodies only check shape here; the use cases own the
// semantic rules so permission errors are reported before validation ones.

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

type SetTriageRequest struct {
	Impact           *int    `json:"impact"`
	Urgency          *int    `json:"urgency"`
	PriorityOverride *string `json:"priorityOverride"`
}

func (r *SetTriageRequest) ToCommand(reportID string, actor *authorization.Principal) usecases.SetTriageCommand {
	cmd := usecases.SetTriageCommand{
		ReportID:         reportID,
		PriorityOverride: r.PriorityOverride,
		Actor:            actor,
	}
	if r.Impact != nil {
		cmd.Impact = *r.Impact
	}
	if r.Urgency != nil {
		cmd.Urgency = *r.Urgency
	}
	return cmd
}

type AssignReportRequest struct {
	AssigneeID *string `json:"assigneeId"`
	Note       string  `json:"note"`
}

type ScheduleReportRequest struct {
	ScheduledAt string  `json:"scheduledAt"`
	SLAHours    *int    `json:"slaHours" binding:"omitempty,min=0,max=8760"`
	SLATargetAt *string `json:"slaTargetAt"`
	Note        string  `json:"note"`
}

type UpdateDistrictRequest struct {
	District *string `json:"district"`
	Note     string  `json:"note"`
}

type AddCommentRequest struct {
	Note string `json:"note" binding:"required,max=2000"`
}

type AddEvidenceForm struct {
	Type string `form:"type" binding:"required,evidence_type"`
	Note string `form:"note" binding:"omitempty,max=2000"`
}

type ListReportsRequest struct {
	Status     string `form:"status" binding:"omitempty,report_status"`
	Category   string `form:"category" binding:"omitempty,report_category"`
	District   string `form:"district" binding:"omitempty,max=100"`
	AssigneeID string `form:"assignee_id" binding:"omitempty,max=64"`
	Priority   string `form:"priority" binding:"omitempty,priority_tier"`
}

func (r *ListReportsRequest) ToQuery(c *gin.Context, actor *authorization.Principal, mine bool) usecases.ListReportsQuery {
	p := utils.ParsePagination(c)
	return usecases.ListReportsQuery{
		Actor:      actor,
		Mine:       mine,
		Status:     r.Status,
		Category:   r.Category,
		District:   r.District,
		AssigneeID: r.AssigneeID,
		Priority:   r.Priority,
		Page:       p.Page,
		PageSize:   p.PageSize,
	}
}

type ListMarkersRequest struct {
	Status   string `form:"status" binding:"omitempty,report_status"`
	Category string `form:"category" binding:"omitempty,report_category"`
}

func (r *ListMarkersRequest) ToQuery(c *gin.Context) usecases.ListMapMarkersQuery {
	return usecases.ListMapMarkersQuery{
		Status:   r.Status,
		Category: r.Category,
		MinLat:   utils.ParseOptionalFloat(c, "min_lat"),
		MaxLat:   utils.ParseOptionalFloat(c, "max_lat"),
		MinLng:   utils.ParseOptionalFloat(c, "min_lng"),
		MaxLng:   utils.ParseOptionalFloat(c, "max_lng"),
	}
}

type SubmitSurveyRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"omitempty,max=2000"`
}
