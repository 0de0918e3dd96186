// Package dto holds the read models returned by the report use cases.
package dto

import (
	"time"

	"github.com/civictrack/civictrack/internal/domain/report"
	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
)

type StatusEntryDTO struct {
	Status  string    `json:"status"`
	At      time.Time `json:"at"`
	ActorID string    `json:"actor_id"`
	Note    string    `json:"note,omitempty"`
}

type ReportDTO struct {
	ID                string           `json:"id"`
	Category          string           `json:"category"`
	Description       string           `json:"description"`
	Latitude          float64          `json:"latitude"`
	Longitude         float64          `json:"longitude"`
	Address           string           `json:"address,omitempty"`
	District          *string          `json:"district"`
	ReporterID        string           `json:"reporter_id"`
	Status            string           `json:"status"`
	AllowedNext       []string         `json:"allowed_next"`
	History           []StatusEntryDTO `json:"history"`
	PhotoURLs         []string         `json:"photo_urls"`
	AssignedTo        *string          `json:"assigned_to"`
	AssignedAt        *time.Time       `json:"assigned_at"`
	AssignedBy        *string          `json:"assigned_by"`
	ScheduledAt       *time.Time       `json:"scheduled_at"`
	SLATargetAt       *time.Time       `json:"sla_target_at"`
	SLABreachedAt     *time.Time       `json:"sla_breached_at"`
	SLABreached       bool             `json:"sla_breached"`
	Impact            *int             `json:"impact"`
	Urgency           *int             `json:"urgency"`
	Priority          *string          `json:"priority"`
	PriorityOverride  *string          `json:"priority_override"`
	EffectivePriority *string          `json:"effective_priority"`
	PriorityUpdatedAt *time.Time       `json:"priority_updated_at"`
	PriorityUpdatedBy *string          `json:"priority_updated_by"`
	Version           int              `json:"version"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// ReportListItemDTO is the compact row used by the staff list and "my reports".
type ReportListItemDTO struct {
	ID                string     `json:"id"`
	Category          string     `json:"category"`
	Status            string     `json:"status"`
	District          *string    `json:"district"`
	AssignedTo        *string    `json:"assigned_to"`
	Priority          *string    `json:"priority"`
	PriorityOverride  *string    `json:"priority_override"`
	EffectivePriority *string    `json:"effective_priority"`
	ScheduledAt       *time.Time `json:"scheduled_at"`
	SLABreached       bool       `json:"sla_breached"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type MarkerDTO struct {
	ID        string  `json:"id"`
	Category  string  `json:"category"`
	Status    string  `json:"status"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type EventDTO struct {
	ID        string         `json:"id"`
	ReportID  string         `json:"report_id"`
	Type      string         `json:"type"`
	ActorID   string         `json:"actor_id"`
	Note      string         `json:"note,omitempty"`
	Payload   map[string]any `json:"payload,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type EvidenceDTO struct {
	ID         string    `json:"id"`
	ReportID   string    `json:"report_id"`
	Type       string    `json:"type"`
	URL        string    `json:"url"`
	Note       string    `json:"note,omitempty"`
	UploadedBy string    `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// SurveyDTO is the public view behind a survey link. It never exposes the
// reporter's email.
type SurveyDTO struct {
	ReportID    string     `json:"report_id"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	Submitted   bool       `json:"submitted"`
	Rating      *int       `json:"rating,omitempty"`
	Comment     string     `json:"comment,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

type StatsDTO struct {
	Total       int64            `json:"total"`
	ByStatus    map[string]int64 `json:"by_status"`
	ByPriority  map[string]int64 `json:"by_priority"`
	Untriaged   int64            `json:"untriaged"`
	SLABreached int64            `json:"sla_breached"`
}

func priorityString(p *vo.Priority) *string {
	if p == nil {
		return nil
	}
	s := p.String()
	return &s
}

func ToReportDTO(r *report.Report, now time.Time) *ReportDTO {
	if r == nil {
		return nil
	}

	history := make([]StatusEntryDTO, 0, len(r.StatusHistory()))
	for _, h := range r.StatusHistory() {
		history = append(history, StatusEntryDTO{
			Status:  h.Status.String(),
			At:      h.At,
			ActorID: h.ActorID,
			Note:    h.Note,
		})
	}

	next := r.Status().AllowedNext()
	allowed := make([]string, 0, len(next))
	for _, s := range next {
		allowed = append(allowed, s.String())
	}

	photos := r.PhotoURLs()
	if photos == nil {
		photos = []string{}
	}

	return &ReportDTO{
		ID:                r.ID(),
		Category:          r.Category().String(),
		Description:       r.Description(),
		Latitude:          r.Location().Latitude(),
		Longitude:         r.Location().Longitude(),
		Address:           r.Address(),
		District:          r.District(),
		ReporterID:        r.ReporterID(),
		Status:            r.Status().String(),
		AllowedNext:       allowed,
		History:           history,
		PhotoURLs:         photos,
		AssignedTo:        r.AssignedTo(),
		AssignedAt:        r.AssignedAt(),
		AssignedBy:        r.AssignedBy(),
		ScheduledAt:       r.ScheduledAt(),
		SLATargetAt:       r.SLATargetAt(),
		SLABreachedAt:     r.SLABreachedAt(),
		SLABreached:       r.IsSLABreached(now),
		Impact:            r.Impact(),
		Urgency:           r.Urgency(),
		Priority:          priorityString(r.Priority()),
		PriorityOverride:  priorityString(r.PriorityOverride()),
		EffectivePriority: priorityString(r.EffectivePriority()),
		PriorityUpdatedAt: r.PriorityUpdatedAt(),
		PriorityUpdatedBy: r.PriorityUpdatedBy(),
		Version:           r.Version(),
		CreatedAt:         r.CreatedAt(),
		UpdatedAt:         r.UpdatedAt(),
	}
}

func ToReportListItemDTO(r *report.Report, now time.Time) *ReportListItemDTO {
	return &ReportListItemDTO{
		ID:                r.ID(),
		Category:          r.Category().String(),
		Status:            r.Status().String(),
		District:          r.District(),
		AssignedTo:        r.AssignedTo(),
		Priority:          priorityString(r.Priority()),
		PriorityOverride:  priorityString(r.PriorityOverride()),
		EffectivePriority: priorityString(r.EffectivePriority()),
		ScheduledAt:       r.ScheduledAt(),
		SLABreached:       r.IsSLABreached(now),
		CreatedAt:         r.CreatedAt(),
		UpdatedAt:         r.UpdatedAt(),
	}
}

func ToReportListItemDTOs(reports []*report.Report, now time.Time) []*ReportListItemDTO {
	items := make([]*ReportListItemDTO, 0, len(reports))
	for _, r := range reports {
		items = append(items, ToReportListItemDTO(r, now))
	}
	return items
}

func ToMarkerDTOs(reports []*report.Report) []MarkerDTO {
	markers := make([]MarkerDTO, 0, len(reports))
	for _, r := range reports {
		markers = append(markers, MarkerDTO{
			ID:        r.ID(),
			Category:  r.Category().String(),
			Status:    r.Status().String(),
			Latitude:  r.Location().Latitude(),
			Longitude: r.Location().Longitude(),
		})
	}
	return markers
}

func ToEventDTO(e *report.Event) *EventDTO {
	return &EventDTO{
		ID:        e.ID(),
		ReportID:  e.ReportID(),
		Type:      e.Type().String(),
		ActorID:   e.ActorID(),
		Note:      e.Note(),
		Payload:   e.Payload(),
		CreatedAt: e.CreatedAt(),
	}
}

func ToEventDTOs(events []*report.Event) []*EventDTO {
	out := make([]*EventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, ToEventDTO(e))
	}
	return out
}

func ToEvidenceDTO(e *report.Evidence) *EvidenceDTO {
	return &EvidenceDTO{
		ID:         e.ID(),
		ReportID:   e.ReportID(),
		Type:       e.Type().String(),
		URL:        e.URL(),
		Note:       e.Note(),
		UploadedBy: e.UploadedBy(),
		CreatedAt:  e.CreatedAt(),
	}
}

func ToEvidenceDTOs(items []*report.Evidence) []*EvidenceDTO {
	out := make([]*EvidenceDTO, 0, len(items))
	for _, e := range items {
		out = append(out, ToEvidenceDTO(e))
	}
	return out
}

// ToSurveyDTO builds the public survey view. r may be nil when the report
// can no longer be loaded.
func ToSurveyDTO(s *report.Survey, r *report.Report) *SurveyDTO {
	out := &SurveyDTO{
		ReportID:    s.ReportID(),
		Submitted:   s.IsSubmitted(),
		Rating:      s.Rating(),
		Comment:     s.Comment(),
		SubmittedAt: s.SubmittedAt(),
	}
	if r != nil {
		out.Category = r.Category().String()
		out.Status = r.Status().String()
	}
	return out
}

func ToStatsDTO(s *report.Stats) *StatsDTO {
	out := &StatsDTO{
		Total:       s.Total,
		ByStatus:    make(map[string]int64, len(vo.AllStatuses())),
		ByPriority:  make(map[string]int64, 4),
		Untriaged:   s.Untriaged,
		SLABreached: s.SLABreached,
	}
	for _, st := range vo.AllStatuses() {
		out.ByStatus[st.String()] = s.ByStatus[st]
	}
	for _, p := range []vo.Priority{vo.PriorityLow, vo.PriorityMedium, vo.PriorityHigh, vo.PriorityCritical} {
		out.ByPriority[p.String()] = s.ByPriority[p]
	}
	return out
}
