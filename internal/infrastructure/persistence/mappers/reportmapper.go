package mappers

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/civictrack/civictrack/internal/domain/report"
	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
	"github.com/civictrack/civictrack/internal/infrastructure/persistence/models"
)

// ReportMapper handles the conversion between Report aggregates and persistence models.
type ReportMapper interface {
	ToModel(r *report.Report) (*models.ReportModel, error)
	ToDomain(model *models.ReportModel) (*report.Report, error)
	ToDomainList(modelList []models.ReportModel) ([]*report.Report, error)
}

type ReportMapperImpl struct{}

func NewReportMapper() ReportMapper {
	return &ReportMapperImpl{}
}

// statusEntryRecord is the JSON shape of one status history entry.
type statusEntryRecord struct {
	Status  string    `json:"status"`
	At      time.Time `json:"at"`
	ActorID string    `json:"actorId"`
	Note    string    `json:"note,omitempty"`
}

func (m *ReportMapperImpl) ToModel(r *report.Report) (*models.ReportModel, error) {
	history := r.StatusHistory()
	records := make([]statusEntryRecord, len(history))
	for i, entry := range history {
		records[i] = statusEntryRecord{
			Status:  entry.Status.String(),
			At:      entry.At.UTC(),
			ActorID: entry.ActorID,
			Note:    entry.Note,
		}
	}
	historyJSON, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal status history of report %s: %w", r.ID(), err)
	}

	photos := r.PhotoURLs()
	if photos == nil {
		photos = []string{}
	}
	photosJSON, err := json.Marshal(photos)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal photo URLs of report %s: %w", r.ID(), err)
	}

	return &models.ReportModel{
		ID:                r.ID(),
		Category:          r.Category().String(),
		Description:       r.Description(),
		Latitude:          r.Location().Latitude(),
		Longitude:         r.Location().Longitude(),
		Address:           r.Address(),
		District:          r.District(),
		ReporterID:        r.ReporterID(),
		PhotoURLs:         datatypes.JSON(photosJSON),
		Status:            r.Status().String(),
		StatusHistory:     datatypes.JSON(historyJSON),
		AssignedTo:        r.AssignedTo(),
		AssignedAt:        r.AssignedAt(),
		AssignedBy:        r.AssignedBy(),
		ScheduledAt:       r.ScheduledAt(),
		SLATargetAt:       r.SLATargetAt(),
		SLABreachedAt:     r.SLABreachedAt(),
		Impact:            r.Impact(),
		Urgency:           r.Urgency(),
		Priority:          priorityString(r.Priority()),
		PriorityOverride:  priorityString(r.PriorityOverride()),
		PriorityUpdatedAt: r.PriorityUpdatedAt(),
		PriorityUpdatedBy: r.PriorityUpdatedBy(),
		Version:           r.Version(),
		CreatedAt:         r.CreatedAt(),
		UpdatedAt:         r.UpdatedAt(),
	}, nil
}

func (m *ReportMapperImpl) ToDomain(model *models.ReportModel) (*report.Report, error) {
	if model == nil {
		return nil, nil
	}

	status, err := vo.NewReportStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", model.ID, err)
	}
	category, err := vo.NewCategory(model.Category)
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", model.ID, err)
	}
	location, err := vo.NewLocation(model.Latitude, model.Longitude)
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", model.ID, err)
	}

	var records []statusEntryRecord
	if len(model.StatusHistory) > 0 {
		if err := json.Unmarshal(model.StatusHistory, &records); err != nil {
			return nil, fmt.Errorf("failed to unmarshal status history of report %s: %w", model.ID, err)
		}
	}
	history := make([]report.StatusEntry, len(records))
	for i, rec := range records {
		entryStatus, err := vo.NewReportStatus(rec.Status)
		if err != nil {
			return nil, fmt.Errorf("report %s history: %w", model.ID, err)
		}
		history[i] = report.StatusEntry{
			Status:  entryStatus,
			At:      rec.At,
			ActorID: rec.ActorID,
			Note:    rec.Note,
		}
	}

	var photos []string
	if len(model.PhotoURLs) > 0 {
		if err := json.Unmarshal(model.PhotoURLs, &photos); err != nil {
			return nil, fmt.Errorf("failed to unmarshal photo URLs of report %s: %w", model.ID, err)
		}
	}

	priority, err := parsePriority(model.Priority)
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", model.ID, err)
	}
	override, err := parsePriority(model.PriorityOverride)
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", model.ID, err)
	}

	return report.ReconstructReport(report.ReconstructParams{
		ID:                model.ID,
		Category:          category,
		Description:       model.Description,
		Location:          location,
		Address:           model.Address,
		District:          model.District,
		ReporterID:        model.ReporterID,
		PhotoURLs:         photos,
		Status:            status,
		History:           history,
		AssignedTo:        model.AssignedTo,
		AssignedAt:        model.AssignedAt,
		AssignedBy:        model.AssignedBy,
		ScheduledAt:       model.ScheduledAt,
		SLATargetAt:       model.SLATargetAt,
		SLABreachedAt:     model.SLABreachedAt,
		Impact:            model.Impact,
		Urgency:           model.Urgency,
		Priority:          priority,
		PriorityOverride:  override,
		PriorityUpdatedAt: model.PriorityUpdatedAt,
		PriorityUpdatedBy: model.PriorityUpdatedBy,
		Version:           model.Version,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	})
}

func (m *ReportMapperImpl) ToDomainList(modelList []models.ReportModel) ([]*report.Report, error) {
	reports := make([]*report.Report, 0, len(modelList))
	for i := range modelList {
		r, err := m.ToDomain(&modelList[i])
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

func priorityString(p *vo.Priority) *string {
	if p == nil {
		return nil
	}
	s := p.String()
	return &s
}

func parsePriority(s *string) (*vo.Priority, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	p, err := vo.NewPriority(*s)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
