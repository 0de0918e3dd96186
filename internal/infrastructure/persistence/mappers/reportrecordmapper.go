package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/civictrack/civictrack/internal/domain/report"
	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
	"github.com/civictrack/civictrack/internal/infrastructure/persistence/models"
)

// EventToModel converts an audit event; a nil payload is stored as NULL.
func EventToModel(e *report.Event) (*models.ReportEventModel, error) {
	model := &models.ReportEventModel{
		ID:        e.ID(),
		ReportID:  e.ReportID(),
		Type:      e.Type().String(),
		Note:      e.Note(),
		ActorID:   e.ActorID(),
		CreatedAt: e.CreatedAt(),
	}
	if payload := e.Payload(); payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload of event %s: %w", e.ID(), err)
		}
		model.Payload = datatypes.JSON(data)
	}
	return model, nil
}

func EventToDomain(model *models.ReportEventModel) (*report.Event, error) {
	var payload map[string]any
	if len(model.Payload) > 0 && string(model.Payload) != "null" {
		if err := json.Unmarshal(model.Payload, &payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payload of event %s: %w", model.ID, err)
		}
	}
	return report.ReconstructEvent(
		model.ID,
		model.ReportID,
		vo.EventType(model.Type),
		model.ActorID,
		model.Note,
		payload,
		model.CreatedAt,
	), nil
}

func EvidenceToModel(e *report.Evidence) *models.EvidenceModel {
	return &models.EvidenceModel{
		ID:         e.ID(),
		ReportID:   e.ReportID(),
		Type:       e.Type().String(),
		URL:        e.URL(),
		Note:       e.Note(),
		UploadedBy: e.UploadedBy(),
		CreatedAt:  e.CreatedAt(),
	}
}

func EvidenceToDomain(model *models.EvidenceModel) *report.Evidence {
	return report.ReconstructEvidence(
		model.ID,
		model.ReportID,
		vo.EvidenceType(model.Type),
		model.URL,
		model.Note,
		model.UploadedBy,
		model.CreatedAt,
	)
}

func SurveyToModel(s *report.Survey) *models.SurveyModel {
	return &models.SurveyModel{
		ID:          s.ID(),
		ReportID:    s.ReportID(),
		Token:       s.Token(),
		Email:       s.Email(),
		Rating:      s.Rating(),
		Comment:     s.Comment(),
		SubmittedAt: s.SubmittedAt(),
		CreatedAt:   s.CreatedAt(),
	}
}

func SurveyToDomain(model *models.SurveyModel) *report.Survey {
	if model == nil {
		return nil
	}
	return report.ReconstructSurvey(
		model.ID,
		model.ReportID,
		model.Token,
		model.Email,
		model.Rating,
		model.Comment,
		model.SubmittedAt,
		model.CreatedAt,
	)
}
