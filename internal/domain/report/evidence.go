package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
)

// Evidence is a photo attached to a report by its reporter or by staff.
type Evidence struct {
	id           string
	reportID     string
	evidenceType vo.EvidenceType
	url          string
	note         string
	uploadedBy   string
	createdAt    time.Time
}

func NewEvidence(reportID string, evidenceType vo.EvidenceType, url, note, uploadedBy string, at time.Time) (*Evidence, error) {
	if !evidenceType.IsValid() {
		return nil, fmt.Errorf("invalid evidence type: %s", evidenceType)
	}
	if url == "" {
		return nil, fmt.Errorf("evidence URL is required")
	}
	return &Evidence{
		id:           uuid.NewString(),
		reportID:     reportID,
		evidenceType: evidenceType,
		url:          url,
		note:         note,
		uploadedBy:   uploadedBy,
		createdAt:    at,
	}, nil
}

func ReconstructEvidence(id, reportID string, evidenceType vo.EvidenceType, url, note, uploadedBy string, createdAt time.Time) *Evidence {
	return &Evidence{
		id:           id,
		reportID:     reportID,
		evidenceType: evidenceType,
		url:          url,
		note:         note,
		uploadedBy:   uploadedBy,
		createdAt:    createdAt,
	}
}

func (e *Evidence) ID() string {
	return e.id
}

func (e *Evidence) ReportID() string {
	return e.reportID
}

func (e *Evidence) Type() vo.EvidenceType {
	return e.evidenceType
}

func (e *Evidence) URL() string {
	return e.url
}

func (e *Evidence) Note() string {
	return e.note
}

func (e *Evidence) UploadedBy() string {
	return e.uploadedBy
}

func (e *Evidence) CreatedAt() time.Time {
	return e.createdAt
}
