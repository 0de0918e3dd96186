package models

import (
	"time"

	"github.com/civictrack/civictrack/internal/shared/constants"
)

type EvidenceModel struct {
	ID         string    `gorm:"column:id;primaryKey;size:36"`
	ReportID   string    `gorm:"column:report_id;size:32;not null;index"`
	Type       string    `gorm:"column:type;size:20;not null"`
	URL        string    `gorm:"column:url;size:1024;not null"`
	Note       string    `gorm:"column:note;type:text"`
	UploadedBy string    `gorm:"column:uploaded_by;size:32;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime:false;not null"`
}

func (EvidenceModel) TableName() string {
	return constants.TableReportEvidence
}
