package models

import (
	"time"

	"github.com/civictrack/civictrack/internal/shared/constants"
)

// SurveyModel stores the single satisfaction survey of a report; the unique
// report_id index enforces one survey per report.
type SurveyModel struct {
	ID          string     `gorm:"column:id;primaryKey;size:36"`
	ReportID    string     `gorm:"column:report_id;size:32;not null;uniqueIndex"`
	Token       string     `gorm:"column:token;size:96;not null;uniqueIndex"`
	Email       string     `gorm:"column:email;size:255;not null"`
	Rating      *int       `gorm:"column:rating"`
	Comment     string     `gorm:"column:comment;type:text"`
	SubmittedAt *time.Time `gorm:"column:submitted_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime:false;not null"`
}

func (SurveyModel) TableName() string {
	return constants.TableReportSurveys
}
