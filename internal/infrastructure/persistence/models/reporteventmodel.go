package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/civictrack/civictrack/internal/shared/constants"
)

type ReportEventModel struct {
	ID        string         `gorm:"column:id;primaryKey;size:36"`
	ReportID  string         `gorm:"column:report_id;size:32;not null;index:idx_report_events_report_created"`
	Type      string         `gorm:"column:type;size:40;not null"`
	Note      string         `gorm:"column:note;type:text"`
	Payload   datatypes.JSON `gorm:"column:payload"`
	ActorID   string         `gorm:"column:actor_id;size:32"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime:false;not null;index:idx_report_events_report_created"`
}

func (ReportEventModel) TableName() string {
	return constants.TableReportEvents
}
