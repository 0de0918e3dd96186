package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/civictrack/civictrack/internal/shared/constants"
)

// ReportModel is the persistence model for reports. Status history and photo
// URLs are stored as JSON columns on the row.
type ReportModel struct {
	ID                string         `gorm:"column:id;primaryKey;size:32"`
	Category          string         `gorm:"column:category;size:40;not null;index"`
	Description       string         `gorm:"column:description;type:text;not null"`
	Latitude          float64        `gorm:"column:latitude;not null;index:idx_reports_location"`
	Longitude         float64        `gorm:"column:longitude;not null;index:idx_reports_location"`
	Address           string         `gorm:"column:address;size:255"`
	District          *string        `gorm:"column:district;size:100;index"`
	ReporterID        string         `gorm:"column:reporter_id;size:32;not null;index"`
	PhotoURLs         datatypes.JSON `gorm:"column:photo_urls"`
	Status            string         `gorm:"column:status;size:20;not null;index"`
	StatusHistory     datatypes.JSON `gorm:"column:status_history;not null"`
	AssignedTo        *string        `gorm:"column:assigned_to;size:32;index"`
	AssignedAt        *time.Time     `gorm:"column:assigned_at"`
	AssignedBy        *string        `gorm:"column:assigned_by;size:32"`
	ScheduledAt       *time.Time     `gorm:"column:scheduled_at"`
	SLATargetAt       *time.Time     `gorm:"column:sla_target_at;index"`
	SLABreachedAt     *time.Time     `gorm:"column:sla_breached_at"`
	Impact            *int           `gorm:"column:impact"`
	Urgency           *int           `gorm:"column:urgency"`
	Priority          *string        `gorm:"column:priority;size:20;index"`
	PriorityOverride  *string        `gorm:"column:priority_override;size:20"`
	PriorityUpdatedAt *time.Time     `gorm:"column:priority_updated_at"`
	PriorityUpdatedBy *string        `gorm:"column:priority_updated_by;size:32"`
	Version           int            `gorm:"column:version;not null;default:1"`
	CreatedAt         time.Time      `gorm:"column:created_at;autoCreateTime:false;not null;index"`
	UpdatedAt         time.Time      `gorm:"column:updated_at;autoUpdateTime:false;not null"`
}

func (ReportModel) TableName() string {
	return constants.TableReports
}
