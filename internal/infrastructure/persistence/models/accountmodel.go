package models

import (
	"time"

	"github.com/civictrack/civictrack/internal/shared/constants"
)

// AccountModel represents citizens, guests and staff alike; role tells them apart.
type AccountModel struct {
	ID          string    `gorm:"column:id;primaryKey;size:32"`
	Email       string    `gorm:"column:email;size:255;not null;uniqueIndex"`
	DisplayName string    `gorm:"column:display_name;size:100;not null"`
	Role        string    `gorm:"column:role;size:20;not null;index"`
	Status      string    `gorm:"column:status;size:20;not null;default:active"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime:false;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime:false;not null"`
}

func (AccountModel) TableName() string {
	return constants.TableAccounts
}
