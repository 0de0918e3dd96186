package http

import (
	"gorm.io/gorm"

	"github.com/civictrack/civictrack/internal/domain/report"
	"github.com/civictrack/civictrack/internal/domain/setting"
	"github.com/civictrack/civictrack/internal/domain/user"
	"github.com/civictrack/civictrack/internal/infrastructure/repository"
	"github.com/civictrack/civictrack/internal/shared/biztime"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	reportRepo   report.Repository
	eventRepo    report.EventRepository
	evidenceRepo report.EvidenceRepository
	surveyRepo   report.SurveyRepository
	accountRepo  user.Repository
	settingRepo  setting.Repository
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		reportRepo:   repository.NewReportRepository(db, biztime.NowUTC, log),
		eventRepo:    repository.NewReportEventRepository(db),
		evidenceRepo: repository.NewEvidenceRepository(db),
		surveyRepo:   repository.NewSurveyRepository(db),
		accountRepo:  repository.NewAccountRepository(db),
		settingRepo:  repository.NewSystemSettingRepository(db, log),
	}
}
