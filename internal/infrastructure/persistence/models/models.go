// Package models contains the GORM persistence models.
package models

// AllModels lists every model managed by AutoMigrate.
func AllModels() []any {
	return []any{
		&ReportModel{},
		&ReportEventModel{},
		&EvidenceModel{},
		&SurveyModel{},
		&AccountModel{},
		&SystemSettingModel{},
	}
}
