package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys set by middleware
	ContextKeyPrincipal = "principal"
	ContextKeyRequestID = "request_id"

	TableReports        = "reports"
	TableReportEvents   = "report_events"
	TableReportEvidence = "report_evidence"
	TableReportSurveys  = "report_surveys"
	TableAccounts       = "accounts"
	TableSettings       = "system_settings"
)
