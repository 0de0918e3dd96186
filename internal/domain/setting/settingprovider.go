package setting

import "context"

// ReportSettings supplies the runtime catalogs the report workflow validates
// against. Implementations read the database first and fall back to static
// configuration.
type ReportSettings interface {
	Districts(ctx context.Context) []string
	NotificationEvents(ctx context.Context) []string
	SurveyBaseURL(ctx context.Context) string
}
