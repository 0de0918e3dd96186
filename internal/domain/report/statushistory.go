package report

import (
	"time"

	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
)

// StatusEntry is one step in a report's status history.
type StatusEntry struct {
	Status  vo.ReportStatus
	At      time.Time
	ActorID string
	Note    string
}
