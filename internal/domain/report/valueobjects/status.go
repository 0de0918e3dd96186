package valueobjects

import "fmt"

type ReportStatus string

const (
	StatusReceived   ReportStatus = "RECEIVED"
	StatusVerified   ReportStatus = "VERIFIED"
	StatusScheduled  ReportStatus = "SCHEDULED"
	StatusInProgress ReportStatus = "IN_PROGRESS"
	StatusResolved   ReportStatus = "RESOLVED"
	StatusClosed     ReportStatus = "CLOSED"
	StatusReopened   ReportStatus = "REOPENED"
)

var validReportStatuses = map[ReportStatus]bool{
	StatusReceived:   true,
	StatusVerified:   true,
	StatusScheduled:  true,
	StatusInProgress: true,
	StatusResolved:   true,
	StatusClosed:     true,
	StatusReopened:   true,
}

// reportStatusTransitions is the only source of allowed moves. It is never
// mutated after init; AllowedNext hands out copies.
var reportStatusTransitions = map[ReportStatus][]ReportStatus{
	StatusReceived:   {StatusVerified},
	StatusVerified:   {StatusScheduled},
	StatusScheduled:  {StatusInProgress},
	StatusInProgress: {StatusResolved},
	StatusResolved:   {StatusClosed},
	StatusClosed:     {StatusReopened},
	StatusReopened:   {StatusInProgress, StatusVerified},
}

// AllStatuses lists statuses in workflow order.
func AllStatuses() []ReportStatus {
	return []ReportStatus{
		StatusReceived,
		StatusVerified,
		StatusScheduled,
		StatusInProgress,
		StatusResolved,
		StatusClosed,
		StatusReopened,
	}
}

func (s ReportStatus) String() string {
	return string(s)
}

func (s ReportStatus) IsValid() bool {
	return validReportStatuses[s]
}

// AllowedNext returns the statuses reachable from s in one step.
func (s ReportStatus) AllowedNext() []ReportStatus {
	next := reportStatusTransitions[s]
	out := make([]ReportStatus, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo is false for the same status: a report never moves to where it already is.
func (s ReportStatus) CanTransitionTo(target ReportStatus) bool {
	for _, allowed := range reportStatusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// RequiresNote reports whether entering s needs an explanatory note.
func (s ReportStatus) RequiresNote() bool {
	return s == StatusResolved || s == StatusClosed
}

// IsTerminalForWork is true once field work is finished.
func (s ReportStatus) IsTerminalForWork() bool {
	return s == StatusResolved || s == StatusClosed
}

func (s ReportStatus) IsClosed() bool {
	return s == StatusClosed
}

func NewReportStatus(s string) (ReportStatus, error) {
	rs := ReportStatus(s)
	if !rs.IsValid() {
		return "", fmt.Errorf("invalid report status: %s", s)
	}
	return rs, nil
}
