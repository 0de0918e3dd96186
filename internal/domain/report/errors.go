package report

import "errors"

var (
	// ErrReportNotFound is returned when no report has the requested ID.
	ErrReportNotFound = errors.New("report not found")

	// ErrInvalidTransition is returned when the target status is not reachable
	// from the current one, including the current status itself.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNoteRequired is returned when entering RESOLVED or CLOSED without a note.
	ErrNoteRequired = errors.New("a note is required for this status")

	// ErrVersionConflict is returned when a concurrent write changed the report.
	ErrVersionConflict = errors.New("report was modified concurrently")

	// ErrReportClosed is returned when mutating evidence on a closed report.
	ErrReportClosed = errors.New("report is closed")

	// ErrSurveyNotFound is returned when no survey matches a token.
	ErrSurveyNotFound = errors.New("survey not found")

	// ErrSurveyAlreadySubmitted is returned on a second submission.
	ErrSurveyAlreadySubmitted = errors.New("survey already submitted")
)
