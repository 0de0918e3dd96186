package report

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
)

const MaxSurveyCommentLength = 500

// Survey is the single satisfaction survey of a closed report. It can be
// submitted once.
type Survey struct {
	id          string
	reportID    string
	token       string
	email       string
	rating      *int
	comment     string
	submittedAt *time.Time
	createdAt   time.Time
}

func NewSurvey(reportID, token, email string, at time.Time) (*Survey, error) {
	if reportID == "" {
		return nil, fmt.Errorf("report ID is required")
	}
	if token == "" {
		return nil, fmt.Errorf("survey token is required")
	}
	return &Survey{
		id:        uuid.NewString(),
		reportID:  reportID,
		token:     token,
		email:     email,
		createdAt: at,
	}, nil
}

func ReconstructSurvey(id, reportID, token, email string, rating *int, comment string, submittedAt *time.Time, createdAt time.Time) *Survey {
	return &Survey{
		id:          id,
		reportID:    reportID,
		token:       token,
		email:       email,
		rating:      rating,
		comment:     comment,
		submittedAt: submittedAt,
		createdAt:   createdAt,
	}
}

func (s *Survey) ID() string {
	return s.id
}

func (s *Survey) ReportID() string {
	return s.reportID
}

func (s *Survey) Token() string {
	return s.token
}

func (s *Survey) Email() string {
	return s.email
}

func (s *Survey) Rating() *int {
	return s.rating
}

func (s *Survey) Comment() string {
	return s.comment
}

func (s *Survey) SubmittedAt() *time.Time {
	return s.submittedAt
}

func (s *Survey) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Survey) IsSubmitted() bool {
	return s.submittedAt != nil
}

// Submit records the citizen's answer.
func (s *Survey) Submit(rating int, comment string, at time.Time) error {
	if s.IsSubmitted() {
		return ErrSurveyAlreadySubmitted
	}
	if rating < vo.MinScale || rating > vo.MaxScale {
		return fmt.Errorf("rating must be between %d and %d", vo.MinScale, vo.MaxScale)
	}
	if utf8.RuneCountInString(comment) > MaxSurveyCommentLength {
		return fmt.Errorf("comment exceeds maximum length of %d characters", MaxSurveyCommentLength)
	}
	s.rating = &rating
	s.comment = comment
	s.submittedAt = &at
	return nil
}
