package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurvey_Submit(t *testing.T) {
	s, err := NewSurvey("rpt_1", "tok", "ana@example.com", t0)
	require.NoError(t, err)
	assert.False(t, s.IsSubmitted())

	require.NoError(t, s.Submit(4, "quick fix", t0.Add(time.Hour)))

	assert.True(t, s.IsSubmitted())
	assert.Equal(t, 4, *s.Rating())
	assert.Equal(t, "quick fix", s.Comment())
}

func TestSurvey_SubmitTwiceKeepsFirstAnswer(t *testing.T) {
	s, _ := NewSurvey("rpt_1", "tok", "", t0)
	require.NoError(t, s.Submit(5, "great", t0))

	err := s.Submit(1, "changed my mind", t0.Add(time.Hour))

	assert.ErrorIs(t, err, ErrSurveyAlreadySubmitted)
	assert.Equal(t, 5, *s.Rating())
	assert.Equal(t, "great", s.Comment())
	assert.Equal(t, t0, *s.SubmittedAt())
}

func TestSurvey_SubmitValidation(t *testing.T) {
	s, _ := NewSurvey("rpt_1", "tok", "", t0)

	assert.Error(t, s.Submit(0, "", t0))
	assert.Error(t, s.Submit(6, "", t0))
	assert.Error(t, s.Submit(3, strings.Repeat("x", MaxSurveyCommentLength+1), t0))
	assert.False(t, s.IsSubmitted())

	assert.NoError(t, s.Submit(3, strings.Repeat("x", MaxSurveyCommentLength), t0))
}
