package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReportStatus(t *testing.T) {
	for _, s := range AllStatuses() {
		got, err := NewReportStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := NewReportStatus("received")
	assert.Error(t, err, "statuses are case sensitive")
	_, err = NewReportStatus("ARCHIVED")
	assert.Error(t, err)
}

func TestReportStatus_CanTransitionTo(t *testing.T) {
	allowed := map[ReportStatus][]ReportStatus{
		StatusReceived:   {StatusVerified},
		StatusVerified:   {StatusScheduled},
		StatusScheduled:  {StatusInProgress},
		StatusInProgress: {StatusResolved},
		StatusResolved:   {StatusClosed},
		StatusClosed:     {StatusReopened},
		StatusReopened:   {StatusInProgress, StatusVerified},
	}

	for _, from := range AllStatuses() {
		for _, to := range AllStatuses() {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestReportStatus_SameStatusNeverAllowed(t *testing.T) {
	for _, s := range AllStatuses() {
		assert.False(t, s.CanTransitionTo(s), s.String())
	}
}

func TestReportStatus_AllowedNextReturnsCopy(t *testing.T) {
	next := StatusReopened.AllowedNext()
	require.Len(t, next, 2)

	next[0] = StatusClosed

	assert.Equal(t, []ReportStatus{StatusInProgress, StatusVerified}, StatusReopened.AllowedNext())
	assert.False(t, StatusReopened.CanTransitionTo(StatusClosed))
}

func TestReportStatus_RequiresNote(t *testing.T) {
	assert.True(t, StatusResolved.RequiresNote())
	assert.True(t, StatusClosed.RequiresNote())
	assert.False(t, StatusScheduled.RequiresNote())
	assert.False(t, StatusReopened.RequiresNote())
}
