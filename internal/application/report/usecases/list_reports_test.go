package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	apperrors "github.com/civictrack/civictrack/internal/shared/errors"
)

func TestListReportsUseCase_StaffAndMine(t *testing.T) {
	f := newFixture(t)
	f.seedReport(t, vo.StatusReceived)
	f.seedReport(t, vo.StatusScheduled)
	uc := NewListReportsUseCase(f.reports, policyChecker{}, fixedClock(testNow), f.log)

	all, err := uc.Execute(context.Background(), ListReportsQuery{Actor: principalOf(f.operator)})
	require.NoError(t, err)
	assert.EqualValues(t, 2, all.Total)
	assert.Equal(t, 1, all.Page)
	assert.Equal(t, 20, all.PageSize)

	scheduled, err := uc.Execute(context.Background(), ListReportsQuery{Actor: principalOf(f.operator), Status: "scheduled"})
	require.NoError(t, err)
	require.Len(t, scheduled.Reports, 1)
	assert.Equal(t, "SCHEDULED", scheduled.Reports[0].Status)

	_, err = uc.Execute(context.Background(), ListReportsQuery{Actor: principalOf(f.citizen)})
	assert.True(t, apperrors.IsForbiddenError(err))

	mine, err := uc.Execute(context.Background(), ListReportsQuery{Actor: principalOf(f.citizen), Mine: true})
	require.NoError(t, err)
	assert.EqualValues(t, 2, mine.Total)

	other, err := uc.Execute(context.Background(), ListReportsQuery{
		Actor: &authorization.Principal{AccountID: "usr_other", Role: authorization.RoleCitizen},
		Mine:  true,
	})
	require.NoError(t, err)
	assert.Zero(t, other.Total)

	_, err = uc.Execute(context.Background(), ListReportsQuery{Actor: principalOf(f.operator), Priority: "SEVERE"})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestListMapMarkersUseCase_HidesClosedByDefault(t *testing.T) {
	f := newFixture(t)
	open := f.seedReport(t, vo.StatusInProgress)
	f.seedReport(t, vo.StatusClosed)
	uc := NewListMapMarkersUseCase(f.reports, f.log)

	markers, err := uc.Execute(context.Background(), ListMapMarkersQuery{})
	require.NoError(t, err)
	require.Len(t, markers, 1)
	assert.Equal(t, open.ID(), markers[0].ID)
	assert.InDelta(t, 4.6097, markers[0].Latitude, 1e-9)

	closed, err := uc.Execute(context.Background(), ListMapMarkersQuery{Status: "CLOSED"})
	require.NoError(t, err)
	assert.Len(t, closed, 1)

	lo, hi := 10.0, 5.0
	_, err = uc.Execute(context.Background(), ListMapMarkersQuery{MinLat: &lo, MaxLat: &hi})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestListEventsUseCase_OwnerOrStaff(t *testing.T) {
	f := newFixture(t)
	r := f.seedReport(t, vo.StatusReceived)
	_, err := f.changeStatus(nil).Execute(context.Background(), ChangeStatusCommand{ReportID: r.ID(), Status: "VERIFIED", Actor: principalOf(f.operator)})
	require.NoError(t, err)
	uc := NewListEventsUseCase(f.reports, f.events, f.log)

	got, err := uc.Execute(context.Background(), ListEventsQuery{ReportID: r.ID(), Actor: principalOf(f.citizen)})
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.Total)
	assert.Equal(t, "status-changed", got.Events[0].Type)

	_, err = uc.Execute(context.Background(), ListEventsQuery{ReportID: r.ID()})
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeUnauthorized, appErr.Type)
}

func TestGetReportStatsUseCase_Execute(t *testing.T) {
	f := newFixture(t)
	f.seedReport(t, vo.StatusReceived)
	f.seedReport(t, vo.StatusReceived)
	f.seedReport(t, vo.StatusClosed)
	uc := NewGetReportStatsUseCase(f.reports, policyChecker{}, f.log)

	stats, err := uc.Execute(context.Background(), GetReportStatsQuery{Actor: principalOf(f.operator)})
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.Total)
	assert.EqualValues(t, 2, stats.ByStatus["RECEIVED"])
	assert.EqualValues(t, 0, stats.ByStatus["VERIFIED"])
	assert.EqualValues(t, 3, stats.Untriaged)
	assert.Contains(t, stats.ByPriority, "CRITICAL")

	_, err = uc.Execute(context.Background(), GetReportStatsQuery{Actor: principalOf(f.citizen)})
	assert.True(t, apperrors.IsForbiddenError(err))
}
