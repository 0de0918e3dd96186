package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
	apperrors "github.com/civictrack/civictrack/internal/shared/errors"
)

func validCreateCommand() CreateReportCommand {
	return CreateReportCommand{
		Category:    "STREET_LIGHTING",
		Description: "The lamp on the corner has been off for a week",
		Latitude:    4.6,
		Longitude:   -74.08,
		Address:     "Calle 10 # 5-20",
	}
}

func TestCreateReportUseCase_Authenticated(t *testing.T) {
	f := newFixture(t)
	cmd := validCreateCommand()
	cmd.Actor = principalOf(f.citizen)
	cmd.District = strPtr("Centro")
	cmd.Description = "<script>alert(1)</script>The lamp on the <b>corner</b> is off"

	got, err := f.createReport(testDistricts).Execute(context.Background(), cmd)

	require.NoError(t, err)
	assert.Equal(t, "RECEIVED", got.Status)
	assert.Equal(t, f.citizen.ID(), got.ReporterID)
	assert.Equal(t, "The lamp on the corner is off", got.Description)
	assert.Equal(t, "Centro", *got.District)
	assert.Equal(t, []string{"VERIFIED"}, got.AllowedNext)
	require.Len(t, got.History, 1)
	assert.Equal(t, "report received", got.History[0].Note)
	assert.Nil(t, got.EffectivePriority)

	events := f.events.byReport(got.ID)
	require.Len(t, events, 1)
	assert.Equal(t, vo.EventCreated, events[0].Type())
	assert.Equal(t, "STREET_LIGHTING", events[0].Payload()["category"])
}

func TestCreateReportUseCase_AcceptsLowercaseCategory(t *testing.T) {
	f := newFixture(t)
	cmd := validCreateCommand()
	cmd.Category = "street_lighting"
	cmd.Actor = principalOf(f.citizen)

	got, err := f.createReport(testDistricts).Execute(context.Background(), cmd)

	require.NoError(t, err)
	assert.Equal(t, "STREET_LIGHTING", got.Category)
}

func TestCreateReportUseCase_AnonymousCreatesGuest(t *testing.T) {
	f := newFixture(t)
	cmd := validCreateCommand()
	cmd.Email = "new.neighbor@example.com"

	got, err := f.createReport(testDistricts).Execute(context.Background(), cmd)
	require.NoError(t, err)

	guest, err := f.accounts.GetByEmail(context.Background(), "new.neighbor@example.com")
	require.NoError(t, err)
	require.NotNil(t, guest)
	assert.True(t, guest.IsGuest())
	assert.Equal(t, guest.ID(), got.ReporterID)

	second, err := f.createReport(testDistricts).Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, guest.ID(), second.ReporterID)
}

func TestCreateReportUseCase_AnonymousWithRegisteredEmail(t *testing.T) {
	f := newFixture(t)
	cmd := validCreateCommand()
	cmd.Email = f.citizen.Email().String()

	_, err := f.createReport(testDistricts).Execute(context.Background(), cmd)

	assert.True(t, apperrors.IsConflictError(err))
	assert.Empty(t, f.reports.reports)
}

func TestCreateReportUseCase_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cmd *CreateReportCommand)
	}{
		{"unknown category", func(cmd *CreateReportCommand) { cmd.Category = "GRAFFITI" }},
		{"latitude out of range", func(cmd *CreateReportCommand) { cmd.Latitude = 91 }},
		{"longitude out of range", func(cmd *CreateReportCommand) { cmd.Longitude = -181 }},
		{"description too short", func(cmd *CreateReportCommand) { cmd.Description = "  dark   " }},
		{"description only markup", func(cmd *CreateReportCommand) { cmd.Description = "<p><img src=x></p>" }},
		{"unknown district", func(cmd *CreateReportCommand) { cmd.District = strPtr("Atlantis") }},
		{"bad photo url", func(cmd *CreateReportCommand) { cmd.PhotoURLs = []string{"javascript:alert(1)"} }},
		{"anonymous without email", func(cmd *CreateReportCommand) { cmd.Actor = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			cmd := validCreateCommand()
			cmd.Actor = principalOf(f.citizen)
			tt.mutate(&cmd)

			_, err := f.createReport(testDistricts).Execute(context.Background(), cmd)

			assert.True(t, apperrors.IsValidationError(err), "got %v", err)
			assert.Empty(t, f.reports.reports)
			assert.Empty(t, f.events.events)
		})
	}
}
