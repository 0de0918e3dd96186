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

func TestAddCommentUseCase_Execute(t *testing.T) {
	f := newFixture(t)
	r := f.seedReport(t, vo.StatusScheduled)
	uc := NewAddCommentUseCase(f.reports, f.recorder, f.renderer, fixedClock(testNow), f.log)

	got, err := uc.Execute(context.Background(), AddCommentCommand{ReportID: r.ID(), Note: "Still <i>dark</i> tonight", Actor: principalOf(f.citizen)})
	require.NoError(t, err)
	assert.Equal(t, "comment", got.Type)
	assert.Equal(t, "Still dark tonight", got.Note)

	_, err = uc.Execute(context.Background(), AddCommentCommand{ReportID: r.ID(), Note: "  ", Actor: principalOf(f.citizen)})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), AddCommentCommand{
		ReportID: r.ID(),
		Note:     "hello",
		Actor:    &authorization.Principal{AccountID: "usr_other", Role: authorization.RoleCitizen},
	})
	assert.True(t, apperrors.IsForbiddenError(err))

	assert.Equal(t, []vo.EventType{vo.EventComment}, f.events.types(r.ID()))
}
