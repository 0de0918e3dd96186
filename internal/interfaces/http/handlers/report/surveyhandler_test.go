package report

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/civictrack/civictrack/internal/application/report/dto"
	"github.com/civictrack/civictrack/internal/application/report/usecases"
	"github.com/civictrack/civictrack/internal/interfaces/http/handlers/testutil"
	"github.com/civictrack/civictrack/internal/shared/errors"
)

type mockGetSurveyUC struct {
	result *dto.SurveyDTO
	err    error
	token  string
}

func (m *mockGetSurveyUC) Execute(_ context.Context, token string) (*dto.SurveyDTO, error) {
	m.token = token
	return m.result, m.err
}

type mockSubmitSurveyUC struct {
	result *dto.SurveyDTO
	err    error
	got    usecases.SubmitSurveyCommand
}

func (m *mockSubmitSurveyUC) Execute(_ context.Context, cmd usecases.SubmitSurveyCommand) (*dto.SurveyDTO, error) {
	m.got = cmd
	return m.result, m.err
}

func TestSurveyHandler_GetSurvey(t *testing.T) {
	getUC := &mockGetSurveyUC{result: &dto.SurveyDTO{ReportID: "rpt_1", Status: "CLOSED"}}
	h := NewSurveyHandler(getUC, &mockSubmitSurveyUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/reports/survey/tok", nil)
	testutil.SetURLParam(c, "token", "tok")
	h.GetSurvey(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tok", getUC.token)
}

func TestSurveyHandler_GetSurvey_UnknownToken(t *testing.T) {
	getUC := &mockGetSurveyUC{err: errors.NewNotFoundError("survey not found")}
	h := NewSurveyHandler(getUC, &mockSubmitSurveyUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/reports/survey/nope", nil)
	testutil.SetURLParam(c, "token", "nope")
	h.GetSurvey(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSurveyHandler_SubmitSurvey(t *testing.T) {
	tests := []struct {
		name     string
		body     map[string]any
		ucErr    error
		wantCode int
		wantCall bool
	}{
		{"accepted", map[string]any{"rating": 5, "comment": "fast fix"}, nil, http.StatusOK, true},
		{"rating too high", map[string]any{"rating": 6}, nil, http.StatusBadRequest, false},
		{"rating missing", map[string]any{"comment": "x"}, nil, http.StatusBadRequest, false},
		{"already answered", map[string]any{"rating": 3}, errors.NewConflictError("survey already submitted"), http.StatusConflict, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			submitUC := &mockSubmitSurveyUC{result: &dto.SurveyDTO{Submitted: true}, err: tt.ucErr}
			h := NewSurveyHandler(&mockGetSurveyUC{}, submitUC, testutil.NewMockLogger())

			c, w := testutil.NewTestContext(http.MethodPost, "/reports/survey/tok", tt.body)
			testutil.SetURLParam(c, "token", "tok")
			h.SubmitSurvey(c)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCall {
				assert.Equal(t, "tok", submitUC.got.Token)
			} else {
				assert.Empty(t, submitUC.got.Token)
			}
		})
	}
}
