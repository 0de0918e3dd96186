package seed

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	settingUsecases "github.com/civictrack/civictrack/internal/application/setting/usecases"
	userUsecases "github.com/civictrack/civictrack/internal/application/user/usecases"
	"github.com/civictrack/civictrack/internal/shared/authorization"
)

const validSeed = `
staff:
  - email: ops@city.example
    display_name: Ops Desk
    role: operator
  - email: former@city.example
    role: supervisor
    active: false
districts: [North, Central, Harbor]
survey_base_url: https://city.example/survey
`

func TestParseFile(t *testing.T) {
	f, err := ParseFile(strings.NewReader(validSeed))
	require.NoError(t, err)

	require.Len(t, f.Staff, 2)
	assert.True(t, f.Staff[0].IsActive())
	assert.False(t, f.Staff[1].IsActive())
	assert.Equal(t, []string{"North", "Central", "Harbor"}, f.Districts)
	assert.Nil(t, f.NotificationEvents)
}

func TestParseFile_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"unknown key", "distrcts: [North]\n"},
		{"citizen role", "staff:\n  - email: a@b.example\n    role: citizen\n"},
		{"bad email", "staff:\n  - email: nope\n    role: admin\n"},
		{"bad survey url", "survey_base_url: not a url\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFile(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

type mockUpserter struct {
	cmds    []userUsecases.UpsertStaffAccountCommand
	created map[string]bool
	err     error
}

func (m *mockUpserter) Execute(ctx context.Context, cmd userUsecases.UpsertStaffAccountCommand) (*userUsecases.UpsertStaffAccountResult, error) {
	m.cmds = append(m.cmds, cmd)
	if m.err != nil {
		return nil, m.err
	}
	return &userUsecases.UpsertStaffAccountResult{Created: m.created[cmd.Email]}, nil
}

type mockSettingsUpdater struct {
	cmd    *settingUsecases.UpdateReportSettingsCommand
	called int
	err    error
}

func (m *mockSettingsUpdater) Execute(ctx context.Context, cmd settingUsecases.UpdateReportSettingsCommand) error {
	m.called++
	m.cmd = &cmd
	return m.err
}

func TestSeeder_Apply(t *testing.T) {
	f, err := ParseFile(strings.NewReader(validSeed))
	require.NoError(t, err)

	accounts := &mockUpserter{created: map[string]bool{"ops@city.example": true}}
	settings := &mockSettingsUpdater{}
	seeder := &Seeder{Accounts: accounts, Settings: settings}

	summary, err := seeder.Apply(context.Background(), f)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.Updated)
	assert.True(t, summary.SettingsUpdated)

	require.Len(t, accounts.cmds, 2)
	assert.Equal(t, authorization.RoleOperator, accounts.cmds[0].Role)
	assert.False(t, accounts.cmds[1].Active)

	require.NotNil(t, settings.cmd)
	assert.Equal(t, []string{"North", "Central", "Harbor"}, settings.cmd.Districts)
	assert.Nil(t, settings.cmd.NotificationEvents)
	require.NotNil(t, settings.cmd.SurveyBaseURL)
	assert.Equal(t, "https://city.example/survey", *settings.cmd.SurveyBaseURL)
}

func TestSeeder_Apply_StaffOnlySkipsSettings(t *testing.T) {
	f, err := ParseFile(strings.NewReader("staff:\n  - email: ops@city.example\n    role: admin\n"))
	require.NoError(t, err)

	settings := &mockSettingsUpdater{}
	summary, err := (&Seeder{Accounts: &mockUpserter{}, Settings: settings}).Apply(context.Background(), f)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Updated)
	assert.False(t, summary.SettingsUpdated)
	assert.Zero(t, settings.called)
}

func TestSeeder_Apply_StopsOnAccountError(t *testing.T) {
	f, err := ParseFile(strings.NewReader(validSeed))
	require.NoError(t, err)

	accounts := &mockUpserter{err: errors.New("db down")}
	settings := &mockSettingsUpdater{}

	_, err = (&Seeder{Accounts: accounts, Settings: settings}).Apply(context.Background(), f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ops@city.example")
	assert.Len(t, accounts.cmds, 1)
	assert.Zero(t, settings.called)
}
