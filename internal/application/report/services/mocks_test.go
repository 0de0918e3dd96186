package services

import (
	"context"
	"sync"

	"github.com/civictrack/civictrack/internal/domain/report"
	"github.com/civictrack/civictrack/internal/domain/user"
)

type mockAccountRepository struct {
	GetByIDFunc func(ctx context.Context, id string) (*user.Account, error)
}

func (m *mockAccountRepository) Create(ctx context.Context, a *user.Account) error {
	return nil
}

func (m *mockAccountRepository) Update(ctx context.Context, a *user.Account) error {
	return nil
}

func (m *mockAccountRepository) GetByID(ctx context.Context, id string) (*user.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockAccountRepository) GetByEmail(ctx context.Context, email string) (*user.Account, error) {
	return nil, nil
}

type mockSurveyRepository struct {
	mu      sync.Mutex
	surveys map[string]*report.Survey

	CreateFunc func(ctx context.Context, s *report.Survey) error
}

func newMockSurveyRepository() *mockSurveyRepository {
	return &mockSurveyRepository{surveys: make(map[string]*report.Survey)}
}

func (m *mockSurveyRepository) Create(ctx context.Context, s *report.Survey) error {
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, s); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.surveys[s.ReportID()] = s
	return nil
}

func (m *mockSurveyRepository) Update(ctx context.Context, s *report.Survey) error {
	return nil
}

func (m *mockSurveyRepository) GetByReportID(ctx context.Context, reportID string) (*report.Survey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.surveys[reportID], nil
}

func (m *mockSurveyRepository) GetByToken(ctx context.Context, token string) (*report.Survey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.surveys {
		if s.Token() == token {
			return s, nil
		}
	}
	return nil, nil
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []Mail
	err  error
}

func (m *recordingMailer) Send(ctx context.Context, mail Mail) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, mail)
	return nil
}

type staticSettings struct {
	districts []string
	events    []string
	baseURL   string
}

func (s staticSettings) Districts(ctx context.Context) []string {
	return s.districts
}

func (s staticSettings) NotificationEvents(ctx context.Context) []string {
	return s.events
}

func (s staticSettings) SurveyBaseURL(ctx context.Context) string {
	return s.baseURL
}

type sequenceTokens struct {
	n int
}

func (g *sequenceTokens) Generate(prefix string) (string, error) {
	g.n++
	return prefix + string(rune('a'+g.n-1)), nil
}
