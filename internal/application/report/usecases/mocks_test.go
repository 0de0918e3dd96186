package usecases

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/civictrack/civictrack/internal/application/report/services"
	"github.com/civictrack/civictrack/internal/domain/permission"
	"github.com/civictrack/civictrack/internal/domain/report"
	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
	"github.com/civictrack/civictrack/internal/domain/user"
)

// memReportRepository keeps snapshots so every load returns a fresh aggregate,
// like the database-backed repository does.
type memReportRepository struct {
	mu      sync.Mutex
	reports map[string]*report.Report

	UpdateFunc func(ctx context.Context, r *report.Report) error
}

func newMemReportRepository(seed ...*report.Report) *memReportRepository {
	m := &memReportRepository{reports: make(map[string]*report.Report)}
	for _, r := range seed {
		m.reports[r.ID()] = cloneReport(r)
	}
	return m
}

func cloneReport(r *report.Report) *report.Report {
	c, err := report.ReconstructReport(report.ReconstructParams{
		ID:                r.ID(),
		Category:          r.Category(),
		Description:       r.Description(),
		Location:          r.Location(),
		Address:           r.Address(),
		District:          r.District(),
		ReporterID:        r.ReporterID(),
		PhotoURLs:         r.PhotoURLs(),
		Status:            r.Status(),
		History:           r.StatusHistory(),
		AssignedTo:        r.AssignedTo(),
		AssignedAt:        r.AssignedAt(),
		AssignedBy:        r.AssignedBy(),
		ScheduledAt:       r.ScheduledAt(),
		SLATargetAt:       r.SLATargetAt(),
		SLABreachedAt:     r.SLABreachedAt(),
		Impact:            r.Impact(),
		Urgency:           r.Urgency(),
		Priority:          r.Priority(),
		PriorityOverride:  r.PriorityOverride(),
		PriorityUpdatedAt: r.PriorityUpdatedAt(),
		PriorityUpdatedBy: r.PriorityUpdatedBy(),
		Version:           r.Version(),
		CreatedAt:         r.CreatedAt(),
		UpdatedAt:         r.UpdatedAt(),
	})
	if err != nil {
		panic(err)
	}
	return c
}

func (m *memReportRepository) Create(ctx context.Context, r *report.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[r.ID()] = cloneReport(r)
	return nil
}

func (m *memReportRepository) Update(ctx context.Context, r *report.Report) error {
	if m.UpdateFunc != nil {
		if err := m.UpdateFunc(ctx, r); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.reports[r.ID()]
	if !ok || stored.Version() != r.Version()-1 {
		return report.ErrVersionConflict
	}
	m.reports[r.ID()] = cloneReport(r)
	return nil
}

func (m *memReportRepository) GetByID(ctx context.Context, id string) (*report.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reports[id]
	if !ok {
		return nil, nil
	}
	return cloneReport(r), nil
}

func (m *memReportRepository) stored(id string) *report.Report {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reports[id]
}

func (m *memReportRepository) List(ctx context.Context, filter report.ListFilter) ([]*report.Report, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*report.Report
	for _, r := range m.reports {
		if filter.ReporterID != nil && r.ReporterID() != *filter.ReporterID {
			continue
		}
		if filter.Status != nil && r.Status() != *filter.Status {
			continue
		}
		if filter.Priority != nil && (r.EffectivePriority() == nil || *r.EffectivePriority() != *filter.Priority) {
			continue
		}
		out = append(out, cloneReport(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, int64(len(out)), nil
}

func (m *memReportRepository) ListMarkers(ctx context.Context, filter report.MarkerFilter) ([]*report.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*report.Report
	for _, r := range m.reports {
		for _, s := range filter.Statuses {
			if r.Status() == s {
				out = append(out, cloneReport(r))
				break
			}
		}
	}
	return out, nil
}

func (m *memReportRepository) Stats(ctx context.Context) (*report.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &report.Stats{
		ByStatus:   map[vo.ReportStatus]int64{},
		ByPriority: map[vo.Priority]int64{},
	}
	for _, r := range m.reports {
		stats.Total++
		stats.ByStatus[r.Status()]++
		if p := r.EffectivePriority(); p != nil {
			stats.ByPriority[*p]++
		} else {
			stats.Untriaged++
		}
	}
	return stats, nil
}

type memEventRepository struct {
	mu     sync.Mutex
	events []*report.Event

	CreateFunc func(ctx context.Context, e *report.Event) error
}

func (m *memEventRepository) Create(ctx context.Context, e *report.Event) error {
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, e); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return nil
}

func (m *memEventRepository) ListByReport(ctx context.Context, reportID string, page, pageSize int) ([]*report.Event, int64, error) {
	all := m.byReport(reportID)
	start := (page - 1) * pageSize
	if start > len(all) {
		start = len(all)
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (m *memEventRepository) byReport(reportID string) []*report.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*report.Event
	for _, e := range m.events {
		if e.ReportID() == reportID {
			out = append(out, e)
		}
	}
	return out
}

func (m *memEventRepository) types(reportID string) []vo.EventType {
	var out []vo.EventType
	for _, e := range m.byReport(reportID) {
		out = append(out, e.Type())
	}
	return out
}

type memEvidenceRepository struct {
	mu    sync.Mutex
	items []*report.Evidence
}

func (m *memEvidenceRepository) Create(ctx context.Context, e *report.Evidence) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, e)
	return nil
}

func (m *memEvidenceRepository) ListByReport(ctx context.Context, reportID string, evidenceType *vo.EvidenceType) ([]*report.Evidence, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*report.Evidence
	for _, e := range m.items {
		if e.ReportID() == reportID && (evidenceType == nil || e.Type() == *evidenceType) {
			out = append(out, e)
		}
	}
	return out, nil
}

type memSurveyRepository struct {
	mu      sync.Mutex
	surveys map[string]*report.Survey
}

func newMemSurveyRepository() *memSurveyRepository {
	return &memSurveyRepository{surveys: make(map[string]*report.Survey)}
}

func (m *memSurveyRepository) Create(ctx context.Context, s *report.Survey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.surveys[s.ReportID()]; ok {
		return fmt.Errorf("UNIQUE constraint failed: report_surveys.report_id")
	}
	m.surveys[s.ReportID()] = s
	return nil
}

func (m *memSurveyRepository) Update(ctx context.Context, s *report.Survey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.surveys[s.ReportID()] = s
	return nil
}

func (m *memSurveyRepository) GetByReportID(ctx context.Context, reportID string) (*report.Survey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.surveys[reportID], nil
}

func (m *memSurveyRepository) GetByToken(ctx context.Context, token string) (*report.Survey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.surveys {
		if s.Token() == token {
			return s, nil
		}
	}
	return nil, nil
}

type memAccountRepository struct {
	mu       sync.Mutex
	accounts map[string]*user.Account
}

func newMemAccountRepository(accounts ...*user.Account) *memAccountRepository {
	m := &memAccountRepository{accounts: make(map[string]*user.Account)}
	for _, a := range accounts {
		m.accounts[a.ID()] = a
	}
	return m
}

func (m *memAccountRepository) Create(ctx context.Context, a *user.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[a.ID()] = a
	return nil
}

func (m *memAccountRepository) Update(ctx context.Context, a *user.Account) error {
	return m.Create(ctx, a)
}

func (m *memAccountRepository) GetByID(ctx context.Context, id string) (*user.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accounts[id], nil
}

func (m *memAccountRepository) GetByEmail(ctx context.Context, email string) (*user.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email().String() == email {
			return a, nil
		}
	}
	return nil, nil
}

// policyChecker enforces the built-in policies without casbin.
type policyChecker struct {
	err error
}

func (p policyChecker) Enforce(role, resource, action string) (bool, error) {
	if p.err != nil {
		return false, p.err
	}
	for _, pol := range permission.DefaultPolicies() {
		if pol.Role.String() == role && pol.Resource == resource && pol.Action == action {
			return true, nil
		}
	}
	return false, nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type staticSettings struct {
	districts []string
}

func (s staticSettings) Districts(ctx context.Context) []string {
	return s.districts
}

func (s staticSettings) NotificationEvents(ctx context.Context) []string {
	return services.DefaultNotificationEvents()
}

func (s staticSettings) SurveyBaseURL(ctx context.Context) string {
	return "https://city.example/survey"
}

type recordingNotifier struct {
	mu      sync.Mutex
	changes []services.StatusChange
}

func (n *recordingNotifier) Notify(ctx context.Context, change services.StatusChange) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, change)
}

type recordingSurveyIssuer struct {
	mu      sync.Mutex
	changes []services.StatusChange
}

func (s *recordingSurveyIssuer) Dispatch(ctx context.Context, change services.StatusChange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changes = append(s.changes, change)
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []services.Mail
}

func (m *recordingMailer) Send(ctx context.Context, mail services.Mail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, mail)
	return nil
}

type memBlobStore struct {
	keys  []string
	bytes int
	err   error
}

func (b *memBlobStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	if b.err != nil {
		return "", b.err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	b.keys = append(b.keys, key)
	b.bytes += len(data)
	return "https://cdn.example/" + key, nil
}

type fixedTokens struct{}

func (fixedTokens) Generate(prefix string) (string, error) {
	return prefix + "0123456789abcdef", nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
