package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/civictrack/civictrack/internal/domain/report"
	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
	"github.com/civictrack/civictrack/internal/domain/setting"
	"github.com/civictrack/civictrack/internal/domain/user"
	uservo "github.com/civictrack/civictrack/internal/domain/user/valueobjects"
	"github.com/civictrack/civictrack/internal/infrastructure/persistence/models"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/db"
	"github.com/civictrack/civictrack/internal/shared/errors"
	appLogger "github.com/civictrack/civictrack/internal/shared/logger"
)

var testNow = time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// every pooled connection would otherwise open its own empty database
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(models.AllModels()...))
	return gdb
}

func newTestReport(t *testing.T, lat, lng float64) *report.Report {
	loc, err := vo.NewLocation(lat, lng)
	require.NoError(t, err)
	district := "Centro"
	r, err := report.NewReport(report.NewReportParams{
		Category:    vo.CategoryPothole,
		Description: "Deep pothole in front of the bakery",
		Location:    loc,
		Address:     "Main St 12",
		District:    &district,
		ReporterID:  "acc_citizen",
		PhotoURLs:   []string{"https://img.example/1.jpg"},
	}, testNow)
	require.NoError(t, err)
	return r
}

func TestReportRepository_CreateAndGet(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewReportRepository(gdb, func() time.Time { return testNow }, appLogger.NewNop())
	ctx := context.Background()

	r := newTestReport(t, 40.41, -3.70)
	override := vo.PriorityLow
	require.NoError(t, r.SetTriage(5, 5, &override, "acc_operator", testNow))
	require.NoError(t, repo.Create(ctx, r))

	found, err := repo.GetByID(ctx, r.ID())
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, vo.StatusReceived, found.Status())
	assert.Equal(t, []string{"https://img.example/1.jpg"}, found.PhotoURLs())
	require.Len(t, found.StatusHistory(), 1)
	assert.Equal(t, "acc_citizen", found.StatusHistory()[0].ActorID)
	assert.True(t, testNow.Equal(found.StatusHistory()[0].At))
	require.NotNil(t, found.Priority())
	assert.Equal(t, vo.PriorityCritical, *found.Priority())
	assert.Equal(t, vo.PriorityLow, *found.EffectivePriority())
	assert.Equal(t, "Centro", *found.District())
	assert.InDelta(t, 40.41, found.Location().Latitude(), 1e-9)

	t.Run("missing report returns nil", func(t *testing.T) {
		missing, err := repo.GetByID(ctx, "rpt_missing")
		assert.NoError(t, err)
		assert.Nil(t, missing)
	})
}

func TestReportRepository_UpdateVersionCheck(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewReportRepository(gdb, func() time.Time { return testNow }, appLogger.NewNop())
	ctx := context.Background()

	r := newTestReport(t, 40.41, -3.70)
	require.NoError(t, repo.Create(ctx, r))

	first, err := repo.GetByID(ctx, r.ID())
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, r.ID())
	require.NoError(t, err)

	require.NoError(t, first.TransitionTo(vo.StatusVerified, "acc_operator", "", testNow.Add(time.Minute)))
	require.NoError(t, repo.Update(ctx, first))

	require.NoError(t, second.TransitionTo(vo.StatusVerified, "acc_supervisor", "", testNow.Add(2*time.Minute)))
	err = repo.Update(ctx, second)
	assert.ErrorIs(t, err, report.ErrVersionConflict)

	stored, err := repo.GetByID(ctx, r.ID())
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Version())
	require.Len(t, stored.StatusHistory(), 2)
	assert.Equal(t, "acc_operator", stored.StatusHistory()[1].ActorID)
}

func TestReportRepository_ListFiltersByEffectivePriority(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewReportRepository(gdb, func() time.Time { return testNow }, appLogger.NewNop())
	ctx := context.Background()

	computedCritical := newTestReport(t, 40.41, -3.70)
	require.NoError(t, computedCritical.SetTriage(5, 5, nil, "acc_operator", testNow))
	require.NoError(t, repo.Create(ctx, computedCritical))

	overriddenLow := newTestReport(t, 40.42, -3.71)
	low := vo.PriorityLow
	require.NoError(t, overriddenLow.SetTriage(5, 5, &low, "acc_operator", testNow))
	require.NoError(t, repo.Create(ctx, overriddenLow))

	untriaged := newTestReport(t, 40.43, -3.72)
	require.NoError(t, repo.Create(ctx, untriaged))

	critical := vo.PriorityCritical
	reports, total, err := repo.List(ctx, report.ListFilter{Priority: &critical, Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, reports, 1)
	assert.Equal(t, computedCritical.ID(), reports[0].ID())

	reports, total, err = repo.List(ctx, report.ListFilter{Priority: &low, Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, overriddenLow.ID(), reports[0].ID())

	_, total, err = repo.List(ctx, report.ListFilter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestReportRepository_ListMarkers(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewReportRepository(gdb, func() time.Time { return testNow }, appLogger.NewNop())
	ctx := context.Background()

	inside := newTestReport(t, 40.41, -3.70)
	require.NoError(t, repo.Create(ctx, inside))
	outside := newTestReport(t, 41.50, 2.17)
	require.NoError(t, repo.Create(ctx, outside))

	minLat, maxLat, minLng, maxLng := 40.0, 41.0, -4.0, -3.0
	markers, err := repo.ListMarkers(ctx, report.MarkerFilter{
		Statuses: []vo.ReportStatus{vo.StatusReceived},
		MinLat:   &minLat,
		MaxLat:   &maxLat,
		MinLng:   &minLng,
		MaxLng:   &maxLng,
		Limit:    1000,
	})
	require.NoError(t, err)
	require.Len(t, markers, 1)
	assert.Equal(t, inside.ID(), markers[0].ID())

	markers, err = repo.ListMarkers(ctx, report.MarkerFilter{
		Statuses: []vo.ReportStatus{vo.StatusVerified},
		Limit:    1000,
	})
	require.NoError(t, err)
	assert.Empty(t, markers)
}

func TestReportRepository_Stats(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewReportRepository(gdb, func() time.Time { return testNow }, appLogger.NewNop())
	ctx := context.Background()

	overdue := newTestReport(t, 40.41, -3.70)
	require.NoError(t, overdue.SetTriage(5, 5, nil, "acc_operator", testNow))
	target := testNow.Add(48 * time.Hour)
	overdue.Schedule(testNow.Add(time.Hour), &target, testNow)
	require.NoError(t, repo.Create(ctx, overdue))

	fresh := newTestReport(t, 40.42, -3.71)
	require.NoError(t, repo.Create(ctx, fresh))

	later := NewReportRepository(gdb, func() time.Time { return testNow.Add(72 * time.Hour) }, appLogger.NewNop())
	stats, err := later.Stats(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.Total)
	assert.EqualValues(t, 2, stats.ByStatus[vo.StatusReceived])
	assert.EqualValues(t, 1, stats.ByPriority[vo.PriorityCritical])
	assert.EqualValues(t, 1, stats.Untriaged)
	assert.EqualValues(t, 1, stats.SLABreached)

	stats, err = repo.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, stats.SLABreached)
}

func TestReportEventRepository_ListByReport(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewReportEventRepository(gdb)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		e, err := report.NewEvent("rpt_1", vo.EventComment, "acc_operator", "note", map[string]any{"n": i}, testNow.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, e))
	}
	other, err := report.NewEvent("rpt_2", vo.EventCreated, "acc_citizen", "", nil, testNow)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, other))

	events, total, err := repo.ListByReport(ctx, "rpt_1", 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, events, 2)
	assert.Equal(t, float64(0), events[0].Payload()["n"])
	assert.Equal(t, float64(1), events[1].Payload()["n"])

	events, _, err = repo.ListByReport(ctx, "rpt_2", 1, 20)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Nil(t, events[0].Payload())
}

func TestEvidenceRepository_ListByType(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewEvidenceRepository(gdb)
	ctx := context.Background()

	before, err := report.NewEvidence("rpt_1", vo.EvidenceBefore, "https://cdn.example/a.jpg", "", "acc_citizen", testNow)
	require.NoError(t, err)
	after, err := report.NewEvidence("rpt_1", vo.EvidenceAfter, "https://cdn.example/b.jpg", "fixed", "acc_operator", testNow.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, before))
	require.NoError(t, repo.Create(ctx, after))

	all, err := repo.ListByReport(ctx, "rpt_1", nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, before.ID(), all[0].ID())

	afterType := vo.EvidenceAfter
	onlyAfter, err := repo.ListByReport(ctx, "rpt_1", &afterType)
	require.NoError(t, err)
	require.Len(t, onlyAfter, 1)
	assert.Equal(t, "fixed", onlyAfter[0].Note())
}

func TestSurveyRepository(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewSurveyRepository(gdb)
	ctx := context.Background()

	s, err := report.NewSurvey("rpt_1", "svy_token1", "citizen@example.com", testNow)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, s))

	t.Run("second survey for the same report is a duplicate", func(t *testing.T) {
		dup, err := report.NewSurvey("rpt_1", "svy_token2", "citizen@example.com", testNow)
		require.NoError(t, err)
		err = repo.Create(ctx, dup)
		require.Error(t, err)
		assert.True(t, errors.IsDuplicateError(err))
	})

	t.Run("submit once", func(t *testing.T) {
		loaded, err := repo.GetByToken(ctx, "svy_token1")
		require.NoError(t, err)
		require.NotNil(t, loaded)
		require.NoError(t, loaded.Submit(4, "quick fix", testNow.Add(time.Hour)))
		require.NoError(t, repo.Update(ctx, loaded))

		stale := report.ReconstructSurvey(loaded.ID(), "rpt_1", "svy_token1", "citizen@example.com", nil, "", nil, testNow)
		require.NoError(t, stale.Submit(1, "overwrite", testNow.Add(2*time.Hour)))
		assert.ErrorIs(t, repo.Update(ctx, stale), report.ErrSurveyAlreadySubmitted)

		stored, err := repo.GetByReportID(ctx, "rpt_1")
		require.NoError(t, err)
		require.NotNil(t, stored.Rating())
		assert.Equal(t, 4, *stored.Rating())
		assert.Equal(t, "quick fix", stored.Comment())
	})

	t.Run("unknown token returns nil", func(t *testing.T) {
		missing, err := repo.GetByToken(ctx, "svy_unknown")
		assert.NoError(t, err)
		assert.Nil(t, missing)
	})
}

func TestAccountRepository(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewAccountRepository(gdb)
	ctx := context.Background()

	email, err := uservo.NewEmail("Ops@City.example")
	require.NoError(t, err)
	acc, err := user.NewAccount(email, "Operator One", authorization.RoleOperator, testNow)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, acc))

	found, err := repo.GetByEmail(ctx, " ops@city.example ")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, acc.ID(), found.ID())
	assert.Equal(t, authorization.RoleOperator, found.Role())

	dup, err := user.NewAccount(email, "Someone Else", authorization.RoleCitizen, testNow)
	require.NoError(t, err)
	err = repo.Create(ctx, dup)
	assert.ErrorIs(t, err, user.ErrEmailTaken)
	assert.True(t, errors.IsDuplicateError(err))

	found.Deactivate(testNow.Add(time.Hour))
	require.NoError(t, repo.Update(ctx, found))
	reloaded, err := repo.GetByID(ctx, acc.ID())
	require.NoError(t, err)
	assert.False(t, reloaded.CanBeAssigned())

	missing, err := repo.GetByID(ctx, "acc_missing")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSystemSettingRepository_Upsert(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewSystemSettingRepository(gdb, appLogger.NewNop())
	ctx := context.Background()

	s, err := setting.NewSystemSetting(setting.CategoryReport, setting.KeyDistricts, setting.ValueTypeJSON, testNow)
	require.NoError(t, err)
	require.NoError(t, s.SetJSONValue([]string{"Centro"}, testNow))
	require.NoError(t, repo.Upsert(ctx, s))

	require.NoError(t, s.SetJSONValue([]string{"Centro", "Norte"}, testNow.Add(time.Hour)))
	require.NoError(t, repo.Upsert(ctx, s))

	stored, err := repo.GetByKey(ctx, setting.CategoryReport, setting.KeyDistricts)
	require.NoError(t, err)
	require.NotNil(t, stored)
	districts, err := stored.GetStringArrayValue()
	require.NoError(t, err)
	assert.Equal(t, []string{"Centro", "Norte"}, districts)

	all, err := repo.GetByCategory(ctx, setting.CategoryReport)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	missing, err := repo.GetByKey(ctx, setting.CategoryReport, setting.KeySurveyBaseURL)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTransactionManager_RollsBackRepositoryWrites(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewReportRepository(gdb, func() time.Time { return testNow }, appLogger.NewNop())
	tm := db.NewTransactionManager(gdb)
	ctx := context.Background()

	r := newTestReport(t, 40.41, -3.70)
	err := tm.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := repo.Create(txCtx, r); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	found, err := repo.GetByID(ctx, r.ID())
	require.NoError(t, err)
	assert.Nil(t, found)
}
