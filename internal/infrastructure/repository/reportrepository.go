package repository

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/civictrack/civictrack/internal/domain/report"
	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
	"github.com/civictrack/civictrack/internal/infrastructure/persistence/mappers"
	"github.com/civictrack/civictrack/internal/infrastructure/persistence/models"
	"github.com/civictrack/civictrack/internal/shared/db"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

// effectivePriorityExpr matches how Report.EffectivePriority resolves the tier.
const effectivePriorityExpr = "COALESCE(priority_override, priority)"

// ReportRepository implements report.Repository
type ReportRepository struct {
	db     *gorm.DB
	mapper mappers.ReportMapper
	now    func() time.Time
	logger logger.Interface
}

func NewReportRepository(gdb *gorm.DB, now func() time.Time, logger logger.Interface) *ReportRepository {
	return &ReportRepository{
		db:     gdb,
		mapper: mappers.NewReportMapper(),
		now:    now,
		logger: logger,
	}
}

func (r *ReportRepository) Create(ctx context.Context, rep *report.Report) error {
	model, err := r.mapper.ToModel(rep)
	if err != nil {
		return err
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create report", "id", model.ID, "error", err)
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// Update writes the report only if the stored version is still Version()-1.
func (r *ReportRepository) Update(ctx context.Context, rep *report.Report) error {
	model, err := r.mapper.ToModel(rep)
	if err != nil {
		return err
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ReportModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]any{
			"category":            model.Category,
			"description":         model.Description,
			"latitude":            model.Latitude,
			"longitude":           model.Longitude,
			"address":             model.Address,
			"district":            model.District,
			"photo_urls":          model.PhotoURLs,
			"status":              model.Status,
			"status_history":      model.StatusHistory,
			"assigned_to":         model.AssignedTo,
			"assigned_at":         model.AssignedAt,
			"assigned_by":         model.AssignedBy,
			"scheduled_at":        model.ScheduledAt,
			"sla_target_at":       model.SLATargetAt,
			"sla_breached_at":     model.SLABreachedAt,
			"impact":              model.Impact,
			"urgency":             model.Urgency,
			"priority":            model.Priority,
			"priority_override":   model.PriorityOverride,
			"priority_updated_at": model.PriorityUpdatedAt,
			"priority_updated_by": model.PriorityUpdatedBy,
			"version":             model.Version,
			"updated_at":          model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update report", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update report: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return report.ErrVersionConflict
	}
	return nil
}

func (r *ReportRepository) GetByID(ctx context.Context, id string) (*report.Report, error) {
	var model models.ReportModel
	err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *ReportRepository) List(ctx context.Context, filter report.ListFilter) ([]*report.Report, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.ReportModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Category != nil {
		query = query.Where("category = ?", filter.Category.String())
	}
	if filter.District != nil {
		query = query.Where("district = ?", *filter.District)
	}
	if filter.AssigneeID != nil {
		query = query.Where("assigned_to = ?", *filter.AssigneeID)
	}
	if filter.ReporterID != nil {
		query = query.Where("reporter_id = ?", *filter.ReporterID)
	}
	if filter.Priority != nil {
		query = query.Where(effectivePriorityExpr+" = ?", filter.Priority.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	query = query.Order("created_at DESC").Order("id DESC")
	if filter.PageSize > 0 {
		query = query.Scopes(db.Paginate(filter.Page, filter.PageSize))
	}

	var modelList []models.ReportModel
	if err := query.Find(&modelList).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}

	reports, err := r.mapper.ToDomainList(modelList)
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *ReportRepository) ListMarkers(ctx context.Context, filter report.MarkerFilter) ([]*report.Report, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.ReportModel{})

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = s.String()
		}
		query = query.Where("status IN ?", statuses)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", filter.Category.String())
	}
	if filter.MinLat != nil {
		query = query.Where("latitude >= ?", *filter.MinLat)
	}
	if filter.MaxLat != nil {
		query = query.Where("latitude <= ?", *filter.MaxLat)
	}
	if filter.MinLng != nil {
		query = query.Where("longitude >= ?", *filter.MinLng)
	}
	if filter.MaxLng != nil {
		query = query.Where("longitude <= ?", *filter.MaxLng)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var modelList []models.ReportModel
	if err := query.Order("created_at DESC").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list map markers: %w", err)
	}
	return r.mapper.ToDomainList(modelList)
}

type groupCount struct {
	GroupKey *string
	Count    int64
}

// Stats counts the backlog. A report counts as SLA breached once a breach was
// stamped, or while it is unfinished and past its target.
func (r *ReportRepository) Stats(ctx context.Context) (*report.Stats, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	stats := &report.Stats{
		ByStatus:   make(map[vo.ReportStatus]int64),
		ByPriority: make(map[vo.Priority]int64),
	}

	var byStatus []groupCount
	if err := tx.Model(&models.ReportModel{}).
		Select("status AS group_key, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to count reports by status: %w", err)
	}
	for _, row := range byStatus {
		if row.GroupKey == nil {
			continue
		}
		stats.ByStatus[vo.ReportStatus(*row.GroupKey)] = row.Count
		stats.Total += row.Count
	}

	var byPriority []groupCount
	if err := tx.Model(&models.ReportModel{}).
		Select(effectivePriorityExpr + " AS group_key, COUNT(*) AS count").
		Group(effectivePriorityExpr).
		Scan(&byPriority).Error; err != nil {
		return nil, fmt.Errorf("failed to count reports by priority: %w", err)
	}
	for _, row := range byPriority {
		if row.GroupKey == nil {
			stats.Untriaged += row.Count
			continue
		}
		stats.ByPriority[vo.Priority(*row.GroupKey)] = row.Count
	}

	terminal := []string{vo.StatusResolved.String(), vo.StatusClosed.String()}
	if err := tx.Model(&models.ReportModel{}).
		Where("sla_breached_at IS NOT NULL OR (sla_target_at < ? AND status NOT IN ?)", r.now(), terminal).
		Count(&stats.SLABreached).Error; err != nil {
		return nil, fmt.Errorf("failed to count SLA breaches: %w", err)
	}

	return stats, nil
}
