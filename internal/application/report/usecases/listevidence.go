package usecases

import (
	"context"
	"strings"

	"github.com/civictrack/civictrack/internal/application/report/dto"
	"github.com/civictrack/civictrack/internal/domain/report"
	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

type ListEvidenceQuery struct {
	ReportID string
	Type     string
	Actor    *authorization.Principal
}

type ListEvidenceUseCase struct {
	reports  report.Repository
	evidence report.EvidenceRepository
	logger   logger.Interface
}

func NewListEvidenceUseCase(reports report.Repository, evidence report.EvidenceRepository, logger logger.Interface) *ListEvidenceUseCase {
	return &ListEvidenceUseCase{
		reports:  reports,
		evidence: evidence,
		logger:   logger,
	}
}

func (uc *ListEvidenceUseCase) Execute(ctx context.Context, query ListEvidenceQuery) ([]*dto.EvidenceDTO, error) {
	var evidenceType *vo.EvidenceType
	if t := strings.TrimSpace(query.Type); t != "" {
		parsed, err := vo.NewEvidenceType(strings.ToUpper(t))
		if err != nil {
			return nil, errors.NewValidationError("invalid evidence type", t)
		}
		evidenceType = &parsed
	}

	r, err := loadAccessibleReport(ctx, uc.reports, query.Actor, query.ReportID, uc.logger)
	if err != nil {
		return nil, err
	}

	items, err := uc.evidence.ListByReport(ctx, r.ID(), evidenceType)
	if err != nil {
		uc.logger.Errorw("failed to list evidence", "report_id", r.ID(), "error", err)
		return nil, errors.NewInternalError("failed to list evidence")
	}
	return dto.ToEvidenceDTOs(items), nil
}
