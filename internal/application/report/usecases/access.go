package usecases

import (
	"context"
	stderrors "errors"
	"strings"
	"unicode/utf8"

	"github.com/civictrack/civictrack/internal/domain/report"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/services/markdown"
)

// requirePermission checks an authenticated principal against the policy store.
func requirePermission(checker authorization.PermissionChecker, p *authorization.Principal, action string, log logger.Interface) error {
	if p == nil {
		return errors.NewUnauthorizedError("authentication required")
	}
	allowed, err := checker.Enforce(p.Role.String(), authorization.ResourceReport, action)
	if err != nil {
		log.Errorw("permission check failed", "role", p.Role, "action", action, "error", err)
		return errors.NewInternalError("permission check failed")
	}
	if !allowed {
		return errors.NewForbiddenError("not allowed to " + action + " reports")
	}
	return nil
}

// loadReport returns NotFound for a missing report.
func loadReport(ctx context.Context, reports report.Repository, reportID string, log logger.Interface) (*report.Report, error) {
	if strings.TrimSpace(reportID) == "" {
		return nil, errors.NewValidationError("report ID is required")
	}
	r, err := reports.GetByID(ctx, reportID)
	if err != nil {
		log.Errorw("failed to load report", "report_id", reportID, "error", err)
		return nil, errors.NewInternalError("failed to load report")
	}
	if r == nil {
		return nil, errors.NewNotFoundError("report not found", reportID)
	}
	return r, nil
}

// loadAccessibleReport loads a report the principal owns or, as staff, may see.
func loadAccessibleReport(ctx context.Context, reports report.Repository, p *authorization.Principal, reportID string, log logger.Interface) (*report.Report, error) {
	if p == nil {
		return nil, errors.NewUnauthorizedError("authentication required")
	}
	r, err := loadReport(ctx, reports, reportID, log)
	if err != nil {
		return nil, err
	}
	if !p.CanAccessReport(r.ReporterID()) {
		return nil, errors.NewForbiddenError("access to this report is denied")
	}
	return r, nil
}

// saveReport persists r and translates a lost optimistic update.
func saveReport(ctx context.Context, reports report.Repository, r *report.Report, log logger.Interface) error {
	if err := reports.Update(ctx, r); err != nil {
		if stderrors.Is(err, report.ErrVersionConflict) {
			log.Warnw("concurrent report update rejected", "report_id", r.ID(), "version", r.Version())
			return errors.NewConflictError(report.ErrVersionConflict.Error())
		}
		log.Errorw("failed to update report", "report_id", r.ID(), "error", err)
		return errors.NewInternalError("failed to update report")
	}
	return nil
}

// mapDomainError turns report sentinels into application errors.
func mapDomainError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.IsAppError(err):
		return err
	case stderrors.Is(err, report.ErrNoteRequired):
		return errors.NewValidationError(err.Error())
	case stderrors.Is(err, report.ErrInvalidTransition),
		stderrors.Is(err, report.ErrReportClosed),
		stderrors.Is(err, report.ErrSurveyAlreadySubmitted),
		stderrors.Is(err, report.ErrVersionConflict):
		return errors.NewConflictError(err.Error())
	case stderrors.Is(err, report.ErrReportNotFound),
		stderrors.Is(err, report.ErrSurveyNotFound):
		return errors.NewNotFoundError(err.Error())
	default:
		return errors.NewValidationError(err.Error())
	}
}

// cleanNote strips markup from free text and enforces the note length.
func cleanNote(renderer markdown.Renderer, note string) (string, error) {
	note = renderer.StripTags(note)
	if utf8.RuneCountInString(note) > report.MaxNoteLength {
		return "", errors.NewValidationError("note exceeds maximum length", "max 2000 characters")
	}
	return note, nil
}

func optionalString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
