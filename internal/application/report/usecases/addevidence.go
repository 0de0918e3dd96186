package usecases

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/civictrack/civictrack/internal/application/report/dto"
	"github.com/civictrack/civictrack/internal/application/report/services"
	"github.com/civictrack/civictrack/internal/domain/report"
	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/services/markdown"
)

var allowedEvidenceContentTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"image/heic":      ".heic",
	"application/pdf": ".pdf",
}

// AddEvidenceCommand uploads one evidence file. Body is read exactly once.
type AddEvidenceCommand struct {
	ReportID    string
	Type        string
	Note        string
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
	Actor       *authorization.Principal
}

type AddEvidenceUseCase struct {
	reports  report.Repository
	evidence report.EvidenceRepository
	blobs    services.BlobStore
	recorder *services.EventRecorder
	renderer markdown.Renderer
	maxBytes int64
	now      func() time.Time
	logger   logger.Interface
}

func NewAddEvidenceUseCase(
	reports report.Repository,
	evidence report.EvidenceRepository,
	blobs services.BlobStore,
	recorder *services.EventRecorder,
	renderer markdown.Renderer,
	maxBytes int64,
	now func() time.Time,
	logger logger.Interface,
) *AddEvidenceUseCase {
	return &AddEvidenceUseCase{
		reports:  reports,
		evidence: evidence,
		blobs:    blobs,
		recorder: recorder,
		renderer: renderer,
		maxBytes: maxBytes,
		now:      now,
		logger:   logger,
	}
}

func (uc *AddEvidenceUseCase) Execute(ctx context.Context, cmd AddEvidenceCommand) (*dto.EvidenceDTO, error) {
	uc.logger.Infow("executing add evidence use case", "report_id", cmd.ReportID, "type", cmd.Type, "size", cmd.Size)

	evidenceType, ext, err := uc.validateCommand(cmd)
	if err != nil {
		return nil, err
	}
	note, err := cleanNote(uc.renderer, cmd.Note)
	if err != nil {
		return nil, err
	}

	r, err := loadAccessibleReport(ctx, uc.reports, cmd.Actor, cmd.ReportID, uc.logger)
	if err != nil {
		return nil, err
	}
	if !cmd.Actor.IsStaff() && evidenceType != vo.EvidenceBefore {
		return nil, errors.NewForbiddenError("reporters may only add BEFORE evidence")
	}
	if r.Status().IsClosed() {
		return nil, mapDomainError(report.ErrReportClosed)
	}

	key := path.Join("reports", r.ID(), strings.ToLower(evidenceType.String()), uuid.NewString()+ext)
	url, err := uc.blobs.Put(ctx, key, io.LimitReader(cmd.Body, cmd.Size), cmd.Size, cmd.ContentType)
	if err != nil {
		uc.logger.Errorw("failed to store evidence file", "report_id", r.ID(), "key", key, "error", err)
		return nil, errors.NewInternalError("failed to store evidence file")
	}

	now := uc.now()
	item, err := report.NewEvidence(r.ID(), evidenceType, url, note, cmd.Actor.AccountID, now)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.evidence.Create(ctx, item); err != nil {
		uc.logger.Errorw("failed to save evidence", "report_id", r.ID(), "error", err)
		return nil, errors.NewInternalError("failed to save evidence")
	}

	uc.recorder.RecordBestEffort(ctx, r.ID(), vo.EventEvidenceAdded, cmd.Actor.AccountID, note, map[string]any{
		"evidenceId": item.ID(),
		"type":       evidenceType.String(),
		"url":        url,
	}, now)

	uc.logger.Infow("evidence added", "report_id", r.ID(), "evidence_id", item.ID())
	return dto.ToEvidenceDTO(item), nil
}

func (uc *AddEvidenceUseCase) validateCommand(cmd AddEvidenceCommand) (vo.EvidenceType, string, error) {
	evidenceType, err := vo.NewEvidenceType(strings.ToUpper(strings.TrimSpace(cmd.Type)))
	if err != nil {
		return "", "", errors.NewValidationError("invalid evidence type", cmd.Type)
	}
	if cmd.Body == nil || cmd.Size <= 0 {
		return "", "", errors.NewValidationError("file is required")
	}
	if uc.maxBytes > 0 && cmd.Size > uc.maxBytes {
		return "", "", errors.NewValidationError("file is too large")
	}
	ext, ok := allowedEvidenceContentTypes[strings.ToLower(cmd.ContentType)]
	if !ok {
		return "", "", errors.NewValidationError("unsupported file type", cmd.ContentType)
	}
	return evidenceType, ext, nil
}
