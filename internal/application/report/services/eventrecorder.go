package services

import (
	"context"
	"time"

	"github.com/civictrack/civictrack/internal/domain/report"
	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

// EventRecorder appends entries to a report's audit log and publishes them.
type EventRecorder struct {
	events    report.EventRepository
	publisher EventPublisher
	logger    logger.Interface
}

func NewEventRecorder(events report.EventRepository, publisher EventPublisher, log logger.Interface) *EventRecorder {
	return &EventRecorder{events: events, publisher: publisher, logger: log}
}

// Record persists the event and returns any storage error. It does not
// publish, so it is safe inside a transaction; call Publish after commit.
func (r *EventRecorder) Record(ctx context.Context, reportID string, eventType vo.EventType, actorID, note string, payload map[string]any, at time.Time) (*report.Event, error) {
	e, err := report.NewEvent(reportID, eventType, actorID, note, payload, at)
	if err != nil {
		return nil, err
	}
	if err := r.events.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// RecordBestEffort records the event after the primary write has committed.
// Failures are logged, never returned.
func (r *EventRecorder) RecordBestEffort(ctx context.Context, reportID string, eventType vo.EventType, actorID, note string, payload map[string]any, at time.Time) {
	e, err := r.Record(ctx, reportID, eventType, actorID, note, payload, at)
	if err != nil {
		r.logger.Errorw("failed to record report event",
			"report_id", reportID,
			"event_type", eventType,
			"error", err,
		)
		return
	}
	r.Publish(ctx, e)
}

// Publish fans a committed event out to subscribers. Failures are logged.
func (r *EventRecorder) Publish(ctx context.Context, e *report.Event) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.Publish(ctx, e); err != nil {
		r.logger.Warnw("failed to publish report event",
			"report_id", e.ReportID(),
			"event_type", e.Type(),
			"error", err,
		)
	}
}
