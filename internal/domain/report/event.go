package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
)

// Event is an immutable entry in a report's audit log.
type Event struct {
	id        string
	reportID  string
	eventType vo.EventType
	note      string
	payload   map[string]any
	actorID   string
	createdAt time.Time
}

func NewEvent(reportID string, eventType vo.EventType, actorID, note string, payload map[string]any, at time.Time) (*Event, error) {
	if reportID == "" {
		return nil, fmt.Errorf("report ID is required")
	}
	if !eventType.IsValid() {
		return nil, fmt.Errorf("invalid event type: %s", eventType)
	}
	return &Event{
		id:        uuid.NewString(),
		reportID:  reportID,
		eventType: eventType,
		note:      note,
		payload:   payload,
		actorID:   actorID,
		createdAt: at,
	}, nil
}

func ReconstructEvent(id, reportID string, eventType vo.EventType, actorID, note string, payload map[string]any, createdAt time.Time) *Event {
	return &Event{
		id:        id,
		reportID:  reportID,
		eventType: eventType,
		note:      note,
		payload:   payload,
		actorID:   actorID,
		createdAt: createdAt,
	}
}

func (e *Event) ID() string {
	return e.id
}

func (e *Event) ReportID() string {
	return e.reportID
}

func (e *Event) Type() vo.EventType {
	return e.eventType
}

func (e *Event) Note() string {
	return e.note
}

func (e *Event) ActorID() string {
	return e.actorID
}

func (e *Event) CreatedAt() time.Time {
	return e.createdAt
}

// Payload returns a shallow copy.
func (e *Event) Payload() map[string]any {
	if e.payload == nil {
		return nil
	}
	out := make(map[string]any, len(e.payload))
	for k, v := range e.payload {
		out[k] = v
	}
	return out
}
