package valueobjects

type EventType string

const (
	EventCreated         EventType = "created"
	EventStatusChanged   EventType = "status-changed"
	EventTriageUpdated   EventType = "triage-updated"
	EventEvidenceAdded   EventType = "evidence-added"
	EventAssigned        EventType = "assigned"
	EventScheduled       EventType = "scheduled"
	EventDistrictUpdated EventType = "district-updated"
	EventComment         EventType = "comment"
)

var validEventTypes = map[EventType]bool{
	EventCreated:         true,
	EventStatusChanged:   true,
	EventTriageUpdated:   true,
	EventEvidenceAdded:   true,
	EventAssigned:        true,
	EventScheduled:       true,
	EventDistrictUpdated: true,
	EventComment:         true,
}

func (t EventType) String() string {
	return string(t)
}

func (t EventType) IsValid() bool {
	return validEventTypes[t]
}
