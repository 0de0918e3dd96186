package report

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
	"github.com/civictrack/civictrack/internal/shared/id"
)

const (
	MinDescriptionLength = 10
	MaxDescriptionLength = 5000
	MaxAddressLength     = 255
	MaxNoteLength        = 2000

	receivedNote = "report received"
)

// Report is the aggregate root of the incident lifecycle. Status changes only
// through TransitionTo, which keeps status equal to the last history entry.
type Report struct {
	id          string
	category    vo.Category
	description string
	location    vo.Location
	address     string
	district    *string
	reporterID  string
	photoURLs   []string

	status  vo.ReportStatus
	history []StatusEntry

	assignedTo *string
	assignedAt *time.Time
	assignedBy *string

	scheduledAt   *time.Time
	slaTargetAt   *time.Time
	slaBreachedAt *time.Time

	impact            *int
	urgency           *int
	priority          *vo.Priority
	priorityOverride  *vo.Priority
	priorityUpdatedAt *time.Time
	priorityUpdatedBy *string

	version   int
	bumped    bool
	createdAt time.Time
	updatedAt time.Time
}

// NewReportParams carries the citizen-supplied fields of a new report.
type NewReportParams struct {
	Category    vo.Category
	Description string
	Location    vo.Location
	Address     string
	District    *string
	ReporterID  string
	PhotoURLs   []string
}

func NewReport(p NewReportParams, now time.Time) (*Report, error) {
	description := strings.TrimSpace(p.Description)
	if utf8.RuneCountInString(description) < MinDescriptionLength {
		return nil, fmt.Errorf("description must be at least %d characters", MinDescriptionLength)
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return nil, fmt.Errorf("description exceeds maximum length of %d characters", MaxDescriptionLength)
	}
	if !p.Category.IsValid() {
		return nil, fmt.Errorf("invalid category: %s", p.Category)
	}
	address := strings.TrimSpace(p.Address)
	if utf8.RuneCountInString(address) > MaxAddressLength {
		return nil, fmt.Errorf("address exceeds maximum length of %d characters", MaxAddressLength)
	}
	if p.ReporterID == "" {
		return nil, fmt.Errorf("reporter is required")
	}

	reportID, err := id.NewReportID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate report ID: %w", err)
	}

	return &Report{
		id:          reportID,
		category:    p.Category,
		description: description,
		location:    p.Location,
		address:     address,
		district:    p.District,
		reporterID:  p.ReporterID,
		photoURLs:   append([]string(nil), p.PhotoURLs...),
		status:      vo.StatusReceived,
		history: []StatusEntry{{
			Status:  vo.StatusReceived,
			At:      now,
			ActorID: p.ReporterID,
			Note:    receivedNote,
		}},
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructParams mirrors every persisted field of a report.
type ReconstructParams struct {
	ID                string
	Category          vo.Category
	Description       string
	Location          vo.Location
	Address           string
	District          *string
	ReporterID        string
	PhotoURLs         []string
	Status            vo.ReportStatus
	History           []StatusEntry
	AssignedTo        *string
	AssignedAt        *time.Time
	AssignedBy        *string
	ScheduledAt       *time.Time
	SLATargetAt       *time.Time
	SLABreachedAt     *time.Time
	Impact            *int
	Urgency           *int
	Priority          *vo.Priority
	PriorityOverride  *vo.Priority
	PriorityUpdatedAt *time.Time
	PriorityUpdatedBy *string
	Version           int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ReconstructReport rebuilds a report from storage. A history whose last
// entry disagrees with the stored status is rejected.
func ReconstructReport(p ReconstructParams) (*Report, error) {
	if p.ID == "" {
		return nil, fmt.Errorf("report ID is required")
	}
	if !p.Status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", p.Status)
	}
	if len(p.History) == 0 || p.History[len(p.History)-1].Status != p.Status {
		return nil, fmt.Errorf("status history of report %s does not end in %s", p.ID, p.Status)
	}

	return &Report{
		id:                p.ID,
		category:          p.Category,
		description:       p.Description,
		location:          p.Location,
		address:           p.Address,
		district:          p.District,
		reporterID:        p.ReporterID,
		photoURLs:         p.PhotoURLs,
		status:            p.Status,
		history:           p.History,
		assignedTo:        p.AssignedTo,
		assignedAt:        p.AssignedAt,
		assignedBy:        p.AssignedBy,
		scheduledAt:       p.ScheduledAt,
		slaTargetAt:       p.SLATargetAt,
		slaBreachedAt:     p.SLABreachedAt,
		impact:            p.Impact,
		urgency:           p.Urgency,
		priority:          p.Priority,
		priorityOverride:  p.PriorityOverride,
		priorityUpdatedAt: p.PriorityUpdatedAt,
		priorityUpdatedBy: p.PriorityUpdatedBy,
		version:           p.Version,
		createdAt:         p.CreatedAt,
		updatedAt:         p.UpdatedAt,
	}, nil
}

func (r *Report) ID() string {
	return r.id
}

func (r *Report) Category() vo.Category {
	return r.category
}

func (r *Report) Description() string {
	return r.description
}

func (r *Report) Location() vo.Location {
	return r.location
}

func (r *Report) Address() string {
	return r.address
}

func (r *Report) District() *string {
	return r.district
}

func (r *Report) ReporterID() string {
	return r.reporterID
}

func (r *Report) Status() vo.ReportStatus {
	return r.status
}

func (r *Report) AssignedTo() *string {
	return r.assignedTo
}

func (r *Report) AssignedAt() *time.Time {
	return r.assignedAt
}

func (r *Report) AssignedBy() *string {
	return r.assignedBy
}

func (r *Report) ScheduledAt() *time.Time {
	return r.scheduledAt
}

func (r *Report) SLATargetAt() *time.Time {
	return r.slaTargetAt
}

func (r *Report) SLABreachedAt() *time.Time {
	return r.slaBreachedAt
}

func (r *Report) Impact() *int {
	return r.impact
}

func (r *Report) Urgency() *int {
	return r.urgency
}

func (r *Report) Priority() *vo.Priority {
	return r.priority
}

func (r *Report) PriorityOverride() *vo.Priority {
	return r.priorityOverride
}

func (r *Report) PriorityUpdatedAt() *time.Time {
	return r.priorityUpdatedAt
}

func (r *Report) PriorityUpdatedBy() *string {
	return r.priorityUpdatedBy
}

func (r *Report) Version() int {
	return r.version
}

func (r *Report) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Report) UpdatedAt() time.Time {
	return r.updatedAt
}

func (r *Report) PhotoURLs() []string {
	out := make([]string, len(r.photoURLs))
	copy(out, r.photoURLs)
	return out
}

func (r *Report) StatusHistory() []StatusEntry {
	out := make([]StatusEntry, len(r.history))
	copy(out, r.history)
	return out
}

// EffectivePriority is the override when set, otherwise the computed tier.
func (r *Report) EffectivePriority() *vo.Priority {
	if r.priorityOverride != nil {
		return r.priorityOverride
	}
	return r.priority
}

// IsSLABreached is true once a breach was stamped, or while unfinished work
// is past its SLA target.
func (r *Report) IsSLABreached(now time.Time) bool {
	if r.slaBreachedAt != nil {
		return true
	}
	if r.slaTargetAt == nil || r.status.IsTerminalForWork() {
		return false
	}
	return now.After(*r.slaTargetAt)
}

// TransitionTo moves the report to target and appends a history entry.
// On error the report is left untouched.
func (r *Report) TransitionTo(target vo.ReportStatus, actorID, note string, at time.Time) error {
	if !target.IsValid() {
		return fmt.Errorf("%w: unknown status %s", ErrInvalidTransition, target)
	}
	note = strings.TrimSpace(note)
	if target.RequiresNote() && note == "" {
		return ErrNoteRequired
	}
	if !r.status.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.status, target)
	}

	// keep history ordered even if the clock steps backwards
	if last := r.history[len(r.history)-1].At; at.Before(last) {
		at = last
	}

	r.history = append(r.history, StatusEntry{
		Status:  target,
		At:      at,
		ActorID: actorID,
		Note:    note,
	})
	r.status = target
	r.touch(at)
	return nil
}

// SetTriage recomputes the priority tier and replaces the override; a nil
// override clears it.
func (r *Report) SetTriage(impact, urgency int, override *vo.Priority, actorID string, at time.Time) error {
	computed, err := vo.ComputePriority(impact, urgency)
	if err != nil {
		return err
	}
	if override != nil && !override.IsValid() {
		return fmt.Errorf("invalid priority override: %s", *override)
	}

	r.impact = &impact
	r.urgency = &urgency
	r.priority = &computed
	r.priorityOverride = override
	r.priorityUpdatedAt = &at
	r.priorityUpdatedBy = &actorID
	r.touch(at)
	return nil
}

// Assign sets or, with a nil assignee, clears the assignment.
func (r *Report) Assign(assigneeID *string, actorID string, at time.Time) {
	if assigneeID == nil {
		r.assignedTo = nil
		r.assignedAt = nil
		r.assignedBy = nil
	} else {
		assignee := *assigneeID
		r.assignedTo = &assignee
		r.assignedAt = &at
		r.assignedBy = &actorID
	}
	r.touch(at)
}

// Schedule records when work is planned and the SLA target. A target already
// in the past stamps the breach time; otherwise any previous breach is cleared.
func (r *Report) Schedule(scheduledAt time.Time, slaTarget *time.Time, now time.Time) {
	r.scheduledAt = &scheduledAt
	r.slaTargetAt = slaTarget
	if slaTarget != nil && slaTarget.Before(now) {
		breached := now
		r.slaBreachedAt = &breached
	} else {
		r.slaBreachedAt = nil
	}
	r.touch(now)
}

// UpdateDistrict replaces the district and returns the previous value.
func (r *Report) UpdateDistrict(district *string, at time.Time) *string {
	previous := r.district
	r.district = district
	r.touch(at)
	return previous
}

// AddPhotoURL attaches a photo to the report itself.
func (r *Report) AddPhotoURL(url string, at time.Time) {
	r.photoURLs = append(r.photoURLs, url)
	r.touch(at)
}

// touch bumps the version once per loaded instance so the repository can
// compare against version-1.
func (r *Report) touch(at time.Time) {
	r.updatedAt = at
	if !r.bumped {
		r.version++
		r.bumped = true
	}
}
