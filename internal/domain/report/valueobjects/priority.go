package valueobjects

import "fmt"

type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

const (
	MinScale = 1
	MaxScale = 5
)

var priorityRank = map[Priority]int{
	PriorityLow:      1,
	PriorityMedium:   2,
	PriorityHigh:     3,
	PriorityCritical: 4,
}

func (p Priority) String() string {
	return string(p)
}

func (p Priority) IsValid() bool {
	_, ok := priorityRank[p]
	return ok
}

// Rank orders tiers from LOW (1) to CRITICAL (4).
func (p Priority) Rank() int {
	return priorityRank[p]
}

func NewPriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority: %s", s)
	}
	return p, nil
}

// ComputePriority maps impact+urgency onto a tier:
// score <= 4 LOW, <= 6 MEDIUM, <= 8 HIGH, otherwise CRITICAL.
func ComputePriority(impact, urgency int) (Priority, error) {
	if !inScale(impact) {
		return "", fmt.Errorf("impact must be between %d and %d, got %d", MinScale, MaxScale, impact)
	}
	if !inScale(urgency) {
		return "", fmt.Errorf("urgency must be between %d and %d, got %d", MinScale, MaxScale, urgency)
	}

	switch score := impact + urgency; {
	case score <= 4:
		return PriorityLow, nil
	case score <= 6:
		return PriorityMedium, nil
	case score <= 8:
		return PriorityHigh, nil
	default:
		return PriorityCritical, nil
	}
}

func inScale(v int) bool {
	return v >= MinScale && v <= MaxScale
}
