package valueobjects

import "fmt"

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// CanPerformActions is true only for active accounts.
func (s Status) CanPerformActions() bool {
	return s == StatusActive
}

func (s Status) String() string {
	return string(s)
}

func NewStatus(value string) (Status, error) {
	s := Status(value)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid account status: %s", value)
	}
	return s, nil
}
