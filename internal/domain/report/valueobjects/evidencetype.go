package valueobjects

import "fmt"

type EvidenceType string

const (
	EvidenceBefore       EvidenceType = "BEFORE"
	EvidenceAfter        EvidenceType = "AFTER"
	EvidenceIntervention EvidenceType = "INTERVENTION"
)

func (t EvidenceType) String() string {
	return string(t)
}

func (t EvidenceType) IsValid() bool {
	switch t {
	case EvidenceBefore, EvidenceAfter, EvidenceIntervention:
		return true
	}
	return false
}

func NewEvidenceType(s string) (EvidenceType, error) {
	t := EvidenceType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid evidence type: %s", s)
	}
	return t, nil
}
