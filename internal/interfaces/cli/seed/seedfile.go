package seed

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/civictrack/civictrack/internal/shared/utils"
)

// File is the YAML document accepted by the seed command.
type File struct {
	Staff              []StaffEntry `yaml:"staff" validate:"dive"`
	Districts          []string     `yaml:"districts" validate:"omitempty,dive,required,max=100"`
	NotificationEvents []string     `yaml:"notification_events" validate:"omitempty,dive,required"`
	SurveyBaseURL      string       `yaml:"survey_base_url" validate:"omitempty,url"`
}

type StaffEntry struct {
	Email       string `yaml:"email" validate:"required,email"`
	DisplayName string `yaml:"display_name" validate:"max=100"`
	Role        string `yaml:"role" validate:"required,oneof=operator supervisor admin"`
	// Active defaults to true when omitted.
	Active *bool `yaml:"active"`
}

func (e StaffEntry) IsActive() bool {
	return e.Active == nil || *e.Active
}

// ParseFile decodes and validates a seed document. Unknown keys are rejected
// so typos do not silently skip settings.
func ParseFile(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("seed file is empty")
		}
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if err := utils.ValidateStruct(&f); err != nil {
		return nil, err
	}
	return &f, nil
}
