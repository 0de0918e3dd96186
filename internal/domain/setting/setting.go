package setting

import (
	"encoding/json"
	"fmt"
	"time"
)

// Categories and keys understood by the report module.
const (
	CategoryReport = "report"

	KeyDistricts          = "districts"
	KeyNotificationEvents = "notification_events"
	KeySurveyBaseURL      = "survey_base_url"
)

type ValueType string

const (
	ValueTypeString ValueType = "string"
	ValueTypeJSON   ValueType = "json"
)

// SystemSetting is a runtime-editable configuration value stored in the database.
type SystemSetting struct {
	category  string
	key       string
	value     string
	valueType ValueType
	version   int
	updatedAt time.Time
}

func NewSystemSetting(category, key string, valueType ValueType, now time.Time) (*SystemSetting, error) {
	if category == "" {
		return nil, fmt.Errorf("category is required")
	}
	if key == "" {
		return nil, ErrInvalidSettingKey
	}
	if valueType != ValueTypeString && valueType != ValueTypeJSON {
		return nil, fmt.Errorf("%w: %s", ErrInvalidValueType, valueType)
	}
	return &SystemSetting{
		category:  category,
		key:       key,
		valueType: valueType,
		version:   1,
		updatedAt: now,
	}, nil
}

func ReconstructSystemSetting(category, key, value string, valueType ValueType, version int, updatedAt time.Time) *SystemSetting {
	return &SystemSetting{
		category:  category,
		key:       key,
		value:     value,
		valueType: valueType,
		version:   version,
		updatedAt: updatedAt,
	}
}

func (s *SystemSetting) Category() string {
	return s.category
}

func (s *SystemSetting) Key() string {
	return s.key
}

func (s *SystemSetting) Value() string {
	return s.value
}

func (s *SystemSetting) ValueType() ValueType {
	return s.valueType
}

func (s *SystemSetting) Version() int {
	return s.version
}

func (s *SystemSetting) UpdatedAt() time.Time {
	return s.updatedAt
}

func (s *SystemSetting) HasValue() bool {
	return s.value != ""
}

// GetStringArrayValue decodes a JSON array value.
func (s *SystemSetting) GetStringArrayValue() ([]string, error) {
	if s.value == "" {
		return nil, nil
	}
	var result []string
	if err := json.Unmarshal([]byte(s.value), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal string array: %w", err)
	}
	return result, nil
}

func (s *SystemSetting) SetStringValue(value string, at time.Time) error {
	if s.valueType != ValueTypeString {
		return fmt.Errorf("%w: expected %s, got string", ErrInvalidValueType, s.valueType)
	}
	s.value = value
	s.version++
	s.updatedAt = at
	return nil
}

func (s *SystemSetting) SetJSONValue(value any, at time.Time) error {
	if s.valueType != ValueTypeJSON {
		return fmt.Errorf("%w: expected %s, got json", ErrInvalidValueType, s.valueType)
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON value: %w", err)
	}
	s.value = string(data)
	s.version++
	s.updatedAt = at
	return nil
}
