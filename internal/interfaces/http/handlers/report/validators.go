package report

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
	"github.com/civictrack/civictrack/internal/shared/utils"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators installs the report enum rules used in binding tags.
// Values are compared case-insensitively; the use cases apply the exact rules.
func RegisterValidators() error {
	registerOnce.Do(func() {
		rules := map[string]func(string) bool{
			"report_status":   func(s string) bool { return vo.ReportStatus(s).IsValid() },
			"priority_tier":   func(s string) bool { return vo.Priority(s).IsValid() },
			"evidence_type":   func(s string) bool { return vo.EvidenceType(s).IsValid() },
			"report_category": func(s string) bool { return vo.Category(s).IsValid() },
		}
		for tag, valid := range rules {
			if err := utils.RegisterValidation(tag, enumRule(valid)); err != nil {
				registerErr = err
				return
			}
		}
	})
	return registerErr
}

func enumRule(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return valid(strings.ToUpper(strings.TrimSpace(fl.Field().String())))
	}
}
