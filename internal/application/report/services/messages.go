package services

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
	"github.com/civictrack/civictrack/internal/shared/biztime"
	"github.com/civictrack/civictrack/internal/shared/services/markdown"
)

//go:embed templates/*.md.tmpl
var templateFS embed.FS

var mailTemplates = template.Must(template.ParseFS(templateFS, "templates/*.md.tmpl"))

var titleCaser = cases.Title(language.English)

// HumanizeStatus renders IN_PROGRESS as "In Progress".
func HumanizeStatus(s vo.ReportStatus) string {
	return humanize(string(s))
}

// HumanizeCategory renders STREET_LIGHTING as "street lighting".
func HumanizeCategory(c vo.Category) string {
	return strings.ToLower(strings.ReplaceAll(string(c), "_", " "))
}

func humanize(s string) string {
	return titleCaser.String(strings.ToLower(strings.ReplaceAll(s, "_", " ")))
}

type statusChangedView struct {
	Name        string
	ReportID    string
	Category    string
	Status      string
	Note        string
	ScheduledAt string
}

type surveyInvitationView struct {
	Name      string
	ReportID  string
	Category  string
	SurveyURL string
}

// composer renders markdown templates into mail with a sanitized HTML part.
type composer struct {
	renderer markdown.Renderer
}

func (c composer) compose(to, subject, templateName string, view any) (Mail, error) {
	var buf bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&buf, templateName, view); err != nil {
		return Mail{}, fmt.Errorf("render %s: %w", templateName, err)
	}
	text := buf.String()
	html, err := c.renderer.ToHTMLSanitized(text)
	if err != nil {
		return Mail{}, err
	}
	return Mail{To: to, Subject: subject, Text: text, HTML: html}, nil
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return biztime.Format(*t)
}
