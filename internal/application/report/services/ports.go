// Package services holds the report workflow's collaborators: the event
// recorder, notification gateway, survey dispatcher and side-effect runner,
// plus the ports they reach infrastructure through.
package services

import (
	"context"
	"io"
	"time"

	"github.com/civictrack/civictrack/internal/domain/report"
	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
)

// Mail is a rendered outgoing message.
type Mail struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// MailSender delivers mail. Implementations must be safe for concurrent use.
type MailSender interface {
	Send(ctx context.Context, m Mail) error
}

// EventPublisher fans recorded events out to live subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, e *report.Event) error
}

// TokenGenerator produces unguessable URL-safe tokens.
type TokenGenerator interface {
	Generate(prefix string) (string, error)
}

// BlobStore stores evidence files and returns their public URL.
type BlobStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

// Metrics records workflow counters.
type Metrics interface {
	StatusTransition(from, to vo.ReportStatus)
	SideEffect(name string, ok bool)
	NotificationSent(event string, ok bool)
}

// StatusChange describes a committed transition for downstream side effects.
type StatusChange struct {
	ReportID    string
	ReporterID  string
	Category    vo.Category
	From        vo.ReportStatus
	To          vo.ReportStatus
	Note        string
	ScheduledAt *time.Time
	At          time.Time
}

type nopMetrics struct{}

// NopMetrics discards all observations.
func NopMetrics() Metrics {
	return nopMetrics{}
}

func (nopMetrics) StatusTransition(vo.ReportStatus, vo.ReportStatus) {
}

func (nopMetrics) SideEffect(string, bool) {
}

func (nopMetrics) NotificationSent(string, bool) {
}
