package services

import (
	"context"
	"fmt"
	"slices"

	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
	"github.com/civictrack/civictrack/internal/domain/setting"
	"github.com/civictrack/civictrack/internal/domain/user"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/services/markdown"
	"github.com/civictrack/civictrack/internal/shared/utils"
)

// Notification event codes.
const (
	NotifyStatusScheduled = "STATUS_SCHEDULED"
	NotifyStatusResolved  = "STATUS_RESOLVED"
	NotifyStatusClosed    = "STATUS_CLOSED"
	NotifyStatusReopened  = "STATUS_REOPENED"
)

var statusNotificationEvents = map[vo.ReportStatus]string{
	vo.StatusScheduled: NotifyStatusScheduled,
	vo.StatusResolved:  NotifyStatusResolved,
	vo.StatusClosed:    NotifyStatusClosed,
	vo.StatusReopened:  NotifyStatusReopened,
}

// DefaultNotificationEvents is the allow-list used when none is configured.
func DefaultNotificationEvents() []string {
	return []string{NotifyStatusScheduled, NotifyStatusResolved, NotifyStatusClosed, NotifyStatusReopened}
}

// NotificationEventFor maps a status onto its notification code.
func NotificationEventFor(s vo.ReportStatus) (string, bool) {
	code, ok := statusNotificationEvents[s]
	return code, ok
}

// NotificationGateway tells the reporter about status changes they care about.
type NotificationGateway struct {
	accounts user.Repository
	settings setting.ReportSettings
	mailer   MailSender
	composer composer
	metrics  Metrics
	logger   logger.Interface
}

func NewNotificationGateway(
	accounts user.Repository,
	settings setting.ReportSettings,
	mailer MailSender,
	renderer markdown.Renderer,
	metrics Metrics,
	log logger.Interface,
) *NotificationGateway {
	return &NotificationGateway{
		accounts: accounts,
		settings: settings,
		mailer:   mailer,
		composer: composer{renderer: renderer},
		metrics:  metrics,
		logger:   log,
	}
}

// Notify sends the status mail when the target status is mapped and
// allow-listed and the reporter has an email. It never returns an error.
func (g *NotificationGateway) Notify(ctx context.Context, change StatusChange) {
	code, ok := NotificationEventFor(change.To)
	if !ok {
		return
	}
	if !slices.Contains(g.settings.NotificationEvents(ctx), code) {
		g.logger.Debugw("notification event not enabled", "event", code, "report_id", change.ReportID)
		return
	}

	account, err := g.accounts.GetByID(ctx, change.ReporterID)
	if err != nil {
		g.logger.Errorw("failed to load reporter for notification", "report_id", change.ReportID, "error", err)
		return
	}
	if account == nil || account.Email().IsZero() {
		g.logger.Debugw("reporter has no email, skipping notification", "report_id", change.ReportID)
		return
	}

	view := statusChangedView{
		Name:     account.DisplayName(),
		ReportID: change.ReportID,
		Category: HumanizeCategory(change.Category),
		Status:   HumanizeStatus(change.To),
		Note:     change.Note,
	}
	if change.To == vo.StatusScheduled {
		view.ScheduledAt = formatOptionalTime(change.ScheduledAt)
	}
	subject := fmt.Sprintf("Your report %s is now %s", change.ReportID, view.Status)

	mail, err := g.composer.compose(account.Email().String(), subject, "status_changed.md.tmpl", view)
	if err != nil {
		g.logger.Errorw("failed to compose notification", "report_id", change.ReportID, "error", err)
		return
	}

	if err := g.mailer.Send(ctx, mail); err != nil {
		g.metrics.NotificationSent(code, false)
		g.logger.Errorw("failed to send status notification",
			"report_id", change.ReportID,
			"event", code,
			"to", utils.MaskEmail(mail.To),
			"error", err,
		)
		return
	}
	g.metrics.NotificationSent(code, true)
	g.logger.Infow("status notification sent", "report_id", change.ReportID, "event", code)
}
