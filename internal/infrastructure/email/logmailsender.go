package email

import (
	"context"

	"github.com/civictrack/civictrack/internal/application/report/services"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

// LogMailSender only logs outgoing mail; used when SMTP is disabled.
type LogMailSender struct {
	logger logger.Interface
}

func NewLogMailSender(logger logger.Interface) *LogMailSender {
	return &LogMailSender{logger: logger}
}

func (s *LogMailSender) Send(ctx context.Context, mail services.Mail) error {
	s.logger.Infow("email delivery disabled, mail logged only",
		"to", mail.To,
		"subject", mail.Subject)
	return nil
}
