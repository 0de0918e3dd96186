package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/civictrack/civictrack/internal/application/report/services"
	"github.com/civictrack/civictrack/internal/shared/config"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

// SMTPConfigFrom adapts the email configuration section.
func SMTPConfigFrom(cfg config.EmailConfig) SMTPConfig {
	return SMTPConfig{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		Username:    cfg.SMTPUser,
		Password:    cfg.SMTPPassword,
		FromAddress: cfg.FromAddress,
		FromName:    cfg.FromName,
	}
}

// dialer is the subset of gomail.Dialer the sender uses.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailSender delivers multipart text/HTML mail over SMTP. A new
// connection is dialed per message, so it is safe for concurrent use.
type SMTPMailSender struct {
	config SMTPConfig
	dialer dialer
}

func NewSMTPMailSender(cfg SMTPConfig) *SMTPMailSender {
	return &SMTPMailSender{
		config: cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *SMTPMailSender) Send(ctx context.Context, mail services.Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if mail.To == "" {
		return fmt.Errorf("mail recipient is required")
	}

	if err := s.dialer.DialAndSend(s.buildMessage(mail)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *SMTPMailSender) buildMessage(mail services.Mail) *gomail.Message {
	m := gomail.NewMessage()
	if s.config.FromName != "" {
		m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	} else {
		m.SetHeader("From", s.config.FromAddress)
	}
	m.SetHeader("To", mail.To)
	m.SetHeader("Subject", mail.Subject)
	m.SetBody("text/plain", mail.Text)
	if mail.HTML != "" {
		m.AddAlternative("text/html", mail.HTML)
	}
	return m
}
