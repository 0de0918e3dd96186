package email

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/civictrack/civictrack/internal/application/report/services"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

type recordingDialer struct {
	messages []*gomail.Message
	err      error
}

func (d *recordingDialer) DialAndSend(m ...*gomail.Message) error {
	d.messages = append(d.messages, m...)
	return d.err
}

func newTestSender(d dialer) *SMTPMailSender {
	return &SMTPMailSender{
		config: SMTPConfig{FromAddress: "noreply@city.example", FromName: "City Works"},
		dialer: d,
	}
}

func TestSMTPMailSender_Send(t *testing.T) {
	d := &recordingDialer{}
	sender := newTestSender(d)

	err := sender.Send(context.Background(), services.Mail{
		To:      "citizen@example.com",
		Subject: "Your report is now Scheduled",
		Text:    "plain body",
		HTML:    "<p>html body</p>",
	})
	require.NoError(t, err)
	require.Len(t, d.messages, 1)

	msg := d.messages[0]
	assert.Equal(t, []string{"citizen@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Your report is now Scheduled"}, msg.GetHeader("Subject"))
	assert.Contains(t, msg.GetHeader("From")[0], "noreply@city.example")

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "plain body")
	assert.Contains(t, buf.String(), "text/html")
}

func TestSMTPMailSender_Errors(t *testing.T) {
	t.Run("dial failure is wrapped", func(t *testing.T) {
		sender := newTestSender(&recordingDialer{err: errors.New("connection refused")})
		err := sender.Send(context.Background(), services.Mail{To: "a@example.com", Subject: "s", Text: "t"})
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("missing recipient", func(t *testing.T) {
		d := &recordingDialer{}
		err := newTestSender(d).Send(context.Background(), services.Mail{Subject: "s"})
		assert.Error(t, err)
		assert.Empty(t, d.messages)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		d := &recordingDialer{}
		err := newTestSender(d).Send(ctx, services.Mail{To: "a@example.com"})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, d.messages)
	})
}

func TestLogMailSender(t *testing.T) {
	assert.NoError(t, NewLogMailSender(logger.NewNop()).Send(context.Background(), services.Mail{To: "a@example.com"}))
}
