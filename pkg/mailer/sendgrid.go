// Package mailer delivers transactional email for workflow notifications.
package mailer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// Sender delivers a single plain-text message to one recipient.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type sendgridSender struct {
	key        string
	from       *sgmail.Email
	subjPrefix string
	fallbackTo string
	logger     zerolog.Logger
}

// NewSendgridSender builds a Sender backed by the SendGrid v3 API.
// fallbackTo, when set, receives mail whenever the recipient is empty.
func NewSendgridSender(apiKey, fromName, fromAddress, appName, fallbackTo string, logger zerolog.Logger) Sender {
	return &sendgridSender{
		key:        apiKey,
		from:       sgmail.NewEmail(fromName, fromAddress),
		subjPrefix: "[" + appName + "] ",
		fallbackTo: fallbackTo,
		logger:     logger.With().Str("component", "mailer").Logger(),
	}
}

func (s *sendgridSender) Send(ctx context.Context, to, subject, body string) error {
	if to == "" {
		to = s.fallbackTo
	}
	if to == "" {
		return fmt.Errorf("no recipient for email %q", subject)
	}

	p := sgmail.NewPersonalization()
	p.Subject = s.subjPrefix + subject
	p.AddTos(sgmail.NewEmail("", to))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", body))

	req := sendgrid.GetRequest(s.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.API(req)
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sending email: status %d: %s", res.StatusCode, res.Body)
	}

	s.logger.Debug().Str("recipient", to).Str("subject", subject).Msg("email delivered")
	return nil
}
