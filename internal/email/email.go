package email

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender logs emails instead of sending them. Used in ENV=local.
type LogSender struct {
	logger *slog.Logger
}

func (s *LogSender) Send(ctx context.Context, to, subject, body string) error {
	s.logger.InfoContext(ctx, "email (local dev)", "to", to, "subject", subject, "body", body)
	return nil
}

// ResendSender sends emails via the Resend API. Used in staging/production.
type ResendSender struct {
	client *resend.Client
	from   string
}

func (s *ResendSender) Send(ctx context.Context, to, subject, body string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}
	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// NewSender returns a LogSender for ENV=local, ResendSender otherwise.
func NewSender(env, apiKey, from string, logger *slog.Logger) Sender {
	if env == "local" {
		return &LogSender{logger: logger.With("component", "email")}
	}
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// DomainRegistered builds the notice sent to an owner after a domain is
// registered. The body carries the client secret, so it only goes to the owner.
func DomainRegistered(host, tier, secret string) (subject, body string) {
	subject = "Your domain " + host + " is registered"
	body = fmt.Sprintf(
		`<p>The domain <b>%s</b> is registered on the %s tier.</p>`+
			`<p>Client secret: <code>%s</code></p>`+
			`<p>Exchange it at POST /v2/token for an access token. Keep it private.</p>`,
		html.EscapeString(host), html.EscapeString(tier), html.EscapeString(secret),
	)
	return subject, body
}
