package services

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// Mailer delivers account emails. Registration treats a send failure as
// blocking: an account that cannot receive its verification link must not
// come into existence.
type Mailer interface {
	SendVerification(ctx context.Context, to, name, link string) error
}

// SMTPMailer sends over an authenticated SMTP relay.
type SMTPMailer struct {
	client *mail.Client
	from   string
}

// NewSMTPMailer configures the SMTP client. Credentials may be empty for a
// local relay.
func NewSMTPMailer(host string, port int, username, password, from string) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(username),
			mail.WithPassword(password),
		)
	}

	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, err
	}

	return &SMTPMailer{client: client, from: from}, nil
}

// SendVerification mails the verification link to a freshly registered user.
func (m *SMTPMailer) SendVerification(ctx context.Context, to, name, link string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}

	msg.Subject("Verify your Carevia account")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Hi %s,\n\nWelcome to Carevia! Confirm your email address by opening the link below:\n\n%s\n\nThe link expires in 24 hours. If you did not sign up, you can ignore this message.\n",
		name, link,
	))

	return m.client.DialAndSendWithContext(ctx, msg)
}
