// Package mailer sends summary emails over SMTP. The markdown summary is
// rendered to HTML, wrapped in a branded template, and sent with the raw
// markdown as the plain-text alternative.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	mail "github.com/wneessen/go-mail"
)

// SendResult reports a delivered message: its Message-ID and the exact
// HTML body that was sent, kept for the share history.
type SendResult struct {
	MessageID string
	BodyHTML  string
}

// Sender is the interface the lifecycle service consumes for email delivery.
type Sender interface {
	SendSummary(ctx context.Context, recipients []string, subject, summaryMarkdown, summaryID string) (*SendResult, error)
	Verify(ctx context.Context) error
}

// Config holds SMTP transport settings
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer implements Sender over a single SMTP account
type SMTPMailer struct {
	client *mail.Client
	from   string
}

// NewSMTPMailer creates a new SMTP-backed mailer. Port 465 uses implicit
// TLS, everything else negotiates STARTTLS when offered.
func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	}
	if cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &SMTPMailer{client: client, from: cfg.From}, nil
}

// SendSummary renders and sends one summary email to all recipients.
func (m *SMTPMailer) SendSummary(ctx context.Context, recipients []string, subject, summaryMarkdown, summaryID string) (*SendResult, error) {
	slog.Info("sending summary email", "recipients", len(recipients), "subject", subject, "summary_id", summaryID)

	bodyHTML, err := renderBody(summaryMarkdown, summaryID, time.Now())
	if err != nil {
		return nil, err
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(recipients...); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetMessageID()
	msg.SetBodyString(mail.TypeTextPlain, summaryMarkdown)
	msg.AddAlternativeString(mail.TypeTextHTML, bodyHTML)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to send email: %w", err)
	}

	messageID := msg.GetMessageID()
	slog.Info("summary email sent", "message_id", messageID, "recipients", len(recipients), "summary_id", summaryID)

	return &SendResult{MessageID: messageID, BodyHTML: bodyHTML}, nil
}

// Verify checks that the SMTP server is reachable and accepts our
// credentials. Used by the health endpoint.
func (m *SMTPMailer) Verify(ctx context.Context) error {
	if err := m.client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("SMTP verification failed: %w", err)
	}
	return m.client.Close()
}
