package mailer

import (
	"context"
	"errors"
)

var errNotConfigured = errors.New("email transport is not configured")

// Unconfigured is the Sender used when SMTP settings are absent. Sends and
// verification fail with a configuration error so shares surface a clear
// delivery failure instead of a nil-pointer panic.
type Unconfigured struct{}

func (Unconfigured) SendSummary(ctx context.Context, recipients []string, subject, summaryMarkdown, summaryID string) (*SendResult, error) {
	return nil, errNotConfigured
}

func (Unconfigured) Verify(ctx context.Context) error {
	return errNotConfigured
}
