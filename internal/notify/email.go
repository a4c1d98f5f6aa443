package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

var ErrEmailNotConfigured = errors.New("email notifier not configured (missing RESEND_API_KEY)")

type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// EmailNotifier mails reminders through Resend. In development it only logs.
type EmailNotifier struct {
	sender  emailSender
	from    string
	to      string
	isDev   bool
	appName string
}

func NewEmailNotifier(apiKey, from, to string, isDev bool) *EmailNotifier {
	n := &EmailNotifier{
		from:    from,
		to:      to,
		isDev:   isDev,
		appName: "নূর",
	}
	if apiKey != "" && !isDev {
		n.sender = resend.NewClient(apiKey).Emails
	}
	return n
}

func (e *EmailNotifier) Notify(ctx context.Context, n Notification) error {
	subject := fmt.Sprintf("%s | %s", n.Title, e.appName)

	if e.isDev {
		slog.Info("email sent (dev mode)", "type", "reminder", "reminder", n.Key, "to", e.to, "subject", subject)
		return nil
	}

	if e.sender == nil {
		return ErrEmailNotConfigured
	}

	params := &resend.SendEmailRequest{
		From:    e.from,
		To:      []string{e.to},
		Subject: subject,
		Text:    n.Body,
	}

	_, err := e.sender.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send reminder email: %w", err)
	}

	slog.Info("email sent", "type", "reminder", "reminder", n.Key, "to", e.to)
	return nil
}
