package email

import (
	"context"
	"fmt"
)

// ================================================
// NOTIFICATION EMAIL ADAPTER
// Adapts EmailService to the late-loan sweep's sender
// ================================================

type NotificationEmailProvider struct {
	emailService EmailService
}

func NewNotificationEmailProvider(emailService EmailService) *NotificationEmailProvider {
	return &NotificationEmailProvider{
		emailService: emailService,
	}
}

// SendBatch mails message to every recipient at once. Addresses are blind
// copied so customers do not see each other.
func (p *NotificationEmailProvider) SendBatch(ctx context.Context, subject, message string, recipients []string) error {
	if len(recipients) == 0 {
		return nil
	}

	req := EmailRequest{
		Bcc:     recipients,
		Subject: subject,
		Body:    message,
	}

	if err := p.emailService.SendEmail(ctx, req); err != nil {
		return fmt.Errorf("send notification batch: %w", err)
	}
	return nil
}
