package email

import (
	"context"

	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
)

// ================================================
// MOCK EMAIL SERVICE (for development)
// ================================================

type MockEmailService struct{}

func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

// SendEmail logs the message instead of delivering it.
func (s *MockEmailService) SendEmail(ctx context.Context, req EmailRequest) error {
	log.Info().
		Strs("to", req.To).
		Int("bcc", len(req.Bcc)).
		Str("subject", req.Subject).
		Msg("[MOCK] Email sent successfully")
	return nil
}

// NewEmailService picks the implementation named by MAIL_DRIVER.
func NewEmailService(cfg config.MailConfig) EmailService {
	if cfg.Driver == config.MailDriverLog {
		log.Warn().Msg("MAIL_DRIVER=log, emails are logged and not delivered")
		return NewMockEmailService()
	}
	return NewSMTPEmailService(cfg)
}
