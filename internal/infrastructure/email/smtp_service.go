package email

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
)

type EmailService interface {
	SendEmail(ctx context.Context, req EmailRequest) error
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
	auth     smtp.Auth
	send     sendFunc
}

// NewSMTPEmailService talks to the relay in cfg. Auth is only used when a
// username is configured; local relays like MailHog accept anonymous mail.
func NewSMTPEmailService(cfg config.MailConfig) EmailService {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &smtpEmailService{
		smtpAddr: net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		smtpFrom: cfg.From,
		auth:     auth,
		send:     smtp.SendMail,
	}
}

func (s *smtpEmailService) SendEmail(ctx context.Context, req EmailRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	recipients := req.Recipients()
	if len(recipients) == 0 {
		return fmt.Errorf("email has no recipients")
	}

	msg := buildMessage(s.smtpFrom, req)
	if err := s.send(s.smtpAddr, s.auth, s.smtpFrom, recipients, msg); err != nil {
		log.Error().
			Err(err).
			Int("recipients", len(recipients)).
			Str("smtp_addr", s.smtpAddr).
			Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Debug().
		Int("recipients", len(recipients)).
		Str("subject", req.Subject).
		Msg("Email sent")
	return nil
}

// buildMessage renders the RFC 5322 message. Bcc addresses go on the
// envelope only and never appear in the headers.
func buildMessage(from string, req EmailRequest) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	if len(req.To) > 0 {
		fmt.Fprintf(&b, "To: %s\r\n", strings.Join(req.To, ", "))
	} else {
		fmt.Fprintf(&b, "To: undisclosed-recipients:;\r\n")
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", req.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(req.Body)
	return []byte(b.String())
}
