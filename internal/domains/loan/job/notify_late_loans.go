package job

import (
	"context"
	"fmt"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/loan/service"
)

// NotificationSender delivers one message to many recipients in a single call.
type NotificationSender interface {
	SendBatch(ctx context.Context, subject, message string, recipients []string) error
}

// ================================================
// NOTIFY LATE LOANS JOB HANDLER
// ================================================

// NotifyLateLoansHandler is the late-loan sweep. It keeps no state between
// runs: a customer still late tomorrow is notified again.
type NotifyLateLoansHandler struct {
	ledger  service.ServiceInterface
	sender  NotificationSender
	subject string
	message string
}

func NewNotifyLateLoansHandler(
	ledger service.ServiceInterface,
	sender NotificationSender,
	subject, message string,
) *NotifyLateLoansHandler {
	return &NotifyLateLoansHandler{
		ledger:  ledger,
		sender:  sender,
		subject: subject,
		message: message,
	}
}

// Scan runs one sweep and returns how many addresses were notified. A ledger
// failure aborts the sweep before anything is sent.
func (h *NotifyLateLoansHandler) Scan(ctx context.Context) (int, error) {
	loans, err := h.ledger.GetAllLateLoans(ctx)
	if err != nil {
		return 0, fmt.Errorf("get late loans: %w", err)
	}

	recipients := make([]string, 0, len(loans))
	for _, l := range loans {
		if email := strings.TrimSpace(l.CustomerEmail); email != "" {
			recipients = append(recipients, email)
		}
	}

	log.Info().
		Int("late_loans", len(loans)).
		Int("recipients", len(recipients)).
		Msg("[NotifyLateLoans] Scan finished")

	if len(recipients) == 0 {
		return 0, nil
	}

	if err := h.sender.SendBatch(ctx, h.subject, h.message, recipients); err != nil {
		return 0, fmt.Errorf("send late loan notices: %w", err)
	}

	return len(recipients), nil
}

func (h *NotifyLateLoansHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	log.Info().Str("task", task.Type()).Msg("Starting NotifyLateLoans job")

	notified, err := h.Scan(ctx)
	if err != nil {
		log.Error().Err(err).Msg("NotifyLateLoans job failed")
		return err
	}

	log.Info().
		Int("notified", notified).
		Msg("Completed NotifyLateLoans job")
	return nil
}
