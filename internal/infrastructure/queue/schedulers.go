package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"library-backend/internal/config"
	"library-backend/internal/shared"
	"library-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	lateLoans config.LateLoansConfig
}

func NewScheduler(redis asynq.RedisClientOpt, lateLoans config.LateLoansConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redis,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		lateLoans: lateLoans,
	}
}

func (s *Scheduler) RegisterJobs() error {
	if err := s.registerNotifyLateLoansJob(); err != nil {
		return err
	}
	return nil
}

// ================================================
// JOB: Notify Late Loans (LATE_LOANS_CRON, daily at midnight by default)
// ================================================
// Never retried: a failed run is simply redone on the next tick.
func (s *Scheduler) registerNotifyLateLoansJob() error {
	payload, err := json.Marshal(shared.NotifyLateLoansPayload{})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeNotifyLateLoans, payload)

	entryID, err := s.scheduler.Register(
		s.lateLoans.Cron,
		task,
		asynq.Queue(shared.QueueLoan),
		asynq.MaxRetry(0),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register NotifyLateLoans job", err)
		return err
	}

	logger.Info("✓ Registered NotifyLateLoans", map[string]interface{}{
		"cron":     s.lateLoans.Cron,
		"entry_id": entryID,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
