package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/loan/model"
	"library-backend/internal/domains/loan/service"
	"library-backend/internal/shared"
	"library-backend/internal/shared/response"
)

// TaskEnqueuer is the part of asynq.Client the handler needs.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type LateLoanHandler struct {
	service service.ServiceInterface
	queue   TaskEnqueuer
}

func NewLateLoanHandler(service service.ServiceInterface, queue TaskEnqueuer) *LateLoanHandler {
	return &LateLoanHandler{
		service: service,
		queue:   queue,
	}
}

// ListLateLoans - GET /api/v1/loans/late
func (h *LateLoanHandler) ListLateLoans(c *gin.Context) {
	loans, err := h.service.GetAllLateLoans(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	result := make([]model.LoanResponse, len(loans))
	for i, l := range loans {
		result[i] = model.ToResponse(l)
	}

	response.Success(c, http.StatusOK, "Get late loans successfully", result)
}

// NotifyLateLoans - POST /api/v1/loans/late/notify
// Queues an immediate sweep on top of the scheduled one.
func (h *LateLoanHandler) NotifyLateLoans(c *gin.Context) {
	payload, err := json.Marshal(shared.NotifyLateLoansPayload{})
	if err != nil {
		response.HandleError(c, err)
		return
	}

	info, err := h.queue.Enqueue(
		asynq.NewTask(shared.TypeNotifyLateLoans, payload),
		asynq.Queue(shared.QueueLoan),
		asynq.MaxRetry(0),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		log.Error().Err(err).Msg("[LateLoanHandler] Failed to enqueue late loan sweep")
		response.HandleError(c, err)
		return
	}

	log.Info().
		Str("task_id", info.ID).
		Msg("[LateLoanHandler] Late loan sweep enqueued")

	response.Success(c, http.StatusAccepted, "Late loan notification queued", gin.H{"task_id": info.ID})
}
