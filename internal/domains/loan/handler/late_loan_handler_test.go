package handler

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/loan/model"
	"library-backend/internal/shared"
)

type mockQueue struct {
	mock.Mock
}

func (m *mockQueue) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(task.Type())
	info, _ := args.Get(0).(*asynq.TaskInfo)
	return info, args.Error(1)
}

func newLateRouter(h *LateLoanHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/loans/late", h.ListLateLoans)
	r.POST("/loans/late/notify", h.NotifyLateLoans)
	return r
}

func TestListLateLoans(t *testing.T) {
	ledger := new(mockLedger)
	ledger.On("GetAllLateLoans", mock.Anything).Return([]model.Loan{
		{ID: uuid.New(), Book: vingadores, Customer: "Fulano", LoanDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}, nil)

	w, env := doRequest(t, newLateRouter(NewLateLoanHandler(ledger, new(mockQueue))), http.MethodGet, "/loans/late", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"loan_date":"2024-03-01"`)
	assert.Contains(t, string(env.Data), `"returned":false`)
}

func TestListLateLoans_StoreFailure(t *testing.T) {
	ledger := new(mockLedger)
	ledger.On("GetAllLateLoans", mock.Anything).Return(nil, errors.New("connection refused"))

	w, env := doRequest(t, newLateRouter(NewLateLoanHandler(ledger, new(mockQueue))), http.MethodGet, "/loans/late", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotNil(t, env.Error)
	assert.NotContains(t, env.Error.Message, "connection refused")
}

func TestNotifyLateLoans(t *testing.T) {
	queue := new(mockQueue)
	queue.On("Enqueue", shared.TypeNotifyLateLoans).Return(&asynq.TaskInfo{ID: "task-1"}, nil)

	w, env := doRequest(t, newLateRouter(NewLateLoanHandler(new(mockLedger), queue)), http.MethodPost, "/loans/late/notify", nil)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"task_id":"task-1"}`, string(env.Data))
	queue.AssertExpectations(t)
}
