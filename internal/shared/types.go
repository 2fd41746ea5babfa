package shared

// Task types
const (
	TypeNotifyLateLoans = "loan:notify_late_loans"
)

// Queues
const (
	QueueLoan    = "loan"
	QueueDefault = "default"
)

// NotifyLateLoansPayload is the (empty) payload of the daily late-loan sweep.
// Every tick rescans the ledger, nothing is carried between runs.
type NotifyLateLoansPayload struct{}
