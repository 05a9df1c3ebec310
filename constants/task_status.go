package constants

const (
	TaskStatusDraft           = "draft"
	TaskStatusSent            = "sent"
	TaskStatusReceived        = "received"
	TaskStatusInProgress      = "in_progress"
	TaskStatusPendingApproval = "pending_approval"
	TaskStatusCompleted       = "completed"
	TaskStatusNotCompleted    = "not_completed"
)

// TaskStatuses lists every valid status, in lifecycle order.
var TaskStatuses = []string{
	TaskStatusDraft,
	TaskStatusSent,
	TaskStatusReceived,
	TaskStatusInProgress,
	TaskStatusPendingApproval,
	TaskStatusCompleted,
	TaskStatusNotCompleted,
}

// NonTerminalStatuses are the statuses a task can still transition out of.
var NonTerminalStatuses = []string{
	TaskStatusDraft,
	TaskStatusSent,
	TaskStatusReceived,
	TaskStatusInProgress,
	TaskStatusPendingApproval,
}

func IsValidStatus(s string) bool {
	for _, v := range TaskStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func IsTerminalStatus(s string) bool {
	return s == TaskStatusCompleted || s == TaskStatusNotCompleted
}
