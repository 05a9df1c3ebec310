package models

import (
	"time"

	"gorm.io/datatypes"
)

// TaskConfirmation is a capability token binding one employee to a fixed set
// of tasks. The bound set never changes after issuance.
type TaskConfirmation struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Token      string    `gorm:"size:64;uniqueIndex" json:"token"`
	EmployeeID uint      `json:"employee_id"`
	Employee   *Employee `json:"employee,omitempty"`

	TaskIDs datatypes.JSONSlice[uint] `json:"task_ids"`

	IsAcknowledged bool       `json:"is_acknowledged"`
	AcknowledgedAt *time.Time `json:"acknowledged_at"`

	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Covers reports whether taskID belongs to the token's bound set.
func (tc *TaskConfirmation) Covers(taskID uint) bool {
	for _, id := range tc.TaskIDs {
		if id == taskID {
			return true
		}
	}
	return false
}
