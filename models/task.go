package models

import (
	"time"

	"gorm.io/datatypes"
)

type Task struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	SystemID   *uint `json:"system_id"`
	EmployeeID *uint `json:"employee_id"`
	LocationID *uint `json:"location_id"`
	BuildingID *uint `json:"building_id"`

	System   *System   `gorm:"constraint:OnDelete:SET NULL" json:"system,omitempty"`
	Employee *Employee `gorm:"constraint:OnDelete:SET NULL" json:"employee,omitempty"`
	Location *Location `gorm:"constraint:OnDelete:SET NULL" json:"location,omitempty"`
	Building *Building `gorm:"constraint:OnDelete:SET NULL" json:"building,omitempty"`

	Frequency string  `gorm:"size:16;index" json:"frequency"`
	StartDate string  `gorm:"size:10;index" json:"start_date"`
	StartTime string  `gorm:"size:5" json:"start_time"`
	DueDate   *string `gorm:"size:10;index" json:"due_date"`

	// WeeklyDays holds weekday numbers 0 (Sunday) through 6 (Saturday).
	// Only meaningful for frequency=daily, where it narrows "every day"
	// down to "every matching weekday".
	WeeklyDays datatypes.JSONSlice[int] `json:"weekly_days,omitempty"`

	EstimatedDurationMinutes int `gorm:"default:30" json:"estimated_duration_minutes"`

	IsRecurring  bool   `json:"is_recurring"`
	ParentTaskID *uint  `json:"parent_task_id"`
	Status       string `gorm:"size:20;default:'draft';index" json:"status"`

	SentAt           *time.Time `json:"sent_at"`
	AcknowledgedAt   *time.Time `json:"acknowledged_at"`
	CompletedAt      *time.Time `json:"completed_at"`
	TimeDeltaMinutes *int       `json:"time_delta_minutes"`

	CompletionNote string `json:"completion_note"`
	IsStarred      bool   `json:"is_starred"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Timing is computed on every read, never stored.
	Timing *TaskTiming `gorm:"-" json:"timing,omitempty"`
}

// TaskTiming is the computed timing block attached to task reads. For a task
// that is still open, MinutesRemaining/IsLate/TimingStatus are set. For a
// terminal task with a completion instant, DeltaMinutes and Message are set.
// A terminal task without a completion instant gets neither half; that is a
// defined degraded state, not an error.
type TaskTiming struct {
	EstimatedEnd time.Time `json:"estimated_end"`

	MinutesRemaining *int   `json:"minutes_remaining,omitempty"`
	IsLate           bool   `json:"is_late"`
	TimingStatus     string `json:"timing_status,omitempty"`
	Display          string `json:"display,omitempty"`

	DeltaMinutes *int   `json:"delta_minutes,omitempty"`
	Message      string `json:"message,omitempty"`
}
