package constants

// Settings keys.
const (
	SettingWorkdayStartTime = "workday_start_time"
	SettingWorkdayEndTime   = "workday_end_time"

	SettingDailyScheduleLastRun = "daily_schedule_last_run_date"
	SettingAutoCloseLastRun     = "task_autoclose_last_run_date"
)

const (
	DefaultWorkdayStartTime = "08:00"
	DefaultWorkdayEndTime   = "18:00"
)

// Notification event names.
const (
	EventTaskChanged     = "task.changed"
	EventTaskDispatched  = "task.dispatched"
	EventTasksAutoClosed = "tasks.autoclosed"
)
