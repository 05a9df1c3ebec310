package services

import (
	"time"

	"gorm.io/gorm"

	"upkeep/constants"
	"upkeep/models"
)

// autoCloseStatuses are the statuses the end-of-day sweep force-closes.
// Later statuses mean somebody is actively working the task; those are left
// for the approval flow.
var autoCloseStatuses = []string{
	constants.TaskStatusDraft,
	constants.TaskStatusSent,
	constants.TaskStatusReceived,
}

// SweepResult reports one auto-close invocation. RanToday is true only when
// this call performed the close; a call skipped by the time-of-day guard or
// the daily watermark returns false with Changed 0.
type SweepResult struct {
	RanToday bool   `json:"ran_today"`
	Changed  int64  `json:"changed_count"`
	Date     string `json:"date"`
}

// RunAutoClose is the minute-granularity idempotent sweep: once per civil
// day, at or after the configured workday end, it transitions every still
// open task due today to not_completed. Safe to call every minute and across
// restarts; the watermark commits in the same transaction as the update, so
// a failed sweep retries naturally on the next tick.
func (e *Engine) RunAutoClose(now time.Time) (SweepResult, error) {
	date := e.civil.Date(now)
	res := SweepResult{Date: date}

	if e.civil.TimeOfDay(now) < e.workdayEnd() {
		return res, nil
	}
	if NewRunMarker(e.db, constants.SettingAutoCloseLastRun).HasRunOn(date) {
		return res, nil
	}

	err := e.db.Transaction(func(tx *gorm.DB) error {
		update := tx.Model(&models.Task{}).
			Where("status IN ?", autoCloseStatuses).
			Where("(due_date IS NULL AND start_date = ?) OR due_date = ?", date, date).
			Updates(map[string]any{
				"status":     constants.TaskStatusNotCompleted,
				"updated_at": now,
			})
		if update.Error != nil {
			return update.Error
		}
		res.Changed = update.RowsAffected
		return NewRunMarker(tx, constants.SettingAutoCloseLastRun).MarkRunOn(date)
	})
	if err != nil {
		return SweepResult{Date: date}, err
	}

	res.RanToday = true
	// One bulk event, not one per task, to bound notification volume.
	e.sink.Emit(constants.EventTasksAutoClosed, map[string]any{
		"date":  date,
		"count": res.Changed,
	})
	return res, nil
}

// DispatchResult reports one daily-dispatch invocation.
type DispatchResult struct {
	RanToday  bool   `json:"ran_today"`
	Employees int    `json:"employees"`
	Tasks     int    `json:"tasks"`
	Date      string `json:"date"`
}

// dispatchEnvelope is the payload of a task.dispatched event.
type dispatchEnvelope struct {
	conf    *models.TaskConfirmation
	taskIDs []uint
}

// RunDailyDispatch runs once per civil day at or after workday start: it
// marks today's assigned draft tasks as sent, issues one confirmation token
// per employee covering their tasks for the day, and announces each
// dispatch on the bus. Same watermark scheme as the auto-close sweep.
func (e *Engine) RunDailyDispatch(now time.Time) (DispatchResult, error) {
	date := e.civil.Date(now)
	res := DispatchResult{Date: date}

	if e.civil.TimeOfDay(now) < e.workdayStart() {
		return res, nil
	}
	if NewRunMarker(e.db, constants.SettingDailyScheduleLastRun).HasRunOn(date) {
		return res, nil
	}

	var due []*models.Task
	err := e.db.
		Where("status = ?", constants.TaskStatusDraft).
		Where("employee_id IS NOT NULL").
		Where("start_date = ?", date).
		Order("employee_id, start_time, id").
		Find(&due).Error
	if err != nil {
		return res, err
	}

	byEmployee := make(map[uint][]*models.Task)
	for _, t := range due {
		byEmployee[*t.EmployeeID] = append(byEmployee[*t.EmployeeID], t)
	}

	var envelopes []dispatchEnvelope
	var sent []uint
	err = e.db.Transaction(func(tx *gorm.DB) error {
		for employeeID, tasks := range byEmployee {
			ids := make([]uint, 0, len(tasks))
			for _, t := range tasks {
				if _, err := e.transition(tx, t, constants.TaskStatusSent, "", "scheduler"); err != nil {
					return err
				}
				ids = append(ids, t.ID)
				sent = append(sent, t.ID)
			}

			token, err := newConfirmation(tx, e.now(), employeeID, ids)
			if err != nil {
				return err
			}
			envelopes = append(envelopes, dispatchEnvelope{conf: token, taskIDs: ids})
		}
		return NewRunMarker(tx, constants.SettingDailyScheduleLastRun).MarkRunOn(date)
	})
	if err != nil {
		return DispatchResult{Date: date}, err
	}

	for _, id := range sent {
		e.emitTaskChanged(id)
	}
	for _, env := range envelopes {
		e.sink.Emit(constants.EventTaskDispatched, map[string]any{
			"date":        date,
			"employee_id": env.conf.EmployeeID,
			"token":       env.conf.Token,
			"expires_at":  env.conf.ExpiresAt,
			"task_ids":    env.taskIDs,
		})
	}

	res.RanToday = true
	res.Employees = len(byEmployee)
	res.Tasks = len(sent)
	return res, nil
}
