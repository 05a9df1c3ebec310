package services

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"upkeep/apperrors"
	"upkeep/clock"
	"upkeep/constants"
	"upkeep/models"
)

// TaskInput is the payload accepted by create and update.
type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`

	SystemID   *uint `json:"system_id"`
	EmployeeID *uint `json:"employee_id"`
	LocationID *uint `json:"location_id"`
	BuildingID *uint `json:"building_id"`

	Frequency string  `json:"frequency"`
	StartDate string  `json:"start_date"`
	StartTime string  `json:"start_time"`
	DueDate   *string `json:"due_date"`

	WeeklyDays               []int `json:"weekly_days"`
	EstimatedDurationMinutes int   `json:"estimated_duration_minutes"`

	IsStarred bool `json:"is_starred"`
}

func (in *TaskInput) validate() error {
	if in.Frequency == "" {
		in.Frequency = constants.FrequencyOneTime
	}
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}
	if !constants.IsValidFrequency(in.Frequency) {
		return fmt.Errorf("%w: unknown frequency %q", apperrors.ErrValidation, in.Frequency)
	}
	if in.StartDate == "" || !clock.ValidDate(in.StartDate) {
		return fmt.Errorf("%w: start_date must be YYYY-MM-DD", apperrors.ErrValidation)
	}
	if in.StartTime != "" && !clock.ValidTimeOfDay(in.StartTime) {
		return fmt.Errorf("%w: start_time must be HH:MM", apperrors.ErrValidation)
	}

	recurring := in.Frequency != constants.FrequencyOneTime
	if recurring && in.StartTime == "" {
		return fmt.Errorf("%w: start_time is required for recurring tasks", apperrors.ErrValidation)
	}
	if in.DueDate != nil && *in.DueDate != "" {
		if recurring {
			return fmt.Errorf("%w: due_date applies to one-time tasks only", apperrors.ErrValidation)
		}
		if !clock.ValidDate(*in.DueDate) {
			return fmt.Errorf("%w: due_date must be YYYY-MM-DD", apperrors.ErrValidation)
		}
	}
	if len(in.WeeklyDays) > 0 && in.Frequency != constants.FrequencyDaily {
		return fmt.Errorf("%w: weekly_days applies to daily tasks only", apperrors.ErrValidation)
	}
	for _, d := range in.WeeklyDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: weekly_days values must be 0..6", apperrors.ErrValidation)
		}
	}
	return nil
}

func (in *TaskInput) apply(t *models.Task) {
	// Drop preloaded associations so a cleared foreign key isn't re-filled
	// from them on save.
	t.System, t.Employee, t.Location, t.Building = nil, nil, nil, nil

	t.Title = in.Title
	t.Description = in.Description
	t.SystemID = in.SystemID
	t.EmployeeID = in.EmployeeID
	t.LocationID = in.LocationID
	t.BuildingID = in.BuildingID
	t.Frequency = in.Frequency
	t.StartDate = in.StartDate
	t.StartTime = in.StartTime
	t.DueDate = in.DueDate
	t.WeeklyDays = in.WeeklyDays
	t.EstimatedDurationMinutes = in.EstimatedDurationMinutes
	t.IsRecurring = in.Frequency != constants.FrequencyOneTime
	t.IsStarred = in.IsStarred
}

// CreateTask creates a one-time task, or materializes the initial batch of
// occurrences for a recurring one. The first returned task is the
// representative occurrence; occurrences are chained through parent_task_id.
func (e *Engine) CreateTask(in TaskInput) ([]*models.Task, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := e.now()
	var created []*models.Task

	if in.Frequency == constants.FrequencyOneTime {
		task := &models.Task{Status: constants.TaskStatusDraft}
		in.apply(task)
		if err := e.db.Create(task).Error; err != nil {
			return nil, err
		}
		created = append(created, task)
	} else {
		dates := InitialDates(in.Frequency, in.StartDate, in.WeeklyDays, e.civil.Date(now))
		if len(dates) == 0 {
			dates = []string{in.StartDate}
		}

		err := e.db.Transaction(func(tx *gorm.DB) error {
			var prev *models.Task
			for _, date := range dates {
				task := &models.Task{Status: constants.TaskStatusDraft}
				in.apply(task)
				task.StartDate = date
				if prev != nil {
					task.ParentTaskID = &prev.ID
				}
				if err := tx.Create(task).Error; err != nil {
					return err
				}
				created = append(created, task)
				prev = task
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	for _, t := range created {
		e.emitTaskChanged(t.ID)
	}
	return created, nil
}

// UpdateTask rewrites a task's descriptive and scheduling fields. Status is
// only changed through SetStatus/Approve.
func (e *Engine) UpdateTask(id uint, in TaskInput) (*models.Task, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	task, err := e.loadTask(e.db, id)
	if err != nil {
		return nil, err
	}
	if constants.IsTerminalStatus(task.Status) {
		return nil, fmt.Errorf("%w: task %d is closed and can no longer be edited", apperrors.ErrConflict, id)
	}

	in.apply(task)
	task.UpdatedAt = e.now()
	if err := e.db.Save(task).Error; err != nil {
		return nil, err
	}

	e.emitTaskChanged(task.ID)
	return e.GetTask(task.ID)
}

// SetStatus applies a state-machine transition requested directly through
// the API. Transitioning to completed from any non-terminal state is a legal
// fast path alongside Approve; both converge on the same completion logic.
func (e *Engine) SetStatus(id uint, status, note, actor string) (*models.Task, error) {
	if !constants.IsValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, status)
	}

	var spawned *models.Task
	err := e.db.Transaction(func(tx *gorm.DB) error {
		task, err := e.loadTask(tx, id)
		if err != nil {
			return err
		}
		spawned, err = e.transition(tx, task, status, note, actor)
		return err
	})
	if err != nil {
		return nil, err
	}

	e.emitTaskChanged(id)
	if spawned != nil {
		e.emitTaskChanged(spawned.ID)
	}
	return e.GetTask(id)
}

// Approve completes a task awaiting approval. Unlike the direct status path
// it is only legal from pending_approval.
func (e *Engine) Approve(id uint, actor string) (*models.Task, error) {
	var spawned *models.Task
	err := e.db.Transaction(func(tx *gorm.DB) error {
		task, err := e.loadTask(tx, id)
		if err != nil {
			return err
		}
		if task.Status != constants.TaskStatusPendingApproval {
			return fmt.Errorf("%w: approve requires %s, task is %s",
				apperrors.ErrInvalidTransition, constants.TaskStatusPendingApproval, task.Status)
		}
		spawned, err = e.transition(tx, task, constants.TaskStatusCompleted, "", actor)
		return err
	})
	if err != nil {
		return nil, err
	}

	e.emitTaskChanged(id)
	if spawned != nil {
		e.emitTaskChanged(spawned.ID)
	}
	return e.GetTask(id)
}

// SetStarred toggles the star flag without going through the state machine.
func (e *Engine) SetStarred(id uint, starred bool) (*models.Task, error) {
	task, err := e.loadTask(e.db, id)
	if err != nil {
		return nil, err
	}
	task.IsStarred = starred
	if err := e.db.Save(task).Error; err != nil {
		return nil, err
	}
	e.emitTaskChanged(id)
	return e.GetTask(id)
}

func (e *Engine) DeleteTask(id uint) error {
	task, err := e.loadTask(e.db, id)
	if err != nil {
		return err
	}
	return e.db.Delete(task).Error
}

func (e *Engine) GetTask(id uint) (*models.Task, error) {
	task, err := e.loadTask(e.db, id)
	if err != nil {
		return nil, err
	}
	return e.enrich(task), nil
}

// TaskFilter narrows ListTasks.
type TaskFilter struct {
	Status     string
	EmployeeID uint
	Date       string
	Starred    *bool
}

func (e *Engine) ListTasks(f TaskFilter) ([]*models.Task, error) {
	q := taskPreloads(e.db)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.EmployeeID != 0 {
		q = q.Where("employee_id = ?", f.EmployeeID)
	}
	if f.Date != "" {
		q = q.Where("start_date = ?", f.Date)
	}
	if f.Starred != nil {
		q = q.Where("is_starred = ?", *f.Starred)
	}

	var tasks []*models.Task
	if err := q.Order("start_date, start_time, id").Find(&tasks).Error; err != nil {
		return nil, err
	}
	for _, t := range tasks {
		e.enrich(t)
	}
	return tasks, nil
}

// transition performs one state-machine step inside tx. It stamps the
// once-only timestamps, runs completion side effects, writes the audit row,
// and returns the follow-up occurrence when completion spawned one.
func (e *Engine) transition(tx *gorm.DB, task *models.Task, to, note, actor string) (*models.Task, error) {
	if constants.IsTerminalStatus(task.Status) {
		return nil, fmt.Errorf("%w: task %d is already %s",
			apperrors.ErrInvalidTransition, task.ID, task.Status)
	}

	now := e.now()
	from := task.Status
	var spawned *models.Task

	switch to {
	case constants.TaskStatusSent:
		if task.SentAt == nil {
			task.SentAt = &now
		}
	case constants.TaskStatusCompleted:
		var err error
		spawned, err = e.complete(tx, task, now)
		if err != nil {
			return nil, err
		}
	case constants.TaskStatusNotCompleted:
		// Intentionally no recurrence: the chain's next occurrence was
		// already materialized on schedule, a missed one must not spawn
		// a duplicate.
	}

	task.Status = to
	task.UpdatedAt = now
	if note != "" {
		task.CompletionNote = note
	}
	task.System, task.Employee, task.Location, task.Building = nil, nil, nil, nil
	if err := tx.Save(task).Error; err != nil {
		return nil, err
	}

	event := &models.TaskEvent{
		TaskID:     task.ID,
		FromStatus: from,
		ToStatus:   to,
		Actor:      actor,
		Note:       note,
	}
	if err := tx.Create(event).Error; err != nil {
		return nil, err
	}
	return spawned, nil
}

// complete stamps the completion instant (first write wins), computes the
// signed lateness delta against the deadline, and spawns the follow-up
// occurrence for recurring tasks.
func (e *Engine) complete(tx *gorm.DB, task *models.Task, now time.Time) (*models.Task, error) {
	if task.CompletedAt == nil {
		task.CompletedAt = &now
	}

	delta, err := CompletionDelta(task, *task.CompletedAt, e.workdayEnd(), e.civil)
	if err != nil {
		return nil, fmt.Errorf("%w: task %d has unusable schedule fields", apperrors.ErrValidation, task.ID)
	}
	task.TimeDeltaMinutes = &delta

	if !task.IsRecurring {
		return nil, nil
	}

	next, ok := NextStartDate(task.Frequency, task.StartDate, task.WeeklyDays)
	if !ok {
		log.Printf("[lifecycle] task %d: no occurrence within %d days, chain ends here",
			task.ID, weekdayLookaheadDays)
		return nil, nil
	}

	follow := &models.Task{
		Title:                    task.Title,
		Description:              task.Description,
		SystemID:                 task.SystemID,
		EmployeeID:               task.EmployeeID,
		LocationID:               task.LocationID,
		BuildingID:               task.BuildingID,
		Frequency:                task.Frequency,
		StartDate:                next,
		StartTime:                task.StartTime,
		WeeklyDays:               task.WeeklyDays,
		EstimatedDurationMinutes: task.EstimatedDurationMinutes,
		IsRecurring:              true,
		ParentTaskID:             &task.ID,
		Status:                   constants.TaskStatusDraft,
	}
	if err := tx.Create(follow).Error; err != nil {
		return nil, err
	}
	return follow, nil
}

func taskPreloads(db *gorm.DB) *gorm.DB {
	return db.Preload("System").Preload("Employee").Preload("Location").Preload("Building")
}

func (e *Engine) loadTask(db *gorm.DB, id uint) (*models.Task, error) {
	var task models.Task
	if err := taskPreloads(db).First(&task, id).Error; err != nil {
		return nil, fmt.Errorf("%w: task %d", apperrors.ErrNotFound, id)
	}
	return &task, nil
}

func (e *Engine) workdayEnd() string {
	return e.Setting(constants.SettingWorkdayEndTime, constants.DefaultWorkdayEndTime)
}

func (e *Engine) workdayStart() string {
	return e.Setting(constants.SettingWorkdayStartTime, constants.DefaultWorkdayStartTime)
}

func (e *Engine) enrich(t *models.Task) *models.Task {
	t.Timing = ComputeTiming(t, e.workdayEnd(), e.civil, e.now())
	return t
}

// emitTaskChanged publishes the fully enriched task to the bus. Emission
// happens after commit; a task deleted in between is simply skipped.
func (e *Engine) emitTaskChanged(id uint) {
	task, err := e.GetTask(id)
	if err != nil {
		return
	}
	e.sink.Emit(constants.EventTaskChanged, task)
}
