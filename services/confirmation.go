package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"upkeep/apperrors"
	"upkeep/constants"
	"upkeep/models"
	"upkeep/utils"
)

// confirmationTTL is how long an issued token stays resolvable.
const confirmationTTL = 30 * 24 * time.Hour

// Statuses an assignee may set through a confirmation link. Deliberately
// narrower than the full state machine: no pending_approval, no
// not_completed.
var confirmationStatuses = map[string]bool{
	constants.TaskStatusDraft:      true,
	constants.TaskStatusSent:       true,
	constants.TaskStatusInProgress: true,
	constants.TaskStatusCompleted:  true,
}

// ConfirmationView is what resolving a token returns: the owner, the bound
// tasks fully enriched in ascending start-time order, and the
// acknowledgement state.
type ConfirmationView struct {
	Employee       *models.Employee `json:"employee"`
	Tasks          []*models.Task   `json:"tasks"`
	IsAcknowledged bool             `json:"is_acknowledged"`
	AcknowledgedAt *time.Time       `json:"acknowledged_at"`
	ExpiresAt      time.Time        `json:"expires_at"`
}

// IssueConfirmation mints a capability token binding employeeID to exactly
// the given tasks. The bound set is immutable from here on.
func (e *Engine) IssueConfirmation(employeeID uint, taskIDs []uint) (*models.TaskConfirmation, error) {
	if employeeID == 0 || len(taskIDs) == 0 {
		return nil, fmt.Errorf("%w: employee_id and a non-empty task_ids are required", apperrors.ErrValidation)
	}

	var employee models.Employee
	if err := e.db.First(&employee, employeeID).Error; err != nil {
		return nil, fmt.Errorf("%w: employee %d", apperrors.ErrNotFound, employeeID)
	}

	var count int64
	if err := e.db.Model(&models.Task{}).Where("id IN ?", taskIDs).Count(&count).Error; err != nil {
		return nil, err
	}
	if count != int64(len(taskIDs)) {
		return nil, fmt.Errorf("%w: task_ids contains unknown tasks", apperrors.ErrValidation)
	}

	return newConfirmation(e.db, e.now(), employeeID, taskIDs)
}

func newConfirmation(db *gorm.DB, now time.Time, employeeID uint, taskIDs []uint) (*models.TaskConfirmation, error) {
	token, err := utils.NewConfirmationToken()
	if err != nil {
		return nil, err
	}

	conf := &models.TaskConfirmation{
		Token:      token,
		EmployeeID: employeeID,
		TaskIDs:    taskIDs,
		ExpiresAt:  now.Add(confirmationTTL),
	}
	if err := db.Create(conf).Error; err != nil {
		return nil, err
	}
	return conf, nil
}

// ResolveConfirmation validates the token and returns its bound view.
func (e *Engine) ResolveConfirmation(token string) (*ConfirmationView, error) {
	conf, err := e.resolve(e.db, token)
	if err != nil {
		return nil, err
	}

	var tasks []*models.Task
	err = taskPreloads(e.db).
		Where("id IN ?", []uint(conf.TaskIDs)).
		Order("start_date, start_time, id").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		e.enrich(t)
	}

	return &ConfirmationView{
		Employee:       conf.Employee,
		Tasks:          tasks,
		IsAcknowledged: conf.IsAcknowledged,
		AcknowledgedAt: conf.AcknowledgedAt,
		ExpiresAt:      conf.ExpiresAt,
	}, nil
}

// UpdateConfirmedTask applies one allow-listed status change to one task
// bound to the token.
func (e *Engine) UpdateConfirmedTask(token string, taskID uint, status string) (*models.Task, error) {
	conf, err := e.resolve(e.db, token)
	if err != nil {
		return nil, err
	}
	if !conf.Covers(taskID) {
		return nil, fmt.Errorf("%w: task %d is not covered by this confirmation", apperrors.ErrForbidden, taskID)
	}
	if !confirmationStatuses[status] {
		return nil, fmt.Errorf("%w: status %q cannot be set through a confirmation", apperrors.ErrValidation, status)
	}

	var spawned *models.Task
	err = e.db.Transaction(func(tx *gorm.DB) error {
		task, err := e.loadTask(tx, taskID)
		if err != nil {
			return err
		}
		spawned, err = e.transition(tx, task, status, "", confirmationActor(conf))
		return err
	})
	if err != nil {
		return nil, err
	}

	e.emitTaskChanged(taskID)
	if spawned != nil {
		e.emitTaskChanged(spawned.ID)
	}
	return e.GetTask(taskID)
}

// AcknowledgeConfirmation marks the token acknowledged and moves every bound
// task to in_progress. Re-acknowledging is an idempotent no-op success.
func (e *Engine) AcknowledgeConfirmation(token string) error {
	conf, err := e.resolve(e.db, token)
	if err != nil {
		return err
	}
	if conf.IsAcknowledged {
		return nil
	}

	now := e.now()
	var changed []uint
	err = e.db.Transaction(func(tx *gorm.DB) error {
		conf.IsAcknowledged = true
		conf.AcknowledgedAt = &now
		if err := tx.Save(conf).Error; err != nil {
			return err
		}

		for _, id := range conf.TaskIDs {
			task, err := e.loadTask(tx, id)
			if err != nil {
				return err
			}
			// A task finished before the link was opened stays finished.
			if constants.IsTerminalStatus(task.Status) {
				continue
			}
			if task.AcknowledgedAt == nil {
				task.AcknowledgedAt = &now
			}
			if _, err := e.transition(tx, task, constants.TaskStatusInProgress, "", confirmationActor(conf)); err != nil {
				return err
			}
			changed = append(changed, id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, id := range changed {
		e.emitTaskChanged(id)
	}
	return nil
}

func (e *Engine) resolve(db *gorm.DB, token string) (*models.TaskConfirmation, error) {
	var conf models.TaskConfirmation
	if err := db.Preload("Employee").First(&conf, "token = ?", token).Error; err != nil {
		return nil, fmt.Errorf("%w: confirmation token", apperrors.ErrNotFound)
	}
	if e.now().After(conf.ExpiresAt) {
		return nil, fmt.Errorf("%w: confirmation expired at %s", apperrors.ErrExpired, conf.ExpiresAt.Format(time.RFC3339))
	}
	return &conf, nil
}

func confirmationActor(conf *models.TaskConfirmation) string {
	return fmt.Sprintf("employee:%d", conf.EmployeeID)
}
