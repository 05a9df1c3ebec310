package services

import (
	"fmt"
	"strings"
	"time"

	"upkeep/clock"
	"upkeep/constants"
	"upkeep/models"
)

// nearDeadlineWindowMinutes is the open interval below which an open task is
// flagged as approaching its deadline.
const nearDeadlineWindowMinutes = 10

// EstimatedEnd computes the task's completion deadline. One-time tasks are
// due at the configured workday end on their due date (or start date when no
// due date is set). Recurring tasks are due their estimated duration after
// their scheduled start instant.
func EstimatedEnd(t *models.Task, workdayEnd string, civil *clock.Civil) (time.Time, error) {
	if !t.IsRecurring || t.Frequency == constants.FrequencyOneTime {
		date := t.StartDate
		if t.DueDate != nil && *t.DueDate != "" {
			date = *t.DueDate
		}
		return civil.Combine(date, workdayEnd)
	}

	start, err := civil.Combine(t.StartDate, t.StartTime)
	if err != nil {
		return time.Time{}, err
	}
	dur := t.EstimatedDurationMinutes
	if dur <= 0 {
		dur = constants.DefaultDurationMinutes
	}
	return start.Add(time.Duration(dur) * time.Minute), nil
}

// ComputeTiming builds the timing block for a task read. For a terminal task
// without a completion instant it returns only the deadline; that degraded
// state is defined, not an error.
func ComputeTiming(t *models.Task, workdayEnd string, civil *clock.Civil, now time.Time) *models.TaskTiming {
	end, err := EstimatedEnd(t, workdayEnd, civil)
	if err != nil {
		return nil
	}

	timing := &models.TaskTiming{EstimatedEnd: end}

	if constants.IsTerminalStatus(t.Status) {
		if t.CompletedAt == nil {
			return timing
		}
		delta := wholeMinutes(t.CompletedAt.Sub(end))
		timing.DeltaMinutes = &delta
		timing.Message = CompletionMessage(delta)
		return timing
	}

	remaining := wholeMinutes(end.Sub(now))
	timing.MinutesRemaining = &remaining
	timing.IsLate = remaining < 0

	switch {
	case remaining < 0:
		timing.TimingStatus = constants.TimingLate
		timing.Display = "late by " + HumanizeMinutes(-remaining)
	case remaining < nearDeadlineWindowMinutes:
		timing.TimingStatus = constants.TimingNearDeadline
		timing.Display = "due in " + HumanizeMinutes(remaining)
	default:
		timing.TimingStatus = constants.TimingOnTime
		timing.Display = "due in " + HumanizeMinutes(remaining)
	}
	return timing
}

// CompletionDelta computes completed-at minus deadline in whole minutes.
// Negative means early.
func CompletionDelta(t *models.Task, completedAt time.Time, workdayEnd string, civil *clock.Civil) (int, error) {
	end, err := EstimatedEnd(t, workdayEnd, civil)
	if err != nil {
		return 0, err
	}
	return wholeMinutes(completedAt.Sub(end)), nil
}

// CompletionMessage renders a signed completion delta as a human message.
func CompletionMessage(deltaMinutes int) string {
	switch {
	case deltaMinutes < 0:
		return fmt.Sprintf("completed %s early", HumanizeMinutes(-deltaMinutes))
	case deltaMinutes > 0:
		return fmt.Sprintf("completed %s late", HumanizeMinutes(deltaMinutes))
	default:
		return "completed exactly on time"
	}
}

// HumanizeMinutes renders a non-negative minute count as days/hours/minutes,
// dropping zero-valued units and using singular forms at exactly one.
func HumanizeMinutes(m int) string {
	if m <= 0 {
		return "0 minutes"
	}

	days := m / (24 * 60)
	hours := (m % (24 * 60)) / 60
	minutes := m % 60

	var parts []string
	if days > 0 {
		parts = append(parts, plural(days, "day"))
	}
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if minutes > 0 {
		parts = append(parts, plural(minutes, "minute"))
	}
	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// wholeMinutes truncates toward zero.
func wholeMinutes(d time.Duration) int {
	return int(d.Minutes())
}
