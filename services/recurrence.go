package services

import (
	"time"

	"upkeep/clock"
	"upkeep/constants"
)

// weekdayLookaheadDays bounds the forward scan for the next matching weekday.
// A miss within this window means no follow-up is created; callers report it,
// they don't error.
const weekdayLookaheadDays = 30

// Initial fan-out sizes per frequency, chosen to give dashboards roughly a
// quarter of forward visibility.
var initialBatchSizes = map[string]int{
	constants.FrequencyWeekly:     12,
	constants.FrequencyBiweekly:   6,
	constants.FrequencyMonthly:    6,
	constants.FrequencySemiAnnual: 4,
	constants.FrequencyAnnual:     3,
}

// NextStartDate computes the start date of the follow-up occurrence for a
// just-completed recurring task. ok is false when no follow-up applies:
// one-time frequency, a malformed date, or no matching weekday within the
// lookahead window.
func NextStartDate(frequency, startDate string, weeklyDays []int) (string, bool) {
	cur, err := time.Parse(clock.DateLayout, startDate)
	if err != nil {
		return "", false
	}

	switch frequency {
	case constants.FrequencyDaily:
		if len(weeklyDays) > 0 {
			for i := 1; i <= weekdayLookaheadDays; i++ {
				cand := cur.AddDate(0, 0, i)
				if containsWeekday(weeklyDays, int(cand.Weekday())) {
					return cand.Format(clock.DateLayout), true
				}
			}
			return "", false
		}
		return cur.AddDate(0, 0, 1).Format(clock.DateLayout), true
	case constants.FrequencyWeekly:
		return cur.AddDate(0, 0, 7).Format(clock.DateLayout), true
	case constants.FrequencyBiweekly:
		return cur.AddDate(0, 0, 14).Format(clock.DateLayout), true
	case constants.FrequencyMonthly:
		return addMonthsClamped(cur, 1).Format(clock.DateLayout), true
	case constants.FrequencySemiAnnual:
		return addMonthsClamped(cur, 6).Format(clock.DateLayout), true
	case constants.FrequencyAnnual:
		return addMonthsClamped(cur, 12).Format(clock.DateLayout), true
	default:
		return "", false
	}
}

// InitialDates materializes the start dates for the eager fan-out performed
// when a recurring task is first created. Daily tasks get every matching day
// in the 30 days after today; the other frequencies get a fixed count of
// occurrences starting at startDate and stepping by their interval.
func InitialDates(frequency, startDate string, weeklyDays []int, today string) []string {
	base, err := time.Parse(clock.DateLayout, startDate)
	if err != nil {
		return nil
	}

	if frequency == constants.FrequencyDaily {
		anchor, err := time.Parse(clock.DateLayout, today)
		if err != nil {
			return nil
		}
		var dates []string
		for i := 1; i <= weekdayLookaheadDays; i++ {
			cand := anchor.AddDate(0, 0, i)
			if len(weeklyDays) == 0 || containsWeekday(weeklyDays, int(cand.Weekday())) {
				dates = append(dates, cand.Format(clock.DateLayout))
			}
		}
		return dates
	}

	count, ok := initialBatchSizes[frequency]
	if !ok {
		return []string{startDate}
	}

	var stepDays, stepMonths int
	switch frequency {
	case constants.FrequencyWeekly:
		stepDays = 7
	case constants.FrequencyBiweekly:
		stepDays = 14
	case constants.FrequencyMonthly:
		stepMonths = 1
	case constants.FrequencySemiAnnual:
		stepMonths = 6
	case constants.FrequencyAnnual:
		stepMonths = 12
	}

	dates := make([]string, 0, count)
	for i := 0; i < count; i++ {
		var d time.Time
		if stepMonths > 0 {
			// Step from the base each time so a clamped month doesn't
			// shift every later occurrence off the original day-of-month.
			d = addMonthsClamped(base, i*stepMonths)
		} else {
			d = base.AddDate(0, 0, i*stepDays)
		}
		dates = append(dates, d.Format(clock.DateLayout))
	}
	return dates
}

// addMonthsClamped adds calendar months, clamping the day-of-month to the
// target month's length (Jan 31 + 1 month = Feb 28/29, not Mar 2).
func addMonthsClamped(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	day := t.Day()
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

func containsWeekday(days []int, weekday int) bool {
	for _, d := range days {
		if d == weekday {
			return true
		}
	}
	return false
}
