package constants

const (
	FrequencyOneTime    = "one_time"
	FrequencyDaily      = "daily"
	FrequencyWeekly     = "weekly"
	FrequencyBiweekly   = "biweekly"
	FrequencyMonthly    = "monthly"
	FrequencySemiAnnual = "semi_annual"
	FrequencyAnnual     = "annual"
)

var Frequencies = []string{
	FrequencyOneTime,
	FrequencyDaily,
	FrequencyWeekly,
	FrequencyBiweekly,
	FrequencyMonthly,
	FrequencySemiAnnual,
	FrequencyAnnual,
}

func IsValidFrequency(f string) bool {
	for _, v := range Frequencies {
		if v == f {
			return true
		}
	}
	return false
}

// Timing classification for a task that has not reached a terminal status.
const (
	TimingOnTime       = "on_time"
	TimingNearDeadline = "near_deadline"
	TimingLate         = "late"
)

// DefaultDurationMinutes is assumed for recurring tasks that don't set one.
const DefaultDurationMinutes = 30
