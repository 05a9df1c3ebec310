package services

import (
	"testing"
	"time"

	"pgregory.net/rapid"

	"upkeep/clock"
	"upkeep/constants"
)

func TestNextStartDate(t *testing.T) {
	cases := []struct {
		name       string
		frequency  string
		start      string
		weeklyDays []int
		want       string
		wantOK     bool
	}{
		{"daily", constants.FrequencyDaily, "2024-01-01", nil, "2024-01-02", true},
		// 2024-01-01 is a Monday; with Mon/Wed/Fri the next match is Wednesday.
		{"daily with weekdays", constants.FrequencyDaily, "2024-01-01", []int{1, 3, 5}, "2024-01-03", true},
		{"weekly", constants.FrequencyWeekly, "2024-01-01", nil, "2024-01-08", true},
		{"biweekly", constants.FrequencyBiweekly, "2024-01-01", nil, "2024-01-15", true},
		{"monthly", constants.FrequencyMonthly, "2024-02-15", nil, "2024-03-15", true},
		{"monthly clamps to shorter month", constants.FrequencyMonthly, "2024-01-31", nil, "2024-02-29", true},
		{"monthly clamps in non-leap year", constants.FrequencyMonthly, "2025-01-31", nil, "2025-02-28", true},
		{"semi-annual", constants.FrequencySemiAnnual, "2024-01-15", nil, "2024-07-15", true},
		{"annual", constants.FrequencyAnnual, "2024-02-29", nil, "2025-02-28", true},
		{"one-time never recurs", constants.FrequencyOneTime, "2024-01-01", nil, "", false},
		{"malformed date", constants.FrequencyWeekly, "not-a-date", nil, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NextStartDate(tc.frequency, tc.start, tc.weeklyDays)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if got != tc.want {
				t.Errorf("next = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestInitialDatesBatchSizes(t *testing.T) {
	cases := []struct {
		frequency string
		count     int
	}{
		{constants.FrequencyWeekly, 12},
		{constants.FrequencyBiweekly, 6},
		{constants.FrequencyMonthly, 6},
		{constants.FrequencySemiAnnual, 4},
		{constants.FrequencyAnnual, 3},
	}

	for _, tc := range cases {
		dates := InitialDates(tc.frequency, "2024-01-01", nil, "2024-01-01")
		if len(dates) != tc.count {
			t.Errorf("%s: %d occurrences, want %d", tc.frequency, len(dates), tc.count)
		}
		if len(dates) > 0 && dates[0] != "2024-01-01" {
			t.Errorf("%s: first occurrence %s, want the given start date", tc.frequency, dates[0])
		}
	}
}

func TestInitialDatesWeeklyStepping(t *testing.T) {
	dates := InitialDates(constants.FrequencyWeekly, "2024-01-01", nil, "2024-01-01")
	want := []string{"2024-01-01", "2024-01-08", "2024-01-15", "2024-01-22"}
	for i, w := range want {
		if dates[i] != w {
			t.Errorf("dates[%d] = %s, want %s", i, dates[i], w)
		}
	}
}

func TestInitialDatesMonthlyClampDoesNotDrift(t *testing.T) {
	dates := InitialDates(constants.FrequencyMonthly, "2024-01-31", nil, "2024-01-31")
	want := []string{"2024-01-31", "2024-02-29", "2024-03-31", "2024-04-30", "2024-05-31", "2024-06-30"}
	if len(dates) != len(want) {
		t.Fatalf("%d occurrences, want %d", len(dates), len(want))
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("dates[%d] = %s, want %s", i, dates[i], want[i])
		}
	}
}

func TestInitialDatesDaily(t *testing.T) {
	// Every day for 30 days, starting tomorrow.
	dates := InitialDates(constants.FrequencyDaily, "2024-01-01", nil, "2024-01-01")
	if len(dates) != 30 {
		t.Fatalf("%d occurrences, want 30", len(dates))
	}
	if dates[0] != "2024-01-02" {
		t.Errorf("first = %s, want tomorrow", dates[0])
	}
	if dates[29] != "2024-01-31" {
		t.Errorf("last = %s, want 2024-01-31", dates[29])
	}
}

func TestInitialDatesDailyWithWeekdays(t *testing.T) {
	// Mon/Wed/Fri over the 30 days after Mon 2024-01-01.
	dates := InitialDates(constants.FrequencyDaily, "2024-01-01", []int{1, 3, 5}, "2024-01-01")
	if len(dates) == 0 {
		t.Fatal("expected matching occurrences")
	}
	if dates[0] != "2024-01-03" {
		t.Errorf("first = %s, want the next Wednesday", dates[0])
	}
	for _, d := range dates {
		day, _ := time.Parse(clock.DateLayout, d)
		switch day.Weekday() {
		case time.Monday, time.Wednesday, time.Friday:
		default:
			t.Errorf("%s falls on %s", d, day.Weekday())
		}
	}
}

func TestNextStartDateProperties(t *testing.T) {
	frequencies := []string{
		constants.FrequencyDaily,
		constants.FrequencyWeekly,
		constants.FrequencyBiweekly,
		constants.FrequencyMonthly,
		constants.FrequencySemiAnnual,
		constants.FrequencyAnnual,
	}

	rapid.Check(t, func(rt *rapid.T) {
		freq := rapid.SampledFrom(frequencies).Draw(rt, "frequency")
		start := time.Date(
			rapid.IntRange(2020, 2030).Draw(rt, "year"),
			time.Month(rapid.IntRange(1, 12).Draw(rt, "month")),
			rapid.IntRange(1, 28).Draw(rt, "day"),
			0, 0, 0, 0, time.UTC,
		).Format(clock.DateLayout)

		var weeklyDays []int
		if freq == constants.FrequencyDaily && rapid.Bool().Draw(rt, "with_days") {
			weeklyDays = rapid.SliceOfN(rapid.IntRange(0, 6), 1, 7).Draw(rt, "weekly_days")
		}

		next, ok := NextStartDate(freq, start, weeklyDays)
		if !ok {
			// Only the weekday scan may miss, and with at least one valid
			// weekday it never can within 30 days.
			rt.Fatalf("NextStartDate(%s, %s, %v) unexpectedly missed", freq, start, weeklyDays)
		}
		if next <= start {
			rt.Fatalf("next %s is not after %s", next, start)
		}
		if len(weeklyDays) > 0 {
			day, err := time.Parse(clock.DateLayout, next)
			if err != nil {
				rt.Fatalf("unparseable next date %q", next)
			}
			if !containsWeekday(weeklyDays, int(day.Weekday())) {
				rt.Fatalf("next %s weekday %d not in %v", next, int(day.Weekday()), weeklyDays)
			}
		}
	})
}

func TestInitialDatesProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		freq := rapid.SampledFrom([]string{
			constants.FrequencyWeekly,
			constants.FrequencyBiweekly,
			constants.FrequencyMonthly,
			constants.FrequencySemiAnnual,
			constants.FrequencyAnnual,
		}).Draw(rt, "frequency")
		start := time.Date(
			rapid.IntRange(2020, 2030).Draw(rt, "year"),
			time.Month(rapid.IntRange(1, 12).Draw(rt, "month")),
			rapid.IntRange(1, 31).Draw(rt, "day"),
			0, 0, 0, 0, time.UTC,
		).Format(clock.DateLayout)

		dates := InitialDates(freq, start, nil, start)
		if len(dates) != initialBatchSizes[freq] {
			rt.Fatalf("%s from %s: %d dates, want %d", freq, start, len(dates), initialBatchSizes[freq])
		}
		for i := 1; i < len(dates); i++ {
			if dates[i] <= dates[i-1] {
				rt.Fatalf("dates not strictly increasing: %v", dates)
			}
		}
	})
}
