package services

import (
	"testing"
	"time"

	"upkeep/clock"
	"upkeep/constants"
	"upkeep/models"
)

func strPtr(s string) *string { return &s }

func TestEstimatedEndOneTime(t *testing.T) {
	civil := clock.MustNew("UTC")

	task := &models.Task{
		Frequency: constants.FrequencyOneTime,
		StartDate: "2024-03-10",
	}

	end, err := EstimatedEnd(task, "18:00", civil)
	if err != nil {
		t.Fatalf("EstimatedEnd: %v", err)
	}
	if got, want := end, utcTime("2024-03-10", "18:00"); !got.Equal(want) {
		t.Errorf("deadline = %v, want %v", got, want)
	}

	// An explicit due date wins over the start date.
	task.DueDate = strPtr("2024-03-15")
	end, err = EstimatedEnd(task, "18:00", civil)
	if err != nil {
		t.Fatalf("EstimatedEnd: %v", err)
	}
	if got, want := end, utcTime("2024-03-15", "18:00"); !got.Equal(want) {
		t.Errorf("deadline = %v, want %v", got, want)
	}
}

func TestEstimatedEndRecurring(t *testing.T) {
	civil := clock.MustNew("UTC")

	task := &models.Task{
		Frequency:                constants.FrequencyWeekly,
		IsRecurring:              true,
		StartDate:                "2024-03-10",
		StartTime:                "09:00",
		EstimatedDurationMinutes: 45,
	}

	end, err := EstimatedEnd(task, "18:00", civil)
	if err != nil {
		t.Fatalf("EstimatedEnd: %v", err)
	}
	if got, want := end, utcTime("2024-03-10", "09:45"); !got.Equal(want) {
		t.Errorf("deadline = %v, want %v", got, want)
	}

	// Unset duration falls back to 30 minutes.
	task.EstimatedDurationMinutes = 0
	end, _ = EstimatedEnd(task, "18:00", civil)
	if got, want := end, utcTime("2024-03-10", "09:30"); !got.Equal(want) {
		t.Errorf("default-duration deadline = %v, want %v", got, want)
	}
}

func TestTimingClassificationBoundaries(t *testing.T) {
	civil := clock.MustNew("UTC")

	task := &models.Task{
		Frequency:                constants.FrequencyDaily,
		IsRecurring:              true,
		Status:                   constants.TaskStatusSent,
		StartDate:                "2024-03-10",
		StartTime:                "10:00",
		EstimatedDurationMinutes: 30,
	}
	// Deadline is 10:30.

	cases := []struct {
		now        string
		remaining  int
		isLate     bool
		wantStatus string
	}{
		{"10:20", 10, false, constants.TimingOnTime},
		{"10:21", 9, false, constants.TimingNearDeadline},
		{"10:30", 0, false, constants.TimingNearDeadline},
		{"10:31", -1, true, constants.TimingLate},
	}

	for _, tc := range cases {
		timing := ComputeTiming(task, "18:00", civil, utcTime("2024-03-10", tc.now))
		if timing == nil || timing.MinutesRemaining == nil {
			t.Fatalf("now=%s: expected open-task timing block", tc.now)
		}
		if *timing.MinutesRemaining != tc.remaining {
			t.Errorf("now=%s: minutes_remaining = %d, want %d", tc.now, *timing.MinutesRemaining, tc.remaining)
		}
		if timing.IsLate != tc.isLate {
			t.Errorf("now=%s: is_late = %v, want %v", tc.now, timing.IsLate, tc.isLate)
		}
		if timing.TimingStatus != tc.wantStatus {
			t.Errorf("now=%s: timing_status = %s, want %s", tc.now, timing.TimingStatus, tc.wantStatus)
		}
	}
}

func TestTimingTerminalTask(t *testing.T) {
	civil := clock.MustNew("UTC")
	completedAt := utcTime("2024-03-10", "10:45")

	task := &models.Task{
		Frequency:                constants.FrequencyDaily,
		IsRecurring:              true,
		Status:                   constants.TaskStatusCompleted,
		StartDate:                "2024-03-10",
		StartTime:                "10:00",
		EstimatedDurationMinutes: 30,
		CompletedAt:              &completedAt,
	}

	timing := ComputeTiming(task, "18:00", civil, utcTime("2024-03-10", "12:00"))
	if timing.DeltaMinutes == nil {
		t.Fatal("expected delta for terminal task with completed_at")
	}
	if *timing.DeltaMinutes != 15 {
		t.Errorf("delta = %d, want 15", *timing.DeltaMinutes)
	}
	if timing.Message != "completed 15 minutes late" {
		t.Errorf("message = %q", timing.Message)
	}
	if timing.MinutesRemaining != nil {
		t.Error("terminal task must not carry minutes_remaining")
	}
}

func TestTimingTerminalWithoutCompletedAtIsDegradedNotError(t *testing.T) {
	civil := clock.MustNew("UTC")

	task := &models.Task{
		Frequency: constants.FrequencyOneTime,
		Status:    constants.TaskStatusNotCompleted,
		StartDate: "2024-03-10",
	}

	timing := ComputeTiming(task, "18:00", civil, utcTime("2024-03-11", "12:00"))
	if timing == nil {
		t.Fatal("expected timing block with deadline only")
	}
	if timing.DeltaMinutes != nil || timing.MinutesRemaining != nil {
		t.Error("terminal task without completed_at must have null timing fields")
	}
}

func TestCompletionMessage(t *testing.T) {
	cases := []struct {
		delta int
		want  string
	}{
		{-90, "completed 1 hour 30 minutes early"},
		{1, "completed 1 minute late"},
		{0, "completed exactly on time"},
	}
	for _, tc := range cases {
		if got := CompletionMessage(tc.delta); got != tc.want {
			t.Errorf("CompletionMessage(%d) = %q, want %q", tc.delta, got, tc.want)
		}
	}
}

func TestHumanizeMinutes(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "0 minutes"},
		{1, "1 minute"},
		{59, "59 minutes"},
		{60, "1 hour"},
		{61, "1 hour 1 minute"},
		{1440, "1 day"},
		{1501, "1 day 1 hour 1 minute"},
		{2880 + 120 + 5, "2 days 2 hours 5 minutes"},
	}
	for _, tc := range cases {
		if got := HumanizeMinutes(tc.minutes); got != tc.want {
			t.Errorf("HumanizeMinutes(%d) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}

func TestWholeMinutesTruncatesTowardZero(t *testing.T) {
	if got := wholeMinutes(90 * time.Second); got != 1 {
		t.Errorf("90s = %d minutes, want 1", got)
	}
	if got := wholeMinutes(-90 * time.Second); got != -1 {
		t.Errorf("-90s = %d minutes, want -1", got)
	}
}
