package engine

import (
	"testing"

	"github.com/olegiv/skillfresh/internal/model"
)

func TestComputeRecordsEmpty(t *testing.T) {
	r := ComputeRecords(model.DefaultDecayRate, nil, date(2026, 8, 28))
	if r.LongestFreshStreakDays != 0 || r.PeakFreshness != nil ||
		r.MostActiveWeekStart != nil || r.LongestGapRecoveredDays != 0 {
		t.Errorf("ComputeRecords(no events) = %+v, want zeroed records", r)
	}
}

func TestComputeRecordsSinglePractice(t *testing.T) {
	events := []model.Event{
		{Kind: model.EventKindPractice, Type: "exercise", Date: date(2026, 8, 1)},
	}
	r := ComputeRecords(model.DefaultDecayRate, events, date(2026, 8, 28))

	// At 2%/day freshness stays strictly above 70 for days 0 through 14.
	if r.LongestFreshStreakDays != 15 {
		t.Errorf("LongestFreshStreakDays = %d, want 15", r.LongestFreshStreakDays)
	}
	if r.FreshStreakStart == nil || !r.FreshStreakStart.Equal(date(2026, 8, 1)) {
		t.Errorf("FreshStreakStart = %v, want 2026-08-01", r.FreshStreakStart)
	}
	if r.FreshStreakEnd == nil || !r.FreshStreakEnd.Equal(date(2026, 8, 15)) {
		t.Errorf("FreshStreakEnd = %v, want 2026-08-15", r.FreshStreakEnd)
	}
	if r.PeakFreshness == nil || *r.PeakFreshness != 100 {
		t.Errorf("PeakFreshness = %v, want 100", r.PeakFreshness)
	}
	if r.PeakFreshnessDate == nil || !r.PeakFreshnessDate.Equal(date(2026, 8, 1)) {
		t.Errorf("PeakFreshnessDate = %v, want 2026-08-01", r.PeakFreshnessDate)
	}
	if r.LongestGapRecoveredDays != 0 {
		t.Errorf("LongestGapRecoveredDays = %d, want 0 with a single practice", r.LongestGapRecoveredDays)
	}
	if r.MostActiveWeekEvents != 1 {
		t.Errorf("MostActiveWeekEvents = %d, want 1", r.MostActiveWeekEvents)
	}
	// 2026-08-01 is a Saturday; its week starts Monday 2026-07-27.
	if r.MostActiveWeekStart == nil || !r.MostActiveWeekStart.Equal(date(2026, 7, 27)) {
		t.Errorf("MostActiveWeekStart = %v, want 2026-07-27", r.MostActiveWeekStart)
	}
}

func TestComputeRecordsGapBetweenPractices(t *testing.T) {
	events := []model.Event{
		{Kind: model.EventKindPractice, Type: "exercise", Date: date(2026, 6, 1)},
		{Kind: model.EventKindPractice, Type: "exercise", Date: date(2026, 6, 10)},
		{Kind: model.EventKindPractice, Type: "project", Date: date(2026, 8, 1)},
		{Kind: model.EventKindLearning, Type: "reading", Date: date(2026, 7, 1)}, // learning does not close gaps
	}
	r := ComputeRecords(model.DefaultDecayRate, events, date(2026, 8, 28))
	if r.LongestGapRecoveredDays != 52 {
		t.Errorf("LongestGapRecoveredDays = %d, want 52 (Jun 10 to Aug 1)", r.LongestGapRecoveredDays)
	}
}

func TestComputeRecordsStreakSpansPractices(t *testing.T) {
	// Practicing again before freshness leaves the fresh band extends one
	// streak instead of starting a second.
	events := []model.Event{
		{Kind: model.EventKindPractice, Type: "exercise", Date: date(2026, 8, 1)},
		{Kind: model.EventKindPractice, Type: "exercise", Date: date(2026, 8, 10)},
	}
	r := ComputeRecords(model.DefaultDecayRate, events, date(2026, 8, 28))
	if r.LongestFreshStreakDays != 24 {
		t.Errorf("LongestFreshStreakDays = %d, want 24 (Aug 1 through Aug 24)", r.LongestFreshStreakDays)
	}
}

func TestComputeRecordsLearningOnly(t *testing.T) {
	events := []model.Event{
		{Kind: model.EventKindLearning, Type: "reading", Date: date(2026, 8, 1)},
		{Kind: model.EventKindLearning, Type: "video", Date: date(2026, 8, 2)},
	}
	r := ComputeRecords(model.DefaultDecayRate, events, date(2026, 8, 28))
	if r.LongestFreshStreakDays != 0 || r.PeakFreshness != nil {
		t.Errorf("records = %+v, want no freshness records without practice", r)
	}
	if r.MostActiveWeekEvents != 2 {
		t.Errorf("MostActiveWeekEvents = %d, want 2: learning still counts as activity", r.MostActiveWeekEvents)
	}
}

func TestMostActiveWeekTie(t *testing.T) {
	events := []model.Event{
		{Kind: model.EventKindPractice, Type: "exercise", Date: date(2026, 8, 3)},  // week of Aug 3
		{Kind: model.EventKindPractice, Type: "exercise", Date: date(2026, 8, 10)}, // week of Aug 10
	}
	start, count := mostActiveWeek(events)
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
	if start == nil || !start.Equal(date(2026, 8, 3)) {
		t.Errorf("start = %v, want the earlier week on a tie", start)
	}
}

func TestWeekStartOf(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2026-08-24", "2026-08-24"}, // Monday maps to itself
		{"2026-08-28", "2026-08-24"}, // Friday
		{"2026-08-30", "2026-08-24"}, // Sunday closes the week
	}
	for _, tt := range tests {
		in, _ := model.ParseDate(tt.in)
		if got := weekStartOf(in).Format(model.DateLayout); got != tt.want {
			t.Errorf("weekStartOf(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
