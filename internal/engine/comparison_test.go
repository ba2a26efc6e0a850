package engine

import (
	"testing"

	"github.com/olegiv/skillfresh/internal/model"
)

func TestComparePeriods(t *testing.T) {
	now := date(2026, 8, 28)
	events := []model.Event{
		// July: 2 learning, 2 practice
		{Kind: model.EventKindLearning, Type: "reading", Date: date(2026, 7, 3)},
		{Kind: model.EventKindLearning, Type: "video", Date: date(2026, 7, 10)},
		{Kind: model.EventKindPractice, Type: "exercise", Date: date(2026, 7, 15)},
		{Kind: model.EventKindPractice, Type: "project", Date: date(2026, 7, 31)},
		// August: 1 learning, 3 practice
		{Kind: model.EventKindLearning, Type: "course", Date: date(2026, 8, 1)},
		{Kind: model.EventKindPractice, Type: "work", Date: date(2026, 8, 10)},
		{Kind: model.EventKindPractice, Type: "exercise", Date: date(2026, 8, 20)},
		{Kind: model.EventKindPractice, Type: "teaching", Date: date(2026, 8, 27)},
		// June: must not count either way
		{Kind: model.EventKindPractice, Type: "exercise", Date: date(2026, 6, 30)},
	}

	c := ComparePeriods(events, now)
	if c.CurrentMonth.Learning != 1 || c.CurrentMonth.Practice != 3 {
		t.Errorf("current month = %d/%d, want 1/3", c.CurrentMonth.Learning, c.CurrentMonth.Practice)
	}
	if c.LastMonth.Learning != 2 || c.LastMonth.Practice != 2 {
		t.Errorf("last month = %d/%d, want 2/2", c.LastMonth.Learning, c.LastMonth.Practice)
	}
	if c.Changes.Learning != -1 || c.Changes.Practice != 1 || c.Changes.Total != 0 {
		t.Errorf("changes = %+v, want -1/+1/0", c.Changes)
	}
	if c.Changes.LearningPct == nil || *c.Changes.LearningPct != -50 {
		t.Errorf("LearningPct = %v, want -50", c.Changes.LearningPct)
	}
	if c.Changes.PracticePct == nil || *c.Changes.PracticePct != 50 {
		t.Errorf("PracticePct = %v, want 50", c.Changes.PracticePct)
	}
	if c.Changes.TotalPct == nil || *c.Changes.TotalPct != 0 {
		t.Errorf("TotalPct = %v, want 0", c.Changes.TotalPct)
	}
}

func TestComparePeriodsEmptyPrior(t *testing.T) {
	now := date(2026, 8, 28)
	events := []model.Event{
		{Kind: model.EventKindPractice, Type: "exercise", Date: date(2026, 8, 10)},
	}

	c := ComparePeriods(events, now)
	if c.LastMonth.Total != 0 {
		t.Fatalf("LastMonth.Total = %d, want 0", c.LastMonth.Total)
	}
	if c.Changes.TotalPct != nil {
		t.Errorf("TotalPct = %v, want nil when the prior month had no events", *c.Changes.TotalPct)
	}
	if c.Changes.Total != 1 {
		t.Errorf("Changes.Total = %d, want 1: absolute deltas still apply", c.Changes.Total)
	}
}

func TestComparePeriodsJanuary(t *testing.T) {
	// Previous month crosses the year boundary.
	now := date(2026, 1, 15)
	events := []model.Event{
		{Kind: model.EventKindPractice, Type: "exercise", Date: date(2025, 12, 20)},
	}

	c := ComparePeriods(events, now)
	if c.LastMonth.Year != 2025 || c.LastMonth.Month != 12 {
		t.Errorf("LastMonth = %d-%d, want 2025-12", c.LastMonth.Year, c.LastMonth.Month)
	}
	if c.LastMonth.Practice != 1 {
		t.Errorf("LastMonth.Practice = %d, want 1", c.LastMonth.Practice)
	}
}
