package engine

import (
	"testing"
	"time"

	"github.com/olegiv/skillfresh/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFreshnessNeverPracticed(t *testing.T) {
	if f := Freshness(nil, model.DefaultDecayRate, date(2026, 8, 28)); f != nil {
		t.Errorf("Freshness(nil) = %v, want nil", *f)
	}
}

func TestFreshnessLinearDecay(t *testing.T) {
	practice := date(2026, 1, 1)
	tests := []struct {
		name string
		asOf time.Time
		want float64
	}{
		{"same day", date(2026, 1, 1), 100},
		{"one day", date(2026, 1, 2), 98},
		{"threshold day", date(2026, 1, 16), 70}, // day 15 at 2%/day
		{"decayed boundary", date(2026, 1, 31), 40},
		{"fully decayed", date(2026, 2, 20), 0},
		{"floored at zero", date(2026, 6, 1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Freshness(&practice, model.DefaultDecayRate, tt.asOf)
			if f == nil {
				t.Fatal("Freshness() = nil, want value")
			}
			if *f != tt.want {
				t.Errorf("Freshness() = %v, want %v", *f, tt.want)
			}
		})
	}
}

func TestFreshnessBeforeFirstPractice(t *testing.T) {
	practice := date(2026, 3, 10)
	if f := Freshness(&practice, 0.02, date(2026, 3, 1)); f != nil {
		t.Errorf("Freshness() before practice = %v, want nil", *f)
	}
}

func TestFreshnessCustomRate(t *testing.T) {
	practice := date(2026, 1, 1)
	f := Freshness(&practice, 0.1, date(2026, 1, 6))
	if f == nil || *f != 50 {
		t.Fatalf("Freshness(rate 0.1, 5 days) = %v, want 50", f)
	}
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		freshness float64
		want      Class
	}{
		{100, ClassFresh},
		{70.1, ClassFresh},
		{70, ClassAging}, // exactly 70 is aging, not fresh
		{40, ClassAging}, // exactly 40 is aging, not decayed
		{39.9, ClassDecayed},
		{0, ClassDecayed},
	}
	for _, tt := range tests {
		if got := Classify(tt.freshness); got != tt.want {
			t.Errorf("Classify(%v) = %q, want %q", tt.freshness, got, tt.want)
		}
	}
}

func TestTargetStatusOf(t *testing.T) {
	f80 := 80.0
	f60 := 60.0
	target := 70.0

	if got := TargetStatusOf(&f80, nil); got != TargetNone {
		t.Errorf("no target: got %q, want %q", got, TargetNone)
	}
	if got := TargetStatusOf(&f80, &target); got != TargetMet {
		t.Errorf("80 vs 70: got %q, want %q", got, TargetMet)
	}
	if got := TargetStatusOf(&f60, &target); got != TargetBelow {
		t.Errorf("60 vs 70: got %q, want %q", got, TargetBelow)
	}
	if got := TargetStatusOf(&target, &target); got != TargetMet {
		t.Errorf("at target exactly: got %q, want %q", got, TargetMet)
	}
	if got := TargetStatusOf(nil, &target); got != TargetBelow {
		t.Errorf("never practiced with target: got %q, want %q", got, TargetBelow)
	}
}

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2026, 1, 1, 23, 59, 0, 0, time.UTC)
	b := time.Date(2026, 1, 2, 0, 1, 0, 0, time.UTC)
	if got := DaysBetween(a, b); got != 1 {
		t.Errorf("DaysBetween() = %d, want 1", got)
	}
	if got := DaysBetween(b, a); got != -1 {
		t.Errorf("DaysBetween() reversed = %d, want -1", got)
	}
}

func TestLastPracticeDate(t *testing.T) {
	events := []model.Event{
		{Kind: model.EventKindPractice, Type: "exercise", Date: date(2026, 1, 5)},
		{Kind: model.EventKindLearning, Type: "reading", Date: date(2026, 1, 20)},
		{Kind: model.EventKindPractice, Type: "project", Date: date(2026, 1, 12)},
	}

	last := LastPracticeDate(events)
	if last == nil {
		t.Fatal("LastPracticeDate() = nil, want date")
	}
	if !last.Equal(date(2026, 1, 12)) {
		t.Errorf("LastPracticeDate() = %v, want 2026-01-12 (learning events must not count)", last)
	}

	if got := LastPracticeDate(nil); got != nil {
		t.Errorf("LastPracticeDate(nil) = %v, want nil", got)
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{66.666, 66.7},
		{66.64, 66.6},
		{100, 100},
		{0.05, 0.1},
	}
	for _, tt := range tests {
		if got := Round1(tt.in); got != tt.want {
			t.Errorf("Round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
