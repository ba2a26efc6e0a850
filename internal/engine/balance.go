package engine

import (
	"fmt"
	"time"

	"github.com/olegiv/skillfresh/internal/model"
)

// Period selects the balance window, a fixed day count ending "now".
type Period string

// Balance periods
const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
)

// PeriodDays maps a period to its window length in days.
func PeriodDays(p Period) (int, error) {
	switch p {
	case PeriodWeek:
		return 7, nil
	case PeriodMonth:
		return 30, nil
	case PeriodQuarter:
		return 90, nil
	default:
		return 0, fmt.Errorf("unknown period %q", p)
	}
}

// Balance interpretations
const (
	InterpretationNoActivity       = "no activity in this period"
	InterpretationInputHeavy       = "heavy input: consuming more than doing"
	InterpretationBalanced         = "balanced, ideal for retention"
	InterpretationPracticeDominant = "practice-dominant: mostly applying, little new input"
)

// RatioThresholds configures the interpretation buckets. The raw ratio is
// always exposed alongside the text so callers can apply their own cutoffs.
type RatioThresholds struct {
	InputHeavyBelow float64 // ratio below this reads as input-heavy
	BalancedUpTo    float64 // ratio up to this (inclusive) reads as balanced
}

// DefaultRatioThresholds returns the product-copy thresholds.
func DefaultRatioThresholds() RatioThresholds {
	return RatioThresholds{InputHeavyBelow: 0.2, BalancedUpTo: 1.0}
}

// DayCount is one day of the balance series.
type DayCount struct {
	Date     time.Time `json:"date"`
	Learning int       `json:"learning"`
	Practice int       `json:"practice"`
}

// Balance is the learning/practice balance over a window. Ratio is nil when
// there are no learning events: zero practice too means "no activity", while
// practice without learning is the practice-dominant case. Neither is an
// error and neither may surface as NaN or Inf.
type Balance struct {
	Learning       int        `json:"total_learning"`
	Practice       int        `json:"total_practice"`
	Ratio          *float64   `json:"balance_ratio"`
	Interpretation string     `json:"interpretation"`
	Series         []DayCount `json:"series"`
}

// ComputeBalance counts learning and practice events in the window of n days
// ending today (inclusive) and builds the zero-filled per-day series.
func ComputeBalance(events []model.Event, days int, now time.Time, thresholds RatioThresholds) Balance {
	end := model.DateOf(now)
	start := end.AddDate(0, 0, -(days - 1))

	series := make([]DayCount, days)
	index := make(map[time.Time]int, days)
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		series[i] = DayCount{Date: d}
		index[d] = i
	}

	b := Balance{Series: series}
	for i := range events {
		e := &events[i]
		pos, ok := index[model.DateOf(e.Date)]
		if !ok {
			continue
		}
		if e.IsPractice() {
			b.Practice++
			series[pos].Practice++
		} else {
			b.Learning++
			series[pos].Learning++
		}
	}

	b.Ratio = ratioOf(b.Learning, b.Practice)
	b.Interpretation = interpret(b.Learning, b.Practice, b.Ratio, thresholds)
	return b
}

// ratioOf returns practice/learning, or nil when learning is zero. The two
// zero-learning cases (no activity vs. practice only) are told apart by the
// interpretation, not by the ratio value.
func ratioOf(learning, practice int) *float64 {
	if learning == 0 {
		return nil
	}
	r := float64(practice) / float64(learning)
	return &r
}

func interpret(learning, practice int, ratio *float64, t RatioThresholds) string {
	switch {
	case learning == 0 && practice == 0:
		return InterpretationNoActivity
	case learning == 0:
		return InterpretationPracticeDominant
	case *ratio < t.InputHeavyBelow:
		return InterpretationInputHeavy
	case *ratio <= t.BalancedUpTo:
		return InterpretationBalanced
	default:
		return InterpretationPracticeDominant
	}
}
