package engine

import (
	"time"

	"github.com/olegiv/skillfresh/internal/model"
)

// MonthTotals is one calendar month's activity. Ratio follows the same
// semantics as Balance.Ratio (nil when there were no learning events).
type MonthTotals struct {
	Year     int        `json:"year"`
	Month    time.Month `json:"month"`
	Learning int        `json:"learning"`
	Practice int        `json:"practice"`
	Total    int        `json:"total"`
	Ratio    *float64   `json:"ratio"`
}

// Changes holds period-over-period deltas. Percent fields are nil when the
// prior month's count is zero: "not applicable", never Inf.
type Changes struct {
	Learning    int      `json:"learning"`
	Practice    int      `json:"practice"`
	Total       int      `json:"total"`
	LearningPct *float64 `json:"learning_pct"`
	PracticePct *float64 `json:"practice_pct"`
	TotalPct    *float64 `json:"total_pct"`
}

// Comparison compares the current calendar month against the previous one.
// Both use literal month boundaries, not rolling 30-day windows.
type Comparison struct {
	CurrentMonth MonthTotals `json:"current_month"`
	LastMonth    MonthTotals `json:"last_month"`
	Changes      Changes     `json:"changes"`
}

// ComparePeriods computes the month-over-month comparison at now.
func ComparePeriods(events []model.Event, now time.Time) Comparison {
	today := model.DateOf(now)
	curYear, curMonth := today.Year(), today.Month()
	prev := today.AddDate(0, 0, -today.Day()) // last day of previous month
	prevYear, prevMonth := prev.Year(), prev.Month()

	c := Comparison{
		CurrentMonth: monthTotals(events, curYear, curMonth),
		LastMonth:    monthTotals(events, prevYear, prevMonth),
	}
	c.Changes = Changes{
		Learning:    c.CurrentMonth.Learning - c.LastMonth.Learning,
		Practice:    c.CurrentMonth.Practice - c.LastMonth.Practice,
		Total:       c.CurrentMonth.Total - c.LastMonth.Total,
		LearningPct: percentChange(c.LastMonth.Learning, c.CurrentMonth.Learning),
		PracticePct: percentChange(c.LastMonth.Practice, c.CurrentMonth.Practice),
		TotalPct:    percentChange(c.LastMonth.Total, c.CurrentMonth.Total),
	}
	return c
}

func monthTotals(events []model.Event, year int, month time.Month) MonthTotals {
	t := MonthTotals{Year: year, Month: month}
	for i := range events {
		d := model.DateOf(events[i].Date)
		if d.Year() != year || d.Month() != month {
			continue
		}
		if events[i].IsPractice() {
			t.Practice++
		} else {
			t.Learning++
		}
	}
	t.Total = t.Learning + t.Practice
	t.Ratio = ratioOf(t.Learning, t.Practice)
	return t
}

func percentChange(prior, current int) *float64 {
	if prior == 0 {
		return nil
	}
	pct := float64(current-prior) / float64(prior) * 100
	return &pct
}
