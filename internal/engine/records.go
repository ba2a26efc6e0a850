package engine

import (
	"sort"
	"time"

	"github.com/olegiv/skillfresh/internal/model"
)

// Records holds a skill's personal records, reconstructed from its full
// event history. Every field tolerates sparse histories: a skill with zero
// or one events reports zeroed/nil defaults rather than an error.
type Records struct {
	LongestFreshStreakDays  int        `json:"longest_fresh_streak_days"`
	FreshStreakStart        *time.Time `json:"longest_fresh_streak_start,omitempty"`
	FreshStreakEnd          *time.Time `json:"longest_fresh_streak_end,omitempty"`
	PeakFreshness           *float64   `json:"peak_freshness"`
	PeakFreshnessDate       *time.Time `json:"peak_freshness_date,omitempty"`
	MostActiveWeekStart     *time.Time `json:"most_active_week_start,omitempty"`
	MostActiveWeekEvents    int        `json:"most_active_week_events"`
	LongestGapRecoveredDays int        `json:"longest_gap_recovered_days"`
}

// ComputeRecords derives personal records for one skill. The fresh-streak
// and peak records come from a reconstructed daily freshness series: the
// decay model is applied for every day from the first event to now, not
// just on event dates.
func ComputeRecords(decayRate float64, events []model.Event, now time.Time) Records {
	r := Records{}
	if len(events) == 0 {
		return r
	}

	today := model.DateOf(now)
	first := model.DateOf(events[0].Date)
	for i := range events {
		if d := model.DateOf(events[i].Date); d.Before(first) {
			first = d
		}
	}

	practices := practiceDates(events)
	r.scanDailySeries(decayRate, practices, first, today)
	r.LongestGapRecoveredDays = longestGap(practices)

	weekStart, weekEvents := mostActiveWeek(events)
	r.MostActiveWeekStart = weekStart
	r.MostActiveWeekEvents = weekEvents

	return r
}

// scanDailySeries walks every day in [first, today], computing freshness
// against the most recent practice at or before that day, and records the
// longest run strictly above the fresh threshold plus the peak value.
func (r *Records) scanDailySeries(decayRate float64, practices []time.Time, first, today time.Time) {
	if len(practices) == 0 {
		return
	}

	var (
		runLen   int
		runStart time.Time
		next     int // index of the next practice date not yet passed
		baseline *time.Time
	)

	endRun := func(end time.Time) {
		if runLen > r.LongestFreshStreakDays {
			r.LongestFreshStreakDays = runLen
			s, e := runStart, end
			r.FreshStreakStart = &s
			r.FreshStreakEnd = &e
		}
		runLen = 0
	}

	for day := first; !day.After(today); day = day.AddDate(0, 0, 1) {
		for next < len(practices) && !practices[next].After(day) {
			b := practices[next]
			baseline = &b
			next++
		}

		f := Freshness(baseline, decayRate, day)
		if f == nil {
			endRun(day.AddDate(0, 0, -1))
			continue
		}

		if r.PeakFreshness == nil || *f > *r.PeakFreshness {
			v, d := *f, day
			r.PeakFreshness = &v
			r.PeakFreshnessDate = &d
		}

		if *f > FreshThreshold {
			if runLen == 0 {
				runStart = day
			}
			runLen++
		} else {
			endRun(day.AddDate(0, 0, -1))
		}
	}
	endRun(today)
}

// practiceDates returns the sorted, de-duplicated practice dates.
func practiceDates(events []model.Event) []time.Time {
	seen := make(map[time.Time]bool)
	var dates []time.Time
	for i := range events {
		if !events[i].IsPractice() {
			continue
		}
		d := model.DateOf(events[i].Date)
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// longestGap returns the largest day gap between consecutive practice
// dates: the worst lapse the user recovered from. Fewer than two practice
// dates means no gap was ever closed, so 0.
func longestGap(practices []time.Time) int {
	longest := 0
	for i := 1; i < len(practices); i++ {
		if gap := DaysBetween(practices[i-1], practices[i]); gap > longest {
			longest = gap
		}
	}
	return longest
}

// mostActiveWeek buckets all events by calendar week (Monday start) and
// returns the busiest week's start and combined event count.
func mostActiveWeek(events []model.Event) (*time.Time, int) {
	counts := make(map[time.Time]int)
	for i := range events {
		counts[weekStartOf(model.DateOf(events[i].Date))]++
	}

	var best *time.Time
	bestCount := 0
	for start, count := range counts {
		if count > bestCount || (count == bestCount && best != nil && start.Before(*best)) {
			s := start
			best = &s
			bestCount = count
		}
	}
	return best, bestCount
}

// weekStartOf returns the Monday on or before the given date.
func weekStartOf(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return d.AddDate(0, 0, -offset)
}
