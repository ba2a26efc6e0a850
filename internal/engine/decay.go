// Package engine computes skill freshness and the analytics derived from the
// raw event log. Every function here is a pure computation over already
// fetched data: the engine performs no I/O and stores nothing. Callers fetch
// skills and events from the store, hand them in, and get view values back.
//
// Freshness is linear decay: a practice event resets freshness to 100, and
// from that day it drops by decay_rate*100 percentage points per elapsed
// day, floored at 0. Learning events are counted for balance analytics but
// never reset freshness.
package engine

import (
	"time"

	"github.com/olegiv/skillfresh/internal/model"
)

// Classification thresholds. A skill is fresh strictly above 70, decayed
// strictly below 40, aging in between (inclusive).
const (
	FreshThreshold   = 70.0
	DecayedThreshold = 40.0
)

// Class is the three-tier freshness classification.
type Class string

// Freshness classes
const (
	ClassFresh   Class = "fresh"
	ClassAging   Class = "aging"
	ClassDecayed Class = "decayed"
)

// TargetStatus reports a skill's standing against its freshness target.
// "No target" is distinct from "meets target": collapsing the two into a
// boolean loses information the aggregates depend on.
type TargetStatus string

// Target statuses
const (
	TargetNone  TargetStatus = "no_target"
	TargetMet   TargetStatus = "met"
	TargetBelow TargetStatus = "below"
)

// Freshness computes a skill's freshness at asOf given its most recent
// practice date. Returns nil when the skill has never been practiced: callers
// must be able to distinguish "never practiced" from "fully decayed".
//
// A practice on asOf itself yields exactly 100. Each elapsed day subtracts
// decayRate*100 points, floored at 0.
func Freshness(lastPractice *time.Time, decayRate float64, asOf time.Time) *float64 {
	if lastPractice == nil {
		return nil
	}
	days := DaysBetween(*lastPractice, asOf)
	if days < 0 {
		// asOf predates the first practice; the skill had no freshness yet.
		return nil
	}
	f := 100 - decayRate*100*float64(days)
	if f < 0 {
		f = 0
	}
	return &f
}

// Classify maps a freshness value onto the three-tier classification.
func Classify(freshness float64) Class {
	switch {
	case freshness > FreshThreshold:
		return ClassFresh
	case freshness < DecayedThreshold:
		return ClassDecayed
	default:
		return ClassAging
	}
}

// TargetStatusOf compares unrounded freshness against an optional target.
// A nil freshness (never practiced) with a target set counts as below it.
func TargetStatusOf(freshness *float64, target *float64) TargetStatus {
	if target == nil {
		return TargetNone
	}
	if freshness == nil || *freshness < *target {
		return TargetBelow
	}
	return TargetMet
}

// DaysBetween returns the number of whole calendar days from a to b.
// Both are truncated to their UTC dates first; negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	da := model.DateOf(a)
	db := model.DateOf(b)
	return int(db.Sub(da).Hours() / 24)
}

// LastPracticeDate returns the date of the most recent practice event, or
// nil when the skill has never been practiced. Only the most recent practice
// matters for the decay baseline; earlier ones are kept for history.
func LastPracticeDate(events []model.Event) *time.Time {
	var last *time.Time
	for i := range events {
		e := &events[i]
		if !e.IsPractice() {
			continue
		}
		if last == nil || e.Date.After(*last) {
			d := e.Date
			last = &d
		}
	}
	return last
}

// Round1 rounds a freshness value to one decimal place. Rounding happens at
// presentation boundaries only; comparisons (targets, thresholds) always use
// the unrounded value.
func Round1(f float64) float64 {
	if f < 0 {
		return float64(int(f*10-0.5)) / 10
	}
	return float64(int(f*10+0.5)) / 10
}
