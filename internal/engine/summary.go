package engine

import (
	"time"

	"github.com/olegiv/skillfresh/internal/model"
)

// Summary is the per-skill freshness view. Freshness and DaysSincePractice
// are nil for a skill that has never been practiced; a skill with zero
// events of any kind is a valid, common first-day state.
type Summary struct {
	Freshness         *float64     `json:"freshness"`
	Class             *Class       `json:"class,omitempty"`
	DaysSincePractice *int         `json:"days_since_practice"`
	PracticeCount     int          `json:"practice_count"`
	LearningCount     int          `json:"learning_count"`
	Target            TargetStatus `json:"target"`
}

// DependencyView exposes a prerequisite skill's own standing, read-only.
// Lookups are one level deep: no transitive walk, no cycle handling, and
// nothing is ever blocked by a prerequisite's state.
type DependencyView struct {
	SkillID   int64        `json:"skill_id"`
	Name      string       `json:"name"`
	Freshness *float64     `json:"freshness"`
	Target    TargetStatus `json:"target"`
}

// Summarize builds the freshness view for one skill from its full event
// history. target carries the skill's optional target_freshness.
func Summarize(decayRate float64, target *float64, events []model.Event, now time.Time) Summary {
	s := Summary{}

	for i := range events {
		if events[i].IsPractice() {
			s.PracticeCount++
		} else {
			s.LearningCount++
		}
	}

	last := LastPracticeDate(events)
	s.Freshness = Freshness(last, decayRate, now)
	if last != nil {
		days := DaysBetween(*last, now)
		s.DaysSincePractice = &days
	}
	if s.Freshness != nil {
		c := Classify(*s.Freshness)
		s.Class = &c
	}
	s.Target = TargetStatusOf(s.Freshness, target)
	return s
}

// SummarizeSkill is a convenience wrapper taking the skill row directly.
func SummarizeSkill(skill model.Skill, events []model.Event, now time.Time) Summary {
	var target *float64
	if skill.TargetFreshness.Valid {
		target = &skill.TargetFreshness.Float64
	}
	return Summarize(skill.DecayRate, target, events, now)
}
