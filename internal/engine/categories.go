package engine

import (
	"sort"

	"github.com/olegiv/skillfresh/internal/model"
)

// UncategorizedLabel is the bucket for skills without a category.
const UncategorizedLabel = "uncategorized"

// CategoryStat aggregates one category's skills. AverageFreshness is the
// mean over skills with a freshness value only: never-practiced skills are
// excluded from the average, not counted as zero.
type CategoryStat struct {
	Category         string   `json:"category"`
	SkillCount       int      `json:"skill_count"`
	AverageFreshness *float64 `json:"average_freshness"`
	TotalLearning    int      `json:"total_learning"`
	TotalPractice    int      `json:"total_practice"`
	TotalEvents      int      `json:"total_events"`
	Skills           []string `json:"skills"`
}

type categoryAccum struct {
	stat         CategoryStat
	freshnessSum float64
	trackedCount int
}

// CategoryStats groups active skills by category. Output is sorted ascending
// by average freshness so the most at-risk categories surface first;
// categories with no freshness data at all sort last.
func CategoryStats(skills []model.Skill, summaries map[int64]Summary, categoryNames map[int64]string) []CategoryStat {
	byName := make(map[string]*categoryAccum)

	for i := range skills {
		sk := &skills[i]
		name := UncategorizedLabel
		if sk.CategoryID.Valid {
			if n, ok := categoryNames[sk.CategoryID.Int64]; ok {
				name = n
			}
		}

		acc, ok := byName[name]
		if !ok {
			acc = &categoryAccum{stat: CategoryStat{Category: name}}
			byName[name] = acc
		}

		acc.stat.SkillCount++
		acc.stat.Skills = append(acc.stat.Skills, sk.Name)

		summary := summaries[sk.ID]
		acc.stat.TotalLearning += summary.LearningCount
		acc.stat.TotalPractice += summary.PracticeCount
		if summary.Freshness != nil {
			acc.freshnessSum += *summary.Freshness
			acc.trackedCount++
		}
	}

	stats := make([]CategoryStat, 0, len(byName))
	for _, acc := range byName {
		stat := acc.stat
		if acc.trackedCount > 0 {
			avg := acc.freshnessSum / float64(acc.trackedCount)
			stat.AverageFreshness = &avg
		}
		stat.TotalEvents = stat.TotalLearning + stat.TotalPractice
		sort.Strings(stat.Skills)
		stats = append(stats, stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		a, b := stats[i].AverageFreshness, stats[j].AverageFreshness
		switch {
		case a == nil && b == nil:
			return stats[i].Category < stats[j].Category
		case a == nil:
			return false
		case b == nil:
			return true
		case *a != *b:
			return *a < *b
		default:
			return stats[i].Category < stats[j].Category
		}
	})
	return stats
}
