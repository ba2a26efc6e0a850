package engine

import (
	"database/sql"
	"testing"

	"github.com/olegiv/skillfresh/internal/model"
)

func TestCategoryStats(t *testing.T) {
	skills := []model.Skill{
		{ID: 1, Name: "Go", CategoryID: sql.NullInt64{Int64: 100, Valid: true}},
		{ID: 2, Name: "Rust", CategoryID: sql.NullInt64{Int64: 100, Valid: true}},
		{ID: 3, Name: "Cooking"},
	}
	summaries := map[int64]Summary{
		1: {Freshness: fptr(80), PracticeCount: 3, LearningCount: 1},
		2: {PracticeCount: 0, LearningCount: 2}, // never practiced
		3: {Freshness: fptr(30), PracticeCount: 1},
	}
	names := map[int64]string{100: "programming"}

	stats := CategoryStats(skills, summaries, names)
	if len(stats) != 2 {
		t.Fatalf("len(stats) = %d, want 2", len(stats))
	}

	// Cooking at 30 sorts before programming at 80.
	if stats[0].Category != UncategorizedLabel {
		t.Errorf("stats[0].Category = %q, want %q", stats[0].Category, UncategorizedLabel)
	}

	prog := stats[1]
	if prog.Category != "programming" {
		t.Fatalf("stats[1].Category = %q, want programming", prog.Category)
	}
	if prog.SkillCount != 2 {
		t.Errorf("SkillCount = %d, want 2", prog.SkillCount)
	}
	if prog.AverageFreshness == nil || *prog.AverageFreshness != 80 {
		t.Errorf("AverageFreshness = %v, want 80: never-practiced skills are excluded, not zeroed", prog.AverageFreshness)
	}
	if prog.TotalEvents != 6 {
		t.Errorf("TotalEvents = %d, want 6", prog.TotalEvents)
	}
	if len(prog.Skills) != 2 || prog.Skills[0] != "Go" || prog.Skills[1] != "Rust" {
		t.Errorf("Skills = %v, want sorted [Go Rust]", prog.Skills)
	}
}

func TestCategoryStatsAllUntracked(t *testing.T) {
	skills := []model.Skill{{ID: 1, Name: "Piano"}}
	stats := CategoryStats(skills, map[int64]Summary{1: {}}, nil)
	if len(stats) != 1 {
		t.Fatalf("len(stats) = %d, want 1", len(stats))
	}
	if stats[0].AverageFreshness != nil {
		t.Errorf("AverageFreshness = %v, want nil", *stats[0].AverageFreshness)
	}
}

func TestCategoryStatsNilAverageSortsLast(t *testing.T) {
	skills := []model.Skill{
		{ID: 1, Name: "Piano", CategoryID: sql.NullInt64{Int64: 1, Valid: true}},
		{ID: 2, Name: "Go", CategoryID: sql.NullInt64{Int64: 2, Valid: true}},
	}
	summaries := map[int64]Summary{
		1: {},
		2: {Freshness: fptr(95)},
	}
	names := map[int64]string{1: "music", 2: "programming"}

	stats := CategoryStats(skills, summaries, names)
	if stats[0].Category != "programming" || stats[1].Category != "music" {
		t.Errorf("order = [%s %s], want tracked categories before untracked ones",
			stats[0].Category, stats[1].Category)
	}
}
