package analytics

import (
	"testing"
	"time"

	"github.com/hurttlocker/prospect/internal/catalog"
)

var testNow = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

func TestAggregateFrameworkAxis(t *testing.T) {
	records := []catalog.ProjectRecord{
		{ID: 0, Frameworks: "React"},
		{ID: 1, Frameworks: "React"},
		{ID: 2, Frameworks: "Vue"},
		{ID: 3},
	}

	snap := aggregateAt(records, testNow)

	if len(snap.Frameworks) != 2 {
		t.Fatalf("expected 2 framework entries, got %d", len(snap.Frameworks))
	}
	top := snap.Frameworks[0]
	if top.Name != "react" || top.Count != 2 || top.Percentage != 50 {
		t.Fatalf("got %+v, want react/2/50", top)
	}
}

func TestAggregatePercentageBounds(t *testing.T) {
	records := []catalog.ProjectRecord{
		{ID: 0, Frameworks: "React|Vue|Svelte", AIModels: "GPT-4", Infrastructure: "AWS"},
		{ID: 1, Frameworks: "React", VectorDBs: "Pinecone"},
	}

	snap := aggregateAt(records, testNow)
	for _, axis := range [][]AxisEntry{snap.Frameworks, snap.AIModels, snap.VectorDBs, snap.Infrastructure} {
		for _, e := range axis {
			if e.Percentage < 0 || e.Percentage > 100 {
				t.Fatalf("percentage %d out of range for %q", e.Percentage, e.Name)
			}
		}
	}
}

func TestAggregateAxisTopTen(t *testing.T) {
	records := make([]catalog.ProjectRecord, 15)
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n", "o"}
	for i := range records {
		records[i] = catalog.ProjectRecord{ID: i, Frameworks: names[i]}
	}

	snap := aggregateAt(records, testNow)
	if len(snap.Frameworks) != 10 {
		t.Fatalf("expected axis truncated to 10, got %d", len(snap.Frameworks))
	}
}

func TestAggregateEmptyDataset(t *testing.T) {
	snap := aggregateAt(nil, testNow)

	if snap.Stats.TotalProjects != 0 {
		t.Fatalf("got %d projects", snap.Stats.TotalProjects)
	}
	if snap.Stats.AvgStars != 0 {
		t.Fatalf("average of empty set must be 0, got %d", snap.Stats.AvgStars)
	}
}

func TestAggregateStarStats(t *testing.T) {
	records := []catalog.ProjectRecord{
		{ID: 0, GithubStars: 10},
		{ID: 1, GithubStars: 15},
		{ID: 2, GithubStars: 0},
	}

	snap := aggregateAt(records, testNow)
	if snap.Stats.TotalStars != 25 {
		t.Fatalf("got total %d", snap.Stats.TotalStars)
	}
	// 25/3 = 8.33 rounds to 8.
	if snap.Stats.AvgStars != 8 {
		t.Fatalf("got avg %d, want 8", snap.Stats.AvgStars)
	}
}

func TestAggregateRecencyExcludesUnparseableDates(t *testing.T) {
	records := []catalog.ProjectRecord{
		{ID: 0, Date: "2026-07-15"}, // within 6 months of testNow
		{ID: 1, Date: "2024-01-01"}, // old
		{ID: 2, Date: "sometime last spring"},
		{ID: 3},
	}

	snap := aggregateAt(records, testNow)
	if snap.Stats.RecentProjects != 1 {
		t.Fatalf("got %d recent, want 1", snap.Stats.RecentProjects)
	}
}

func TestAggregateTopCategoriesUseClassifier(t *testing.T) {
	records := []catalog.ProjectRecord{
		{ID: 0, Description: "AI-powered CRM platform"},
		{ID: 1, Description: "sales pipeline tracker"},
		{ID: 2, Description: "patient scheduling for clinics"},
	}

	snap := aggregateAt(records, testNow)
	if len(snap.Stats.TopCategories) == 0 {
		t.Fatal("expected categories")
	}
	if snap.Stats.TopCategories[0].Category != "CRM/Business Tools" || snap.Stats.TopCategories[0].Count != 2 {
		t.Fatalf("got %+v", snap.Stats.TopCategories[0])
	}
}

func TestAggregateGapRules(t *testing.T) {
	// No record mentions both "ai" and "crm" → the CRM gap fires.
	snap := aggregateAt([]catalog.ProjectRecord{
		{ID: 0, Description: "boring crm for plumbers"},
	}, testNow)

	if !containsString(snap.Insights.Gaps, "No AI-powered CRM projects in the collection") {
		t.Fatalf("expected CRM gap, got %v", snap.Insights.Gaps)
	}

	// A record covering both terms suppresses it.
	snap = aggregateAt([]catalog.ProjectRecord{
		{ID: 0, Description: "ai crm assistant"},
	}, testNow)
	if containsString(snap.Insights.Gaps, "No AI-powered CRM projects in the collection") {
		t.Fatalf("gap should be suppressed, got %v", snap.Insights.Gaps)
	}
}

func TestAggregateTrendingTechs(t *testing.T) {
	records := []catalog.ProjectRecord{
		{ID: 0, Technologies: "React|Node"},
		{ID: 1, Technologies: "React"},
		{ID: 2, Technologies: "React|Go"},
	}

	snap := aggregateAt(records, testNow)
	if len(snap.Insights.TrendingTechs) == 0 || snap.Insights.TrendingTechs[0] != "react" {
		t.Fatalf("got %v, want react leading", snap.Insights.TrendingTechs)
	}
}

func TestAggregateIsRecomputedEachCall(t *testing.T) {
	records := []catalog.ProjectRecord{{ID: 0, Frameworks: "React"}}

	first := aggregateAt(records, testNow)
	records[0].Frameworks = "Vue"
	second := aggregateAt(records, testNow)

	if first.Frameworks[0].Name == second.Frameworks[0].Name {
		t.Fatal("snapshot must reflect current records, not a cache")
	}
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
