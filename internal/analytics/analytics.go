// Package analytics computes aggregate views over the whole dataset.
//
// Three capability groups:
// - Axis breakdowns: frequency/percentage tables per technology axis
// - Overall stats: totals, star averages, category distribution, recency
// - Market insights: fixed-rule gap/opportunity/trend signals
//
// Snapshots are recomputed from scratch on every call. The dataset is
// small enough that caching would only buy correctness problems.
package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/hurttlocker/prospect/internal/catalog"
	"github.com/hurttlocker/prospect/internal/classify"
)

const (
	axisTopN          = 10
	topCategoriesN    = 5
	trendingTechsN    = 5
	recencyWindow     = 6 // months
	hotRecencyCount   = 50
	emergingMinRecent = 2
)

// AxisEntry is one row of a technology-axis frequency table.
type AxisEntry struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// CategoryCount pairs a taxonomy category with its record count.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// OverallStats summarizes the collection as a whole.
type OverallStats struct {
	TotalProjects  int             `json:"total_projects"`
	TotalStars     int             `json:"total_stars"`
	AvgStars       int             `json:"avg_stars"`
	TopCategories  []CategoryCount `json:"top_categories"`
	RecentProjects int             `json:"recent_projects"`
}

// MarketInsights holds the fixed-rule heuristic signals. These are
// existence checks and count thresholds, not learned trends.
type MarketInsights struct {
	Gaps               []string `json:"gaps"`
	Opportunities      []string `json:"opportunities"`
	TrendingTechs      []string `json:"trending_technologies"`
	EmergingCategories []string `json:"emerging_categories"`
}

// Snapshot is the full aggregate view handed to callers.
type Snapshot struct {
	Frameworks     []AxisEntry    `json:"frameworks"`
	AIModels       []AxisEntry    `json:"ai_models"`
	VectorDBs      []AxisEntry    `json:"vector_dbs"`
	Infrastructure []AxisEntry    `json:"infrastructure"`
	Stats          OverallStats   `json:"stats"`
	Insights       MarketInsights `json:"insights"`
	GeneratedAt    time.Time      `json:"generated_at"`
}

// Aggregate computes a fresh snapshot over the records.
func Aggregate(records []catalog.ProjectRecord) *Snapshot {
	return aggregateAt(records, time.Now())
}

// aggregateAt is the clock-injected implementation, split out so recency
// logic is testable.
func aggregateAt(records []catalog.ProjectRecord, now time.Time) *Snapshot {
	total := len(records)

	snap := &Snapshot{
		Frameworks:     axisTable(records, total, func(r *catalog.ProjectRecord) []string { return r.FrameworkList() }),
		AIModels:       axisTable(records, total, func(r *catalog.ProjectRecord) []string { return r.AIModelList() }),
		VectorDBs:      axisTable(records, total, func(r *catalog.ProjectRecord) []string { return catalog.SplitList(r.VectorDBs) }),
		Infrastructure: axisTable(records, total, func(r *catalog.ProjectRecord) []string { return catalog.SplitList(r.Infrastructure) }),
		GeneratedAt:    now,
	}

	recentCutoff := now.AddDate(0, -recencyWindow, 0)
	totalStars := 0
	recent := 0
	categoryCounts := map[string]int{}
	recentCategoryCounts := map[string]int{}

	for i := range records {
		rec := &records[i]
		totalStars += rec.GithubStars

		category := classify.Categorize(rec.Name + " " + rec.Description + " " + rec.AISummary)
		categoryCounts[category]++

		// Unparseable dates are excluded from recency, not counted.
		if t, ok := rec.ParsedDate(); ok && t.After(recentCutoff) {
			recent++
			recentCategoryCounts[category]++
		}
	}

	avgStars := 0
	if total > 0 {
		avgStars = int(math.Round(float64(totalStars) / float64(total)))
	}

	snap.Stats = OverallStats{
		TotalProjects:  total,
		TotalStars:     totalStars,
		AvgStars:       avgStars,
		TopCategories:  topCategories(categoryCounts, topCategoriesN),
		RecentProjects: recent,
	}
	snap.Insights = deriveInsights(records, snap.Stats, recentCategoryCounts)

	return snap
}

// axisTable splits the axis field of every record, lowercases and trims
// each entry, and returns the top entries as count/percentage rows.
// Percentage is relative to the record total, not the entry total.
func axisTable(records []catalog.ProjectRecord, total int, field func(*catalog.ProjectRecord) []string) []AxisEntry {
	counts := map[string]int{}
	for i := range records {
		for _, entry := range field(&records[i]) {
			name := strings.ToLower(strings.TrimSpace(entry))
			if name != "" {
				counts[name]++
			}
		}
	}

	entries := make([]AxisEntry, 0, len(counts))
	for name, count := range counts {
		pct := 0
		if total > 0 {
			pct = int(math.Round(float64(count) / float64(total) * 100))
		}
		entries = append(entries, AxisEntry{Name: name, Count: count, Percentage: pct})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})

	if len(entries) > axisTopN {
		entries = entries[:axisTopN]
	}
	return entries
}

func topCategories(counts map[string]int, n int) []CategoryCount {
	out := make([]CategoryCount, 0, len(counts))
	for category, count := range counts {
		out = append(out, CategoryCount{Category: category, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// gapRules are existence checks over record prose: when no record
// mentions both terms, the gap string is emitted.
var gapRules = []struct {
	terms [2]string
	gap   string
}{
	{[2]string{"ai", "crm"}, "No AI-powered CRM projects in the collection"},
	{[2]string{"ai", "health"}, "No AI-assisted healthcare projects in the collection"},
	{[2]string{"ai", "education"}, "No AI-driven education projects in the collection"},
	{[2]string{"voice", "assistant"}, "No voice assistant projects in the collection"},
}

func deriveInsights(records []catalog.ProjectRecord, stats OverallStats, recentCategories map[string]int) MarketInsights {
	insights := MarketInsights{}

	for _, rule := range gapRules {
		found := false
		for i := range records {
			text := records[i].SearchText()
			if strings.Contains(text, rule.terms[0]) && strings.Contains(text, rule.terms[1]) {
				found = true
				break
			}
		}
		if !found {
			insights.Gaps = append(insights.Gaps, rule.gap)
		}
	}

	if stats.RecentProjects > hotRecencyCount {
		insights.Opportunities = append(insights.Opportunities,
			"High build velocity: many projects shipped in the last 6 months")
	}
	if stats.TotalProjects > 0 && stats.AvgStars < 10 {
		insights.Opportunities = append(insights.Opportunities,
			"Most projects have low visibility; distribution is an open niche")
	}

	techCounts := map[string]int{}
	for i := range records {
		for _, tech := range records[i].TechnologyList() {
			name := strings.ToLower(strings.TrimSpace(tech))
			if name != "" {
				techCounts[name]++
			}
		}
	}
	for _, entry := range topCategories(techCounts, trendingTechsN) {
		insights.TrendingTechs = append(insights.TrendingTechs, entry.Category)
	}

	emerging := make([]CategoryCount, 0, len(recentCategories))
	for category, count := range recentCategories {
		if count >= emergingMinRecent {
			emerging = append(emerging, CategoryCount{Category: category, Count: count})
		}
	}
	sort.Slice(emerging, func(i, j int) bool {
		if emerging[i].Count != emerging[j].Count {
			return emerging[i].Count > emerging[j].Count
		}
		return emerging[i].Category < emerging[j].Category
	})
	for _, e := range emerging {
		insights.EmergingCategories = append(insights.EmergingCategories, e.Category)
	}

	return insights
}
