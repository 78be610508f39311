// Package match scores project records against free-text ideas (or
// against each other) using a deterministic weighted keyword heuristic.
//
// Every scoring term is additive and independently explainable in the
// match reason; there is no learned component anywhere in this path.
package match

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hurttlocker/prospect/internal/catalog"
	"github.com/hurttlocker/prospect/internal/classify"
	"go.uber.org/zap"
)

// Idea-to-record scoring weights.
const (
	categoryWeight = 40
	techWeight     = 15
	featureWeight  = 10
	contentWeight  = 5

	popularityCap = 10
	maxScore      = 100
)

// Record-to-record scoring weights (no popularity term).
const (
	sharedTechWeight      = 10
	sharedFrameworkWeight = 8
	sharedAIModelWeight   = 12
)

// Ranker scores and orders records. It holds no mutable state; calls may
// run interleaved over the same snapshot safely.
type Ranker struct {
	log *zap.Logger
}

// NewRanker creates a Ranker. A nil logger is replaced with a no-op one.
func NewRanker(log *zap.Logger) *Ranker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ranker{log: log}
}

// Rank scores every record against the idea text and returns at most
// limit matches sorted by score descending. The sort is stable: equal
// scores preserve snapshot order.
func (r *Ranker) Rank(ideaText string, records []catalog.ProjectRecord, limit int) []ProjectMatch {
	analysis := classify.Classify(ideaText)
	ideaWords := overlapWords(ideaText)
	categoryTerms := classify.KeywordsFor(analysis.Category)

	matches := make([]ProjectMatch, 0, len(records))
	for i := range records {
		matches = append(matches, r.scoreRecord(&records[i], analysis, categoryTerms, ideaWords))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].SimilarityScore > matches[j].SimilarityScore
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	r.log.Debug("ranked idea against snapshot",
		zap.String("category", analysis.Category),
		zap.Int("candidates", len(records)),
		zap.Int("returned", len(matches)))
	return matches
}

// SimilarTo ranks records by what they share with a reference record:
// technologies, frameworks, and AI models, weighted 10/8/12. The
// reference record itself is excluded.
func (r *Ranker) SimilarTo(ref *catalog.ProjectRecord, records []catalog.ProjectRecord, limit int) []ProjectMatch {
	refTechs := ref.TechnologyList()
	refFrameworks := ref.FrameworkList()
	refModels := ref.AIModelList()

	matches := make([]ProjectMatch, 0, len(records))
	for i := range records {
		rec := &records[i]
		if rec.ID == ref.ID {
			continue
		}

		techShared := listOverlap(refTechs, rec.TechnologyList())
		frameworkShared := listOverlap(refFrameworks, rec.FrameworkList())
		modelShared := listOverlap(refModels, rec.AIModelList())

		score := float64(sharedTechWeight*techShared +
			sharedFrameworkWeight*frameworkShared +
			sharedAIModelWeight*modelShared)
		score = clampScore(score)

		var reasons []string
		appendCount(&reasons, techShared, "shared technology", "shared technologies")
		appendCount(&reasons, frameworkShared, "shared framework", "shared frameworks")
		appendCount(&reasons, modelShared, "shared AI model", "shared AI models")

		matches = append(matches, ProjectMatch{
			Project:               *rec,
			SimilarityScore:       score,
			MatchReason:           joinReasons(reasons),
			IntegrationComplexity: deriveComplexity(techShared, frameworkShared),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].SimilarityScore > matches[j].SimilarityScore
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func (r *Ranker) scoreRecord(rec *catalog.ProjectRecord, analysis classify.IdeaAnalysis, categoryTerms, ideaWords []string) ProjectMatch {
	score := 0.0
	var reasons []string

	recordProse := strings.ToLower(rec.Description + " " + rec.AISummary)
	if containsAnyTerm(recordProse, categoryTerms) {
		score += categoryWeight
		reasons = append(reasons, "Category match")
	}

	techOverlap := listOverlap(analysis.Technologies, rec.TechnologyList())
	score += float64(techWeight * techOverlap)
	appendCount(&reasons, techOverlap, "technology match", "technology matches")

	featureOverlap := listOverlap(analysis.Features, rec.FeatureList())
	score += float64(featureWeight * featureOverlap)
	appendCount(&reasons, featureOverlap, "feature match", "feature matches")

	// Naive substring containment on raw words, kept as observed in the
	// source system: "ai" matches inside "maintain". Fixing the word
	// boundary here would silently shift every score.
	contentOverlap := 0
	searchText := rec.SearchText()
	for _, w := range ideaWords {
		if strings.Contains(searchText, w) {
			contentOverlap++
		}
	}
	score += float64(contentWeight * contentOverlap)
	appendCount(&reasons, contentOverlap, "shared keyword", "shared keywords")

	popularity := float64(rec.GithubStars) / 10
	if popularity > popularityCap {
		popularity = popularityCap
	}
	score += popularity

	return ProjectMatch{
		Project:               *rec,
		SimilarityScore:       clampScore(score),
		MatchReason:           joinReasons(reasons),
		IntegrationComplexity: deriveComplexity(techOverlap, featureOverlap),
	}
}

// listOverlap counts entries of a that substring-match, in either
// direction and case-insensitively, any entry of b.
func listOverlap(a, b []string) int {
	count := 0
	for _, x := range a {
		lx := strings.ToLower(x)
		for _, y := range b {
			ly := strings.ToLower(y)
			if strings.Contains(ly, lx) || strings.Contains(lx, ly) {
				count++
				break
			}
		}
	}
	return count
}

// overlapWords returns the lowercased idea words longer than 3 characters.
func overlapWords(ideaText string) []string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(ideaText)) {
		if len(w) > 3 {
			words = append(words, w)
		}
	}
	return words
}

func containsAnyTerm(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func deriveComplexity(primaryOverlap, secondaryOverlap int) IntegrationComplexity {
	switch {
	case primaryOverlap >= 3 && secondaryOverlap >= 2:
		return IntegrationLow
	case primaryOverlap <= 1 && secondaryOverlap <= 1:
		return IntegrationHigh
	default:
		return IntegrationMedium
	}
}

func appendCount(reasons *[]string, n int, singular, plural string) {
	if n <= 0 {
		return
	}
	if n == 1 {
		*reasons = append(*reasons, fmt.Sprintf("1 %s", singular))
		return
	}
	*reasons = append(*reasons, fmt.Sprintf("%d %s", n, plural))
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > maxScore {
		return maxScore
	}
	return s
}

func joinReasons(reasons []string) string {
	if len(reasons) == 0 {
		return "General similarity"
	}
	return strings.Join(reasons, ", ")
}
