// Package classify turns free-text project ideas into structured
// profiles using fixed, ordered keyword tables.
//
// Classification is deliberately not a model: the taxonomy is data, every
// rule is independently testable, and identical input always produces
// identical output.
package classify

import "strings"

// Complexity buckets an idea by how much it asks for.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// estimatedTimeByComplexity is the fixed three-way lookup for the
// human-readable build estimate.
var estimatedTimeByComplexity = map[Complexity]string{
	ComplexityLow:    "2-3 weeks",
	ComplexityMedium: "1-2 months",
	ComplexityHigh:   "3-6 months",
}

// IdeaAnalysis is the derived, ephemeral profile of one idea.
type IdeaAnalysis struct {
	Category      string     `json:"category"`
	Technologies  []string   `json:"technologies"`
	Features      []string   `json:"features"`
	Complexity    Complexity `json:"complexity"`
	EstimatedTime string     `json:"estimated_time"`
	KeyComponents []string   `json:"key_components"`
}

// Classify analyzes free-text idea input into a structured profile.
func Classify(ideaText string) IdeaAnalysis {
	lower := strings.ToLower(ideaText)

	analysis := IdeaAnalysis{
		Category:     Categorize(ideaText),
		Technologies: extractTerms(lower, technologyVocabulary),
		Features:     extractTerms(lower, featureVocabulary),
	}

	analysis.Complexity = deriveComplexity(len(analysis.Technologies), len(analysis.Features))
	analysis.EstimatedTime = estimatedTimeByComplexity[analysis.Complexity]
	analysis.KeyComponents = deriveKeyComponents(lower)

	return analysis
}

// Categorize returns the first taxonomy category whose keywords appear in
// the text, or DefaultCategory when none match. Used both for ideas and,
// by the analytics layer, against each record's combined text.
func Categorize(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range CategoryRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Label
			}
		}
	}
	return DefaultCategory
}

// KeywordsFor returns the keyword set of a taxonomy label, or nil for the
// sentinel category and unknown labels.
func KeywordsFor(label string) []string {
	for _, rule := range CategoryRules {
		if rule.Label == label {
			return rule.Keywords
		}
	}
	return nil
}

func extractTerms(lowerText string, vocabulary []string) []string {
	var found []string
	for _, term := range vocabulary {
		if strings.Contains(lowerText, term) {
			found = append(found, term)
		}
	}
	return found
}

func deriveComplexity(techCount, featureCount int) Complexity {
	switch {
	case techCount > 4 || featureCount > 5:
		return ComplexityHigh
	case techCount < 2 && featureCount < 3:
		return ComplexityLow
	default:
		return ComplexityMedium
	}
}

// deriveKeyComponents always includes the base web triad and appends
// service components when the idea asks for them.
func deriveKeyComponents(lowerText string) []string {
	components := []string{"Frontend", "Backend", "Database"}

	if containsAny(lowerText, "ai", "gpt", "llm", "machine learning", "recommendation") {
		components = append(components, "AI Service")
	}
	if containsAny(lowerText, "real-time", "chat", "websocket", "live") {
		components = append(components, "WebSocket Service")
	}
	if containsAny(lowerText, "analytics", "dashboard", "reporting", "metrics") {
		components = append(components, "Analytics Service")
	}
	return components
}

func containsAny(text string, terms ...string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}
