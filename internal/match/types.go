package match

import "github.com/hurttlocker/prospect/internal/catalog"

// IntegrationComplexity estimates how hard adopting a matched project is.
type IntegrationComplexity string

const (
	IntegrationLow    IntegrationComplexity = "low"
	IntegrationMedium IntegrationComplexity = "medium"
	IntegrationHigh   IntegrationComplexity = "high"
)

// ProjectMatch is one scored ranking entry. Created fresh per ranking
// call and owned by the caller; never persisted.
type ProjectMatch struct {
	Project               catalog.ProjectRecord `json:"project"`
	SimilarityScore       float64               `json:"similarity_score"`
	MatchReason           string                `json:"match_reason"`
	IntegrationComplexity IntegrationComplexity `json:"integration_complexity"`
}
