// Package combine finds complementary project pairings.
//
// Given a primary project it scores every other record by what it adds
// beyond the primary's existing technologies and features, then emits an
// integration plan for the top candidates.
package combine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hurttlocker/prospect/internal/catalog"
)

const (
	uniqueTechWeight    = 10
	uniqueFeatureWeight = 8

	// maxCombinations caps Suggest output.
	maxCombinations = 3
)

// SystemCombination pairs a primary project with a complementary one and
// a plan for integrating them.
type SystemCombination struct {
	PrimaryProject           catalog.ProjectRecord   `json:"primary_project"`
	ComplementaryProjects    []catalog.ProjectRecord `json:"complementary_projects"`
	TotalScore               float64                 `json:"total_score"`
	IntegrationSteps         []string                `json:"integration_steps"`
	EstimatedDevelopmentTime string                  `json:"estimated_development_time"`
	MissingComponents        []string                `json:"missing_components"`
}

// Suggest returns at most three combinations, best complementarity first.
func Suggest(primary *catalog.ProjectRecord, records []catalog.ProjectRecord) []SystemCombination {
	primaryTechs := primary.TechnologyList()
	primaryFeatures := primary.FeatureList()

	type candidate struct {
		record *catalog.ProjectRecord
		score  int
	}

	candidates := make([]candidate, 0, len(records))
	for i := range records {
		rec := &records[i]
		if rec.ID == primary.ID {
			continue
		}
		score := uniqueTechWeight*countUnique(rec.TechnologyList(), primaryTechs) +
			uniqueFeatureWeight*countUnique(rec.FeatureList(), primaryFeatures)
		candidates = append(candidates, candidate{record: rec, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > maxCombinations {
		candidates = candidates[:maxCombinations]
	}

	combos := make([]SystemCombination, 0, len(candidates))
	for _, c := range candidates {
		missing := detectMissingComponents(primary, c.record)
		combos = append(combos, SystemCombination{
			PrimaryProject:           *primary,
			ComplementaryProjects:    []catalog.ProjectRecord{*c.record},
			TotalScore:               float64(c.score) + float64(primary.GithubStars)/10,
			IntegrationSteps:         integrationSteps(primary.Name, c.record.Name, missing),
			EstimatedDevelopmentTime: estimateDevelopmentTime(c.score),
			MissingComponents:        missing,
		})
	}
	return combos
}

// countUnique counts entries of list that do not substring-overlap (in
// either direction, case-insensitively) any entry of base.
func countUnique(list, base []string) int {
	count := 0
	for _, x := range list {
		lx := strings.ToLower(x)
		overlaps := false
		for _, y := range base {
			ly := strings.ToLower(y)
			if strings.Contains(ly, lx) || strings.Contains(lx, ly) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			count++
		}
	}
	return count
}

var (
	databaseTechTerms = []string{"postgres", "mysql", "mongodb", "sqlite", "supabase", "database"}
	authTechTerms     = []string{"auth", "oauth", "jwt", "clerk", "passport"}
	userFeatureTerms  = []string{"user", "profile", "account", "login"}
	apiFeatureTerms   = []string{"api"}
)

// detectMissingComponents runs three independent rule checks against the
// pairing and names the architectural pieces the primary would gain.
func detectMissingComponents(primary, candidate *catalog.ProjectRecord) []string {
	var missing []string

	primaryTechs := lowerAll(primary.TechnologyList())
	candidateTechs := lowerAll(candidate.TechnologyList())
	primaryFeatures := lowerAll(primary.FeatureList())
	candidateFeatures := lowerAll(candidate.FeatureList())

	if anyTermMatch(candidateTechs, databaseTechTerms) && !anyTermMatch(primaryTechs, databaseTechTerms) {
		missing = append(missing, "Database")
	}
	if anyTermMatch(candidateFeatures, userFeatureTerms) && !anyTermMatch(primaryTechs, authTechTerms) {
		missing = append(missing, "Authentication")
	}
	if anyTermMatch(candidateFeatures, apiFeatureTerms) && !anyTermMatch(primaryFeatures, apiFeatureTerms) {
		missing = append(missing, "API Layer")
	}
	return missing
}

func estimateDevelopmentTime(complementarityScore int) string {
	switch {
	case complementarityScore > 50:
		return "6-8 weeks"
	case complementarityScore < 20:
		return "2-4 weeks"
	default:
		return "4-6 weeks"
	}
}

// integrationSteps is a fixed four-line template interpolating the two
// project names and the missing-component list.
func integrationSteps(primaryName, candidateName string, missing []string) []string {
	missingDesc := "none"
	if len(missing) > 0 {
		missingDesc = strings.Join(missing, ", ")
	}
	return []string{
		fmt.Sprintf("Set up %s as the core platform", primaryName),
		fmt.Sprintf("Integrate %s for complementary capabilities", candidateName),
		fmt.Sprintf("Build out missing components: %s", missingDesc),
		"Test the combined system end to end and deploy",
	}
}

func lowerAll(list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = strings.ToLower(s)
	}
	return out
}

// anyTermMatch reports whether any entry contains any of the terms.
func anyTermMatch(entries, terms []string) bool {
	for _, e := range entries {
		for _, t := range terms {
			if strings.Contains(e, t) {
				return true
			}
		}
	}
	return false
}
