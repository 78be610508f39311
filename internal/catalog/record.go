// Package catalog owns the canonical project dataset for Prospect.
//
// It loads a tabular source (local CSV file or HTTP URL) exactly once per
// process, normalizes variant column names onto a canonical record shape,
// and serves the cached snapshot to every other component. The snapshot is
// immutable after load: consumers receive the shared slice and must not
// mutate it.
package catalog

import (
	"hash/fnv"
	"strings"
	"time"
)

// ProjectRecord is one canonical dataset entity.
//
// All string fields default to "" and numeric fields to 0; multi-value
// fields are stored as "|"-delimited strings in source order and split on
// demand via the list accessors.
type ProjectRecord struct {
	ID                  int     `json:"id"`
	Name                string  `json:"name"`
	Description         string  `json:"description"`
	DetailedDescription string  `json:"detailed_description"`
	AISummary           string  `json:"ai_summary"`
	ProjectURL          string  `json:"project_url"`
	DemoURL             string  `json:"demo_url"`
	GithubURL           string  `json:"github_url"`
	GithubStars         int     `json:"github_stars"`
	Contributors        string  `json:"contributors"`
	Technologies        string  `json:"technologies_list"`
	Frameworks          string  `json:"frameworks_inferred"`
	AIModels            string  `json:"ai_models_inferred"`
	VectorDBs           string  `json:"vector_db_inferred"`
	Infrastructure      string  `json:"infrastructure_inferred"`
	Features            string  `json:"features_list"`
	Risks               string  `json:"risks"`
	Date                string  `json:"date"`
	SetupNotes          string  `json:"setup_steps"`
	DeploymentNotes     string  `json:"deployment_notes"`
	SecurityNotes       string  `json:"security_notes"`
	TestingNotes        string  `json:"testing_notes"`
	X                   float64 `json:"x"`
	Y                   float64 `json:"y"`
	Z                   float64 `json:"z"`
}

// SplitList splits a "|"-delimited field into trimmed entries, dropping
// blank segments. Source order is preserved: downstream heuristics (e.g.
// "top 3 technologies") depend on it.
func SplitList(field string) []string {
	if strings.TrimSpace(field) == "" {
		return nil
	}
	parts := strings.Split(field, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// TechnologyList returns the record's technologies in source order.
func (r *ProjectRecord) TechnologyList() []string { return SplitList(r.Technologies) }

// FrameworkList returns the record's frameworks in source order.
func (r *ProjectRecord) FrameworkList() []string { return SplitList(r.Frameworks) }

// AIModelList returns the record's AI models in source order.
func (r *ProjectRecord) AIModelList() []string { return SplitList(r.AIModels) }

// FeatureList returns the record's features in source order.
func (r *ProjectRecord) FeatureList() []string { return SplitList(r.Features) }

// SearchText returns the lowercased free-text body used for content
// overlap scoring: name + description + AI summary.
func (r *ProjectRecord) SearchText() string {
	return strings.ToLower(r.Name + " " + r.Description + " " + r.AISummary)
}

// ParsedDate parses the record's date field. Returns the zero time and
// false when the field is empty or unparseable; callers exclude such
// records from recency counts rather than treating them as errors.
func (r *ProjectRecord) ParsedDate() (time.Time, bool) {
	raw := strings.TrimSpace(r.Date)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
		"2006/01/02",
		"01/02/2006",
	} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

const coordinateRange = 10.0

// syntheticCoordinates derives stable (x, y, z) point-cloud coordinates in
// [-10, 10] from the record name. The source system sampled fresh uniform
// randoms on every load; hashing keeps coordinates identical across loads.
func syntheticCoordinates(name string) (x, y, z float64) {
	return hashAxis(name, 0), hashAxis(name, 1), hashAxis(name, 2)
}

func hashAxis(name string, axis byte) float64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	h.Write([]byte{axis})
	// Map the hash onto [-range, +range].
	unit := float64(h.Sum64()%100000) / 100000.0
	return unit*2*coordinateRange - coordinateRange
}
