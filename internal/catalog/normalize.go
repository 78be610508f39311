package catalog

import (
	"strconv"
	"strings"
)

// columnAliases maps canonical field keys to the source column names that
// may carry them, in priority order. Unknown source columns are ignored;
// missing columns degrade to defaults rather than rejecting the row.
var columnAliases = map[string][]string{
	"name":                 {"name", "title"},
	"description":          {"description"},
	"detailed_description": {"detailed_description"},
	"ai_summary":           {"ai_summary"},
	"project_url":          {"project_url"},
	"demo_url":             {"demo_url"},
	"github_url":           {"github_url"},
	"github_stars":         {"github_stars"},
	"contributors":         {"contributors"},
	"technologies":         {"technologies_list"},
	"frameworks":           {"frameworks_inferred", "technologies.frameworks"},
	"ai_models":            {"ai_models_inferred", "technologies.ai_models"},
	"vector_dbs":           {"vector_db_inferred", "technologies.vector_databases"},
	"infrastructure":       {"infrastructure_inferred", "technologies.infrastructure"},
	"features":             {"features_list"},
	"risks":                {"risks"},
	"date":                 {"date"},
	"setup":                {"setup_steps"},
	"deployment":           {"deployment_notes", "integration_plan"},
	"security":             {"security_notes"},
	"testing":              {"testing_notes"},
	"x":                    {"x"},
	"y":                    {"y"},
	"z":                    {"z"},
}

// rowView indexes one data row by canonical field key.
type rowView struct {
	index map[string]int // lowercased source header -> column position
	cells []string
}

func newHeaderIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(stripQuotes(h)))
		if h == "" {
			continue
		}
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	return idx
}

func (v rowView) field(key string) string {
	for _, alias := range columnAliases[key] {
		pos, ok := v.index[alias]
		if !ok || pos >= len(v.cells) {
			continue
		}
		val := strings.TrimSpace(stripQuotes(v.cells[pos]))
		if val != "" {
			return val
		}
	}
	return ""
}

func (v rowView) intField(key string) int {
	raw := v.field(key)
	if raw == "" {
		return 0
	}
	// Star counts sometimes arrive as floats ("42.0").
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f > 0 {
		return int(f)
	}
	return 0
}

func (v rowView) floatField(key string) (float64, bool) {
	raw := v.field(key)
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// normalizeRow maps one source row onto the canonical record shape,
// filling defaults and fixing types. id is assigned by load order.
func normalizeRow(id int, index map[string]int, cells []string) ProjectRecord {
	v := rowView{index: index, cells: cells}

	rec := ProjectRecord{
		ID:                  id,
		Name:                v.field("name"),
		Description:         v.field("description"),
		DetailedDescription: v.field("detailed_description"),
		AISummary:           v.field("ai_summary"),
		ProjectURL:          v.field("project_url"),
		DemoURL:             v.field("demo_url"),
		GithubURL:           v.field("github_url"),
		GithubStars:         v.intField("github_stars"),
		Contributors:        v.field("contributors"),
		Technologies:        v.field("technologies"),
		Frameworks:          v.field("frameworks"),
		AIModels:            v.field("ai_models"),
		VectorDBs:           v.field("vector_dbs"),
		Infrastructure:      v.field("infrastructure"),
		Features:            v.field("features"),
		Risks:               v.field("risks"),
		Date:                v.field("date"),
		SetupNotes:          v.field("setup"),
		DeploymentNotes:     v.field("deployment"),
		SecurityNotes:       v.field("security"),
		TestingNotes:        v.field("testing"),
	}

	if rec.DetailedDescription == "" {
		rec.DetailedDescription = rec.Description
	}

	x, okX := v.floatField("x")
	y, okY := v.floatField("y")
	z, okZ := v.floatField("z")
	if okX && okY && okZ {
		rec.X, rec.Y, rec.Z = x, y, z
	} else {
		rec.X, rec.Y, rec.Z = syntheticCoordinates(rec.Name)
	}

	return rec
}

func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
