package combine

import (
	"strings"
	"testing"

	"github.com/hurttlocker/prospect/internal/catalog"
)

func primaryRecord() catalog.ProjectRecord {
	return catalog.ProjectRecord{
		ID:           0,
		Name:         "CoreApp",
		Technologies: "React|Node",
		Features:     "dashboard",
		GithubStars:  50,
	}
}

func TestSuggestCapsAtThree(t *testing.T) {
	primary := primaryRecord()
	records := []catalog.ProjectRecord{primary}
	for i := 1; i <= 6; i++ {
		records = append(records, catalog.ProjectRecord{
			ID:           i,
			Name:         "Candidate",
			Technologies: "Rust|Elixir",
			Features:     "api|billing",
		})
	}

	combos := Suggest(&primary, records)
	if len(combos) > 3 {
		t.Fatalf("got %d combinations, cap is 3", len(combos))
	}
	for _, c := range combos {
		if len(c.ComplementaryProjects) == 0 {
			t.Fatal("combination must have at least one complementary project")
		}
	}
}

func TestSuggestExcludesPrimary(t *testing.T) {
	primary := primaryRecord()
	combos := Suggest(&primary, []catalog.ProjectRecord{primary})
	if len(combos) != 0 {
		t.Fatalf("primary alone should yield no combinations, got %d", len(combos))
	}
}

func TestSuggestOrdersByComplementarity(t *testing.T) {
	primary := primaryRecord()
	records := []catalog.ProjectRecord{
		primary,
		{ID: 1, Name: "SmallAdd", Technologies: "React", Features: "dashboard"}, // nothing unique
		{ID: 2, Name: "BigAdd", Technologies: "Postgres|Redis|Kafka", Features: "api|billing|auth"},
	}

	combos := Suggest(&primary, records)
	if combos[0].ComplementaryProjects[0].Name != "BigAdd" {
		t.Fatalf("expected BigAdd first, got %q", combos[0].ComplementaryProjects[0].Name)
	}
	// 3 unique techs ×10 + 3 unique features ×8 + 50 stars / 10.
	if combos[0].TotalScore != 54+5 {
		t.Fatalf("got total score %.1f, want 59", combos[0].TotalScore)
	}
}

func TestCountUnique(t *testing.T) {
	// "React Native" substring-overlaps "React"; only Vue is unique.
	got := countUnique([]string{"React Native", "Vue"}, []string{"React", "Node"})
	if got != 1 {
		t.Fatalf("got %d unique, want 1", got)
	}
}

func TestMissingComponentRules(t *testing.T) {
	primary := catalog.ProjectRecord{
		ID:           0,
		Name:         "Primary",
		Technologies: "React",
		Features:     "dashboard",
	}
	candidate := catalog.ProjectRecord{
		ID:           1,
		Name:         "Candidate",
		Technologies: "Postgres",
		Features:     "user profiles|public api",
	}

	missing := detectMissingComponents(&primary, &candidate)
	want := []string{"Database", "Authentication", "API Layer"}
	if len(missing) != len(want) {
		t.Fatalf("got %v, want %v", missing, want)
	}
	for i := range want {
		if missing[i] != want[i] {
			t.Fatalf("component %d: got %q want %q", i, missing[i], want[i])
		}
	}
}

func TestMissingComponentsAbsentWhenPrimaryCovers(t *testing.T) {
	primary := catalog.ProjectRecord{
		ID:           0,
		Technologies: "Postgres|Auth0",
		Features:     "rest api",
	}
	candidate := catalog.ProjectRecord{
		ID:           1,
		Technologies: "MongoDB",
		Features:     "user accounts|graphql api",
	}

	missing := detectMissingComponents(&primary, &candidate)
	if len(missing) != 0 {
		t.Fatalf("primary already covers everything, got %v", missing)
	}
}

func TestEstimateDevelopmentTimeThresholds(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{60, "6-8 weeks"},
		{51, "6-8 weeks"},
		{50, "4-6 weeks"},
		{20, "4-6 weeks"},
		{19, "2-4 weeks"},
		{0, "2-4 weeks"},
	}
	for _, tc := range cases {
		if got := estimateDevelopmentTime(tc.score); got != tc.want {
			t.Fatalf("estimateDevelopmentTime(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestIntegrationStepsTemplate(t *testing.T) {
	steps := integrationSteps("Alpha", "Beta", []string{"Database"})
	if len(steps) != 4 {
		t.Fatalf("got %d steps, want 4", len(steps))
	}
	if !strings.Contains(steps[0], "Alpha") {
		t.Fatalf("first step must name the primary: %q", steps[0])
	}
	if !strings.Contains(steps[1], "Beta") {
		t.Fatalf("second step must name the candidate: %q", steps[1])
	}
	if !strings.Contains(steps[2], "Database") {
		t.Fatalf("third step must list missing components: %q", steps[2])
	}

	steps = integrationSteps("Alpha", "Beta", nil)
	if !strings.Contains(steps[2], "none") {
		t.Fatalf("empty missing list should read 'none': %q", steps[2])
	}
}
