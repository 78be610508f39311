package classify

import (
	"strings"
	"testing"
)

func TestClassifyCRMIdea(t *testing.T) {
	analysis := Classify("I want to build a CRM tool with AI lead scoring")

	if analysis.Category != "CRM/Business Tools" {
		t.Fatalf("got category %q, want CRM/Business Tools", analysis.Category)
	}
}

func TestCategorizeFirstMatchWins(t *testing.T) {
	// Text hits both CRM ("crm") and AI/ML ("ai"); CRM is earlier in the
	// rule table and must win.
	if got := Categorize("an ai crm assistant"); got != "CRM/Business Tools" {
		t.Fatalf("got %q, expected the earlier rule to win", got)
	}
}

func TestCategorizeDefaultSentinel(t *testing.T) {
	if got := Categorize("knitting pattern organizer"); got != DefaultCategory {
		t.Fatalf("got %q, want %q", got, DefaultCategory)
	}
}

func TestCategorizeIsCaseInsensitive(t *testing.T) {
	if got := Categorize("A PATIENT PORTAL"); got != "Healthcare" {
		t.Fatalf("got %q, want Healthcare", got)
	}
}

func TestClassifyExtractsTechnologiesAndFeatures(t *testing.T) {
	analysis := Classify("React dashboard with Postgres and real-time chat")

	wantTechs := map[string]bool{"react": true, "postgres": true}
	for _, tech := range analysis.Technologies {
		delete(wantTechs, tech)
	}
	if len(wantTechs) != 0 {
		t.Fatalf("missing technologies %v in %v", wantTechs, analysis.Technologies)
	}

	foundChat := false
	for _, f := range analysis.Features {
		if f == "chat" {
			foundChat = true
		}
	}
	if !foundChat {
		t.Fatalf("expected chat feature, got %v", analysis.Features)
	}
}

func TestClassifyTermsAppearAtMostOnce(t *testing.T) {
	analysis := Classify("react react react with more react")

	seen := map[string]int{}
	for _, tech := range analysis.Technologies {
		seen[tech]++
	}
	if seen["react"] != 1 {
		t.Fatalf("react extracted %d times", seen["react"])
	}
}

func TestDeriveComplexityBoundaries(t *testing.T) {
	cases := []struct {
		techs, features int
		want            Complexity
	}{
		{0, 0, ComplexityLow},
		{1, 2, ComplexityLow},
		{2, 0, ComplexityMedium},
		{0, 3, ComplexityMedium},
		{4, 5, ComplexityMedium},
		{5, 0, ComplexityHigh},
		{0, 6, ComplexityHigh},
	}
	for _, tc := range cases {
		if got := deriveComplexity(tc.techs, tc.features); got != tc.want {
			t.Fatalf("deriveComplexity(%d, %d) = %s, want %s", tc.techs, tc.features, got, tc.want)
		}
	}
}

func TestEstimatedTimeTableCoversAllComplexities(t *testing.T) {
	for _, c := range []Complexity{ComplexityLow, ComplexityMedium, ComplexityHigh} {
		if estimatedTimeByComplexity[c] == "" {
			t.Fatalf("no time estimate for %s", c)
		}
	}
}

func TestKeyComponentsBaseTriad(t *testing.T) {
	analysis := Classify("simple todo list")

	want := []string{"Frontend", "Backend", "Database"}
	if len(analysis.KeyComponents) != len(want) {
		t.Fatalf("got %v, want just the base triad", analysis.KeyComponents)
	}
	for i, c := range want {
		if analysis.KeyComponents[i] != c {
			t.Fatalf("component %d: got %q want %q", i, analysis.KeyComponents[i], c)
		}
	}
}

func TestKeyComponentsConditionalServices(t *testing.T) {
	analysis := Classify("real-time analytics dashboard with gpt summaries")

	joined := strings.Join(analysis.KeyComponents, ",")
	for _, want := range []string{"AI Service", "WebSocket Service", "Analytics Service"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing %q in %v", want, analysis.KeyComponents)
		}
	}
}

func TestKeywordsFor(t *testing.T) {
	if kws := KeywordsFor("CRM/Business Tools"); len(kws) == 0 {
		t.Fatal("expected keywords for a known label")
	}
	if kws := KeywordsFor(DefaultCategory); kws != nil {
		t.Fatalf("sentinel category has no keywords, got %v", kws)
	}
}

func TestTaxonomyOrderIsStable(t *testing.T) {
	// The ordered table is part of the contract; pin the first rule so a
	// reorder fails loudly instead of silently changing classifications.
	if CategoryRules[0].Label != "CRM/Business Tools" {
		t.Fatalf("first rule is %q; reordering the taxonomy changes outcomes", CategoryRules[0].Label)
	}
}
