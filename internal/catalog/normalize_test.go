package catalog

import "testing"

func normalizeOne(header []string, cells []string) ProjectRecord {
	return normalizeRow(0, newHeaderIndex(header), cells)
}

func TestNormalizeDetailedDescriptionFallsBackToDescription(t *testing.T) {
	rec := normalizeOne(
		[]string{"name", "description"},
		[]string{"Alpha", "short blurb"},
	)
	if rec.DetailedDescription != "short blurb" {
		t.Fatalf("got %q", rec.DetailedDescription)
	}
}

func TestNormalizeStripsQuotesAndTrims(t *testing.T) {
	rec := normalizeOne(
		[]string{`"name"`, "description"},
		[]string{`  "Quoted Name"  `, " padded "},
	)
	if rec.Name != "Quoted Name" {
		t.Fatalf("got name %q", rec.Name)
	}
	if rec.Description != "padded" {
		t.Fatalf("got description %q", rec.Description)
	}
}

func TestNormalizeFloatStarsTruncateToInt(t *testing.T) {
	rec := normalizeOne(
		[]string{"name", "github_stars"},
		[]string{"Alpha", "42.0"},
	)
	if rec.GithubStars != 42 {
		t.Fatalf("got %d stars", rec.GithubStars)
	}
}

func TestNormalizeInvalidStarsDefaultToZero(t *testing.T) {
	rec := normalizeOne(
		[]string{"name", "github_stars"},
		[]string{"Alpha", "lots"},
	)
	if rec.GithubStars != 0 {
		t.Fatalf("got %d stars, want 0", rec.GithubStars)
	}
}

func TestNormalizeUsesSourceCoordinatesWhenPresent(t *testing.T) {
	rec := normalizeOne(
		[]string{"name", "x", "y", "z"},
		[]string{"Alpha", "1.5", "-2.25", "3"},
	)
	if rec.X != 1.5 || rec.Y != -2.25 || rec.Z != 3 {
		t.Fatalf("got coordinates (%f, %f, %f)", rec.X, rec.Y, rec.Z)
	}
}

func TestNormalizePartialCoordinatesFallBackToSynthetic(t *testing.T) {
	rec := normalizeOne(
		[]string{"name", "x"},
		[]string{"Alpha", "1.5"},
	)
	wantX, wantY, wantZ := syntheticCoordinates("Alpha")
	if rec.X != wantX || rec.Y != wantY || rec.Z != wantZ {
		t.Fatal("partial coordinate columns should be ignored entirely")
	}
}

func TestNormalizeUnknownColumnsIgnored(t *testing.T) {
	rec := normalizeOne(
		[]string{"name", "mystery_column"},
		[]string{"Alpha", "whatever"},
	)
	if rec.Name != "Alpha" {
		t.Fatalf("got %q", rec.Name)
	}
}

func TestNormalizeFrameworksAliases(t *testing.T) {
	rec := normalizeOne(
		[]string{"name", "technologies.frameworks"},
		[]string{"Alpha", "React|Next.js"},
	)
	if rec.Frameworks != "React|Next.js" {
		t.Fatalf("alias technologies.frameworks not applied: %q", rec.Frameworks)
	}
}
