// Package export writes one-shot snapshot artifacts of the catalog.
//
// The live system is strictly in-memory; export exists for downstream
// analysis (SQL over the records, archived analytics runs), not as a
// storage layer behind the core.
package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hurttlocker/prospect/internal/analytics"
	"github.com/hurttlocker/prospect/internal/catalog"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	detailed_description TEXT NOT NULL DEFAULT '',
	ai_summary TEXT NOT NULL DEFAULT '',
	project_url TEXT NOT NULL DEFAULT '',
	demo_url TEXT NOT NULL DEFAULT '',
	github_url TEXT NOT NULL DEFAULT '',
	github_stars INTEGER NOT NULL DEFAULT 0,
	contributors TEXT NOT NULL DEFAULT '',
	technologies_list TEXT NOT NULL DEFAULT '',
	frameworks_inferred TEXT NOT NULL DEFAULT '',
	ai_models_inferred TEXT NOT NULL DEFAULT '',
	vector_db_inferred TEXT NOT NULL DEFAULT '',
	infrastructure_inferred TEXT NOT NULL DEFAULT '',
	features_list TEXT NOT NULL DEFAULT '',
	risks TEXT NOT NULL DEFAULT '',
	date TEXT NOT NULL DEFAULT '',
	x REAL NOT NULL DEFAULT 0,
	y REAL NOT NULL DEFAULT 0,
	z REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS axis_entries (
	axis TEXT NOT NULL,
	name TEXT NOT NULL,
	count INTEGER NOT NULL,
	percentage INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS insights (
	kind TEXT NOT NULL,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Result summarizes what an export wrote.
type Result struct {
	Path     string
	Projects int
	Axes     int
	Insights int
}

// WriteSnapshot writes the records and a freshly computed analytics
// snapshot to a SQLite file at path, replacing any existing file.
func WriteSnapshot(ctx context.Context, path string, records []catalog.ProjectRecord) (*Result, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("removing previous export: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening export database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res := &Result{Path: path}

	insertProject, err := tx.PrepareContext(ctx, `
		INSERT INTO projects (
			id, name, description, detailed_description, ai_summary,
			project_url, demo_url, github_url, github_stars, contributors,
			technologies_list, frameworks_inferred, ai_models_inferred,
			vector_db_inferred, infrastructure_inferred, features_list,
			risks, date, x, y, z
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return nil, fmt.Errorf("preparing project insert: %w", err)
	}
	defer insertProject.Close()

	for i := range records {
		r := &records[i]
		if _, err := insertProject.ExecContext(ctx,
			r.ID, r.Name, r.Description, r.DetailedDescription, r.AISummary,
			r.ProjectURL, r.DemoURL, r.GithubURL, r.GithubStars, r.Contributors,
			r.Technologies, r.Frameworks, r.AIModels,
			r.VectorDBs, r.Infrastructure, r.Features,
			r.Risks, r.Date, r.X, r.Y, r.Z,
		); err != nil {
			return nil, fmt.Errorf("inserting project %d: %w", r.ID, err)
		}
		res.Projects++
	}

	snapshot := analytics.Aggregate(records)
	for axis, entries := range map[string][]analytics.AxisEntry{
		"frameworks":     snapshot.Frameworks,
		"ai_models":      snapshot.AIModels,
		"vector_dbs":     snapshot.VectorDBs,
		"infrastructure": snapshot.Infrastructure,
	} {
		for _, e := range entries {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO axis_entries (axis, name, count, percentage) VALUES (?,?,?,?)`,
				axis, e.Name, e.Count, e.Percentage,
			); err != nil {
				return nil, fmt.Errorf("inserting axis entry: %w", err)
			}
			res.Axes++
		}
	}

	for kind, values := range map[string][]string{
		"gap":               snapshot.Insights.Gaps,
		"opportunity":       snapshot.Insights.Opportunities,
		"trending_tech":     snapshot.Insights.TrendingTechs,
		"emerging_category": snapshot.Insights.EmergingCategories,
	} {
		for _, v := range values {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO insights (kind, value) VALUES (?,?)`, kind, v,
			); err != nil {
				return nil, fmt.Errorf("inserting insight: %w", err)
			}
			res.Insights++
		}
	}

	meta := map[string]string{
		"generated_at":    snapshot.GeneratedAt.UTC().Format(time.RFC3339),
		"total_projects":  fmt.Sprintf("%d", snapshot.Stats.TotalProjects),
		"total_stars":     fmt.Sprintf("%d", snapshot.Stats.TotalStars),
		"avg_stars":       fmt.Sprintf("%d", snapshot.Stats.AvgStars),
		"recent_projects": fmt.Sprintf("%d", snapshot.Stats.RecentProjects),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO snapshot_meta (key, value) VALUES (?,?)`, k, v,
		); err != nil {
			return nil, fmt.Errorf("inserting meta: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing export: %w", err)
	}
	return res, nil
}
