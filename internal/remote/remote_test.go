package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hurttlocker/prospect/internal/catalog"
	"github.com/hurttlocker/prospect/internal/match"
	"go.uber.org/zap"
)

const testCSV = `name,description,ai_summary,technologies_list,features_list,github_stars
Alpha,AI-powered CRM platform,Lead scoring for sales teams,AI|CRM,lead scoring,120
Beta,Recipe sharing app,,Vue|Firebase,upload,8
`

func newTestLocal(t *testing.T) (*catalog.Store, *match.Ranker, *LocalRanker) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "projects.csv")
	if err := os.WriteFile(path, []byte(testCSV), 0o644); err != nil {
		t.Fatalf("writing temp csv: %v", err)
	}
	store := catalog.NewStore(catalog.Source{FilePath: path}, zap.NewNop())
	ranker := match.NewRanker(nil)
	return store, ranker, NewLocalRanker(store, ranker)
}

func TestUnhealthyRemoteFallsBackToLocalRanking(t *testing.T) {
	store, ranker, local := newTestLocal(t)
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, local, zap.NewNop())
	idea := "CRM tool with AI lead scoring"

	got := client.FindSimilar(ctx, idea, 5)
	want := ranker.Rank(idea, store.Load(ctx), 5)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fallback result differs from direct local ranking (-want +got):\n%s", diff)
	}
}

func TestHealthyRemoteMatchesAreTranslated(t *testing.T) {
	_, _, local := newTestLocal(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/health":
			w.Write([]byte(`{"status":"healthy"}`))
		case "/api/similar-projects":
			w.Write([]byte(`{
				"success": true,
				"matches": [{
					"id": 7,
					"name": "RemoteHit",
					"description": "from the remote index",
					"github_stars": 33,
					"similarity_score": 87.5,
					"match_reason": "Semantic similarity",
					"integration_complexity": "low"
				}],
				"total_found": 1
			}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, local, zap.NewNop())
	got := client.FindSimilar(context.Background(), "anything", 5)

	if len(got) != 1 {
		t.Fatalf("expected 1 remote match, got %d", len(got))
	}
	m := got[0]
	if m.Project.ID != 7 || m.Project.Name != "RemoteHit" || m.Project.GithubStars != 33 {
		t.Fatalf("record fields not translated: %+v", m.Project)
	}
	if m.SimilarityScore != 87.5 || m.MatchReason != "Semantic similarity" {
		t.Fatalf("match fields not translated: %+v", m)
	}
	if m.IntegrationComplexity != match.IntegrationLow {
		t.Fatalf("got complexity %s", m.IntegrationComplexity)
	}
	// Fields absent from the remote payload keep record defaults.
	if m.Project.Technologies != "" || m.Project.Features != "" {
		t.Fatalf("absent fields must stay at defaults: %+v", m.Project)
	}
}

func TestRemoteFailurePayloadFallsBack(t *testing.T) {
	store, ranker, local := newTestLocal(t)
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/health":
			w.Write([]byte(`{"status":"healthy"}`))
		case "/api/similar-projects":
			w.Write([]byte(`{"success": false, "error": "index rebuilding"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, local, zap.NewNop())
	idea := "recipe sharing"

	got := client.FindSimilar(ctx, idea, 3)
	want := ranker.Rank(idea, store.Load(ctx), 3)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("success=false must fall back (-want +got):\n%s", diff)
	}
}

func TestHealthyProbeSemantics(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		healthy bool
	}{
		{"healthy", http.StatusOK, `{"status":"healthy"}`, true},
		{"degraded status", http.StatusOK, `{"status":"degraded"}`, false},
		{"non-200", http.StatusServiceUnavailable, `{"status":"healthy"}`, false},
		{"garbage body", http.StatusOK, `not json`, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, nil, zap.NewNop())
			if got := client.Healthy(context.Background()); got != tc.healthy {
				t.Fatalf("got healthy=%v, want %v", got, tc.healthy)
			}
		})
	}
}

func TestUnreachableRemoteIsUnhealthy(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", nil, zap.NewNop())
	if client.Healthy(context.Background()) {
		t.Fatal("unreachable endpoint must be unhealthy")
	}
}
