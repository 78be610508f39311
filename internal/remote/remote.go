// Package remote delegates idea matching to an external semantic-search
// service, falling back to the local ranker whenever the service is
// unhealthy or misbehaves.
//
// The fallback policy lives here as a strategy pair — LocalRanker and
// Client both satisfy Matcher — so it can be tested independently of any
// call site. A remote outage is never surfaced to the caller as an
// error, only as a log line.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hurttlocker/prospect/internal/catalog"
	"github.com/hurttlocker/prospect/internal/match"
	"go.uber.org/zap"
)

// defaultTimeout bounds each of the two network round-trips (health
// probe, match call). Expiry is treated as "unhealthy".
const defaultTimeout = 10 * time.Second

// Matcher finds projects similar to a free-text idea.
type Matcher interface {
	FindSimilar(ctx context.Context, ideaText string, limit int) []match.ProjectMatch
}

// LocalRanker is the Matcher over the locally cached snapshot.
type LocalRanker struct {
	store  *catalog.Store
	ranker *match.Ranker
}

// NewLocalRanker creates the local matching strategy.
func NewLocalRanker(store *catalog.Store, ranker *match.Ranker) *LocalRanker {
	return &LocalRanker{store: store, ranker: ranker}
}

// FindSimilar ranks the cached snapshot against the idea.
func (l *LocalRanker) FindSimilar(ctx context.Context, ideaText string, limit int) []match.ProjectMatch {
	return l.ranker.Rank(ideaText, l.store.Load(ctx), limit)
}

// Client is the Matcher backed by the remote match API.
type Client struct {
	baseURL  string
	http     *http.Client
	fallback Matcher
	log      *zap.Logger
}

// NewClient creates a remote matcher that falls back to the given local
// strategy on any failure.
func NewClient(baseURL string, fallback Matcher, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: defaultTimeout},
		fallback: fallback,
		log:      log,
	}
}

type matchRequest struct {
	Idea  string `json:"idea"`
	Limit int    `json:"limit"`
}

type matchResponse struct {
	Success    bool         `json:"success"`
	Matches    []remoteHit  `json:"matches"`
	TotalFound int          `json:"total_found"`
	Error      string       `json:"error,omitempty"`
}

// remoteHit is the remote service's flatter match schema.
type remoteHit struct {
	ID                    int     `json:"id"`
	Name                  string  `json:"name"`
	Description           string  `json:"description"`
	AISummary             string  `json:"ai_summary"`
	GithubURL             string  `json:"github_url"`
	ProjectURL            string  `json:"project_url"`
	DemoURL               string  `json:"demo_url"`
	GithubStars           int     `json:"github_stars"`
	SimilarityScore       float64 `json:"similarity_score"`
	MatchReason           string  `json:"match_reason"`
	IntegrationComplexity string  `json:"integration_complexity"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// FindSimilar asks the remote service for matches, falling back to the
// local ranker when the health probe fails or the match call errors.
func (c *Client) FindSimilar(ctx context.Context, ideaText string, limit int) []match.ProjectMatch {
	if !c.Healthy(ctx) {
		c.log.Warn("remote matcher unhealthy, using local ranking")
		return c.fallback.FindSimilar(ctx, ideaText, limit)
	}

	hits, err := c.requestMatches(ctx, ideaText, limit)
	if err != nil {
		c.log.Warn("remote match call failed, using local ranking", zap.Error(err))
		return c.fallback.FindSimilar(ctx, ideaText, limit)
	}

	matches := make([]match.ProjectMatch, 0, len(hits))
	for _, hit := range hits {
		matches = append(matches, translateHit(hit))
	}
	return matches
}

// Healthy probes GET /api/health. Any transport error, non-200 status,
// or a status payload other than "healthy" means not healthy.
func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false
	}

	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return false
	}
	return health.Status == "healthy"
}

func (c *Client) requestMatches(ctx context.Context, ideaText string, limit int) ([]remoteHit, error) {
	body, err := json.Marshal(matchRequest{Idea: ideaText, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/similar-projects", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("match API status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed matchResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if !parsed.Success {
		return nil, fmt.Errorf("match API reported failure: %s", parsed.Error)
	}
	return parsed.Matches, nil
}

// translateHit maps the remote schema into the canonical ProjectMatch
// shape. Fields absent from the remote payload keep record defaults.
func translateHit(hit remoteHit) match.ProjectMatch {
	complexity := match.IntegrationComplexity(hit.IntegrationComplexity)
	switch complexity {
	case match.IntegrationLow, match.IntegrationMedium, match.IntegrationHigh:
	default:
		complexity = match.IntegrationMedium
	}

	return match.ProjectMatch{
		Project: catalog.ProjectRecord{
			ID:          hit.ID,
			Name:        hit.Name,
			Description: hit.Description,
			AISummary:   hit.AISummary,
			GithubURL:   hit.GithubURL,
			ProjectURL:  hit.ProjectURL,
			DemoURL:     hit.DemoURL,
			GithubStars: hit.GithubStars,
		},
		SimilarityScore:       hit.SimilarityScore,
		MatchReason:           hit.MatchReason,
		IntegrationComplexity: complexity,
	}
}
