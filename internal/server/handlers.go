package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/hurttlocker/prospect/internal/analytics"
	"github.com/hurttlocker/prospect/internal/catalog"
	"github.com/hurttlocker/prospect/internal/combine"
	"github.com/hurttlocker/prospect/internal/match"
	"github.com/hurttlocker/prospect/internal/remote"
	"go.uber.org/zap"
)

const defaultMatchLimit = 5

type handlers struct {
	store   *catalog.Store
	matcher remote.Matcher
	log     *zap.Logger
}

func newHandlers(store *catalog.Store, matcher remote.Matcher, log *zap.Logger) *handlers {
	return &handlers{store: store, matcher: matcher, log: log}
}

type similarRequest struct {
	Idea  string `json:"idea"`
	Limit int    `json:"limit"`
}

type similarResponse struct {
	Success    bool        `json:"success"`
	Matches    []wireMatch `json:"matches"`
	TotalFound int         `json:"total_found"`
	Error      string      `json:"error,omitempty"`
}

// wireMatch is the flat match shape served over the API, mirroring the
// schema the remote client consumes.
type wireMatch struct {
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

func (h *handlers) handleSimilarProjects(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, similarResponse{Error: "method not allowed"})
		return
	}

	var req similarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, similarResponse{Error: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Idea) == "" {
		writeJSON(w, http.StatusBadRequest, similarResponse{Error: "please provide an idea"})
		return
	}
	if req.Limit <= 0 {
		req.Limit = defaultMatchLimit
	}

	h.log.Debug("similar-projects request", zap.Int("limit", req.Limit))
	matches := h.matcher.FindSimilar(r.Context(), req.Idea, req.Limit)

	wire := make([]wireMatch, 0, len(matches))
	for _, m := range matches {
		wire = append(wire, toWireMatch(m))
	}
	writeJSON(w, http.StatusOK, similarResponse{
		Success:    true,
		Matches:    wire,
		TotalFound: len(wire),
	})
}

func (h *handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "healthy",
		"service":        "Prospect Match Service",
		"total_projects": h.store.Count(r.Context()),
	})
}

func (h *handlers) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	snapshot := analytics.Aggregate(h.store.Load(r.Context()))
	writeJSON(w, http.StatusOK, snapshot)
}

func (h *handlers) handleProject(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing query parameter 'id'"})
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	rec, ok := h.store.ByID(r.Context(), id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "project not found"})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *handlers) handleCombinations(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing query parameter 'id'"})
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	rec, ok := h.store.ByID(r.Context(), id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "project not found"})
		return
	}

	combos := combine.Suggest(rec, h.store.Load(r.Context()))
	writeJSON(w, http.StatusOK, map[string]any{
		"combinations": combos,
		"total":        len(combos),
	})
}

func toWireMatch(m match.ProjectMatch) wireMatch {
	return wireMatch{
		ID:                    m.Project.ID,
		Name:                  m.Project.Name,
		Description:           m.Project.Description,
		AISummary:             m.Project.AISummary,
		GithubURL:             m.Project.GithubURL,
		ProjectURL:            m.Project.ProjectURL,
		DemoURL:               m.Project.DemoURL,
		GithubStars:           m.Project.GithubStars,
		SimilarityScore:       m.SimilarityScore,
		MatchReason:           m.MatchReason,
		IntegrationComplexity: string(m.IntegrationComplexity),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
