package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/terra-clan/content-engine/internal/crosslinks"
	"github.com/terra-clan/content-engine/internal/models"
	"github.com/terra-clan/content-engine/internal/taxonomy"
)

// Response helpers

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// problemView is a problem with its derived taxonomy
type problemView struct {
	*models.Problem
	EffectiveTags []string `json:"effectiveTags"`
	RouteTags     []string `json:"routeTags"`
	IsDSA         bool     `json:"isDsa"`
	HasConcept    bool     `json:"hasConcept"`
	Href          string   `json:"href"`
}

func (s *Server) viewProblem(p *models.Problem) problemView {
	return problemView{
		Problem:       p,
		EffectiveTags: s.engine.Taxonomy.EffectiveTags(p),
		RouteTags:     s.engine.Taxonomy.RouteTags(p),
		IsDSA:         s.engine.Taxonomy.IsDSA(p),
		HasConcept:    s.engine.Concepts.Has(p.ID),
		Href:          crosslinks.ProblemHref(p),
	}
}

func (s *Server) viewProblems(problems []*models.Problem) []problemView {
	views := make([]problemView, len(problems))
	for i, p := range problems {
		views[i] = s.viewProblem(p)
	}
	return views
}

// validDifficulty accepts the filter sentinels as well as real difficulties
func validDifficulty(d string) bool {
	return d == "" || d == taxonomy.FilterAll || models.Difficulty(d).IsValid()
}

// Health handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.engine == nil {
		respondError(w, http.StatusServiceUnavailable, "not_ready", "content not loaded")
		return
	}

	status := map[string]interface{}{
		"status":   "ready",
		"problems": s.engine.Catalog.Len(),
		"cache":    "disabled",
	}

	// The cache is optional; a failing cache degrades latency, not correctness
	if s.cache != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.cache.HealthCheck(ctx); err != nil {
			slog.Warn("response cache unhealthy", "error", err)
			status["cache"] = "unavailable"
		} else {
			status["cache"] = "ok"
		}
	}

	respondJSON(w, http.StatusOK, status)
}

// Problem handlers

func (s *Server) handleListProblems(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("tag")
	difficulty := r.URL.Query().Get("difficulty")

	if tag != "" && tag != taxonomy.FilterAll && !s.engine.Taxonomy.IsKnownTag(tag) {
		respondError(w, http.StatusBadRequest, "validation_error", "unknown category: "+tag)
		return
	}
	if !validDifficulty(difficulty) {
		respondError(w, http.StatusBadRequest, "validation_error", "difficulty must be one of easy, medium, hard, all")
		return
	}

	problems := s.viewProblems(s.engine.Taxonomy.Filter(tag, difficulty))
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"problems": problems,
		"total":    len(problems),
	})
}

func (s *Server) handleGetProblem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p := s.engine.Problem(id)
	if p == nil {
		respondError(w, http.StatusNotFound, "not_found", "problem not found")
		return
	}

	respondJSON(w, http.StatusOK, s.viewProblem(p))
}

func (s *Server) handleGetProblemConcept(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if s.engine.Problem(id) == nil {
		respondError(w, http.StatusNotFound, "not_found", "problem not found")
		return
	}

	analysis, ok := s.engine.Concepts.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "concept_not_found", "problem has no concept analysis")
		return
	}

	respondJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleRelatedPatterns(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if s.engine.Problem(id) == nil {
		respondError(w, http.StatusNotFound, "not_found", "problem not found")
		return
	}

	links := s.engine.CrossLinks.RelatedPatterns(id)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"links": links,
		"total": len(links),
	})
}

// Category handlers

type categoryView struct {
	models.Category
	ProblemCount int `json:"problemCount"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories := s.engine.Taxonomy.Categories()
	views := make([]categoryView, len(categories))
	for i, c := range categories {
		views[i] = categoryView{
			Category:     c,
			ProblemCount: len(s.engine.Taxonomy.ByTag(c.ID)),
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": views,
		"total":      len(views),
	})
}

func (s *Server) handleCategoryProblems(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")
	difficulty := r.URL.Query().Get("difficulty")

	if !s.engine.Taxonomy.IsKnownTag(tag) {
		respondError(w, http.StatusNotFound, "not_found", "category not found")
		return
	}
	if !validDifficulty(difficulty) {
		respondError(w, http.StatusBadRequest, "validation_error", "difficulty must be one of easy, medium, hard, all")
		return
	}

	problems := s.viewProblems(s.engine.Taxonomy.Filter(tag, difficulty))
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"category": tag,
		"problems": problems,
		"total":    len(problems),
	})
}
