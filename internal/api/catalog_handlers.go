package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/terra-clan/content-engine/internal/coverage"
	"github.com/terra-clan/content-engine/internal/crosslinks"
	"github.com/terra-clan/content-engine/internal/models"
	"github.com/terra-clan/content-engine/internal/routes"
)

// Catalog handlers: DSA concepts, learning paths, patterns, coverage and routes

func (s *Server) handleListDSAConcepts(w http.ResponseWriter, r *http.Request) {
	concepts := s.engine.Paths.Concepts()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"concepts": concepts,
		"total":    len(concepts),
	})
}

func (s *Server) handleGetDSAConcept(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	concept := s.engine.Paths.Concept(id)
	if concept == nil {
		respondError(w, http.StatusNotFound, "not_found", "dsa concept not found")
		return
	}
	respondJSON(w, http.StatusOK, concept)
}

// stageView is a learning path stage with its problems expanded
type stageView struct {
	Stage    string           `json:"stage"`
	Problems []problemSummary `json:"problems"`
}

type problemSummary struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Difficulty models.Difficulty `json:"difficulty"`
	Href       string            `json:"href"`
	HasConcept bool              `json:"hasConcept"`
}

func (s *Server) handleLearningPath(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if s.engine.Paths.Concept(id) == nil {
		respondError(w, http.StatusNotFound, "not_found", "dsa concept not found")
		return
	}

	stages, ok := s.engine.Paths.LearningPath(id)
	if !ok {
		respondError(w, http.StatusNotFound, "learning_path_not_found", "dsa concept has no learning path")
		return
	}

	views := make([]stageView, len(stages))
	for i, stage := range stages {
		views[i] = stageView{Stage: stage.Name, Problems: make([]problemSummary, 0, len(stage.ProblemIDs))}
		for _, ref := range stage.ProblemIDs {
			p := s.engine.Catalog.Lookup(ref)
			views[i].Problems = append(views[i].Problems, problemSummary{
				ID:         p.ID,
				Name:       p.Name,
				Difficulty: p.Difficulty,
				Href:       crosslinks.ProblemHref(p),
				HasConcept: s.engine.Concepts.Has(p.ID),
			})
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"conceptId": id,
		"stages":    views,
	})
}

func (s *Server) handleListPatterns(w http.ResponseWriter, r *http.Request) {
	patterns := s.engine.CrossLinks.Patterns()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"patterns": patterns,
		"total":    len(patterns),
	})
}

// handleRelatedProblems accepts pattern and DSA concept ids alike; an id with
// nothing declared yields an empty list rather than 404
func (s *Server) handleRelatedProblems(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	links := s.engine.CrossLinks.RelatedProblems(id)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"links": links,
		"total": len(links),
	})
}

// Coverage and routes

type coverageReport struct {
	Live       coverage.Metrics        `json:"live"`
	Baseline   models.CoverageBaseline `json:"baseline"`
	Passed     bool                    `json:"passed"`
	Violations []coverage.Violation    `json:"violations"`
}

func (s *Server) handleCoverage(w http.ResponseWriter, r *http.Request) {
	report := coverageReport{
		Live:       s.engine.Coverage(),
		Baseline:   s.engine.Baseline(),
		Passed:     true,
		Violations: []coverage.Violation{},
	}

	var regression *coverage.RegressionError
	if err := s.engine.CheckCoverage(); errors.As(err, &regression) {
		report.Passed = false
		report.Violations = regression.Violations
	}

	respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	kind := routes.Kind(r.URL.Query().Get("kind"))
	if kind != "" && kind != routes.KindProblem && kind != routes.KindConcept {
		respondError(w, http.StatusBadRequest, "validation_error", "kind must be problem or concept")
		return
	}

	all := s.engine.Routes.All()
	result := make([]routes.Route, 0, len(all))
	for _, route := range all {
		if kind == "" || route.Kind == kind {
			result = append(result, route)
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"routes": result,
		"total":  len(result),
	})
}
