// Package paths indexes DSA concepts and their ordered learning paths.
package paths

import (
	"errors"
	"fmt"

	"github.com/terra-clan/content-engine/internal/catalog"
	"github.com/terra-clan/content-engine/internal/models"
)

var ErrEmptyStage = errors.New("learning path stage has no problems")

// Stage is a learning path stage whose problem references are resolved
type Stage struct {
	Name       string              `json:"stage"`
	ProblemIDs []catalog.ProblemID `json:"problemIds"`
}

// Index is the read-only concept id -> DSA concept lookup
type Index struct {
	concepts []*models.DSAConcept
	byID     map[string]*models.DSAConcept
	paths    map[string][]Stage
	related  map[string][]catalog.ProblemID
}

// NewIndex validates every learning path stage and related problem list
// against the catalog. All defects are reported together.
func NewIndex(cat *catalog.Catalog, concepts []models.DSAConcept) (*Index, error) {
	idx := &Index{
		byID:    make(map[string]*models.DSAConcept, len(concepts)),
		paths:   make(map[string][]Stage),
		related: make(map[string][]catalog.ProblemID),
	}

	var errs []error
	for i := range concepts {
		owned := concepts[i]
		c := &owned
		if c.ID == "" {
			errs = append(errs, fmt.Errorf("dsa concept at index %d has no id", i))
			continue
		}
		if _, exists := idx.byID[c.ID]; exists {
			errs = append(errs, fmt.Errorf("duplicate dsa concept id: %q", c.ID))
			continue
		}

		stages, stageErrs := resolveStages(cat, c)
		errs = append(errs, stageErrs...)

		related := make([]catalog.ProblemID, 0, len(c.RelatedProblems))
		for _, id := range c.RelatedProblems {
			ref, err := cat.Require(id)
			if err != nil {
				errs = append(errs, fmt.Errorf("dsa concept %q related problems: %w", c.ID, err))
				continue
			}
			related = append(related, ref)
		}

		idx.byID[c.ID] = c
		idx.concepts = append(idx.concepts, c)
		if len(stages) > 0 {
			idx.paths[c.ID] = stages
		}
		if len(related) > 0 {
			idx.related[c.ID] = related
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return idx, nil
}

func resolveStages(cat *catalog.Catalog, c *models.DSAConcept) ([]Stage, []error) {
	var errs []error
	stages := make([]Stage, 0, len(c.LearningPath))

	for _, s := range c.LearningPath {
		if len(s.ProblemIDs) == 0 {
			errs = append(errs, fmt.Errorf("dsa concept %q stage %q: %w", c.ID, s.Stage, ErrEmptyStage))
			continue
		}
		stage := Stage{Name: s.Stage, ProblemIDs: make([]catalog.ProblemID, 0, len(s.ProblemIDs))}
		for _, id := range s.ProblemIDs {
			ref, err := cat.Require(id)
			if err != nil {
				errs = append(errs, fmt.Errorf("dsa concept %q stage %q: %w", c.ID, s.Stage, err))
				continue
			}
			stage.ProblemIDs = append(stage.ProblemIDs, ref)
		}
		stages = append(stages, stage)
	}

	return stages, errs
}

// LearningPath returns the ordered stages for a concept. Absence is not an error.
func (idx *Index) LearningPath(conceptID string) ([]Stage, bool) {
	stages, ok := idx.paths[conceptID]
	if !ok {
		return nil, false
	}
	result := make([]Stage, len(stages))
	copy(result, stages)
	return result, true
}

// RelatedProblems returns the concept's explicitly related problems
func (idx *Index) RelatedProblems(conceptID string) []catalog.ProblemID {
	return idx.related[conceptID]
}

// Concept returns a DSA concept by ID, or nil if not found
func (idx *Index) Concept(id string) *models.DSAConcept {
	return idx.byID[id]
}

// Concepts returns all DSA concepts in declaration order
func (idx *Index) Concepts() []*models.DSAConcept {
	result := make([]*models.DSAConcept, len(idx.concepts))
	copy(result, idx.concepts)
	return result
}
