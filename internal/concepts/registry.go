// Package concepts maps problems to their stepwise concept analyses.
package concepts

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/terra-clan/content-engine/internal/catalog"
	"github.com/terra-clan/content-engine/internal/models"
)

// Registry is the read-only problem -> concept analysis map
type Registry struct {
	catalog  *catalog.Catalog
	analyses map[string]*entry
	order    []catalog.ProblemID // catalog order
}

type entry struct {
	ref      catalog.ProblemID
	analysis models.ConceptAnalysis
}

// NewRegistry validates every key against the catalog and builds the registry.
// All dangling keys are reported together.
func NewRegistry(cat *catalog.Catalog, analyses map[string]models.ConceptAnalysis) (*Registry, error) {
	r := &Registry{
		catalog:  cat,
		analyses: make(map[string]*entry, len(analyses)),
	}

	var errs []error
	for id, analysis := range analyses {
		ref, err := cat.Require(id)
		if err != nil {
			errs = append(errs, fmt.Errorf("concept analysis: %w", err))
			continue
		}
		r.analyses[id] = &entry{ref: ref, analysis: analysis}
	}
	if len(errs) > 0 {
		sortErrors(errs)
		return nil, errors.Join(errs...)
	}

	for _, id := range cat.IDs() {
		if e, ok := r.analyses[id]; ok {
			r.order = append(r.order, e.ref)
		}
	}

	return r, nil
}

// Get returns the concept analysis for a problem. Absence is not an error.
func (r *Registry) Get(problemID string) (models.ConceptAnalysis, bool) {
	e, ok := r.analyses[problemID]
	if !ok {
		return models.ConceptAnalysis{}, false
	}
	return e.analysis, true
}

// Has reports whether the problem has a concept analysis
func (r *Registry) Has(problemID string) bool {
	_, ok := r.analyses[problemID]
	return ok
}

// IDs returns every mapped problem reference in catalog order
func (r *Registry) IDs() []catalog.ProblemID {
	result := make([]catalog.ProblemID, len(r.order))
	copy(result, r.order)
	return result
}

// Len returns the number of mapped problems
func (r *Registry) Len() int {
	return len(r.order)
}

// ByPattern returns mapped problems whose pattern starts with prefix, in catalog order
func (r *Registry) ByPattern(prefix string) []catalog.ProblemID {
	if prefix == "" {
		return nil
	}
	var result []catalog.ProblemID
	for _, ref := range r.order {
		if strings.HasPrefix(string(r.analyses[ref.String()].analysis.Pattern), prefix) {
			result = append(result, ref)
		}
	}
	return result
}

func sortErrors(errs []error) {
	sort.Slice(errs, func(i, j int) bool {
		return errs[i].Error() < errs[j].Error()
	})
}
