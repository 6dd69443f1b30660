// Package crosslinks derives best-effort links between problems, patterns
// and DSA concepts. Unresolvable ids are dropped; nothing here fails.
package crosslinks

import (
	"slices"
	"strings"

	"github.com/terra-clan/content-engine/internal/catalog"
	"github.com/terra-clan/content-engine/internal/concepts"
	"github.com/terra-clan/content-engine/internal/models"
	"github.com/terra-clan/content-engine/internal/paths"
)

// Resolver composes catalog, concept registry and learning path lookups
type Resolver struct {
	catalog  *catalog.Catalog
	registry *concepts.Registry
	index    *paths.Index
	patterns []models.DSAPattern
	byID     map[string]int
}

// NewResolver creates a cross-link resolver over the given pattern table
func NewResolver(cat *catalog.Catalog, registry *concepts.Registry, index *paths.Index, patterns []models.DSAPattern) *Resolver {
	r := &Resolver{
		catalog:  cat,
		registry: registry,
		index:    index,
		patterns: make([]models.DSAPattern, len(patterns)),
		byID:     make(map[string]int, len(patterns)),
	}
	copy(r.patterns, patterns)
	for i, p := range r.patterns {
		if _, dup := r.byID[p.ID]; !dup {
			r.byID[p.ID] = i
		}
	}
	return r
}

// Pattern returns a pattern by ID
func (r *Resolver) Pattern(id string) (models.DSAPattern, bool) {
	i, ok := r.byID[id]
	if !ok {
		return models.DSAPattern{}, false
	}
	return r.patterns[i], true
}

// Patterns returns the pattern table in declaration order
func (r *Resolver) Patterns() []models.DSAPattern {
	result := make([]models.DSAPattern, len(r.patterns))
	copy(result, r.patterns)
	return result
}

// RelatedProblems returns display records for problems related to a pattern
// or DSA concept id. Problems whose concept analysis uses the pattern come
// first, then the explicit relation tables. Unknown keys yield an empty list.
func (r *Resolver) RelatedProblems(key string) []models.CrossLink {
	var ids []string

	if pattern, ok := r.Pattern(key); ok {
		for _, ref := range r.registry.ByPattern(pattern.ID) {
			ids = append(ids, ref.String())
		}
		ids = append(ids, pattern.RelatedProblems...)
	}
	if r.index != nil {
		for _, ref := range r.index.RelatedProblems(key) {
			ids = append(ids, ref.String())
		}
	}

	links := []models.CrossLink{}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		problem := r.catalog.Get(id)
		if problem == nil {
			continue
		}
		links = append(links, models.CrossLink{
			Type:        models.CrossLinkProblem,
			ID:          problem.ID,
			Name:        problem.Name,
			Href:        ProblemHref(problem),
			Description: problem.Description,
		})
	}
	return links
}

// RelatedPatterns returns the patterns a problem's concept analysis belongs
// to, plus any pattern that lists the problem explicitly.
func (r *Resolver) RelatedPatterns(problemID string) []models.CrossLink {
	links := []models.CrossLink{}

	analysis, hasAnalysis := r.registry.Get(problemID)
	for _, p := range r.patterns {
		matched := false
		if hasAnalysis {
			matched = p.ID == analysis.Pattern.Base() || strings.HasPrefix(string(analysis.Pattern), p.ID)
		}
		if !matched && !slices.Contains(p.RelatedProblems, problemID) {
			continue
		}
		links = append(links, models.CrossLink{
			Type:        models.CrossLinkPattern,
			ID:          p.ID,
			Name:        p.Name,
			Href:        PatternHref(p),
			Description: p.Description,
		})
	}
	return links
}

// Links is the unified getter: problem contexts get patterns, pattern or
// concept contexts get problems.
func (r *Resolver) Links(kind models.CrossLinkType, id string) (patterns, problems []models.CrossLink) {
	if kind == models.CrossLinkProblem {
		return r.RelatedPatterns(id), []models.CrossLink{}
	}
	return []models.CrossLink{}, r.RelatedProblems(id)
}

// ProblemHref is the practice page path under the problem's primary category
func ProblemHref(p *models.Problem) string {
	return "/" + p.Category + "/" + p.ID
}

// PatternHref is the pattern page path
func PatternHref(p models.DSAPattern) string {
	slug := p.Slug
	if slug == "" {
		slug = p.ID
	}
	return "/concepts/dsa/patterns/" + slug
}
