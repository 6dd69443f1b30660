// Package routes lists the site paths each problem is reachable under.
package routes

import (
	"github.com/terra-clan/content-engine/internal/catalog"
	"github.com/terra-clan/content-engine/internal/concepts"
	"github.com/terra-clan/content-engine/internal/models"
	"github.com/terra-clan/content-engine/internal/taxonomy"
)

// Kind separates practice pages from concept visualization pages
type Kind string

const (
	KindProblem Kind = "problem"
	KindConcept Kind = "concept"
)

// Route is one reachable page
type Route struct {
	Kind      Kind   `json:"kind"`
	Category  string `json:"category"`
	ProblemID string `json:"problemId"`
	Path      string `json:"path"`
}

// Builder derives routes from the taxonomy and concept registry
type Builder struct {
	catalog  *catalog.Catalog
	resolver *taxonomy.Resolver
	registry *concepts.Registry
}

// NewBuilder creates a route builder
func NewBuilder(cat *catalog.Catalog, resolver *taxonomy.Resolver, registry *concepts.Registry) *Builder {
	return &Builder{catalog: cat, resolver: resolver, registry: registry}
}

// ProblemRoutes returns /{tag}/{id} for every route tag of the problem
func (b *Builder) ProblemRoutes(p *models.Problem) []Route {
	tags := b.resolver.RouteTags(p)
	result := make([]Route, 0, len(tags))
	for _, tag := range tags {
		result = append(result, Route{
			Kind:      KindProblem,
			Category:  tag,
			ProblemID: p.ID,
			Path:      "/" + tag + "/" + p.ID,
		})
	}
	return result
}

// ConceptRoutes returns /{tag}/{id}/concept for a concept-mapped problem.
// Problems without a concept analysis have none.
func (b *Builder) ConceptRoutes(problemID string) []Route {
	p := b.catalog.Get(problemID)
	if p == nil || !b.registry.Has(problemID) {
		return nil
	}
	tags := b.resolver.RouteTags(p)
	result := make([]Route, 0, len(tags))
	for _, tag := range tags {
		result = append(result, Route{
			Kind:      KindConcept,
			Category:  tag,
			ProblemID: p.ID,
			Path:      "/" + tag + "/" + p.ID + "/concept",
		})
	}
	return result
}

// All returns every problem route followed by every concept route, in catalog order
func (b *Builder) All() []Route {
	var problemRoutes, conceptRoutes []Route
	for _, p := range b.catalog.Problems() {
		problemRoutes = append(problemRoutes, b.ProblemRoutes(p)...)
		conceptRoutes = append(conceptRoutes, b.ConceptRoutes(p.ID)...)
	}
	return append(problemRoutes, conceptRoutes...)
}
