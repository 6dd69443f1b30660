// Package engine builds every read-only content component from a loaded
// content directory. An Engine is immutable once New returns and is safe for
// concurrent use.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/terra-clan/content-engine/internal/catalog"
	"github.com/terra-clan/content-engine/internal/concepts"
	"github.com/terra-clan/content-engine/internal/content"
	"github.com/terra-clan/content-engine/internal/coverage"
	"github.com/terra-clan/content-engine/internal/crosslinks"
	"github.com/terra-clan/content-engine/internal/models"
	"github.com/terra-clan/content-engine/internal/paths"
	"github.com/terra-clan/content-engine/internal/routes"
	"github.com/terra-clan/content-engine/internal/taxonomy"
)

// Engine holds the wired components
type Engine struct {
	Catalog    *catalog.Catalog
	Taxonomy   *taxonomy.Resolver
	Concepts   *concepts.Registry
	Paths      *paths.Index
	CrossLinks *crosslinks.Resolver
	Routes     *routes.Builder

	baseline models.CoverageBaseline
	metrics  coverage.Metrics
}

// New wires the components in dependency order. Any integrity failure
// aborts construction; authoring defects collected by the loader are not
// re-checked here.
func New(c *content.Content) (*Engine, error) {
	cat, err := catalog.New(c.Problems)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}

	resolver, err := taxonomy.NewResolver(cat, c.Categories)
	if err != nil {
		return nil, fmt.Errorf("failed to build taxonomy: %w", err)
	}

	var errs []error

	registry, err := concepts.NewRegistry(cat, c.Concepts)
	if err != nil {
		errs = append(errs, fmt.Errorf("concept registry: %w", err))
	}

	index, err := paths.NewIndex(cat, c.DSAConcepts)
	if err != nil {
		errs = append(errs, fmt.Errorf("learning paths: %w", err))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	e := &Engine{
		Catalog:    cat,
		Taxonomy:   resolver,
		Concepts:   registry,
		Paths:      index,
		CrossLinks: crosslinks.NewResolver(cat, registry, index, c.Patterns),
		Routes:     routes.NewBuilder(cat, resolver, registry),
		baseline:   c.Baseline,
	}
	e.metrics = coverage.Compute(resolver, registry)

	slog.Info("engine ready",
		"problems", cat.Len(),
		"dsa_problems", e.metrics.DSAProblemCount,
		"concepts", registry.Len(),
		"unmapped_dsa", e.metrics.UnmappedDSAProblemCount,
	)
	return e, nil
}

// Load reads dir and builds an Engine. With strict set, authoring defects
// fail the load; otherwise they are logged and the engine is built anyway.
func Load(dir string, strict bool) (*Engine, *content.Content, error) {
	c, err := content.Load(dir)
	if err != nil {
		return nil, nil, err
	}

	if err := c.Err(); err != nil {
		if strict {
			return nil, c, err
		}
		for _, d := range c.Defects {
			slog.Warn("content defect", "file", d.File, "ref", d.Ref, "message", d.Message)
		}
	}

	e, err := New(c)
	if err != nil {
		return nil, c, err
	}
	return e, c, nil
}

// Coverage returns the live coverage metrics
func (e *Engine) Coverage() coverage.Metrics {
	m := e.metrics
	m.UnmappedDSAProblemIDs = slices.Clone(e.metrics.UnmappedDSAProblemIDs)
	return m
}

// Baseline returns the checked-in coverage baseline
func (e *Engine) Baseline() models.CoverageBaseline {
	return e.baseline
}

// CheckCoverage compares live metrics with the baseline
func (e *Engine) CheckCoverage() error {
	return coverage.Check(e.metrics, e.baseline)
}

// Problem returns a problem by ID, nil if not found
func (e *Engine) Problem(id string) *models.Problem {
	return e.Catalog.Get(id)
}
