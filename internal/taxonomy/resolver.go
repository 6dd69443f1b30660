// Package taxonomy derives category views over the catalog: a problem's
// effective tags, DSA membership and the route categories it is reachable
// under. Every function is pure over the immutable catalog.
package taxonomy

import (
	"fmt"

	"github.com/terra-clan/content-engine/internal/catalog"
	"github.com/terra-clan/content-engine/internal/models"
)

// FilterAll disables a Filter axis
const FilterAll = "all"

// Resolver answers category questions over a catalog
type Resolver struct {
	catalog    *catalog.Catalog
	categories []models.Category
	byID       map[string]models.Category
	dsa        map[string]struct{}
}

// NewResolver builds a resolver from the category registry.
// Category ids must be unique and the synthesized dsa tag cannot be a subcategory.
func NewResolver(cat *catalog.Catalog, categories []models.Category) (*Resolver, error) {
	r := &Resolver{
		catalog:    cat,
		categories: make([]models.Category, 0, len(categories)),
		byID:       make(map[string]models.Category, len(categories)),
		dsa:        make(map[string]struct{}),
	}

	for _, c := range categories {
		if c.ID == "" {
			return nil, fmt.Errorf("category id is empty")
		}
		if _, exists := r.byID[c.ID]; exists {
			return nil, fmt.Errorf("duplicate category id: %q", c.ID)
		}
		if c.DSA {
			if c.ID == models.DSATag {
				return nil, fmt.Errorf("%q is synthesized and cannot be a DSA subcategory", models.DSATag)
			}
			r.dsa[c.ID] = struct{}{}
		}
		r.byID[c.ID] = c
		r.categories = append(r.categories, c)
	}

	return r, nil
}

// EffectiveTags returns the problem's categories when non-empty,
// otherwise the primary category alone. Order follows authoring.
func EffectiveTags(p *models.Problem) []string {
	if len(p.Categories) > 0 {
		tags := make([]string, len(p.Categories))
		copy(tags, p.Categories)
		return tags
	}
	return []string{p.Category}
}

// EffectiveTags is a convenience wrapper around the package-level function
func (r *Resolver) EffectiveTags(p *models.Problem) []string {
	return EffectiveTags(p)
}

// IsDsaSubcategory reports whether tag belongs to the DSA subcategory set
func (r *Resolver) IsDsaSubcategory(tag string) bool {
	_, ok := r.dsa[tag]
	return ok
}

// IsDSA reports whether any effective tag of p is a DSA subcategory
func (r *Resolver) IsDSA(p *models.Problem) bool {
	for _, tag := range EffectiveTags(p) {
		if r.IsDsaSubcategory(tag) {
			return true
		}
	}
	return false
}

// RouteTags returns the deduplicated effective tags plus the synthesized
// dsa tag when the problem carries a DSA subcategory.
func (r *Resolver) RouteTags(p *models.Problem) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0, len(p.Categories)+1)
	for _, tag := range EffectiveTags(p) {
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	if _, hasDSA := seen[models.DSATag]; !hasDSA && r.IsDSA(p) {
		tags = append(tags, models.DSATag)
	}
	return tags
}

// HasTag reports whether tag is one of the problem's effective tags
func HasTag(p *models.Problem, tag string) bool {
	for _, t := range EffectiveTags(p) {
		if t == tag {
			return true
		}
	}
	return false
}

// HasTag is a convenience wrapper around the package-level function
func (r *Resolver) HasTag(p *models.Problem, tag string) bool {
	return HasTag(p, tag)
}

// ByTag returns the problems listed under tag, in catalog order.
// For the dsa meta-category every problem with a DSA subcategory matches.
func (r *Resolver) ByTag(tag string) []*models.Problem {
	var result []*models.Problem
	for _, p := range r.catalog.Problems() {
		if r.matches(p, tag) {
			result = append(result, p)
		}
	}
	return result
}

func (r *Resolver) matches(p *models.Problem, tag string) bool {
	if tag == models.DSATag {
		return r.IsDSA(p)
	}
	return HasTag(p, tag)
}

// UniqueDsaCount counts distinct problems in the dsa meta-category
func (r *Resolver) UniqueDsaCount() int {
	seen := make(map[string]struct{})
	for _, p := range r.ByTag(models.DSATag) {
		seen[p.ID] = struct{}{}
	}
	return len(seen)
}

// DSAProblemIDs returns the distinct ids of DSA-tagged problems in catalog order
func (r *Resolver) DSAProblemIDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, p := range r.ByTag(models.DSATag) {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		ids = append(ids, p.ID)
	}
	return ids
}

// NonDsaProblems returns problems with no DSA subcategory, each once
func (r *Resolver) NonDsaProblems() []*models.Problem {
	seen := make(map[string]struct{})
	var result []*models.Problem
	for _, p := range r.catalog.Problems() {
		if r.IsDSA(p) {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		result = append(result, p)
	}
	return result
}

// Filter narrows ByTag by difficulty. An empty or "all" value skips that axis.
func (r *Resolver) Filter(tag, difficulty string) []*models.Problem {
	var result []*models.Problem
	for _, p := range r.catalog.Problems() {
		if tag != "" && tag != FilterAll && !r.matches(p, tag) {
			continue
		}
		if difficulty != "" && difficulty != FilterAll && string(p.Difficulty) != difficulty {
			continue
		}
		result = append(result, p)
	}
	return result
}

// Categories returns the category registry in declaration order
func (r *Resolver) Categories() []models.Category {
	result := make([]models.Category, len(r.categories))
	copy(result, r.categories)
	return result
}

// Category returns a category by ID
func (r *Resolver) Category(id string) (models.Category, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// IsKnownTag reports whether tag names a registered category or the dsa meta-category
func (r *Resolver) IsKnownTag(tag string) bool {
	if tag == models.DSATag {
		return true
	}
	_, ok := r.byID[tag]
	return ok
}

// DSASubcategories returns the DSA subcategories in declaration order
func (r *Resolver) DSASubcategories() []models.Category {
	var result []models.Category
	for _, c := range r.categories {
		if c.DSA {
			result = append(result, c)
		}
	}
	return result
}
