// Package catalog holds the immutable, ordered set of practice problems.
// Every other collection refers to problems through ProblemID values
// minted here, so identity and uniqueness are enforced in one place.
package catalog

import (
	"errors"
	"fmt"

	"github.com/terra-clan/content-engine/internal/models"
)

var (
	ErrEmptyID     = errors.New("problem id is empty")
	ErrDuplicateID = errors.New("duplicate problem id")
	ErrUnknownID   = errors.New("unknown problem id")
)

// ProblemID is a reference to a problem that is known to exist in a Catalog.
// The zero value is not a valid reference.
type ProblemID struct {
	id string
}

// String returns the raw identifier
func (p ProblemID) String() string {
	return p.id
}

// IsZero reports whether p was never resolved
func (p ProblemID) IsZero() bool {
	return p.id == ""
}

// MarshalText encodes the reference as its raw identifier
func (p ProblemID) MarshalText() ([]byte, error) {
	return []byte(p.id), nil
}

// Catalog is the read-only problem collection, in authoring order
type Catalog struct {
	problems []*models.Problem
	byID     map[string]*models.Problem
}

// New builds a catalog. It fails on an empty or duplicate identifier.
// The catalog keeps the given pointers; callers must not mutate them afterwards.
func New(problems []*models.Problem) (*Catalog, error) {
	c := &Catalog{
		problems: make([]*models.Problem, 0, len(problems)),
		byID:     make(map[string]*models.Problem, len(problems)),
	}

	for i, p := range problems {
		if p == nil || p.ID == "" {
			return nil, fmt.Errorf("problem at index %d: %w", i, ErrEmptyID)
		}
		if _, exists := c.byID[p.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, p.ID)
		}
		c.byID[p.ID] = p
		c.problems = append(c.problems, p)
	}

	return c, nil
}

// Problems returns all problems in authoring order
func (c *Catalog) Problems() []*models.Problem {
	result := make([]*models.Problem, len(c.problems))
	copy(result, c.problems)
	return result
}

// Get returns a problem by ID, or nil if not found
func (c *Catalog) Get(id string) *models.Problem {
	return c.byID[id]
}

// Lookup returns the problem behind a resolved reference
func (c *Catalog) Lookup(ref ProblemID) *models.Problem {
	return c.byID[ref.id]
}

// Resolve turns a raw identifier into a validated reference
func (c *Catalog) Resolve(id string) (ProblemID, bool) {
	if _, ok := c.byID[id]; !ok {
		return ProblemID{}, false
	}
	return ProblemID{id: id}, true
}

// Require is like Resolve but returns an error wrapping ErrUnknownID
func (c *Catalog) Require(id string) (ProblemID, error) {
	ref, ok := c.Resolve(id)
	if !ok {
		return ProblemID{}, fmt.Errorf("%w: %q", ErrUnknownID, id)
	}
	return ref, nil
}

// Has reports whether id names a problem in the catalog
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// IDs returns all identifiers in authoring order
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.problems))
	for i, p := range c.problems {
		ids[i] = p.ID
	}
	return ids
}

// Len returns the number of problems
func (c *Catalog) Len() int {
	return len(c.problems)
}
