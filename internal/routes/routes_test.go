package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/content-engine/internal/catalog"
	"github.com/terra-clan/content-engine/internal/concepts"
	"github.com/terra-clan/content-engine/internal/models"
	"github.com/terra-clan/content-engine/internal/taxonomy"
)

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()

	cat, err := catalog.New([]*models.Problem{
		{ID: "backspace-string-compare", Category: "two-pointers", Categories: []string{"two-pointers", "strings", "stack"}},
		{ID: "debounce", Category: "js-core"},
	})
	require.NoError(t, err)

	resolver, err := taxonomy.NewResolver(cat, []models.Category{
		{ID: "js-core"},
		{ID: "two-pointers", DSA: true},
		{ID: "strings", DSA: true},
		{ID: "stack", DSA: true},
	})
	require.NoError(t, err)

	registry, err := concepts.NewRegistry(cat, map[string]models.ConceptAnalysis{
		"backspace-string-compare": {
			Title: "Backspace", KeyInsight: "scan from the end", Pattern: models.PatternTwoPointersSameDir,
			Steps: []models.Step{{ID: 1, Title: "Start", Description: "Pointers at the end"}},
		},
	})
	require.NoError(t, err)

	return NewBuilder(cat, resolver, registry)
}

func paths(rs []Route) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Path
	}
	return out
}

func TestProblemRoutes_IncludeSynthesizedDSA(t *testing.T) {
	b := newTestBuilder(t)
	p := b.catalog.Get("backspace-string-compare")

	assert.Equal(t, []string{
		"/two-pointers/backspace-string-compare",
		"/strings/backspace-string-compare",
		"/stack/backspace-string-compare",
		"/dsa/backspace-string-compare",
	}, paths(b.ProblemRoutes(p)))

	assert.Equal(t, []string{"/js-core/debounce"}, paths(b.ProblemRoutes(b.catalog.Get("debounce"))))
}

func TestConceptRoutes(t *testing.T) {
	b := newTestBuilder(t)

	rs := b.ConceptRoutes("backspace-string-compare")
	require.Len(t, rs, 4)
	assert.Equal(t, "/dsa/backspace-string-compare/concept", rs[3].Path)
	assert.Equal(t, KindConcept, rs[0].Kind)

	assert.Empty(t, b.ConceptRoutes("debounce"))
	assert.Empty(t, b.ConceptRoutes("missing"))
}

func TestAll(t *testing.T) {
	b := newTestBuilder(t)

	all := b.All()
	require.Len(t, all, 9)
	assert.Equal(t, KindProblem, all[0].Kind)
	assert.Equal(t, "/js-core/debounce", all[4].Path)
	assert.Equal(t, KindConcept, all[5].Kind)
}
