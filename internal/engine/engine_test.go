package engine

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/content-engine/internal/catalog"
	"github.com/terra-clan/content-engine/internal/content"
	"github.com/terra-clan/content-engine/internal/coverage"
	"github.com/terra-clan/content-engine/internal/models"
)

var contentDir = filepath.Join("..", "..", "content")

func loadEngine(t *testing.T) *Engine {
	t.Helper()
	e, _, err := Load(contentDir, true)
	require.NoError(t, err)
	return e
}

func ids(problems []*models.Problem) []string {
	out := make([]string, len(problems))
	for i, p := range problems {
		out[i] = p.ID
	}
	return out
}

func linkIDs(links []models.CrossLink) []string {
	out := make([]string, len(links))
	for i, l := range links {
		out[i] = l.ID
	}
	return out
}

func TestContent_CoverageMeetsBaseline(t *testing.T) {
	e := loadEngine(t)

	require.NoError(t, e.CheckCoverage())

	m := e.Coverage()
	assert.Equal(t, 37, m.DSAProblemCount)
	assert.Equal(t, 23, m.ProblemConceptCount)
	assert.Equal(t, 23, m.MappedDSAProblemCount)
	assert.Equal(t, 14, m.UnmappedDSAProblemCount)
	assert.Equal(t, e.Baseline(), m.Snapshot())
	assert.Equal(t, "flatten-array", m.UnmappedDSAProblemIDs[0])
}

func TestContent_EveryConceptKeyResolves(t *testing.T) {
	e := loadEngine(t)

	for _, ref := range e.Concepts.IDs() {
		assert.NotNil(t, e.Catalog.Lookup(ref), ref.String())
	}
	for _, c := range e.Paths.Concepts() {
		stages, ok := e.Paths.LearningPath(c.ID)
		if !ok {
			continue
		}
		for _, s := range stages {
			assert.NotEmpty(t, s.ProblemIDs, "%s/%s", c.ID, s.Name)
		}
	}
}

func TestContent_RoutesAreUnique(t *testing.T) {
	e := loadEngine(t)

	seen := make(map[string]bool)
	for _, r := range e.Routes.All() {
		assert.False(t, seen[r.Path], "duplicate route %s", r.Path)
		seen[r.Path] = true
	}

	// every concept page sits next to a practice page
	for _, ref := range e.Concepts.IDs() {
		for _, r := range e.Routes.ConceptRoutes(ref.String()) {
			assert.True(t, seen["/"+r.Category+"/"+r.ProblemID], r.Path)
		}
	}
}

func TestTaxonomy_OverlappingCategories(t *testing.T) {
	e := loadEngine(t)

	bsc := e.Problem("backspace-string-compare")
	require.NotNil(t, bsc)
	assert.Equal(t, []string{"two-pointers", "strings", "stack", "dsa"}, e.Taxonomy.RouteTags(bsc))

	flatten := e.Problem("flatten-array")
	require.NotNil(t, flatten)
	assert.True(t, e.Taxonomy.IsDSA(flatten))
	assert.Equal(t, []string{"js-core", "arrays", "dsa"}, e.Taxonomy.RouteTags(flatten))

	assert.Len(t, e.Taxonomy.ByTag("dsa"), 37)
	assert.Equal(t, e.Taxonomy.UniqueDsaCount(), len(e.Taxonomy.ByTag("dsa")))
	assert.Len(t, e.Taxonomy.NonDsaProblems(), 8)
	assert.Equal(t,
		[]string{"debounce", "throttle", "memoize", "retry-with-backoff"},
		ids(e.Taxonomy.ByTag("closures")))
	assert.Equal(t,
		[]string{"trapping-rain-water", "backspace-string-compare", "valid-parentheses", "min-stack", "daily-temperatures"},
		ids(e.Taxonomy.ByTag("stack")))
	assert.Equal(t,
		[]string{"trapping-rain-water", "min-window-substring", "lru-cache", "merge-k-sorted-lists", "word-search-ii"},
		ids(e.Taxonomy.Filter("dsa", "hard")))
}

func TestLearningPath_Sorting(t *testing.T) {
	e := loadEngine(t)

	stages, ok := e.Paths.LearningPath("sorting-algorithms")
	require.True(t, ok)
	require.Len(t, stages, 3)
	assert.Equal(t, "Sort as Tool", stages[2].Name)

	got := make([]string, len(stages[2].ProblemIDs))
	for i, ref := range stages[2].ProblemIDs {
		got[i] = ref.String()
	}
	assert.Equal(t, []string{"merge-intervals", "three-sum", "kth-largest-element"}, got)

	_, ok = e.Paths.LearningPath("big-o-notation")
	assert.False(t, ok)
}

func TestCrossLinks(t *testing.T) {
	e := loadEngine(t)

	assert.Equal(t, []string{
		"two-sum-ii", "valid-palindrome", "container-with-most-water", "three-sum",
		"trapping-rain-water", "backspace-string-compare", "move-zeroes", "sort-colors",
		"linked-list-cycle", "two-sum",
	}, linkIDs(e.CrossLinks.RelatedProblems("two-pointers")))

	assert.Equal(t,
		[]string{"bubble-sort", "merge-sort", "merge-intervals", "sort-colors", "kth-largest-element"},
		linkIDs(e.CrossLinks.RelatedProblems("sorting")))

	linked := e.CrossLinks.RelatedProblems("linked-lists")
	require.Len(t, linked, 6)
	assert.Equal(t, "/heap/merge-k-sorted-lists", linked[4].Href)

	unknown := e.CrossLinks.RelatedProblems("no-such-pattern")
	assert.NotNil(t, unknown)
	assert.Empty(t, unknown)

	assert.Equal(t, []string{"two-pointers"}, linkIDs(e.CrossLinks.RelatedPatterns("backspace-string-compare")))
	assert.Equal(t, []string{"two-pointers", "sorting"}, linkIDs(e.CrossLinks.RelatedPatterns("sort-colors")))
	assert.Equal(t, []string{"sorting", "heap"}, linkIDs(e.CrossLinks.RelatedPatterns("kth-largest-element")))
	assert.Empty(t, e.CrossLinks.RelatedPatterns("debounce"))
}

func TestNew_RejectsDanglingReferences(t *testing.T) {
	c := &content.Content{
		Categories: []models.Category{{ID: "stack", DSA: true}},
		Problems: []*models.Problem{
			{ID: "valid-parentheses", Category: "stack", Difficulty: models.DifficultyEasy},
		},
		Concepts: map[string]models.ConceptAnalysis{
			"ghost": {Title: "Ghost", Pattern: models.PatternHashMap},
		},
		DSAConcepts: []models.DSAConcept{{
			ID:           "stacks",
			LearningPath: []models.Stage{{Stage: "Foundation", ProblemIDs: []string{"min-stack"}}},
		}},
	}

	_, err := New(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrUnknownID)
	assert.Contains(t, err.Error(), "concept registry")
	assert.Contains(t, err.Error(), "learning paths")
}

func TestNew_RegressionIsReported(t *testing.T) {
	c := &content.Content{
		Categories: []models.Category{{ID: "stack", DSA: true}},
		Problems: []*models.Problem{
			{ID: "valid-parentheses", Category: "stack", Difficulty: models.DifficultyEasy},
		},
		Baseline: models.CoverageBaseline{DSAProblemCount: 1, MappedDSAProblemCount: 1},
	}

	e, err := New(c)
	require.NoError(t, err)

	var regression *coverage.RegressionError
	require.ErrorAs(t, e.CheckCoverage(), &regression)
	require.Len(t, regression.Violations, 2)
	assert.Equal(t, "mappedDsaProblemCount", regression.Violations[0].Metric)
	assert.Equal(t, "unmappedDsaProblemCount", regression.Violations[1].Metric)
}
