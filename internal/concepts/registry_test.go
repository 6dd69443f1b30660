package concepts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/content-engine/internal/catalog"
	"github.com/terra-clan/content-engine/internal/models"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]*models.Problem{
		{ID: "two-sum", Category: "arrays-hashing"},
		{ID: "valid-palindrome", Category: "two-pointers"},
		{ID: "sort-colors", Category: "two-pointers"},
		{ID: "debounce", Category: "js-core"},
	})
	require.NoError(t, err)
	return cat
}

func analysis(title string, pattern models.Pattern) models.ConceptAnalysis {
	return models.ConceptAnalysis{
		Title:      title,
		KeyInsight: "insight",
		Pattern:    pattern,
		Steps:      []models.Step{{ID: 1, Title: "Setup", Description: "Place pointers"}},
	}
}

func TestRegistry_Get(t *testing.T) {
	r, err := NewRegistry(testCatalog(t), map[string]models.ConceptAnalysis{
		"two-sum": analysis("Two Sum", models.PatternHashMap),
	})
	require.NoError(t, err)

	got, ok := r.Get("two-sum")
	require.True(t, ok)
	assert.Equal(t, "Two Sum", got.Title)
	assert.True(t, r.Has("two-sum"))
}

func TestRegistry_MissingLookupIsAbsent(t *testing.T) {
	r, err := NewRegistry(testCatalog(t), nil)
	require.NoError(t, err)

	got, ok := r.Get("nonexistent-id")
	assert.False(t, ok)
	assert.Equal(t, models.ConceptAnalysis{}, got)
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_RejectsDanglingKeys(t *testing.T) {
	_, err := NewRegistry(testCatalog(t), map[string]models.ConceptAnalysis{
		"two-sum":   analysis("Two Sum", models.PatternHashMap),
		"ghost":     analysis("Ghost", models.PatternSorting),
		"phantom-2": analysis("Phantom", models.PatternSorting),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrUnknownID)
	assert.Contains(t, err.Error(), `"ghost"`)
	assert.Contains(t, err.Error(), `"phantom-2"`)
}

func TestRegistry_IDsFollowCatalogOrder(t *testing.T) {
	r, err := NewRegistry(testCatalog(t), map[string]models.ConceptAnalysis{
		"sort-colors":      analysis("Sort Colors", models.PatternTwoPointersPartition),
		"two-sum":          analysis("Two Sum", models.PatternHashMap),
		"valid-palindrome": analysis("Valid Palindrome", models.PatternTwoPointersConverge),
	})
	require.NoError(t, err)

	var ids []string
	for _, ref := range r.IDs() {
		ids = append(ids, ref.String())
	}
	assert.Equal(t, []string{"two-sum", "valid-palindrome", "sort-colors"}, ids)
	assert.Equal(t, 3, r.Len())
}

func TestRegistry_ByPattern(t *testing.T) {
	r, err := NewRegistry(testCatalog(t), map[string]models.ConceptAnalysis{
		"sort-colors":      analysis("Sort Colors", models.PatternTwoPointersPartition),
		"two-sum":          analysis("Two Sum", models.PatternHashMap),
		"valid-palindrome": analysis("Valid Palindrome", models.PatternTwoPointersConverge),
	})
	require.NoError(t, err)

	refs := r.ByPattern("two-pointers")
	require.Len(t, refs, 2)
	assert.Equal(t, "valid-palindrome", refs[0].String())
	assert.Equal(t, "sort-colors", refs[1].String())

	assert.Len(t, r.ByPattern("hash-map"), 1)
	assert.Empty(t, r.ByPattern("heap"))
	assert.Empty(t, r.ByPattern(""))
}
