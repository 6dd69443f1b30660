package catalog

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/content-engine/internal/models"
)

func TestNew_PreservesAuthoringOrder(t *testing.T) {
	cat, err := New([]*models.Problem{
		{ID: "two-sum", Name: "Two Sum"},
		{ID: "bubble-sort", Name: "Bubble Sort"},
		{ID: "debounce", Name: "Debounce"},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, cat.Len())
	assert.Equal(t, []string{"two-sum", "bubble-sort", "debounce"}, cat.IDs())
	assert.Equal(t, "Bubble Sort", cat.Get("bubble-sort").Name)
	assert.Nil(t, cat.Get("missing"))
}

func TestNew_RejectsDuplicateID(t *testing.T) {
	_, err := New([]*models.Problem{{ID: "two-sum"}, {ID: "two-sum"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateID))
}

func TestNew_RejectsEmptyID(t *testing.T) {
	_, err := New([]*models.Problem{{ID: ""}})
	assert.ErrorIs(t, err, ErrEmptyID)

	_, err = New([]*models.Problem{nil})
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestProblems_ReturnsFreshSlice(t *testing.T) {
	cat, err := New([]*models.Problem{{ID: "a"}, {ID: "b"}})
	require.NoError(t, err)

	list := cat.Problems()
	list[0] = &models.Problem{ID: "replaced"}
	assert.Equal(t, "a", cat.Problems()[0].ID)
}

func TestResolve(t *testing.T) {
	cat, err := New([]*models.Problem{{ID: "two-sum", Name: "Two Sum"}})
	require.NoError(t, err)

	ref, ok := cat.Resolve("two-sum")
	require.True(t, ok)
	assert.Equal(t, "two-sum", ref.String())
	assert.False(t, ref.IsZero())
	assert.Equal(t, "Two Sum", cat.Lookup(ref).Name)

	missing, ok := cat.Resolve("three-sum")
	assert.False(t, ok)
	assert.True(t, missing.IsZero())

	_, err = cat.Require("three-sum")
	assert.ErrorIs(t, err, ErrUnknownID)

	assert.True(t, cat.Has("two-sum"))
	assert.False(t, cat.Has("three-sum"))
}

func TestProblemID_MarshalsAsString(t *testing.T) {
	cat, err := New([]*models.Problem{{ID: "two-sum"}})
	require.NoError(t, err)
	ref, _ := cat.Resolve("two-sum")

	data, err := json.Marshal(map[string]ProblemID{"ref": ref})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ref":"two-sum"}`, string(data))
}
