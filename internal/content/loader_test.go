package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/content-engine/internal/models"
)

func TestLoadContentDir(t *testing.T) {
	// Use the checked-in content directory
	contentDir := filepath.Join("..", "..", "content")

	if _, err := os.Stat(contentDir); os.IsNotExist(err) {
		t.Skip("content directory not found, skipping")
	}

	c, err := Load(contentDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := c.Err(); err != nil {
		t.Fatalf("content has defects:\n%v", err)
	}

	if len(c.Problems) != 45 {
		t.Errorf("expected 45 problems, got %d", len(c.Problems))
	}
	if c.Problems[0].ID != "debounce" {
		t.Errorf("expected authoring order to start with debounce, got %s", c.Problems[0].ID)
	}

	// Concept files are merged
	if len(c.Concepts) != 23 {
		t.Errorf("expected 23 concept analyses, got %d", len(c.Concepts))
	}
	bsc, ok := c.Concepts["backspace-string-compare"]
	if !ok {
		t.Fatal("backspace-string-compare concept not found")
	}
	if bsc.Pattern != models.PatternTwoPointersSameDir {
		t.Errorf("expected pattern two-pointers-same-dir, got %s", bsc.Pattern)
	}
	if len(bsc.Steps) != 4 || bsc.Steps[0].ID != 1 {
		t.Errorf("unexpected steps: %+v", bsc.Steps)
	}

	// Learning paths
	var linkedLists *models.DSAConcept
	for i := range c.DSAConcepts {
		if c.DSAConcepts[i].ID == "linked-lists" {
			linkedLists = &c.DSAConcepts[i]
		}
	}
	if linkedLists == nil {
		t.Fatal("linked-lists concept not found")
	}
	if len(linkedLists.LearningPath) != 3 || linkedLists.LearningPath[0].Stage != "Foundation" {
		t.Errorf("unexpected learning path: %+v", linkedLists.LearningPath)
	}

	// Slug defaults and baseline
	if len(c.Patterns) != 6 {
		t.Errorf("expected 6 patterns, got %d", len(c.Patterns))
	}
	if c.Baseline.DSAProblemCount != 37 {
		t.Errorf("expected baseline dsaProblemCount 37, got %d", c.Baseline.DSAProblemCount)
	}

	t.Logf("Problems: %d, concepts: %d, DSA concepts: %d", len(c.Problems), len(c.Concepts), len(c.DSAConcepts))
}

// writeContent lays out a minimal valid content directory and applies overrides
func writeContent(t *testing.T, overrides map[string]string) string {
	t.Helper()

	files := map[string]string{
		categoriesFile: `
- id: js-core
  name: JavaScript Core
- id: strings
  name: Strings
  dsa: true
- id: stack
  name: Stack
  dsa: true
`,
		problemsFile: `
- id: debounce
  name: Debounce
  category: js-core
  difficulty: medium
- id: valid-parentheses
  name: Valid Parentheses
  category: stack
  categories: [stack, strings]
  difficulty: easy
`,
		"concepts/stack.yaml": `
valid-parentheses:
  title: Valid Parentheses
  keyInsight: Push openers, pop on closers.
  pattern: hash-map
  steps:
    - id: 1
      title: Push
      description: Push every opening bracket.
`,
		baselineFile: `
dsaProblemCount: 1
problemConceptCount: 1
mappedDsaProblemCount: 1
unmappedDsaProblemCount: 0
`,
	}
	for name, body := range overrides {
		files[name] = body
	}

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, conceptsDir), 0o755))
	for name, body := range files {
		if body == "" {
			continue
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func messages(defects []Defect) []string {
	out := make([]string, len(defects))
	for i, d := range defects {
		out[i] = d.String()
	}
	return out
}

func TestLoad_MinimalContentIsClean(t *testing.T) {
	c, err := Load(writeContent(t, nil))
	require.NoError(t, err)
	assert.Empty(t, c.Defects)
	assert.NoError(t, c.Err())

	// optional files
	assert.Empty(t, c.DSAConcepts)
	assert.Empty(t, c.Patterns)
}

func TestLoad_MissingRequiredFile(t *testing.T) {
	dir := writeContent(t, map[string]string{baselineFile: ""})

	_, err := Load(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_UnknownFieldIsParseError(t *testing.T) {
	dir := writeContent(t, map[string]string{categoriesFile: `
- id: js-core
  name: JavaScript Core
  colour: yellow
`})

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse categories.yaml")
}

func TestLoad_ProblemDefects(t *testing.T) {
	dir := writeContent(t, map[string]string{problemsFile: `
- id: debounce
  name: Debounce
  category: js-core
  categories: []
  difficulty: medium
- id: debounce
  name: Again
  category: js-core
  difficulty: easy
- id: Bad_ID
  name: " "
  category: stack
  difficulty: trivial
- id: valid-parentheses
  name: Valid Parentheses
  category: stack
  categories: [strings, strings, dsa, graphs]
  difficulty: easy
`})

	c, err := Load(dir)
	require.NoError(t, err)
	require.Error(t, c.Err())

	got := strings.Join(messages(c.Defects), "\n")
	for _, want := range []string{
		"[debounce]: categories is present but empty",
		"[debounce]: duplicate problem id",
		`[Bad_ID]: ID "Bad_ID" is not a lower-case dash-separated id`,
		"[Bad_ID]: Name must not be blank",
		`[Bad_ID]: Difficulty "trivial" must be one of [easy medium hard]`,
		`[valid-parentheses]: category "strings" listed more than once`,
		`[valid-parentheses]: "dsa" is derived from DSA subcategories and cannot be assigned`,
		`[valid-parentheses]: unknown category "graphs"`,
		`[valid-parentheses]: categories must include the primary category "stack"`,
	} {
		assert.Contains(t, got, want)
	}

	var de *DefectsError
	require.ErrorAs(t, c.Err(), &de)
	assert.Len(t, de.Defects, len(c.Defects))
}

func TestLoad_ConceptDefects(t *testing.T) {
	dir := writeContent(t, map[string]string{
		"concepts/stack.yaml": `
valid-parentheses:
  title: Valid Parentheses
  keyInsight: Push openers, pop on closers.
  pattern: stack-magic
  steps:
    - id: 1
      title: Push
      description: Push every opening bracket.
    - id: 1
      title: Pop
      description: ""
ghost-problem:
  title: Ghost
  keyInsight: Nothing here.
  pattern: sorting
  steps:
    - id: 1
      title: One
      description: One step.
`,
		"concepts/stack_copy.yaml": `
valid-parentheses:
  title: Copy
  keyInsight: Copy.
  pattern: sorting
  steps:
    - id: 1
      title: One
      description: One step.
`,
	})

	c, err := Load(dir)
	require.NoError(t, err)

	got := strings.Join(messages(c.Defects), "\n")
	for _, want := range []string{
		"concepts/stack_copy.yaml [valid-parentheses]: concept analysis already defined in concepts/stack.yaml",
		"[valid-parentheses]: Pattern \"stack-magic\" is not a known concept pattern",
		"[valid-parentheses]: Steps[1].Description must not be blank",
		"[valid-parentheses]: step id 1 is used more than once",
		"concepts [ghost-problem]: concept analysis for unknown problem",
	} {
		assert.Contains(t, got, want)
	}
}

func TestLoad_LearningPathAndPatternDefects(t *testing.T) {
	dir := writeContent(t, map[string]string{
		dsaConceptsFile: `
- id: stacks
  title: Stacks
  category: data-structures
  difficulty: beginner
  relatedProblems: [valid-parentheses, min-stack]
  learningPath:
    - stage: Foundation
      problemIds: [valid-parentheses, daily-temperatures]
    - stage: Empty
- id: stacks
  title: Stacks again
  category: trees
  difficulty: beginner
`,
		patternsFile: `
- id: stack
  name: Stack
  relatedProblems: [valid-parentheses, nope]
- id: monotonic
  name: Monotonic Stack
  slug: stack
`,
	})

	c, err := Load(dir)
	require.NoError(t, err)

	got := strings.Join(messages(c.Defects), "\n")
	for _, want := range []string{
		`[stacks]: related problem "min-stack" does not exist`,
		`[stacks]: learning path stage "Foundation" references unknown problem "daily-temperatures"`,
		"[stacks]: LearningPath[1].ProblemIDs is required",
		"[stacks]: duplicate concept id",
		`[stacks]: Category "trees" must be one of`,
		`patterns.yaml [stack]: related problem "nope" does not exist`,
		`patterns.yaml [monotonic]: slug "stack" already used by "stack"`,
	} {
		assert.Contains(t, got, want)
	}
}

func TestLoad_NegativeBaseline(t *testing.T) {
	dir := writeContent(t, map[string]string{baselineFile: `
dsaProblemCount: -1
problemConceptCount: 0
mappedDsaProblemCount: 0
unmappedDsaProblemCount: 0
`})

	c, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, c.Defects, 1)
	assert.Equal(t, "baseline.yaml: DSAProblemCount must be at least 0", c.Defects[0].String())
}

func TestDefectsError_Unwrap(t *testing.T) {
	d := Defect{File: problemsFile, Ref: "x", Message: "broken"}
	err := &DefectsError{Defects: []Defect{d}}

	assert.True(t, errors.Is(err, d))
	assert.Equal(t, "content has 1 defect(s)\n  problems.yaml [x]: broken", err.Error())
}
