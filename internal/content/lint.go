package content

import (
	"fmt"
	"sort"
	"strings"

	"github.com/terra-clan/content-engine/internal/models"
)

// Defect is one authoring problem in the content directory
type Defect struct {
	File    string `json:"file"`
	Ref     string `json:"ref,omitempty"`
	Message string `json:"message"`
}

func (d Defect) String() string {
	if d.Ref == "" {
		return d.File + ": " + d.Message
	}
	return fmt.Sprintf("%s [%s]: %s", d.File, d.Ref, d.Message)
}

func (d Defect) Error() string {
	return d.String()
}

// DefectsError carries every defect found in one load
type DefectsError struct {
	Defects []Defect
}

func (e *DefectsError) Error() string {
	lines := make([]string, 0, len(e.Defects)+1)
	lines = append(lines, fmt.Sprintf("content has %d defect(s)", len(e.Defects)))
	for _, d := range e.Defects {
		lines = append(lines, "  "+d.String())
	}
	return strings.Join(lines, "\n")
}

// Unwrap exposes each defect to errors.Is / errors.As
func (e *DefectsError) Unwrap() []error {
	errs := make([]error, len(e.Defects))
	for i, d := range e.Defects {
		errs[i] = d
	}
	return errs
}

// lint runs the checks that need the raw file records, then the
// cross-collection checks shared with Lint.
func (l *Loader) lint() {
	for _, f := range l.problemFiles {
		if f.Categories != nil && len(*f.Categories) == 0 {
			l.addDefect(problemsFile, f.ID, "categories is present but empty; omit it to use the primary category")
		}
	}

	ids := make([]string, 0, len(l.conceptFiles))
	for id := range l.conceptFiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		src := l.conceptFiles[id]
		seen := make(map[int]bool, len(src.concept.Steps))
		for _, s := range src.concept.Steps {
			if seen[s.ID] {
				l.addDefect(src.file, id, fmt.Sprintf("step id %d is used more than once", s.ID))
			}
			seen[s.ID] = true
		}
	}

	l.addDefects(Lint(l.content))
}

// Lint checks referential integrity across the loaded collections:
// unique ids, known category tags, concept keys and learning path entries
// that resolve to problems.
func Lint(c *Content) []Defect {
	var defects []Defect
	add := func(file, ref, format string, args ...interface{}) {
		defects = append(defects, Defect{File: file, Ref: ref, Message: fmt.Sprintf(format, args...)})
	}

	categories := make(map[string]models.Category, len(c.Categories))
	for _, cat := range c.Categories {
		if _, dup := categories[cat.ID]; dup {
			add(categoriesFile, cat.ID, "duplicate category id")
			continue
		}
		if cat.ID == models.DSATag && cat.DSA {
			add(categoriesFile, cat.ID, "the %q meta-category cannot be a DSA subcategory", models.DSATag)
		}
		categories[cat.ID] = cat
	}

	problems := make(map[string]bool, len(c.Problems))
	for _, p := range c.Problems {
		if problems[p.ID] {
			add(problemsFile, p.ID, "duplicate problem id")
			continue
		}
		problems[p.ID] = true

		checkTag := func(tag string) {
			if tag == models.DSATag {
				add(problemsFile, p.ID, "%q is derived from DSA subcategories and cannot be assigned", models.DSATag)
				return
			}
			if _, ok := categories[tag]; !ok {
				add(problemsFile, p.ID, "unknown category %q", tag)
			}
		}

		checkTag(p.Category)
		if len(p.Categories) == 0 {
			continue
		}

		seen := make(map[string]bool, len(p.Categories))
		hasPrimary := false
		for _, tag := range p.Categories {
			if seen[tag] {
				add(problemsFile, p.ID, "category %q listed more than once", tag)
				continue
			}
			seen[tag] = true
			if tag == p.Category {
				hasPrimary = true
				continue
			}
			checkTag(tag)
		}
		if !hasPrimary {
			add(problemsFile, p.ID, "categories must include the primary category %q", p.Category)
		}
	}

	conceptIDs := make([]string, 0, len(c.Concepts))
	for id := range c.Concepts {
		conceptIDs = append(conceptIDs, id)
	}
	sort.Strings(conceptIDs)
	for _, id := range conceptIDs {
		if !problems[id] {
			add(conceptsDir, id, "concept analysis for unknown problem")
		}
	}

	dsaConcepts := make(map[string]bool, len(c.DSAConcepts))
	for _, dc := range c.DSAConcepts {
		if dsaConcepts[dc.ID] {
			add(dsaConceptsFile, dc.ID, "duplicate concept id")
			continue
		}
		dsaConcepts[dc.ID] = true

		for _, id := range dc.RelatedProblems {
			if !problems[id] {
				add(dsaConceptsFile, dc.ID, "related problem %q does not exist", id)
			}
		}
		for _, stage := range dc.LearningPath {
			for _, id := range stage.ProblemIDs {
				if !problems[id] {
					add(dsaConceptsFile, dc.ID, "learning path stage %q references unknown problem %q", stage.Stage, id)
				}
			}
		}
	}

	patterns := make(map[string]bool, len(c.Patterns))
	slugs := make(map[string]string, len(c.Patterns))
	for _, p := range c.Patterns {
		if patterns[p.ID] {
			add(patternsFile, p.ID, "duplicate pattern id")
			continue
		}
		patterns[p.ID] = true
		if other, dup := slugs[p.Slug]; dup {
			add(patternsFile, p.ID, "slug %q already used by %q", p.Slug, other)
		}
		slugs[p.Slug] = p.ID

		for _, id := range p.RelatedProblems {
			if !problems[id] {
				add(patternsFile, p.ID, "related problem %q does not exist", id)
			}
		}
	}

	return defects
}
