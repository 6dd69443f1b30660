package content

import "github.com/terra-clan/content-engine/internal/models"

// --- YAML file structs ---

// categoryFile represents one entry of categories.yaml
type categoryFile struct {
	ID          string `yaml:"id" validate:"required,slug"`
	Name        string `yaml:"name" validate:"notblank"`
	Description string `yaml:"description"`
	DSA         bool   `yaml:"dsa"`
}

// problemFile represents one entry of problems.yaml.
// Categories is a pointer so an explicit empty list can be told apart from an absent one.
type problemFile struct {
	ID          string    `yaml:"id" validate:"required,slug"`
	Name        string    `yaml:"name" validate:"notblank"`
	Category    string    `yaml:"category" validate:"required,slug"`
	Categories  *[]string `yaml:"categories"`
	Difficulty  string    `yaml:"difficulty" validate:"required,oneof=easy medium hard"`
	Description string    `yaml:"description"`
}

// stepFile represents one step of a concept analysis
type stepFile struct {
	ID          int    `yaml:"id" validate:"gt=0"`
	Title       string `yaml:"title" validate:"notblank"`
	Description string `yaml:"description" validate:"notblank"`
}

// conceptFile represents one concept analysis in concepts/*.yaml
type conceptFile struct {
	Title      string     `yaml:"title" validate:"notblank"`
	KeyInsight string     `yaml:"keyInsight" validate:"notblank"`
	Pattern    string     `yaml:"pattern" validate:"required,pattern"`
	Steps      []stepFile `yaml:"steps" validate:"required,min=1,dive"`
}

// stageFile represents one learning path stage
type stageFile struct {
	Stage      string   `yaml:"stage" validate:"notblank"`
	ProblemIDs []string `yaml:"problemIds" validate:"required,min=1,dive,required"`
}

// dsaConceptFile represents one entry of dsa_concepts.yaml
type dsaConceptFile struct {
	ID               string      `yaml:"id" validate:"required,slug"`
	Title            string      `yaml:"title" validate:"notblank"`
	Category         string      `yaml:"category" validate:"required,oneof=foundations data-structures algorithms patterns"`
	Difficulty       string      `yaml:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
	ShortDescription string      `yaml:"shortDescription"`
	RelatedProblems  []string    `yaml:"relatedProblems" validate:"omitempty,dive,required"`
	LearningPath     []stageFile `yaml:"learningPath" validate:"omitempty,dive"`
}

// patternFile represents one entry of patterns.yaml
type patternFile struct {
	ID              string   `yaml:"id" validate:"required,slug"`
	Name            string   `yaml:"name" validate:"notblank"`
	Slug            string   `yaml:"slug" validate:"omitempty,slug"`
	Description     string   `yaml:"description"`
	RelatedProblems []string `yaml:"relatedProblems"`
}

func (f categoryFile) toModel() models.Category {
	return models.Category{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		DSA:         f.DSA,
	}
}

func (f problemFile) toModel() *models.Problem {
	p := &models.Problem{
		ID:          f.ID,
		Name:        f.Name,
		Category:    f.Category,
		Difficulty:  models.Difficulty(f.Difficulty),
		Description: f.Description,
	}
	if f.Categories != nil {
		p.Categories = append([]string(nil), (*f.Categories)...)
	}
	return p
}

func (f conceptFile) toModel() models.ConceptAnalysis {
	steps := make([]models.Step, len(f.Steps))
	for i, s := range f.Steps {
		steps[i] = models.Step{ID: s.ID, Title: s.Title, Description: s.Description}
	}
	return models.ConceptAnalysis{
		Title:      f.Title,
		KeyInsight: f.KeyInsight,
		Pattern:    models.Pattern(f.Pattern),
		Steps:      steps,
	}
}

func (f dsaConceptFile) toModel() models.DSAConcept {
	c := models.DSAConcept{
		ID:               f.ID,
		Title:            f.Title,
		Category:         f.Category,
		Difficulty:       f.Difficulty,
		ShortDescription: f.ShortDescription,
		RelatedProblems:  append([]string(nil), f.RelatedProblems...),
	}
	for _, s := range f.LearningPath {
		c.LearningPath = append(c.LearningPath, models.Stage{
			Stage:      s.Stage,
			ProblemIDs: append([]string(nil), s.ProblemIDs...),
		})
	}
	return c
}

func (f patternFile) toModel() models.DSAPattern {
	slug := f.Slug
	if slug == "" {
		slug = f.ID
	}
	return models.DSAPattern{
		ID:              f.ID,
		Name:            f.Name,
		Slug:            slug,
		Description:     f.Description,
		RelatedProblems: append([]string(nil), f.RelatedProblems...),
	}
}
