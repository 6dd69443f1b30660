package models

// DSAConcept is a broad topic page (e.g., linked-lists) grouping many problems
type DSAConcept struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Category         string   `json:"category"`   // foundations | data-structures | algorithms | patterns
	Difficulty       string   `json:"difficulty"` // beginner | intermediate | advanced
	ShortDescription string   `json:"shortDescription"`
	RelatedProblems  []string `json:"relatedProblems,omitempty"`
	LearningPath     []Stage  `json:"learningPath,omitempty"`
}

// Stage is one step of a learning path
type Stage struct {
	Stage      string   `json:"stage"`
	ProblemIDs []string `json:"problemIds"`
}

// DSAPattern is a reusable technique page (e.g., two-pointers)
type DSAPattern struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Slug            string   `json:"slug"`
	Description     string   `json:"description"`
	RelatedProblems []string `json:"relatedProblems,omitempty"`
}

// CrossLinkType distinguishes what a cross-link points at
type CrossLinkType string

const (
	CrossLinkProblem CrossLinkType = "problem"
	CrossLinkPattern CrossLinkType = "pattern"
)

// CrossLink is a display record for a related problem or pattern
type CrossLink struct {
	Type        CrossLinkType `json:"type"`
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Href        string        `json:"href"`
	Description string        `json:"description,omitempty"`
}

// CoverageBaseline is the checked-in non-regression snapshot
type CoverageBaseline struct {
	DSAProblemCount         int `json:"dsaProblemCount" yaml:"dsaProblemCount"`
	ProblemConceptCount     int `json:"problemConceptCount" yaml:"problemConceptCount"`
	MappedDSAProblemCount   int `json:"mappedDsaProblemCount" yaml:"mappedDsaProblemCount"`
	UnmappedDSAProblemCount int `json:"unmappedDsaProblemCount" yaml:"unmappedDsaProblemCount"`
}
