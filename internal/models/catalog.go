package models

// Difficulty represents how hard a practice problem is
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid returns true if the difficulty is one of the known levels
func (d Difficulty) IsValid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// DSATag is the synthesized meta-category covering every DSA subcategory.
// No problem stores it directly.
const DSATag = "dsa"

// Category represents a browsable topic (e.g., js-core, two-pointers)
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DSA         bool   `json:"dsa"` // true for data-structure/algorithm subcategories
}

// Problem represents a practice problem in the content catalog
type Problem struct {
	ID          string     `json:"id"`                   // "two-sum"
	Name        string     `json:"name"`
	Category    string     `json:"category"`             // primary category
	Categories  []string   `json:"categories,omitempty"` // authoritative tag set when non-empty
	Difficulty  Difficulty `json:"difficulty"`           // easy | medium | hard
	Description string     `json:"description"`
}
