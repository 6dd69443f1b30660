package models

import "strings"

// Pattern is the visualization pattern a concept analysis walks through
type Pattern string

const (
	PatternTwoPointersConverge  Pattern = "two-pointers-converge"  // pointers meet from both ends
	PatternTwoPointersSameDir   Pattern = "two-pointers-same-dir"  // slow/fast
	PatternTwoPointersPartition Pattern = "two-pointers-partition" // [0s | 1s | 2s]
	PatternHashMap              Pattern = "hash-map"
	PatternBitManipulation      Pattern = "bit-manipulation"
	PatternSlidingWindow        Pattern = "sliding-window"
	PatternBinarySearch         Pattern = "binary-search"
	PatternLinkedList           Pattern = "linked-list"
	PatternSorting              Pattern = "sorting"
)

// Patterns lists every valid pattern in declaration order
var Patterns = []Pattern{
	PatternTwoPointersConverge,
	PatternTwoPointersSameDir,
	PatternTwoPointersPartition,
	PatternHashMap,
	PatternBitManipulation,
	PatternSlidingWindow,
	PatternBinarySearch,
	PatternLinkedList,
	PatternSorting,
}

// IsValid returns true if p belongs to the closed pattern set
func (p Pattern) IsValid() bool {
	for _, known := range Patterns {
		if p == known {
			return true
		}
	}
	return false
}

// Base returns the first two dash-separated segments of the pattern
// ("two-pointers-converge" -> "two-pointers", "hash-map" -> "hash-map").
func (p Pattern) Base() string {
	parts := strings.Split(string(p), "-")
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, "-")
}

// Step is one stage of a concept walkthrough
type Step struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ConceptAnalysis is a stepwise explanation attached to a single problem
type ConceptAnalysis struct {
	Title      string  `json:"title"`
	KeyInsight string  `json:"keyInsight"`
	Pattern    Pattern `json:"pattern"`
	Steps      []Step  `json:"steps"`
}
