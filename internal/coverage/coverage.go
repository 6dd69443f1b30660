// Package coverage computes concept-mapping metrics and checks them against
// the checked-in baseline. The baseline is a floor for mapped content and a
// ceiling for unmapped DSA debt; it is edited by hand when coverage changes
// on purpose.
package coverage

import (
	"fmt"
	"strings"

	"github.com/terra-clan/content-engine/internal/concepts"
	"github.com/terra-clan/content-engine/internal/models"
	"github.com/terra-clan/content-engine/internal/taxonomy"
)

// Metrics is the live counterpart of models.CoverageBaseline
type Metrics struct {
	DSAProblemCount         int      `json:"dsaProblemCount"`
	ProblemConceptCount     int      `json:"problemConceptCount"`
	MappedDSAProblemCount   int      `json:"mappedDsaProblemCount"`
	UnmappedDSAProblemCount int      `json:"unmappedDsaProblemCount"`
	UnmappedDSAProblemIDs   []string `json:"unmappedDsaProblemIds"`
}

// Compute derives the metrics from the taxonomy and concept registry
func Compute(resolver *taxonomy.Resolver, registry *concepts.Registry) Metrics {
	dsaIDs := resolver.DSAProblemIDs()

	m := Metrics{
		DSAProblemCount:       len(dsaIDs),
		ProblemConceptCount:   registry.Len(),
		UnmappedDSAProblemIDs: []string{},
	}
	for _, id := range dsaIDs {
		if registry.Has(id) {
			m.MappedDSAProblemCount++
		} else {
			m.UnmappedDSAProblemIDs = append(m.UnmappedDSAProblemIDs, id)
		}
	}
	m.UnmappedDSAProblemCount = m.DSAProblemCount - m.MappedDSAProblemCount

	return m
}

// Snapshot converts live metrics into a baseline record, for regenerating baseline.yaml
func (m Metrics) Snapshot() models.CoverageBaseline {
	return models.CoverageBaseline{
		DSAProblemCount:         m.DSAProblemCount,
		ProblemConceptCount:     m.ProblemConceptCount,
		MappedDSAProblemCount:   m.MappedDSAProblemCount,
		UnmappedDSAProblemCount: m.UnmappedDSAProblemCount,
	}
}

// Violation is one failed baseline comparison
type Violation struct {
	Metric   string `json:"metric"`
	Live     int    `json:"live"`
	Baseline int    `json:"baseline"`
	Rule     string `json:"rule"` // ">=" or "<="
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: live %d, want %s %d", v.Metric, v.Live, v.Rule, v.Baseline)
}

// RegressionError lists every violated baseline rule
type RegressionError struct {
	Violations []Violation
}

func (e *RegressionError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return "coverage regression: " + strings.Join(parts, "; ")
}

// Check returns a *RegressionError when any metric regresses past the baseline
func Check(m Metrics, baseline models.CoverageBaseline) error {
	var violations []Violation

	atLeast := func(metric string, live, floor int) {
		if live < floor {
			violations = append(violations, Violation{Metric: metric, Live: live, Baseline: floor, Rule: ">="})
		}
	}
	atMost := func(metric string, live, ceiling int) {
		if live > ceiling {
			violations = append(violations, Violation{Metric: metric, Live: live, Baseline: ceiling, Rule: "<="})
		}
	}

	atLeast("dsaProblemCount", m.DSAProblemCount, baseline.DSAProblemCount)
	atLeast("problemConceptCount", m.ProblemConceptCount, baseline.ProblemConceptCount)
	atLeast("mappedDsaProblemCount", m.MappedDSAProblemCount, baseline.MappedDSAProblemCount)
	atMost("unmappedDsaProblemCount", m.UnmappedDSAProblemCount, baseline.UnmappedDSAProblemCount)

	if len(violations) > 0 {
		return &RegressionError{Violations: violations}
	}
	return nil
}
