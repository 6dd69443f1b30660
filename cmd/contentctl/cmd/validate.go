package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terra-clan/content-engine/internal/content"
	"github.com/terra-clan/content-engine/internal/coverage"
	"github.com/terra-clan/content-engine/internal/engine"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Lint content, build every registry and check the coverage baseline",
	Long: `Loads the content directory and reports every authoring defect, every
registry integrity error and every coverage regression. Exits non-zero if
anything is reported, so it can gate CI before the server is deployed.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

type validateReport struct {
	Defects    []content.Defect     `json:"defects"`
	Integrity  []string             `json:"integrity"`
	Violations []coverage.Violation `json:"violations"`
	Problems   int                  `json:"problems"`
	Concepts   int                  `json:"concepts"`
	Passed     bool                 `json:"passed"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	c, err := content.Load(contentDir)
	if err != nil {
		return err
	}

	report := validateReport{
		Defects:    c.Defects,
		Integrity:  []string{},
		Violations: []coverage.Violation{},
		Problems:   len(c.Problems),
		Concepts:   len(c.Concepts),
	}
	if report.Defects == nil {
		report.Defects = []content.Defect{}
	}

	e, err := engine.New(c)
	if err != nil {
		report.Integrity = append(report.Integrity, splitJoined(err)...)
	} else {
		var regression *coverage.RegressionError
		if err := e.CheckCoverage(); errors.As(err, &regression) {
			report.Violations = regression.Violations
		} else if err != nil {
			return err
		}
	}

	report.Passed = len(report.Defects) == 0 && len(report.Integrity) == 0 && len(report.Violations) == 0

	out := cmd.OutOrStdout()
	if jsonOutput {
		if err := writeJSON(out, report); err != nil {
			return err
		}
	} else {
		for _, d := range report.Defects {
			fmt.Fprintf(out, "defect     %s\n", d)
		}
		for _, msg := range report.Integrity {
			fmt.Fprintf(out, "integrity  %s\n", msg)
		}
		for _, v := range report.Violations {
			fmt.Fprintf(out, "coverage   %s\n", v)
		}
		if report.Passed {
			fmt.Fprintf(out, "ok: %d problems, %d concept analyses\n", report.Problems, report.Concepts)
		}
	}

	if !report.Passed {
		return fmt.Errorf("validation failed: %d defect(s), %d integrity error(s), %d coverage violation(s)",
			len(report.Defects), len(report.Integrity), len(report.Violations))
	}
	return nil
}

// splitJoined flattens an errors.Join tree into one message per leaf
func splitJoined(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var msgs []string
		for _, e := range joined.Unwrap() {
			msgs = append(msgs, splitJoined(e)...)
		}
		return msgs
	}
	return []string{err.Error()}
}
