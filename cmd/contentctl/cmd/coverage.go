package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/terra-clan/content-engine/internal/coverage"
	"github.com/terra-clan/content-engine/internal/models"
)

var coverageSnapshot bool

var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Compare live concept coverage with baseline.yaml",
	Long: `Prints the live coverage metrics next to the checked-in baseline and
exits non-zero on a regression. With --snapshot, prints the live metrics as
a baseline.yaml document instead; review it before committing.`,
	Args: cobra.NoArgs,
	RunE: runCoverage,
}

func init() {
	coverageCmd.Flags().BoolVar(&coverageSnapshot, "snapshot", false, "print live metrics as baseline.yaml")
}

func runCoverage(cmd *cobra.Command, args []string) error {
	e, err := loadEngine()
	if err != nil {
		return err
	}

	live := e.Coverage()
	out := cmd.OutOrStdout()

	if coverageSnapshot {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(live.Snapshot()); err != nil {
			return fmt.Errorf("failed to encode snapshot: %w", err)
		}
		return enc.Close()
	}

	checkErr := e.CheckCoverage()
	var regression *coverage.RegressionError
	if checkErr != nil && !errors.As(checkErr, &regression) {
		return checkErr
	}

	if jsonOutput {
		report := struct {
			Live       coverage.Metrics        `json:"live"`
			Baseline   models.CoverageBaseline `json:"baseline"`
			Passed     bool                    `json:"passed"`
			Violations []coverage.Violation    `json:"violations"`
		}{Live: live, Baseline: e.Baseline(), Passed: checkErr == nil, Violations: []coverage.Violation{}}
		if regression != nil {
			report.Violations = regression.Violations
		}
		if err := writeJSON(out, report); err != nil {
			return err
		}
		return checkErr
	}

	base := e.Baseline()
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tLIVE\tBASELINE\tRULE")
	fmt.Fprintf(tw, "dsaProblemCount\t%d\t%d\t>=\n", live.DSAProblemCount, base.DSAProblemCount)
	fmt.Fprintf(tw, "problemConceptCount\t%d\t%d\t>=\n", live.ProblemConceptCount, base.ProblemConceptCount)
	fmt.Fprintf(tw, "mappedDsaProblemCount\t%d\t%d\t>=\n", live.MappedDSAProblemCount, base.MappedDSAProblemCount)
	fmt.Fprintf(tw, "unmappedDsaProblemCount\t%d\t%d\t<=\n", live.UnmappedDSAProblemCount, base.UnmappedDSAProblemCount)
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(live.UnmappedDSAProblemIDs) > 0 {
		fmt.Fprintln(out, "\nunmapped DSA problems:")
		for _, id := range live.UnmappedDSAProblemIDs {
			fmt.Fprintf(out, "  %s\n", id)
		}
	}

	return checkErr
}
