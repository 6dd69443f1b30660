package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags <problem-id>",
	Short: "Show how a problem is classified and linked",
	Args:  cobra.ExactArgs(1),
	RunE:  runTags,
}

type tagsReport struct {
	ID              string   `json:"id"`
	EffectiveTags   []string `json:"effectiveTags"`
	RouteTags       []string `json:"routeTags"`
	IsDSA           bool     `json:"isDsa"`
	ConceptPattern  string   `json:"conceptPattern,omitempty"`
	RelatedPatterns []string `json:"relatedPatterns"`
}

func runTags(cmd *cobra.Command, args []string) error {
	e, err := loadEngine()
	if err != nil {
		return err
	}

	p := e.Problem(args[0])
	if p == nil {
		return fmt.Errorf("unknown problem %q", args[0])
	}

	report := tagsReport{
		ID:              p.ID,
		EffectiveTags:   e.Taxonomy.EffectiveTags(p),
		RouteTags:       e.Taxonomy.RouteTags(p),
		IsDSA:           e.Taxonomy.IsDSA(p),
		RelatedPatterns: []string{},
	}
	if a, ok := e.Concepts.Get(p.ID); ok {
		report.ConceptPattern = string(a.Pattern)
	}
	for _, link := range e.CrossLinks.RelatedPatterns(p.ID) {
		report.RelatedPatterns = append(report.RelatedPatterns, link.ID)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, report)
	}

	fmt.Fprintf(out, "problem:    %s\n", report.ID)
	fmt.Fprintf(out, "tags:       %s\n", strings.Join(report.EffectiveTags, ", "))
	fmt.Fprintf(out, "routes:     %s\n", strings.Join(report.RouteTags, ", "))
	fmt.Fprintf(out, "dsa:        %t\n", report.IsDSA)
	if report.ConceptPattern != "" {
		fmt.Fprintf(out, "concept:    %s\n", report.ConceptPattern)
	} else {
		fmt.Fprintln(out, "concept:    none")
	}
	if len(report.RelatedPatterns) > 0 {
		fmt.Fprintf(out, "patterns:   %s\n", strings.Join(report.RelatedPatterns, ", "))
	}
	return nil
}
