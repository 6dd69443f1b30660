package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terra-clan/content-engine/internal/routes"
)

var routesKind string

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List every site path derived from the content",
	Args:  cobra.NoArgs,
	RunE:  runRoutes,
}

func init() {
	routesCmd.Flags().StringVar(&routesKind, "kind", "", "only list routes of this kind (problem or concept)")
}

func runRoutes(cmd *cobra.Command, args []string) error {
	kind := routes.Kind(routesKind)
	if kind != "" && kind != routes.KindProblem && kind != routes.KindConcept {
		return fmt.Errorf("invalid --kind %q: want problem or concept", routesKind)
	}

	e, err := loadEngine()
	if err != nil {
		return err
	}

	list := []routes.Route{}
	for _, r := range e.Routes.All() {
		if kind == "" || r.Kind == kind {
			list = append(list, r)
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, list)
	}
	for _, r := range list {
		fmt.Fprintln(out, r.Path)
	}
	return nil
}
