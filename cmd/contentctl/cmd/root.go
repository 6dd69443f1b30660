// Package cmd implements the contentctl command-line interface.
package cmd

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/terra-clan/content-engine/internal/engine"
)

var (
	contentDir string
	jsonOutput bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "contentctl",
	Short: "Inspect and check the content directory",
	Long: `contentctl loads the same content directory the content-engine server
serves and runs its checks offline: authoring lint, registry integrity,
the coverage baseline, and the derived route and tag tables.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	defaultDir := os.Getenv("CONTENT_DIR")
	if defaultDir == "" {
		defaultDir = "./content"
	}

	rootCmd.PersistentFlags().StringVarP(&contentDir, "content-dir", "d", defaultDir, "content directory (env CONTENT_DIR)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "write JSON instead of text")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log loader progress to stderr")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(coverageCmd)
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(tagsCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// loadEngine builds an engine without failing on authoring defects; the
// commands that care report them explicitly.
func loadEngine() (*engine.Engine, error) {
	e, _, err := engine.Load(contentDir, false)
	return e, err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
