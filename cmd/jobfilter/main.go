// Package main is the jobfilter engine: a localhost HTTP companion for the
// filter UI plus CLI commands for preferences, the API key and listing
// ingestion.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	dataDir string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "jobfilter",
		Short:         "Filter job listings against your interests and exclusions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", defaultDataDir(), "Directory holding config.yml and jobfilter.db (env JOBFILTER_DATA_DIR)")

	root.AddCommand(
		newServeCmd(opts),
		newFilterCmd(opts),
		newPrefsCmd(opts),
		newKeyCmd(opts),
		newFetchJobsCmd(opts),
		newStripJobsCmd(opts),
	)
	return root
}

// Engine data dir: use env if provided (the desktop shell can pass one), else local folder.
func defaultDataDir() string {
	if d := os.Getenv("JOBFILTER_DATA_DIR"); d != "" {
		return d
	}
	return "."
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
