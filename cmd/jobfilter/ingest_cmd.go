package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jobfilter-engine/internal/ingest"
)

type fetchOptions struct {
	pages int
	out   string
}

func newFetchJobsCmd(root *rootOptions) *cobra.Command {
	opts := &fetchOptions{}
	cmd := &cobra.Command{
		Use:   "fetch-jobs",
		Short: "Fetch recent listings from the job search API into JSON snapshots",
		Long:  "Search the job API with the ingest section of config.yml (key from X_RAPIDAPI_KEY) and save full and reduced snapshots to the results dir.",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			_, cfg, err := loadConfig(root.dataDir)
			if err != nil {
				return err
			}
			setupLogging(cfg.App.LogLevel)

			ic := cfg.Ingest
			ic.ResultsDir = resultsDir(root.dataDir, ic.ResultsDir)
			if opts.pages > 0 {
				ic.Pages = opts.pages
			}
			if opts.out != "" {
				ic.ResultsDir = opts.out
			}

			res, err := ingest.Run(c.Context(), ic, os.Getenv("X_RAPIDAPI_KEY"), time.Now)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "Total jobs processed: %d\nFields in filtered version: %d\nFull data: %s\nFiltered data: %s\n",
				res.Total, len(ingest.FieldsToKeep), res.Saved.FullPath, res.Saved.FilteredPath)
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.pages, "pages", 0, "Pages to fetch (overrides ingest.pages)")
	cmd.Flags().StringVar(&opts.out, "out", "", "Results directory (overrides ingest.results_dir)")
	return cmd
}

// resultsDir resolves a relative results dir against the data dir.
func resultsDir(dataDir, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(dataDir, dir)
}

func newStripJobsCmd(root *rootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "strip-jobs [FILE]",
		Short: "Reduce a saved snapshot to the kept fields",
		Long:  "Reduce FILE (default: the newest jobs_*.json in the results dir) to the allow-listed fields and write filtered_jobs_<timestamp>.json.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			_, cfg, err := loadConfig(root.dataDir)
			if err != nil {
				return err
			}
			setupLogging(cfg.App.LogLevel)

			dir := resultsDir(root.dataDir, cfg.Ingest.ResultsDir)
			if out == "" {
				out = dir
			}

			in := ""
			if len(args) == 1 {
				in = args[0]
			} else {
				in, err = ingest.LatestSnapshot(dir)
				if err != nil {
					return err
				}
				log.Infof("[ingest] no file specified, using latest found: %s", in)
			}

			res, err := ingest.StripFile(in, out, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "Filtered data saved to: %s\nOriginal jobs: %d\nFiltered jobs: %d\nFields kept: %d\n",
				res.Path, res.Original, len(res.Jobs), len(ingest.FieldsToKeep))
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Output directory (default ingest.results_dir)")
	return cmd
}
