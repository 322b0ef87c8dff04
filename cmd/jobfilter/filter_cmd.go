package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"jobfilter-engine/internal/filter"
)

var errNoPreferences = errors.New("please add at least one interest or exclusion before analyzing")

type filterOptions struct {
	in        string
	heuristic bool
}

func newFilterCmd(root *rootOptions) *cobra.Command {
	opts := &filterOptions{}
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter pasted job listings against your preferences",
		Long:  "Read listing text (titles or descriptions, one per line) from --in or stdin and print the listings that match your preferences.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFilter(cmd, root.dataDir, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.in, "in", "i", "", "File with listing text (default stdin)")
	cmd.Flags().BoolVar(&opts.heuristic, "heuristic", false, "Use the local keyword filter instead of the AI service")
	return cmd
}

func runFilter(cmd *cobra.Command, dataDir string, opts *filterOptions) error {
	raw, err := readInput(cmd, opts.in)
	if err != nil {
		return err
	}

	a, err := openApp(cmd.Context(), dataDir, false)
	if err != nil {
		return err
	}
	defer a.close()

	if !a.prefs.HasAnyPreferences() {
		return errNoPreferences
	}

	svc := buildFilter(a.cfg())
	if opts.heuristic {
		svc.Mode = filter.ModeHeuristic
	}
	cred, _ := a.creds.Get(cmd.Context())

	res, err := svc.Filter(cmd.Context(), raw, a.prefs.Get(), cred)
	if err != nil {
		if filter.IsConfigurationError(err) {
			return fmt.Errorf("%w (run `jobfilter key set` or pass --heuristic)", err)
		}
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Text)
	return err
}

func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}
