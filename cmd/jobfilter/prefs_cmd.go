package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jobfilter-engine/internal/domain"
	"jobfilter-engine/internal/prefs"
)

func newPrefsCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or edit your interests and exclusions",
	}

	// withStore runs fn against an opened store and prints the result.
	withStore := func(writer bool, fn func(ctx context.Context, s *prefs.Store, args []string) error) func(*cobra.Command, []string) error {
		return func(c *cobra.Command, args []string) error {
			a, err := openApp(c.Context(), root.dataDir, writer)
			if err != nil {
				return err
			}
			defer a.close()

			if err := fn(c.Context(), a.prefs, args); err != nil {
				return err
			}
			printPrefs(c.OutOrStdout(), a.prefs.Get())
			return nil
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print both lists with their indexes",
		Args:  cobra.NoArgs,
		RunE:  withStore(false, func(context.Context, *prefs.Store, []string) error { return nil }),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add-interest TERM...",
		Short: "Append terms to the interested list",
		Args:  cobra.MinimumNArgs(1),
		RunE: withStore(true, func(ctx context.Context, s *prefs.Store, args []string) error {
			for _, t := range args {
				if err := s.AddInterest(ctx, t); err != nil {
					return err
				}
			}
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add-exclusion TERM...",
		Short: "Append terms to the not-interested list",
		Args:  cobra.MinimumNArgs(1),
		RunE: withStore(true, func(ctx context.Context, s *prefs.Store, args []string) error {
			for _, t := range args {
				if err := s.AddExclusion(ctx, t); err != nil {
					return err
				}
			}
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove-interest INDEX",
		Short: "Remove the interest at INDEX (as shown by list)",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(true, func(ctx context.Context, s *prefs.Store, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return s.RemoveInterest(ctx, i)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove-exclusion INDEX",
		Short: "Remove the exclusion at INDEX (as shown by list)",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(true, func(ctx context.Context, s *prefs.Store, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return s.RemoveExclusion(ctx, i)
		}),
	})

	var replace bool
	importCmd := &cobra.Command{
		Use:   "import [FILE]",
		Short: "Import tagged lines (\"interested: x\", \"not interested: y\") from FILE or stdin",
		Args:  cobra.MaximumNArgs(1),
	}
	importCmd.RunE = func(c *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		text, err := readInput(c, path)
		if err != nil {
			return err
		}
		return withStore(true, func(ctx context.Context, s *prefs.Store, _ []string) error {
			n, err := s.ImportTagged(ctx, text, replace)
			log.Infof("[prefs] imported %d terms", n)
			return err
		})(c, args)
	}
	importCmd.Flags().BoolVar(&replace, "replace", false, "Replace both lists instead of appending")
	cmd.AddCommand(importCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Empty both lists",
		Args:  cobra.NoArgs,
		RunE: withStore(true, func(ctx context.Context, s *prefs.Store, _ []string) error {
			return s.Replace(ctx, domain.EmptyPreferences())
		}),
	})

	return cmd
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("index must be an integer, got %q", s)
	}
	return i, nil
}

func printPrefs(w io.Writer, p domain.PreferenceSet) {
	fmt.Fprintln(w, "Interested in:")
	printTerms(w, p.Interested)
	fmt.Fprintln(w, "Not interested in:")
	printTerms(w, p.NotInterested)
}

func printTerms(w io.Writer, terms []string) {
	if len(terms) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for i, t := range terms {
		fmt.Fprintf(w, "  [%d] %s\n", i, t)
	}
}
