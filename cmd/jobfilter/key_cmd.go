package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newKeyCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the OpenAI API key",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set [KEY]",
		Short: "Store the API key (reads stdin when KEY is omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			key := ""
			if len(args) == 1 {
				key = args[0]
			} else {
				raw, err := readInput(c, "")
				if err != nil {
					return err
				}
				key = raw
			}
			key = strings.TrimSpace(key)
			if key == "" {
				return errors.New("empty API key")
			}

			a, err := openApp(c.Context(), root.dataDir, true)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.creds.Set(c.Context(), key); err != nil {
				return fmt.Errorf("store API key: %w", err)
			}
			fmt.Fprintln(c.OutOrStdout(), "API key saved")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Report whether an API key is configured",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			a, err := openApp(c.Context(), root.dataDir, false)
			if err != nil {
				return err
			}
			defer a.close()

			if a.creds.Has(c.Context()) {
				fmt.Fprintln(c.OutOrStdout(), "configured")
			} else {
				fmt.Fprintln(c.OutOrStdout(), "not configured")
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the stored API key",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			a, err := openApp(c.Context(), root.dataDir, true)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.creds.Delete(c.Context()); err != nil {
				return fmt.Errorf("delete API key: %w", err)
			}
			fmt.Fprintln(c.OutOrStdout(), "API key removed")
			return nil
		},
	})

	return cmd
}
