package main

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect calculator configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if used := a.v.ConfigFileUsed(); used != "" {
				writeLine(out, "# "+used)
			}

			keys := lo.Filter(a.v.AllKeys(), func(k string, _ int) bool {
				return k != ""
			})
			slices.Sort(keys)
			for _, k := range keys {
				if _, err := fmt.Fprintf(out, "%s: %v\n", k, a.v.Get(k)); err != nil {
					return err
				}
			}
			return nil
		},
	})

	return cmd
}
