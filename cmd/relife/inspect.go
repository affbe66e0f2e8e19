package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"relife/internal/snapshot"
)

func newInspectCmd(c *cli) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <snapshot.json>",
		Short: "Print a summary of a saved game snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			st, err := snapshot.Decode(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			c.log.Debug("loaded snapshot %s: %d players, turn %d", args[0], len(st.Players), st.Turn)

			out := cmd.OutOrStdout()
			if asJSON {
				// Re-encoding shows the normalized form.
				normalized, err := snapshot.Encode(st)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(normalized))
				return err
			}

			cat, err := c.catalog()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, renderState(st, &cat.Tables))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the normalized snapshot instead of a summary")
	return cmd
}
