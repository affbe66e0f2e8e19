package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"relife/internal/content"
)

func newContentCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Work with content tables",
	}

	validate := &cobra.Command{
		Use:   "validate [dir]",
		Short: "Load and validate a content directory",
		Long: `Loads every table in dir (or the configured content directory, or the
built-in tables) and reports all cross-reference and shape problems.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := c.cfg.ContentDir
			if len(args) == 1 {
				dir = args[0]
			}
			cat, err := content.Open(dir)
			if err != nil {
				return err
			}
			source := dir
			if source == "" {
				source = "built-in content"
			}
			t := cat.Tables
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render(source+" is valid"))
			fmt.Fprintln(out, infoStyle.Render(fmt.Sprintf(
				"%d cards, %d jobs, %d characters, %d fixed and %d random events, %d locations, %d achievements",
				len(t.Cards), len(t.Jobs), len(t.Characters), len(t.FixedEvents), len(t.RandomEvents),
				len(t.Locations), len(t.Achievements.Thresholds)+len(t.Achievements.Unique),
			)))
			return nil
		},
	}

	cmd.AddCommand(validate)
	return cmd
}
