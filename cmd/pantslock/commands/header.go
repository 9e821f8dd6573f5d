package commands

import (
	"github.com/DLukeNelson/pants/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newHeaderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "header <lockfile>",
		Short: "Print the decoded metadata header of a lockfile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolve, _ := cmd.Flags().GetString("resolve")
			delimiter, _ := cmd.Flags().GetString("delimiter")

			return c.app.Header(cmd.Context(), args[0], cmd.OutOrStdout(), app.HeaderOptions{
				Resolve:   resolve,
				Delimiter: delimiter,
			})
		},
	}
	cmd.Flags().StringP("resolve", "r", "", "Resolve name used in error context")
	cmd.Flags().StringP("delimiter", "d", "#", "Comment delimiter used by the lockfile header")
	return cmd
}
