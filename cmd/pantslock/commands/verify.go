package commands

import (
	"github.com/DLukeNelson/pants/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [lockfiles...]",
		Short: "Verify lockfile metadata against the configured resolve",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			resolve, _ := cmd.Flags().GetString("resolve")
			tool, _ := cmd.Flags().GetBool("tool")
			delimiter, _ := cmd.Flags().GetString("delimiter")

			return c.app.Verify(cmd.Context(), args, app.VerifyOptions{
				Resolve:   resolve,
				Tool:      tool,
				Delimiter: delimiter,
			})
		},
	}
	cmd.Flags().StringP("resolve", "r", "", "Name of the resolve to validate against")
	cmd.Flags().BoolP("tool", "t", false, "Require exact requirement equality (tool lockfile semantics)")
	cmd.Flags().StringP("delimiter", "d", "#", "Comment delimiter used by the lockfile header")
	return cmd
}
