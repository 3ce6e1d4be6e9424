package cli

import (
	"github.com/spf13/cobra"
)

// newRemoveCmd creates the remove command.
func (cli *CLI) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <value>",
		Aliases: []string{"rm", "delete"},
		Short:   "Remove a cargo config profile",
		Long: `Remove a cargo config profile.

Removing the active profile is allowed. Because activation uses a hard
link, ~/.cargo/config.toml keeps its content until the next switch; run
'cargo-config doctor' to spot that state.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: cli.profileNameCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if err := cli.Store.Remove(name); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), "Removed %s", name)
			return nil
		},
	}
}
