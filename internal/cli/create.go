package cli

import (
	"github.com/spf13/cobra"

	"github.com/cargoctl/cargo-config/internal/config"
)

// newCreateCmd creates the create command.
func (cli *CLI) newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <value>",
		Short: "Create a new cargo config profile",
		Long: `Create a new, empty cargo config profile.

The profile is stored as <value>.toml in the profile directory. Creating a
profile does not activate it; use 'cargo-config switch' for that.

Examples:
  # Create a profile for a corporate mirror
  cargo-config create work

  # Then fill it in
  cargo-config edit work`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if err := cli.Store.Create(name); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), "Created %s%s", name, config.ProfileExt)
			return nil
		},
	}
}
