package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cargoctl/cargo-config/internal/notify"
)

// newSwitchCmd creates the switch command.
func (cli *CLI) newSwitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "switch <value>",
		Aliases: []string{"use"},
		Short:   "Switch between cargo config profiles",
		Long: `Switch the active cargo config profile.

The profile's file is linked into ~/.cargo/config.toml, replacing whatever
was active before, and the pointer file is updated to record the new name.

Examples:
  # Switch to the work profile
  cargo-config switch work

  # Switch back to defaults
  cargo-config switch default`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: cli.profileNameCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if err := cli.Store.Switch(name); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), "Switched to %s", name)

			notifier := notify.New(cli.Settings.Notifications)
			if err := notifier.NotifySwitch(name); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to send notification: %v\n", err)
			}

			return nil
		},
	}
}
