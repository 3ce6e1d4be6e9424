package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cargoctl/cargo-config/internal/profile"
)

// ListOutput represents profile list output for JSON.
type ListOutput struct {
	Current  string         `json:"current"`
	Profiles []profile.Info `json:"profiles"`
}

// newListCmd creates the list command.
func (cli *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List cargo config profiles",
		Long: `List all cargo config profiles.

The active profile is marked. Listing requires the pointer file, so it
fails before the first switch or migration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseOutputFormat(cli.outputFlag)
			if err != nil {
				return err
			}

			infos, current, err := cli.Store.List()
			if err != nil {
				return err
			}

			output := NewOutputWriterTo(format, cmd.OutOrStdout())
			return output.Write(ListOutput{Current: current, Profiles: infos}, func() {
				fmt.Fprintln(cmd.OutOrStdout(), "List of entries:")
				for _, info := range infos {
					if info.Active {
						fmt.Fprintf(cmd.OutOrStdout(), "- %s (active)\n", info.Name)
					} else {
						fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", info.Name)
					}
				}
			})
		},
	}
}
