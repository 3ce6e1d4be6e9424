package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/cargoctl/cargo-config/internal/editor"
	"github.com/cargoctl/cargo-config/internal/profile"
)

// newEditCmd creates the edit command.
func (cli *CLI) newEditCmd() *cobra.Command {
	var editorFlag string

	cmd := &cobra.Command{
		Use:   "edit <value>",
		Short: "Launch an editor to edit a config profile",
		Long: `Launch an editor on a profile's file.

The editor is taken from --editor, then $EDITOR, then $VISUAL, then the
'editor' setting. The launch is fire-and-forget: cargo-config returns
immediately and does not know whether the edit was saved.

Editing the active profile takes effect immediately, since cargo's
config.toml is a hard link to it.

Examples:
  cargo-config edit --editor vim work
  EDITOR=nano cargo-config edit work`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: cli.profileNameCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if err := profile.ValidateName(name); err != nil {
				return err
			}

			editorName := cli.resolveEditor(editorFlag)
			if editorName == "" {
				return errors.New("no editor found: pass --editor or set $EDITOR")
			}

			ed := editor.New()
			if _, err := ed.Open(editorName, cli.Paths.ProfileFile(name)); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), "Opened %s at %s", editorName, name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&editorFlag, "editor", "e", "", "Editor to launch")

	return cmd
}

// resolveEditor picks the editor from the flag, the environment, or settings.
func (cli *CLI) resolveEditor(flag string) string {
	if flag != "" {
		return flag
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	if e := os.Getenv("VISUAL"); e != "" {
		return e
	}
	return cli.Settings.Editor
}
