package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// newTokenCmd creates the token command group.
func (cli *CLI) newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage registry tokens in the OS keyring",
		Long: `Store cargo registry tokens in the operating system keyring.

Tokens kept here never sit in plaintext profile files. Retrieve one with
'cargo-config token get' when you need it, e.g. for 'cargo login'.

Examples:
  # Store a token for crates.io (reads the token from stdin)
  cargo-config token set crates-io

  # Print it
  cargo-config token get crates-io

  # Forget it
  cargo-config token remove crates-io`,
	}

	cmd.AddCommand(
		cli.newTokenSetCmd(),
		cli.newTokenGetCmd(),
		cli.newTokenRemoveCmd(),
	)

	return cmd
}

// newTokenSetCmd creates the token set command.
func (cli *CLI) newTokenSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <registry> [token]",
		Short: "Store a registry token",
		Long: `Store a token for a registry in the OS keyring.

When the token argument is omitted it is read from stdin, so it can be
piped in without ending up in shell history.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := args[0]

			var token string
			if len(args) == 2 {
				token = args[1]
			} else {
				reader := bufio.NewReader(cmd.InOrStdin())
				line, err := reader.ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read token from stdin: %w", err)
				}
				token = strings.TrimSpace(line)
			}

			if token == "" {
				return errors.New("token cannot be empty")
			}

			if err := cli.Tokens.Set(registry, token); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), "Stored token for %s", registry)
			return nil
		},
	}
}

// newTokenGetCmd creates the token get command.
func (cli *CLI) newTokenGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <registry>",
		Short: "Print a stored registry token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := cli.Tokens.Get(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}

// newTokenRemoveCmd creates the token remove command.
func (cli *CLI) newTokenRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <registry>",
		Aliases: []string{"rm", "delete"},
		Short:   "Remove a stored registry token",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := args[0]

			if err := cli.Tokens.Delete(registry); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), "Removed token for %s", registry)
			return nil
		},
	}
}
