// Package cli provides the command-line interface for cargo-config.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cargoctl/cargo-config/internal/config"
	"github.com/cargoctl/cargo-config/internal/profile"
	"github.com/cargoctl/cargo-config/internal/tokenstore"
)

// CLI holds the application state for the CLI.
type CLI struct {
	Paths    config.Paths
	Settings *config.Settings
	Store    *profile.Store
	Tokens   tokenstore.TokenStore
	rootCmd  *cobra.Command

	// Flags
	outputFlag string
}

// New creates a new CLI instance.
func New() *CLI {
	cli := &CLI{
		Tokens: tokenstore.NewTokenStore(),
	}

	cli.rootCmd = &cobra.Command{
		Use:   "cargo-config [command]",
		Short: "Switch cargo configurations with ease",
		Long: `cargo-config manages named cargo configuration profiles.

Profiles live in ~/.cargo/cargo-config/, one TOML file per profile. The
active profile is hard-linked into ~/.cargo/config.toml, the file cargo
actually reads, so edits to the active profile take effect immediately.

On first run an unmanaged ~/.cargo/config.toml is migrated into a profile
named 'config' and activated.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.initialize(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// Global flags
	cli.rootCmd.PersistentFlags().StringVarP(&cli.outputFlag, "output", "o", "text", "Output format (text, json)")

	// Add commands
	cli.addCommands()

	return cli
}

// addCommands adds all subcommands to the root command.
func (cli *CLI) addCommands() {
	cli.rootCmd.AddCommand(
		cli.newCreateCmd(),
		cli.newSwitchCmd(),
		cli.newListCmd(),
		cli.newRemoveCmd(),
		cli.newEditCmd(),
		cli.newTokenCmd(),
		cli.newDoctorCmd(),
		cli.newVersionCmd(),
		cli.newCompletionCmd(),
	)
}

// skipInitialization reports whether a command runs without store setup.
func skipInitialization(name string) bool {
	switch name {
	case "version", "completion", "help":
		return true
	}
	return false
}

// isCompletionRequest reports whether name is one of cobra's hidden shell
// completion request commands.
func isCompletionRequest(name string) bool {
	return name == cobra.ShellCompRequestCmd || name == cobra.ShellCompNoDescRequestCmd
}

// initialize resolves paths, loads settings, builds the store, and runs the
// one-time lazy migration before any command dispatches.
func (cli *CLI) initialize(cmd *cobra.Command) error {
	if skipInitialization(cmd.Name()) {
		return nil
	}

	paths, err := config.GetPaths()
	if err != nil {
		return err
	}
	cli.Paths = paths

	settings, err := config.LoadSettings(paths)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	cli.Settings = settings

	cli.Store = profile.NewStore(paths, settings.Activation)

	// Completion requests need the store for profile-name completion but
	// must not trigger the one-time migration.
	if isCompletionRequest(cmd.Name()) {
		return nil
	}

	return cli.Store.Migrate(cmd.OutOrStdout())
}

// Execute runs the CLI.
func (cli *CLI) Execute(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// completeProfileNames returns profile names for shell completion.
func (cli *CLI) completeProfileNames() []string {
	if cli.Store == nil {
		return nil
	}
	infos, _, err := cli.Store.List()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	return names
}

// profileNameCompletion is the ValidArgsFunction used by commands taking a
// profile name as their single argument.
func (cli *CLI) profileNameCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return cli.completeProfileNames(), cobra.ShellCompDirectiveNoFileComp
}
