package cli

import (
	"github.com/spf13/cobra"
)

// newCompletionCmd creates the completion command.
func (cli *CLI) newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for cargo-config.

To load completions:

Bash:
  $ source <(cargo-config completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ cargo-config completion bash > /etc/bash_completion.d/cargo-config
  # macOS:
  $ cargo-config completion bash > $(brew --prefix)/etc/bash_completion.d/cargo-config

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ cargo-config completion zsh > "${fpath[1]}/_cargo-config"
  # You may need to start a new shell for this to take effect.

Fish:
  $ cargo-config completion fish | source
  # To load completions for each session, execute once:
  $ cargo-config completion fish > ~/.config/fish/completions/cargo-config.fish

PowerShell:
  PS> cargo-config completion powershell | Out-String | Invoke-Expression
  # To load completions for every new session, run:
  PS> cargo-config completion powershell > cargo-config.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
