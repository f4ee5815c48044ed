package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for cliquekit.

To load completions:

Bash:
  $ source <(cliquekit completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ cliquekit completion bash > /etc/bash_completion.d/cliquekit
  # macOS:
  $ cliquekit completion bash > $(brew --prefix)/etc/bash_completion.d/cliquekit

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ cliquekit completion zsh > "${fpath[1]}/_cliquekit"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ cliquekit completion fish | source

  # To load completions for each session, execute once:
  $ cliquekit completion fish > ~/.config/fish/completions/cliquekit.fish

PowerShell:
  PS> cliquekit completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> cliquekit completion powershell > cliquekit.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
