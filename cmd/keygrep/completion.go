package keygrep

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:       "completion <shell>",
		Short:     "Generate a shell completion script",
		Long:      "Write a completion script for the given shell to stdout. Supported shells: bash, zsh, fish, powershell.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Example: `  # load completions in the current bash session
  source <(keygrep completion bash)

  # install permanently
  keygrep completion bash > /etc/bash_completion.d/keygrep
  keygrep completion zsh > "${fpath[1]}/_keygrep"
  keygrep completion fish > ~/.config/fish/completions/keygrep.fish
  keygrep completion powershell | Out-String | Invoke-Expression`,
		RunE: func(_ *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell %q (want bash, zsh, fish or powershell)", args[0])
			}
		},
	}
	rootCmd.AddCommand(cmd)
}
