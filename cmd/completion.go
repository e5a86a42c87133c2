package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate completion script",
	Long: `Generates a shell completion script for hbc.

  $ source <(hbc completion bash)
  $ hbc completion zsh > "${fpath[1]}/_hbc"
  $ hbc completion fish | source
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.ExactValidArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			cmd.Root().GenFishCompletion(os.Stdout, true)
		}
	},
	Hidden: true,
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// completeTaskNames completes the first argument with the names of the registered tasks.
// Completion must not abort, so a missing or broken project yields no suggestions.
func completeTaskNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	p, err := tryLoadHostProject()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	registry, err := p.tryTaskRegistry()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	names := []string{}
	for _, task := range registry.Tasks() {
		names = append(names, task.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
