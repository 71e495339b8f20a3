package main

import (
	"github.com/spf13/cobra"

	"github.com/tsukumogami/aurq/internal/aur"
	"github.com/tsukumogami/aurq/internal/userconfig"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate shell completion scripts",
	Long: `Generate a shell completion script for aurq on stdout.

Bash:
  $ source <(aurq completion bash)

Zsh:
  $ aurq completion zsh > "${fpath[1]}/_aurq"

Fish:
  $ aurq completion fish > ~/.config/fish/completions/aurq.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletionV2(out, true)
		case "zsh":
			return cmd.Root().GenZshCompletion(out)
		default:
			return cmd.Root().GenFishCompletion(out, true)
		}
	},
}

// completeSearchFields offers the values --searchby accepts.
func completeSearchFields(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	fields := make([]string, len(aur.SearchFields))
	for i, f := range aur.SearchFields {
		fields[i] = string(f)
	}
	return fields, cobra.ShellCompDirectiveNoFileComp
}

// completeConfigKeys offers config keys for the first positional argument.
func completeConfigKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return userconfig.SortedKeys(), cobra.ShellCompDirectiveNoFileComp
}
