package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depindex/pkg/sitepackages"
	"github.com/matzehuels/depindex/pkg/venv"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for depindex and write it to stdout.

Completion knows the distributions installed in the virtualenv given with
--venv, so "depindex resolve --venv .venv req<TAB>" offers "requests".

  bash:        source <(depindex completion bash)
  zsh:         depindex completion zsh > "${fpath[1]}/_depindex"
  fish:        depindex completion fish | source
  powershell:  depindex completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(c.Out)
			case "zsh":
				return cmd.Root().GenZshCompletion(c.Out)
			case "fish":
				return cmd.Root().GenFishCompletion(c.Out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(c.Out)
			}
			return nil
		},
	}
}

// markPathFlags tells the shell which flags of cmd take directories or files.
func markPathFlags(cmd *cobra.Command) {
	for _, name := range []string{keyVenv, keyIndexDir} {
		if cmd.Flags().Lookup(name) != nil {
			_ = cmd.MarkFlagDirname(name)
		}
	}
	if cmd.Flags().Lookup(keyPyproject) != nil {
		_ = cmd.MarkFlagFilename(keyPyproject, "toml")
	}
	if cmd.Flags().Lookup(keyPackagesFile) != nil {
		_ = cmd.MarkFlagFilename(keyPackagesFile)
	}
}

// completeDistributions offers the distributions installed in the
// virtualenv named by --venv whose names start with toComplete.
func completeDistributions(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	root, _ := cmd.Flags().GetString(keyVenv)
	if root == "" {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	store, err := venv.Locate(root)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return installedDistributions(store, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// installedDistributions lists the distribution names of the dist-info
// directories in store that start with prefix, ignoring case.
func installedDistributions(store, prefix string) []string {
	entries, err := os.ReadDir(store)
	if err != nil {
		return nil
	}
	prefix = strings.ToLower(prefix)

	var names []string
	for _, e := range entries {
		base, ok := strings.CutSuffix(e.Name(), sitepackages.MetadataSuffix)
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(base, "-")
		if name != "" && strings.HasPrefix(strings.ToLower(name), prefix) {
			names = append(names, name)
		}
	}
	return names
}
