package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depindex/pkg/errors"
	"github.com/matzehuels/depindex/pkg/sitepackages"
	"github.com/matzehuels/depindex/pkg/venv"
)

// resolveCommand creates the resolve command, which prints the site-packages
// directories of each name without indexing anything.
func (c *CLI) resolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve NAME...",
		Short: "Show the site-packages directories of distributions",
		Example: `  depindex resolve --venv .venv requests PyYAML typing_extensions`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := newViper(cmd)
			if err != nil {
				return err
			}
			root := strings.TrimSpace(v.GetString(keyVenv))
			if root == "" {
				return errors.New(errors.ErrCodeInvalidInput, "--venv is required")
			}
			return c.runResolve(cmd.Context(), root, args)
		},
	}

	cmd.Flags().String(keyVenv, "", "path to the virtualenv (e.g. .venv)")
	markPathFlags(cmd)
	cmd.ValidArgsFunction = completeDistributions

	return cmd
}

// runResolve prints one line per name. Names that resolve to nothing are
// reported, not treated as errors.
func (c *CLI) runResolve(ctx context.Context, root string, names []string) error {
	logger := loggerFromContext(ctx)

	store, err := venv.Locate(root)
	if err != nil {
		return err
	}

	prog := newProgress(logger, "resolve")
	res := sitepackages.NewResolver(store, logger)
	p := c.out()
	found := 0
	for _, name := range names {
		if err := errors.ValidatePackageName(name); err != nil {
			p.warning("%s: %s", name, errors.UserMessage(err))
			continue
		}
		dirs, err := res.Resolve(name)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "resolve %s", name)
		}
		if len(dirs) == 0 {
			p.warning("%s: not found in site-packages", name)
			continue
		}
		found++
		p.success("%s %s %s", name, iconArrow, strings.Join(dirs, ", "))
	}
	prog.done("Resolved %d of %d names", found, len(names))
	return nil
}
