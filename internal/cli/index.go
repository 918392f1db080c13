package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depindex/pkg/deps/python"
	"github.com/matzehuels/depindex/pkg/pipeline"
	"github.com/matzehuels/depindex/pkg/sitepackages"
	"github.com/matzehuels/depindex/pkg/venv"
	"github.com/matzehuels/depindex/pkg/zoekt"
)

// indexCommand creates the index command.
func (c *CLI) indexCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Index a project's Python dependencies with zoekt-index",
		Long: `Index resolves each dependency of a project to its top-level directories in
the virtualenv's site-packages and runs zoekt-index once per directory.

Dependency names come from the first of:
  --packages         explicit list
  --packages-file    one name per line, # comments allowed
  --pyproject        [project].dependencies of pyproject.toml

Every flag can also be set through the environment (DEPINDEX_VENV,
DEPINDEX_INDEX_DIR, ...) or a --config file.`,
		Example: `  # Index everything declared in ./pyproject.toml
  depindex index --venv .venv --project myproject

  # Index two packages and preview the result first
  depindex index --venv .venv --project myproject --packages requests,urllib3 --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := newViper(cmd)
			if err != nil {
				return err
			}
			cfg, err := loadIndexConfig(v)
			if err != nil {
				return err
			}
			return c.runIndex(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String(keyVenv, "", "path to the virtualenv (e.g. .venv)")
	flags.String(keyProject, "", "project name prefix for repository names (default: name from pyproject.toml)")
	flags.String(keyPyproject, python.DefaultManifest, "path to pyproject.toml")
	flags.StringSlice(keyPackages, nil, "explicit distribution names, overrides pyproject.toml")
	flags.String(keyPackagesFile, "", "file with one distribution name per line")
	flags.String(keyIndexDir, "", "zoekt index directory (default ~/.zoekt)")
	flags.String(keyIndexer, zoekt.DefaultBinary, "indexer binary")
	flags.Bool(keyDryRun, false, "resolve and list directories without indexing")
	markPathFlags(cmd)

	return cmd
}

// runIndex executes one index run and prints its progress to c.Out.
func (c *CLI) runIndex(ctx context.Context, cfg *indexConfig) error {
	logger := loggerFromContext(ctx)

	store, err := venv.Locate(cfg.Venv)
	if err != nil {
		return err
	}
	logger.Debug("located site-packages", "path", store)

	ix := zoekt.NewIndexer(store, cfg.Project, cfg.IndexDir, logger)
	ix.Binary = cfg.Indexer
	if !cfg.DryRun {
		if err := ix.Available(); err != nil {
			logger.Warn("indexer unavailable, every directory will fail", "err", err)
		}
	}

	runner := pipeline.NewRunner(sitepackages.NewResolver(store, logger), ix, logger)
	rep := &reporter{
		p:        c.out(),
		ctx:      ctx,
		store:    store,
		project:  cfg.Project,
		indexDir: cfg.IndexDir,
		dryRun:   cfg.DryRun,
	}
	if logger.GetLevel() > log.DebugLevel && isTerminal(c.Err) {
		rep.spin = c.Err
	}
	runner.OnEvent = rep.handle

	result, err := runner.Execute(ctx, pipeline.Options{
		Project:          cfg.Project,
		Packages:         cfg.Packages,
		PackagesFile:     cfg.PackagesFile,
		Manifest:         cfg.Pyproject,
		ManifestExplicit: cfg.manifestExplicit(),
		DryRun:           cfg.DryRun,
	})
	rep.stopSpinner()
	if err != nil {
		return err
	}

	p := c.out()
	if cfg.DryRun {
		for _, t := range result.Targets {
			p.mapping(t.Dir, "r:"+t.RepoName)
		}
		p.newline()
		p.info("Dry run: %d directories would be indexed", len(result.Targets))
		return nil
	}

	p.newline()
	if result.Failed == 0 {
		p.success("%s", result.Summary())
	} else {
		p.warning("%s", result.Summary())
	}
	return nil
}

// =============================================================================
// Progress Reporting
// =============================================================================

// reporter turns pipeline events into status lines.
type reporter struct {
	p        printer
	spin     io.Writer // spinner output, nil when not a terminal
	spinner  *Spinner
	ctx      context.Context
	store    string
	project  string
	indexDir string
	dryRun   bool
}

func (r *reporter) handle(ev pipeline.Event) {
	switch ev.Kind {
	case pipeline.EventNames:
		if ev.Source == pipeline.SourcePackages {
			r.p.info("Using %d packages from the command line", ev.Count)
		} else {
			r.p.info("Read %d dependencies from %s", ev.Count, ev.Path)
		}

	case pipeline.EventUnresolved:
		r.p.warning("SKIP %s (%s)", ev.Name, ev.Detail)

	case pipeline.EventPlan:
		verb := "Indexing"
		if r.dryRun {
			verb = "Would index"
		}
		r.p.info("%s %d package directories from %s", verb, ev.Count, r.store)
		r.p.detail("Project: %s, Index: %s", r.project, r.indexDir)
		r.p.newline()

	case pipeline.EventIndexStart:
		r.startSpinner("Indexing " + ev.Target.Dir)

	case pipeline.EventIndexed:
		r.stopSpinner()
		r.p.success("%s %s r:%s", ev.Target.Dir, iconArrow, ev.Target.RepoName)

	case pipeline.EventSkipped:
		r.stopSpinner()
		r.p.warning("SKIP %s (%s)", ev.Target.Dir, ev.Result.Diagnostic)

	case pipeline.EventFailed:
		r.stopSpinner()
		r.p.error("%s: %s", ev.Target.Dir, ev.Result.Diagnostic)
	}
}

func (r *reporter) startSpinner(msg string) {
	if r.spin == nil {
		return
	}
	r.spinner = newSpinnerWithContext(r.ctx, r.spin, msg)
	r.spinner.Start()
}

func (r *reporter) stopSpinner() {
	if r.spinner != nil {
		r.spinner.Stop()
		r.spinner = nil
	}
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
