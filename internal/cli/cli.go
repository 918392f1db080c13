// Package cli implements the depindex command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depindex/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display and environment variables.
const appName = "depindex"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer // status lines and results
	Err    io.Writer // spinner frames
}

// New creates a new CLI instance with a default logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
		Err:    w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Index Python dependencies into Zoekt",
		Long: `depindex resolves the Python distributions a project depends on to their
top-level directories in a virtualenv's site-packages and indexes each one with
zoekt-index under a logical repository name such as "myproject/deps/requests".`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().String(keyConfig, "", "config file (TOML, YAML or JSON)")

	root.AddCommand(c.indexCommand())
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) out() printer {
	return printer{w: c.Out}
}
