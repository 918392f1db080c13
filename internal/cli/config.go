package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matzehuels/depindex/pkg/deps/python"
	"github.com/matzehuels/depindex/pkg/errors"
)

// envPrefix prefixes environment variables that fill unset flags
// (DEPINDEX_VENV, DEPINDEX_INDEX_DIR, ...).
const envPrefix = "DEPINDEX"

// Configuration keys. They double as flag names.
const (
	keyConfig       = "config"
	keyVenv         = "venv"
	keyProject      = "project"
	keyPyproject    = "pyproject"
	keyPackages     = "packages"
	keyPackagesFile = "packages-file"
	keyIndexDir     = "index-dir"
	keyIndexer      = "indexer"
	keyDryRun       = "dry-run"
)

// indexConfig holds the resolved settings of one index run.
type indexConfig struct {
	Venv         string
	Project      string
	Pyproject    string
	Packages     []string
	PackagesFile string
	IndexDir     string
	Indexer      string
	DryRun       bool
}

// newViper returns a viper instance bound to cmd's flags. Values resolve as
// flag > environment > config file > flag default.
func newViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if f := cmd.Flag(keyConfig); f != nil && f.Value.String() != "" {
		v.SetConfigFile(f.Value.String())
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", f.Value.String())
		}
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "bind flags")
	}
	return v, nil
}

// loadIndexConfig reads the index settings from v and validates them.
func loadIndexConfig(v *viper.Viper) (*indexConfig, error) {
	cfg := &indexConfig{
		Venv:         strings.TrimSpace(v.GetString(keyVenv)),
		Project:      strings.TrimSpace(v.GetString(keyProject)),
		Pyproject:    v.GetString(keyPyproject),
		Packages:     splitList(v.GetStringSlice(keyPackages)),
		PackagesFile: v.GetString(keyPackagesFile),
		IndexDir:     v.GetString(keyIndexDir),
		Indexer:      v.GetString(keyIndexer),
		DryRun:       v.GetBool(keyDryRun),
	}

	if cfg.Venv == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "--venv is required")
	}
	if cfg.Pyproject == "" {
		cfg.Pyproject = python.DefaultManifest
	}
	if cfg.Project == "" {
		cfg.Project = python.ProjectName(cfg.Pyproject)
	}
	if cfg.Project == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "--project is required (no project name found in %s)", cfg.Pyproject)
	}

	if cfg.IndexDir == "" {
		dir, err := defaultIndexDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "no --index-dir given and no home directory")
		}
		cfg.IndexDir = dir
	}
	dir, err := expandHome(cfg.IndexDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "expand %s", cfg.IndexDir)
	}
	cfg.IndexDir = dir
	return cfg, nil
}

// manifestExplicit reports whether the manifest path differs from the default.
func (c *indexConfig) manifestExplicit() bool {
	return c.Pyproject != python.DefaultManifest
}

// splitList flattens comma-separated entries, so "a,b" from an environment
// variable behaves like --packages a,b. Blank entries are kept; the
// pipeline drops them and rejects a list that is blank throughout.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		out = append(out, strings.Split(item, ",")...)
	}
	return out
}

// =============================================================================
// Paths
// =============================================================================

// defaultIndexDir returns the zoekt index directory (~/.zoekt).
func defaultIndexDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".zoekt"), nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) (string, error) {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok && path != "~" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, rest), nil
}
