// Package pipeline runs the collect → resolve → index flow of depindex.
//
// This package is the only place that owns run-scoped state: the list of
// distribution names, the deduplicated work list and the success/failure
// counters. Everything it calls (manifest reading, name resolution,
// indexing) is stateless.
//
// # Stages
//
//  1. Collect: read distribution names from the first configured source,
//     in priority order: explicit list, package-list file, pyproject.toml
//  2. Resolve: map each name to site-packages directories; names that
//     resolve to nothing are reported and dropped
//  3. Index: run the indexer once per distinct directory, in first-seen
//     order, one at a time
//
// Failures in stage 1 are fatal. Failures of individual names or
// directories in stages 2 and 3 are reported as events and counted; the run
// continues.
//
// # Usage
//
//	res := sitepackages.NewResolver(store, logger)
//	ix := zoekt.NewIndexer(store, "myproject", indexDir, logger)
//	runner := pipeline.NewRunner(res, ix, logger)
//	runner.OnEvent = func(ev pipeline.Event) { ... }
//	result, err := runner.Execute(ctx, pipeline.Options{Project: "myproject"})
package pipeline

import (
	"os"
	"strings"

	"github.com/matzehuels/depindex/pkg/deps/python"
	"github.com/matzehuels/depindex/pkg/errors"
	"github.com/matzehuels/depindex/pkg/zoekt"
)

// Source identifies where the distribution names of a run came from.
type Source string

// Name sources, in priority order.
const (
	SourcePackages     Source = "packages"
	SourcePackagesFile Source = "packages-file"
	SourceManifest     Source = "manifest"
)

// Options configures a run.
type Options struct {
	// Project prefixes every logical repository name.
	Project string

	// Packages is an explicit list of distribution names. When non-empty it
	// overrides every other source.
	Packages []string

	// PackagesFile is a file with one distribution name per line. Used when
	// Packages is empty.
	PackagesFile string

	// Manifest is the pyproject.toml path used when neither Packages nor
	// PackagesFile is set. Empty means python.DefaultManifest.
	Manifest string

	// ManifestExplicit records that Manifest was requested by the user
	// rather than defaulted. It only changes the error message when the
	// file is missing.
	ManifestExplicit bool

	// DryRun resolves and plans without running the indexer.
	DryRun bool
}

// Target is one directory to index.
type Target struct {
	Dir      string // directory name relative to site-packages
	RepoName string // logical repository name
}

// NameList is the outcome of CollectNames.
type NameList struct {
	Names  []string // distribution names as declared
	Source Source   // source the names were read from
	Path   string   // file read, empty for SourcePackages
}

// CollectNames returns the distribution names selected by opts. It fails if
// the selected source cannot be read or yields no names.
func CollectNames(opts Options) (*NameList, error) {
	list := &NameList{}

	switch {
	case len(opts.Packages) > 0:
		list.Source = SourcePackages
		for _, p := range opts.Packages {
			if p = strings.TrimSpace(p); p != "" {
				list.Names = append(list.Names, p)
			}
		}

	case opts.PackagesFile != "":
		list.Source, list.Path = SourcePackagesFile, opts.PackagesFile
		names, err := python.ReadPackageList(list.Path)
		if err != nil {
			return nil, err
		}
		list.Names = names

	default:
		list.Source, list.Path = SourceManifest, opts.Manifest
		if list.Path == "" {
			list.Path = python.DefaultManifest
		}
		if _, err := os.Stat(list.Path); err != nil {
			if opts.ManifestExplicit {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s not found", list.Path)
			}
			return nil, errors.New(errors.ErrCodeFileNotFound,
				"no %s found and no --packages given", python.DefaultManifest)
		}
		names, err := python.ParsePyproject(list.Path)
		if err != nil {
			return nil, err
		}
		list.Names = names
	}

	if len(list.Names) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no packages to index")
	}
	return list, nil
}

// Plan flattens resolved directory lists into targets, keeping the first
// occurrence of each directory.
func Plan(project string, resolved [][]string) []Target {
	seen := make(map[string]bool)
	var targets []Target
	for _, dirs := range resolved {
		for _, d := range dirs {
			if seen[d] {
				continue
			}
			seen[d] = true
			targets = append(targets, Target{Dir: d, RepoName: zoekt.RepoName(project, d)})
		}
	}
	return targets
}
