// Package pkg provides the libraries behind depindex.
//
// # Overview
//
// depindex makes the third-party Python code a project depends on
// searchable with Zoekt. For each declared distribution it finds the
// top-level directories the distribution installed into a virtualenv's
// site-packages and indexes each one as its own logical repository named
// "<project>/deps/<dir>".
//
//  1. [venv] - Locate the site-packages directory of a virtualenv
//  2. [deps/python] - Read distribution names from pyproject.toml or a list file
//  3. [sitepackages] - Resolve a distribution name to top-level directories
//  4. [zoekt] - Run zoekt-index over one directory
//  5. [pipeline] - Orchestration (collect → resolve → index)
//
// Supporting packages: [errors] for coded errors and input validation,
// [observability] for resolve and index hooks, and [buildinfo] for version
// information.
//
// # Data Flow
//
//	pyproject.toml / --packages / --packages-file
//	         ↓
//	    [deps/python] (distribution names)
//	         ↓
//	    [sitepackages] (RECORD lookup, name fallback)
//	         ↓
//	    [pipeline] (deduplicated work list)
//	         ↓
//	    [zoekt] (one zoekt-index run per directory)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/depindex/pkg/pipeline"
//	    "github.com/matzehuels/depindex/pkg/sitepackages"
//	    "github.com/matzehuels/depindex/pkg/venv"
//	    "github.com/matzehuels/depindex/pkg/zoekt"
//	)
//
//	store, err := venv.Locate(".venv")
//	if err != nil {
//	    return err
//	}
//	res := sitepackages.NewResolver(store, logger)
//	ix := zoekt.NewIndexer(store, "myproject", indexDir, logger)
//	result, err := pipeline.NewRunner(res, ix, logger).Execute(ctx, pipeline.Options{
//	    Project: "myproject",
//	})
//	fmt.Println(result.Summary()) // Done: 12 indexed, 0 failed
//
// [venv]: https://pkg.go.dev/github.com/matzehuels/depindex/pkg/venv
// [deps/python]: https://pkg.go.dev/github.com/matzehuels/depindex/pkg/deps/python
// [sitepackages]: https://pkg.go.dev/github.com/matzehuels/depindex/pkg/sitepackages
// [zoekt]: https://pkg.go.dev/github.com/matzehuels/depindex/pkg/zoekt
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/depindex/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/depindex/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/depindex/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/depindex/pkg/buildinfo
package pkg
