// Package python reads the direct dependencies of a Python project.
//
// # Sources
//
//   - pyproject.toml: the PEP 621 [project].dependencies array, see
//     [ParsePyproject]
//   - package lists: plain text files with one distribution name per line,
//     see [ReadPackageList]
//
// Only distribution names are returned. Version specifiers, extras and
// environment markers are stripped by [DependencyName]:
//
//	python.DependencyName("uvicorn[standard]>=0.30; python_version>'3.8'") // "uvicorn"
//
// Names are returned as declared. Matching them against installed
// distributions (case and separator folding) is left to the caller.
package python

import "strings"

// DefaultManifest is the manifest read when no package source is given.
const DefaultManifest = "pyproject.toml"

// specifierDelims end the name part of a PEP 508 requirement string.
const specifierDelims = "><=!~[;"

// DependencyName returns the distribution name of a requirement string,
// cutting at the first version, extras or marker delimiter and trimming
// surrounding whitespace. It returns "" for requirements with no name.
func DependencyName(req string) string {
	if i := strings.IndexAny(req, specifierDelims); i >= 0 {
		req = req[:i]
	}
	return strings.TrimSpace(req)
}

// Normalize converts a distribution name to its PEP 503 canonical form:
// lowercase with underscores and dots replaced by hyphens.
func Normalize(name string) string {
	return strings.NewReplacer("_", "-", ".", "-").Replace(strings.ToLower(strings.TrimSpace(name)))
}
