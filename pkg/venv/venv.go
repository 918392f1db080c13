// Package venv locates the site-packages directory of a Python virtual
// environment.
//
// A POSIX virtualenv (venv, virtualenv, uv, poetry) lays out its installed
// packages as:
//
//	<root>/lib/python3.12/site-packages/
//
// Locate walks that structure read-only and reports any missing level as a
// NOT_FOUND error.
package venv

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matzehuels/depindex/pkg/errors"
)

const (
	// LibDir is the directory under the environment root holding versioned
	// interpreter library directories.
	LibDir = "lib"

	// PythonPrefix prefixes each versioned library directory (python3.12).
	PythonPrefix = "python"

	// SitePackages is the package store directory inside a library directory.
	SitePackages = "site-packages"
)

// Locate returns the absolute path of root's site-packages directory.
//
// The first versioned library directory in lexical order is used. A well
// formed environment contains exactly one.
func Locate(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "resolve %s", root)
	}
	if !isDir(abs) {
		return "", errors.New(errors.ErrCodeNotFound, "%s is not a directory", abs)
	}

	lib := filepath.Join(abs, LibDir)
	if !isDir(lib) {
		return "", errors.New(errors.ErrCodeNotFound, "%s does not exist", lib)
	}

	entries, err := os.ReadDir(lib)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeNotFound, err, "read %s", lib)
	}

	var pyDir string
	for _, e := range entries {
		if e.IsDir() && IsVersionDir(e.Name()) {
			pyDir = e.Name()
			break
		}
	}
	if pyDir == "" {
		return "", errors.New(errors.ErrCodeNotFound, "no python directory found in %s", lib)
	}

	sp := filepath.Join(lib, pyDir, SitePackages)
	if !isDir(sp) {
		return "", errors.New(errors.ErrCodeNotFound, "%s does not exist", sp)
	}
	return sp, nil
}

// IsVersionDir reports whether name looks like a versioned interpreter
// library directory: "python" followed by a version starting with a digit.
func IsVersionDir(name string) bool {
	rest, ok := strings.CutPrefix(name, PythonPrefix)
	if !ok || rest == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return unicode.IsDigit(r)
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
