package sitepackages

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	// MetadataSuffix marks per-distribution metadata directories.
	MetadataSuffix = ".dist-info"

	// RecordFile lists the files a distribution installed, one per line as
	// "path,hash,size".
	RecordFile = "RECORD"
)

// Resolver resolves distribution names against one site-packages directory.
// It never modifies the directory.
type Resolver struct {
	Store  string      // absolute site-packages path
	Logger *log.Logger // optional; debug output only
}

// NewResolver creates a resolver for the site-packages directory store.
// If logger is nil, log.Default() is used.
func NewResolver(store string, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{Store: store, Logger: logger}
}

// Resolve returns the sorted top-level directories installed by the
// distribution dist. An empty result means the distribution was not found.
// The only error is failure to list the site-packages directory.
func (r *Resolver) Resolve(dist string) ([]string, error) {
	entries, err := os.ReadDir(r.Store)
	if err != nil {
		return nil, err
	}

	m := NewMatcher(dist)
	for _, e := range entries {
		if !m.MatchMetadataDir(e.Name()) || !r.isDir(e.Name()) {
			continue
		}
		dirs := r.recordDirs(e.Name())
		if len(dirs) > 0 {
			r.logger().Debug("resolved from RECORD", "dist", dist, "metadata", e.Name(), "dirs", dirs)
			return dirs, nil
		}
		r.logger().Debug("no package directories in RECORD", "dist", dist, "metadata", e.Name())
	}

	if dir := FallbackDir(dist); isPlainName(dir) && r.isDir(dir) {
		r.logger().Debug("resolved by name", "dist", dist, "dir", dir)
		return []string{dir}, nil
	}
	return nil, nil
}

// recordDirs reads the RECORD file of the dist-info directory meta and
// returns the sorted set of top-level directories it lists that exist in the
// store. A missing or unreadable RECORD yields nil.
func (r *Resolver) recordDirs(meta string) []string {
	f, err := os.Open(filepath.Join(r.Store, meta, RecordFile))
	if err != nil {
		return nil
	}
	defer f.Close()

	// checked caches the verdict for each segment; RECORD lists every file.
	checked := make(map[string]bool)
	var dirs []string
	rd := bufio.NewReader(f)
	for {
		line, err := rd.ReadString('\n')
		if line != "" {
			path, _, _ := strings.Cut(line, ",")
			if top, _, ok := strings.Cut(path, "/"); ok {
				if _, done := checked[top]; !done {
					keep := IsPackageDir(top) && r.isDir(top)
					checked[top] = keep
					if keep {
						dirs = append(dirs, top)
					}
				}
			}
		}
		if err != nil {
			if err != io.EOF {
				r.logger().Warn("read RECORD", "metadata", meta, "err", err)
			}
			break
		}
	}

	sort.Strings(dirs)
	return dirs
}

// IsPackageDir reports whether a first path segment from a RECORD file may
// name a package directory. Metadata directories, private names, parent
// references and segments naming the store itself are rejected.
func IsPackageDir(top string) bool {
	switch {
	case top == "", top == ".", top == "..":
		return false
	case strings.HasPrefix(top, "_"):
		return false
	case strings.HasSuffix(top, MetadataSuffix):
		return false
	}
	return true
}

// FallbackDir returns the directory name tried when no RECORD resolves the
// distribution: lowercase, with '-' replaced by '_'.
func FallbackDir(dist string) string {
	return strings.ReplaceAll(strings.ToLower(dist), "-", "_")
}

// isPlainName reports whether name is a single path element below the store.
func isPlainName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

func (r *Resolver) isDir(name string) bool {
	fi, err := os.Stat(filepath.Join(r.Store, name))
	return err == nil && fi.IsDir()
}

func (r *Resolver) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}
