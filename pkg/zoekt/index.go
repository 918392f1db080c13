package zoekt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depindex/pkg/observability"
)

// DefaultBinary is the indexer command looked up in PATH.
const DefaultBinary = "zoekt-index"

// Status is the outcome of indexing one directory.
type Status int

const (
	// Indexed means the indexer exited with status zero.
	Indexed Status = iota
	// Skipped means the directory no longer exists; the indexer was not run.
	Skipped
	// Failed means the indexer could not be started or exited non-zero.
	Failed
)

func (s Status) String() string {
	switch s {
	case Indexed:
		return "indexed"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result describes one indexing attempt.
type Result struct {
	Dir        string        // directory name relative to the store
	RepoName   string        // logical repository name
	Status     Status        // outcome
	Diagnostic string        // indexer stderr or skip reason; empty on success
	Duration   time.Duration // time spent in the indexer
}

// OK reports whether the directory was indexed.
func (r Result) OK() bool { return r.Status == Indexed }

// Meta is the repository metadata document read by zoekt-index -meta.
type Meta struct {
	Name string `json:"Name"`
}

// RepoName returns the logical repository name for dir under project.
func RepoName(project, dir string) string {
	return project + "/deps/" + dir
}

// Indexer indexes directories of one site-packages store.
//
// Binary, Exec and TempDir may be replaced after construction; the zero
// TempDir uses the system default.
type Indexer struct {
	Store    string // absolute site-packages path
	Project  string // repository name prefix
	IndexDir string // zoekt index directory passed as -index
	Binary   string // indexer command
	TempDir  string // directory for metadata files
	Exec     Executor
	Logger   *log.Logger
}

// NewIndexer creates an indexer that runs DefaultBinary.
// If logger is nil, log.Default() is used.
func NewIndexer(store, project, indexDir string, logger *log.Logger) *Indexer {
	if logger == nil {
		logger = log.Default()
	}
	return &Indexer{
		Store:    store,
		Project:  project,
		IndexDir: indexDir,
		Binary:   DefaultBinary,
		Exec:     ExecExecutor{},
		Logger:   logger,
	}
}

// Available reports an error if the indexer binary cannot be found.
func (ix *Indexer) Available() error {
	if _, err := exec.LookPath(ix.Binary); err != nil {
		return fmt.Errorf("%s not found in PATH (install with: go install github.com/sourcegraph/zoekt/cmd/zoekt-index@latest): %w", ix.Binary, err)
	}
	return nil
}

// Index runs the indexer over the store directory dir. It never returns an
// error: every failure is reported through the Result.
func (ix *Indexer) Index(ctx context.Context, dir string) Result {
	res := Result{Dir: dir, RepoName: RepoName(ix.Project, dir)}

	path := filepath.Join(ix.Store, dir)
	if fi, err := os.Stat(path); err != nil || !fi.IsDir() {
		res.Status = Skipped
		res.Diagnostic = "not a directory"
		return res
	}

	hooks := observability.Index()
	hooks.OnIndexStart(ctx, dir, res.RepoName)
	start := time.Now()

	diag, err := ix.run(ctx, path, res.RepoName)
	res.Duration = time.Since(start)
	if err != nil {
		res.Status = Failed
		res.Diagnostic = diag
	} else {
		res.Status = Indexed
	}

	hooks.OnIndexComplete(ctx, dir, res.RepoName, res.Status.String(), res.Duration, err)
	ix.logger().Debug("indexer finished", "dir", dir, "repo", res.RepoName, "status", res.Status, "duration", res.Duration)
	return res
}

// run writes the metadata file, runs the indexer and removes the file.
// On failure it returns the indexer's stderr, or the error text when stderr
// is empty.
func (ix *Indexer) run(ctx context.Context, path, repo string) (string, error) {
	meta, err := writeMeta(ix.TempDir, repo)
	if err != nil {
		return err.Error(), err
	}
	defer os.Remove(meta)

	exe := ix.Exec
	if exe == nil {
		exe = ExecExecutor{}
	}

	stderr, err := exe.Run(ctx, ix.Binary, "-index", ix.IndexDir, "-meta", meta, path)
	if err != nil {
		msg := strings.TrimSpace(string(stderr))
		if msg == "" {
			msg = err.Error()
		}
		return msg, err
	}
	return "", nil
}

// writeMeta writes a metadata document naming repo to a new temporary file
// in dir and returns its path.
func writeMeta(dir, repo string) (string, error) {
	f, err := os.CreateTemp(dir, "*.meta.json")
	if err != nil {
		return "", fmt.Errorf("create metadata file: %w", err)
	}

	encErr := json.NewEncoder(f).Encode(Meta{Name: repo})
	closeErr := f.Close()
	if encErr != nil || closeErr != nil {
		_ = os.Remove(f.Name())
		if encErr != nil {
			return "", fmt.Errorf("write metadata file: %w", encErr)
		}
		return "", fmt.Errorf("write metadata file: %w", closeErr)
	}
	return f.Name(), nil
}

func (ix *Indexer) logger() *log.Logger {
	if ix.Logger == nil {
		return log.Default()
	}
	return ix.Logger
}
