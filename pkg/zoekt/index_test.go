package zoekt

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
	"time"

	"github.com/matzehuels/depindex/pkg/observability"
)

// fakeExec records the command it was asked to run and the metadata
// document present while it ran.
type fakeExec struct {
	calls    int
	name     string
	args     []string
	metaPath string
	meta     Meta
	stderr   string
	err      error
}

func (f *fakeExec) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls++
	f.name = name
	f.args = args
	for i := 0; i+1 < len(args); i++ {
		if args[i] == "-meta" {
			f.metaPath = args[i+1]
		}
	}
	if data, err := os.ReadFile(f.metaPath); err == nil {
		_ = json.Unmarshal(data, &f.meta)
	}
	return []byte(f.stderr), f.err
}

func newTestIndexer(t *testing.T, exe Executor) (*Indexer, string) {
	t.Helper()
	store := t.TempDir()
	if err := os.MkdirAll(filepath.Join(store, "pkg"), 0755); err != nil {
		t.Fatal(err)
	}
	ix := NewIndexer(store, "proj", "/idx", nil)
	ix.Exec = exe
	ix.TempDir = t.TempDir()
	return ix, store
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("%s should be empty, has %d entries (metadata file not removed?)", dir, len(entries))
	}
}

func TestIndexSuccess(t *testing.T) {
	fake := &fakeExec{}
	ix, store := newTestIndexer(t, fake)

	res := ix.Index(context.Background(), "pkg")

	if res.Status != Indexed || !res.OK() {
		t.Fatalf("Status = %v, want indexed (diag %q)", res.Status, res.Diagnostic)
	}
	if res.RepoName != "proj/deps/pkg" {
		t.Errorf("RepoName = %q, want %q", res.RepoName, "proj/deps/pkg")
	}
	if res.Diagnostic != "" {
		t.Errorf("Diagnostic = %q, want empty", res.Diagnostic)
	}

	if fake.name != DefaultBinary {
		t.Errorf("command = %q, want %q", fake.name, DefaultBinary)
	}
	wantArgs := []string{"-index", "/idx", "-meta", fake.metaPath, filepath.Join(store, "pkg")}
	if !reflect.DeepEqual(fake.args, wantArgs) {
		t.Errorf("args = %v, want %v", fake.args, wantArgs)
	}
	if fake.meta.Name != "proj/deps/pkg" {
		t.Errorf("meta Name = %q, want %q", fake.meta.Name, "proj/deps/pkg")
	}
	if filepath.Dir(fake.metaPath) != ix.TempDir {
		t.Errorf("meta written to %q, want under %q", fake.metaPath, ix.TempDir)
	}
	assertEmptyDir(t, ix.TempDir)
}

func TestIndexFailure(t *testing.T) {
	tests := []struct {
		name     string
		stderr   string
		err      error
		wantDiag string
	}{
		{"stderr reported", "  2024/01/01 open shard: permission denied\n", errors.New("exit status 1"), "2024/01/01 open shard: permission denied"},
		{"empty stderr falls back to error", "", errors.New("exit status 2"), "exit status 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeExec{stderr: tt.stderr, err: tt.err}
			ix, _ := newTestIndexer(t, fake)

			res := ix.Index(context.Background(), "pkg")
			if res.Status != Failed {
				t.Fatalf("Status = %v, want failed", res.Status)
			}
			if res.Diagnostic != tt.wantDiag {
				t.Errorf("Diagnostic = %q, want %q", res.Diagnostic, tt.wantDiag)
			}
			assertEmptyDir(t, ix.TempDir)
		})
	}
}

func TestIndexStartFailureRemovesMeta(t *testing.T) {
	ix, _ := newTestIndexer(t, ExecExecutor{})
	ix.Binary = filepath.Join(t.TempDir(), "no-such-indexer")

	res := ix.Index(context.Background(), "pkg")
	if res.Status != Failed {
		t.Fatalf("Status = %v, want failed", res.Status)
	}
	if res.Diagnostic == "" {
		t.Error("Diagnostic should describe the start failure")
	}
	assertEmptyDir(t, ix.TempDir)
}

func TestIndexMetaWriteFailure(t *testing.T) {
	fake := &fakeExec{}
	ix, _ := newTestIndexer(t, fake)
	ix.TempDir = filepath.Join(t.TempDir(), "missing")

	res := ix.Index(context.Background(), "pkg")
	if res.Status != Failed {
		t.Fatalf("Status = %v, want failed", res.Status)
	}
	if fake.calls != 0 {
		t.Errorf("indexer ran %d times, want 0", fake.calls)
	}
}

func TestIndexSkipsMissingDirectory(t *testing.T) {
	fake := &fakeExec{}
	ix, store := newTestIndexer(t, fake)
	if err := os.WriteFile(filepath.Join(store, "mod.py"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	for _, dir := range []string{"gone", "mod.py"} {
		res := ix.Index(context.Background(), dir)
		if res.Status != Skipped {
			t.Errorf("Index(%q) Status = %v, want skipped", dir, res.Status)
		}
		if res.OK() {
			t.Errorf("Index(%q).OK() = true, want false", dir)
		}
	}
	if fake.calls != 0 {
		t.Errorf("indexer ran %d times, want 0", fake.calls)
	}
}

func TestIndexCallsHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	rec := &recordingHooks{}
	observability.SetIndexHooks(rec)

	ix, _ := newTestIndexer(t, &fakeExec{err: errors.New("exit status 1")})
	ix.Index(context.Background(), "pkg")

	if rec.starts != 1 {
		t.Errorf("OnIndexStart calls = %d, want 1", rec.starts)
	}
	if rec.lastStatus != "failed" {
		t.Errorf("OnIndexComplete status = %q, want %q", rec.lastStatus, "failed")
	}
}

type recordingHooks struct {
	observability.NoopIndexHooks
	starts     int
	lastStatus string
}

func (h *recordingHooks) OnIndexStart(context.Context, string, string) { h.starts++ }

func (h *recordingHooks) OnIndexComplete(_ context.Context, _, _, status string, _ time.Duration, _ error) {
	h.lastStatus = status
}

// writeScript writes an executable shell script standing in for zoekt-index.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "zoekt-index")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestIndexWithScript(t *testing.T) {
	script := writeScript(t, `# -index DIR -meta FILE TARGET
grep -q '"Name":"proj/deps/pkg"' "$4" || { echo "bad meta" >&2; exit 3; }
[ -d "$5" ] || { echo "no target" >&2; exit 4; }
touch "$2/shard"
`)

	ix, _ := newTestIndexer(t, ExecExecutor{})
	ix.Binary = script
	ix.IndexDir = t.TempDir()

	res := ix.Index(context.Background(), "pkg")
	if res.Status != Indexed {
		t.Fatalf("Status = %v, want indexed (diag %q)", res.Status, res.Diagnostic)
	}
	if _, err := os.Stat(filepath.Join(ix.IndexDir, "shard")); err != nil {
		t.Errorf("script did not run against index dir: %v", err)
	}
	assertEmptyDir(t, ix.TempDir)
}

func TestIndexWithFailingScript(t *testing.T) {
	script := writeScript(t, "echo 'zoekt: cannot parse file' >&2\nexit 1\n")

	ix, _ := newTestIndexer(t, ExecExecutor{})
	ix.Binary = script

	res := ix.Index(context.Background(), "pkg")
	if res.Status != Failed {
		t.Fatalf("Status = %v, want failed", res.Status)
	}
	if res.Diagnostic != "zoekt: cannot parse file" {
		t.Errorf("Diagnostic = %q, want %q", res.Diagnostic, "zoekt: cannot parse file")
	}
	assertEmptyDir(t, ix.TempDir)
}

func TestAvailable(t *testing.T) {
	ix := NewIndexer("/store", "proj", "/idx", nil)
	ix.Binary = filepath.Join(t.TempDir(), "no-such-indexer")
	if err := ix.Available(); err == nil {
		t.Error("Available() should fail for a missing binary")
	}

	ix.Binary = writeScript(t, "exit 0\n")
	if err := ix.Available(); err != nil {
		t.Errorf("Available() error: %v", err)
	}
}

func TestRepoName(t *testing.T) {
	if got := RepoName("myproject", "requests"); got != "myproject/deps/requests" {
		t.Errorf("RepoName() = %q, want %q", got, "myproject/deps/requests")
	}
	if got := RepoName("org/app", "yaml"); got != "org/app/deps/yaml" {
		t.Errorf("RepoName() = %q, want %q", got, "org/app/deps/yaml")
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		s    Status
		want string
	}{
		{Indexed, "indexed"},
		{Skipped, "skipped"},
		{Failed, "failed"},
		{Status(9), "Status(9)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", int(tt.s), got, tt.want)
		}
	}
}
