package python

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/depindex/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParsePyproject(t *testing.T) {
	path := writeFile(t, "pyproject.toml", `[project]
name = "myapp"
version = "0.1.0"
requires-python = ">=3.11"
dependencies = [
    "fastapi>=0.110",
    "uvicorn[standard]>=0.30",
    "pydantic-settings",
    "tomli; python_version < '3.11'",
    "fastapi",
]

[project.optional-dependencies]
dev = ["pytest"]

[tool.ruff]
line-length = 100
`)

	got, err := ParsePyproject(path)
	if err != nil {
		t.Fatalf("ParsePyproject() error: %v", err)
	}

	want := []string{"fastapi", "uvicorn", "pydantic-settings", "tomli", "fastapi"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParsePyproject() = %v, want %v", got, want)
	}
}

func TestParsePyprojectVersionRange(t *testing.T) {
	path := writeFile(t, "pyproject.toml", `[project]
dependencies = ["pkg>=1.0,<2.0"]
`)

	got, err := ParsePyproject(path)
	if err != nil {
		t.Fatalf("ParsePyproject() error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"pkg"}) {
		t.Errorf("ParsePyproject() = %v, want [pkg]", got)
	}
}

func TestParsePyprojectNoDependencies(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no project table", "[tool.poetry]\nname = \"x\"\n"},
		{"no dependencies key", "[project]\nname = \"x\"\n"},
		{"empty array", "[project]\ndependencies = []\n"},
		{"only unnamed", "[project]\ndependencies = [\">=1.0\", \"  \"]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "pyproject.toml", tt.content)
			got, err := ParsePyproject(path)
			if err != nil {
				t.Fatalf("ParsePyproject() error: %v", err)
			}
			if len(got) != 0 {
				t.Errorf("ParsePyproject() = %v, want empty", got)
			}
		})
	}
}

func TestParsePyprojectErrors(t *testing.T) {
	t.Run("malformed toml", func(t *testing.T) {
		path := writeFile(t, "pyproject.toml", "[project\ndependencies = [")
		_, err := ParsePyproject(path)
		if !errors.Is(err, errors.ErrCodeInvalidManifest) {
			t.Errorf("ParsePyproject() error = %v, want INVALID_MANIFEST", err)
		}
	})

	t.Run("dependencies not strings", func(t *testing.T) {
		path := writeFile(t, "pyproject.toml", "[project]\ndependencies = [1, 2]\n")
		_, err := ParsePyproject(path)
		if !errors.Is(err, errors.ErrCodeInvalidManifest) {
			t.Errorf("ParsePyproject() error = %v, want INVALID_MANIFEST", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ParsePyproject(filepath.Join(t.TempDir(), "pyproject.toml"))
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("ParsePyproject() error = %v, want FILE_NOT_FOUND", err)
		}
	})
}

func TestProjectName(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"pep621", "[project]\nname = \"myapp\"\n", "myapp"},
		{"poetry wins", "[project]\nname = \"a\"\n[tool.poetry]\nname = \"b\"\n", "b"},
		{"none", "[tool.ruff]\nline-length = 88\n", ""},
		{"malformed", "[project", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "pyproject.toml", tt.content)
			if got := ProjectName(path); got != tt.want {
				t.Errorf("ProjectName() = %q, want %q", got, tt.want)
			}
		})
	}
}
