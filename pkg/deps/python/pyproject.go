package python

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/depindex/pkg/errors"
)

// pyproject is the subset of pyproject.toml read by this package.
type pyproject struct {
	Project struct {
		Name         string   `toml:"name"`
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name string `toml:"name"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

func readPyproject(path string) (*pyproject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	var doc pyproject
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", path)
	}
	return &doc, nil
}

// ParsePyproject returns the names of the dependencies declared in the
// [project].dependencies array of the pyproject.toml at path. Declaration
// order and duplicates are preserved; requirements without a name are
// dropped. A missing array yields an empty result.
func ParsePyproject(path string) ([]string, error) {
	doc, err := readPyproject(path)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(doc.Project.Dependencies))
	for _, dep := range doc.Project.Dependencies {
		if name := DependencyName(dep); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// ProjectName returns the project name declared in the pyproject.toml at
// path, preferring [tool.poetry].name over [project].name. It returns "" if
// the file cannot be read or declares no name.
func ProjectName(path string) string {
	doc, err := readPyproject(path)
	if err != nil {
		return ""
	}
	if doc.Tool.Poetry.Name != "" {
		return doc.Tool.Poetry.Name
	}
	return doc.Project.Name
}
