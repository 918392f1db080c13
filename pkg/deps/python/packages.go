package python

import (
	"bufio"
	"os"
	"strings"

	"github.com/matzehuels/depindex/pkg/errors"
)

// ReadPackageList reads distribution names from a plain text file, one per
// line. Surrounding whitespace is trimmed; blank lines and lines starting
// with '#' are skipped. Names are returned in file order, unmodified.
func ReadPackageList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	var result []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		result = append(result, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return result, nil
}
