package vocab

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadFile reads a newline-delimited amenity list. Blank lines are
// skipped. A missing file is not an error: the vocabulary file is
// optional per city and absence simply contributes nothing.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open vocabulary file %s: %w", path, err)
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			out = append(out, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file %s: %w", path, err)
	}
	return out, nil
}

// LoadAll aggregates the raw amenity strings from every path given.
// Duplicates across files are expected and left for the reducer.
func LoadAll(paths []string) ([]string, error) {
	var all []string
	for _, p := range paths {
		lines, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		all = append(all, lines...)
	}
	return all, nil
}
