package cricsheet

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"cricket-mcs/internal/cricket"
)

// IsMatchFile reports whether name has a YAML extension.
func IsMatchFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// MatchID returns the numeric stem of a match file name.
func MatchID(path string) (string, error) {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if _, err := strconv.Atoi(stem); err != nil {
		return "", fmt.Errorf("%w: match file %q is not named by a numeric id", cricket.ErrInvalidInput, base)
	}
	return stem, nil
}

// ListMatchFiles returns the YAML file names in dir ordered by ascending numeric match id.
func ListMatchFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list match directory: %w", err)
	}

	type numbered struct {
		name string
		id   int
	}
	var files []numbered
	for _, e := range entries {
		if e.IsDir() || !IsMatchFile(e.Name()) {
			continue
		}
		stem, err := MatchID(e.Name())
		if err != nil {
			return nil, err
		}
		id, _ := strconv.Atoi(stem)
		files = append(files, numbered{name: e.Name(), id: id})
	}

	slices.SortFunc(files, func(a, b numbered) int {
		return cmp.Compare(a.id, b.id)
	})

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.name
	}
	return names, nil
}

// HasMatchFiles reports whether dir exists and holds at least one YAML file.
func HasMatchFiles(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !e.IsDir() && IsMatchFile(e.Name()) {
			return true
		}
	}
	return false
}
