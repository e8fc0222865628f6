package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// GatherFiles collects, for every root, the files whose extension matches one
// of the given lower-case extensions. A root may be a file or a directory;
// directories are scanned one level deep. Returned paths are absolute.
func GatherFiles(roots []string, extensions []string) ([]string, error) {
	matches := func(name string) bool {
		return slices.Contains(extensions, strings.ToLower(filepath.Ext(name)))
	}

	var paths []string

	for _, root := range roots {
		fi, err := os.Stat(root)
		if err != nil {
			return nil, err
		}

		switch {
		case fi.Mode().IsRegular():
			if !matches(fi.Name()) {
				continue
			}
			paths = append(paths, Abs(root))

		case fi.Mode().IsDir():
			entries, err := os.ReadDir(root)
			if err != nil {
				return nil, fmt.Errorf("read dir: %w", err)
			}

			for _, entry := range entries {
				if entry.IsDir() || !matches(entry.Name()) {
					continue
				}
				paths = append(paths, Abs(filepath.Join(root, entry.Name())))
			}

		default:
			return nil, fmt.Errorf("path '%s' neither directory nor file", root)
		}
	}

	return paths, nil
}
