package csvxl

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// DiscoverCSVFiles walks root recursively and returns every CSV file found,
// sorted by path.
func DiscoverCSVFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".csv") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
