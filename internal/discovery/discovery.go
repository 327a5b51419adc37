// Package discovery finds explanation files under a directory tree.
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultExtensions are the file extensions treated as explanations when
// none are given.
var DefaultExtensions = []string{".md", ".markdown", ".txt"}

// skippedDirs are never descended into.
var skippedDirs = []string{"node_modules", "vendor"}

// Discover walks root and returns the paths of regular files whose
// extension (case-insensitive) is in exts, in lexical order. Hidden
// directories and files are skipped. An empty exts uses DefaultExtensions.
func Discover(root string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	wanted := make([]string, len(exts))
	for i, e := range exts {
		wanted[i] = normalizeExt(e)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("root path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path %s is not a directory", root)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}

		hidden := strings.HasPrefix(d.Name(), ".") && path != root
		if d.IsDir() {
			if hidden || slices.Contains(skippedDirs, d.Name()) {
				return fs.SkipDir
			}
			return nil
		}

		if hidden || !d.Type().IsRegular() {
			return nil
		}
		if slices.Contains(wanted, strings.ToLower(filepath.Ext(path))) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", root, err)
	}

	return paths, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
