package cli

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/toyz/dtogen/internal/errors"
)

// DirectoryScanner handles recursive directory scanning for Go files
type DirectoryScanner struct {
	root string
}

// NewDirectoryScanner creates a scanner resolving relative patterns from root
func NewDirectoryScanner(root string) *DirectoryScanner {
	return &DirectoryScanner{root: root}
}

// ScanDirectories resolves patterns to the directories they cover.
// Supports Go-style patterns like "./..." for recursive scanning; hidden,
// vendor and testdata directories are skipped.
func (s *DirectoryScanner) ScanDirectories(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	for _, pattern := range patterns {
		recursive := strings.HasSuffix(pattern, "/...") || pattern == "..."
		base := strings.TrimSuffix(strings.TrimSuffix(pattern, "..."), "/")
		if base == "" {
			base = "."
		}
		if !filepath.IsAbs(base) && s.root != "" {
			base = filepath.Join(s.root, base)
		}
		base = filepath.Clean(base)

		if !recursive {
			add(base)
			continue
		}

		err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == base {
					return err
				}
				return nil
			}
			if !d.IsDir() {
				return nil
			}
			if path != base && skipDirectory(d.Name()) {
				return filepath.SkipDir
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, errors.WrapFileSystemError("scan", base, err)
		}
	}

	sort.Strings(dirs)
	return dirs, nil
}

func skipDirectory(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor" || name == "testdata"
}
