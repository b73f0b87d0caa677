package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/dtogen/internal/errors"
	"github.com/toyz/dtogen/internal/utils"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	scanner *DirectoryScanner
	output  string
}

// NewCleaner creates a new cleaner resolving patterns from root. A non-empty
// output directory is cleaned recursively as well.
func NewCleaner(root, output string) *Cleaner {
	return &Cleaner{
		scanner: NewDirectoryScanner(root),
		output:  output,
	}
}

// Directories returns every directory that may hold generated files: those
// matched by patterns and the whole output tree
func (c *Cleaner) Directories(patterns []string) ([]string, error) {
	all := append([]string(nil), patterns...)
	if c.output != "" {
		output, err := filepath.Abs(c.output)
		if err != nil {
			return nil, errors.WrapFileSystemError("resolve", c.output, err)
		}
		if info, err := os.Stat(output); err == nil && info.IsDir() {
			all = append(all, filepath.Join(output, "..."))
		}
	}
	if len(all) == 0 {
		return nil, nil
	}
	return c.scanner.ScanDirectories(all)
}

// CleanGeneratedFiles removes every *_gen.go file carrying the dtogen header
// from the managed directories. Files from other generators are left alone.
func (c *Cleaner) CleanGeneratedFiles(patterns []string) ([]string, error) {
	dirs, err := c.Directories(patterns)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, dir := range dirs {
		files, err := findGeneratedFiles(dir)
		if err != nil {
			return removed, err
		}
		for _, file := range files {
			if err := os.Remove(file); err != nil {
				return removed, errors.WrapFileSystemError("remove", file, err)
			}
			removed = append(removed, file)
		}
	}
	return removed, nil
}

// findGeneratedFiles lists the dtogen files directly inside dir
func findGeneratedFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapFileSystemError("list", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), utils.GeneratedFileSuffix) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WrapFileSystemError("read", path, err)
		}
		if utils.IsGeneratedSource(content) {
			files = append(files, path)
		}
	}
	return files, nil
}
