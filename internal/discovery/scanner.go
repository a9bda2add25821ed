package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// docSuffixes are the file endings treated as documentation.
var docSuffixes = []string{".txt", ".md"}

// IsDocFile reports whether name has a documentation suffix.
func IsDocFile(name string) bool {
	for _, suffix := range docSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// Scanner scans for documentation files in a directory
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// Scan finds all documentation files in the given root directory
func (s *Scanner) Scan(root string) ([]string, error) {
	var docs []string

	// Clean and validate the root path
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("docs path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("docs path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			// Skip hidden directories (starting with .)
			if strings.HasPrefix(name, ".") && name != "." && name != ".." {
				return filepath.SkipDir
			}

			if s.skipDirs[name] {
				return filepath.SkipDir
			}

			return nil
		}

		if IsDocFile(d.Name()) {
			docs = append(docs, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Sort for consistent ordering across runs
	sort.Strings(docs)

	return docs, nil
}
