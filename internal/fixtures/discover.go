package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// DefaultPatterns matches every fixture file under a directory.
var DefaultPatterns = []string{"**/*.yaml", "**/*.yml", "**/*.json"}

// DiscoverStats counts what Discover looked at.
type DiscoverStats struct {
	FilesDiscovered int
	FilesKept       int
	FilesSkipped    int // gitignored or not a fixture extension
}

// Discover expands patterns under root and returns matching fixture files in
// sorted order. Matches ignored by root/.gitignore are skipped, as are
// files whose name starts with "_" or ".", and manifest.json.
func Discover(root string, patterns []string) ([]string, DiscoverStats, error) {
	var stats DiscoverStats
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	gi, _ := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))

	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		full := pattern
		if !filepath.IsAbs(pattern) {
			full = filepath.Join(root, pattern)
		}
		matches, err := doublestar.FilepathGlob(full)
		if err != nil {
			return nil, stats, fmt.Errorf("expand pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if skipFixture(root, match, gi) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
			stats.FilesKept++
		}
	}

	sort.Strings(files)
	return files, stats, nil
}

func skipFixture(root, path string, gi *ignore.GitIgnore) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, "_") || strings.HasPrefix(base, ".") || base == "manifest.json" {
		return true
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".yaml", ".yml", ".json":
	default:
		return true
	}

	if gi != nil {
		if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
			return gi.MatchesPath(filepath.ToSlash(rel))
		}
	}
	return false
}
