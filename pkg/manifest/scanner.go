package manifest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ListManifests returns every file under root matching one of the doublestar
// patterns (patterns are relative to root), sorted by containing-directory
// name for reproducible runs.
func ListManifests(root string, patterns []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("root directory not found: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", root)
	}

	var matches []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		for _, pattern := range patterns {
			if ok, _ := doublestar.Match(pattern, rel); ok {
				matches = append(matches, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	sort.Slice(matches, func(i, j int) bool {
		return IntegrationName(matches[i]) < IntegrationName(matches[j])
	})
	return matches, nil
}

// FindCandidates returns manifests that declare config_flow: true but have no
// integration_type. Files that fail to parse are skipped silently; the batch
// validator reports them instead.
func FindCandidates(root string, patterns []string) ([]string, error) {
	paths, err := ListManifests(root, patterns)
	if err != nil {
		return nil, err
	}

	var candidates []string
	for _, path := range paths {
		doc, err := Load(path)
		if err != nil {
			continue
		}
		if flow, ok := doc.BoolValue("config_flow"); !ok || !flow {
			continue
		}
		if doc.Has("integration_type") {
			continue
		}
		candidates = append(candidates, path)
	}
	return candidates, nil
}
