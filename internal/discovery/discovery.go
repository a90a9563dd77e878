// Package discovery locates the artifact root for a project and
// enumerates the files the resolver can see. It is pure filesystem
// inspection; nothing here depends on the provenance log.
package discovery

import (
	"os"
	"path/filepath"
)

const (
	// RootMarker is the directory that marks a project's artifact root.
	RootMarker = ".agents"

	// LearningsDir holds programmatic learning files.
	LearningsDir = "learnings"

	// PatternsDir holds human-authored pattern files.
	PatternsDir = "patterns"
)

// Subdirs lists the artifact subdirectories under the root marker, in
// search order.
var Subdirs = []string{LearningsDir, PatternsDir}

// FindArtifactRoot walks upward from startDir looking for a directory
// that contains the root marker. If no parent carries one, startDir
// itself is returned so resolution can still try local directories.
func FindArtifactRoot(startDir string) string {
	dir := startDir
	for {
		marker := filepath.Join(dir, RootMarker)
		if info, err := os.Stat(marker); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return startDir
		}
		dir = parent
	}
}

// ArtifactDirs returns the known artifact directories under root, in
// search order. The directories need not exist.
func ArtifactDirs(root string) []string {
	dirs := make([]string, 0, len(Subdirs))
	for _, sub := range Subdirs {
		dirs = append(dirs, filepath.Join(root, RootMarker, sub))
	}
	return dirs
}

// DiscoverAll enumerates every regular file across the artifact
// directories under root. Missing or empty directories contribute
// nothing; the result is never an error for an empty project. Entries
// come back in lexical order per directory, so the listing is stable
// across runs.
func DiscoverAll(root string) ([]string, error) {
	var files []string
	for _, dir := range ArtifactDirs(root) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}
