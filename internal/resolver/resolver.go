// Package resolver maps free-form artifact identifiers to files on
// disk. Identifiers arrive loose: a bare ID, a filename fragment, a
// frontmatter-declared ID, a queued "pend-" reference, or a full path.
// Strategies are tried cheapest first; the first hit wins.
package resolver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tannerhaus/lineal/internal/discovery"
)

// PendPrefix is the reserved prefix for queued (pending) identifiers.
// Stripping it maps a pool reference onto the same underlying file.
const PendPrefix = "pend-"

// Extensions lists the known artifact file extensions, in probe order.
var Extensions = []string{".jsonl", ".md", ".json"}

// NotFoundError reports an identifier no strategy could place.
type NotFoundError struct {
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("artifact not found: %s", e.Identifier)
}

// Resolver locates artifact files under a project's artifact root.
// It holds no mutable state; concurrent Resolve calls are safe.
type Resolver struct {
	// StartDir is where resolution begins; the artifact root is
	// discovered from here.
	StartDir string

	// Root is the resolved artifact root.
	Root string
}

// New builds a Resolver for startDir. The artifact root is discovered
// once, up front; if no marker exists, startDir itself is the root.
func New(startDir string) *Resolver {
	return &Resolver{
		StartDir: startDir,
		Root:     discovery.FindArtifactRoot(startDir),
	}
}

// Resolve maps identifier to exactly one file path, or returns a
// NotFoundError naming the identifier. Resolution is a pure function of
// the identifier, the start directory, and current filesystem state.
func (r *Resolver) Resolve(identifier string) (string, error) {
	// Absolute path passthrough: a real file wins immediately.
	candidate := identifier
	if filepath.IsAbs(candidate) {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		// Absolute but missing. Fall back to treating the basename as an
		// ID, stripped of any known extension.
		candidate = filepath.Base(candidate)
		ext := filepath.Ext(candidate)
		for _, known := range Extensions {
			if ext == known {
				candidate = strings.TrimSuffix(candidate, ext)
				break
			}
		}
	}

	dirs := discovery.ArtifactDirs(r.Root)

	if path, err := searchDirs(dirs, candidate); err != nil || path != "" {
		return path, err
	}

	// pend- references live in a secondary namespace over the same
	// files. Strip the prefix and retry.
	if strings.HasPrefix(candidate, PendPrefix) {
		stripped := strings.TrimPrefix(candidate, PendPrefix)
		if path, err := searchDirs(dirs, stripped); err != nil || path != "" {
			return path, err
		}
	}

	return "", &NotFoundError{Identifier: identifier}
}

// searchDirs runs the filename strategies in cost order across dirs:
// known-extension probe, stem match, direct filename, substring, then
// frontmatter ID scan. Each strategy finishes across all dirs before
// the next starts, so a cheap hit in patterns/ beats an expensive one
// in learnings/.
func searchDirs(dirs []string, id string) (string, error) {
	for _, dir := range dirs {
		if path := probeExtensions(dir, id); path != "" {
			return path, nil
		}
	}
	for _, dir := range dirs {
		if path := probeStem(dir, id); path != "" {
			return path, nil
		}
	}
	for _, dir := range dirs {
		if path := probeDirect(dir, id); path != "" {
			return path, nil
		}
	}
	for _, dir := range dirs {
		path, err := probeSubstring(dir, id)
		if err != nil {
			return "", err
		}
		if path != "" {
			return path, nil
		}
	}
	for _, dir := range dirs {
		if path := probeFrontmatterID(dir, id); path != "" {
			return path, nil
		}
	}
	return "", nil
}

// probeExtensions checks for id + each known extension inside dir.
func probeExtensions(dir, id string) string {
	for _, ext := range Extensions {
		path := filepath.Join(dir, id+ext)
		if isFile(path) {
			return path
		}
	}
	return ""
}

// probeStem matches files whose name, stripped of its extension, equals
// id. Unlike probeExtensions this also finds unknown extensions.
func probeStem(dir, id string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.TrimSuffix(name, filepath.Ext(name)) == id {
			return filepath.Join(dir, name)
		}
	}
	return ""
}

// probeDirect checks for id as-is, for identifiers that already carry
// their extension.
func probeDirect(dir, id string) string {
	path := filepath.Join(dir, id)
	if isFile(path) {
		return path
	}
	return ""
}

// probeSubstring finds the first file whose name contains id. Glob
// results come back sorted, so ties break in lexical filename order
// rather than raw directory enumeration order.
func probeSubstring(dir, id string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+id+"*"))
	if err != nil {
		return "", err
	}
	for _, match := range matches {
		if isFile(match) {
			return match, nil
		}
	}
	return "", nil
}

// probeFrontmatterID scans markdown files for a frontmatter id field
// equal to id. The filename need not relate to the identifier at all.
// This opens file contents, so it runs last.
func probeFrontmatterID(dir, id string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		fmID, err := readFrontmatterID(path)
		if err != nil || fmID == "" {
			continue
		}
		if fmID == id {
			return path
		}
	}
	return ""
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
