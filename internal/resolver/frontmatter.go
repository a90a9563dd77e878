package resolver

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the structured header of a markdown artifact. Only the
// fields resolution cares about are typed; the rest of the header is
// kept as a raw map for callers that want it.
type Frontmatter struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`

	// Rest holds the full decoded header, including the typed fields.
	Rest map[string]interface{} `yaml:"-"`
}

// ParseFrontmatter reads the YAML header delimited by --- lines at the
// top of the file. Files without a header return a zero Frontmatter and
// no error; a header that is not valid YAML is an error.
func ParseFrontmatter(path string) (*Frontmatter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "---" {
		return &Frontmatter{}, scanner.Err()
	}

	var block strings.Builder
	closed := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			closed = true
			break
		}
		block.WriteString(line)
		block.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !closed {
		// Opening fence with no closing fence. Treat as no header.
		return &Frontmatter{}, nil
	}

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(block.String()), &fm); err != nil {
		return nil, fmt.Errorf("parse frontmatter of %s: %w", path, err)
	}
	if err := yaml.Unmarshal([]byte(block.String()), &fm.Rest); err != nil {
		return nil, fmt.Errorf("parse frontmatter of %s: %w", path, err)
	}
	return &fm, nil
}

// readFrontmatterID returns the declared id, or "" when the file has no
// usable header.
func readFrontmatterID(path string) (string, error) {
	fm, err := ParseFrontmatter(path)
	if err != nil {
		return "", err
	}
	return strings.Trim(fm.ID, "\"'"), nil
}
