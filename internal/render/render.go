// Package render turns query results into terminal output. Everything
// returns a string so command code decides where it goes and tests can
// golden-match it.
package render

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tannerhaus/lineal/internal/provenance"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF99"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	pathStyle  = lipgloss.NewStyle().Bold(true)
)

// TraceTable renders a lineage chain record by record.
func TraceTable(result *provenance.TraceResult) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Provenance for: %s", result.Artifact)))
	b.WriteString("\n\n")

	if len(result.Chain) == 0 {
		b.WriteString("No provenance found.\n")
		return b.String()
	}

	for i, record := range result.Chain {
		b.WriteString(fmt.Sprintf("Record %d:\n", i+1))
		b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("ID:     "), record.ID))
		b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("Type:   "), record.ArtifactType))
		b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("Source: "), record.SourcePath))
		if record.SessionID != "" {
			b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("Session:"), record.SessionID))
		}
		if !record.CreatedAt.IsZero() {
			b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("Created:"), record.CreatedAt.Format("2006-01-02 15:04:05")))
		}
		b.WriteString("\n")
	}

	if len(result.Sources) > 0 {
		b.WriteString(titleStyle.Render("Original Sources"))
		b.WriteString("\n")
		for _, source := range result.Sources {
			b.WriteString(fmt.Sprintf("  • %s\n", source))
		}
	}

	return b.String()
}

// TraceGraph renders the chain as a small ASCII graph, artifact on top,
// sources hanging off it.
func TraceGraph(result *provenance.TraceResult) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Provenance Graph for: %s", result.Artifact)))
	b.WriteString("\n\n")

	if len(result.Chain) == 0 {
		b.WriteString("No provenance found.\n")
		return b.String()
	}

	for i, record := range result.Chain {
		if i == 0 {
			b.WriteString(fmt.Sprintf("  ┌─ %s\n", pathStyle.Render(filepath.Base(result.Artifact))))
			b.WriteString(fmt.Sprintf("  │  [%s]\n", record.ArtifactType))
		}
		b.WriteString("  │\n")
		b.WriteString(fmt.Sprintf("  │  ← %s\n", record.ID))
		b.WriteString("  │\n")
		b.WriteString(fmt.Sprintf("  └─ %s\n", filepath.Base(record.SourcePath)))
		b.WriteString(fmt.Sprintf("     [%s]\n", record.SourceType))
		if record.SessionID != "" {
			id := record.SessionID
			if len(id) > 12 {
				id = id[:12]
			}
			b.WriteString(fmt.Sprintf("     session: %s\n", id))
		}
	}

	return b.String()
}

// StatsSummary renders graph aggregates with stable ordering.
func StatsSummary(stats *provenance.Stats) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Provenance Statistics"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Total records:    %d\n", stats.TotalRecords))
	b.WriteString(fmt.Sprintf("Unique sessions:  %d\n", stats.UniqueSessions))

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Artifact types:"))
	b.WriteString("\n")
	writeCounts(&b, stats.ArtifactTypes)

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Source types:"))
	b.WriteString("\n")
	writeCounts(&b, stats.SourceTypes)

	return b.String()
}

func writeCounts(b *strings.Builder, counts map[string]int) {
	if len(counts) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("  %-12s %d\n", k, counts[k]))
	}
}

// RecordsTable renders records one per line, log order preserved.
func RecordsTable(records []provenance.Record) string {
	var b strings.Builder

	if len(records) == 0 {
		b.WriteString("No records.\n")
		return b.String()
	}

	b.WriteString(labelStyle.Render(fmt.Sprintf("%-12s %-10s %-12s %s", "ID", "TYPE", "SESSION", "ARTIFACT")))
	b.WriteString("\n")
	for _, record := range records {
		session := record.SessionID
		if session == "" {
			session = "-"
		}
		b.WriteString(fmt.Sprintf("%-12s %-10s %-12s %s\n", record.ID, record.ArtifactType, session, record.ArtifactPath))
	}

	return b.String()
}

// FileList renders discovered artifact paths relative to root where
// possible.
func FileList(files []string, root string) string {
	var b strings.Builder

	if len(files) == 0 {
		b.WriteString("No artifacts found.\n")
		return b.String()
	}

	for _, file := range files {
		if rel, err := filepath.Rel(root, file); err == nil && !strings.HasPrefix(rel, "..") {
			b.WriteString(rel)
		} else {
			b.WriteString(file)
		}
		b.WriteString("\n")
	}

	return b.String()
}
