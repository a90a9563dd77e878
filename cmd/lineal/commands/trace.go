package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tannerhaus/lineal/internal/render"
	"github.com/tannerhaus/lineal/pkg/telemetry"
)

var traceGraphFlag bool

var traceCmd = &cobra.Command{
	Use:   "trace <artifact-path>...",
	Short: "Trace artifact lineage back to its sources",
	Long: `Trace one or more artifacts back through the provenance log to the
original transcripts they were derived from.

An artifact with no recorded lineage is reported, not treated as an
error.

Examples:
  lineal trace .agents/lineal/sessions/2026-01-20-refactor.md
  lineal trace session-abc123 --graph
  lineal trace /out/a.md /out/b.md -o json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTrace,
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.Flags().BoolVar(&traceGraphFlag, "graph", false, "Show ASCII lineage graph")
}

func runTrace(cmd *cobra.Command, args []string) error {
	_, span := telemetry.StartSpan(cmd.Context(), "trace")
	defer span.End()

	graph, err := loadGraph()
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.Int("provenance.records", len(graph.Records)))

	for _, artifactPath := range args {
		result := graph.Trace(artifactPath)
		if err := emit(result, func() string {
			if traceGraphFlag {
				return render.TraceGraph(result)
			}
			return render.TraceTable(result)
		}); err != nil {
			return fmt.Errorf("trace %s: %w", artifactPath, err)
		}
	}
	return nil
}
