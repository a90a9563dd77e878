package commands

import (
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tannerhaus/lineal/internal/render"
	"github.com/tannerhaus/lineal/pkg/telemetry"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the provenance log",
	Long:  `Aggregate counts over the whole provenance log: total records, unique sessions, and per-type breakdowns.`,
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	_, span := telemetry.StartSpan(cmd.Context(), "stats")
	defer span.End()

	graph, err := loadGraph()
	if err != nil {
		return err
	}

	stats := graph.GetStats()
	span.SetAttributes(
		attribute.Int("provenance.records", stats.TotalRecords),
		attribute.Int("provenance.sessions", stats.UniqueSessions),
	)

	return emit(stats, func() string {
		return render.StatsSummary(stats)
	})
}
