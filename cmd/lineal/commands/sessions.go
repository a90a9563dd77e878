package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tannerhaus/lineal/internal/render"
	"github.com/tannerhaus/lineal/pkg/telemetry"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions <session-id>",
	Short: "List provenance records for a session",
	Long: `List every provenance record created during one working session.

The session ID must match exactly; there is no partial matching.`,
	Args: cobra.ExactArgs(1),
	RunE: runSessions,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	_, span := telemetry.StartSpan(cmd.Context(), "sessions")
	defer span.End()

	graph, err := loadGraph()
	if err != nil {
		return err
	}

	records := graph.FindBySession(args[0])
	if len(records) == 0 && cfg.Output == "table" {
		fmt.Printf("No records for session: %s\n", args[0])
		return nil
	}

	return emit(records, func() string {
		return render.RecordsTable(records)
	})
}
