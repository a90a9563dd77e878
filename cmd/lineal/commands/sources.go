package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tannerhaus/lineal/internal/render"
	"github.com/tannerhaus/lineal/pkg/telemetry"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources <source-path>",
	Short: "List artifacts derived from a source",
	Long: `List every provenance record whose source is the given file. Useful
for answering "what did this transcript produce?".

The path matches either literally or after resolving both sides to
absolute paths.`,
	Args: cobra.ExactArgs(1),
	RunE: runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, args []string) error {
	_, span := telemetry.StartSpan(cmd.Context(), "sources")
	defer span.End()

	graph, err := loadGraph()
	if err != nil {
		return err
	}

	records := graph.FindBySource(args[0])
	if len(records) == 0 && cfg.Output == "table" {
		fmt.Printf("No artifacts derived from: %s\n", args[0])
		return nil
	}

	return emit(records, func() string {
		return render.RecordsTable(records)
	})
}
