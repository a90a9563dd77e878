package commands

import (
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tannerhaus/lineal/internal/discovery"
	"github.com/tannerhaus/lineal/internal/filter"
	"github.com/tannerhaus/lineal/internal/render"
	"github.com/tannerhaus/lineal/pkg/telemetry"
)

var listFilterFlag string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List artifacts or filtered provenance records",
	Long: `Without a filter, list every artifact file under the project's
artifact directories.

With --filter, evaluate a CEL expression against each provenance record
and list the matches instead. Available variables: id, artifact_path,
artifact_type, source_path, source_type, session_id, metadata.

Examples:
  lineal list
  lineal list --filter 'artifact_type == "session"'
  lineal list --filter 'metadata.model == "opus"'`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listFilterFlag, "filter", "", "CEL expression over provenance records")
}

func runList(cmd *cobra.Command, args []string) error {
	_, span := telemetry.StartSpan(cmd.Context(), "list")
	defer span.End()

	if listFilterFlag != "" {
		engine, err := filter.New(listFilterFlag)
		if err != nil {
			return err
		}
		graph, err := loadGraph()
		if err != nil {
			return err
		}
		records := engine.Apply(graph.Records)
		span.SetAttributes(attribute.Int("filter.matches", len(records)))

		return emit(records, func() string {
			return render.RecordsTable(records)
		})
	}

	root, err := artifactRoot()
	if err != nil {
		return err
	}
	files, err := discovery.DiscoverAll(root)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.Int("artifacts.count", len(files)))

	return emit(files, func() string {
		return render.FileList(files, root)
	})
}
