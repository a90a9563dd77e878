package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tannerhaus/lineal/internal/discovery"
	"github.com/tannerhaus/lineal/internal/ui"
	"github.com/tannerhaus/lineal/pkg/telemetry"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactively pick an artifact",
	Long: `Open a fuzzy picker over every artifact in the project. The chosen
path is printed to stdout, so the command composes with shells:

  lineal trace "$(lineal browse)"`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	_, span := telemetry.StartSpan(cmd.Context(), "browse")
	defer span.End()

	root, err := artifactRoot()
	if err != nil {
		return err
	}
	files, err := discovery.DiscoverAll(root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no artifacts found under %s", root)
	}

	choice, err := ui.PickArtifact(files)
	if err != nil {
		return fmt.Errorf("run picker: %w", err)
	}
	if choice == "" {
		return nil
	}
	fmt.Println(choice)
	return nil
}
