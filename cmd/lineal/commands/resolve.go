package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tannerhaus/lineal/internal/resolver"
	"github.com/tannerhaus/lineal/pkg/telemetry"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <identifier>...",
	Short: "Resolve an artifact identifier to a file path",
	Long: `Resolve loose identifiers to files under the artifact directories.

An identifier can be a bare ID, a filename with or without extension, a
fragment of a filename, a frontmatter-declared ID, a pend- reference, or
an absolute path.

Examples:
  lineal resolve L001
  lineal resolve pend-retry-backoff
  lineal resolve learn-2026-02-21-backend-detection`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	_, span := telemetry.StartSpan(cmd.Context(), "resolve")
	defer span.End()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	r := resolver.New(cwd)

	for _, identifier := range args {
		path, err := r.Resolve(identifier)
		if err != nil {
			return err
		}
		fmt.Println(path)
	}
	return nil
}
