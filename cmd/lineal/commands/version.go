package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/tannerhaus/lineal/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s (%s/%s, %s)\n", version.AppName, version.Current,
			runtime.GOOS, runtime.GOARCH, runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
