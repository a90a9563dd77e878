// Package commands wires the lineal CLI: lineage queries over the
// provenance log and identifier resolution against the artifact tree.
package commands

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tannerhaus/lineal/internal/config"
	"github.com/tannerhaus/lineal/internal/discovery"
	"github.com/tannerhaus/lineal/internal/provenance"
	"github.com/tannerhaus/lineal/pkg/version"
)

var (
	cfgFile     string
	outputFlag  string
	verboseFlag bool
	strictFlag  bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "lineal",
	Short: "Artifact lineage and resolution for agent workflows",
	Long: `lineal answers two questions about a knowledge workspace:
where did this artifact come from, and which file does this identifier
mean.

Lineage queries read the append-only provenance log; resolution
searches the artifact directories under the project's .agents root.`,
	Version:       version.Current,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded

		// Flags beat config file and environment.
		flags := cmd.Root().PersistentFlags()
		if flags.Changed("output") {
			cfg.Output = outputFlag
		}
		if flags.Changed("verbose") {
			cfg.Verbose = verboseFlag
		}
		if flags.Changed("strict") {
			cfg.Strict = strictFlag
		}
		return nil
	},
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "table", "Output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&strictFlag, "strict", false, "Fail on malformed provenance log lines")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.lineal.yaml)")

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		renderHelp(cmd)
	})
}

// artifactRoot locates the project root from the working directory.
func artifactRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return discovery.FindArtifactRoot(cwd), nil
}

// loadGraph loads the provenance log for the current project.
func loadGraph() (*provenance.Graph, error) {
	root, err := artifactRoot()
	if err != nil {
		return nil, err
	}

	var opts []provenance.Option
	if cfg.Strict {
		opts = append(opts, provenance.WithStrict())
	}

	graph, err := provenance.NewGraph(cfg.ProvenancePath(root), opts...)
	if err != nil {
		return nil, fmt.Errorf("load provenance: %w", err)
	}
	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "loaded %d provenance records from %s\n", len(graph.Records), graph.Path)
	}
	return graph, nil
}

func renderHelp(cmd *cobra.Command) {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF99")).MarginBottom(1)
	flagStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))

	fmt.Println(titleStyle.Render(fmt.Sprintf("LINEAL %s", version.Current)))
	fmt.Println(cmd.Root().Short + ".")
	fmt.Println()

	fmt.Println(titleStyle.Render("USAGE"))
	fmt.Printf("  %s\n\n", cmd.UseLine())

	if cmd.HasAvailableSubCommands() {
		fmt.Println(titleStyle.Render("COMMANDS"))
		for _, c := range cmd.Commands() {
			if c.IsAvailableCommand() {
				fmt.Printf("  %-12s %s\n", c.Name(), c.Short)
			}
		}
		fmt.Println()
	}

	fmt.Println(titleStyle.Render("EXAMPLES"))
	fmt.Println("  lineal trace .agents/lineal/sessions/2026-01-20-refactor.md")
	fmt.Println("  lineal resolve L001")
	fmt.Println("  lineal list --filter 'artifact_type == \"session\"'")
	fmt.Println()

	fmt.Println(titleStyle.Render("FLAGS"))
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		fmt.Println(flagStyle.Render(fmt.Sprintf("  --%-14s %s", f.Name, f.Usage)))
	})
}
