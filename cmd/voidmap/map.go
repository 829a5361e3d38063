package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/voidmap/internal/discover"
	"github.com/pdiddy/voidmap/internal/report"
	"github.com/pdiddy/voidmap/pkg/types"
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Map the void between two state files",
	Long: `Map loads a current and a goal state (JSON or YAML), discovers the gaps
between them, and writes the full analysis report. An optional context file
supplies dependency chains, constraint thresholds, and domain keywords that
sharpen discovery.`,
	RunE: runMap,
}

func init() {
	mapCmd.Flags().String("current", "", "current state file (required)")
	mapCmd.Flags().String("goal", "", "goal state file (required)")
	mapCmd.Flags().String("context", "", "optional analysis context file")
	mapCmd.Flags().Int("depth", 0, "exploration depth (default 3)")
	mapCmd.Flags().Float64("rigor", 0, "analysis rigor in (0,1] (default 0.8)")
	mapCmd.Flags().String("strategy", "", "navigation strategy (default gap_hopping)")
	mapCmd.Flags().String("cluster-method", "", "clustering method (default semantic)")
	mapCmd.Flags().Int("max-clusters", 0, "maximum clusters to report (default 5)")
	mapCmd.Flags().String("output", "", "write the report to this file instead of stdout")
	mapCmd.Flags().String("format", "json", "report format: json or yaml")
	mapCmd.Flags().Bool("quiet", false, "suppress the summary banner")

	_ = mapCmd.MarkFlagRequired("current")
	_ = mapCmd.MarkFlagRequired("goal")

	rootCmd.AddCommand(mapCmd)
}

func runMap(cmd *cobra.Command, args []string) error {
	currentPath, _ := cmd.Flags().GetString("current")
	goalPath, _ := cmd.Flags().GetString("goal")

	current, err := discover.LoadState(currentPath)
	if err != nil {
		return err
	}
	goal, err := discover.LoadState(goalPath)
	if err != nil {
		return err
	}

	actx, err := loadContextFlag(cmd)
	if err != nil {
		return err
	}

	cfg := analysisConfig(cmd)
	analyzer := report.NewAnalyzer(cfg, os.Stderr)

	rep, err := analyzer.Analyze(cmd.Context(), current, goal, actx)
	if err != nil {
		return err
	}

	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		printSummary(rep)
	}

	format, _ := cmd.Flags().GetString("format")
	data, err := marshalReport(rep, format)
	if err != nil {
		return err
	}

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		if err := os.WriteFile(output, data, 0o644); err != nil {
			// Report the write failure but do not lose the analysis.
			fmt.Fprintln(os.Stdout, string(data))
			return fmt.Errorf("writing report to %s: %w", output, err)
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", output)
		return nil
	}

	fmt.Fprintln(os.Stdout, string(data))
	return nil
}

// analysisConfig resolves each setting: flag first, then config file, then
// the built-in default.
func analysisConfig(cmd *cobra.Command) types.AnalysisConfig {
	depth, _ := cmd.Flags().GetInt("depth")
	if depth == 0 {
		depth = viper.GetInt("depth")
	}
	rigor, _ := cmd.Flags().GetFloat64("rigor")
	if rigor == 0 {
		rigor = viper.GetFloat64("rigor")
	}
	maxClusters, _ := cmd.Flags().GetInt("max-clusters")
	if maxClusters == 0 {
		maxClusters = viper.GetInt("max_clusters")
	}
	method, _ := cmd.Flags().GetString("cluster-method")
	if method == "" {
		method = viper.GetString("cluster_method")
	}
	strategy, _ := cmd.Flags().GetString("strategy")
	if strategy == "" {
		strategy = viper.GetString("strategy")
	}

	return types.AnalysisConfig{
		Engine:     types.EngineConfig{Depth: depth, Rigor: rigor},
		Cluster:    types.ClusterConfig{MaxClusters: maxClusters, Method: method},
		Navigation: types.NavigationConfig{Strategy: strategy},
	}
}

func loadContextFlag(cmd *cobra.Command) (*types.Context, error) {
	contextPath, _ := cmd.Flags().GetString("context")
	if contextPath == "" {
		return nil, nil
	}
	return discover.LoadContext(contextPath)
}

func marshalReport(rep *types.Report, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding report: %w", err)
		}
		return data, nil
	case "yaml":
		data, err := yaml.Marshal(rep)
		if err != nil {
			return nil, fmt.Errorf("encoding report: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("unknown report format %q (want json or yaml)", format)
}

// printSummary writes the human-readable banner to stderr; the report
// document itself stays machine-readable on stdout.
func printSummary(rep *types.Report) {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	bold.Fprintf(os.Stderr, "Void map %s\n", rep.Summary.VoidMapID)
	fmt.Fprintf(os.Stderr, "  gaps: %d  density: %.2f  connectivity: %.2f  navigability: %.2f\n",
		rep.Summary.TotalGaps, rep.Summary.VoidDensity,
		rep.Summary.Connectivity, rep.Summary.Navigability)

	for _, f := range rep.CriticalFindings {
		red.Fprintf(os.Stderr, "  BLOCKING %s: %s\n", f.GapID, f.Description)
	}
	for _, r := range rep.Recommendations {
		yellow.Fprintf(os.Stderr, "  - %s\n", r)
	}
}
