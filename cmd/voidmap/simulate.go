package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/voidmap/internal/discover"
	"github.com/pdiddy/voidmap/internal/structure"
	"github.com/pdiddy/voidmap/pkg/types"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate resolving one gap",
	Long: `Simulate maps the void between the two state files, then reports which
gaps would collapse if the named gap were filled, along with the
dependency bottlenecks of the map.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().String("current", "", "current state file (required)")
	simulateCmd.Flags().String("goal", "", "goal state file (required)")
	simulateCmd.Flags().String("context", "", "optional analysis context file")
	simulateCmd.Flags().String("gap", "", "id of the gap to resolve (required)")

	_ = simulateCmd.MarkFlagRequired("current")
	_ = simulateCmd.MarkFlagRequired("goal")
	_ = simulateCmd.MarkFlagRequired("gap")

	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	currentPath, _ := cmd.Flags().GetString("current")
	goalPath, _ := cmd.Flags().GetString("goal")
	gapID, _ := cmd.Flags().GetString("gap")

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

	engine := discover.NewEngine(types.EngineConfig{
		Depth: viper.GetInt("depth"),
		Rigor: viper.GetFloat64("rigor"),
	}, os.Stderr)
	vm := engine.MapVoid(current, goal, actx)

	collapsed := structure.SimulateResolution(vm, gapID)
	if collapsed == nil {
		return fmt.Errorf("gap %q not found in void map %s", gapID, vm.ID)
	}

	bold := color.New(color.Bold)
	bold.Printf("Resolving %s collapses %d gap(s):\n", gapID, len(collapsed))
	for _, id := range collapsed {
		g := vm.GapByID(id)
		fmt.Printf("  %s (%s)\n", id, g.VoidType)
	}

	if bottlenecks := structure.Bottlenecks(vm); len(bottlenecks) > 0 {
		bold.Println("Bottlenecks:")
		for _, id := range bottlenecks {
			fmt.Printf("  %s\n", id)
		}
	}

	return nil
}
