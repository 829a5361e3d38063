// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the voidmap CLI.
// Implements: prd007-cli (command surface).
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the voidmap CLI.
var rootCmd = &cobra.Command{
	Use:   "voidmap",
	Short: "Map the gaps between a current and a goal state",
	Long: `voidmap compares two state descriptions and maps what is absent: the
dependencies, information, constraints, and capabilities separating the
current state from the goal state.

The map subcommand runs the full analysis (discovery, relationship graph,
clustering, navigation, report); simulate answers what-if questions about
resolving individual gaps.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./voidmap.yaml or ~/.config/voidmap/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("voidmap")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "voidmap"))
		}
	}

	viper.SetEnvPrefix("VOIDMAP")
	viper.AutomaticEnv()

	viper.SetDefault("depth", 3)
	viper.SetDefault("rigor", 0.8)
	viper.SetDefault("max_clusters", 5)
	viper.SetDefault("cluster_method", "semantic")
	viper.SetDefault("strategy", "gap_hopping")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
