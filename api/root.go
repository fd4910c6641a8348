package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Inventory console API server",
	Long: `Backend of the inventory admin console.

Serves products, stock movements, suppliers, purchase orders, dashboard
figures, reports and notifications over HTTP. Settings come from an optional
YAML file and INVENTORY_* environment variables.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
}
