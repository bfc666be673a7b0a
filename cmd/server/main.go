// Package main is the entry point for the loadout API server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "loadout-api",
	Short: "Guardian loadout API server",
	Long:  `loadout-api serves the guardian equipment inventory, combination calculator, and build optimizer over HTTP.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
