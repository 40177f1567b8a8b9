// Package commands provides the CLI commands for Brasa.
package commands

import (
	"fmt"
	"os"

	"github.com/brasa-dev/brasa/internal/version"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "brasa",
	Short: "Brasa - filesystem routing toolchain",
	Long: `Brasa resolves filesystem routes (pages, API handlers, layouts, islands)
into a validated route table.

Quick Start:
  brasa init           Write a brasa.yaml for this project
  brasa routes         Resolve and list the route table
  brasa openapi        Generate an OpenAPI spec from API routes

Documentation: https://github.com/brasa-dev/brasa`,
	Version: version.GetVersion(),
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for automation)")

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
}
