package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/brasa-dev/brasa/pkg/scanner"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a brasa.yaml for this project",
	Long: `Create a brasa.yaml with the scanner configuration. Prompts for the
routes directory and island suffix unless --yes accepts the defaults.

Examples:
  brasa init
  brasa init --yes`,
	Run: runInit,
}

var initYes bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Accept defaults without prompting")
}

func runInit(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	path := filepath.Join(".", configName+".yaml")
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("  %s %s already exists\n", yellow("!"), path)
		os.Exit(1)
	}

	cfg := scanner.DefaultConfig()

	if !initYes && !jsonOutput {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Routes directory").
					Description("Project subdirectory holding the route files").
					Value(&cfg.RoutesDir),
				huh.NewInput().
					Title("Island suffix").
					Description("Stem marker identifying island files").
					Value(&cfg.IslandSuffix),
			),
		)
		if err := form.Run(); err != nil {
			fmt.Printf("  %s Cancelled\n", yellow("!"))
			return
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Printf("  %s %v\n", red("Error:"), err)
		os.Exit(1)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Printf("  %s %v\n", red("Error:"), err)
		os.Exit(1)
	}

	if jsonOutput {
		outputJSON(map[string]any{"created": path})
		return
	}
	fmt.Printf("  %s Wrote %s\n", green("✓"), path)
}
