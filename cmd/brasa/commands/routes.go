package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/brasa-dev/brasa/pkg/manifest"
	"github.com/brasa-dev/brasa/pkg/scanner"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Resolve and list the route table",
	Long: `Scan the routes directory and print the resolved route table in match
priority order, along with any diagnostics.

Configuration is read from brasa.yaml when present; flags override it.

Examples:
  brasa routes
  brasa routes --root ./examples/shop
  brasa routes --routes-dir src/pages
  brasa routes --manifest .brasa/routes.yaml
  brasa routes --json`,
	Run: runRoutes,
}

var (
	routesRoot     string
	routesDir      string
	routesManifest string
)

func init() {
	rootCmd.AddCommand(routesCmd)

	routesCmd.Flags().StringVar(&routesRoot, "root", ".", "Project root to scan")
	routesCmd.Flags().StringVar(&routesDir, "routes-dir", "", "Routes directory (overrides brasa.yaml)")
	routesCmd.Flags().StringVar(&routesManifest, "manifest", "", "Also write the table to a manifest file")
}

func runRoutes(cmd *cobra.Command, args []string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	cfg, err := loadConfig(routesRoot)
	if err != nil {
		if jsonOutput {
			printJSONError(err)
			os.Exit(1)
		}
		fmt.Printf("  %s %v\n", red("Error:"), err)
		os.Exit(1)
	}
	if routesDir != "" {
		cfg.RoutesDir = routesDir
	}

	s, err := scanner.New(routesRoot, cfg)
	if err != nil {
		if jsonOutput {
			printJSONError(err)
			os.Exit(1)
		}
		fmt.Printf("  %s %v\n", red("Error:"), err)
		os.Exit(1)
	}

	result, err := s.Scan()
	if err != nil {
		if jsonOutput {
			printJSONError(err)
			os.Exit(1)
		}
		fmt.Printf("  %s %v\n", red("Error:"), err)
		os.Exit(1)
	}

	if routesManifest != "" {
		m := manifest.FromScan(result, s.Config().RoutesDir)
		if err := m.Write(routesManifest); err != nil {
			if jsonOutput {
				printJSONError(err)
				os.Exit(1)
			}
			fmt.Printf("  %s %v\n", red("Error:"), err)
			os.Exit(1)
		}
	}

	if jsonOutput {
		outputJSON(routesOutput(result))
		if hasErrors(result) {
			os.Exit(1)
		}
		return
	}

	fmt.Printf("\n  %s Routes\n\n", cyan("Brasa"))

	if len(result.Routes) == 0 {
		fmt.Printf("  No routes found under %s\n\n", s.Config().RoutesDir)
	}
	for _, r := range result.Routes {
		switch r.Kind {
		case scanner.KindAPI:
			fmt.Printf("  %s %-28s %s\n", green(strings.Join(r.Methods, ",")), r.Pattern, r.FilePath)
		default:
			label := "PAGE"
			if r.ClientModule != "" {
				label = "PAGE*"
			}
			fmt.Printf("  %s %-28s %s\n", cyan(label), r.Pattern, r.FilePath)
		}
	}

	if len(result.Diagnostics) > 0 {
		fmt.Printf("\n  %s Diagnostics (%d)\n", yellow("!"), len(result.Diagnostics))
		for _, d := range result.Diagnostics {
			fmt.Printf("    %s %s: %s\n", red(string(d.Kind)), d.File, d.Message)
		}
	}

	fmt.Printf("\n  %s %d files, %d pages, %d api routes, %d layouts, %d islands (%s)\n\n",
		green("✓"),
		result.Stats.Files, result.Stats.Pages, result.Stats.APIs,
		result.Stats.Layouts, result.Stats.Islands, result.Stats.Elapsed)

	if hasErrors(result) {
		os.Exit(1)
	}
}

// hasErrors reports whether any diagnostic should fail the command.
func hasErrors(result *scanner.ScanResult) bool {
	return len(result.Diagnostics) > 0
}

// routesOutput converts a scan result to its JSON form.
func routesOutput(result *scanner.ScanResult) RoutesOutput {
	out := RoutesOutput{
		Routes: make([]RouteOutput, 0, len(result.Routes)),
		Stats: StatsOutput{
			Files:     result.Stats.Files,
			Pages:     result.Stats.Pages,
			APIRoutes: result.Stats.APIs,
			Layouts:   result.Stats.Layouts,
			Islands:   result.Stats.Islands,
			Elapsed:   result.Stats.Elapsed.String(),
		},
	}
	for _, r := range result.Routes {
		out.Routes = append(out.Routes, RouteOutput{
			Pattern: r.Pattern,
			Kind:    r.Kind.String(),
			File:    r.FilePath,
			Methods: r.Methods,
			Layouts: r.Layouts,
			Client:  r.ClientModule,
		})
	}
	for _, d := range result.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, DiagnosticOutput{
			Kind:    string(d.Kind),
			Message: d.Message,
			File:    d.File,
			Other:   d.Other,
		})
	}
	return out
}
