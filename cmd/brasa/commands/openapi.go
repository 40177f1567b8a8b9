package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/brasa-dev/brasa/pkg/openapi"
	"github.com/brasa-dev/brasa/pkg/scanner"
)

var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Generate an OpenAPI specification from API routes",
	Long: `Resolve the route table and generate an OpenAPI 3.1 specification for
its API routes.

Examples:
  brasa openapi
  brasa openapi --output api.yaml --format yaml
  brasa openapi --title "Shop API" --api-version 2.0.0`,
	Run: runOpenAPI,
}

var (
	openapiRoot       string
	openapiOutput     string
	openapiFormat     string
	openapiTitle      string
	openapiAPIVersion string
	openapiDesc       string
	openapiServerURL  string
)

func init() {
	rootCmd.AddCommand(openapiCmd)

	openapiCmd.Flags().StringVar(&openapiRoot, "root", ".", "Project root to scan")
	openapiCmd.Flags().StringVarP(&openapiOutput, "output", "o", "openapi.json", "Output file path")
	openapiCmd.Flags().StringVarP(&openapiFormat, "format", "f", "json", "Output format (json|yaml)")
	openapiCmd.Flags().StringVar(&openapiTitle, "title", "", "API title")
	openapiCmd.Flags().StringVar(&openapiAPIVersion, "api-version", "1.0.0", "API version")
	openapiCmd.Flags().StringVar(&openapiDesc, "description", "", "API description")
	openapiCmd.Flags().StringVar(&openapiServerURL, "server", "", "Server URL (e.g. http://localhost:3000)")
}

func runOpenAPI(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	cfg, err := loadConfig(openapiRoot)
	if err != nil {
		if jsonOutput {
			printJSONError(err)
			os.Exit(1)
		}
		fmt.Printf("  %s %v\n", red("Error:"), err)
		os.Exit(1)
	}

	result, err := scanner.Scan(openapiRoot, cfg)
	if err != nil {
		if jsonOutput {
			printJSONError(err)
			os.Exit(1)
		}
		fmt.Printf("  %s %v\n", red("Error:"), err)
		os.Exit(1)
	}

	specCfg := openapi.Config{
		Title:       openapiTitle,
		Version:     openapiAPIVersion,
		Description: openapiDesc,
	}
	if openapiServerURL != "" {
		specCfg.Servers = []openapi.Server{{URL: openapiServerURL}}
	}

	if err := openapi.WriteFile(result, specCfg, openapiOutput, openapiFormat); err != nil {
		if jsonOutput {
			printJSONError(err)
			os.Exit(1)
		}
		fmt.Printf("  %s %v\n", red("Error:"), err)
		os.Exit(1)
	}

	if jsonOutput {
		outputJSON(map[string]any{"output": openapiOutput, "format": openapiFormat})
		return
	}
	fmt.Printf("  %s Wrote %s\n", green("✓"), openapiOutput)
}
