package commands

import (
	"encoding/json"
	"fmt"
	"os"
)

// jsonOutput is the global flag for JSON output mode.
var jsonOutput bool

// RoutesOutput is the JSON payload of the routes command.
type RoutesOutput struct {
	Routes      []RouteOutput      `json:"routes"`
	Diagnostics []DiagnosticOutput `json:"diagnostics,omitempty"`
	Stats       StatsOutput        `json:"stats"`
}

// RouteOutput is one route in JSON output.
type RouteOutput struct {
	Pattern string   `json:"pattern"`
	Kind    string   `json:"kind"`
	File    string   `json:"file"`
	Methods []string `json:"methods,omitempty"`
	Layouts []string `json:"layouts,omitempty"`
	Client  string   `json:"client,omitempty"`
}

// DiagnosticOutput is one diagnostic in JSON output.
type DiagnosticOutput struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	File    string `json:"file"`
	Other   string `json:"other,omitempty"`
}

// StatsOutput mirrors scan stats in JSON output.
type StatsOutput struct {
	Files     int    `json:"files"`
	Pages     int    `json:"pages"`
	APIRoutes int    `json:"api_routes"`
	Layouts   int    `json:"layouts"`
	Islands   int    `json:"islands"`
	Elapsed   string `json:"elapsed"`
}

// outputJSON writes v as indented JSON to stdout.
func outputJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}

// printJSONError writes a standard error payload and exits non-zero.
func printJSONError(err error) {
	outputJSON(map[string]any{"error": err.Error()})
	os.Exit(1)
}
