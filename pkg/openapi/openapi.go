// Package openapi turns a resolved route table into an OpenAPI 3 document.
// Only API routes participate; pages are a rendering concern.
package openapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/brasa-dev/brasa/pkg/scanner"
)

// Config configures spec generation.
type Config struct {
	// Title is the API title (default: "API").
	Title string
	// Version is the API version (default: "1.0.0").
	Version string
	// Description is the API description.
	Description string
	// OpenAPIVersion is the spec version (default: "3.1.0").
	OpenAPIVersion string
	// Servers are the server URLs.
	Servers []Server
}

// Server is one server entry in the spec.
type Server struct {
	URL         string
	Description string
}

// Generate builds an OpenAPI document from the route table in result.
func Generate(result *scanner.ScanResult, config Config) *openapi3.T {
	if config.Title == "" {
		config.Title = "API"
	}
	if config.Version == "" {
		config.Version = "1.0.0"
	}
	if config.OpenAPIVersion == "" {
		config.OpenAPIVersion = "3.1.0"
	}

	doc := &openapi3.T{
		OpenAPI: config.OpenAPIVersion,
		Info: &openapi3.Info{
			Title:       config.Title,
			Version:     config.Version,
			Description: config.Description,
		},
		Paths: openapi3.NewPaths(),
	}

	if len(config.Servers) > 0 {
		doc.Servers = make(openapi3.Servers, 0, len(config.Servers))
		for _, srv := range config.Servers {
			doc.Servers = append(doc.Servers, &openapi3.Server{
				URL:         srv.URL,
				Description: srv.Description,
			})
		}
	}

	for _, route := range result.Routes {
		if route.Kind != scanner.KindAPI {
			continue
		}
		doc.Paths.Set(pathTemplate(route.Segments), buildPathItem(route))
	}

	return doc
}

// GenerateJSON returns the spec as indented JSON.
func GenerateJSON(result *scanner.ScanResult, config Config) ([]byte, error) {
	return json.MarshalIndent(Generate(result, config), "", "  ")
}

// GenerateYAML returns the spec as YAML.
func GenerateYAML(result *scanner.ScanResult, config Config) ([]byte, error) {
	return yaml.Marshal(Generate(result, config))
}

// WriteFile writes the spec to path in the given format ("json" or "yaml").
func WriteFile(result *scanner.ScanResult, config Config, path, format string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(format) {
	case "yaml", "yml":
		data, err = GenerateYAML(result, config)
	case "json":
		data, err = GenerateJSON(result, config)
	default:
		return fmt.Errorf("unsupported format: %s (use json or yaml)", format)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// pathTemplate renders segments as an OpenAPI path: dynamic and catch-all
// parameters both become {name}, groups disappear.
func pathTemplate(segments []scanner.Segment) string {
	var parts []string
	for _, seg := range segments {
		switch seg.Kind {
		case scanner.SegmentGroup:
			continue
		case scanner.SegmentDynamic, scanner.SegmentCatchAll, scanner.SegmentOptionalCatchAll:
			parts = append(parts, "{"+seg.Name+"}")
		default:
			parts = append(parts, seg.Raw)
		}
	}
	if len(parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(parts, "/")
}

func buildPathItem(route scanner.RouteConfig) *openapi3.PathItem {
	item := &openapi3.PathItem{}
	for _, method := range route.Methods {
		op := buildOperation(route, method)
		switch method {
		case http.MethodGet:
			item.Get = op
		case http.MethodPost:
			item.Post = op
		case http.MethodPut:
			item.Put = op
		case http.MethodPatch:
			item.Patch = op
		case http.MethodDelete:
			item.Delete = op
		case http.MethodHead:
			item.Head = op
		case http.MethodOptions:
			item.Options = op
		}
	}
	return item
}

func buildOperation(route scanner.RouteConfig, method string) *openapi3.Operation {
	op := &openapi3.Operation{
		OperationID: route.ID + "-" + strings.ToLower(method),
		Tags:        []string{deriveTag(route.Segments)},
		Responses:   openapi3.NewResponses(),
	}

	params := buildParameters(route.Segments)
	if len(params) > 0 {
		op.Parameters = params
	}

	op.Responses.Set("200", &openapi3.ResponseRef{
		Value: &openapi3.Response{Description: openapi3.Ptr("Success")},
	})

	hasBody := method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch
	if hasBody {
		op.Responses.Set("400", &openapi3.ResponseRef{
			Value: &openapi3.Response{Description: openapi3.Ptr("Bad Request")},
		})
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: &openapi3.RequestBody{
				Description: "Request body",
				Required:    true,
				Content: openapi3.NewContentWithJSONSchema(&openapi3.Schema{
					Type: &openapi3.Types{"object"},
				}),
			},
		}
	}
	if len(params) > 0 && method != http.MethodPost {
		op.Responses.Set("404", &openapi3.ResponseRef{
			Value: &openapi3.Response{Description: openapi3.Ptr("Not Found")},
		})
	}

	return op
}

// buildParameters declares one required path parameter per dynamic or
// catch-all segment.
func buildParameters(segments []scanner.Segment) openapi3.Parameters {
	var params openapi3.Parameters
	for _, seg := range segments {
		switch seg.Kind {
		case scanner.SegmentDynamic, scanner.SegmentCatchAll, scanner.SegmentOptionalCatchAll:
		default:
			continue
		}

		desc := fmt.Sprintf("%s parameter", seg.Name)
		if seg.Kind != scanner.SegmentDynamic {
			desc = fmt.Sprintf("%s parameter (spans remaining path components)", seg.Name)
		}
		params = append(params, &openapi3.ParameterRef{Value: &openapi3.Parameter{
			Name:        seg.Name,
			In:          "path",
			Required:    true,
			Description: desc,
			Schema: &openapi3.SchemaRef{
				Value: &openapi3.Schema{Type: &openapi3.Types{"string"}},
			},
		}})
	}
	return params
}

// deriveTag picks the first meaningful static segment, skipping a leading
// "api" prefix.
func deriveTag(segments []scanner.Segment) string {
	first := true
	for _, seg := range segments {
		if seg.Kind != scanner.SegmentStatic {
			continue
		}
		if first && seg.Name == "api" {
			first = false
			continue
		}
		return seg.Name
	}
	return "default"
}
