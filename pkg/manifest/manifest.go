// Package manifest serializes a resolved route table to a project manifest
// file consumed by downstream tooling (code generation, deploy checks).
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brasa-dev/brasa/pkg/scanner"
)

// Version is bumped whenever the manifest layout changes incompatibly.
const Version = 1

// Manifest is the persisted form of one scan's route table. Route order is
// the scanner's match-priority order and must be preserved by consumers.
type Manifest struct {
	Version   int     `yaml:"version" json:"version"`
	RoutesDir string  `yaml:"routesDir" json:"routesDir"`
	Routes    []Route `yaml:"routes" json:"routes"`
}

// Route is one table entry stripped down to what consumers need.
type Route struct {
	ID        string   `yaml:"id" json:"id"`
	Pattern   string   `yaml:"pattern" json:"pattern"`
	Kind      string   `yaml:"kind" json:"kind"`
	File      string   `yaml:"file" json:"file"`
	Module    string   `yaml:"module" json:"module"`
	Methods   []string `yaml:"methods,omitempty" json:"methods,omitempty"`
	Layouts   []string `yaml:"layouts,omitempty" json:"layouts,omitempty"`
	Loading   string   `yaml:"loading,omitempty" json:"loading,omitempty"`
	Error     string   `yaml:"error,omitempty" json:"error,omitempty"`
	Client    string   `yaml:"client,omitempty" json:"client,omitempty"`
	Component string   `yaml:"component,omitempty" json:"component,omitempty"`
}

// FromScan builds a manifest from a scan result.
func FromScan(result *scanner.ScanResult, routesDir string) *Manifest {
	m := &Manifest{
		Version:   Version,
		RoutesDir: routesDir,
		Routes:    make([]Route, 0, len(result.Routes)),
	}
	for _, r := range result.Routes {
		m.Routes = append(m.Routes, Route{
			ID:        r.ID,
			Pattern:   r.Pattern,
			Kind:      r.Kind.String(),
			File:      r.FilePath,
			Module:    r.Module,
			Methods:   r.Methods,
			Layouts:   r.Layouts,
			Loading:   r.LoadingModule,
			Error:     r.ErrorModule,
			Client:    r.ClientModule,
			Component: r.ComponentModule,
		})
	}
	return m
}

// Write persists the manifest at path, format chosen by extension
// (.json, otherwise YAML). Parent directories are created as needed.
func (m *Manifest) Write(path string) error {
	var (
		data []byte
		err  error
	)
	if strings.HasSuffix(path, ".json") {
		data, err = json.MarshalIndent(m, "", "  ")
	} else {
		data, err = yaml.Marshal(m)
	}
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads a manifest back, format chosen by extension.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if strings.HasSuffix(path, ".json") {
		err = json.Unmarshal(data, &m)
	} else {
		err = yaml.Unmarshal(data, &m)
	}
	if err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	if m.Version != Version {
		return nil, fmt.Errorf("manifest %s has version %d, this tool expects %d", path, m.Version, Version)
	}
	return &m, nil
}
