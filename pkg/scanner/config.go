package scanner

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Config controls a scan. The zero value scans "<root>/routes" for the
// default extensions with no excludes.
type Config struct {
	// RoutesDir is the subdirectory of the project root to scan.
	RoutesDir string `mapstructure:"routesDir" yaml:"routesDir"`
	// Extensions are the eligible file suffixes, dot included.
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`
	// Exclude are doublestar glob rules matched against root-relative
	// paths; matching files and directories never reach classification.
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`
	// IslandSuffix is the stem marker identifying island files.
	IslandSuffix string `mapstructure:"islandSuffix" yaml:"islandSuffix"`
}

// DefaultConfig returns the configuration used when the caller overrides
// nothing.
func DefaultConfig() Config {
	return Config{
		RoutesDir:    "routes",
		Extensions:   []string{".tsx", ".jsx", ".ts", ".js"},
		IslandSuffix: ".island",
	}
}

// withDefaults merges c over the defaults into one immutable value assembled
// at scan start. Slices are copied so later caller mutation cannot leak into
// a running scan.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	merged := Config{
		RoutesDir:    c.RoutesDir,
		IslandSuffix: c.IslandSuffix,
	}
	if merged.RoutesDir == "" {
		merged.RoutesDir = def.RoutesDir
	}
	if merged.IslandSuffix == "" {
		merged.IslandSuffix = def.IslandSuffix
	}

	exts := c.Extensions
	if len(exts) == 0 {
		exts = def.Extensions
	}
	merged.Extensions = append([]string(nil), exts...)
	merged.Exclude = append([]string(nil), c.Exclude...)
	return merged
}

// validate checks each exclude rule once, before any matching happens.
func (c Config) validate() error {
	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	return nil
}

// excluded reports whether a root-relative path matches any exclude rule.
// Directories are additionally tested with a trailing separator so rules
// like "drafts/" behave as expected.
func (c Config) excluded(relPath string, isDir bool) bool {
	for _, pattern := range c.Exclude {
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return true
		}
		if isDir {
			if ok, _ := doublestar.Match(pattern, relPath+"/"); ok {
				return true
			}
		}
	}
	return false
}

// hasExtension reports whether base carries one of the configured suffixes.
func (c Config) hasExtension(base string) bool {
	ext := pathExt(base)
	for _, e := range c.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
