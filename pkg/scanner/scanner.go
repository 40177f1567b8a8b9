package scanner

import (
	"time"
)

// Scanner resolves the route table for one project root. A Scanner holds no
// state between scans; every Scan recomputes the table from the current
// directory contents.
type Scanner struct {
	root string
	cfg  Config
}

// New creates a Scanner for the given project root. The configuration is
// merged with defaults once, here; an invalid exclude pattern is the only
// way construction can fail.
func New(root string, cfg Config) (*Scanner, error) {
	merged := cfg.withDefaults()
	if err := merged.validate(); err != nil {
		return nil, err
	}
	return &Scanner{root: root, cfg: merged}, nil
}

// Scan walks the routes directory and builds the sorted route table. A
// missing routes directory yields an empty, error-free result; every other
// problem is a diagnostic on the result, never a returned error.
func (s *Scanner) Scan() (*ScanResult, error) {
	start := time.Now()
	result := &ScanResult{}

	files := s.collectFiles(result)
	idx := buildDirIndex(files)

	result.Files = files
	result.Routes = s.buildRoutes(files, idx, result)

	for _, f := range files {
		result.Stats.Files++
		switch f.Role {
		case RolePage:
			result.Stats.Pages++
		case RoleAPI:
			result.Stats.APIs++
		case RoleLayout:
			result.Stats.Layouts++
		case RoleIsland:
			result.Stats.Islands++
		}
	}
	result.Stats.Elapsed = time.Since(start)

	return result, nil
}

// Config returns the merged configuration the scanner runs with.
func (s *Scanner) Config() Config {
	return s.cfg
}

// Scan is the library entry point: scan root with cfg and return the
// resolved route table.
func Scan(root string, cfg Config) (*ScanResult, error) {
	s, err := New(root, cfg)
	if err != nil {
		return nil, err
	}
	return s.Scan()
}
