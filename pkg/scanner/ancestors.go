package scanner

// dirIndex is a flat map from directory path to the special file each
// directory defines, one per role. It backs every ancestor lookup so no
// tree structure is ever built.
type dirIndex struct {
	layouts  map[string]string
	loadings map[string]string
	errors   map[string]string
	islands  map[string]string
}

// buildDirIndex indexes special files by their containing directory. Files
// arrive sorted by path, so when a directory holds more than one file of a
// role the lexicographically smallest wins.
func buildDirIndex(files []ScannedFile) *dirIndex {
	idx := &dirIndex{
		layouts:  make(map[string]string),
		loadings: make(map[string]string),
		errors:   make(map[string]string),
		islands:  make(map[string]string),
	}

	for _, f := range files {
		var m map[string]string
		switch f.Role {
		case RoleLayout:
			m = idx.layouts
		case RoleLoading:
			m = idx.loadings
		case RoleError:
			m = idx.errors
		case RoleIsland:
			m = idx.islands
		default:
			continue
		}
		dir := dirOf(f.RelPath)
		if _, ok := m[dir]; !ok {
			m[dir] = f.RelPath
		}
	}
	return idx
}

// layoutChain assembles the layout modules enclosing dir, root to leaf. The
// root itself participates; group directories do too, since a layout inside
// "(admin)" wraps everything beneath it.
func (idx *dirIndex) layoutChain(dir string) []string {
	prefixes := []string{""}
	if dir != "" {
		for i := 0; i < len(dir); i++ {
			if dir[i] == '/' {
				prefixes = append(prefixes, dir[:i])
			}
		}
		prefixes = append(prefixes, dir)
	}

	var chain []string
	for _, p := range prefixes {
		if layout, ok := idx.layouts[p]; ok {
			chain = append(chain, layout)
		}
	}
	return chain
}

// closest walks from dir up to and including the root looking for the
// nearest entry in m. Returns "" when no ancestor defines one.
func closest(m map[string]string, dir string) string {
	for {
		if file, ok := m[dir]; ok {
			return file
		}
		if dir == "" {
			return ""
		}
		dir = parentOf(dir)
	}
}

// closestLoading returns the nearest loading boundary for dir, or "".
func (idx *dirIndex) closestLoading(dir string) string { return closest(idx.loadings, dir) }

// closestError returns the nearest error boundary for dir, or "".
func (idx *dirIndex) closestError(dir string) string { return closest(idx.errors, dir) }

// closestIsland returns the nearest island file for dir, or "".
func (idx *dirIndex) closestIsland(dir string) string { return closest(idx.islands, dir) }
