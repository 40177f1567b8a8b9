package scanner

import "strings"

// privatePrefix marks folders excluded, with their whole subtree, from the
// walk.
const privatePrefix = "_"

// Reserved file stems. Any other stem is a co-located file with no routing
// meaning (styles, tests, fixtures) and is ignored without a diagnostic.
const (
	stemPage    = "page"
	stemAPI     = "route"
	stemLayout  = "layout"
	stemLoading = "loading"
	stemError   = "error"
)

// IsPrivateDir reports whether a directory name excludes its subtree from
// the scan. Hidden directories count as private.
func IsPrivateDir(name string) bool {
	return strings.HasPrefix(name, privatePrefix) || strings.HasPrefix(name, ".")
}

// ClassifyFile decides a file's role from its base name. The extension must
// already have been filtered by the walker; islandSuffix is the configured
// stem marker for island files (e.g. ".island" in "counter.island.tsx").
func ClassifyFile(base, islandSuffix string) FileRole {
	stem := base
	if ext := pathExt(base); ext != "" {
		stem = strings.TrimSuffix(base, ext)
	}

	switch stem {
	case stemPage:
		return RolePage
	case stemAPI:
		return RoleAPI
	case stemLayout:
		return RoleLayout
	case stemLoading:
		return RoleLoading
	case stemError:
		return RoleError
	}

	if islandSuffix != "" && strings.HasSuffix(stem, islandSuffix) {
		return RoleIsland
	}
	return RoleIgnored
}

// islandStem returns the island's base name without extension or island
// suffix: "counter.island.tsx" -> "counter". Used by the hydration analyzer
// to locate imports of the island module.
func islandStem(base, islandSuffix string) string {
	stem := strings.TrimSuffix(base, pathExt(base))
	return strings.TrimSuffix(stem, islandSuffix)
}
