package scanner

import (
	"fmt"
	"net/http"
	"os"
	"regexp"
	"sort"
	"strings"
)

// exportedHandlerRe finds exported HTTP handler bindings in an API module.
var exportedHandlerRe = regexp.MustCompile(
	`(?m)^\s*export\s+(?:async\s+)?(?:function|const|let)\s+(GET|POST|PUT|PATCH|DELETE|HEAD|OPTIONS)\b`)

// allMethods is the method set assumed when an API module exports no
// recognizable handler names.
var allMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodHead,
	http.MethodOptions,
}

// buildRoutes resolves one RouteConfig per page/API file, rejecting
// duplicates and structurally ambiguous patterns, then orders the table by
// match priority. Files must already be sorted by relative path; that order
// decides which of two conflicting routes wins.
func (s *Scanner) buildRoutes(files []ScannedFile, idx *dirIndex, result *ScanResult) []RouteConfig {
	patternOwners := make(map[string]string)
	shapeOwners := make(map[string]string)
	takenIDs := make(map[string]bool)

	var routes []RouteConfig
	for _, f := range files {
		if f.Role != RolePage && f.Role != RoleAPI {
			continue
		}

		if err := ValidateSegments(f.Segments); err != nil {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Kind:    DiagInvalidSegment,
				Message: err.Error(),
				File:    f.RelPath,
			})
			continue
		}

		pattern := BuildPattern(f.Segments)
		shape := PatternShape(f.Segments)

		if owner, ok := patternOwners[pattern]; ok {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Kind:    DiagDuplicateRoute,
				Message: fmt.Sprintf("duplicate route %s already defined by %s", pattern, owner),
				File:    f.RelPath,
				Other:   owner,
			})
			continue
		}
		if owner, ok := shapeOwners[shape]; ok {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Kind:    DiagPatternConflict,
				Message: fmt.Sprintf("route %s is ambiguous with %s: same structure, different parameter names", pattern, owner),
				File:    f.RelPath,
				Other:   owner,
			})
			continue
		}
		patternOwners[pattern] = f.RelPath
		shapeOwners[shape] = f.RelPath

		id := uniqueRouteID(RouteID(f.RelPath), takenIDs)
		routes = append(routes, s.resolveRoute(f, pattern, id, idx, result))
	}

	sortRoutes(routes)
	return routes
}

// uniqueRouteID reserves id in taken, suffixing a counter when the path
// reduction collides ("a-b/page.tsx" and "a/b/page.tsx" both reduce to
// "a-b-page"). Callers present files in sorted order, so suffix assignment
// is stable across scans.
func uniqueRouteID(id string, taken map[string]bool) string {
	if !taken[id] {
		taken[id] = true
		return id
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", id, n)
		if !taken[candidate] {
			taken[candidate] = true
			return candidate
		}
	}
}

// resolveRoute assembles the full config for one page/API file: ancestor
// lookups, hydration binding, and the API method set.
func (s *Scanner) resolveRoute(f ScannedFile, pattern, id string, idx *dirIndex, result *ScanResult) RouteConfig {
	dir := dirOf(f.RelPath)

	route := RouteConfig{
		ID:            id,
		Segments:      f.Segments,
		Pattern:       pattern,
		Module:        "routes/" + id,
		Layouts:       idx.layoutChain(dir),
		LoadingModule: idx.closestLoading(dir),
		ErrorModule:   idx.closestError(dir),
		FilePath:      f.RelPath,
	}

	if f.Role == RoleAPI {
		route.Kind = KindAPI
		route.Methods = s.readMethods(f, result)
		return route
	}

	route.Kind = KindPage
	route.ComponentModule = f.RelPath
	s.bindClient(&route, f, idx, result)
	return route
}

// bindClient applies client-binding precedence for a page route: a sibling
// island always wins, then the page's own client directive, else the route
// stays fully static. With an island bound, the page's content is checked
// for the null-bridge anti-pattern.
func (s *Scanner) bindClient(route *RouteConfig, f ScannedFile, idx *dirIndex, result *ScanResult) {
	island := idx.closestIsland(dirOf(f.RelPath))
	if island != "" {
		route.ClientModule = island

		content, err := os.ReadFile(f.Path)
		if err != nil {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Kind:    DiagFileReadError,
				Message: err.Error(),
				File:    f.RelPath,
			})
			return
		}
		if HasNullBridge(content, island, s.cfg.IslandSuffix) {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Kind: DiagHydrationMismatchRisk,
				Message: fmt.Sprintf(
					"page renders a null placeholder for island %s it imports; server and client render trees will diverge", island),
				File:  f.RelPath,
				Other: island,
			})
		}
		return
	}

	content, err := os.ReadFile(f.Path)
	if err != nil {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Kind:    DiagFileReadError,
			Message: err.Error(),
			File:    f.RelPath,
		})
		return
	}
	if HasClientDirective(content) {
		route.ClientModule = f.RelPath
	}
}

// readMethods extracts the exported handler set from an API module. A
// module exporting none of the known names accepts every method.
func (s *Scanner) readMethods(f ScannedFile, result *ScanResult) []string {
	content, err := os.ReadFile(f.Path)
	if err != nil {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Kind:    DiagFileReadError,
			Message: err.Error(),
			File:    f.RelPath,
		})
		return append([]string(nil), allMethods...)
	}

	found := make(map[string]bool)
	for _, m := range exportedHandlerRe.FindAllSubmatch(content, -1) {
		found[string(m[1])] = true
	}
	if len(found) == 0 {
		return append([]string(nil), allMethods...)
	}

	methods := make([]string, 0, len(found))
	for _, m := range allMethods {
		if found[m] {
			methods = append(methods, m)
		}
	}
	return methods
}

// routeClass buckets a route for priority ordering: fully static routes
// match before routes with dynamic segments, which match before catch-alls.
func routeClass(segments []Segment) int {
	class := 0
	for _, seg := range segments {
		switch seg.Kind {
		case SegmentCatchAll, SegmentOptionalCatchAll:
			return 2
		case SegmentDynamic:
			class = 1
		}
	}
	return class
}

// patternDepth counts the segments contributing to the URL.
func patternDepth(segments []Segment) int {
	n := 0
	for _, seg := range segments {
		if seg.Kind != SegmentGroup {
			n++
		}
	}
	return n
}

// sortRoutes orders the table by match priority. Ties inside a class break
// by descending depth (more specific paths first), then by pattern string
// for full determinism.
func sortRoutes(routes []RouteConfig) {
	sort.SliceStable(routes, func(i, j int) bool {
		ci, cj := routeClass(routes[i].Segments), routeClass(routes[j].Segments)
		if ci != cj {
			return ci < cj
		}
		di, dj := patternDepth(routes[i].Segments), patternDepth(routes[j].Segments)
		if di != dj {
			return di > dj
		}
		return strings.Compare(routes[i].Pattern, routes[j].Pattern) < 0
	})
}
