// Package scanner resolves a project's route directory into a validated,
// deterministically ordered route table. Directory and file names carry the
// routing grammar ([id], [...slug], [[...slug]], (group), _private); file
// stems decide roles (page, route, layout, loading, error, *.island).
package scanner

import "time"

// SegmentKind classifies one path segment of a route directory.
type SegmentKind int

const (
	// SegmentStatic is a literal path segment (e.g. "users").
	SegmentStatic SegmentKind = iota
	// SegmentDynamic is a named parameter (e.g. "[id]").
	SegmentDynamic
	// SegmentCatchAll matches one or more trailing parts (e.g. "[...slug]").
	SegmentCatchAll
	// SegmentOptionalCatchAll matches zero or more trailing parts (e.g. "[[...slug]]").
	SegmentOptionalCatchAll
	// SegmentGroup organizes files on disk without affecting the URL (e.g. "(admin)").
	SegmentGroup
	// SegmentPrivate marks a folder whose whole subtree is excluded (e.g. "_lib").
	SegmentPrivate
	// SegmentInvalid is bracket syntax that failed to parse (e.g. "[]", "[...]").
	SegmentInvalid
)

// Segment is one parsed path component. Immutable after creation.
type Segment struct {
	// Raw is the original directory name.
	Raw string
	// Name is the parameter name for dynamic/catch-all kinds,
	// the literal text for static segments, the group name for groups.
	Name string
	// Kind is the segment kind.
	Kind SegmentKind
}

// FileRole is the role a discovered file plays in the route tree,
// decided once at classification time.
type FileRole int

const (
	// RolePage is a server-rendered page entry ("page" stem).
	RolePage FileRole = iota
	// RoleAPI is an API handler module ("route" stem).
	RoleAPI
	// RoleLayout wraps descendant pages ("layout" stem).
	RoleLayout
	// RoleLoading is a loading boundary ("loading" stem).
	RoleLoading
	// RoleError is an error boundary ("error" stem).
	RoleError
	// RoleIsland is a client-hydrated component (island suffix).
	RoleIsland
	// RoleIgnored is any co-located file with no routing meaning.
	RoleIgnored
)

// ScannedFile is a file discovered under the routes root.
type ScannedFile struct {
	// Path is the absolute path on disk.
	Path string
	// RelPath is the slash-separated path relative to the routes root.
	RelPath string
	// Role is the classified file role.
	Role FileRole
	// Segments are the parsed directory segments leading to the file.
	Segments []Segment
	// Ext is the file extension including the dot.
	Ext string
}

// RouteKind distinguishes page routes from API routes.
type RouteKind int

const (
	// KindPage is a rendered page route.
	KindPage RouteKind = iota
	// KindAPI is an API handler route.
	KindAPI
)

// String returns "page" or "api".
func (k RouteKind) String() string {
	if k == KindAPI {
		return "api"
	}
	return "page"
}

// String names the role the way route files spell it.
func (r FileRole) String() string {
	switch r {
	case RolePage:
		return "page"
	case RoleAPI:
		return "api"
	case RoleLayout:
		return "layout"
	case RoleLoading:
		return "loading"
	case RoleError:
		return "error"
	case RoleIsland:
		return "island"
	default:
		return "ignored"
	}
}

// RouteConfig is one resolved route in the table.
type RouteConfig struct {
	// ID is a stable identifier derived from the source file path.
	ID string
	// Segments are the route's directory segments.
	Segments []Segment
	// Pattern is the compiled URL pattern (e.g. "/users/:id").
	Pattern string
	// Kind is page or API.
	Kind RouteKind
	// Module is the generated module reference for this route.
	Module string
	// ComponentModule is the page component module, empty for API routes.
	ComponentModule string
	// ClientModule is the hydration entry: a sibling island module, or the
	// page itself when it carries a client directive. Empty for static routes.
	ClientModule string
	// Layouts is the enclosing layout chain, root to leaf.
	Layouts []string
	// LoadingModule is the nearest loading boundary, empty if none.
	LoadingModule string
	// ErrorModule is the nearest error boundary, empty if none.
	ErrorModule string
	// FilePath is the source file path relative to the routes root.
	FilePath string
	// Methods is the accepted HTTP method set, API routes only.
	Methods []string
}

// DiagnosticKind identifies a scan diagnostic.
type DiagnosticKind string

const (
	// DiagInvalidSegment is malformed parameter syntax or a misplaced catch-all.
	DiagInvalidSegment DiagnosticKind = "invalid-segment"
	// DiagDuplicateRoute is two files compiling to the identical pattern.
	DiagDuplicateRoute DiagnosticKind = "duplicate-route"
	// DiagPatternConflict is two routes sharing a shape under different
	// parameter names.
	DiagPatternConflict DiagnosticKind = "pattern-conflict"
	// DiagFileReadError is a directory the walker could not enumerate.
	DiagFileReadError DiagnosticKind = "file-read-error"
	// DiagHydrationMismatchRisk flags a page that statically renders a null
	// placeholder for an island it imports.
	DiagHydrationMismatchRisk DiagnosticKind = "hydration-shell-mismatch-risk"
)

// Diagnostic is a non-fatal scan problem. The scan always proceeds.
type Diagnostic struct {
	// Kind is the diagnostic kind.
	Kind DiagnosticKind
	// Message is a human-readable description.
	Message string
	// File is the offending file path, relative to the routes root.
	File string
	// Other is the conflicting or duplicate file for route conflicts.
	Other string
}

// Stats aggregates counts for one scan.
type Stats struct {
	Files   int
	Pages   int
	APIs    int
	Layouts int
	Islands int
	Elapsed time.Duration
}

// ScanResult is the engine's sole output, created fresh per scan.
type ScanResult struct {
	// Files are all classified files, sorted by relative path.
	Files []ScannedFile
	// Routes is the route table sorted by match priority: static before
	// dynamic before catch-all, deeper paths first, then by pattern.
	Routes []RouteConfig
	// Diagnostics are the problems encountered, in discovery order.
	Diagnostics []Diagnostic
	// Stats are aggregate counts and timing.
	Stats Stats
}
