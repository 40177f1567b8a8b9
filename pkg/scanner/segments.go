package scanner

import (
	"fmt"
	"regexp"
	"strings"
)

// Route segment pattern matchers
var (
	// [id] - dynamic segment
	dynamicSegmentRe = regexp.MustCompile(`^\[([a-zA-Z_][a-zA-Z0-9_]*)\]$`)

	// [...slug] - catch-all segment
	catchAllSegmentRe = regexp.MustCompile(`^\[\.\.\.([a-zA-Z_][a-zA-Z0-9_]*)\]$`)

	// [[...slug]] - optional catch-all segment
	optionalCatchAllRe = regexp.MustCompile(`^\[\[\.\.\.([a-zA-Z_][a-zA-Z0-9_]*)\]\]$`)

	// (group) - route group (doesn't affect the URL)
	routeGroupRe = regexp.MustCompile(`^\(([a-zA-Z_][a-zA-Z0-9_-]*)\)$`)
)

// shapeMarker replaces parameter names when computing a pattern's shape.
// The kind sigil is preserved so a dynamic segment never collides with a
// catch-all by shape.
const shapeMarker = "param"

// ParseSegment parses one directory name into a Segment.
// Bracket syntax that fails to parse (e.g. "[]", "[...]", "[a") yields
// SegmentInvalid so the route can be rejected with a diagnostic instead of
// silently matching a literal "[a]" path.
func ParseSegment(name string) Segment {
	seg := Segment{Raw: name}

	if matches := optionalCatchAllRe.FindStringSubmatch(name); len(matches) > 1 {
		seg.Name = matches[1]
		seg.Kind = SegmentOptionalCatchAll
		return seg
	}

	if matches := catchAllSegmentRe.FindStringSubmatch(name); len(matches) > 1 {
		seg.Name = matches[1]
		seg.Kind = SegmentCatchAll
		return seg
	}

	if matches := dynamicSegmentRe.FindStringSubmatch(name); len(matches) > 1 {
		seg.Name = matches[1]
		seg.Kind = SegmentDynamic
		return seg
	}

	if matches := routeGroupRe.FindStringSubmatch(name); len(matches) > 1 {
		seg.Name = matches[1]
		seg.Kind = SegmentGroup
		return seg
	}

	// Anything bracket-wrapped that survived to here is malformed.
	if strings.HasPrefix(name, "[") || strings.HasSuffix(name, "]") {
		seg.Name = name
		seg.Kind = SegmentInvalid
		return seg
	}

	if strings.HasPrefix(name, privatePrefix) {
		seg.Name = strings.TrimPrefix(name, privatePrefix)
		seg.Kind = SegmentPrivate
		return seg
	}

	seg.Name = name
	seg.Kind = SegmentStatic
	return seg
}

// ParsePath parses a slash-separated directory path relative to the routes
// root into segments. The root itself ("." or "") has no segments.
func ParsePath(relDir string) []Segment {
	if relDir == "." || relDir == "" {
		return nil
	}

	parts := strings.Split(relDir, "/")
	segments := make([]Segment, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		segments = append(segments, ParseSegment(part))
	}
	return segments
}

// BuildPattern renders segments into a URL pattern. Dynamic segments become
// ":name", catch-alls "*name"; groups are omitted. Empty input is "/".
func BuildPattern(segments []Segment) string {
	return renderPattern(segments, false)
}

// PatternShape renders segments like BuildPattern but erases every parameter
// name to a fixed marker. Two routes sharing a shape are structurally
// ambiguous regardless of how their parameters are named.
func PatternShape(segments []Segment) string {
	return renderPattern(segments, true)
}

func renderPattern(segments []Segment, erased bool) string {
	var parts []string
	for _, seg := range segments {
		name := seg.Name
		if erased {
			name = shapeMarker
		}
		switch seg.Kind {
		case SegmentGroup:
			continue
		case SegmentDynamic:
			parts = append(parts, ":"+name)
		case SegmentCatchAll, SegmentOptionalCatchAll:
			parts = append(parts, "*"+name)
		default:
			parts = append(parts, seg.Raw)
		}
	}

	if len(parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(parts, "/")
}

// ValidateSegments checks structural rules: no invalid parameter syntax, and
// catch-all segments only in final position (groups after a catch-all do not
// count, they contribute nothing to the pattern). A non-nil error describes
// the first violation.
func ValidateSegments(segments []Segment) error {
	lastReal := -1
	for i, seg := range segments {
		if seg.Kind != SegmentGroup {
			lastReal = i
		}
	}

	for i, seg := range segments {
		switch seg.Kind {
		case SegmentInvalid:
			return fmt.Errorf("malformed segment %q", seg.Raw)
		case SegmentCatchAll, SegmentOptionalCatchAll:
			if i != lastReal {
				return fmt.Errorf("catch-all segment %q must be last", seg.Raw)
			}
		}
	}
	return nil
}

// RouteID derives a stable identifier from a root-relative file path.
// "blog/[slug]/page.tsx" -> "blog-slug-page".
func RouteID(relPath string) string {
	id := strings.TrimSuffix(relPath, pathExt(relPath))
	id = strings.NewReplacer(
		"[[...", "",
		"[...", "",
		"[", "",
		"]", "",
		"(", "",
		")", "",
		"/", "-",
		".", "-",
	).Replace(id)
	id = strings.Trim(id, "-")
	if id == "" {
		return "root"
	}
	return id
}

func pathExt(p string) string {
	if i := strings.LastIndex(p, "."); i >= 0 && i > strings.LastIndex(p, "/") {
		return p[i:]
	}
	return ""
}
