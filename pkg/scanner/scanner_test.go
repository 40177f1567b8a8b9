package scanner

import (
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func mustScan(t *testing.T, root string, cfg Config) *ScanResult {
	t.Helper()
	result, err := Scan(root, cfg)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	return result
}

func patterns(routes []RouteConfig) []string {
	out := make([]string, len(routes))
	for i, r := range routes {
		out[i] = r.Pattern
	}
	return out
}

func diagnosticKinds(diags []Diagnostic) []DiagnosticKind {
	out := make([]DiagnosticKind, len(diags))
	for i, d := range diags {
		out[i] = d.Kind
	}
	return out
}

func TestScanMissingRootIsValid(t *testing.T) {
	result := mustScan(t, t.TempDir(), Config{})

	if len(result.Files) != 0 || len(result.Routes) != 0 {
		t.Errorf("expected empty result, got %d files, %d routes", len(result.Files), len(result.Routes))
	}
	if len(result.Diagnostics) != 0 {
		t.Errorf("missing routes dir must not produce diagnostics, got %v", result.Diagnostics)
	}
}

func TestScanRootNotADirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "routes", "not a directory")

	result := mustScan(t, root, Config{})

	if len(result.Routes) != 0 {
		t.Errorf("expected empty table, got %d routes", len(result.Routes))
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Kind != DiagFileReadError {
		t.Errorf("expected a single file-read-error, got %v", result.Diagnostics)
	}
}

func TestScanUnreadableDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	root := t.TempDir()
	writeFile(t, root, "routes/about/page.tsx", "export default () => null;\n")
	writeFile(t, root, "routes/locked/page.tsx", "export default () => null;\n")

	locked := filepath.Join(root, "routes", "locked")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	result := mustScan(t, root, Config{})

	if got := diagnosticKinds(result.Diagnostics); !reflect.DeepEqual(got, []DiagnosticKind{DiagFileReadError}) {
		t.Fatalf("diagnostics = %v, want exactly one file-read-error", result.Diagnostics)
	}
	if result.Diagnostics[0].File != "locked" {
		t.Errorf("diagnostic file = %q, want locked", result.Diagnostics[0].File)
	}
	// The unreadable branch is skipped, siblings still resolve.
	if got := patterns(result.Routes); !reflect.DeepEqual(got, []string{"/about"}) {
		t.Errorf("patterns = %v, want only /about", got)
	}
}

func TestScanBasicTable(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "routes/page.tsx", "export default () => <h1>Home</h1>;\n")
	writeFile(t, root, "routes/about/page.tsx", "export default () => <h1>About</h1>;\n")
	writeFile(t, root, "routes/users/[id]/page.tsx", "export default () => null;\n")
	writeFile(t, root, "routes/api/users/route.ts",
		"export async function GET() {}\nexport async function POST() {}\n")

	result := mustScan(t, root, Config{})

	want := []string{"/api/users", "/about", "/", "/users/:id"}
	if got := patterns(result.Routes); !reflect.DeepEqual(got, want) {
		t.Errorf("patterns = %v, want %v", got, want)
	}

	byPattern := make(map[string]RouteConfig)
	for _, r := range result.Routes {
		byPattern[r.Pattern] = r
	}

	api := byPattern["/api/users"]
	if api.Kind != KindAPI {
		t.Errorf("api route kind = %v, want KindAPI", api.Kind)
	}
	if want := []string{"GET", "POST"}; !reflect.DeepEqual(api.Methods, want) {
		t.Errorf("api methods = %v, want %v", api.Methods, want)
	}

	page := byPattern["/users/:id"]
	if page.Kind != KindPage {
		t.Errorf("page route kind = %v, want KindPage", page.Kind)
	}
	if page.ComponentModule != "users/[id]/page.tsx" {
		t.Errorf("component module = %q", page.ComponentModule)
	}
	if page.ID != "users-id-page" {
		t.Errorf("route id = %q, want users-id-page", page.ID)
	}
	if len(result.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", result.Diagnostics)
	}
}

func TestScanRouteIDUniqueness(t *testing.T) {
	root := t.TempDir()
	// Both paths reduce to "a-b-page"; the routes are distinct.
	writeFile(t, root, "routes/a-b/page.tsx", "export default () => null;\n")
	writeFile(t, root, "routes/a/b/page.tsx", "export default () => null;\n")

	result := mustScan(t, root, Config{})

	if len(result.Routes) != 2 || len(result.Diagnostics) != 0 {
		t.Fatalf("routes = %v, diagnostics = %v, want two clean routes",
			patterns(result.Routes), result.Diagnostics)
	}

	byPattern := make(map[string]RouteConfig)
	for _, r := range result.Routes {
		byPattern[r.Pattern] = r
	}

	// The earlier file path keeps the plain id, the collision is suffixed.
	if got := byPattern["/a-b"].ID; got != "a-b-page" {
		t.Errorf("/a-b id = %q, want a-b-page", got)
	}
	if got := byPattern["/a/b"].ID; got != "a-b-page-2" {
		t.Errorf("/a/b id = %q, want a-b-page-2", got)
	}
	if a, b := byPattern["/a-b"].Module, byPattern["/a/b"].Module; a == b {
		t.Errorf("module refs collide: %q", a)
	}
}

func TestScanDeterminism(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "routes/page.tsx", "export default () => null;\n")
	writeFile(t, root, "routes/blog/[slug]/page.tsx", "export default () => null;\n")
	writeFile(t, root, "routes/blog/archive/page.tsx", "export default () => null;\n")
	writeFile(t, root, "routes/docs/[...path]/page.tsx", "export default () => null;\n")
	writeFile(t, root, "routes/layout.tsx", "export default ({ children }) => children;\n")
	writeFile(t, root, "routes/api/posts/route.ts", "export function GET() {}\n")

	first := mustScan(t, root, Config{})
	second := mustScan(t, root, Config{})

	first.Stats.Elapsed, second.Stats.Elapsed = 0, 0
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two scans of an unchanged tree differ:\n%v\n%v", first, second)
	}
}

func TestScanPriorityOrdering(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "routes/posts/new/page.tsx", "export default () => null;\n")
	writeFile(t, root, "routes/posts/[id]/page.tsx", "export default () => null;\n")
	writeFile(t, root, "routes/posts/page.tsx", "export default () => null;\n")
	writeFile(t, root, "routes/[...rest]/page.tsx", "export default () => null;\n")

	result := mustScan(t, root, Config{})

	want := []string{"/posts/new", "/posts", "/posts/:id", "/*rest"}
	if got := patterns(result.Routes); !reflect.DeepEqual(got, want) {
		t.Errorf("patterns = %v, want %v", got, want)
	}
}

func TestScanDuplicateRoute(t *testing.T) {
	root := t.TempDir()
	// Both compile to the identical pattern /posts/:slug.
	writeFile(t, root, "routes/(blog)/posts/[slug]/page.tsx", "export default () => null;\n")
	writeFile(t, root, "routes/posts/[slug]/page.tsx", "export default () => null;\n")

	result := mustScan(t, root, Config{})

	if got := diagnosticKinds(result.Diagnostics); !reflect.DeepEqual(got, []DiagnosticKind{DiagDuplicateRoute}) {
		t.Fatalf("diagnostics = %v, want exactly one duplicate-route", result.Diagnostics)
	}
	if len(result.Routes) != 1 {
		t.Fatalf("routes = %d, want 1", len(result.Routes))
	}
	// The lexicographically smaller path wins.
	if result.Routes[0].FilePath != "(blog)/posts/[slug]/page.tsx" {
		t.Errorf("kept route = %q", result.Routes[0].FilePath)
	}
	if result.Diagnostics[0].Other != "(blog)/posts/[slug]/page.tsx" {
		t.Errorf("diagnostic owner = %q", result.Diagnostics[0].Other)
	}
}

func TestScanPatternConflict(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "routes/users/[id]/page.tsx", "export default () => null;\n")
	writeFile(t, root, "routes/users/[uid]/page.tsx", "export default () => null;\n")

	result := mustScan(t, root, Config{})

	if got := diagnosticKinds(result.Diagnostics); !reflect.DeepEqual(got, []DiagnosticKind{DiagPatternConflict}) {
		t.Fatalf("diagnostics = %v, want exactly one pattern-conflict", result.Diagnostics)
	}
	if len(result.Routes) != 1 || result.Routes[0].Pattern != "/users/:id" {
		t.Errorf("kept routes = %v, want only /users/:id", patterns(result.Routes))
	}
}

func TestScanPrivateFolderExclusion(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "routes/page.tsx", "export default () => null;\n")
	writeFile(t, root, "routes/_internal/report/page.tsx", "export default () => null;\n")
	writeFile(t, root, "routes/_internal/layout.tsx", "export default ({ children }) => children;\n")

	result := mustScan(t, root, Config{})

	if len(result.Files) != 1 || result.Files[0].RelPath != "page.tsx" {
		t.Errorf("files = %v, want only page.tsx", result.Files)
	}
	if len(result.Routes) != 1 || result.Routes[0].Pattern != "/" {
		t.Errorf("routes = %v, want only /", patterns(result.Routes))
	}
	if len(result.Diagnostics) != 0 {
		t.Errorf("private subtree must not generate diagnostics, got %v", result.Diagnostics)
	}
}

func TestScanExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "routes/page.tsx", "export default () => null;\n")
	writeFile(t, root, "routes/drafts/secret/page.tsx", "export default () => null;\n")
	writeFile(t, root, "routes/about/page.skip.tsx", "export default () => null;\n")
	writeFile(t, root, "routes/about/page.tsx", "export default () => null;\n")

	result := mustScan(t, root, Config{
		Exclude: []string{"drafts/**", "**/*.skip.tsx"},
	})

	want := []string{"/about", "/"}
	if got := patterns(result.Routes); !reflect.DeepEqual(got, want) {
		t.Errorf("patterns = %v, want %v", got, want)
	}
}

func TestScanInvalidExcludePattern(t *testing.T) {
	if _, err := Scan(t.TempDir(), Config{Exclude: []string{"["}}); err == nil {
		t.Error("expected error for invalid exclude pattern")
	}
}

func TestScanInvalidSegment(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "routes/docs/[...slug]/extra/page.tsx", "export default () => null;\n")
	writeFile(t, root, "routes/page.tsx", "export default () => null;\n")

	result := mustScan(t, root, Config{})

	if got := diagnosticKinds(result.Diagnostics); !reflect.DeepEqual(got, []DiagnosticKind{DiagInvalidSegment}) {
		t.Fatalf("diagnostics = %v, want exactly one invalid-segment", result.Diagnostics)
	}
	if len(result.Routes) != 1 || result.Routes[0].Pattern != "/" {
		t.Errorf("routes = %v, want only /", patterns(result.Routes))
	}
}

func TestScanAncestors(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "routes/layout.tsx", "export default ({ children }) => children;\n")
	writeFile(t, root, "routes/error.tsx", "export default () => <p>boom</p>;\n")
	writeFile(t, root, "routes/blog/layout.tsx", "export default ({ children }) => children;\n")
	writeFile(t, root, "routes/blog/loading.tsx", "export default () => <p>loading</p>;\n")
	writeFile(t, root, "routes/blog/[slug]/page.tsx", "export default () => null;\n")
	writeFile(t, root, "routes/about/page.tsx", "export default () => null;\n")

	result := mustScan(t, root, Config{})

	byPattern := make(map[string]RouteConfig)
	for _, r := range result.Routes {
		byPattern[r.Pattern] = r
	}

	blog := byPattern["/blog/:slug"]
	if want := []string{"layout.tsx", "blog/layout.tsx"}; !reflect.DeepEqual(blog.Layouts, want) {
		t.Errorf("blog layout chain = %v, want %v", blog.Layouts, want)
	}
	if blog.LoadingModule != "blog/loading.tsx" {
		t.Errorf("blog loading module = %q", blog.LoadingModule)
	}
	if blog.ErrorModule != "error.tsx" {
		t.Errorf("blog error module = %q", blog.ErrorModule)
	}

	about := byPattern["/about"]
	if want := []string{"layout.tsx"}; !reflect.DeepEqual(about.Layouts, want) {
		t.Errorf("about layout chain = %v, want %v", about.Layouts, want)
	}
	if about.LoadingModule != "" {
		t.Errorf("about loading module = %q, want empty", about.LoadingModule)
	}
}

func TestScanHydrationBinding(t *testing.T) {
	root := t.TempDir()
	// Island sibling wins regardless of page content.
	writeFile(t, root, "routes/shop/cart.island.tsx", "export default function Cart() {}\n")
	writeFile(t, root, "routes/shop/page.tsx", "'use client';\nexport default () => <div />;\n")
	// Directive makes the page its own client module.
	writeFile(t, root, "routes/dash/page.tsx", "'use client';\nexport default () => <div />;\n")
	// Neither: fully static.
	writeFile(t, root, "routes/about/page.tsx", "export default () => <div />;\n")

	result := mustScan(t, root, Config{})

	byPattern := make(map[string]RouteConfig)
	for _, r := range result.Routes {
		byPattern[r.Pattern] = r
	}

	if got := byPattern["/shop"].ClientModule; got != "shop/cart.island.tsx" {
		t.Errorf("shop client module = %q, want the island", got)
	}
	if got := byPattern["/dash"].ClientModule; got != "dash/page.tsx" {
		t.Errorf("dash client module = %q, want the page itself", got)
	}
	if got := byPattern["/about"].ClientModule; got != "" {
		t.Errorf("about client module = %q, want empty", got)
	}
	if len(result.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", result.Diagnostics)
	}
}

func TestScanHydrationMismatchRisk(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "routes/shop/cart.island.tsx", "export default function Cart() {}\n")
	writeFile(t, root, "routes/shop/page.tsx",
		"import Cart from './cart.island';\n"+
			"export default () => <div>{Cart && null}</div>;\n")

	result := mustScan(t, root, Config{})

	if got := diagnosticKinds(result.Diagnostics); !reflect.DeepEqual(got, []DiagnosticKind{DiagHydrationMismatchRisk}) {
		t.Fatalf("diagnostics = %v, want exactly one hydration-shell-mismatch-risk", result.Diagnostics)
	}
	// The route is flagged but still built.
	if len(result.Routes) != 1 || result.Routes[0].ClientModule != "shop/cart.island.tsx" {
		t.Errorf("flagged route must still be in the table: %v", result.Routes)
	}
}

func TestScanAPIWithoutExportedHandlers(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "routes/api/webhook/route.ts", "// registered dynamically\n")

	result := mustScan(t, root, Config{})

	if len(result.Routes) != 1 {
		t.Fatalf("routes = %d, want 1", len(result.Routes))
	}
	if got := result.Routes[0].Methods; !reflect.DeepEqual(got, allMethods) {
		t.Errorf("methods = %v, want all methods", got)
	}
}

func TestScanStats(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "routes/page.tsx", "export default () => null;\n")
	writeFile(t, root, "routes/layout.tsx", "export default ({ children }) => children;\n")
	writeFile(t, root, "routes/shop/cart.island.tsx", "export default function Cart() {}\n")
	writeFile(t, root, "routes/shop/page.tsx", "export default () => null;\n")
	writeFile(t, root, "routes/api/ping/route.ts", "export function GET() {}\n")

	result := mustScan(t, root, Config{})

	want := Stats{Files: 5, Pages: 2, APIs: 1, Layouts: 1, Islands: 1, Elapsed: result.Stats.Elapsed}
	if result.Stats != want {
		t.Errorf("stats = %+v, want %+v", result.Stats, want)
	}
	if result.Stats.Elapsed <= 0 {
		t.Error("elapsed not recorded")
	}
}

func TestScanCustomConfig(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/pages/page.mdx", "export default () => null;\n")
	writeFile(t, root, "src/pages/widget.client.mdx", "export default function Widget() {}\n")

	result := mustScan(t, root, Config{
		RoutesDir:    "src/pages",
		Extensions:   []string{".mdx"},
		IslandSuffix: ".client",
	})

	if len(result.Routes) != 1 || result.Routes[0].Pattern != "/" {
		t.Fatalf("routes = %v, want only /", patterns(result.Routes))
	}
	if got := result.Routes[0].ClientModule; got != "widget.client.mdx" {
		t.Errorf("client module = %q, want widget.client.mdx", got)
	}
}
