package commands

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := loadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("missing brasa.yaml must not error: %v", err)
	}
	if cfg.RoutesDir != "" || len(cfg.Extensions) != 0 {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	content := `routesDir: src/pages
extensions:
  - .tsx
  - .mdx
exclude:
  - "drafts/**"
islandSuffix: .client
`
	if err := os.WriteFile(filepath.Join(dir, "brasa.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.RoutesDir != "src/pages" {
		t.Errorf("RoutesDir = %q", cfg.RoutesDir)
	}
	if want := []string{".tsx", ".mdx"}; !reflect.DeepEqual(cfg.Extensions, want) {
		t.Errorf("Extensions = %v, want %v", cfg.Extensions, want)
	}
	if want := []string{"drafts/**"}; !reflect.DeepEqual(cfg.Exclude, want) {
		t.Errorf("Exclude = %v, want %v", cfg.Exclude, want)
	}
	if cfg.IslandSuffix != ".client" {
		t.Errorf("IslandSuffix = %q", cfg.IslandSuffix)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "brasa.yaml"), []byte(":\t["), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := loadConfig(dir); err == nil {
		t.Error("expected error for malformed brasa.yaml")
	}
}
