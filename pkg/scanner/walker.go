package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// collectFiles enumerates and classifies every eligible file under the
// routes root. Private folders and excluded paths are pruned before
// classification, so they never surface in files or diagnostics. The
// returned slice is sorted by relative path; directory enumeration order is
// not stable across platforms and the sort is what makes the whole scan
// deterministic.
func (s *Scanner) collectFiles(result *ScanResult) []ScannedFile {
	rootDir := filepath.Join(s.root, s.cfg.RoutesDir)

	info, err := os.Stat(rootDir)
	if os.IsNotExist(err) {
		// An app with no routes directory is valid.
		return nil
	}
	if err != nil {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Kind:    DiagFileReadError,
			Message: fmt.Sprintf("cannot stat routes root: %v", err),
			File:    s.cfg.RoutesDir,
		})
		return nil
	}
	if !info.IsDir() {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Kind:    DiagFileReadError,
			Message: fmt.Sprintf("routes root %q is not a directory", s.cfg.RoutesDir),
			File:    s.cfg.RoutesDir,
		})
		return nil
	}

	var files []ScannedFile
	_ = filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		rel := relSlash(rootDir, path)

		if err != nil {
			// Unreadable branch: record it and keep scanning elsewhere.
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Kind:    DiagFileReadError,
				Message: err.Error(),
				File:    rel,
			})
			return nil
		}

		if d.IsDir() {
			if path == rootDir {
				return nil
			}
			if IsPrivateDir(d.Name()) {
				return filepath.SkipDir
			}
			if s.cfg.excluded(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.cfg.hasExtension(d.Name()) {
			return nil
		}
		if s.cfg.excluded(rel, false) {
			return nil
		}

		role := ClassifyFile(d.Name(), s.cfg.IslandSuffix)
		if role == RoleIgnored {
			return nil
		}

		dir := filepath.ToSlash(filepath.Dir(rel))
		files = append(files, ScannedFile{
			Path:     path,
			RelPath:  rel,
			Role:     role,
			Segments: ParsePath(dir),
			Ext:      pathExt(d.Name()),
		})
		return nil
	})

	sort.Slice(files, func(i, j int) bool {
		return files[i].RelPath < files[j].RelPath
	})
	return files
}

// relSlash is path relative to root, slash-separated. Falls back to the
// input path when it does not sit under root.
func relSlash(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// dirOf returns the slash-separated directory of a relative path, "" for
// files sitting directly in the routes root.
func dirOf(relPath string) string {
	dir := filepath.ToSlash(filepath.Dir(relPath))
	if dir == "." {
		return ""
	}
	return dir
}

// parentOf strips the last path component, "" once the root is reached.
func parentOf(dir string) string {
	if i := strings.LastIndex(dir, "/"); i >= 0 {
		return dir[:i]
	}
	return ""
}
