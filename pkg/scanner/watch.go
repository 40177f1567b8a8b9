package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces editor save bursts into one rescan.
const watchDebounce = 100 * time.Millisecond

// Watcher re-runs a full scan whenever the routes tree changes. Each rescan
// starts from the current directory state; nothing is carried over between
// invocations.
type Watcher struct {
	scanner *Scanner
	fsw     *fsnotify.Watcher
	done    chan struct{}
}

// Watch starts watching the routes directory and delivers every fresh
// ScanResult to onScan, including one initial scan before any change.
// onScan is always called from a single goroutine.
func (s *Scanner) Watch(onScan func(*ScanResult)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{scanner: s, fsw: fsw, done: make(chan struct{})}
	w.addDirs(filepath.Join(s.root, s.cfg.RoutesDir))

	go w.loop(onScan)
	return w, nil
}

// Close stops the watcher. No onScan call happens after Close returns.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	<-w.done
	return err
}

// addDirs registers dir and every non-private subdirectory.
func (w *Watcher) addDirs(dir string) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && IsPrivateDir(d.Name()) {
			return filepath.SkipDir
		}
		_ = w.fsw.Add(path)
		return nil
	})
}

func (w *Watcher) loop(onScan func(*ScanResult)) {
	defer close(w.done)

	scan := func() {
		if result, err := w.scanner.Scan(); err == nil {
			onScan(result)
		}
	}
	scan()

	var debounce *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				if debounce != nil {
					debounce.Stop()
				}
				return
			}
			if !w.relevant(event) {
				continue
			}
			// A created directory needs its own watch before files
			// appear inside it.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					w.addDirs(event.Name)
				}
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case <-pending:
			scan()

		case _, ok := <-w.fsw.Errors:
			if !ok {
				if debounce != nil {
					debounce.Stop()
				}
				return
			}
		}
	}
}

// relevant filters events down to configured route files and directory
// level changes.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	base := filepath.Base(event.Name)
	if IsPrivateDir(base) {
		return false
	}
	if w.scanner.cfg.hasExtension(base) {
		return true
	}
	// Directory events carry no extension; a remove can no longer be
	// stat'ed, so let those through and rescan.
	info, err := os.Stat(event.Name)
	return err != nil || info.IsDir()
}
