package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/toyz/sumgen/internal/utils"
)

// debounceDelay batches editor save bursts into a single regeneration
const debounceDelay = 250 * time.Millisecond

// Watcher keeps the generator resident, rerunning it whenever a declaration
// file under the configured roots changes
type Watcher struct {
	generator *Generator
	scanner   *DirectoryScanner
	config    Config

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	watched map[string]bool
}

// NewWatcher creates a watcher around an existing generator
func NewWatcher(generator *Generator, config Config) *Watcher {
	return &Watcher{
		generator: generator,
		scanner:   NewDirectoryScanner(),
		config:    config,
		watched:   make(map[string]bool),
	}
}

// Run generates once up front, then blocks regenerating on changes until the
// context is canceled. A failing declaration keeps the watcher alive so the
// next save can fix it.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()
	w.watcher = watcher

	w.regenerate()

	if err := w.addWatchTargets(); err != nil {
		return err
	}

	if d := w.generator.diagnostics; d != nil {
		d.Info("Watching %d directories for declaration changes", len(w.watched))
		d.Info("Press Ctrl+C to stop")
	} else {
		fmt.Printf("Watching %d directories for declaration changes\n", len(w.watched))
		fmt.Printf("Press Ctrl+C to stop\n")
	}

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			if d := w.generator.diagnostics; d != nil {
				d.Info("Watch mode stopped")
			} else {
				fmt.Printf("\nWatch mode stopped\n")
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					w.watchNewDirectory(event.Name, info)
					continue
				}
			}

			if !w.isDeclEvent(event) {
				continue
			}

			if debounce != nil {
				debounce.Stop()
			}
			changed := event.Name
			debounce = time.AfterFunc(debounceDelay, func() {
				w.onChange(changed)
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if d := w.generator.diagnostics; d != nil {
				d.Warn("Watch error: %v", err)
			} else {
				fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
			}
		}
	}
}

// isDeclEvent reports whether an event concerns a declaration source file.
// Events for generated output are dropped here, so the watcher never chases
// its own writes.
func (w *Watcher) isDeclEvent(event fsnotify.Event) bool {
	relevant := event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Remove == fsnotify.Remove ||
		event.Op&fsnotify.Rename == fsnotify.Rename
	if !relevant {
		return false
	}

	return utils.IsDeclName(filepath.Base(event.Name), w.config.Extensions, w.config.OutputSuffix)
}

// onChange reruns generation after the debounce window closes
func (w *Watcher) onChange(path string) {
	if d := w.generator.diagnostics; d != nil {
		d.Info("Change detected: %s", path)
	} else {
		fmt.Printf("Change detected: %s\n", path)
	}

	w.regenerate()

	// The change may have brought new directories into scan range
	if err := w.addWatchTargets(); err != nil {
		if d := w.generator.diagnostics; d != nil {
			d.Debug("Re-scan after change failed: %v", err)
		}
	}
}

// regenerate reruns generation, reporting failures without exiting
func (w *Watcher) regenerate() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.generator.Run(w.config); err != nil {
		w.generator.reporter.ReportError(err)
		return
	}

	if d := w.generator.diagnostics; d != nil {
		d.GenerationComplete()
	} else {
		fmt.Printf("Generation complete\n")
	}
}

// addWatchTargets watches every directory the scan visits, plus the base of
// each configured root so files created in a currently-empty root are seen
func (w *Watcher) addWatchTargets() error {
	dirs, err := w.scanner.ScanDirectories(&w.config)
	if err != nil {
		return err
	}

	for _, root := range w.config.Roots {
		base := strings.TrimSuffix(root, "/...")
		if base == "" {
			base = "."
		}
		abs, err := filepath.Abs(base)
		if err != nil {
			continue
		}
		dirs = append(dirs, abs)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, dir := range dirs {
		if w.watched[dir] {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			// Gone between scan and add; picked up again next cycle
			continue
		}
		w.watched[dir] = true
	}

	return nil
}

// watchNewDirectory starts watching a directory created while resident,
// unless the scan exclusions would skip it
func (w *Watcher) watchNewDirectory(path string, info os.FileInfo) {
	filter := utils.DefaultDirectoryFilter(w.config.Exclude...)
	if !filter(path, fs.FileInfoToDirEntry(info)) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watched[path] {
		return
	}
	if err := w.watcher.Add(path); err != nil {
		return
	}
	w.watched[path] = true
}
