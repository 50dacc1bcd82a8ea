package library

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"drive-gallery/internal/logging"
	"drive-gallery/internal/metrics"

	"github.com/fsnotify/fsnotify"
)

// ImageExtensions maps file extensions to whether the gallery serves
// them. Paths with other extensions never reach the organizer.
var ImageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true,
}

// Invalidator receives paths whose cached renditions are stale.
// *cache.Cache satisfies it.
type Invalidator interface {
	Invalidate(path string)
}

// Scanner lists image files under a gallery directory.
type Scanner struct {
	galleryDir string
	mu         sync.RWMutex
}

// NewScanner creates a Scanner rooted at galleryDir.
func NewScanner(galleryDir string) *Scanner {
	return &Scanner{galleryDir: galleryDir}
}

// GalleryDir returns the root directory being scanned.
func (s *Scanner) GalleryDir() string {
	return s.galleryDir
}

// ListImages walks the gallery tree and returns absolute paths of all
// image files, skipping hidden files and directories. Unreadable
// subtrees are logged and skipped, never fatal.
func (s *Scanner) ListImages() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var paths []string
	status := "success"

	err := filepath.WalkDir(s.galleryDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.Warn("error accessing path %s: %v", path, err)
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if ImageExtensions[strings.ToLower(filepath.Ext(d.Name()))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		status = "error"
		logging.Error("failed to walk gallery directory: %v", err)
	}

	metrics.ScannerOperationsTotal.WithLabelValues("list_images", status).Inc()
	metrics.ScannerFilesFound.WithLabelValues("list_images").Observe(float64(len(paths)))

	return paths
}

// Watch monitors the gallery tree with fsnotify and invalidates cached
// renditions for files that change or disappear. Blocks until the
// watcher fails; run it on its own goroutine.
func (s *Scanner) Watch(inv Invalidator) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logging.Error("failed to create file watcher: %v", err)
		metrics.WatcherErrors.Inc()
		return
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			logging.Error("failed to close file watcher: %v", err)
		}
	}()

	watchCount := s.addDirectories(watcher)
	logging.Debug("gallery watcher started, watching %d directories", watchCount)

	s.processEvents(watcher, inv)
}

// addDirectories registers every directory under the gallery root.
func (s *Scanner) addDirectories(watcher *fsnotify.Watcher) int {
	watchCount := 0
	err := filepath.WalkDir(s.galleryDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && !strings.HasPrefix(d.Name(), ".") {
			if addErr := watcher.Add(path); addErr != nil {
				logging.Warn("failed to watch %s: %v", path, addErr)
				metrics.WatcherErrors.Inc()
			} else {
				watchCount++
			}
		}
		return nil
	})
	if err != nil {
		logging.Error("failed to walk gallery directory for watcher: %v", err)
		metrics.WatcherErrors.Inc()
	}
	return watchCount
}

func (s *Scanner) processEvents(watcher *fsnotify.Watcher, inv Invalidator) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			s.handleEvent(watcher, event, inv)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logging.Error("watcher error: %v", err)
			metrics.WatcherErrors.Inc()
		}
	}
}

func (s *Scanner) handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event, inv Invalidator) {
	// Skip hidden files
	if strings.Contains(event.Name, "/.") {
		return
	}

	metrics.WatcherEventsTotal.WithLabelValues(eventType(event.Op)).Inc()

	// A rewritten, renamed or removed file makes any cached rendition
	// stale; the next request re-decodes from disk.
	if event.Op&(fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 && inv != nil {
		if ImageExtensions[strings.ToLower(filepath.Ext(event.Name))] {
			logging.Debug("invalidating cached renditions for %s", event.Name)
			inv.Invalidate(event.Name)
		}
	}

	// New directories need to be watched too.
	if event.Op&fsnotify.Create != 0 {
		info, err := os.Stat(event.Name)
		if err != nil {
			return
		}
		if info.IsDir() {
			if addErr := watcher.Add(event.Name); addErr != nil {
				logging.Warn("failed to watch new directory %s: %v", event.Name, addErr)
				metrics.WatcherErrors.Inc()
			} else {
				logging.Debug("watching new directory: %s", event.Name)
			}
		}
	}
}

func eventType(op fsnotify.Op) string {
	switch {
	case op&fsnotify.Create != 0:
		return "create"
	case op&fsnotify.Write != 0:
		return "write"
	case op&fsnotify.Remove != 0:
		return "remove"
	case op&fsnotify.Rename != 0:
		return "rename"
	case op&fsnotify.Chmod != 0:
		return "chmod"
	default:
		return "unknown"
	}
}
