package library

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/fsnotify/fsnotify"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestListImagesFiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.png"))
	touch(t, filepath.Join(dir, "b.jpg"))
	touch(t, filepath.Join(dir, "c.JPEG"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "movie.mp4"))
	touch(t, filepath.Join(dir, "noext"))

	s := NewScanner(dir)
	paths := s.ListImages()

	want := []string{
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "b.jpg"),
		filepath.Join(dir, "c.JPEG"),
	}
	sort.Strings(paths)
	sort.Strings(want)

	if len(paths) != len(want) {
		t.Fatalf("found %d images, want %d: %v", len(paths), len(want), paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestListImagesRecursesAndSkipsHidden(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "albums", "summer", "beach.jpg"))
	touch(t, filepath.Join(dir, ".thumbnails", "beach.jpg"))
	touch(t, filepath.Join(dir, ".hidden.png"))
	touch(t, filepath.Join(dir, "albums", ".DS_Store"))

	s := NewScanner(dir)
	paths := s.ListImages()

	if len(paths) != 1 {
		t.Fatalf("found %d images, want 1: %v", len(paths), paths)
	}
	if paths[0] != filepath.Join(dir, "albums", "summer", "beach.jpg") {
		t.Errorf("found %q, want nested beach.jpg", paths[0])
	}
}

func TestListImagesEmptyDirectory(t *testing.T) {
	s := NewScanner(t.TempDir())
	if paths := s.ListImages(); len(paths) != 0 {
		t.Errorf("empty gallery returned %d paths", len(paths))
	}
}

type recordingInvalidator struct {
	mu    sync.Mutex
	paths []string
}

func (r *recordingInvalidator) Invalidate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recordingInvalidator) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.paths))
	copy(out, r.paths)
	return out
}

func TestHandleEventInvalidatesImages(t *testing.T) {
	dir := t.TempDir()
	s := NewScanner(dir)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatal(err)
	}
	defer watcher.Close()

	inv := &recordingInvalidator{}

	s.handleEvent(watcher, fsnotify.Event{Name: filepath.Join(dir, "a.png"), Op: fsnotify.Write}, inv)
	s.handleEvent(watcher, fsnotify.Event{Name: filepath.Join(dir, "b.jpg"), Op: fsnotify.Remove}, inv)
	s.handleEvent(watcher, fsnotify.Event{Name: filepath.Join(dir, "c.jpeg"), Op: fsnotify.Rename}, inv)

	// Non-image files and non-mutating events stay out of the cache path.
	s.handleEvent(watcher, fsnotify.Event{Name: filepath.Join(dir, "notes.txt"), Op: fsnotify.Write}, inv)
	s.handleEvent(watcher, fsnotify.Event{Name: filepath.Join(dir, "d.png"), Op: fsnotify.Chmod}, inv)
	s.handleEvent(watcher, fsnotify.Event{Name: filepath.Join(dir, ".hidden.png"), Op: fsnotify.Write}, inv)

	got := inv.seen()
	if len(got) != 3 {
		t.Fatalf("invalidated %d paths, want 3: %v", len(got), got)
	}
	for i, base := range []string{"a.png", "b.jpg", "c.jpeg"} {
		if got[i] != filepath.Join(dir, base) {
			t.Errorf("invalidated[%d] = %q, want %q", i, got[i], filepath.Join(dir, base))
		}
	}
}

func TestEventType(t *testing.T) {
	tests := []struct {
		op   fsnotify.Op
		want string
	}{
		{fsnotify.Create, "create"},
		{fsnotify.Write, "write"},
		{fsnotify.Remove, "remove"},
		{fsnotify.Rename, "rename"},
		{fsnotify.Chmod, "chmod"},
		{0, "unknown"},
	}
	for _, tt := range tests {
		if got := eventType(tt.op); got != tt.want {
			t.Errorf("eventType(%v) = %q, want %q", tt.op, got, tt.want)
		}
	}
}
