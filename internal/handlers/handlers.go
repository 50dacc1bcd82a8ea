package handlers

import (
	"sync"
	"time"

	"drive-gallery/internal/cache"
	"drive-gallery/internal/gallery"
	"drive-gallery/internal/library"
	"drive-gallery/internal/logging"
	"drive-gallery/internal/startup"
)

// Handlers holds the service dependencies shared by all HTTP handlers.
type Handlers struct {
	scanner   *library.Scanner
	organizer *gallery.Organizer
	cache     *cache.Cache
	config    *startup.Config
	startTime time.Time

	// Organize results are memoized per mode so a burst of page
	// requests does not re-walk and re-decode the whole gallery.
	mu   sync.Mutex
	memo map[string]memoEntry
}

type memoEntry struct {
	collection *gallery.Collection
	expires    time.Time
}

// New creates the handler set.
func New(scanner *library.Scanner, organizer *gallery.Organizer, c *cache.Cache, config *startup.Config) *Handlers {
	return &Handlers{
		scanner:   scanner,
		organizer: organizer,
		cache:     c,
		config:    config,
		startTime: time.Now(),
		memo:      make(map[string]memoEntry),
	}
}

// collection returns the organized collection for mode ("full" or
// "fast"), recomputing when the memoized result has expired.
func (h *Handlers) collection(mode string) *gallery.Collection {
	h.mu.Lock()
	defer h.mu.Unlock()

	if e, ok := h.memo[mode]; ok && time.Now().Before(e.expires) {
		return e.collection
	}

	paths := h.scanner.ListImages()

	var coll *gallery.Collection
	if mode == "full" {
		coll = h.organizer.Organize(paths)
	} else {
		coll = h.organizer.OrganizeFast(paths)
	}

	h.memo[mode] = memoEntry{
		collection: coll,
		expires:    time.Now().Add(h.config.OrganizeTTL),
	}
	logging.Debug("organized gallery (%s): %d records", mode, coll.Len())
	return coll
}
