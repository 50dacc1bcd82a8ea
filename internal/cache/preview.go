package cache

import (
	"fmt"
	"image"
	"sync"

	"drive-gallery/internal/logging"
	"drive-gallery/internal/metrics"

	// Image format decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // WebP format support
)

// Kind namespaces cache keys so thumbnails and previews for the same
// path never collide.
type Kind string

const (
	// KindThumbnail is the small grid-cell rendition.
	KindThumbnail Kind = "thumbnail"
	// KindPreview is the capped-resolution single-image rendition.
	KindPreview Kind = "preview"
)

// Config sizes the cache and its renditions.
type Config struct {
	// MaxEntries is the shared entry budget across both kinds.
	MaxEntries int
	// ThumbnailWidth and ThumbnailHeight bound thumbnail renditions.
	ThumbnailWidth  int
	ThumbnailHeight int
	// PreviewWidth and PreviewHeight bound preview renditions.
	PreviewWidth  int
	PreviewHeight int
}

// DefaultConfig returns the deployment defaults: 100 entries, 200x200
// thumbnails, 800x600 previews.
func DefaultConfig() Config {
	return Config{
		MaxEntries:      100,
		ThumbnailWidth:  200,
		ThumbnailHeight: 200,
		PreviewWidth:    800,
		PreviewHeight:   600,
	}
}

// entry is one cached rendition. access is a monotonic recency counter
// bumped under the cache lock on insert and on every hit; the entry with
// the lowest counter is the least recently used.
type entry struct {
	img    *image.NRGBA
	access uint64
}

// Cache is a bounded LRU store of decoded image renditions. Construct
// one per process and inject it wherever renditions are served; the
// zero value is not usable.
type Cache struct {
	mu      sync.Mutex
	cfg     Config
	entries map[string]*entry
	clock   uint64

	// decode loads and orients the source image. Swappable so tests can
	// count decode operations.
	decode func(path string) (image.Image, error)
}

// New creates a Cache, filling zero config values from DefaultConfig.
func New(cfg Config) *Cache {
	def := DefaultConfig()
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = def.MaxEntries
	}
	if cfg.ThumbnailWidth <= 0 || cfg.ThumbnailHeight <= 0 {
		cfg.ThumbnailWidth = def.ThumbnailWidth
		cfg.ThumbnailHeight = def.ThumbnailHeight
	}
	if cfg.PreviewWidth <= 0 || cfg.PreviewHeight <= 0 {
		cfg.PreviewWidth = def.PreviewWidth
		cfg.PreviewHeight = def.PreviewHeight
	}
	return &Cache{
		cfg:     cfg,
		entries: make(map[string]*entry),
		decode: func(path string) (image.Image, error) {
			return imaging.Open(path, imaging.AutoOrientation(true))
		},
	}
}

// Thumbnail returns the thumbnail rendition for path, decoding and
// resizing on a miss. The returned image is a shared read-only handle;
// callers must not modify it.
func (c *Cache) Thumbnail(path string) (image.Image, error) {
	return c.get(KindThumbnail, path, c.cfg.ThumbnailWidth, c.cfg.ThumbnailHeight)
}

// Preview returns the capped-resolution preview rendition for path,
// decoding and resizing on a miss.
func (c *Cache) Preview(path string) (image.Image, error) {
	return c.get(KindPreview, path, c.cfg.PreviewWidth, c.cfg.PreviewHeight)
}

// get runs the whole check/decode/insert/evict sequence under one lock,
// so at most one decode happens per key under concurrent access and LRU
// bookkeeping is atomic with eviction.
func (c *Cache) get(kind Kind, path string, width, height int) (image.Image, error) {
	key := string(kind) + ":" + path

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.clock++
		e.access = c.clock
		metrics.CacheRequestsTotal.WithLabelValues(string(kind), "hit").Inc()
		return e.img, nil
	}

	src, err := c.decode(path)
	if err != nil {
		// Decode failures are returned, never cached: a later call may
		// succeed if the underlying condition changed.
		metrics.CacheRequestsTotal.WithLabelValues(string(kind), "error").Inc()
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	// Fit preserves aspect ratio within the bounding box and always
	// produces NRGBA, so presentation code never sees indexed, greyscale
	// or alpha source formats.
	img := imaging.Fit(src, width, height, imaging.Lanczos)

	c.evictIfFull()
	c.clock++
	c.entries[key] = &entry{img: img, access: c.clock}
	metrics.CacheRequestsTotal.WithLabelValues(string(kind), "miss").Inc()
	metrics.CacheEntries.Set(float64(len(c.entries)))

	logging.Debug("cached %s rendition of %s (%d entries)", kind, path, len(c.entries))
	return img, nil
}

// evictIfFull removes the least-recently-used entry when inserting would
// exceed the budget. Caller must hold the lock.
func (c *Cache) evictIfFull() {
	if len(c.entries) < c.cfg.MaxEntries {
		return
	}

	var oldestKey string
	var oldest uint64
	first := true
	for key, e := range c.entries {
		if first || e.access < oldest {
			oldestKey = key
			oldest = e.access
			first = false
		}
	}
	delete(c.entries, oldestKey)
	metrics.CacheEvictionsTotal.Inc()
	logging.Debug("evicted cache entry %s", oldestKey)
}

// Invalidate drops both renditions for path, if present. Used when the
// underlying file changes or disappears.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, kind := range []Kind{KindThumbnail, KindPreview} {
		delete(c.entries, string(kind)+":"+path)
	}
	metrics.CacheEntries.Set(float64(len(c.entries)))
}

// Len returns the current number of cached entries across both kinds.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
