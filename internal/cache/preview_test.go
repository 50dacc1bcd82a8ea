package cache

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"
	"testing"
)

// countingDecoder fabricates images in memory and records every decode,
// so tests can assert exactly when the cache goes back to the source.
type countingDecoder struct {
	mu      sync.Mutex
	decodes map[string]int
	fail    map[string]bool
}

func newCountingDecoder() *countingDecoder {
	return &countingDecoder{
		decodes: make(map[string]int),
		fail:    make(map[string]bool),
	}
}

func (d *countingDecoder) decode(path string) (image.Image, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.decodes[path]++
	if d.fail[path] {
		return nil, errors.New("simulated decode failure")
	}
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	return img, nil
}

func (d *countingDecoder) count(path string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.decodes[path]
}

func newTestCache(maxEntries int) (*Cache, *countingDecoder) {
	d := newCountingDecoder()
	c := New(Config{MaxEntries: maxEntries})
	c.decode = d.decode
	return c, d
}

func TestCacheHitAvoidsDecode(t *testing.T) {
	c, d := newTestCache(10)

	first, err := c.Thumbnail("/gallery/a.png")
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.Thumbnail("/gallery/a.png")
	if err != nil {
		t.Fatal(err)
	}

	if d.count("/gallery/a.png") != 1 {
		t.Errorf("decoded %d times, want 1", d.count("/gallery/a.png"))
	}
	if first != second {
		t.Error("hit should return the same cached handle")
	}
}

func TestThumbnailAndPreviewAreSeparateEntries(t *testing.T) {
	c, d := newTestCache(10)

	thumb, err := c.Thumbnail("/gallery/a.png")
	if err != nil {
		t.Fatal(err)
	}
	preview, err := c.Preview("/gallery/a.png")
	if err != nil {
		t.Fatal(err)
	}

	// Same path, separate keys: the second kind misses and re-decodes.
	if d.count("/gallery/a.png") != 2 {
		t.Errorf("decoded %d times, want 2", d.count("/gallery/a.png"))
	}
	if c.Len() != 2 {
		t.Errorf("cache holds %d entries, want 2", c.Len())
	}

	tb := thumb.Bounds()
	if tb.Dx() > 200 || tb.Dy() > 200 {
		t.Errorf("thumbnail %dx%d exceeds 200x200", tb.Dx(), tb.Dy())
	}
	pb := preview.Bounds()
	if pb.Dx() > 800 || pb.Dy() > 600 {
		t.Errorf("preview %dx%d exceeds 800x600", pb.Dx(), pb.Dy())
	}
}

func TestRenditionsAreNRGBA(t *testing.T) {
	c, _ := newTestCache(10)
	img, err := c.Thumbnail("/gallery/a.png")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := img.(*image.NRGBA); !ok {
		t.Errorf("rendition type = %T, want *image.NRGBA", img)
	}
}

func TestRenditionPreservesAspectRatio(t *testing.T) {
	c, _ := newTestCache(10)
	// The fabricated source is 640x480 (4:3). Fitting into 200x200 keeps
	// the ratio: 200x150.
	img, err := c.Thumbnail("/gallery/a.png")
	if err != nil {
		t.Fatal(err)
	}
	b := img.Bounds()
	if b.Dx() != 200 || b.Dy() != 150 {
		t.Errorf("thumbnail = %dx%d, want 200x150", b.Dx(), b.Dy())
	}
}

func TestEvictionAtCapacity(t *testing.T) {
	c, d := newTestCache(3)

	for i := 0; i < 3; i++ {
		if _, err := c.Thumbnail(fmt.Sprintf("/gallery/%d.png", i)); err != nil {
			t.Fatal(err)
		}
	}
	if c.Len() != 3 {
		t.Fatalf("cache holds %d entries, want 3", c.Len())
	}

	// A fourth insert evicts the least recently used, /gallery/0.png.
	if _, err := c.Thumbnail("/gallery/3.png"); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 3 {
		t.Errorf("cache holds %d entries after eviction, want 3", c.Len())
	}

	if _, err := c.Thumbnail("/gallery/0.png"); err != nil {
		t.Fatal(err)
	}
	if d.count("/gallery/0.png") != 2 {
		t.Errorf("/gallery/0.png decoded %d times, want 2 (evicted then re-fetched)", d.count("/gallery/0.png"))
	}
	if d.count("/gallery/2.png") != 1 {
		t.Errorf("/gallery/2.png decoded %d times, want 1 (still cached)", d.count("/gallery/2.png"))
	}
}

func TestHitRefreshesRecency(t *testing.T) {
	c, d := newTestCache(3)

	for i := 0; i < 3; i++ {
		if _, err := c.Thumbnail(fmt.Sprintf("/gallery/%d.png", i)); err != nil {
			t.Fatal(err)
		}
	}

	// Touch the oldest entry so it is no longer the eviction candidate.
	if _, err := c.Thumbnail("/gallery/0.png"); err != nil {
		t.Fatal(err)
	}

	// The next insert must evict /gallery/1.png instead.
	if _, err := c.Thumbnail("/gallery/3.png"); err != nil {
		t.Fatal(err)
	}

	if _, err := c.Thumbnail("/gallery/0.png"); err != nil {
		t.Fatal(err)
	}
	if d.count("/gallery/0.png") != 1 {
		t.Errorf("/gallery/0.png decoded %d times, want 1 (recency refreshed)", d.count("/gallery/0.png"))
	}
	if _, err := c.Thumbnail("/gallery/1.png"); err != nil {
		t.Fatal(err)
	}
	if d.count("/gallery/1.png") != 2 {
		t.Errorf("/gallery/1.png decoded %d times, want 2 (was evicted)", d.count("/gallery/1.png"))
	}
}

func TestDecodeFailureNotCached(t *testing.T) {
	c, d := newTestCache(10)
	d.fail["/gallery/broken.png"] = true

	if _, err := c.Thumbnail("/gallery/broken.png"); err == nil {
		t.Fatal("expected decode error")
	} else if !strings.Contains(err.Error(), "/gallery/broken.png") {
		t.Errorf("error %q should name the failing path", err)
	}
	if c.Len() != 0 {
		t.Errorf("failure cached: %d entries, want 0", c.Len())
	}

	// Once the underlying condition clears, the next request succeeds.
	d.fail["/gallery/broken.png"] = false
	if _, err := c.Thumbnail("/gallery/broken.png"); err != nil {
		t.Fatalf("retry after recovery failed: %v", err)
	}
	if d.count("/gallery/broken.png") != 2 {
		t.Errorf("decoded %d times, want 2 (failure then retry)", d.count("/gallery/broken.png"))
	}
}

func TestInvalidateDropsBothKinds(t *testing.T) {
	c, d := newTestCache(10)

	if _, err := c.Thumbnail("/gallery/a.png"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Preview("/gallery/a.png"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Thumbnail("/gallery/b.png"); err != nil {
		t.Fatal(err)
	}

	c.Invalidate("/gallery/a.png")
	if c.Len() != 1 {
		t.Errorf("cache holds %d entries after invalidate, want 1", c.Len())
	}

	if _, err := c.Thumbnail("/gallery/a.png"); err != nil {
		t.Fatal(err)
	}
	if d.count("/gallery/a.png") != 3 {
		t.Errorf("/gallery/a.png decoded %d times, want 3", d.count("/gallery/a.png"))
	}
	if d.count("/gallery/b.png") != 1 {
		t.Errorf("/gallery/b.png decoded %d times, want 1 (untouched)", d.count("/gallery/b.png"))
	}
}

func TestConcurrentAccess(t *testing.T) {
	c, _ := newTestCache(5)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				path := fmt.Sprintf("/gallery/%d.png", (n+j)%10)
				if _, err := c.Thumbnail(path); err != nil {
					t.Errorf("concurrent fetch: %v", err)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	if c.Len() > 5 {
		t.Errorf("cache grew to %d entries, budget is 5", c.Len())
	}
}

func TestNewFillsDefaults(t *testing.T) {
	c := New(Config{})
	if c.cfg.MaxEntries != 100 {
		t.Errorf("MaxEntries = %d, want 100", c.cfg.MaxEntries)
	}
	if c.cfg.ThumbnailWidth != 200 || c.cfg.ThumbnailHeight != 200 {
		t.Errorf("thumbnail box = %dx%d, want 200x200", c.cfg.ThumbnailWidth, c.cfg.ThumbnailHeight)
	}
	if c.cfg.PreviewWidth != 800 || c.cfg.PreviewHeight != 600 {
		t.Errorf("preview box = %dx%d, want 800x600", c.cfg.PreviewWidth, c.cfg.PreviewHeight)
	}
}
