package gallery

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"drive-gallery/internal/logging"
	"drive-gallery/internal/metrics"
	"drive-gallery/internal/timestamp"
	"drive-gallery/internal/workers"

	// Image format decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp" // WebP format support
)

// Config tunes the organizer's full pipeline.
type Config struct {
	// NumWorkers is the number of parallel decode workers (0 = auto
	// based on CPU, capped for I/O-bound work).
	NumWorkers int
	// ChannelBuffer is the size of the work channel buffer.
	ChannelBuffer int
}

// DefaultConfig returns sensible defaults based on available resources.
func DefaultConfig() Config {
	return Config{
		NumWorkers:    workers.ForIO(8),
		ChannelBuffer: 256,
	}
}

// Organizer resolves timestamps for image files and produces ordered
// collections. It holds no mutable state between calls; concurrent
// organize calls are independent.
type Organizer struct {
	cfg Config
}

// New creates an Organizer with the given configuration, filling in
// defaults for zero values.
func New(cfg Config) *Organizer {
	def := DefaultConfig()
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = def.NumWorkers
	}
	if cfg.ChannelBuffer <= 0 {
		cfg.ChannelBuffer = def.ChannelBuffer
	}
	return &Organizer{cfg: cfg}
}

// Organize runs the full pipeline: every path is stat'd, decoded for
// geometry, and probed for EXIF data before timestamps are resolved.
// Missing paths and undecodable images are dropped, never reported as
// errors; one stale reference must not make a whole gallery unusable.
// The result is sorted ascending by timestamp, ties keeping input order.
func (o *Organizer) Organize(paths []string) *Collection {
	start := time.Now()

	records := o.processParallel(paths)
	sortByTimestamp(records)

	metrics.OrganizeRunsTotal.WithLabelValues("full").Inc()
	metrics.OrganizeDuration.WithLabelValues("full").Observe(time.Since(start).Seconds())
	metrics.OrganizeFilesProcessed.WithLabelValues("full").Add(float64(len(records)))

	logging.Debug("organized %d/%d files (full) in %v", len(records), len(paths), time.Since(start))
	return &Collection{records: records}
}

// OrganizeFast runs the fast pipeline: no decoding, no EXIF. Timestamps
// come from the file name or mtime only, and metadata is limited to byte
// size and an extension-derived format. Output ordering rules are the
// same as Organize.
func (o *Organizer) OrganizeFast(paths []string) *Collection {
	start := time.Now()

	records := make([]ImageRecord, 0, len(paths))
	for _, path := range paths {
		rec, ok := processFast(path)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	sortByTimestamp(records)

	metrics.OrganizeRunsTotal.WithLabelValues("fast").Inc()
	metrics.OrganizeDuration.WithLabelValues("fast").Observe(time.Since(start).Seconds())
	metrics.OrganizeFilesProcessed.WithLabelValues("fast").Add(float64(len(records)))

	logging.Debug("organized %d/%d files (fast) in %v", len(records), len(paths), time.Since(start))
	return &Collection{records: records}
}

// sortByTimestamp sorts ascending by timestamp. The sort must be stable:
// records with equal timestamps keep their input order.
func sortByTimestamp(records []ImageRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
}

// processFull builds a record for one path in the full pipeline. The
// returned reason is non-empty when the path was skipped.
func processFull(path string) (ImageRecord, string) {
	info, err := os.Stat(path)
	if err != nil {
		logging.Debug("skipping %s: %v", path, err)
		return ImageRecord{}, "missing"
	}

	dims, format, err := decodeGeometry(path)
	if err != nil {
		logging.Debug("skipping %s: undecodable: %v", path, err)
		return ImageRecord{}, "undecodable"
	}

	ex := readExif(path)
	filename := filepath.Base(path)
	ts, source := chooseTimestamp(filename, ex.dateTime, ex.hasDateTime, info.ModTime())

	return ImageRecord{
		Path:      path,
		Filename:  filename,
		Timestamp: ts,
		Source:    source,
		Meta: Metadata{
			Width:     dims.width,
			Height:    dims.height,
			Format:    strings.ToUpper(format),
			Mode:      dims.mode,
			SizeBytes: info.Size(),
			EXIF:      ex.tags,
		},
	}, ""
}

// processFast builds a record for one path without opening the image.
func processFast(path string) (ImageRecord, bool) {
	info, err := os.Stat(path)
	if err != nil {
		logging.Debug("skipping %s: %v", path, err)
		metrics.OrganizeFilesSkipped.WithLabelValues("fast", "missing").Inc()
		return ImageRecord{}, false
	}

	filename := filepath.Base(path)
	ts, source := chooseTimestamp(filename, time.Time{}, false, info.ModTime())

	return ImageRecord{
		Path:      path,
		Filename:  filename,
		Timestamp: ts,
		Source:    source,
		Meta: Metadata{
			Format:    strings.ToUpper(strings.TrimPrefix(filepath.Ext(filename), ".")),
			SizeBytes: info.Size(),
		},
	}, true
}

// chooseTimestamp applies the source priority: filename > EXIF > mtime.
// The mtime fallback is always available, so every record gets a
// timestamp.
func chooseTimestamp(filename string, exifTime time.Time, hasExif bool, mtime time.Time) (time.Time, TimeSource) {
	if t, ok := timestamp.Resolve(filename); ok {
		metrics.TimeSourceSelectedTotal.WithLabelValues(string(SourceFilename)).Inc()
		return t, SourceFilename
	}
	if hasExif {
		metrics.TimeSourceSelectedTotal.WithLabelValues(string(SourceEXIF)).Inc()
		return exifTime, SourceEXIF
	}
	metrics.TimeSourceSelectedTotal.WithLabelValues(string(SourceModTime)).Inc()
	return mtime, SourceModTime
}

// geometry holds what DecodeConfig exposes without a full pixel decode.
type geometry struct {
	width  int
	height int
	mode   string
}

// decodeGeometry reads image dimensions and color mode from the header
// only, the cheap path the full pipeline uses instead of decoding pixels.
func decodeGeometry(path string) (geometry, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return geometry{}, "", err
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.Warn("failed to close image file %s: %v", path, err)
		}
	}()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return geometry{}, "", err
	}

	return geometry{
		width:  cfg.Width,
		height: cfg.Height,
		mode:   colorModeName(cfg.ColorModel),
	}, format, nil
}

func colorModeName(m color.Model) string {
	switch m {
	case color.RGBAModel:
		return "rgba"
	case color.RGBA64Model:
		return "rgba64"
	case color.NRGBAModel:
		return "nrgba"
	case color.NRGBA64Model:
		return "nrgba64"
	case color.GrayModel:
		return "gray"
	case color.Gray16Model:
		return "gray16"
	case color.CMYKModel:
		return "cmyk"
	case color.YCbCrModel:
		return "ycbcr"
	case color.NYCbCrAModel:
		return "nycbcra"
	case color.AlphaModel:
		return "alpha"
	case color.Alpha16Model:
		return "alpha16"
	}
	if _, ok := m.(color.Palette); ok {
		return "paletted"
	}
	return "unknown"
}
