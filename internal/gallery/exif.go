package gallery

import (
	"os"
	"strings"
	"time"

	"drive-gallery/internal/logging"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// exifDateTimeLayout is the fixed textual format EXIF uses for DateTime.
const exifDateTimeLayout = "2006:01:02 15:04:05"

// exifInfo is what the full pipeline extracts from an image's EXIF block.
// Only DateTime is interpreted; every other tag is carried opaquely as a
// name to string-value mapping for display.
type exifInfo struct {
	dateTime    time.Time
	hasDateTime bool
	tags        map[string]string
}

// readExif reads EXIF data from the file at path. Failures of any kind
// (unreadable file, no EXIF block, malformed tags) yield an empty result;
// EXIF is strictly a best-effort timestamp source.
func readExif(path string) exifInfo {
	var out exifInfo

	f, err := os.Open(path)
	if err != nil {
		return out
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.Warn("failed to close %s after EXIF read: %v", path, err)
		}
	}()

	x, err := exif.Decode(f)
	if err != nil {
		logging.Debug("no EXIF data in %s: %v", path, err)
		return out
	}

	out.tags = make(map[string]string)
	if err := x.Walk(tagCollector{out.tags}); err != nil {
		logging.Debug("EXIF walk failed for %s: %v", path, err)
	}

	tag, err := x.Get(exif.DateTime)
	if err != nil {
		return out
	}
	s, err := tag.StringVal()
	if err != nil {
		return out
	}
	if t, ok := parseExifDateTime(s); ok {
		out.dateTime = t
		out.hasDateTime = true
	}
	return out
}

// tagCollector accumulates every EXIF tag as an opaque string value.
type tagCollector struct {
	tags map[string]string
}

func (c tagCollector) Walk(name exif.FieldName, tag *tiff.Tag) error {
	c.tags[string(name)] = strings.Trim(tag.String(), `"`)
	return nil
}

// parseExifDateTime parses the EXIF DateTime textual format. EXIF carries
// no timezone, so the value is interpreted as local time.
func parseExifDateTime(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(exifDateTimeLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
