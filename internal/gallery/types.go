package gallery

import "time"

// TimeSource records which strategy produced a record's timestamp.
type TimeSource string

const (
	// SourceFilename means the timestamp was parsed out of the file name.
	SourceFilename TimeSource = "filename"
	// SourceEXIF means the timestamp came from the EXIF DateTime tag.
	SourceEXIF TimeSource = "exif"
	// SourceModTime means the filesystem modification time was used.
	SourceModTime TimeSource = "mtime"
)

// Metadata holds per-file details gathered while organizing. Width,
// Height, Mode and EXIF are only populated by the full pipeline; the
// fast pipeline fills SizeBytes and an extension-derived Format.
type Metadata struct {
	Width     int               `json:"width,omitempty"`
	Height    int               `json:"height,omitempty"`
	Format    string            `json:"format,omitempty"`
	Mode      string            `json:"mode,omitempty"`
	SizeBytes int64             `json:"sizeBytes"`
	EXIF      map[string]string `json:"exif,omitempty"`
}

// ImageRecord is one image file annotated with its resolved timestamp.
// Records are immutable once produced by an organize call.
type ImageRecord struct {
	Path      string     `json:"path"`
	Filename  string     `json:"filename"`
	Timestamp time.Time  `json:"timestamp"`
	Source    TimeSource `json:"timeSource"`
	Meta      Metadata   `json:"metadata"`
}
