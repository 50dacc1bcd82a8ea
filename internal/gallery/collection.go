package gallery

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidLayout is returned when a pagination request carries a
// zero or negative columns or rows-per-page value.
var ErrInvalidLayout = errors.New("invalid page layout")

// Collection is an ordered sequence of image records, sorted ascending
// by timestamp. It is immutable after creation.
type Collection struct {
	records []ImageRecord
}

// Len returns the number of records.
func (c *Collection) Len() int {
	return len(c.records)
}

// Records returns a copy of the ordered record sequence.
func (c *Collection) Records() []ImageRecord {
	out := make([]ImageRecord, len(c.records))
	copy(out, c.records)
	return out
}

// At returns the record at position i, reporting whether i is in range.
func (c *Collection) At(i int) (ImageRecord, bool) {
	if i < 0 || i >= len(c.records) {
		return ImageRecord{}, false
	}
	return c.records[i], true
}

// Next returns the position after i, clamped to the last record.
// There is no wraparound.
func (c *Collection) Next(i int) int {
	if i+1 >= len(c.records) {
		return clampIndex(i, len(c.records))
	}
	return i + 1
}

// Previous returns the position before i, clamped to the first record.
func (c *Collection) Previous(i int) int {
	if i-1 < 0 {
		return 0
	}
	return clampIndex(i-1, len(c.records))
}

func clampIndex(i, n int) int {
	if n == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// PageLayout describes a grid page: a column count chosen by the viewer
// and a fixed rows-per-page multiplier.
type PageLayout struct {
	Columns     int `json:"columns"`
	RowsPerPage int `json:"rowsPerPage"`
}

func (l PageLayout) validate() error {
	if l.Columns <= 0 || l.RowsPerPage <= 0 {
		return fmt.Errorf("%w: columns=%d rowsPerPage=%d", ErrInvalidLayout, l.Columns, l.RowsPerPage)
	}
	return nil
}

// ItemsPerPage returns columns * rows-per-page. Only meaningful for a
// valid layout.
func (l PageLayout) ItemsPerPage() int {
	return l.Columns * l.RowsPerPage
}

// TotalPages returns the page count for this collection under the given
// layout, by ceiling division. An empty collection has zero pages.
func (c *Collection) TotalPages(l PageLayout) (int, error) {
	if err := l.validate(); err != nil {
		return 0, err
	}
	perPage := l.ItemsPerPage()
	return (len(c.records) + perPage - 1) / perPage, nil
}

// Page returns the records for the given 1-based page. Out-of-range page
// numbers are clamped into the valid range, so a page request never
// produces an out-of-range slice. An invalid layout is the one fatal
// configuration error.
func (c *Collection) Page(page int, l PageLayout) ([]ImageRecord, error) {
	total, err := c.TotalPages(l)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, nil
	}

	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}

	perPage := l.ItemsPerPage()
	start := (page - 1) * perPage
	end := start + perPage
	if end > len(c.records) {
		end = len(c.records)
	}

	out := make([]ImageRecord, end-start)
	copy(out, c.records[start:end])
	return out, nil
}

// Stats summarizes a collection: record count, time span between the
// first and last record, and the most frequent time source and format.
type Stats struct {
	Count          int           `json:"count"`
	First          time.Time     `json:"first,omitzero"`
	Last           time.Time     `json:"last,omitzero"`
	Span           time.Duration `json:"span"`
	DominantSource TimeSource    `json:"dominantSource,omitempty"`
	DominantFormat string        `json:"dominantFormat,omitempty"`
}

// Stats computes aggregate statistics over the whole collection. Modal
// values break ties by first encounter in iteration order: a later value
// only wins by strictly exceeding the current best count.
func (c *Collection) Stats() Stats {
	s := Stats{Count: len(c.records)}
	if len(c.records) == 0 {
		return s
	}

	s.First = c.records[0].Timestamp
	s.Last = c.records[len(c.records)-1].Timestamp
	s.Span = s.Last.Sub(s.First)

	sourceCounts := make(map[TimeSource]int)
	formatCounts := make(map[string]int)
	var bestSourceN, bestFormatN int

	for _, r := range c.records {
		sourceCounts[r.Source]++
		if sourceCounts[r.Source] > bestSourceN {
			bestSourceN = sourceCounts[r.Source]
			s.DominantSource = r.Source
		}
		formatCounts[r.Meta.Format]++
		if formatCounts[r.Meta.Format] > bestFormatN {
			bestFormatN = formatCounts[r.Meta.Format]
			s.DominantFormat = r.Meta.Format
		}
	}
	return s
}
