package gallery

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func testCollection(n int) *Collection {
	records := make([]ImageRecord, n)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
	for i := range records {
		records[i] = ImageRecord{
			Path:      fmt.Sprintf("/gallery/img_%03d.png", i),
			Filename:  fmt.Sprintf("img_%03d.png", i),
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Source:    SourceModTime,
			Meta:      Metadata{Format: "PNG"},
		}
	}
	return &Collection{records: records}
}

func TestCollectionAt(t *testing.T) {
	c := testCollection(3)

	if _, ok := c.At(-1); ok {
		t.Error("At(-1) should report out of range")
	}
	if _, ok := c.At(3); ok {
		t.Error("At(3) should report out of range")
	}
	rec, ok := c.At(1)
	if !ok {
		t.Fatal("At(1) should be in range")
	}
	if rec.Filename != "img_001.png" {
		t.Errorf("At(1) = %q, want img_001.png", rec.Filename)
	}
}

func TestNavigationClamping(t *testing.T) {
	c := testCollection(3)

	tests := []struct {
		name string
		got  int
		want int
	}{
		{"next from middle", c.Next(1), 2},
		{"next from last stays", c.Next(2), 2},
		{"next beyond last clamps", c.Next(10), 2},
		{"previous from middle", c.Previous(1), 0},
		{"previous from first stays", c.Previous(0), 0},
		{"previous below zero clamps", c.Previous(-5), 0},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}

func TestNavigationEmptyCollection(t *testing.T) {
	c := &Collection{}
	if got := c.Next(0); got != 0 {
		t.Errorf("Next on empty = %d, want 0", got)
	}
	if got := c.Previous(0); got != 0 {
		t.Errorf("Previous on empty = %d, want 0", got)
	}
}

func TestTotalPages(t *testing.T) {
	layout := PageLayout{Columns: 4, RowsPerPage: 3}

	tests := []struct {
		count int
		want  int
	}{
		{0, 0},
		{1, 1},
		{12, 1},
		{13, 2},
		{24, 2},
		{25, 3},
	}
	for _, tt := range tests {
		c := testCollection(tt.count)
		got, err := c.TotalPages(layout)
		if err != nil {
			t.Fatalf("TotalPages(%d items): %v", tt.count, err)
		}
		if got != tt.want {
			t.Errorf("TotalPages(%d items) = %d, want %d", tt.count, got, tt.want)
		}
	}
}

func TestInvalidLayout(t *testing.T) {
	c := testCollection(5)
	layouts := []PageLayout{
		{Columns: 0, RowsPerPage: 3},
		{Columns: 4, RowsPerPage: 0},
		{Columns: -1, RowsPerPage: 3},
		{Columns: 4, RowsPerPage: -2},
	}
	for _, l := range layouts {
		if _, err := c.TotalPages(l); !errors.Is(err, ErrInvalidLayout) {
			t.Errorf("TotalPages(%+v) error = %v, want ErrInvalidLayout", l, err)
		}
		if _, err := c.Page(1, l); !errors.Is(err, ErrInvalidLayout) {
			t.Errorf("Page(1, %+v) error = %v, want ErrInvalidLayout", l, err)
		}
	}
}

func TestPageClamping(t *testing.T) {
	c := testCollection(10)
	layout := PageLayout{Columns: 2, RowsPerPage: 2}

	// 10 items, 4 per page, 3 pages. Last page holds 2 items.
	last, err := c.Page(3, layout)
	if err != nil {
		t.Fatal(err)
	}
	if len(last) != 2 {
		t.Errorf("last page has %d items, want 2", len(last))
	}

	beyond, err := c.Page(99, layout)
	if err != nil {
		t.Fatal(err)
	}
	if len(beyond) != 2 || beyond[0].Filename != last[0].Filename {
		t.Error("page beyond range should clamp to the last page")
	}

	first, err := c.Page(0, layout)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 4 || first[0].Filename != "img_000.png" {
		t.Error("page below range should clamp to the first page")
	}
}

func TestSinglePageHoldsPartialCollection(t *testing.T) {
	c := testCollection(10)
	layout := PageLayout{Columns: 4, RowsPerPage: 3}

	if layout.ItemsPerPage() != 12 {
		t.Fatalf("itemsPerPage = %d, want 12", layout.ItemsPerPage())
	}
	total, err := c.TotalPages(layout)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 {
		t.Fatalf("totalPages = %d, want 1", total)
	}

	page, err := c.Page(1, layout)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 10 {
		t.Fatalf("page holds %d items, want all 10", len(page))
	}
	for i, rec := range page {
		if rec.Filename != fmt.Sprintf("img_%03d.png", i) {
			t.Errorf("page[%d] = %q, out of order", i, rec.Filename)
		}
	}
}

func TestPageEmptyCollection(t *testing.T) {
	c := &Collection{}
	page, err := c.Page(1, PageLayout{Columns: 4, RowsPerPage: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 0 {
		t.Errorf("page of empty collection has %d items", len(page))
	}
}

func TestStatsEmpty(t *testing.T) {
	c := &Collection{}
	s := c.Stats()
	if s.Count != 0 || s.Span != 0 || s.DominantSource != "" || s.DominantFormat != "" {
		t.Errorf("empty stats = %+v, want zero values", s)
	}
}

func TestStatsSpanAndModes(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	c := &Collection{records: []ImageRecord{
		{Timestamp: base, Source: SourceEXIF, Meta: Metadata{Format: "JPEG"}},
		{Timestamp: base.Add(time.Hour), Source: SourceFilename, Meta: Metadata{Format: "PNG"}},
		{Timestamp: base.Add(2 * time.Hour), Source: SourceFilename, Meta: Metadata{Format: "JPEG"}},
	}}

	s := c.Stats()
	if s.Count != 3 {
		t.Errorf("Count = %d, want 3", s.Count)
	}
	if s.Span != 2*time.Hour {
		t.Errorf("Span = %v, want 2h", s.Span)
	}
	if s.DominantSource != SourceFilename {
		t.Errorf("DominantSource = %q, want %q", s.DominantSource, SourceFilename)
	}
	if s.DominantFormat != "JPEG" {
		t.Errorf("DominantFormat = %q, want JPEG", s.DominantFormat)
	}
}

func TestStatsTieBreakFirstEncountered(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	c := &Collection{records: []ImageRecord{
		{Timestamp: base, Source: SourceEXIF, Meta: Metadata{Format: "PNG"}},
		{Timestamp: base.Add(time.Minute), Source: SourceModTime, Meta: Metadata{Format: "JPEG"}},
	}}

	s := c.Stats()
	if s.DominantSource != SourceEXIF {
		t.Errorf("tied DominantSource = %q, want first-encountered %q", s.DominantSource, SourceEXIF)
	}
	if s.DominantFormat != "PNG" {
		t.Errorf("tied DominantFormat = %q, want first-encountered PNG", s.DominantFormat)
	}
}

func TestRecordsReturnsCopy(t *testing.T) {
	c := testCollection(2)
	records := c.Records()
	records[0].Filename = "mutated.png"
	if got, _ := c.At(0); got.Filename == "mutated.png" {
		t.Error("Records should return a copy, not the backing slice")
	}
}
