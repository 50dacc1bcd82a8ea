package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"drive-gallery/internal/gallery"
	"drive-gallery/internal/logging"
)

const defaultColumns = 4

// GalleryResponse is the paged gallery listing.
type GalleryResponse struct {
	Mode         string                `json:"mode"`
	Page         int                   `json:"page"`
	TotalPages   int                   `json:"totalPages"`
	ItemsPerPage int                   `json:"itemsPerPage"`
	Layout       gallery.PageLayout    `json:"layout"`
	Stats        gallery.Stats         `json:"stats"`
	Items        []gallery.ImageRecord `json:"items"`
}

// GetGallery returns one page of the organized gallery.
//
// Query parameters: mode (full|fast, default fast), page (1-based),
// columns (grid width). Rows per page is fixed service-side.
func (h *Handlers) GetGallery(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	mode := parseMode(r.URL.Query().Get("mode"))
	page := 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		page = p
	}
	columns := defaultColumns
	if c, err := strconv.Atoi(r.URL.Query().Get("columns")); err == nil {
		columns = c
	}

	layout := gallery.PageLayout{Columns: columns, RowsPerPage: h.config.RowsPerPage}
	coll := h.collection(mode)

	// Validate the layout once up front; a structurally invalid layout
	// is the only fatal condition.
	totalPages, err := coll.TotalPages(layout)
	if err != nil {
		if errors.Is(err, gallery.ErrInvalidLayout) {
			writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSONError(w, "failed to page gallery", http.StatusInternalServerError)
		return
	}

	page = clampPage(page, totalPages)
	items, err := coll.Page(page, layout)
	if err != nil {
		writeJSONError(w, "failed to page gallery", http.StatusInternalServerError)
		return
	}

	logging.Debug("gallery page %d/%d (%s) served in %v", page, totalPages, mode, time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, GalleryResponse{
		Mode:         mode,
		Page:         page,
		TotalPages:   totalPages,
		ItemsPerPage: layout.ItemsPerPage(),
		Layout:       layout,
		Stats:        coll.Stats(),
		Items:        items,
	})
}

// GetGalleryStats returns aggregate statistics for the whole gallery.
func (h *Handlers) GetGalleryStats(w http.ResponseWriter, r *http.Request) {
	mode := parseMode(r.URL.Query().Get("mode"))
	coll := h.collection(mode)

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, coll.Stats())
}

// TimelineResponse is one scrubber position: the record at the index
// plus clamped neighbor indices for previous/next navigation.
type TimelineResponse struct {
	Index    int                 `json:"index"`
	Count    int                 `json:"count"`
	Previous int                 `json:"previous"`
	Next     int                 `json:"next"`
	First    time.Time           `json:"first"`
	Last     time.Time           `json:"last"`
	Record   gallery.ImageRecord `json:"record"`
}

// GetTimeline returns the record at a timeline position. The index is
// clamped into range; navigation never wraps around.
func (h *Handlers) GetTimeline(w http.ResponseWriter, r *http.Request) {
	mode := parseMode(r.URL.Query().Get("mode"))
	coll := h.collection(mode)

	if coll.Len() == 0 {
		writeJSONError(w, "gallery is empty", http.StatusNotFound)
		return
	}

	index := 0
	if i, err := strconv.Atoi(r.URL.Query().Get("index")); err == nil {
		index = i
	}
	if index < 0 {
		index = 0
	}
	if index >= coll.Len() {
		index = coll.Len() - 1
	}

	record, ok := coll.At(index)
	if !ok {
		writeJSONError(w, "index out of range", http.StatusNotFound)
		return
	}

	stats := coll.Stats()

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, TimelineResponse{
		Index:    index,
		Count:    coll.Len(),
		Previous: coll.Previous(index),
		Next:     coll.Next(index),
		First:    stats.First,
		Last:     stats.Last,
		Record:   record,
	})
}

func parseMode(mode string) string {
	if mode == "full" {
		return "full"
	}
	return "fast"
}

func clampPage(page, total int) int {
	if total == 0 {
		return 0
	}
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}
