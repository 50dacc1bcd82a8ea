package handlers

import (
	"bytes"
	"image"
	"image/jpeg"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"drive-gallery/internal/logging"

	"github.com/gorilla/mux"
)

// jpegQuality is what cached renditions are encoded with on the way out.
const jpegQuality = 80

// GetThumbnail serves the cached thumbnail rendition of a gallery image.
func (h *Handlers) GetThumbnail(w http.ResponseWriter, r *http.Request) {
	h.serveRendition(w, r, h.cache.Thumbnail)
}

// GetPreview serves the cached capped-resolution preview rendition.
func (h *Handlers) GetPreview(w http.ResponseWriter, r *http.Request) {
	h.serveRendition(w, r, h.cache.Preview)
}

func (h *Handlers) serveRendition(w http.ResponseWriter, r *http.Request, fetch func(string) (image.Image, error)) {
	relPath := mux.Vars(r)["path"]
	if relPath == "" {
		writeJSONError(w, "path is required", http.StatusBadRequest)
		return
	}

	fullPath, ok := h.resolveGalleryPath(relPath)
	if !ok {
		writeJSONError(w, "invalid path", http.StatusBadRequest)
		return
	}

	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			writeJSONError(w, "file not found", http.StatusNotFound)
		} else {
			writeJSONError(w, "failed to access file", http.StatusInternalServerError)
		}
		return
	}

	img, err := fetch(fullPath)
	if err != nil {
		// Decode failures are surfaced, never papered over with a
		// placeholder; that call is the client's to make.
		logging.Warn("rendition failed for %s: %v", fullPath, err)
		writeJSONError(w, "failed to decode image", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		logging.Error("failed to encode rendition of %s: %v", fullPath, err)
		writeJSONError(w, "failed to encode image", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := w.Write(buf.Bytes()); err != nil {
		logging.Debug("failed to write rendition response: %v", err)
	}
}

// GetImage serves the original file bytes.
func (h *Handlers) GetImage(w http.ResponseWriter, r *http.Request) {
	relPath := mux.Vars(r)["path"]

	fullPath, ok := h.resolveGalleryPath(relPath)
	if !ok {
		writeJSONError(w, "invalid path", http.StatusBadRequest)
		return
	}

	http.ServeFile(w, r, fullPath)
}

// resolveGalleryPath joins a request path against the gallery root and
// rejects anything that escapes it.
func (h *Handlers) resolveGalleryPath(relPath string) (string, bool) {
	fullPath := filepath.Join(h.scanner.GalleryDir(), relPath)

	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", false
	}
	absGalleryDir, err := filepath.Abs(h.scanner.GalleryDir())
	if err != nil {
		return "", false
	}
	if absPath != absGalleryDir && !strings.HasPrefix(absPath, absGalleryDir+string(filepath.Separator)) {
		return "", false
	}
	return absPath, true
}
