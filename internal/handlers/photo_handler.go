package handlers

import (
	"net/http"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/einkhub/renderer/internal/imaging"
)

// handlePhotos handles GET /photos - lists the available photos
func (h *Handler) handlePhotos(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	photos, err := imaging.ListPhotos(h.photosDir)
	if err != nil {
		h.logger.Error("Failed to list photos", zap.Error(err))
		http.Error(w, "Failed to list photos", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, map[string]interface{}{
		"photos": photos,
		"count":  len(photos),
	})
}

// handlePhotoThumbnail handles GET /photos/thumbnail/{filename} - returns
// a JPEG thumbnail of the named photo
func (h *Handler) handlePhotoThumbnail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filename := strings.TrimPrefix(r.URL.Path, "/photos/thumbnail/")
	if filename == "" {
		http.Error(w, "Filename required", http.StatusBadRequest)
		return
	}
	// Reject anything that could escape the photos directory.
	if filename != path.Base(filename) {
		http.Error(w, "Invalid filename", http.StatusBadRequest)
		return
	}

	data, err := imaging.Thumbnail(path.Join(h.photosDir, filename), 200, 200)
	if err != nil {
		h.logger.Debug("Failed to build thumbnail",
			zap.String("filename", filename),
			zap.Error(err))
		http.Error(w, "Photo not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	if _, err := w.Write(data); err != nil {
		h.logger.Error("Failed to write thumbnail response", zap.Error(err))
	}
}
