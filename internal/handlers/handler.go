// Package handlers exposes the rendering service over HTTP.
package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/einkhub/renderer/internal/display"
	"github.com/einkhub/renderer/internal/layout"
	"github.com/einkhub/renderer/internal/render"
	"github.com/einkhub/renderer/internal/snapshot"
	"github.com/einkhub/renderer/internal/widget"
)

// Handler handles HTTP requests for the rendering service
type Handler struct {
	controller *display.Controller
	renderer   *render.Renderer
	layouts    *layout.Store
	registry   *widget.Registry
	snapshots  snapshot.Store
	photosDir  string
	logger     *zap.Logger
}

// NewHandler creates a new handler
func NewHandler(controller *display.Controller, renderer *render.Renderer, layouts *layout.Store, registry *widget.Registry, snapshots snapshot.Store, photosDir string, logger *zap.Logger) *Handler {
	return &Handler{
		controller: controller,
		renderer:   renderer,
		layouts:    layouts,
		registry:   registry,
		snapshots:  snapshots,
		photosDir:  photosDir,
		logger:     logger,
	}
}

// RegisterRoutes registers all service routes
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/layouts", h.handleLayouts)
	mux.HandleFunc("/widgets", h.handleWidgets)
	mux.HandleFunc("/render/", h.handleRender)
	mux.HandleFunc("/preview/", h.handlePreview)
	mux.HandleFunc("/display", h.handleDisplayState)
	mux.HandleFunc("/display/advance", h.handleDisplayAdvance)
	mux.HandleFunc("/display/mode", h.handleDisplayMode)
	mux.HandleFunc("/display/pause", h.handleDisplayPause)
	mux.HandleFunc("/display/resume", h.handleDisplayResume)
	mux.HandleFunc("/display/layout", h.handleDisplayLayout)
	mux.HandleFunc("/display/photo", h.handleDisplayPhoto)
	mux.HandleFunc("/snapshots", h.handleSnapshots)
	mux.HandleFunc("/snapshots/", h.handleSnapshotDetails)
	mux.HandleFunc("/photos", h.handlePhotos)
	mux.HandleFunc("/photos/thumbnail/", h.handlePhotoThumbnail)
}

// handleHealth handles GET /health - returns service health status
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"service": "einkhub-renderer",
	})
}

// writeJSON encodes v as the JSON response body
func (h *Handler) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
