package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/einkhub/renderer/internal/display"
	"github.com/einkhub/renderer/internal/layout"
)

// handleDisplayState handles GET /display - returns the display state
func (h *Handler) handleDisplayState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, h.controller.State())
}

// handleDisplayAdvance handles POST /display/advance - moves rotation or
// slideshow one step forward
func (h *Handler) handleDisplayAdvance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state, err := h.controller.Advance(r.Context())
	if err != nil {
		if errors.Is(err, display.ErrNoPhotos) || errors.Is(err, display.ErrEmptyRotation) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		h.logger.Error("Failed to advance display", zap.Error(err))
		http.Error(w, "Failed to advance display", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, state)
}

// ModeRequest represents the request body for switching display modes
type ModeRequest struct {
	Mode string `json:"mode"`
}

// handleDisplayMode handles POST /display/mode - switches the display mode
func (h *Handler) handleDisplayMode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request ModeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	state, err := h.controller.SetMode(request.Mode)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.logger.Info("Display mode changed", zap.String("mode", request.Mode))
	h.writeJSON(w, state)
}

// handleDisplayPause handles POST /display/pause
func (h *Handler) handleDisplayPause(w http.ResponseWriter, r *http.Request) {
	h.setPaused(w, r, true)
}

// handleDisplayResume handles POST /display/resume
func (h *Handler) handleDisplayResume(w http.ResponseWriter, r *http.Request) {
	h.setPaused(w, r, false)
}

func (h *Handler) setPaused(w http.ResponseWriter, r *http.Request, paused bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state, err := h.controller.SetPaused(paused)
	if err != nil {
		h.logger.Error("Failed to update pause state", zap.Error(err))
		http.Error(w, "Failed to update pause state", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, state)
}

// LayoutRequest represents the request body for showing a layout
type LayoutRequest struct {
	Name string `json:"name"`
}

// handleDisplayLayout handles POST /display/layout - shows a layout now
func (h *Handler) handleDisplayLayout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request LayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if request.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	state, err := h.controller.ShowLayout(r.Context(), request.Name)
	if err != nil {
		if errors.Is(err, layout.ErrUnknownLayout) {
			http.Error(w, "Layout not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Failed to show layout",
			zap.String("layout", request.Name),
			zap.Error(err))
		http.Error(w, "Failed to show layout", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, state)
}

// PhotoRequest represents the request body for showing a photo
type PhotoRequest struct {
	Index int `json:"index"`
}

// handleDisplayPhoto handles POST /display/photo - shows a photo now
func (h *Handler) handleDisplayPhoto(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request PhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	state, err := h.controller.ShowPhoto(r.Context(), request.Index)
	if err != nil {
		if errors.Is(err, display.ErrNoPhotos) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		h.logger.Error("Failed to show photo", zap.Error(err))
		http.Error(w, "Failed to show photo", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, state)
}
