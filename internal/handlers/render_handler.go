package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/einkhub/renderer/internal/layout"
)

// handleLayouts handles GET /layouts - returns the available layout names
func (h *Handler) handleLayouts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, map[string]interface{}{
		"layouts":  h.layouts.Names(),
		"rotation": h.layouts.RotationSequence(),
	})
}

// handleWidgets handles GET /widgets - returns the registered widget types
func (h *Handler) handleWidgets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, map[string]interface{}{
		"widgets": h.registry.Types(),
	})
}

// handleRender handles POST /render/{name} - renders a layout to the
// output directory and records it as the current frame
func (h *Handler) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/render/")
	if name == "" {
		http.Error(w, "Layout name required", http.StatusBadRequest)
		return
	}

	state, err := h.controller.ShowLayout(r.Context(), name)
	if err != nil {
		if errors.Is(err, layout.ErrUnknownLayout) {
			http.Error(w, "Layout not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Failed to render layout",
			zap.String("layout", name),
			zap.Error(err))
		http.Error(w, "Failed to render layout", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, map[string]interface{}{
		"layout": name,
		"path":   state.CurrentImage,
	})
}

// handlePreview handles GET /preview/{name} - renders a layout and
// returns the PNG without writing it to disk
func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/preview/")
	if name == "" {
		http.Error(w, "Layout name required", http.StatusBadRequest)
		return
	}

	snaps, err := h.snapshots.All(r.Context())
	if err != nil {
		h.logger.Error("Failed to load snapshots", zap.Error(err))
		http.Error(w, "Failed to load snapshots", http.StatusInternalServerError)
		return
	}

	data, err := h.renderer.RenderPreview(name, snaps)
	if err != nil {
		if errors.Is(err, layout.ErrUnknownLayout) {
			http.Error(w, "Layout not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Failed to render preview",
			zap.String("layout", name),
			zap.Error(err))
		http.Error(w, "Failed to render preview", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(data); err != nil {
		h.logger.Error("Failed to write preview response", zap.Error(err))
	}
}
