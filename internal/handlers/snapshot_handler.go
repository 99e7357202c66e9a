package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/einkhub/renderer/pkg/models"
)

// SnapshotRequest represents the body pushed by a data provider
type SnapshotRequest struct {
	Payload    map[string]interface{} `json:"payload"`
	TTLSeconds int                    `json:"ttl_seconds"`
	Error      string                 `json:"error,omitempty"`
	FetchedAt  *time.Time             `json:"fetched_at,omitempty"`
}

// handleSnapshots handles GET /snapshots - summarizes stored snapshots
func (h *Handler) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	all, err := h.snapshots.All(r.Context())
	if err != nil {
		h.logger.Error("Failed to list snapshots", zap.Error(err))
		http.Error(w, "Failed to list snapshots", http.StatusInternalServerError)
		return
	}

	now := time.Now().UTC()
	summaries := make(map[string]interface{}, len(all))
	for provider, snap := range all {
		summaries[provider] = map[string]interface{}{
			"fetched_at":  snap.FetchedAt,
			"age_seconds": int(snap.Age(now).Seconds()),
			"ttl_seconds": snap.TTLSeconds,
			"expired":     snap.Expired(now),
			"error":       snap.Error,
		}
	}
	h.writeJSON(w, summaries)
}

// handleSnapshotDetails handles:
// - GET /snapshots/{provider} - returns the stored snapshot
// - PUT/POST /snapshots/{provider} - stores a new snapshot
// - DELETE /snapshots/{provider} - removes the snapshot
func (h *Handler) handleSnapshotDetails(w http.ResponseWriter, r *http.Request) {
	provider := strings.TrimPrefix(r.URL.Path, "/snapshots/")
	if provider == "" {
		http.Error(w, "Provider name required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		snap, ok, err := h.snapshots.Get(r.Context(), provider)
		if err != nil {
			h.logger.Error("Failed to get snapshot",
				zap.String("provider", provider),
				zap.Error(err))
			http.Error(w, "Failed to get snapshot", http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Error(w, "Snapshot not found", http.StatusNotFound)
			return
		}
		h.writeJSON(w, snap)

	case http.MethodPost, http.MethodPut:
		var request SnapshotRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}

		fetchedAt := time.Now().UTC()
		if request.FetchedAt != nil {
			fetchedAt = request.FetchedAt.UTC()
		}
		snap := models.ProviderSnapshot{
			Provider:   provider,
			FetchedAt:  fetchedAt,
			TTLSeconds: request.TTLSeconds,
			Payload:    request.Payload,
			Error:      request.Error,
		}

		if err := h.snapshots.Put(r.Context(), snap); err != nil {
			h.logger.Error("Failed to store snapshot",
				zap.String("provider", provider),
				zap.Error(err))
			http.Error(w, "Failed to store snapshot", http.StatusInternalServerError)
			return
		}

		h.logger.Debug("Stored snapshot",
			zap.String("provider", provider),
			zap.Int("ttl_seconds", request.TTLSeconds))
		h.writeJSON(w, map[string]interface{}{"status": "stored", "provider": provider})

	case http.MethodDelete:
		if err := h.snapshots.Delete(r.Context(), provider); err != nil {
			h.logger.Error("Failed to delete snapshot",
				zap.String("provider", provider),
				zap.Error(err))
			http.Error(w, "Failed to delete snapshot", http.StatusInternalServerError)
			return
		}
		h.writeJSON(w, map[string]interface{}{"status": "deleted", "provider": provider})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
