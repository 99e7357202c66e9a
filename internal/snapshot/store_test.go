package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/einkhub/renderer/pkg/models"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	t.Run("get missing provider", func(t *testing.T) {
		_, ok, err := store.Get(ctx, "weather")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if ok {
			t.Error("missing provider reported as present")
		}
	})

	t.Run("put and get", func(t *testing.T) {
		snap := models.ProviderSnapshot{
			Provider:   "weather",
			FetchedAt:  time.Now().UTC(),
			TTLSeconds: 900,
			Payload:    map[string]any{"current_temp": 68.0},
		}
		if err := store.Put(ctx, snap); err != nil {
			t.Fatalf("Put: %v", err)
		}

		got, ok, err := store.Get(ctx, "weather")
		if err != nil || !ok {
			t.Fatalf("Get = %v, %v", ok, err)
		}
		if got.Payload["current_temp"] != 68.0 {
			t.Errorf("payload = %v", got.Payload)
		}
	})

	t.Run("put replaces", func(t *testing.T) {
		snap := models.ProviderSnapshot{
			Provider: "weather",
			Payload:  map[string]any{"current_temp": 70.0},
		}
		if err := store.Put(ctx, snap); err != nil {
			t.Fatalf("Put: %v", err)
		}
		got, _, _ := store.Get(ctx, "weather")
		if got.Payload["current_temp"] != 70.0 {
			t.Errorf("payload not replaced: %v", got.Payload)
		}
	})

	t.Run("all", func(t *testing.T) {
		if err := store.Put(ctx, models.ProviderSnapshot{Provider: "calendar"}); err != nil {
			t.Fatalf("Put: %v", err)
		}
		all, err := store.All(ctx)
		if err != nil {
			t.Fatalf("All: %v", err)
		}
		if len(all) != 2 {
			t.Errorf("All = %d snapshots, want 2", len(all))
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := store.Delete(ctx, "calendar"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, ok, _ := store.Get(ctx, "calendar"); ok {
			t.Error("snapshot survived delete")
		}
		// Deleting again is a no-op.
		if err := store.Delete(ctx, "calendar"); err != nil {
			t.Errorf("second Delete: %v", err)
		}
	})
}

func TestMemoryStore_AllReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Put(ctx, models.ProviderSnapshot{Provider: "tasks"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	all, _ := store.All(ctx)
	delete(all, "tasks")

	if _, ok, _ := store.Get(ctx, "tasks"); !ok {
		t.Error("mutating All result affected the store")
	}
}
