package imaging

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
)

func writeTestPhoto(t *testing.T, path string, w, h int) {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 120, G: 120, B: 120, A: 255})
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("failed to write test photo: %v", err)
	}
}

func TestListPhotos(t *testing.T) {
	t.Run("missing directory is empty, not an error", func(t *testing.T) {
		photos, err := ListPhotos(filepath.Join(t.TempDir(), "absent"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(photos) != 0 {
			t.Errorf("got %d photos, want 0", len(photos))
		}
	})

	t.Run("lists supported formats with metadata", func(t *testing.T) {
		dir := t.TempDir()
		writeTestPhoto(t, filepath.Join(dir, "a.png"), 30, 20)
		writeTestPhoto(t, filepath.Join(dir, "b.jpg"), 10, 10)
		os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0644)

		photos, err := ListPhotos(dir)
		if err != nil {
			t.Fatalf("ListPhotos: %v", err)
		}
		if len(photos) != 2 {
			t.Fatalf("got %d photos, want 2", len(photos))
		}
		for _, p := range photos {
			if p.SizeBytes == 0 {
				t.Errorf("%s: missing size", p.Filename)
			}
			if p.Width == 0 || p.Height == 0 {
				t.Errorf("%s: missing dimensions", p.Filename)
			}
		}
	})

	t.Run("sorted newest first", func(t *testing.T) {
		dir := t.TempDir()
		old := filepath.Join(dir, "old.png")
		recent := filepath.Join(dir, "recent.png")
		writeTestPhoto(t, old, 5, 5)
		writeTestPhoto(t, recent, 5, 5)
		past := time.Now().Add(-2 * time.Hour)
		os.Chtimes(old, past, past)

		photos, err := ListPhotos(dir)
		if err != nil {
			t.Fatalf("ListPhotos: %v", err)
		}
		if len(photos) != 2 || photos[0].Filename != "recent.png" {
			t.Errorf("expected recent.png first, got %+v", photos)
		}
	})
}

func TestThumbnail(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.png")
	writeTestPhoto(t, src, 600, 400)

	data, err := Thumbnail(src, 150, 150)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	if len(data) == 0 {
		t.Error("empty thumbnail")
	}

	t.Run("missing file", func(t *testing.T) {
		if _, err := Thumbnail(filepath.Join(dir, "missing.png"), 150, 150); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
