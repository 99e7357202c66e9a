package render

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/einkhub/renderer/internal/layout"
	"github.com/einkhub/renderer/internal/widget"
	"github.com/einkhub/renderer/pkg/models"
)

// panicky renders fine at construction but blows up when drawn.
type panicky struct{}

func (panicky) RequiredProvider() string { return "" }
func (panicky) Render(*widget.Canvas, image.Rectangle, map[string]any) error {
	panic("intentional test panic")
}

// failing returns a render error without panicking.
type failing struct{}

func (failing) RequiredProvider() string { return "" }
func (failing) Render(*widget.Canvas, image.Rectangle, map[string]any) error {
	return errors.New("intentional test failure")
}

func testRegistry() *widget.Registry {
	r := widget.Builtins()
	r.Register("panics", func(widget.Options) (widget.Widget, error) { return panicky{}, nil })
	r.Register("fails", func(widget.Options) (widget.Widget, error) { return failing{}, nil })
	return r
}

func loadStore(t *testing.T, registry *widget.Registry, content string) *layout.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layouts.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write layouts: %v", err)
	}
	store, err := layout.Load(path, registry, 800, 480)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return store
}

func regionTouched(img image.Image, bounds image.Rectangle) bool {
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			if r != 0xffff {
				return true
			}
		}
	}
	return false
}

func TestRenderLayout(t *testing.T) {
	registry := testRegistry()
	store := loadStore(t, registry, `
layouts:
  main:
    widgets:
      - type: clock
        x: 0
        y: 0
        width: 400
        height: 120
      - type: text
        x: 0
        y: 200
        width: 400
        height: 60
        options:
          text: hello
`)
	outDir := t.TempDir()
	r := New(store, registry, 800, 480, outDir, zap.NewNop())

	path, err := r.RenderLayout("main", nil)
	if err != nil {
		t.Fatalf("RenderLayout: %v", err)
	}
	if path != filepath.Join(outDir, "main.png") {
		t.Errorf("path = %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open frame: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	// Output is always panel-sized regardless of widget content.
	if img.Bounds().Dx() != 800 || img.Bounds().Dy() != 480 {
		t.Errorf("frame = %v, want 800x480", img.Bounds())
	}
	if !regionTouched(img, image.Rect(0, 0, 400, 120)) {
		t.Error("clock region is blank")
	}
}

func TestRenderLayout_UnknownLayout(t *testing.T) {
	registry := testRegistry()
	store := loadStore(t, registry, `
layouts:
  main:
    widgets:
      - {type: clock, x: 0, y: 0, width: 200, height: 60}
`)
	r := New(store, registry, 800, 480, t.TempDir(), zap.NewNop())
	if _, err := r.RenderLayout("nope", nil); !errors.Is(err, layout.ErrUnknownLayout) {
		t.Errorf("err = %v, want ErrUnknownLayout", err)
	}
}

// A widget that errors or panics gets a bordered placeholder in its own
// region and leaves its neighbors intact.
func TestRenderLayout_FailureIsolation(t *testing.T) {
	registry := testRegistry()
	store := loadStore(t, registry, `
layouts:
  mixed:
    widgets:
      - {type: clock, x: 0, y: 0, width: 200, height: 60}
      - {type: fails, x: 0, y: 60, width: 200, height: 60}
      - {type: panics, x: 0, y: 120, width: 200, height: 60}
`)
	r := New(store, registry, 800, 480, t.TempDir(), zap.NewNop())

	data, err := r.RenderPreview("mixed", nil)
	if err != nil {
		t.Fatalf("RenderPreview: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if !regionTouched(img, image.Rect(0, 0, 200, 60)) {
		t.Error("healthy clock region is blank")
	}
	// Placeholder border runs along the top edge of each failed region.
	if !regionTouched(img, image.Rect(0, 60, 200, 64)) {
		t.Error("no placeholder for erroring widget")
	}
	if !regionTouched(img, image.Rect(0, 120, 200, 124)) {
		t.Error("no placeholder for panicking widget")
	}
	// Untouched area stays background.
	if regionTouched(img, image.Rect(400, 300, 800, 480)) {
		t.Error("failure leaked outside widget regions")
	}
}

func TestRenderLayout_ProviderData(t *testing.T) {
	registry := testRegistry()
	store := loadStore(t, registry, `
layouts:
  weather:
    widgets:
      - {type: weather, x: 0, y: 0, width: 300, height: 200}
`)
	r := New(store, registry, 800, 480, t.TempDir(), zap.NewNop())

	snapshots := map[string]models.ProviderSnapshot{
		"weather": {
			Provider: "weather",
			Payload: map[string]any{
				"current_temp": 68.0,
				"condition":    "Sunny",
				"high":         71.0,
				"low":          55.0,
			},
		},
	}
	if _, err := r.RenderPreview("weather", snapshots); err != nil {
		t.Fatalf("RenderPreview: %v", err)
	}
}

func TestRenderLayout_ConcurrentSameLayout(t *testing.T) {
	registry := testRegistry()
	store := loadStore(t, registry, `
layouts:
  main:
    widgets:
      - {type: clock, x: 0, y: 0, width: 200, height: 60}
`)
	r := New(store, registry, 800, 480, t.TempDir(), zap.NewNop())

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.RenderLayout("main", nil); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent render: %v", err)
	}
}
