// Package render composes layout definitions into full-screen e-ink
// frames. A failing widget never takes the frame down with it: its
// region gets an error placeholder and the rest of the layout renders
// normally.
package render

import (
	"fmt"
	"image"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/einkhub/renderer/internal/imaging"
	"github.com/einkhub/renderer/internal/layout"
	"github.com/einkhub/renderer/internal/widget"
	"github.com/einkhub/renderer/pkg/models"
)

// Renderer turns layout definitions plus provider snapshots into PNG
// frames sized for the display panel.
type Renderer struct {
	width     int
	height    int
	outputDir string
	layouts   *layout.Store
	registry  *widget.Registry
	logger    *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a renderer producing width x height frames under outputDir.
func New(layouts *layout.Store, registry *widget.Registry, width, height int, outputDir string, logger *zap.Logger) *Renderer {
	return &Renderer{
		width:     width,
		height:    height,
		outputDir: outputDir,
		layouts:   layouts,
		registry:  registry,
		logger:    logger,
		locks:     make(map[string]*sync.Mutex),
	}
}

// OutputPath returns where a rendered layout frame is written.
func (r *Renderer) OutputPath(name string) string {
	return filepath.Join(r.outputDir, name+".png")
}

// lockFor serializes renders of the same layout so concurrent requests
// cannot interleave writes to one output file.
func (r *Renderer) lockFor(name string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[name]
	if !ok {
		l = &sync.Mutex{}
		r.locks[name] = l
	}
	return l
}

// RenderLayout composes the named layout and writes the frame to the
// output directory, returning the output path. An unknown layout name is
// an error; individual widget failures are not.
func (r *Renderer) RenderLayout(name string, snapshots map[string]models.ProviderSnapshot) (string, error) {
	l := r.lockFor(name)
	l.Lock()
	defer l.Unlock()

	frame, err := r.compose(name, snapshots)
	if err != nil {
		return "", err
	}

	path := r.OutputPath(name)
	if err := imaging.SavePNG(frame, path); err != nil {
		return "", fmt.Errorf("failed to save frame for %s: %w", name, err)
	}

	r.logger.Info("rendered layout",
		zap.String("layout", name),
		zap.String("path", path))
	return path, nil
}

// RenderPreview composes the named layout and returns the encoded PNG
// without touching the output directory.
func (r *Renderer) RenderPreview(name string, snapshots map[string]models.ProviderSnapshot) ([]byte, error) {
	frame, err := r.compose(name, snapshots)
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNG(frame)
}

func (r *Renderer) compose(name string, snapshots map[string]models.ProviderSnapshot) (*image.Gray, error) {
	def, err := r.layouts.Get(name)
	if err != nil {
		return nil, err
	}

	canvas := widget.NewCanvas(r.width, r.height, def.BackgroundLevel())

	for i, placement := range def.Widgets {
		bounds := image.Rect(placement.X, placement.Y, placement.X+placement.Width, placement.Y+placement.Height)

		if err := r.renderPlacement(canvas, placement, bounds, snapshots); err != nil {
			r.logger.Warn("widget failed, rendering placeholder",
				zap.String("layout", name),
				zap.Int("index", i),
				zap.String("type", placement.Type),
				zap.Error(err))
			drawErrorPlaceholder(canvas, bounds, placement.Type)
		}
	}

	return imaging.ToGray(canvas.Image()), nil
}

// renderPlacement constructs and renders one widget, converting panics
// into errors so a misbehaving widget cannot abort the whole frame. An
// explicit provider in the layout wins over the widget's default; no
// bound provider, or a missing snapshot, yields nil data and the widget
// draws its own placeholder.
func (r *Renderer) renderPlacement(c *widget.Canvas, p layout.Placement, bounds image.Rectangle, snapshots map[string]models.ProviderSnapshot) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("widget %s panicked: %v", p.Type, rec)
		}
	}()

	w, err := r.registry.Create(p.Type, p.Options)
	if err != nil {
		return err
	}

	provider := p.Provider
	if provider == "" {
		provider = w.RequiredProvider()
	}
	var data map[string]any
	if provider != "" {
		if snap, ok := snapshots[provider]; ok {
			data = snap.Payload
		}
	}

	return w.Render(c, bounds, data)
}

func drawErrorPlaceholder(c *widget.Canvas, bounds image.Rectangle, typeName string) {
	c.FillRect(bounds, 255)
	c.StrokeRect(bounds, 0, 2)
	c.SetFont(12, false)
	c.DrawText("Error: "+typeName, float64(bounds.Min.X+5), float64(bounds.Min.Y+5), 0)
}
