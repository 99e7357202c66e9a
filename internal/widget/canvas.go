package widget

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// Canvas is the drawing surface handed to widgets. It wraps a gg context
// over an RGBA buffer; the renderer reduces the finished frame to
// grayscale when serializing. Intensity levels follow the panel
// convention: 0 is black, 255 is white.
type Canvas struct {
	ctx *gg.Context
}

// NewCanvas allocates a width x height canvas filled with the given
// background intensity.
func NewCanvas(width, height int, background uint8) *Canvas {
	ctx := gg.NewContext(width, height)
	ctx.SetColor(color.Gray{Y: background})
	ctx.Clear()
	return &Canvas{ctx: ctx}
}

// Context exposes the underlying gg context for widgets that need
// primitives beyond the helpers (lines, ellipses, clipping).
func (c *Canvas) Context() *gg.Context {
	return c.ctx
}

// Image returns the rendered frame.
func (c *Canvas) Image() image.Image {
	return c.ctx.Image()
}

// SetFont installs a cached face of the given size.
func (c *Canvas) SetFont(size float64, bold bool) {
	c.ctx.SetFontFace(Face(size, bold))
}

// DrawText draws s with its top-left corner near (x, y) at the given
// intensity level.
func (c *Canvas) DrawText(s string, x, y float64, level uint8) {
	c.ctx.SetColor(color.Gray{Y: level})
	c.ctx.DrawStringAnchored(s, x, y, 0, 1)
}

// DrawTextCentered draws s horizontally centered on centerX with its top
// near y.
func (c *Canvas) DrawTextCentered(s string, centerX, y float64, level uint8) {
	c.ctx.SetColor(color.Gray{Y: level})
	c.ctx.DrawStringAnchored(s, centerX, y, 0.5, 1)
}

// MeasureText returns the rendered width and height of s in the current
// font.
func (c *Canvas) MeasureText(s string) (float64, float64) {
	return c.ctx.MeasureString(s)
}

// Truncate shortens s with an ellipsis suffix until it fits maxWidth in
// the current font.
func (c *Canvas) Truncate(s string, maxWidth float64) string {
	if w, _ := c.ctx.MeasureString(s); w <= maxWidth {
		return s
	}
	const suffix = "..."
	suffixW, _ := c.ctx.MeasureString(suffix)
	target := maxWidth - suffixW

	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		if w, _ := c.ctx.MeasureString(string(runes)); w <= target {
			break
		}
	}
	return string(runes) + suffix
}

// StrokeRect outlines r at the given intensity.
func (c *Canvas) StrokeRect(r image.Rectangle, level uint8, lineWidth float64) {
	c.ctx.SetColor(color.Gray{Y: level})
	c.ctx.SetLineWidth(lineWidth)
	c.ctx.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	c.ctx.Stroke()
}

// FillRect fills r at the given intensity.
func (c *Canvas) FillRect(r image.Rectangle, level uint8) {
	c.ctx.SetColor(color.Gray{Y: level})
	c.ctx.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	c.ctx.Fill()
}

// DrawLine draws a straight line between two points.
func (c *Canvas) DrawLine(x1, y1, x2, y2 float64, level uint8, lineWidth float64) {
	c.ctx.SetColor(color.Gray{Y: level})
	c.ctx.SetLineWidth(lineWidth)
	c.ctx.DrawLine(x1, y1, x2, y2)
	c.ctx.Stroke()
}

// DrawImage pastes img with its top-left corner at (x, y).
func (c *Canvas) DrawImage(img image.Image, x, y int) {
	c.ctx.DrawImage(img, x, y)
}

// NoData paints the standard placeholder for a widget whose provider
// data is missing: a centered muted message, nothing else.
func (c *Canvas) NoData(bounds image.Rectangle, message string) {
	c.SetFont(14, false)
	cx := float64(bounds.Min.X) + float64(bounds.Dx())/2
	cy := float64(bounds.Min.Y) + float64(bounds.Dy())/2
	c.ctx.SetColor(color.Gray{Y: 128})
	c.ctx.DrawStringAnchored(message, cx, cy, 0.5, 0.5)
}
