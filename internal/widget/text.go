package widget

import (
	"errors"
	"image"
	"strings"
)

// Text displays a static string. It needs no provider.
//
// Options:
//   - text: string (required)
//   - font_size: int (default 20)
//   - bold: bool (default false)
//   - center: bool (default false)
//   - wrap: bool (default false)
type Text struct {
	text     string
	fontSize int
	bold     bool
	center   bool
	wrap     bool
}

// NewText constructs a text widget.
func NewText(opts Options) (Widget, error) {
	text := opts.String("text", "")
	if text == "" {
		return nil, errors.New("text widget requires a non-empty text option")
	}
	fontSize := opts.Int("font_size", 20)
	if fontSize <= 0 {
		return nil, errors.New("text widget font_size must be positive")
	}
	return &Text{
		text:     text,
		fontSize: fontSize,
		bold:     opts.Bool("bold", false),
		center:   opts.Bool("center", false),
		wrap:     opts.Bool("wrap", false),
	}, nil
}

func (w *Text) RequiredProvider() string { return "" }

func (w *Text) Render(c *Canvas, bounds image.Rectangle, data map[string]any) error {
	c.SetFont(float64(w.fontSize), w.bold)

	if w.wrap {
		w.renderWrapped(c, bounds)
		return nil
	}

	if w.center {
		y := float64(bounds.Min.Y) + float64(bounds.Dy()-w.fontSize)/2
		cx := float64(bounds.Min.X) + float64(bounds.Dx())/2
		c.DrawTextCentered(w.text, cx, y, 0)
		return nil
	}

	c.DrawText(w.text, float64(bounds.Min.X), float64(bounds.Min.Y), 0)
	return nil
}

func (w *Text) renderWrapped(c *Canvas, bounds image.Rectangle) {
	maxWidth := float64(bounds.Dx())

	var lines []string
	var current []string
	for _, word := range strings.Fields(w.text) {
		candidate := strings.Join(append(current, word), " ")
		if width, _ := c.MeasureText(candidate); width <= maxWidth {
			current = append(current, word)
			continue
		}
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
		}
		current = []string{word}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}

	lineHeight := float64(w.fontSize + 4)
	y := float64(bounds.Min.Y)
	for _, line := range lines {
		if y+lineHeight > float64(bounds.Max.Y) {
			break
		}
		if w.center {
			cx := float64(bounds.Min.X) + float64(bounds.Dx())/2
			c.DrawTextCentered(line, cx, y, 0)
		} else {
			c.DrawText(line, float64(bounds.Min.X), y, 0)
		}
		y += lineHeight
	}
}
