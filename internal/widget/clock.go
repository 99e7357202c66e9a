package widget

import (
	"fmt"
	"image"
	"time"
)

// Clock displays the current time and date. It needs no provider.
//
// Options:
//   - format: "12h" | "24h" (default "12h")
//   - show_date: bool (default true)
//   - show_day: bool (default true)
//   - show_seconds: bool (default false)
type Clock struct {
	format      string
	showDate    bool
	showDay     bool
	showSeconds bool

	now func() time.Time
}

// NewClock constructs a clock widget.
func NewClock(opts Options) (Widget, error) {
	format := opts.String("format", "12h")
	if format != "12h" && format != "24h" {
		return nil, fmt.Errorf("invalid clock format %q (must be 12h or 24h)", format)
	}
	return &Clock{
		format:      format,
		showDate:    opts.Bool("show_date", true),
		showDay:     opts.Bool("show_day", true),
		showSeconds: opts.Bool("show_seconds", false),
		now:         time.Now,
	}, nil
}

func (w *Clock) RequiredProvider() string { return "" }

func (w *Clock) Render(c *Canvas, bounds image.Rectangle, data map[string]any) error {
	now := w.now()
	x := float64(bounds.Min.X)
	y := float64(bounds.Min.Y)

	var layout string
	switch {
	case w.format == "24h" && w.showSeconds:
		layout = "15:04:05"
	case w.format == "24h":
		layout = "15:04"
	case w.showSeconds:
		layout = "3:04:05 PM"
	default:
		layout = "3:04 PM"
	}

	c.SetFont(36, true)
	c.DrawText(now.Format(layout), x, y, 0)

	if w.showDate {
		c.SetFont(18, false)
		dateLayout := "January 2, 2006"
		if w.showDay {
			dateLayout = "Monday, January 2"
		}
		c.DrawText(now.Format(dateLayout), x, y+44, 0)
	}

	return nil
}
