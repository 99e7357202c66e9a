package widget

import (
	"image"
)

// Calendar lists upcoming events from the calendar provider, split into
// Today and Tomorrow sections.
//
// Options:
//   - max_events: int (default 5)
//   - show_time: bool (default true)
//   - show_tomorrow: bool (default true)
//   - show_location: bool (default false)
type Calendar struct {
	maxEvents    int
	showTime     bool
	showTomorrow bool
	showLocation bool
}

// NewCalendar constructs a calendar widget.
func NewCalendar(opts Options) (Widget, error) {
	return &Calendar{
		maxEvents:    opts.Int("max_events", 5),
		showTime:     opts.Bool("show_time", true),
		showTomorrow: opts.Bool("show_tomorrow", true),
		showLocation: opts.Bool("show_location", false),
	}, nil
}

func (w *Calendar) RequiredProvider() string { return "calendar" }

func (w *Calendar) Render(c *Canvas, bounds image.Rectangle, data map[string]any) error {
	if len(data) == 0 {
		c.NoData(bounds, "No calendar data")
		return nil
	}

	today := payloadList(data, "today_events")
	tomorrow := payloadList(data, "tomorrow_events")

	x := float64(bounds.Min.X)
	y := float64(bounds.Min.Y)
	shown := 0

	if len(today) > 0 {
		c.SetFont(16, true)
		c.DrawText("Today", x, y, 0)
		y += 22

		for _, event := range today {
			if shown >= w.maxEvents {
				break
			}
			y = w.renderEvent(c, bounds, event, y)
			shown++
		}
	}

	if w.showTomorrow && len(tomorrow) > 0 && shown < w.maxEvents {
		if len(today) > 0 {
			y += 8
		}
		c.SetFont(16, true)
		c.DrawText("Tomorrow", x, y, 0)
		y += 22

		for _, event := range tomorrow {
			if shown >= w.maxEvents {
				break
			}
			y = w.renderEvent(c, bounds, event, y)
			shown++
		}
	}

	if shown == 0 {
		c.SetFont(14, false)
		c.DrawText("No upcoming events", x, float64(bounds.Min.Y)+20, 128)
	}

	return nil
}

// renderEvent draws one event line and returns the next y position.
func (w *Calendar) renderEvent(c *Canvas, bounds image.Rectangle, event map[string]any, y float64) float64 {
	x := float64(bounds.Min.X)
	maxWidth := float64(bounds.Dx())

	title := payloadString(event, "title", "Untitled")
	timeStr := payloadString(event, "time", "")
	allDay := payloadBool(event, "all_day", false)

	titleX := x
	titleMaxW := maxWidth

	c.SetFont(12, false)
	switch {
	case w.showTime && timeStr != "" && !allDay:
		prefix := timeStr + "  "
		c.DrawText(prefix, x, y, 0)
		prefixW, _ := c.MeasureText(prefix)
		titleX = x + prefixW
		titleMaxW = maxWidth - prefixW
	case allDay:
		prefix := "All day  "
		c.DrawText(prefix, x, y, 128)
		prefixW, _ := c.MeasureText(prefix)
		titleX = x + prefixW
		titleMaxW = maxWidth - prefixW
	}

	c.SetFont(14, false)
	c.DrawText(c.Truncate(title, titleMaxW), titleX, y, 0)
	y += 20

	if w.showLocation {
		if location := payloadString(event, "location", ""); location != "" {
			c.SetFont(11, false)
			c.DrawText(c.Truncate(location, maxWidth-10), x+10, y, 128)
			y += 14
		}
	}

	return y
}
