package widget

import (
	"fmt"
	"image"
)

// Weather shows current conditions from the weather provider.
//
// Options:
//   - compact: bool (default false)
//   - show_feels_like: bool (default false)
//   - show_humidity: bool (default false)
//   - show_wind: bool (default false)
type Weather struct {
	compact       bool
	showFeelsLike bool
	showHumidity  bool
	showWind      bool
}

// NewWeather constructs a weather widget.
func NewWeather(opts Options) (Widget, error) {
	return &Weather{
		compact:       opts.Bool("compact", false),
		showFeelsLike: opts.Bool("show_feels_like", false),
		showHumidity:  opts.Bool("show_humidity", false),
		showWind:      opts.Bool("show_wind", false),
	}, nil
}

func (w *Weather) RequiredProvider() string { return "weather" }

func (w *Weather) Render(c *Canvas, bounds image.Rectangle, data map[string]any) error {
	if len(data) == 0 {
		c.NoData(bounds, "No weather data")
		return nil
	}

	if w.compact {
		w.renderCompact(c, bounds, data)
	} else {
		w.renderFull(c, bounds, data)
	}
	return nil
}

func (w *Weather) renderCompact(c *Canvas, bounds image.Rectangle, data map[string]any) {
	x := float64(bounds.Min.X)
	y := float64(bounds.Min.Y)

	c.SetFont(32, true)
	c.DrawText(payloadNumber(data, "current_temp")+"°", x, y, 0)

	c.SetFont(14, false)
	c.DrawText(payloadString(data, "condition", "Unknown"), x+70, y+10, 0)

	highLow := fmt.Sprintf("H:%s° L:%s°", payloadNumber(data, "high"), payloadNumber(data, "low"))
	c.DrawText(highLow, x, y+40, 0)
}

func (w *Weather) renderFull(c *Canvas, bounds image.Rectangle, data map[string]any) {
	x := float64(bounds.Min.X)
	y := float64(bounds.Min.Y)

	location := payloadString(data, "location", "")
	if location != "" && bounds.Dy() > 80 {
		c.SetFont(12, false)
		c.DrawText(location, x, y, 0)
		y += 16
	}

	c.SetFont(42, true)
	c.DrawText(payloadNumber(data, "current_temp")+"°", x, y, 0)

	condition := payloadString(data, "condition", "Unknown")
	c.SetFont(16, false)
	c.DrawText(condition, x+80, y+10, 0)

	if desc := payloadString(data, "description", ""); desc != "" && desc != condition {
		c.SetFont(12, false)
		c.DrawText(desc, x+80, y+30, 0)
	}

	y += 50
	c.SetFont(14, false)
	highLow := fmt.Sprintf("H:%s° L:%s°", payloadNumber(data, "high"), payloadNumber(data, "low"))
	c.DrawText(highLow, x, y, 0)
	y += 20

	c.SetFont(12, false)
	if w.showFeelsLike {
		if v, ok := payloadFloat(data, "feels_like"); ok {
			c.DrawText(fmt.Sprintf("Feels like %.0f°", v), x, y, 0)
			y += 16
		}
	}
	if w.showHumidity {
		if v, ok := payloadFloat(data, "humidity"); ok {
			c.DrawText(fmt.Sprintf("Humidity: %.0f%%", v), x, y, 0)
			y += 16
		}
	}
	if w.showWind {
		if v, ok := payloadFloat(data, "wind_speed"); ok {
			unit := payloadString(data, "wind_unit", "mph")
			c.DrawText(fmt.Sprintf("Wind: %.0f %s", v, unit), x, y, 0)
		}
	}
}
