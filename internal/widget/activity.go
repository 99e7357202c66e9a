package widget

import (
	"fmt"
	"image"
)

// Activity shows the weekly mileage total plus a short list of recent
// runs from the activity provider.
//
// Options:
//   - show_recent: bool (default true)
//   - max_runs: int (default 3)
type Activity struct {
	showRecent bool
	maxRuns    int
}

// NewActivity constructs an activity summary widget.
func NewActivity(opts Options) (Widget, error) {
	return &Activity{
		showRecent: opts.Bool("show_recent", true),
		maxRuns:    opts.Int("max_runs", 3),
	}, nil
}

func (w *Activity) RequiredProvider() string { return "activity" }

func (w *Activity) Render(c *Canvas, bounds image.Rectangle, data map[string]any) error {
	if len(data) == 0 {
		c.NoData(bounds, "No activity data")
		return nil
	}

	x := float64(bounds.Min.X)
	y := float64(bounds.Min.Y)

	weekTotal, _ := payloadFloat(data, "week_total_miles")
	c.SetFont(32, true)
	c.DrawText(fmt.Sprintf("%.1f mi", weekTotal), x, y, 0)

	c.SetFont(12, false)
	c.DrawText("this week", x, y+38, 0)
	y += 60

	if !w.showRecent {
		return nil
	}

	runs := payloadList(data, "recent_runs")
	for i, run := range runs {
		if i >= w.maxRuns || y+35 > float64(bounds.Max.Y) {
			break
		}

		label := payloadString(run, "label", "Run")
		miles, _ := payloadFloat(run, "miles")
		pace := payloadString(run, "pace", "")

		c.SetFont(13, false)
		c.DrawText(c.Truncate(label, float64(bounds.Dx()-10)), x, y, 0)
		y += 16

		details := fmt.Sprintf("%.1f mi", miles)
		if pace != "" {
			details += "  •  " + pace
		}
		c.SetFont(11, false)
		c.DrawText(details, x, y, 0)
		y += 22
	}

	return nil
}

// ActivityChart draws a Mon-Sun bar chart of weekly mileage.
//
// Options:
//   - show_labels: bool (default true)
//   - show_max: bool (default true)
type ActivityChart struct {
	showLabels bool
	showMax    bool
}

// NewActivityChart constructs a weekly mileage chart widget.
func NewActivityChart(opts Options) (Widget, error) {
	return &ActivityChart{
		showLabels: opts.Bool("show_labels", true),
		showMax:    opts.Bool("show_max", true),
	}, nil
}

func (w *ActivityChart) RequiredProvider() string { return "activity" }

func (w *ActivityChart) Render(c *Canvas, bounds image.Rectangle, data map[string]any) error {
	if len(data) == 0 {
		c.NoData(bounds, "No activity data")
		return nil
	}

	miles := weeklyMiles(data)
	days := [7]string{"M", "T", "W", "T", "F", "S", "S"}

	const padding = 5
	labelHeight := 0
	if w.showLabels {
		labelHeight = 20
	}

	chartTop := float64(bounds.Min.Y + padding)
	chartBottom := float64(bounds.Max.Y - labelHeight - padding)
	chartLeft := float64(bounds.Min.X + padding)
	chartRight := float64(bounds.Max.X - padding)

	chartW := chartRight - chartLeft
	chartH := chartBottom - chartTop

	c.StrokeRect(image.Rect(int(chartLeft), int(chartTop), int(chartRight), int(chartBottom)), 0, 1)

	maxMiles := 0.0
	for _, m := range miles {
		if m > maxMiles {
			maxMiles = m
		}
	}
	if maxMiles <= 0 {
		maxMiles = 1
	}

	barAreaH := chartH - 10
	barSpacing := chartW / float64(len(miles))
	barWidth := barSpacing * 0.6

	for i, m := range miles {
		xCenter := chartLeft + (float64(i)+0.5)*barSpacing

		if m > 0 {
			barH := m / maxMiles * barAreaH
			y1 := chartBottom - 5
			y0 := y1 - barH
			c.FillRect(image.Rect(int(xCenter-barWidth/2), int(y0), int(xCenter+barWidth/2), int(y1)), 0)
		}

		if w.showLabels {
			c.SetFont(12, false)
			c.DrawTextCentered(days[i], xCenter, chartBottom+3, 0)
		}
	}

	if w.showMax {
		c.SetFont(10, false)
		label := fmt.Sprintf("Max: %.1f mi", maxMiles)
		lw, _ := c.MeasureText(label)
		c.DrawText(label, chartRight-lw-3, chartTop+3, 0)
	}

	return nil
}

// weeklyMiles reads the 7-entry Mon-Sun mileage series, zero-filled.
func weeklyMiles(data map[string]any) [7]float64 {
	var miles [7]float64
	raw, ok := data["weekly_miles"].([]any)
	if !ok {
		return miles
	}
	for i, v := range raw {
		if i >= 7 {
			break
		}
		switch n := v.(type) {
		case float64:
			miles[i] = n
		case int:
			miles[i] = float64(n)
		case int64:
			miles[i] = float64(n)
		}
	}
	return miles
}
