package widget

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/einkhub/renderer/internal/forecast"
)

// IndoorSensor shows temperature and humidity from the indoor sensor
// provider, with optional 24h stats, history sparklines and a barometric
// trend forecast when the sensor reports pressure.
//
// The widget computes its own staleness from the reading timestamp; it
// deliberately ignores the snapshot TTL, which is advisory metadata for
// other subsystems.
//
// Options:
//   - compact: bool (default false)
//   - show_stats: bool (default false)
//   - show_graph: bool (default false)
//   - show_forecast: bool (default true)
//   - show_sensor_id: bool (default false)
//   - title: string (default "Indoor")
//   - use_fahrenheit: bool (default true)
type IndoorSensor struct {
	compact       bool
	showStats     bool
	showGraph     bool
	showForecast  bool
	showSensorID  bool
	title         string
	useFahrenheit bool

	now func() time.Time
}

// NewIndoorSensor constructs an indoor sensor widget.
func NewIndoorSensor(opts Options) (Widget, error) {
	return &IndoorSensor{
		compact:       opts.Bool("compact", false),
		showStats:     opts.Bool("show_stats", false),
		showGraph:     opts.Bool("show_graph", false),
		showForecast:  opts.Bool("show_forecast", true),
		showSensorID:  opts.Bool("show_sensor_id", false),
		title:         opts.String("title", "Indoor"),
		useFahrenheit: opts.Bool("use_fahrenheit", true),
		now:           time.Now,
	}, nil
}

func (w *IndoorSensor) RequiredProvider() string { return "indoor_sensor" }

func (w *IndoorSensor) Render(c *Canvas, bounds image.Rectangle, data map[string]any) error {
	if len(data) == 0 || !payloadBool(data, "available", false) {
		message := payloadString(data, "error", "No sensor data")
		if message == "" {
			message = "No sensor data"
		}
		c.NoData(bounds, message)
		return nil
	}

	if w.compact {
		w.renderCompact(c, bounds, data)
	} else {
		w.renderFull(c, bounds, data)
	}
	return nil
}

func (w *IndoorSensor) tempKey() string {
	if w.useFahrenheit {
		return "temperature_f"
	}
	return "temperature_c"
}

func (w *IndoorSensor) unit() string {
	if w.useFahrenheit {
		return "F"
	}
	return "C"
}

func (w *IndoorSensor) renderCompact(c *Canvas, bounds image.Rectangle, data map[string]any) {
	x := float64(bounds.Min.X)
	y := float64(bounds.Min.Y)

	c.SetFont(12, false)
	c.DrawText(w.title, x, y, 0)
	y += 16

	c.SetFont(28, true)
	c.DrawText(fmt.Sprintf("%s°%s", payloadNumber(data, w.tempKey()), w.unit()), x, y, 0)
	y += 34

	c.SetFont(14, false)
	c.DrawText(payloadNumber(data, "humidity")+"%", x, y, 0)

	if payloadBool(data, "is_stale", false) {
		c.SetFont(10, false)
		c.DrawText("(stale)", x+50, y, 128)
	}
}

func (w *IndoorSensor) renderFull(c *Canvas, bounds image.Rectangle, data map[string]any) {
	x := float64(bounds.Min.X)
	y := float64(bounds.Min.Y)

	c.SetFont(14, true)
	c.DrawText(w.title, x, y, 0)
	y += 20

	c.SetFont(42, true)
	c.DrawText(payloadNumber(data, w.tempKey())+"°", x, y, 0)
	c.SetFont(18, false)
	c.DrawText(w.unit(), x+75, y+5, 0)
	y += 50

	c.SetFont(12, false)
	c.DrawText("Humidity", x, y, 0)
	y += 14
	c.SetFont(24, true)
	c.DrawText(payloadNumber(data, "humidity")+"%", x, y, 0)
	y += 30

	y = w.renderAge(c, x, y, data)

	if w.showSensorID {
		c.SetFont(10, false)
		c.DrawText(payloadString(data, "sensor_id", "unknown"), x, y, 128)
		y += 14
	}

	if w.showForecast {
		y = w.renderForecast(c, bounds, x, y, data)
	}

	if w.showStats {
		y = w.renderStats(c, x, y, data)
	}

	if w.showGraph {
		w.renderGraphs(c, bounds, x, y, data)
	}
}

func (w *IndoorSensor) renderAge(c *Canvas, x, y float64, data map[string]any) float64 {
	ageMinutes := 0
	if v, ok := payloadFloat(data, "age_minutes"); ok {
		ageMinutes = int(v)
	}
	stale := payloadBool(data, "is_stale", false)

	var ageText string
	switch ageMinutes {
	case 0:
		ageText = "Just now"
	case 1:
		ageText = "1 min ago"
	default:
		ageText = fmt.Sprintf("%d min ago", ageMinutes)
	}
	if stale {
		ageText += " (stale!)"
	}

	var level uint8
	if stale {
		level = 128
	}
	c.SetFont(10, false)
	c.DrawText(ageText, x, y, level)
	return y + 14
}

// renderForecast classifies the 3-hour barometric trend when the payload
// carries pressure history.
func (w *IndoorSensor) renderForecast(c *Canvas, bounds image.Rectangle, x, y float64, data map[string]any) float64 {
	current, ok := payloadFloat(data, "pressure_hpa")
	if !ok {
		return y
	}

	history := pressureHistory(data)
	fc, err := forecast.Classify(history, current, w.now())
	if err != nil {
		return y
	}

	y += 4
	c.SetFont(12, true)
	c.DrawText(fmt.Sprintf("%s %s", fc.Symbol, fc.Prediction), x, y, 0)
	y += 16

	c.SetFont(10, false)
	detail := fmt.Sprintf("%+.1f hPa / 3h  •  %.0f hPa (%s)", fc.DeltaHPa, current, fc.Pressure)
	c.DrawText(c.Truncate(detail, float64(bounds.Dx())), x, y, 128)
	return y + 14
}

func (w *IndoorSensor) renderStats(c *Canvas, x, y float64, data map[string]any) float64 {
	stats, ok := data["stats"].(map[string]any)
	if !ok {
		return y
	}

	y += 4
	c.SetFont(10, false)

	if tempStats, ok := stats["temperature"].(map[string]any); ok {
		minKey, maxKey := "min_c", "max_c"
		if w.useFahrenheit {
			minKey, maxKey = "min_f", "max_f"
		}
		tMin, okMin := payloadFloat(tempStats, minKey)
		tMax, okMax := payloadFloat(tempStats, maxKey)
		if okMin && okMax {
			c.DrawText(fmt.Sprintf("24h: %.1f°-%.1f°%s", tMin, tMax, w.unit()), x, y, 0)
			y += 12
		}
	}

	if humStats, ok := stats["humidity"].(map[string]any); ok {
		hMin, okMin := payloadFloat(humStats, "min")
		hMax, okMax := payloadFloat(humStats, "max")
		if okMin && okMax {
			c.DrawText(fmt.Sprintf("Hum: %.0f%%-%.0f%%", hMin, hMax), x, y, 0)
			y += 16
		}
	}

	return y
}

func (w *IndoorSensor) renderGraphs(c *Canvas, bounds image.Rectangle, x, y float64, data map[string]any) {
	history := payloadList(data, "history")
	if len(history) < 2 {
		return
	}

	var temps, humidity []float64
	for _, sample := range history {
		if v, ok := payloadFloat(sample, w.tempKey()); ok {
			temps = append(temps, v)
		}
		if v, ok := payloadFloat(sample, "humidity"); ok {
			humidity = append(humidity, v)
		}
	}

	graphW := float64(bounds.Dx() - 10)
	if graphW > 200 {
		graphW = 200
	}
	const graphH = 50

	y += 8
	w.drawSparkline(c, temps, x, y, graphW, graphH, "Temp °"+w.unit())
	y += graphH + 18
	w.drawSparkline(c, humidity, x, y, graphW, graphH, "Humidity %")
}

// drawSparkline plots a small line graph with min/max range labels on the
// right and a dot at the latest value.
func (w *IndoorSensor) drawSparkline(c *Canvas, series []float64, x, y, width, height float64, label string) {
	if len(series) < 2 {
		return
	}

	dataMin, dataMax := series[0], series[0]
	for _, v := range series {
		if v < dataMin {
			dataMin = v
		}
		if v > dataMax {
			dataMax = v
		}
	}
	dataRange := dataMax - dataMin
	if dataRange == 0 {
		dataRange = 1
		dataMin -= 0.5
		dataMax += 0.5
	}

	const labelWidth = 35.0
	plotW := width - labelWidth - 4
	plotH := height - 4

	c.StrokeRect(image.Rect(int(x), int(y), int(x+width-labelWidth), int(y+height)), 180, 1)

	ctx := c.Context()
	ctx.SetColor(color.Gray{Y: 0})
	ctx.SetLineWidth(1)
	var lastX, lastY float64
	for i, v := range series {
		px := x + 2 + float64(i)/float64(len(series)-1)*plotW
		normalized := (v - dataMin) / dataRange
		py := y + height - 2 - normalized*plotH
		if i == 0 {
			ctx.MoveTo(px, py)
		} else {
			ctx.LineTo(px, py)
		}
		lastX, lastY = px, py
	}
	ctx.Stroke()

	ctx.DrawEllipse(lastX, lastY, 2, 2)
	ctx.Fill()

	c.SetFont(9, false)
	labelX := x + width - labelWidth + 4
	c.DrawText(fmt.Sprintf("%.1f", dataMax), labelX, y, 0)
	c.DrawText(fmt.Sprintf("%.1f", dataMin), labelX, y+height-10, 0)
	if label != "" {
		c.DrawText(label, x+2, y-11, 0)
	}
}

// pressureHistory parses {pressure_hpa, timestamp} samples from the
// payload's pressure_history list. Timestamps are RFC3339 strings.
func pressureHistory(data map[string]any) []forecast.Sample {
	var samples []forecast.Sample
	for _, entry := range payloadList(data, "pressure_history") {
		hpa, ok := payloadFloat(entry, "pressure_hpa")
		if !ok {
			continue
		}
		ts := payloadString(entry, "timestamp", "")
		parsed, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			continue
		}
		samples = append(samples, forecast.Sample{PressureHPa: hpa, Timestamp: parsed})
	}
	return samples
}
