package widget

import (
	"fmt"
	"image"
	"image/color"
	"time"
)

// CalendarWeek draws a 7-day week grid: hours down the left, days across
// the top, events as blocks in their time slots, today highlighted and
// the current time marked with a line.
//
// Options:
//   - start_hour: int (default 7)
//   - end_hour: int (default 22)
//   - show_current_time: bool (default true)
type CalendarWeek struct {
	startHour       int
	endHour         int
	showCurrentTime bool

	now func() time.Time
}

type weekEvent struct {
	title  string
	start  time.Time
	allDay bool
}

// NewCalendarWeek constructs a week-grid calendar widget.
func NewCalendarWeek(opts Options) (Widget, error) {
	startHour := opts.Int("start_hour", 7)
	endHour := opts.Int("end_hour", 22)
	if startHour < 0 || endHour > 24 || startHour >= endHour {
		return nil, fmt.Errorf("invalid hour range %d-%d", startHour, endHour)
	}
	return &CalendarWeek{
		startHour:       startHour,
		endHour:         endHour,
		showCurrentTime: opts.Bool("show_current_time", true),
		now:             time.Now,
	}, nil
}

func (w *CalendarWeek) RequiredProvider() string { return "calendar" }

func (w *CalendarWeek) Render(c *Canvas, bounds image.Rectangle, data map[string]any) error {
	const (
		headerHeight    = 50
		timeColumnWidth = 45
	)

	gridX := float64(bounds.Min.X + timeColumnWidth)
	gridY := float64(bounds.Min.Y + headerHeight)
	gridW := float64(bounds.Dx() - timeColumnWidth)
	gridH := float64(bounds.Dy() - headerHeight)

	dayWidth := gridW / 7
	hours := w.endHour - w.startHour
	hourHeight := gridH / float64(hours)

	now := w.now()
	weekStart := startOfWeek(now)

	byDay := w.organizeEvents(data, weekStart)

	w.drawHeader(c, bounds, weekStart, now, gridX, dayWidth)
	w.drawTimeColumn(c, bounds, gridY, hourHeight)
	w.drawGrid(c, gridX, gridY, gridW, gridH, dayWidth, hourHeight, hours)
	w.drawEvents(c, byDay, gridX, gridY, dayWidth, hourHeight)

	if w.showCurrentTime {
		w.drawCurrentTime(c, now, weekStart, gridX, gridY, dayWidth, hourHeight)
	}

	return nil
}

// startOfWeek returns midnight Monday of now's week in now's location.
func startOfWeek(now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	daysSinceMonday := (int(midnight.Weekday()) + 6) % 7
	return midnight.AddDate(0, 0, -daysSinceMonday)
}

// organizeEvents buckets events by day offset 0..6 within the week.
func (w *CalendarWeek) organizeEvents(data map[string]any, weekStart time.Time) [7][]weekEvent {
	var byDay [7][]weekEvent
	if data == nil {
		return byDay
	}

	var all []map[string]any
	all = append(all, payloadList(data, "today_events")...)
	all = append(all, payloadList(data, "tomorrow_events")...)
	all = append(all, payloadList(data, "upcoming_events")...)

	for _, event := range all {
		startISO := payloadString(event, "start_iso", "")
		if startISO == "" {
			continue
		}
		start, err := time.Parse(time.RFC3339, startISO)
		if err != nil {
			continue
		}
		day := int(start.In(weekStart.Location()).Sub(weekStart).Hours() / 24)
		if day < 0 || day > 6 {
			continue
		}
		byDay[day] = append(byDay[day], weekEvent{
			title:  payloadString(event, "title", ""),
			start:  start.In(weekStart.Location()),
			allDay: payloadBool(event, "all_day", false),
		})
	}
	return byDay
}

func (w *CalendarWeek) drawHeader(c *Canvas, bounds image.Rectangle, weekStart, now time.Time, gridX, dayWidth float64) {
	dayNames := [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		xCenter := gridX + float64(i)*dayWidth + dayWidth/2

		c.SetFont(12, true)
		c.DrawTextCentered(dayNames[i], xCenter, float64(bounds.Min.Y)+5, 0)

		dateStr := fmt.Sprintf("%d", day.Day())
		dateY := float64(bounds.Min.Y) + 22

		c.SetFont(18, false)
		if sameDate(day, now) {
			dw, dh := c.MeasureText(dateStr)
			r := dw
			if dh > r {
				r = dh
			}
			r = r/2 + 4
			ctx := c.Context()
			ctx.SetColor(color.Gray{Y: 0})
			ctx.DrawEllipse(xCenter, dateY+dh/2, r, r)
			ctx.Fill()
			c.DrawTextCentered(dateStr, xCenter, dateY, 255)
		} else {
			c.DrawTextCentered(dateStr, xCenter, dateY, 0)
		}
	}
}

func (w *CalendarWeek) drawTimeColumn(c *Canvas, bounds image.Rectangle, gridY, hourHeight float64) {
	c.SetFont(10, false)
	for hour := w.startHour; hour <= w.endHour; hour++ {
		y := gridY + float64(hour-w.startHour)*hourHeight

		var label string
		switch {
		case hour == 0:
			label = "12 AM"
		case hour < 12:
			label = fmt.Sprintf("%d AM", hour)
		case hour == 12:
			label = "12 PM"
		default:
			label = fmt.Sprintf("%d PM", hour-12)
		}

		lw, lh := c.MeasureText(label)
		c.DrawText(label, float64(bounds.Min.X)+40-lw, y-lh/2, 128)
	}
}

func (w *CalendarWeek) drawGrid(c *Canvas, gridX, gridY, gridW, gridH, dayWidth, hourHeight float64, hours int) {
	for i := 0; i <= 7; i++ {
		x := gridX + float64(i)*dayWidth
		c.DrawLine(x, gridY, x, gridY+gridH, 200, 1)
	}
	for i := 0; i <= hours; i++ {
		y := gridY + float64(i)*hourHeight
		c.DrawLine(gridX, y, gridX+gridW, y, 200, 1)
	}
}

func (w *CalendarWeek) drawEvents(c *Canvas, byDay [7][]weekEvent, gridX, gridY, dayWidth, hourHeight float64) {
	c.SetFont(9, false)

	for i := 0; i < 7; i++ {
		dayX := gridX + float64(i)*dayWidth + 2
		availableW := dayWidth - 4

		// All-day events stack as bars at the top of the column, two max.
		allDayY := gridY + 2
		shown := 0
		for _, event := range byDay[i] {
			if !event.allDay || shown >= 2 {
				continue
			}
			bar := image.Rect(int(dayX), int(allDayY), int(dayX+availableW), int(allDayY+12))
			c.FillRect(bar, 180)
			c.DrawText(c.Truncate(event.title, availableW-4), dayX+2, allDayY+1, 0)
			allDayY += 14
			shown++
		}

		for _, event := range byDay[i] {
			if event.allDay {
				continue
			}
			eventHour := float64(event.start.Hour()) + float64(event.start.Minute())/60
			if eventHour < float64(w.startHour) || eventHour >= float64(w.endHour) {
				continue
			}

			eventY := gridY + (eventHour-float64(w.startHour))*hourHeight
			blockH := hourHeight * 0.9
			if blockH < 14 {
				blockH = 14
			}

			block := image.Rect(int(dayX), int(eventY+1), int(dayX+availableW), int(eventY+blockH))
			c.FillRect(block, 220)
			c.StrokeRect(block, 100, 1)
			c.DrawText(c.Truncate(event.title, availableW-4), dayX+2, eventY+2, 0)
		}
	}
}

func (w *CalendarWeek) drawCurrentTime(c *Canvas, now, weekStart time.Time, gridX, gridY, dayWidth, hourHeight float64) {
	currentHour := float64(now.Hour()) + float64(now.Minute())/60
	if currentHour < float64(w.startHour) || currentHour > float64(w.endHour) {
		return
	}

	day := int(now.Sub(weekStart).Hours() / 24)
	if day < 0 || day > 6 {
		return
	}

	y := gridY + (currentHour-float64(w.startHour))*hourHeight
	xStart := gridX + float64(day)*dayWidth
	xEnd := xStart + dayWidth

	ctx := c.Context()
	ctx.SetColor(color.Gray{Y: 0})
	ctx.DrawEllipse(xStart, y, 3, 3)
	ctx.Fill()
	c.DrawLine(xStart, y, xEnd, y, 0, 2)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
