package widget

import (
	"image"
	"strings"
)

// Tasks lists today's and overdue tasks from the task provider.
//
// Options:
//   - max_tasks: int (default 5)
//   - show_overdue: bool (default true)
//   - show_priority: bool (default true)
//   - show_project: bool (default false)
//   - compact: bool (default false)
type Tasks struct {
	maxTasks     int
	showOverdue  bool
	showPriority bool
	showProject  bool
	compact      bool
}

// Priority markers, 1 is highest.
var priorityMarkers = map[int]string{1: "!!!", 2: "!!", 3: "!"}

// NewTasks constructs a task list widget.
func NewTasks(opts Options) (Widget, error) {
	return &Tasks{
		maxTasks:     opts.Int("max_tasks", 5),
		showOverdue:  opts.Bool("show_overdue", true),
		showPriority: opts.Bool("show_priority", true),
		showProject:  opts.Bool("show_project", false),
		compact:      opts.Bool("compact", false),
	}, nil
}

func (w *Tasks) RequiredProvider() string { return "tasks" }

func (w *Tasks) Render(c *Canvas, bounds image.Rectangle, data map[string]any) error {
	if len(data) == 0 {
		c.NoData(bounds, "No tasks data")
		return nil
	}

	todayTasks := payloadList(data, "today_tasks")
	overdueTasks := payloadList(data, "overdue_tasks")

	x := float64(bounds.Min.X)
	y := float64(bounds.Min.Y)
	shown := 0

	if w.showOverdue && len(overdueTasks) > 0 {
		c.SetFont(14, true)
		c.DrawText("Overdue", x, y, 0)
		y += 18

		for _, task := range overdueTasks {
			if shown >= w.maxTasks {
				break
			}
			y = w.renderTask(c, bounds, task, y)
			shown++
		}
		y += 6
	}

	if len(todayTasks) > 0 && shown < w.maxTasks {
		header := "Tasks"
		if w.showOverdue && len(overdueTasks) > 0 {
			header = "Today"
		}
		c.SetFont(14, true)
		c.DrawText(header, x, y, 0)
		y += 18

		for _, task := range todayTasks {
			if shown >= w.maxTasks {
				break
			}
			y = w.renderTask(c, bounds, task, y)
			shown++
		}
	}

	if len(todayTasks) == 0 && len(overdueTasks) == 0 {
		c.SetFont(14, false)
		c.DrawText("All tasks complete!", x, float64(bounds.Min.Y)+20, 128)
	}

	return nil
}

// renderTask draws one task entry and returns the next y position.
func (w *Tasks) renderTask(c *Canvas, bounds image.Rectangle, task map[string]any, y float64) float64 {
	x := float64(bounds.Min.X)
	maxWidth := float64(bounds.Dx())

	title := payloadString(task, "title", "Untitled")
	priority := Options(task).Int("priority", 4)
	project := payloadString(task, "project", "")
	dueTime := payloadString(task, "due_time", "")

	prefix := ""
	if w.showPriority {
		if marker, ok := priorityMarkers[priority]; ok {
			prefix = marker + " "
		}
	}

	c.SetFont(13, false)
	line := c.Truncate("○ "+prefix+title, maxWidth)
	c.DrawText(line, x, y, 0)
	y += 17

	if !w.compact && (w.showProject || dueTime != "") {
		var details []string
		if dueTime != "" {
			details = append(details, dueTime)
		}
		if w.showProject && project != "" {
			details = append(details, project)
		}
		if len(details) > 0 {
			c.SetFont(11, false)
			detailText := c.Truncate(strings.Join(details, "  •  "), maxWidth-15)
			c.DrawText(detailText, x+15, y, 128)
			y += 14
		}
	}

	return y
}
