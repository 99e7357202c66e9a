package widget

import (
	"image"
	"testing"
)

func TestCanvas(t *testing.T) {
	t.Run("background fill", func(t *testing.T) {
		c := NewCanvas(50, 40, 0)
		img := c.Image()
		if img.Bounds().Dx() != 50 || img.Bounds().Dy() != 40 {
			t.Fatalf("canvas = %v, want 50x40", img.Bounds())
		}
		r, _, _, _ := img.At(25, 20).RGBA()
		if r != 0 {
			t.Errorf("background not black: %d", r)
		}
	})

	t.Run("no data placeholder stays inside bounds", func(t *testing.T) {
		c := NewCanvas(400, 300, 255)
		bounds := image.Rect(100, 100, 300, 200)
		c.NoData(bounds, "No data")

		if !regionTouched(c.Image(), bounds) {
			t.Error("placeholder painted nothing")
		}
		// Regions well clear of the bounds stay untouched.
		if regionTouched(c.Image(), image.Rect(0, 0, 80, 80)) {
			t.Error("placeholder leaked outside bounds")
		}
	})

	t.Run("fill and stroke rect", func(t *testing.T) {
		c := NewCanvas(100, 100, 255)
		c.FillRect(image.Rect(10, 10, 30, 30), 0)
		r, _, _, _ := c.Image().At(20, 20).RGBA()
		if r != 0 {
			t.Error("FillRect did not fill")
		}

		c.StrokeRect(image.Rect(50, 50, 90, 90), 0, 2)
		if !regionTouched(c.Image(), image.Rect(48, 48, 92, 54)) {
			t.Error("StrokeRect did not stroke")
		}
		if regionTouched(c.Image(), image.Rect(60, 60, 80, 80)) {
			t.Error("StrokeRect filled the interior")
		}
	})
}

func TestCanvasTruncate(t *testing.T) {
	c := NewCanvas(100, 50, 255)
	c.SetFont(14, false)

	t.Run("short text unchanged", func(t *testing.T) {
		if got := c.Truncate("hi", 90); got != "hi" {
			t.Errorf("got %q, want hi", got)
		}
	})

	t.Run("long text shortened with ellipsis", func(t *testing.T) {
		long := "this is a very long line that cannot possibly fit"
		got := c.Truncate(long, 80)
		if got == long {
			t.Fatal("text was not truncated")
		}
		if len(got) < 3 || got[len(got)-3:] != "..." {
			t.Errorf("missing ellipsis suffix: %q", got)
		}
		if w, _ := c.MeasureText(got); w > 80 {
			t.Errorf("truncated text still %0.f wide, want <= 80", w)
		}
	})
}

func TestOptions(t *testing.T) {
	opts := Options{
		"name":    "value",
		"count":   3,
		"ratio":   2.5,
		"enabled": true,
		"numeric": "17",
	}

	if got := opts.String("name", "d"); got != "value" {
		t.Errorf("String = %q", got)
	}
	if got := opts.String("missing", "d"); got != "d" {
		t.Errorf("String default = %q", got)
	}
	if got := opts.Int("count", 0); got != 3 {
		t.Errorf("Int = %d", got)
	}
	if got := opts.Int("ratio", 0); got != 2 {
		t.Errorf("Int from float = %d", got)
	}
	if got := opts.Int("numeric", 0); got != 17 {
		t.Errorf("Int from string = %d", got)
	}
	if got := opts.Bool("enabled", false); !got {
		t.Error("Bool = false")
	}
	if got := opts.Bool("name", true); !got {
		t.Error("Bool wrong-type should default")
	}
}

func TestPayloadHelpers(t *testing.T) {
	payload := map[string]any{
		"temp":  72.4,
		"count": 3,
		"items": []any{
			map[string]any{"title": "one"},
			"not a map",
			map[string]any{"title": "two"},
		},
	}

	if v, ok := payloadFloat(payload, "temp"); !ok || v != 72.4 {
		t.Errorf("payloadFloat = %v, %v", v, ok)
	}
	if v, ok := payloadFloat(payload, "count"); !ok || v != 3 {
		t.Errorf("payloadFloat int = %v, %v", v, ok)
	}
	if got := payloadNumber(payload, "missing"); got != "--" {
		t.Errorf("payloadNumber missing = %q, want --", got)
	}
	if got := payloadNumber(payload, "temp"); got != "72.4" {
		t.Errorf("payloadNumber = %q, want 72.4", got)
	}

	items := payloadList(payload, "items")
	if len(items) != 2 {
		t.Fatalf("payloadList = %d entries, want 2 (non-maps skipped)", len(items))
	}
	if items[1]["title"] != "two" {
		t.Errorf("wrong entry order: %v", items)
	}
}
