package widget

import (
	"fmt"
	"image"

	"github.com/einkhub/renderer/internal/imaging"
)

// PhotoFrame displays a photo from the photo directory, processed through
// the e-ink pipeline (rotation, fit/fill, dithering). Which photo is
// shown follows the photo_index field of the bound snapshot, so the
// display controller decides the cycling; the widget itself is stateless.
//
// Options:
//   - photos_dir: string (default "uploads")
//   - fit_mode: "fit" | "fill" (default "fit")
//   - rotation: int, one of 0/90/180/270 (default 0)
//   - show_filename: bool (default false)
type PhotoFrame struct {
	photosDir    string
	fitMode      imaging.FitMode
	rotation     int
	showFilename bool
}

// NewPhotoFrame constructs a photo frame widget.
func NewPhotoFrame(opts Options) (Widget, error) {
	fitMode := opts.String("fit_mode", "fit")
	if !imaging.ValidFitMode(fitMode) {
		return nil, fmt.Errorf("invalid fit_mode %q (must be fit or fill)", fitMode)
	}
	rotation := opts.Int("rotation", 0)
	switch rotation {
	case 0, 90, 180, 270:
	default:
		return nil, fmt.Errorf("invalid rotation %d (must be 0, 90, 180 or 270)", rotation)
	}
	return &PhotoFrame{
		photosDir:    opts.String("photos_dir", "uploads"),
		fitMode:      imaging.FitMode(fitMode),
		rotation:     rotation,
		showFilename: opts.Bool("show_filename", false),
	}, nil
}

func (w *PhotoFrame) RequiredProvider() string { return "photos" }

func (w *PhotoFrame) Render(c *Canvas, bounds image.Rectangle, data map[string]any) error {
	photos, err := imaging.ListPhotos(w.photosDir)
	if err != nil || len(photos) == 0 {
		c.NoData(bounds, "No photos available")
		return nil
	}

	index := 0
	if v, ok := payloadFloat(data, "photo_index"); ok {
		index = int(v) % len(photos)
		if index < 0 {
			index += len(photos)
		}
	}
	photo := photos[index]

	processed, err := imaging.ProcessFile(photo.Path, w.rotation, w.fitMode, bounds.Dx(), bounds.Dy())
	if err != nil {
		// The pipeline surfaces corrupt sources; the widget contains them.
		c.NoData(bounds, "Photo unreadable")
		return nil
	}

	c.DrawImage(processed.Mono, bounds.Min.X, bounds.Min.Y)

	if w.showFilename {
		textY := float64(bounds.Max.Y - 20)
		c.FillRect(image.Rect(bounds.Min.X, int(textY)-2, bounds.Max.X, bounds.Max.Y), 255)
		c.SetFont(12, false)
		c.DrawText(photo.Filename, float64(bounds.Min.X)+5, textY, 0)
	}

	return nil
}
