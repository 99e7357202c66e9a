// Package display drives what the e-ink panel shows: manual layout
// selection, timed layout rotation and the photo slideshow. All mode and
// position changes go through the state manager so the panel resumes
// where it left off after a restart.
package display

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/einkhub/renderer/internal/config"
	"github.com/einkhub/renderer/internal/imaging"
	"github.com/einkhub/renderer/internal/layout"
	"github.com/einkhub/renderer/internal/render"
	"github.com/einkhub/renderer/internal/snapshot"
	"github.com/einkhub/renderer/internal/state"
	"github.com/einkhub/renderer/pkg/models"
)

// ErrNoPhotos is returned when the slideshow has nothing to show.
var ErrNoPhotos = errors.New("no photos available")

// ErrEmptyRotation is returned when auto-rotate has no configured
// layout sequence.
var ErrEmptyRotation = errors.New("rotation sequence is empty")

// Sink receives finished frames. The production sink pushes them to the
// panel driver; tests and headless setups use LogSink.
type Sink interface {
	Send(ctx context.Context, imagePath, source string) error
}

// LogSink logs frames instead of sending them anywhere.
type LogSink struct {
	Logger *zap.Logger
}

func (s LogSink) Send(_ context.Context, imagePath, source string) error {
	s.Logger.Info("frame ready",
		zap.String("path", imagePath),
		zap.String("source", source))
	return nil
}

// Controller owns the display state machine.
type Controller struct {
	cfg       config.DisplayConfig
	outputDir string
	photosDir string
	renderer  *render.Renderer
	layouts   *layout.Store
	snapshots snapshot.Store
	state     *state.Manager
	sink      Sink
	logger    *zap.Logger

	now func() time.Time
}

// NewController wires the display state machine.
func NewController(cfg config.DisplayConfig, paths config.PathsConfig, renderer *render.Renderer, layouts *layout.Store, snapshots snapshot.Store, st *state.Manager, sink Sink, logger *zap.Logger) *Controller {
	return &Controller{
		cfg:       cfg,
		outputDir: paths.OutputDir,
		photosDir: paths.PhotosDir,
		renderer:  renderer,
		layouts:   layouts,
		snapshots: snapshots,
		state:     st,
		sink:      sink,
		logger:    logger,
		now:       time.Now,
	}
}

// State returns the current display state.
func (c *Controller) State() models.DisplayState {
	return c.state.Get()
}

// SetMode switches the display mode. The position counters are kept so
// switching away and back resumes where the mode left off.
func (c *Controller) SetMode(mode string) (models.DisplayState, error) {
	if !models.ValidMode(mode) {
		return c.state.Get(), fmt.Errorf("invalid mode %q", mode)
	}
	return c.state.Update(func(s *models.DisplayState) {
		s.Mode = mode
	})
}

// SetPaused stops or resumes automatic advancement. Manual operations
// still work while paused.
func (c *Controller) SetPaused(paused bool) (models.DisplayState, error) {
	return c.state.Update(func(s *models.DisplayState) {
		s.Paused = paused
	})
}

// ShowLayout renders the named layout immediately and records it as the
// current frame. It works in any mode and ignores the pause flag.
func (c *Controller) ShowLayout(ctx context.Context, name string) (models.DisplayState, error) {
	snaps, err := c.snapshots.All(ctx)
	if err != nil {
		return c.state.Get(), fmt.Errorf("failed to load snapshots: %w", err)
	}

	path, err := c.renderer.RenderLayout(name, snaps)
	if err != nil {
		return c.state.Get(), err
	}

	st, err := c.state.Update(func(s *models.DisplayState) {
		now := c.now().UTC()
		s.CurrentLayout = name
		s.CurrentImage = path
		s.LastUpdated = &now
	})
	if err != nil {
		return st, err
	}
	return st, c.sink.Send(ctx, path, "layout:"+name)
}

// Advance moves the display one step forward in its current mode:
// the next layout in the rotation sequence, or the next photo in the
// slideshow. In manual mode, or while paused, it does nothing.
func (c *Controller) Advance(ctx context.Context) (models.DisplayState, error) {
	st := c.state.Get()
	if st.Paused {
		return st, nil
	}

	switch st.Mode {
	case models.ModeAutoRotate:
		return c.advanceRotation(ctx, st)
	case models.ModePhotoSlideshow:
		return c.advancePhoto(ctx, st)
	default:
		return st, nil
	}
}

func (c *Controller) advanceRotation(ctx context.Context, st models.DisplayState) (models.DisplayState, error) {
	seq := c.layouts.RotationSequence()
	if len(seq) == 0 {
		return st, ErrEmptyRotation
	}

	next := (st.RotationIndex + 1) % len(seq)
	name := seq[next]

	snaps, err := c.snapshots.All(ctx)
	if err != nil {
		return st, fmt.Errorf("failed to load snapshots: %w", err)
	}
	path, err := c.renderer.RenderLayout(name, snaps)
	if err != nil {
		return st, err
	}

	updated, err := c.state.Update(func(s *models.DisplayState) {
		now := c.now().UTC()
		s.RotationIndex = next
		s.CurrentLayout = name
		s.CurrentImage = path
		s.LastUpdated = &now
	})
	if err != nil {
		return updated, err
	}
	return updated, c.sink.Send(ctx, path, "layout:"+name)
}

func (c *Controller) advancePhoto(ctx context.Context, st models.DisplayState) (models.DisplayState, error) {
	photos, err := imaging.ListPhotos(c.photosDir)
	if err != nil {
		return st, fmt.Errorf("failed to list photos: %w", err)
	}
	if len(photos) == 0 {
		return st, ErrNoPhotos
	}

	next := (st.PhotoIndex + 1) % len(photos)
	return c.showPhotoIndex(ctx, photos, next)
}

// ShowPhoto displays the photo at index immediately, wrapping the index
// into range. It works regardless of mode or pause state.
func (c *Controller) ShowPhoto(ctx context.Context, index int) (models.DisplayState, error) {
	photos, err := imaging.ListPhotos(c.photosDir)
	if err != nil {
		return c.state.Get(), fmt.Errorf("failed to list photos: %w", err)
	}
	if len(photos) == 0 {
		return c.state.Get(), ErrNoPhotos
	}

	index %= len(photos)
	if index < 0 {
		index += len(photos)
	}
	return c.showPhotoIndex(ctx, photos, index)
}

func (c *Controller) showPhotoIndex(ctx context.Context, photos []models.PhotoInfo, index int) (models.DisplayState, error) {
	photo := photos[index]

	processed, err := imaging.ProcessFile(photo.Path, c.cfg.PhotoRotation, imaging.FitMode(c.cfg.PhotoFitMode), c.cfg.Width, c.cfg.Height)
	if err != nil {
		return c.state.Get(), fmt.Errorf("failed to process photo %s: %w", photo.Filename, err)
	}

	path := filepath.Join(c.outputDir, "photo.png")
	if err := imaging.SavePNG(processed.Mono, path); err != nil {
		return c.state.Get(), fmt.Errorf("failed to save photo frame: %w", err)
	}

	c.logger.Info("prepared photo frame",
		zap.String("photo", photo.Filename),
		zap.Int("index", index))

	st, err := c.state.Update(func(s *models.DisplayState) {
		now := c.now().UTC()
		s.PhotoIndex = index
		s.CurrentLayout = ""
		s.CurrentImage = path
		s.LastUpdated = &now
	})
	if err != nil {
		return st, err
	}
	return st, c.sink.Send(ctx, path, "photo:"+photo.Filename)
}
