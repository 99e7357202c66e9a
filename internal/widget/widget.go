// Package widget defines the drawing contract every display widget
// implements and the registry that maps type names to constructors.
package widget

import (
	"image"
)

// Widget is a self-contained drawing unit. Render draws only within
// bounds; data is the payload of the widget's bound provider snapshot and
// may be nil or empty, in which case the widget paints its own "no data"
// placeholder rather than failing. Render must return errors instead of
// panicking; the renderer additionally guards against panics and turns
// either into a visible error region.
type Widget interface {
	Render(c *Canvas, bounds image.Rectangle, data map[string]any) error

	// RequiredProvider names the provider snapshot this widget wants when
	// its placement does not bind one explicitly. Empty means none.
	RequiredProvider() string
}

// Constructor builds a widget from its placement options. Constructors
// validate options so that malformed configuration fails at layout-load
// time, before any drawing happens.
type Constructor func(opts Options) (Widget, error)
