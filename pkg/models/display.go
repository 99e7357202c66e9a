package models

import "time"

// Display modes.
const (
	ModeManual         = "manual"
	ModeAutoRotate     = "auto_rotate"
	ModePhotoSlideshow = "photo_slideshow"
)

// ValidMode reports whether mode is one of the known display modes.
func ValidMode(mode string) bool {
	switch mode {
	case ModeManual, ModeAutoRotate, ModePhotoSlideshow:
		return true
	}
	return false
}

// DisplayState tracks what the panel is currently showing. It is loaded
// once at startup, mutated by render/rotate operations and persisted
// after every mutation so it survives restarts.
type DisplayState struct {
	CurrentLayout string     `json:"current_layout,omitempty"`
	CurrentImage  string     `json:"current_image,omitempty"`
	LastUpdated   *time.Time `json:"last_updated,omitempty"`
	Mode          string     `json:"mode"`
	RotationIndex int        `json:"rotation_index"`
	PhotoIndex    int        `json:"photo_index"`
	Paused        bool       `json:"paused"`
}

// DefaultDisplayState returns the state used when nothing was persisted.
func DefaultDisplayState() DisplayState {
	return DisplayState{Mode: ModeManual}
}
