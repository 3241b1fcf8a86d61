package ui

import "image"

// RefreshMode selects how the panel updates.
type RefreshMode int

const (
	// RefreshFull reinitializes and clears the panel before drawing. Slow,
	// removes ghosting.
	RefreshFull RefreshMode = iota
	// RefreshQuick draws over the current contents.
	RefreshQuick
)

// String returns the mode name.
func (m RefreshMode) String() string {
	switch m {
	case RefreshFull:
		return "full"
	case RefreshQuick:
		return "quick"
	default:
		return "unknown"
	}
}

// Panel is a display that shows a whole frame at a time.
type Panel interface {
	// Bounds returns the panel area in pixels.
	Bounds() image.Rectangle
	// SetRefresh selects the refresh mode for the next Push.
	SetRefresh(mode RefreshMode) error
	// Push shows img on the panel.
	Push(img image.Image) error
}
