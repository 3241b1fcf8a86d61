package ui

import "image"

// Layout describes the panel geometry in display pixels.
type Layout struct {
	Width, Height int // Panel size
	FooterY       int // Top edge of the tab footer
	SplitX        int // Divider between the two tabs
}

// DefaultLayout matches the 2.13" e-paper panel in portrait orientation.
var DefaultLayout = Layout{
	Width:   122,
	Height:  250,
	FooterY: 200,
	SplitX:  60,
}

// Bounds returns the full panel rectangle.
func (l Layout) Bounds() image.Rectangle {
	return image.Rect(0, 0, l.Width, l.Height)
}

// Content returns the area above the footer.
func (l Layout) Content() image.Rectangle {
	return image.Rect(0, 0, l.Width, l.FooterY)
}

// BattleTab returns the left half of the footer.
func (l Layout) BattleTab() image.Rectangle {
	return image.Rect(0, l.FooterY, l.SplitX, l.Height)
}

// OverviewTab returns the right half of the footer.
func (l Layout) OverviewTab() image.Rectangle {
	return image.Rect(l.SplitX, l.FooterY, l.Width, l.Height)
}
