// Package ui draws the game screens and pushes them to a display panel.
package ui

// Screen identifies which screen is shown.
type Screen int

const (
	// ScreenOverview shows the character sheet. It is the startup screen.
	ScreenOverview Screen = iota
	// ScreenBattle shows the battle scene.
	ScreenBattle
)

// String returns a human-readable screen name.
func (s Screen) String() string {
	switch s {
	case ScreenOverview:
		return "overview"
	case ScreenBattle:
		return "battle"
	default:
		return "unknown"
	}
}
