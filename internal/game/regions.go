package game

import (
	"context"
	"image"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/inkquest/internal/telemetry"
	"github.com/samdwyer/inkquest/internal/touch"
	"github.com/samdwyer/inkquest/internal/ui"
)

// RegionID tags a touch sensitive area.
type RegionID int

const (
	RegionNone RegionID = iota
	RegionBattleTab
	RegionOverviewTab
)

// String returns the region name.
func (r RegionID) String() string {
	switch r {
	case RegionNone:
		return "none"
	case RegionBattleTab:
		return "battle_tab"
	case RegionOverviewTab:
		return "overview_tab"
	default:
		return "unknown"
	}
}

// Region is a touch sensitive area and the screen it leads to.
type Region struct {
	ID     RegionID
	Target ui.Screen
	match  func(p image.Point, l ui.Layout) bool
}

// Contains reports whether p falls inside the region.
func (r Region) Contains(p image.Point, l ui.Layout) bool {
	return r.match(p, l)
}

// regions lists the touch areas in priority order.
var regions = []Region{
	{
		ID:     RegionBattleTab,
		Target: ui.ScreenBattle,
		match: func(p image.Point, l ui.Layout) bool {
			return p.X < l.SplitX && p.Y > l.FooterY
		},
	},
	{
		ID:     RegionOverviewTab,
		Target: ui.ScreenOverview,
		match: func(p image.Point, l ui.Layout) bool {
			return p.X >= l.SplitX && p.Y > l.FooterY
		},
	},
}

// Regions returns the touch areas in priority order.
func Regions() []Region {
	return slices.Clone(regions)
}

// Translate maps a contact from controller coordinates to display
// coordinates. Both axes of the controller are mirrored with respect to the
// panel.
func Translate(c touch.Contact, l ui.Layout) image.Point {
	return image.Pt(l.Width-int(c.X), l.Height-int(c.Y))
}

// ToController is the inverse of Translate. Points outside the controller
// range are clamped.
func ToController(p image.Point, l ui.Layout) (x, y uint16) {
	return clampAxis(l.Width - p.X), clampAxis(l.Height - p.Y)
}

func clampAxis(v int) uint16 {
	switch {
	case v < 0:
		return 0
	case v > 0xFFFF:
		return 0xFFFF
	default:
		return uint16(v)
	}
}

// Transition returns the screen shown after a touch at display point p. The
// first region containing p wins; touches elsewhere leave the screen as is.
func Transition(current ui.Screen, p image.Point, l ui.Layout) (ui.Screen, Region, bool) {
	for _, r := range regions {
		if r.Contains(p, l) {
			return r.Target, r, true
		}
	}
	return current, Region{ID: RegionNone, Target: current}, false
}

// transition wraps Transition in a span.
func transition(ctx context.Context, current ui.Screen, p image.Point, l ui.Layout) (ui.Screen, Region, bool) {
	_, span := telemetry.Tracer("game").Start(ctx, "game.transition")
	defer span.End()

	next, region, hit := Transition(current, p, l)
	span.SetAttributes(
		attribute.Int("touch.x", p.X),
		attribute.Int("touch.y", p.Y),
		attribute.String("game.region", region.ID.String()),
		attribute.String("game.screen.from", current.String()),
		attribute.String("game.screen.to", next.String()),
	)
	return next, region, hit
}
