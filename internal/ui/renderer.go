package ui

import (
	"context"
	"fmt"
	"image"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/inkquest/internal/entity"
	"github.com/samdwyer/inkquest/internal/gamedata"
	"github.com/samdwyer/inkquest/internal/telemetry"
)

// Footer labels.
const (
	LabelBattle   = "Battle"
	LabelOverview = "Overview"
)

// barWidth is the outer width of the HP and MP gauges.
const barWidth = 80

// RenderError reports a frame that could not be shown.
type RenderError struct {
	Screen Screen
	Mode   RefreshMode
	Op     string // "refresh", "draw" or "push"
	Err    error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	return fmt.Sprintf("ui: render %s (%s refresh): %s: %v", e.Screen, e.Mode, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *RenderError) Unwrap() error { return e.Err }

// FillWidth returns the filled part of a gauge width pixels wide, rounded to
// the nearest pixel and clamped to [0, width]. A zero max gives an empty
// gauge.
func FillWidth(cur, max uint32, width int) int {
	if max == 0 || width <= 0 {
		return 0
	}
	if cur >= max {
		return width
	}
	w := (uint64(cur)*uint64(width)*2 + uint64(max)) / (2 * uint64(max))
	return int(w)
}

// Renderer draws screens into a frame buffer and pushes them to a panel.
type Renderer struct {
	panel   Panel
	layout  Layout
	sprites gamedata.Sprites
	frame   *image.Gray
}

// NewRenderer creates a renderer for the given panel.
func NewRenderer(panel Panel, layout Layout, sprites gamedata.Sprites) *Renderer {
	return &Renderer{
		panel:   panel,
		layout:  layout,
		sprites: sprites,
		frame:   image.NewGray(layout.Bounds()),
	}
}

// Render draws screen s for character c and shows it with the given refresh
// mode. The footer is drawn on every screen. Failures are returned as
// *RenderError and are not retried.
func (r *Renderer) Render(ctx context.Context, mode RefreshMode, s Screen, c entity.Character) error {
	_, span := telemetry.Tracer("ui").Start(ctx, "ui.render",
		trace.WithAttributes(
			attribute.String("ui.screen", s.String()),
			attribute.String("ui.refresh", mode.String()),
		),
	)
	defer span.End()

	err := r.render(mode, s, c)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *Renderer) render(mode RefreshMode, s Screen, c entity.Character) error {
	if err := r.panel.SetRefresh(mode); err != nil {
		return &RenderError{Screen: s, Mode: mode, Op: "refresh", Err: err}
	}

	blank(r.frame)
	switch s {
	case ScreenOverview:
		r.drawOverview(c)
	case ScreenBattle:
		r.drawBattle(c)
	default:
		return &RenderError{Screen: s, Mode: mode, Op: "draw", Err: fmt.Errorf("unknown screen %d", int(s))}
	}
	r.drawFooter(s)

	if err := r.panel.Push(r.frame); err != nil {
		return &RenderError{Screen: s, Mode: mode, Op: "push", Err: err}
	}
	return nil
}

// drawOverview draws the character sheet.
func (r *Renderer) drawOverview(c entity.Character) {
	img := r.frame
	w := r.layout.Width

	sprite(img, image.Pt(4, 4), r.sprites.Portrait)
	text(img, 56, 16, c.Name, ink, w-58)
	text(img, 56, 30, c.Class, ink, w-58)
	text(img, 56, 44, fmt.Sprintf("Lv %d", c.Level), ink, w-58)
	text(img, 4, 68, fmt.Sprintf("XP %d", c.Experience), ink, w-8)

	gauges := []struct {
		label    string
		cur, max uint32
		y        int
	}{
		{"HP", c.HP, c.MaxHP, 78},
		{"MP", c.MP, c.MaxMP, 112},
	}
	for _, g := range gauges {
		text(img, 4, g.y+10, g.label, ink, 20)
		bar(img, image.Rect(24, g.y, 24+barWidth, g.y+12), g.cur, g.max)
		text(img, 24, g.y+26, fmt.Sprintf("%d/%d", g.cur, g.max), ink, w-28)
	}

	// Inventory, as many lines as fit above the footer.
	y := 160
	text(img, 4, y, "Items", ink, w-8)
	for _, item := range c.Inventory {
		y += 13
		if y > r.layout.FooterY-3 {
			break
		}
		text(img, 10, y, item, ink, w-14)
	}
}

// drawBattle draws the battle scene.
func (r *Renderer) drawBattle(c entity.Character) {
	img := r.frame
	w := r.layout.Width

	sprite(img, image.Pt(w-48, 24), r.sprites.Enemy)
	text(img, w-52, 80, "Slime", ink, 50)

	centerText(img, r.layout.Content(), 104, "VS", ink)

	sprite(img, image.Pt(8, 120), r.sprites.Hero)
	text(img, 8, 176, c.Name, ink, w-16)
	hline(img, 4, w-5, 186, ink)
}

// drawFooter draws the tab bar. The tab of the active screen is inverted.
func (r *Renderer) drawFooter(active Screen) {
	img := r.frame
	l := r.layout

	tabs := []struct {
		rect   image.Rectangle
		label  string
		screen Screen
	}{
		{l.BattleTab(), LabelBattle, ScreenBattle},
		{l.OverviewTab(), LabelOverview, ScreenOverview},
	}
	baseline := l.FooterY + (l.Height-l.FooterY)/2 + 5
	for _, tab := range tabs {
		fg := ink
		if tab.screen == active {
			fillRect(img, tab.rect, ink)
			fg = paper
		}
		centerText(img, tab.rect, baseline, tab.label, fg)
	}

	hline(img, 0, l.Width-1, l.FooterY, ink)
	hline(img, 0, l.Width-1, l.Height-1, ink)
	vline(img, 0, l.FooterY, l.Height-1, ink)
	vline(img, l.Width-1, l.FooterY, l.Height-1, ink)
	vline(img, l.SplitX, l.FooterY, l.Height-1, ink)
}
