// Package game runs the touch polling loop and the screen state machine.
package game

import (
	"context"
	"errors"
	"image"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/inkquest/internal/bus"
	"github.com/samdwyer/inkquest/internal/entity"
	"github.com/samdwyer/inkquest/internal/gamedata"
	"github.com/samdwyer/inkquest/internal/telemetry"
	"github.com/samdwyer/inkquest/internal/touch"
	"github.com/samdwyer/inkquest/internal/ui"
)

// DefaultPollInterval is the wait between two polls when none is configured.
const DefaultPollInterval = 200 * time.Millisecond

// Options configures a Game.
type Options struct {
	Bus          bus.Bus
	Panel        ui.Panel
	Layout       ui.Layout
	Sprites      gamedata.Sprites
	Character    entity.Character
	PollInterval time.Duration
	Logger       logr.Logger
}

// Game holds the entire game state.
type Game struct {
	bus       bus.Bus
	renderer  *ui.Renderer
	layout    ui.Layout
	character entity.Character
	screen    ui.Screen
	filter    touch.State
	interval  time.Duration
	log       logr.Logger
}

// New creates a game showing the overview screen.
func New(opts Options) (*Game, error) {
	if opts.Bus == nil {
		return nil, errors.New("game: touch bus is required")
	}
	if opts.Panel == nil {
		return nil, errors.New("game: display panel is required")
	}
	if opts.Layout == (ui.Layout{}) {
		opts.Layout = ui.DefaultLayout
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.Logger.GetSink() == nil {
		opts.Logger = logr.Discard()
	}

	return &Game{
		bus:       opts.Bus,
		renderer:  ui.NewRenderer(opts.Panel, opts.Layout, opts.Sprites),
		layout:    opts.Layout,
		character: opts.Character.Clone(),
		screen:    ui.ScreenOverview,
		interval:  opts.PollInterval,
		log:       opts.Logger,
	}, nil
}

// Screen returns the screen currently shown.
func (g *Game) Screen() ui.Screen { return g.screen }

// Character returns the character snapshot the game displays.
func (g *Game) Character() entity.Character { return g.character.Clone() }

// Start draws the initial screen with a full refresh.
func (g *Game) Start(ctx context.Context) error {
	ctx, span := telemetry.Tracer("game").Start(ctx, "game.init")
	defer span.End()

	span.SetAttributes(
		attribute.String("character.name", g.character.Name),
		attribute.String("game.screen", g.screen.String()),
		attribute.Int64("game.poll_interval_ms", g.interval.Milliseconds()),
	)
	g.log.Info("starting", "character", g.character.Name, "screen", g.screen.String(), "pollInterval", g.interval)
	return g.renderer.Render(ctx, ui.RefreshFull, g.screen, g.character)
}

// StepResult describes what a single poll cycle did.
type StepResult struct {
	Touched  bool          // A new touch event was accepted
	Contact  touch.Contact // The accepted contact, controller coordinates
	Point    image.Point   // The accepted contact, display coordinates
	Region   Region        // Region hit by the touch
	Changed  bool          // The screen changed
	Rendered bool          // The new screen was pushed to the panel
}

// Step runs one poll cycle: poll, filter, translate, transition and, if the
// screen changed, render it with a quick refresh.
//
// Poll failures count as "no touch" for the cycle. Render failures are not
// retried. Both are logged and returned.
func (g *Game) Step(ctx context.Context) (StepResult, error) {
	var res StepResult

	report, err := touch.Poll(ctx, g.bus)
	if err != nil {
		if errors.Is(err, touch.ErrDecode) {
			g.log.V(1).Info("discarding touch sample", "error", err.Error())
		} else {
			g.log.Error(err, "poll touch controller")
		}
		return res, err
	}

	contact, ok, state := touch.Accept(report, g.filter)
	g.filter = state
	if !ok {
		return res, nil
	}

	res.Touched = true
	res.Contact = contact
	res.Point = Translate(contact, g.layout)

	next, region, _ := transition(ctx, g.screen, res.Point, g.layout)
	res.Region = region
	g.log.V(1).Info("touch", "x", res.Point.X, "y", res.Point.Y, "region", region.ID.String())
	if next == g.screen {
		return res, nil
	}

	g.log.Info("switching screen", "from", g.screen.String(), "to", next.String())
	g.screen = next
	res.Changed = true

	if err := g.renderer.Render(ctx, ui.RefreshQuick, g.screen, g.character); err != nil {
		g.log.Error(err, "render screen", "screen", g.screen.String())
		return res, err
	}
	res.Rendered = true
	return res, nil
}

// Run draws the initial screen and then polls at a fixed interval until ctx
// is done. Errors of single cycles are logged and never end the loop.
func (g *Game) Run(ctx context.Context) error {
	if err := g.Start(ctx); err != nil {
		g.log.Error(err, "initial render")
	}

	wait := time.NewTimer(g.interval)
	defer wait.Stop()

	for {
		_, _ = g.Step(ctx)

		wait.Reset(g.interval)
		select {
		case <-ctx.Done():
			return nil
		case <-wait.C:
		}
	}
}
