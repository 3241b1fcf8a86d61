// Package main is the entry point for InkQuest.
package main

import (
	"context"
	"fmt"
	"image"
	"log"

	"github.com/go-logr/logr"
	"github.com/joho/godotenv"
	"periph.io/x/host/v3"

	"github.com/samdwyer/inkquest/internal/bus"
	"github.com/samdwyer/inkquest/internal/entity"
	"github.com/samdwyer/inkquest/internal/game"
	"github.com/samdwyer/inkquest/internal/gamedata"
	"github.com/samdwyer/inkquest/internal/storage"
	"github.com/samdwyer/inkquest/internal/telemetry"
	"github.com/samdwyer/inkquest/internal/touch"
	"github.com/samdwyer/inkquest/internal/ui"
)

// simulatedPressure is reported for mouse presses in terminal mode.
const simulatedPressure = 30

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	if err := run(); err != nil {
		log.Fatalf("inkquest: %v", err)
	}
}

func run() error {
	cfg, err := game.LoadConfig()
	if err != nil {
		return err
	}
	logger := telemetry.NewLogger(cfg.Verbosity)

	ctx := context.Background()
	if cfg.Telemetry {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			// Continue without telemetry - the device still works
			logger.Error(err, "telemetry setup failed, running without observability")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error(err, "shutting down telemetry")
				}
			}()
		}
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer closeLogged(logger, "store", store.Close)

	seed, err := entity.LoadSeed()
	if err != nil {
		return fmt.Errorf("load seed character: %w", err)
	}
	character, seeded, err := game.LoadOrSeed(ctx, store, seed)
	if err != nil {
		return fmt.Errorf("load character: %w", err)
	}
	logger.Info("character ready", "name", character.Name, "seeded", seeded, "db", store.Path())

	sprites, err := gamedata.LoadSprites()
	if err != nil {
		return fmt.Errorf("load sprites: %w", err)
	}

	layout := ui.DefaultLayout
	var (
		touchBus bus.Bus
		panel    ui.Panel
	)
	switch cfg.Display {
	case game.DisplayEPD:
		if _, err := host.Init(); err != nil {
			return fmt.Errorf("init host drivers: %w", err)
		}
		dev, err := bus.OpenI2C(cfg.I2CBus, bus.GoodixAddress)
		if err != nil {
			return err
		}
		defer closeLogged(logger, "touch controller", dev.Close)

		epd, err := ui.OpenEPD(cfg.SPIPort)
		if err != nil {
			return err
		}
		defer closeLogged(logger, "e-paper panel", epd.Close)

		logger.Info("hardware ready", "touch", dev.String(), "spi", cfg.SPIPort)
		touchBus, panel = dev, epd

	case game.DisplayTerminal:
		theme, err := gamedata.LoadTheme()
		if err != nil {
			return fmt.Errorf("load theme: %w", err)
		}
		term, err := ui.NewTerminal(layout, theme)
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		defer term.Close()

		sim := touch.NewSimulator()
		term.OnPress = func(p image.Point) {
			x, y := game.ToController(p, layout)
			sim.Press(x, y, simulatedPressure)
		}
		term.OnRelease = sim.Release
		go term.Run()

		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		defer cancel()
		go func() {
			<-term.Done()
			cancel()
		}()

		touchBus, panel = sim, term
	}

	g, err := game.New(game.Options{
		Bus:          touchBus,
		Panel:        panel,
		Layout:       layout,
		Sprites:      sprites,
		Character:    character,
		PollInterval: cfg.PollInterval,
		Logger:       logger,
	})
	if err != nil {
		return err
	}
	return g.Run(ctx)
}

func closeLogged(logger logr.Logger, name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		logger.Error(err, "close", "resource", name)
	}
}
