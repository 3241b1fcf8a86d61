package ui

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/devices/v3/waveshare2in13v4"
)

// epdDevice is the part of the Waveshare driver the panel uses.
type epdDevice interface {
	Bounds() image.Rectangle
	Init() error
	Clear(c color.Color) error
	Draw(dstRect image.Rectangle, src image.Image, srcPts image.Point) error
	Sleep() error
}

// EPD is the 2.13" Waveshare e-paper HAT.
type EPD struct {
	dev  epdDevice
	port spi.PortCloser
	mode RefreshMode
}

// OpenEPD opens the HAT on the given SPI port ("" for the first one). The
// host drivers must already be initialized.
func OpenEPD(spiPort string) (*EPD, error) {
	port, err := spireg.Open(spiPort)
	if err != nil {
		return nil, fmt.Errorf("open spi port %q: %w", spiPort, err)
	}

	opts := waveshare2in13v4.EPD2in13v4
	dev, err := waveshare2in13v4.NewHat(port, &opts)
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("open e-paper hat: %w", err)
	}
	return &EPD{dev: dev, port: port, mode: RefreshFull}, nil
}

// Bounds implements Panel.
func (e *EPD) Bounds() image.Rectangle {
	return e.dev.Bounds()
}

// SetRefresh implements Panel. A full refresh reinitializes the controller
// and clears the panel to white right away.
func (e *EPD) SetRefresh(mode RefreshMode) error {
	e.mode = mode
	if mode != RefreshFull {
		// The driver has no partial update mode; quick frames use the regular Draw.
		return nil
	}
	if err := e.dev.Init(); err != nil {
		return fmt.Errorf("init e-paper: %w", err)
	}
	if err := e.dev.Clear(color.White); err != nil {
		return fmt.Errorf("clear e-paper: %w", err)
	}
	return nil
}

// Push implements Panel. The frame is converted to the panel's 1-bit
// format first.
func (e *EPD) Push(img image.Image) error {
	b := e.dev.Bounds()
	frame := image1bit.NewVerticalLSB(b)
	draw.Draw(frame, b, img, img.Bounds().Min, draw.Src)
	if err := e.dev.Draw(b, frame, image.Point{}); err != nil {
		return fmt.Errorf("draw e-paper (%s): %w", e.mode, err)
	}
	return nil
}

// Close puts the panel into deep sleep and releases the SPI port.
func (e *EPD) Close() error {
	sleepErr := e.dev.Sleep()
	if e.port == nil {
		return sleepErr
	}
	if err := e.port.Close(); err != nil && sleepErr == nil {
		return err
	}
	return sleepErr
}

var _ Panel = (*EPD)(nil)
