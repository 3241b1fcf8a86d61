package ui

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

type fakeEPD struct {
	calls   []string
	drawn   image.Image
	initErr error
}

func (f *fakeEPD) Bounds() image.Rectangle { return DefaultLayout.Bounds() }

func (f *fakeEPD) Init() error {
	f.calls = append(f.calls, "init")
	return f.initErr
}

func (f *fakeEPD) Clear(c color.Color) error {
	f.calls = append(f.calls, "clear")
	return nil
}

func (f *fakeEPD) Draw(dstRect image.Rectangle, src image.Image, srcPts image.Point) error {
	f.calls = append(f.calls, "draw")
	f.drawn = src
	return nil
}

func (f *fakeEPD) Sleep() error {
	f.calls = append(f.calls, "sleep")
	return nil
}

func TestEPDRefreshModes(t *testing.T) {
	dev := &fakeEPD{}
	epd := &EPD{dev: dev}

	if err := epd.SetRefresh(RefreshFull); err != nil {
		t.Fatalf("SetRefresh(full) error = %v", err)
	}
	if err := epd.SetRefresh(RefreshQuick); err != nil {
		t.Fatalf("SetRefresh(quick) error = %v", err)
	}
	want := []string{"init", "clear"}
	if len(dev.calls) != len(want) || dev.calls[0] != want[0] || dev.calls[1] != want[1] {
		t.Errorf("calls = %v, want %v", dev.calls, want)
	}
}

func TestEPDQuickRefreshOnlyDraws(t *testing.T) {
	dev := &fakeEPD{}
	epd := &EPD{dev: dev}

	if err := epd.SetRefresh(RefreshQuick); err != nil {
		t.Fatalf("SetRefresh(quick) error = %v", err)
	}
	if err := epd.Push(image.NewGray(DefaultLayout.Bounds())); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if len(dev.calls) != 1 || dev.calls[0] != "draw" {
		t.Errorf("calls = %v, want [draw]", dev.calls)
	}
}

func TestEPDRefreshError(t *testing.T) {
	cause := errors.New("busy pin stuck")
	epd := &EPD{dev: &fakeEPD{initErr: cause}}
	if err := epd.SetRefresh(RefreshFull); !errors.Is(err, cause) {
		t.Errorf("SetRefresh(full) error = %v, want %v", err, cause)
	}
}

func TestEPDPushConvertsToOneBit(t *testing.T) {
	dev := &fakeEPD{}
	epd := &EPD{dev: dev}

	frame := image.NewGray(DefaultLayout.Bounds())
	blank(frame)
	frame.SetGray(5, 7, ink)
	if err := epd.Push(frame); err != nil {
		t.Fatalf("Push() error = %v", err)
	}

	img, ok := dev.drawn.(*image1bit.VerticalLSB)
	if !ok {
		t.Fatalf("drawn image is %T, want *image1bit.VerticalLSB", dev.drawn)
	}
	if img.BitAt(5, 7) != image1bit.Off {
		t.Error("ink pixel should be off")
	}
	if img.BitAt(6, 7) != image1bit.On {
		t.Error("paper pixel should be on")
	}
}

func TestEPDCloseSleeps(t *testing.T) {
	dev := &fakeEPD{}
	epd := &EPD{dev: dev}
	if err := epd.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if len(dev.calls) != 1 || dev.calls[0] != "sleep" {
		t.Errorf("calls = %v, want [sleep]", dev.calls)
	}
}
