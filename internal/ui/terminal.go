package ui

import (
	"image"
	"image/color"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/inkquest/internal/gamedata"
)

// Each terminal cell shows a block of cellWidth x cellHeight panel pixels,
// split into an upper and a lower half.
const (
	cellWidth  = 2
	cellHeight = 4
)

// Terminal shows the panel in a terminal using half-block characters and
// turns mouse presses into touches.
type Terminal struct {
	screen tcell.Screen
	layout Layout

	ink   tcell.Color
	paper tcell.Color

	// OnPress is called with the panel pixel under the mouse while the
	// primary button is held. OnRelease is called when it is let go.
	OnPress   func(p image.Point)
	OnRelease func()

	mu      sync.Mutex
	pressed bool

	done     chan struct{}
	doneOnce sync.Once
}

// NewTerminal creates and initializes a terminal panel.
func NewTerminal(layout Layout, theme gamedata.Theme) (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalScreen(s, layout, theme)
}

// NewTerminalScreen wraps an existing tcell screen, e.g. a simulation screen.
func NewTerminalScreen(s tcell.Screen, layout Layout, theme gamedata.Theme) (*Terminal, error) {
	inkColor, err := gamedata.ParseHexColor(theme.Ink)
	if err != nil {
		return nil, err
	}
	paperColor, err := gamedata.ParseHexColor(theme.Paper)
	if err != nil {
		return nil, err
	}
	borderColor, err := gamedata.ParseHexColor(theme.Border)
	if err != nil {
		return nil, err
	}

	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(borderColor).Foreground(borderColor))
	s.EnableMouse()
	s.Clear()

	return &Terminal{
		screen: s,
		layout: layout,
		ink:    inkColor,
		paper:  paperColor,
		done:   make(chan struct{}),
	}, nil
}

// Bounds implements Panel.
func (t *Terminal) Bounds() image.Rectangle {
	return t.layout.Bounds()
}

// SetRefresh implements Panel. A full refresh repaints the whole terminal.
func (t *Terminal) SetRefresh(mode RefreshMode) error {
	if mode == RefreshFull {
		t.screen.Clear()
		t.screen.Sync()
	}
	return nil
}

// Push implements Panel.
func (t *Terminal) Push(img image.Image) error {
	b := img.Bounds()
	cols := (b.Dx() + cellWidth - 1) / cellWidth
	rows := (b.Dy() + cellHeight - 1) / cellHeight

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x := b.Min.X + col*cellWidth
			y := b.Min.Y + row*cellHeight
			top := t.blockColor(img, image.Rect(x, y, x+cellWidth, y+cellHeight/2))
			bottom := t.blockColor(img, image.Rect(x, y+cellHeight/2, x+cellWidth, y+cellHeight))
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			t.screen.SetContent(col, row, '▀', nil, style)
		}
	}
	t.screen.Show()
	return nil
}

// blockColor returns ink if any pixel of r inside img is dark.
func (t *Terminal) blockColor(img image.Image, r image.Rectangle) tcell.Color {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y < 128 {
				return t.ink
			}
		}
	}
	return t.paper
}

// CellToPanel returns the panel pixel at the center of a terminal cell.
func (t *Terminal) CellToPanel(col, row int) (image.Point, bool) {
	p := image.Pt(col*cellWidth+cellWidth/2, row*cellHeight+cellHeight/2)
	return p, p.In(t.layout.Bounds())
}

// Run pumps terminal events until the screen is closed or the user quits
// with Esc, q or Ctrl-C.
func (t *Terminal) Run() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			t.quit()
			return
		}
		t.handleEvent(ev)
	}
}

func (t *Terminal) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			t.quit()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				t.quit()
			}
		}
	case *tcell.EventMouse:
		t.handleMouse(ev)
	case *tcell.EventResize:
		t.screen.Sync()
	}
}

func (t *Terminal) handleMouse(ev *tcell.EventMouse) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if ev.Buttons()&tcell.Button1 == 0 {
		if t.pressed {
			t.pressed = false
			if t.OnRelease != nil {
				t.OnRelease()
			}
		}
		return
	}

	col, row := ev.Position()
	p, ok := t.CellToPanel(col, row)
	if !ok {
		return
	}
	t.pressed = true
	if t.OnPress != nil {
		t.OnPress(p)
	}
}

func (t *Terminal) quit() {
	t.doneOnce.Do(func() { close(t.done) })
}

// Done is closed when the user asks to quit.
func (t *Terminal) Done() <-chan struct{} {
	return t.done
}

// Close finalizes the screen and restores terminal state.
func (t *Terminal) Close() {
	t.screen.Fini()
}

var _ Panel = (*Terminal)(nil)
