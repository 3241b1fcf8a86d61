package ui

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/samdwyer/inkquest/internal/entity"
	"github.com/samdwyer/inkquest/internal/gamedata"
)

// fakePanel records what the renderer asks of it.
type fakePanel struct {
	modes      []RefreshMode
	frames     []*image.Gray
	refreshErr error
	pushErr    error
}

func (p *fakePanel) Bounds() image.Rectangle { return DefaultLayout.Bounds() }

func (p *fakePanel) SetRefresh(mode RefreshMode) error {
	p.modes = append(p.modes, mode)
	return p.refreshErr
}

func (p *fakePanel) Push(img image.Image) error {
	if p.pushErr != nil {
		return p.pushErr
	}
	frame := image.NewGray(img.Bounds())
	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
			frame.Set(x, y, img.At(x, y))
		}
	}
	p.frames = append(p.frames, frame)
	return nil
}

func (p *fakePanel) last() *image.Gray {
	return p.frames[len(p.frames)-1]
}

var testCharacter = entity.Character{
	Name:      "Aragorn",
	Class:     "Ranger",
	HP:        75,
	MaxHP:     100,
	MP:        30,
	MaxMP:     30,
	Level:     5,
	Inventory: []string{"Sword", "Bow", "Herbs"},
}

func testSprites(t *testing.T) gamedata.Sprites {
	t.Helper()
	sprites, err := gamedata.LoadSprites()
	if err != nil {
		t.Fatalf("LoadSprites() error = %v", err)
	}
	return sprites
}

func isInk(img *image.Gray, x, y int) bool {
	return img.GrayAt(x, y).Y < 128
}

func TestFillWidth(t *testing.T) {
	tests := []struct {
		cur, max uint32
		width    int
		want     int
	}{
		{75, 100, 35, 26},
		{0, 100, 35, 0},
		{100, 100, 35, 35},
		{150, 100, 35, 35},
		{50, 0, 35, 0},
		{0, 0, 35, 0},
		{1, 3, 78, 26},
		{2, 3, 78, 52},
		{1, 2, 35, 18}, // 17.5 rounds up
		{4294967295, 4294967295, 78, 78},
		{4294967294, 4294967295, 78, 78},
		{10, 100, 0, 0},
	}

	for _, tt := range tests {
		got := FillWidth(tt.cur, tt.max, tt.width)
		if got != tt.want {
			t.Errorf("FillWidth(%d, %d, %d) = %d, want %d", tt.cur, tt.max, tt.width, got, tt.want)
		}
	}
}

func TestRenderPushesFrame(t *testing.T) {
	panel := &fakePanel{}
	r := NewRenderer(panel, DefaultLayout, testSprites(t))

	if err := r.Render(context.Background(), RefreshFull, ScreenOverview, testCharacter); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(panel.modes) != 1 || panel.modes[0] != RefreshFull {
		t.Errorf("refresh modes = %v, want [full]", panel.modes)
	}
	if len(panel.frames) != 1 {
		t.Fatalf("pushed %d frames, want 1", len(panel.frames))
	}
	if got := panel.last().Bounds(); got != DefaultLayout.Bounds() {
		t.Errorf("frame bounds = %v, want %v", got, DefaultLayout.Bounds())
	}
}

func TestRenderDrawsFooterOnEveryScreen(t *testing.T) {
	l := DefaultLayout
	for _, s := range []Screen{ScreenOverview, ScreenBattle} {
		t.Run(s.String(), func(t *testing.T) {
			panel := &fakePanel{}
			r := NewRenderer(panel, l, testSprites(t))
			if err := r.Render(context.Background(), RefreshQuick, s, testCharacter); err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			frame := panel.last()

			for _, x := range []int{0, 30, l.SplitX, l.Width - 1} {
				if !isInk(frame, x, l.FooterY) {
					t.Errorf("footer top line missing at x=%d", x)
				}
				if !isInk(frame, x, l.Height-1) {
					t.Errorf("footer bottom line missing at x=%d", x)
				}
			}
			for _, x := range []int{0, l.SplitX, l.Width - 1} {
				if !isInk(frame, x, l.FooterY+20) {
					t.Errorf("footer divider missing at x=%d", x)
				}
			}
		})
	}
}

func TestRenderHighlightsActiveTab(t *testing.T) {
	l := DefaultLayout
	panel := &fakePanel{}
	r := NewRenderer(panel, l, testSprites(t))
	ctx := context.Background()

	if err := r.Render(ctx, RefreshQuick, ScreenBattle, testCharacter); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	battle := panel.last()
	if err := r.Render(ctx, RefreshQuick, ScreenOverview, testCharacter); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	overview := panel.last()

	// Corner pixels inside each tab are filled only when the tab is active.
	left := image.Pt(3, l.FooterY+3)
	right := image.Pt(l.Width-4, l.FooterY+3)
	if !isInk(battle, left.X, left.Y) || isInk(battle, right.X, right.Y) {
		t.Error("battle screen should highlight only the Battle tab")
	}
	if isInk(overview, left.X, left.Y) || !isInk(overview, right.X, right.Y) {
		t.Error("overview screen should highlight only the Overview tab")
	}
}

func TestRenderOverviewBars(t *testing.T) {
	panel := &fakePanel{}
	r := NewRenderer(panel, DefaultLayout, testSprites(t))
	if err := r.Render(context.Background(), RefreshQuick, ScreenOverview, testCharacter); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	frame := panel.last()

	// HP bar: outer x 24..103, inner 25..102 (78 px), 75/100 -> 59 px filled.
	y := 78 + 6
	filled := 0
	for x := 25; x < 25+78; x++ {
		if isInk(frame, x, y) {
			filled++
		}
	}
	if want := FillWidth(75, 100, 78); filled != want {
		t.Errorf("HP bar filled %d px, want %d", filled, want)
	}

	// MP is full.
	y = 112 + 6
	for x := 25; x < 25+78; x++ {
		if !isInk(frame, x, y) {
			t.Fatalf("MP bar not filled at x=%d", x)
		}
	}
}

func TestRenderScreensDiffer(t *testing.T) {
	panel := &fakePanel{}
	r := NewRenderer(panel, DefaultLayout, testSprites(t))
	ctx := context.Background()

	if err := r.Render(ctx, RefreshQuick, ScreenOverview, testCharacter); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if err := r.Render(ctx, RefreshQuick, ScreenBattle, testCharacter); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	a, b := panel.frames[0], panel.frames[1]
	diff := 0
	content := DefaultLayout.Content()
	for y := content.Min.Y; y < content.Max.Y; y++ {
		for x := content.Min.X; x < content.Max.X; x++ {
			if a.GrayAt(x, y) != b.GrayAt(x, y) {
				diff++
			}
		}
	}
	if diff == 0 {
		t.Error("overview and battle screens drew the same content")
	}
}

func TestRenderErrors(t *testing.T) {
	cause := errors.New("spi timeout")

	tests := []struct {
		name   string
		panel  *fakePanel
		screen Screen
		wantOp string
		pushes int
	}{
		{"refresh", &fakePanel{refreshErr: cause}, ScreenOverview, "refresh", 0},
		{"push", &fakePanel{pushErr: cause}, ScreenBattle, "push", 0},
		{"unknown screen", &fakePanel{}, Screen(9), "draw", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRenderer(tt.panel, DefaultLayout, gamedata.Sprites{})
			err := r.Render(context.Background(), RefreshQuick, tt.screen, testCharacter)

			var renderErr *RenderError
			if !errors.As(err, &renderErr) {
				t.Fatalf("Render() error = %v, want *RenderError", err)
			}
			if renderErr.Op != tt.wantOp {
				t.Errorf("RenderError.Op = %q, want %q", renderErr.Op, tt.wantOp)
			}
			if tt.wantOp != "draw" && !errors.Is(err, cause) {
				t.Errorf("Render() error = %v, want wrapped %v", err, cause)
			}
			if len(tt.panel.frames) != tt.pushes {
				t.Errorf("pushed %d frames, want %d", len(tt.panel.frames), tt.pushes)
			}
		})
	}
}

func TestRenderWithoutSprites(t *testing.T) {
	panel := &fakePanel{}
	r := NewRenderer(panel, DefaultLayout, gamedata.Sprites{})
	if err := r.Render(context.Background(), RefreshQuick, ScreenBattle, entity.Character{Name: "X"}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"Aragorn", 122, "Aragorn"},
		{"Aragorn", 21, "Ara"},
		{"Rôdeur", 14, "Rô"},
		{"x", 3, ""},
	}
	for _, tt := range tests {
		if got := fit(tt.s, tt.width); got != tt.want {
			t.Errorf("fit(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}

func TestScreenString(t *testing.T) {
	tests := []struct {
		s    Screen
		want string
	}{
		{ScreenOverview, "overview"},
		{ScreenBattle, "battle"},
		{Screen(7), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Screen(%d).String() = %q, want %q", int(tt.s), got, tt.want)
		}
	}
}
