package ui

import (
	"image"
	"image/color"
	"image/draw"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	ink   = color.Gray{Y: 0}
	paper = color.Gray{Y: 255}
)

// glyphWidth is the advance of every basicfont.Face7x13 glyph.
const glyphWidth = 7

func blank(img *image.Gray) {
	draw.Draw(img, img.Bounds(), &image.Uniform{C: paper}, image.Point{}, draw.Src)
}

// text draws s with its baseline at y, cut to fit maxWidth pixels.
func text(img *image.Gray, x, y int, s string, c color.Gray, maxWidth int) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(fit(s, maxWidth))
}

// centerText draws s centered horizontally in r with its baseline at y.
func centerText(img *image.Gray, r image.Rectangle, y int, s string, c color.Gray) {
	s = fit(s, r.Dx())
	x := r.Min.X + (r.Dx()-utf8.RuneCountInString(s)*glyphWidth)/2
	text(img, x, y, s, c, r.Dx())
}

func fit(s string, maxWidth int) string {
	n := maxWidth / glyphWidth
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func hline(img *image.Gray, x0, x1, y int, c color.Gray) {
	for x := x0; x <= x1; x++ {
		img.SetGray(x, y, c)
	}
}

func vline(img *image.Gray, x, y0, y1 int, c color.Gray) {
	for y := y0; y <= y1; y++ {
		img.SetGray(x, y, c)
	}
}

func fillRect(img *image.Gray, r image.Rectangle, c color.Gray) {
	draw.Draw(img, r.Intersect(img.Bounds()), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// rectOutline draws the inside border of r.
func rectOutline(img *image.Gray, r image.Rectangle, c color.Gray) {
	if r.Empty() {
		return
	}
	hline(img, r.Min.X, r.Max.X-1, r.Min.Y, c)
	hline(img, r.Min.X, r.Max.X-1, r.Max.Y-1, c)
	vline(img, r.Min.X, r.Min.Y, r.Max.Y-1, c)
	vline(img, r.Max.X-1, r.Min.Y, r.Max.Y-1, c)
}

// sprite copies src with its top left corner at at.
func sprite(img *image.Gray, at image.Point, src image.Image) {
	if src == nil {
		return
	}
	b := src.Bounds()
	draw.Draw(img, image.Rectangle{Min: at, Max: at.Add(b.Size())}, src, b.Min, draw.Src)
}

// bar draws an outlined gauge of the given outer rectangle, filled from the
// left according to cur/max.
func bar(img *image.Gray, r image.Rectangle, cur, max uint32) {
	rectOutline(img, r, ink)
	inner := r.Inset(1)
	w := FillWidth(cur, max, inner.Dx())
	fillRect(img, image.Rect(inner.Min.X, inner.Min.Y, inner.Min.X+w, inner.Max.Y), ink)
}
