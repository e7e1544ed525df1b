// Package icon decodes cached launcher icons and fits them to a bounding box.
package icon

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// alphaCutoff is the alpha below which a pixel counts as transparent.
const alphaCutoff = 0x80

// Icon is a decoded, already scaled image. Each Icon belongs to exactly one
// catalog entry and is dropped with it.
type Icon struct {
	img *image.RGBA
}

// Load decodes the image at path and scales it down to fit maxW x maxH
// pixels, keeping its aspect ratio. A non-positive limit is ignored.
func Load(path string, maxW, maxH int) (*Icon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open icon: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode icon %s: %w", path, err)
	}
	return FromImage(src, maxW, maxH), nil
}

func FromImage(src image.Image, maxW, maxH int) *Icon {
	b := src.Bounds()
	w, h := Fit(b.Dx(), b.Dy(), maxW, maxH)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Src)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	}
	return &Icon{img: dst}
}

// Fit returns the largest size no bigger than the limits with the same
// aspect ratio as w x h. Sizes that already fit are returned unchanged.
func Fit(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if maxW <= 0 {
		maxW = w
	}
	if maxH <= 0 {
		maxH = h
	}
	if w <= maxW && h <= maxH {
		return w, h
	}
	// Compare maxW/w against maxH/h without floats.
	if maxW*h <= maxH*w {
		return maxW, max(1, h*maxW/w)
	}
	return max(1, w*maxH/h), maxH
}

func (ic *Icon) Width() int  { return ic.img.Bounds().Dx() }
func (ic *Icon) Height() int { return ic.img.Bounds().Dy() }

// CellSize is the icon's footprint on a character grid where each cell shows
// one pixel column and two pixel rows.
func (ic *Icon) CellSize() (int, int) {
	return ic.Width(), (ic.Height() + 1) / 2
}

// HalfBlock returns the upper and lower pixel of character cell (col, row).
// The booleans are false for transparent or out-of-range pixels.
func (ic *Icon) HalfBlock(col, row int) (top, bottom color.RGBA, topOK, bottomOK bool) {
	top, topOK = ic.pixel(col, row*2)
	bottom, bottomOK = ic.pixel(col, row*2+1)
	return top, bottom, topOK, bottomOK
}

func (ic *Icon) pixel(x, y int) (color.RGBA, bool) {
	if !(image.Point{X: x, Y: y}).In(ic.img.Bounds()) {
		return color.RGBA{}, false
	}
	c := ic.img.RGBAAt(x, y)
	if c.A < alphaCutoff {
		return color.RGBA{}, false
	}
	return unpremultiply(c), true
}

func unpremultiply(c color.RGBA) color.RGBA {
	if c.A == 0xff || c.A == 0 {
		return c
	}
	a := uint32(c.A)
	return color.RGBA{
		R: uint8(min(255, uint32(c.R)*255/a)),
		G: uint8(min(255, uint32(c.G)*255/a)),
		B: uint8(min(255, uint32(c.B)*255/a)),
		A: 0xff,
	}
}
