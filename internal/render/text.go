package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// glyph metrics of basicfont.Face7x13
const (
	glyphW = 7
	glyphH = 13
)

// drawLabel writes label with its top-left corner at (x, y), each font pixel
// blown up to scale x scale.
func drawLabel(dst draw.Image, x, y int, label string, col color.Color, scale int) {
	if label == "" {
		return
	}
	if scale < 1 {
		scale = 1
	}
	src := image.NewRGBA(image.Rect(0, 0, len(label)*glyphW, glyphH))
	d := &font.Drawer{
		Dst:  src,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: 0, Y: fixed.I(basicfont.Face7x13.Ascent)},
	}
	d.DrawString(label)

	target := image.Rect(x, y, x+src.Bounds().Dx()*scale, y+src.Bounds().Dy()*scale)
	xdraw.NearestNeighbor.Scale(dst, target, src, src.Bounds(), draw.Over, nil)
}

// labelSize is the pixel footprint of label at scale.
func labelSize(label string, scale int) (int, int) {
	return len(label) * glyphW * scale, glyphH * scale
}
