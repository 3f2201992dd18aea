package visualizer

import (
	"context"
	"image"
	"image/color"
	"image/draw"

	"github.com/rahulkamble366/iso/pkg/analyzer"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

type Provider interface {
	// Visualize rasterizes one page of the PDF at path into a PNG at output.
	Visualize(ctx context.Context, path string, page analyzer.Page, output string) error
}

var palette = map[analyzer.Category]color.RGBA{
	analyzer.CategoryText:   {R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	analyzer.CategoryTitle:  {R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	analyzer.CategoryList:   {R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	analyzer.CategoryFigure: {R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
}

var tableColor = color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}

// Overlay outlines every detection of page on img. Boxes are scaled from
// page units to pixels using the page size reported by the engine.
func Overlay(img image.Image, page analyzer.Page) *image.RGBA {
	bounds := img.Bounds()

	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, img, bounds.Min, draw.Src)

	if page.Width <= 0 || page.Height <= 0 {
		return canvas
	}

	sx := float64(bounds.Dx()) / page.Width
	sy := float64(bounds.Dy()) / page.Height

	stroke := max(1, bounds.Dx()/400)

	for _, item := range page.Items {
		if item.Box == nil {
			continue
		}

		r := scale(*item.Box, sx, sy).Add(bounds.Min)

		outline(canvas, r, palette[item.Category], stroke)
		label(canvas, r, palette[item.Category], string(item.Category))
	}

	for _, t := range page.Tables {
		if t.Box == nil {
			continue
		}

		r := scale(*t.Box, sx, sy).Add(bounds.Min)

		outline(canvas, r, tableColor, stroke)
		label(canvas, r, tableColor, "table")
	}

	return canvas
}

func scale(box analyzer.Box, sx, sy float64) image.Rectangle {
	return image.Rect(
		int(box[0]*sx), int(box[1]*sy),
		int(box[2]*sx), int(box[3]*sy),
	)
}

func outline(dst *image.RGBA, r image.Rectangle, c color.RGBA, stroke int) {
	r = r.Canon().Intersect(dst.Bounds())

	if r.Empty() {
		return
	}

	src := image.NewUniform(c)

	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+stroke),
		image.Rect(r.Min.X, r.Max.Y-stroke, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+stroke, r.Max.Y),
		image.Rect(r.Max.X-stroke, r.Min.Y, r.Max.X, r.Max.Y),
	}

	for _, e := range edges {
		draw.Draw(dst, e.Intersect(r), src, image.Point{}, draw.Src)
	}
}

// label writes text just above the top left corner of r, or inside it when
// there is no room above.
func label(dst *image.RGBA, r image.Rectangle, c color.RGBA, text string) {
	r = r.Canon()

	face := basicfont.Face7x13

	y := r.Min.Y - 2

	if y-face.Ascent < dst.Bounds().Min.Y {
		y = r.Min.Y + face.Ascent + 2
	}

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(r.Min.X+2, y),
	}

	d.DrawString(text)
}
