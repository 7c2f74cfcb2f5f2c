// Package chart renders the portfolio charts as base64 encoded PNG images.
package chart

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	"image/png"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	// imageDPI is the raster resolution of every chart.
	imageDPI = 100

	// cropPadding is kept around the drawn content when cropping, 0.1in at imageDPI.
	cropPadding = imageDPI / 10
)

var (
	// backgroundColor is used for both the figure and the plot area.
	backgroundColor = color.RGBA{R: 0xf8, G: 0xf9, B: 0xfa, A: 0xff}
	titleColor      = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	titleFontSize   = vg.Points(15)
)

// generatePlotImageBase64 draws p onto a width x height raster canvas, crops the
// result to its content and returns it as a base64 encoded PNG.
// The canvas only lives for the duration of the call.
func generatePlotImageBase64(p *plot.Plot, width, height vg.Length) (string, error) {
	c := vgimg.NewWith(
		vgimg.UseWH(width, height),
		vgimg.UseDPI(imageDPI),
		vgimg.UseBackgroundColor(backgroundColor),
	)
	p.Draw(draw.New(c))

	img := cropToContent(c.Image(), backgroundColor, cropPadding)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode plot as png: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// applyStyle sets the title and background shared by all charts.
func applyStyle(p *plot.Plot, title string) {
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = titleFontSize
	p.Title.TextStyle.Color = titleColor
	p.Title.Padding = vg.Points(10)
	p.BackgroundColor = backgroundColor
}

// cropToContent returns the smallest sub-image of img holding every pixel that
// differs from bg, grown by pad pixels on each side. A blank image is returned as is.
func cropToContent(img image.Image, bg color.Color, pad int) image.Image {
	b := img.Bounds()
	bgR, bgG, bgB, bgA := bg.RGBA()

	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if r == bgR && g == bgG && bl == bgB && a == bgA {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < minX || maxY < minY {
		return img
	}

	rect := image.Rect(minX-pad, minY-pad, maxX+1+pad, maxY+1+pad).Intersect(b)
	if sub, ok := img.(interface {
		SubImage(r image.Rectangle) image.Image
	}); ok {
		return sub.SubImage(rect)
	}

	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	stddraw.Draw(out, out.Bounds(), img, rect.Min, stddraw.Src)
	return out
}

// withAlpha returns c with its opacity replaced by alpha in [0, 1].
func withAlpha(c color.Color, alpha float64) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(alpha*255 + 0.5)
	return n
}
