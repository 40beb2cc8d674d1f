package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/skip2/go-qrcode"
)

var errQRTooSmall = errors.New("qr code does not fit")

// qrModules returns the module matrix for payload, quiet zone included.
func qrModules(payload string) ([][]bool, error) {
	if payload == "" {
		return nil, nil
	}
	qrCode, err := qrcode.New(payload, qrcode.Low)
	if err != nil {
		return nil, err
	}
	return qrCode.Bitmap(), nil
}

// drawQRModules paints modules at the largest whole module size that fits
// rect, centered. Whole-pixel modules keep the code scannable after the
// virtual framebuffer is magnified.
func drawQRModules(dst draw.Image, rect image.Rectangle, modules [][]bool, fg, bg color.Color) error {
	count := len(modules)
	if count == 0 {
		return nil
	}
	modulePx := min(rect.Dx(), rect.Dy()) / count
	if modulePx == 0 {
		return fmt.Errorf("%w: %d modules in %dx%d", errQRTooSmall, count, rect.Dx(), rect.Dy())
	}
	size := modulePx * count
	origin := image.Pt(rect.Min.X+(rect.Dx()-size)/2, rect.Min.Y+(rect.Dy()-size)/2)

	draw.Draw(dst, image.Rect(origin.X, origin.Y, origin.X+size, origin.Y+size), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	fgSrc := &image.Uniform{C: fg}
	for y, row := range modules {
		for x, dark := range row {
			if !dark {
				continue
			}
			cell := image.Rect(0, 0, modulePx, modulePx).Add(origin.Add(image.Pt(x*modulePx, y*modulePx)))
			draw.Draw(dst, cell, fgSrc, image.Point{}, draw.Src)
		}
	}
	return nil
}
