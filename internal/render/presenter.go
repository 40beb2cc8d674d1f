package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/rook-computer/pixelscale/internal/effects"
	"github.com/rook-computer/pixelscale/internal/framebuffer"
	xdraw "golang.org/x/image/draw"
)

// Presenter composites the virtual framebuffer into a display-sized frame.
// The back buffer is reused until the display size changes.
type Presenter struct {
	Border   color.RGBA
	Overlays []effects.Overlay

	// Filter is the framebuffer's sampling filter.
	Filter framebuffer.Filter

	back *image.RGBA
}

// Compose clears the frame to Border, magnifies src into rect with the
// configured filter and applies the overlays. A nil src leaves only the
// border, which is what a lost framebuffer looks like for one frame.
func (p *Presenter) Compose(src *image.RGBA, rect image.Rectangle, displayW, displayH int) *image.RGBA {
	bounds := image.Rect(0, 0, max(displayW, 0), max(displayH, 0))
	if p.back == nil || p.back.Bounds() != bounds {
		p.back = image.NewRGBA(bounds)
	}
	draw.Draw(p.back, bounds, &image.Uniform{C: p.Border}, image.Point{}, draw.Src)

	if src == nil || rect.Empty() {
		return p.back
	}
	p.scaler().Scale(p.back, rect, src, src.Bounds(), xdraw.Src, nil)
	for _, overlay := range p.Overlays {
		overlay.Apply(p.back, rect)
	}
	return p.back
}

func (p *Presenter) scaler() xdraw.Scaler {
	if p.Filter == framebuffer.FilterLinear {
		return xdraw.ApproxBiLinear
	}
	return xdraw.NearestNeighbor
}
