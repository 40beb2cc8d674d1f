package scenes

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/rook-computer/pixelscale/internal/render"
	"github.com/rook-computer/pixelscale/internal/render/layout"
	"github.com/rook-computer/pixelscale/internal/state"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

var (
	ink    = color.RGBA{R: 0x1A, G: 0x1C, B: 0x2C, A: 0xFF}
	accent = color.RGBA{R: 0xEF, G: 0x7D, B: 0x57, A: 0xFF}
	paper  = color.RGBA{R: 0xF4, G: 0xF4, B: 0xF4, A: 0xFF}
)

// StatusScreen is a pixel-art test pattern: a one-pixel frame, corner
// markers and a checker strip make any non-integer scaling or half-pixel
// placement visible, and the text reports the current scale.
type StatusScreen struct {
	Logger Logger

	qrFailed bool
}

func NewStatusScreen(logger Logger) *StatusScreen {
	return &StatusScreen{Logger: logger}
}

func (s *StatusScreen) Start(ctx context.Context) error { return nil }
func (s *StatusScreen) Stop() error                     { return nil }

func (s *StatusScreen) Draw(r render.Drawer, st state.State) {
	w, h := r.Size()
	bounds := image.Rect(0, 0, w, h)
	r.FillRect(bounds, paper)

	drawFrame(r, bounds, ink)
	for _, corner := range layout.Corners(layout.Inset(bounds, 2), 6) {
		r.FillRect(corner, accent)
	}

	inner := layout.Inset(bounds, 12)
	header, body := layout.SplitHorizontal(inner, 16)
	drawChecker(r, header, 2)

	info := st.Display
	lines := []string{
		fmt.Sprintf("virtual  %dx%d", info.VirtualWidth, info.VirtualHeight),
		fmt.Sprintf("display  %dx%d", info.DisplayWidth, info.DisplayHeight),
		fmt.Sprintf("scale    %dx", info.Scale),
		fmt.Sprintf("offset   %d,%d", info.OffsetX, info.OffsetY),
		fmt.Sprintf("effect   %s", effectLabel(info)),
	}

	text, qr := body, image.Rectangle{}
	if st.StatusURL != "" {
		side := min(body.Dy(), body.Dx()*2/5)
		text, qr = layout.SplitVertical(body, body.Dx()-side)
	}

	style := render.TextStyle{Color: ink}
	y := text.Min.Y + 6
	for _, line := range lines {
		m := r.DrawText(line, text.Min.X+4, y, style)
		y += m.LineHeight
	}

	if st.StatusURL != "" {
		if err := r.DrawQRCode(st.StatusURL, layout.FitSquare(layout.Inset(qr, 4))); err != nil {
			if !s.qrFailed && s.Logger != nil {
				s.Logger.Errorf("scene", "qr code: %v", err)
			}
			s.qrFailed = true
		}
	}
}

func effectLabel(info state.DisplayInfo) string {
	if info.Effect == "" {
		return "none"
	}
	if !info.EffectActive {
		return info.Effect + " (off)"
	}
	return info.Effect
}

func drawFrame(r render.Drawer, rect image.Rectangle, c color.Color) {
	r.FillRect(image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+1), c)
	r.FillRect(image.Rect(rect.Min.X, rect.Max.Y-1, rect.Max.X, rect.Max.Y), c)
	r.FillRect(image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+1, rect.Max.Y), c)
	r.FillRect(image.Rect(rect.Max.X-1, rect.Min.Y, rect.Max.X, rect.Max.Y), c)
}

// drawChecker fills rect with cell x cell squares alternating ink and paper.
func drawChecker(r render.Drawer, rect image.Rectangle, cell int) {
	for y := rect.Min.Y; y < rect.Max.Y; y += cell {
		for x := rect.Min.X; x < rect.Max.X; x += cell {
			c := paper
			if ((x-rect.Min.X)/cell+(y-rect.Min.Y)/cell)%2 == 0 {
				c = ink
			}
			r.FillRect(image.Rect(x, y, x+cell, y+cell).Intersect(rect), c)
		}
	}
}
