package render

import (
	"image"

	"github.com/rook-computer/pixelscale/internal/render/layout"
)

// Quad is the on-screen rectangle showing the virtual framebuffer. The
// compositor is its only writer.
type Quad struct {
	scaleX, scaleY float64
	posX, posY     float64
}

func (q *Quad) SetScale(x, y float64)    { q.scaleX, q.scaleY = x, y }
func (q *Quad) SetPosition(x, y float64) { q.posX, q.posY = x, y }

func (q *Quad) Scale() (x, y float64)    { return q.scaleX, q.scaleY }
func (q *Quad) Position() (x, y float64) { return q.posX, q.posY }

// Rect places the quad on a displayW x displayH surface in whole pixels.
func (q *Quad) Rect(displayW, displayH int) image.Rectangle {
	return layout.CenterScaled(displayW, displayH,
		int(q.scaleX), int(q.scaleY), int(q.posX), int(q.posY))
}
