package render

import (
	"context"
	"image"
	"image/color"

	"github.com/rook-computer/pixelscale/internal/compositor"
	"github.com/rook-computer/pixelscale/internal/state"
)

type Renderer interface {
	Start(ctx context.Context) error
	Stop() error
	SetScreen(screen Screen)
	RunLoop(ctx context.Context, store *state.Store)
	RedrawWithState(snap state.State)
}

type Screen interface {
	Start(ctx context.Context) error
	Stop() error
	Draw(r Drawer, s state.State)
}

// Display is a surface that can show a composited, display-sized frame.
type Display interface {
	compositor.Surface
	Present(frame *image.RGBA) error
}

// Syncer is implemented by displays that must be asked for their current
// size before each frame.
type Syncer interface {
	Sync() error
}

// Stub implementations
type NoopRenderer struct{}

func (n *NoopRenderer) Start(ctx context.Context) error                 { return nil }
func (n *NoopRenderer) Stop() error                                     { return nil }
func (n *NoopRenderer) SetScreen(screen Screen)                         {}
func (n *NoopRenderer) RunLoop(ctx context.Context, store *state.Store) {}
func (n *NoopRenderer) RedrawWithState(snap state.State)                {}

// Drawer is what screens draw the virtual scene with. All coordinates are
// virtual framebuffer pixels.
type Drawer interface {
	// Size returns the virtual window size.
	Size() (width int, height int)

	FillBackground()
	FillRect(rect image.Rectangle, c color.Color)

	// Generic text primitives.
	MeasureText(text string, style TextStyle) TextMetrics
	DrawText(text string, x, y int, style TextStyle) TextMetrics

	// Generic image primitives.
	ImageSize(img image.Image) (width int, height int)
	DrawImage(img image.Image, x, y int)
	DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode)

	// Convenience helpers (implemented using the generic primitives).
	DrawTextCentered(text string)
	DrawQRCode(payload string, rect image.Rectangle) error
}

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// TextStyle describes how to render text.
// Coordinates for DrawText use a top-left anchor for Y.
// For X, Align controls how x is interpreted.
// Size 0 selects the built-in bitmap face, which stays crisp at any scale.
type TextStyle struct {
	Color color.Color
	Size  int
	Align TextAlign
}

type TextMetrics struct {
	Width      int
	Height     int
	Ascent     int
	Descent    int
	LineHeight int
}

type ScaleMode int

const (
	ScaleModeFit ScaleMode = iota
	ScaleModeFill
	ScaleModeStretch
	// ScaleModeInteger magnifies by the largest whole factor that fits.
	ScaleModeInteger
)
