package render

import (
	"image/color"
	"time"
)

// Default presentation colors and pacing.
var (
	// Canvas colors until a scene picks its own.
	Foreground = color.RGBA{R: 0x90, G: 0x00, B: 0xFF, A: 0xFF} // #9000ff
	Background = color.RGBA{R: 0xFF, G: 0xDC, B: 0x00, A: 0xFF} // #ffdc00

	// Default virtual window.
	VirtualWidth  = 320
	VirtualHeight = 240

	DefaultFPS = 30
)

func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}
