// Package effects holds presentation effects derived from the compositor's
// integer scale. Effects never touch the output transform: they receive the
// scale through compositor.Hook and draw over the already placed image.
package effects

import (
	"fmt"
	"image"
	"strings"

	"github.com/rook-computer/pixelscale/internal/compositor"
)

// Overlay is drawn on the display frame after the virtual framebuffer has
// been scaled into rect.
type Overlay interface {
	Apply(dst *image.RGBA, rect image.Rectangle)
}

// Effect is both halves of a derived presentation behavior.
type Effect interface {
	compositor.Hook
	Overlay
	Name() string
}

const (
	NameNone      = "none"
	NameScanlines = "scanlines"
)

// ByName resolves a configured effect. An empty name means no effect and
// returns nil.
func ByName(name string, intensity float64) (Effect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameNone:
		return nil, nil
	case NameScanlines:
		return NewScanlines(intensity), nil
	default:
		return nil, fmt.Errorf("unknown effect %q", name)
	}
}
