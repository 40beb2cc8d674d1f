package framebuffer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"
)

// Filter selects how the framebuffer is sampled when it is magnified.
type Filter int

const (
	FilterNearest Filter = iota
	FilterLinear
)

func (f Filter) String() string {
	if f == FilterLinear {
		return "linear"
	}
	return "nearest"
}

// Format is the static configuration of a framebuffer. It survives
// recreation unchanged.
type Format struct {
	Filter Filter
	Clear  color.RGBA
}

// DefaultFormat is nearest filtering on opaque black.
func DefaultFormat() Format {
	return Format{Filter: FilterNearest, Clear: color.RGBA{A: 0xFF}}
}

var ErrInvalid = errors.New("framebuffer: invalid")

// Buffer is a fixed-size RGBA off-screen color target.
type Buffer struct {
	mu         sync.Mutex
	width      int
	height     int
	format     Format
	img        *image.RGBA
	generation uint64
}

// New allocates a width x height buffer cleared to f.Clear.
func New(width, height int, f Format) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("framebuffer: invalid size %dx%d", width, height)
	}
	b := &Buffer{width: width, height: height, format: f}
	b.allocate()
	return b, nil
}

func (b *Buffer) allocate() {
	b.img = image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	draw.Draw(b.img, b.img.Bounds(), &image.Uniform{C: b.format.Clear}, image.Point{}, draw.Src)
	b.generation++
}

func (b *Buffer) IsValid() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.img != nil
}

// Invalidate drops the pixel store, as a host losing its resources would.
func (b *Buffer) Invalidate() {
	b.mu.Lock()
	b.img = nil
	b.mu.Unlock()
}

// Recreate allocates a fresh pixel store with the original size and format.
// Previous contents are not preserved.
func (b *Buffer) Recreate() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.allocate()
	return nil
}

// Image returns the live pixel store, or nil while the buffer is invalid.
func (b *Buffer) Image() *image.RGBA {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.img
}

// Draw runs fn with the pixel store locked. It reports false, without
// calling fn, while the buffer is invalid.
func (b *Buffer) Draw(fn func(img *image.RGBA)) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.img == nil {
		return false
	}
	fn(b.img)
	return true
}

// Snapshot returns a copy of the current contents.
func (b *Buffer) Snapshot() (*image.RGBA, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.img == nil {
		return nil, ErrInvalid
	}
	out := image.NewRGBA(b.img.Bounds())
	copy(out.Pix, b.img.Pix)
	return out, nil
}

// Clear fills the buffer with the format's clear color.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.img == nil {
		return
	}
	draw.Draw(b.img, b.img.Bounds(), &image.Uniform{C: b.format.Clear}, image.Point{}, draw.Src)
}

func (b *Buffer) Size() (width int, height int) { return b.width, b.height }

func (b *Buffer) Format() Format { return b.format }

// Generation increments on every allocation, starting at 1.
func (b *Buffer) Generation() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.generation
}
