package display

import (
	"image"
	"sync"
)

// Memory is an in-process display surface. Its size is set by the owner
// (the simulator's HTTP control, tests) and resize listeners are notified
// on every actual change.
type Memory struct {
	mu        sync.Mutex
	width     int
	height    int
	frame     *image.RGBA
	listeners []func(width, height int)
}

func NewMemory(width, height int) *Memory {
	m := &Memory{}
	m.width, m.height = clampSize(width, height)
	return m
}

func (m *Memory) PixelWidth() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width
}

func (m *Memory) PixelHeight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.height
}

// Size returns both dimensions under one lock.
func (m *Memory) Size() (width int, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width, m.height
}

// SetSize resizes the surface. Negative dimensions are clamped to zero.
// It reports whether the size changed.
func (m *Memory) SetSize(width, height int) bool {
	width, height = clampSize(width, height)

	m.mu.Lock()
	if width == m.width && height == m.height {
		m.mu.Unlock()
		return false
	}
	m.width, m.height = width, height
	listeners := append(([]func(int, int))(nil), m.listeners...)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(width, height)
	}
	return true
}

func (m *Memory) OnResize(fn func(width, height int)) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

// Present keeps a copy of the composited frame.
func (m *Memory) Present(frame *image.RGBA) error {
	if frame == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.frame == nil || m.frame.Bounds() != frame.Bounds() {
		m.frame = image.NewRGBA(frame.Bounds())
	}
	copy(m.frame.Pix, frame.Pix)
	return nil
}

// Snapshot returns a copy of the last presented frame, or nil if nothing
// has been presented yet.
func (m *Memory) Snapshot() *image.RGBA {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.frame == nil {
		return nil
	}
	out := image.NewRGBA(m.frame.Bounds())
	copy(out.Pix, m.frame.Pix)
	return out
}

func clampSize(width, height int) (int, int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return width, height
}
