package glwindow

import (
	"image"
	"sync"
)

// surface is the thread-safe half of a Window: the size reported by the
// framebuffer-size callback and a one-slot mailbox for the newest frame.
// The render loop writes, the GL thread reads.
type surface struct {
	mu        sync.Mutex
	width     int
	height    int
	listeners []func(width, height int)

	pending *image.RGBA
	spare   *image.RGBA
}

func (s *surface) PixelWidth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width
}

func (s *surface) PixelHeight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.height
}

func (s *surface) OnResize(fn func(width, height int)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// setSize records a new framebuffer size and notifies listeners when it
// differs from the previous one.
func (s *surface) setSize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	s.mu.Lock()
	if width == s.width && height == s.height {
		s.mu.Unlock()
		return
	}
	s.width, s.height = width, height
	listeners := append([]func(int, int)(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(width, height)
	}
}

// Present replaces any frame the GL thread has not picked up yet.
func (s *surface) Present(frame *image.RGBA) error {
	if frame == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := s.spare
	if buf == nil || buf.Bounds() != frame.Bounds() {
		buf = image.NewRGBA(frame.Bounds())
	}
	copy(buf.Pix, frame.Pix)
	s.spare, s.pending = s.pending, buf
	return nil
}

// take hands the newest frame to the GL thread and recycles done, the
// frame it finished uploading.
func (s *surface) take(done *image.RGBA) *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	frame := s.pending
	s.pending = nil
	if done != nil {
		s.spare = done
	}
	return frame
}
