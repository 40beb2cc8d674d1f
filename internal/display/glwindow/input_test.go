package glwindow

import (
	"testing"

	"github.com/rook-computer/pixelscale/internal/buttons"
)

func TestInputDropsWhenFullAndAfterStop(t *testing.T) {
	in := newInput()
	for i := 0; i < cap(in.ch)+2; i++ {
		in.send(buttons.Reset)
	}
	if len(in.ch) != cap(in.ch) {
		t.Errorf("queued = %d", len(in.ch))
	}

	_ = in.Stop()
	_ = in.Stop()
	in.send(buttons.Exit) // must not panic on a closed channel

	n := 0
	for range in.Events() {
		n++
	}
	if n != cap(in.ch) {
		t.Errorf("drained %d events", n)
	}
}
