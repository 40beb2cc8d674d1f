package glwindow

import (
	"context"
	"sync"

	"github.com/rook-computer/pixelscale/internal/buttons"
)

// Input delivers window key presses as buttons events. Key callbacks run
// on the GL thread and never block: events are dropped while nobody reads.
type Input struct {
	mu     sync.Mutex
	ch     chan buttons.Event
	closed bool
}

func newInput() *Input { return &Input{ch: make(chan buttons.Event, 4)} }

func (in *Input) Start(ctx context.Context) error { return nil }

func (in *Input) Stop() error {
	in.mu.Lock()
	defer in.mu.Unlock()
	if !in.closed {
		in.closed = true
		close(in.ch)
	}
	return nil
}

func (in *Input) Events() <-chan buttons.Event { return in.ch }

func (in *Input) send(ev buttons.Event) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.closed {
		return
	}
	select {
	case in.ch <- ev:
	default:
	}
}
