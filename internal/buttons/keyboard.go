package buttons

import "sync"

// Linux input-event-codes.h
const (
	evKey = 0x01

	keyF4 = 62
	keyF5 = 63

	keyPressed = 1
)

// Keymap binds evdev key codes to events.
var Keymap = map[uint16]Event{
	keyF4: Exit,
	keyF5: Reset,
}

type logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Keyboard turns key presses on every evdev device into Events. Events are
// dropped while nobody is reading.
type Keyboard struct {
	Logger logger

	// Glob selects the devices to watch.
	Glob string

	ch       chan Event
	stopOnce sync.Once
	done     chan struct{}
	wg       sync.WaitGroup
}

func NewKeyboard() *Keyboard {
	return &Keyboard{
		Glob: "/dev/input/event*",
		ch:   make(chan Event, 4),
		done: make(chan struct{}),
	}
}

func (k *Keyboard) Events() <-chan Event { return k.ch }

// Stop ends every reader and closes the event channel.
func (k *Keyboard) Stop() error {
	k.stopOnce.Do(func() {
		close(k.done)
		k.wg.Wait()
		close(k.ch)
	})
	return nil
}

func (k *Keyboard) emit(code uint16, value int32) {
	if value != keyPressed {
		return
	}
	ev, ok := Keymap[code]
	if !ok {
		return
	}
	if k.Logger != nil {
		k.Logger.Infof("input", "key %d pressed: %s", code, ev)
	}
	select {
	case k.ch <- ev:
	default:
	}
}
