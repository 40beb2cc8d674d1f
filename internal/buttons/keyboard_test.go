package buttons

import (
	"context"
	"testing"
)

func TestEmitMapsKeys(t *testing.T) {
	k := NewKeyboard()
	k.emit(keyF4, keyPressed)
	k.emit(keyF5, 0) // release
	k.emit(keyF5, 2) // autorepeat
	k.emit(30, keyPressed)
	k.emit(keyF5, keyPressed)

	want := []Event{Exit, Reset}
	for _, w := range want {
		select {
		case got := <-k.Events():
			if got != w {
				t.Errorf("event = %s, want %s", got, w)
			}
		default:
			t.Fatalf("missing event %s", w)
		}
	}
	select {
	case got := <-k.Events():
		t.Errorf("unexpected event %s", got)
	default:
	}
}

func TestEmitDropsWhenFull(t *testing.T) {
	k := NewKeyboard()
	for i := 0; i < cap(k.ch)+3; i++ {
		k.emit(keyF5, keyPressed)
	}
	if len(k.ch) != cap(k.ch) {
		t.Errorf("queued = %d", len(k.ch))
	}
}

func TestKeyboardWithoutDevices(t *testing.T) {
	k := NewKeyboard()
	k.Glob = t.TempDir() + "/event*"
	if err := k.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := k.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if _, ok := <-k.Events(); ok {
		t.Error("events channel still open after Stop")
	}
	_ = k.Stop()
}

func TestNoopButtons(t *testing.T) {
	b := NewNoopButtons()
	if err := b.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	_ = b.Stop()
	_ = b.Stop()
	if _, ok := <-b.Events(); ok {
		t.Error("noop channel not closed")
	}
}
