//go:build linux

package buttons

import (
	"encoding/binary"
	"testing"
)

func inputEvent(typ, code uint16, value int32) []byte {
	rec := make([]byte, eventSize)
	binary.LittleEndian.PutUint16(rec[timevalSize:], typ)
	binary.LittleEndian.PutUint16(rec[timevalSize+2:], code)
	binary.LittleEndian.PutUint32(rec[timevalSize+4:], uint32(value))
	return rec
}

func TestParseInputEvents(t *testing.T) {
	var data []byte
	data = append(data, inputEvent(0x04, 4, 0x3e)...) // EV_MSC scan code
	data = append(data, inputEvent(evKey, keyF5, keyPressed)...)
	data = append(data, inputEvent(0x00, 0, 0)...) // EV_SYN
	data = append(data, inputEvent(evKey, keyF5, 0)...)
	data = append(data, inputEvent(evKey, keyF4, keyPressed)[:eventSize-1]...) // truncated

	k := NewKeyboard()
	k.parse(data)

	if got := len(k.ch); got != 1 {
		t.Fatalf("events = %d, want 1", got)
	}
	if ev := <-k.ch; ev != Reset {
		t.Errorf("event = %s", ev)
	}
}
