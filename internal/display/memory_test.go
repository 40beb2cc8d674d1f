package display

import (
	"image"
	"image/color"
	"testing"
)

func TestMemorySetSizeNotifiesOnChange(t *testing.T) {
	m := NewMemory(640, 480)
	var calls [][2]int
	m.OnResize(func(w, h int) { calls = append(calls, [2]int{w, h}) })
	m.OnResize(nil)

	if m.SetSize(640, 480) {
		t.Error("SetSize reported a change for the same size")
	}
	if !m.SetSize(1281, 961) {
		t.Error("SetSize did not report a change")
	}
	if !m.SetSize(-5, 100) {
		t.Error("SetSize did not report a change")
	}

	want := [][2]int{{1281, 961}, {0, 100}}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %v, want %v", i, calls[i], want[i])
		}
	}
	if m.PixelWidth() != 0 || m.PixelHeight() != 100 {
		t.Errorf("size = %dx%d", m.PixelWidth(), m.PixelHeight())
	}
}

func TestMemoryPresentCopiesFrame(t *testing.T) {
	m := NewMemory(2, 2)
	if m.Snapshot() != nil {
		t.Fatal("snapshot before any present")
	}

	frame := image.NewRGBA(image.Rect(0, 0, 2, 2))
	red := color.RGBA{R: 0xFF, A: 0xFF}
	frame.SetRGBA(1, 1, red)
	if err := m.Present(frame); err != nil {
		t.Fatal(err)
	}
	frame.SetRGBA(1, 1, color.RGBA{})

	snap := m.Snapshot()
	if snap == nil || snap.RGBAAt(1, 1) != red {
		t.Errorf("snapshot pixel = %v, want %v", snap.RGBAAt(1, 1), red)
	}
	if w, h := m.Size(); w != 2 || h != 2 {
		t.Errorf("size = %dx%d", w, h)
	}
}
