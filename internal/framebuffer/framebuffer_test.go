package framebuffer

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNewRejectsEmptySize(t *testing.T) {
	for _, size := range [][2]int{{0, 10}, {10, 0}, {-1, -1}} {
		if _, err := New(size[0], size[1], DefaultFormat()); err == nil {
			t.Errorf("New(%d, %d) succeeded", size[0], size[1])
		}
	}
}

func TestRecreatePreservesSizeAndFormat(t *testing.T) {
	format := Format{Filter: FilterNearest, Clear: color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xFF}}
	b, err := New(320, 240, format)
	if err != nil {
		t.Fatal(err)
	}
	if !b.IsValid() || b.Generation() != 1 {
		t.Fatalf("valid=%v generation=%d", b.IsValid(), b.Generation())
	}
	b.Image().SetRGBA(5, 5, color.RGBA{R: 0xFF, A: 0xFF})

	b.Invalidate()
	if b.IsValid() {
		t.Fatal("buffer still valid after Invalidate")
	}
	if b.Image() != nil {
		t.Error("Image() returned pixels while invalid")
	}
	if _, err := b.Snapshot(); !errors.Is(err, ErrInvalid) {
		t.Errorf("Snapshot err = %v, want ErrInvalid", err)
	}

	if err := b.Recreate(); err != nil {
		t.Fatal(err)
	}
	if !b.IsValid() || b.Generation() != 2 {
		t.Fatalf("valid=%v generation=%d", b.IsValid(), b.Generation())
	}
	if w, h := b.Size(); w != 320 || h != 240 {
		t.Errorf("size = %dx%d", w, h)
	}
	bounds := b.Image().Bounds()
	if bounds.Dx() != 320 || bounds.Dy() != 240 {
		t.Errorf("image bounds = %v", bounds)
	}
	if b.Format() != format {
		t.Errorf("format = %+v, want %+v", b.Format(), format)
	}
	if got := b.Image().RGBAAt(5, 5); got != format.Clear {
		t.Errorf("pixel after recreate = %v, want clear color", got)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	b, err := New(4, 4, DefaultFormat())
	if err != nil {
		t.Fatal(err)
	}
	snap, err := b.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	b.Image().SetRGBA(0, 0, color.RGBA{G: 0xFF, A: 0xFF})
	if snap.RGBAAt(0, 0) == b.Image().RGBAAt(0, 0) {
		t.Error("snapshot shares pixels with the buffer")
	}

	b.Clear()
	if got := b.Image().RGBAAt(0, 0); got != DefaultFormat().Clear {
		t.Errorf("pixel after Clear = %v", got)
	}
}

func TestDrawSkipsInvalidBuffer(t *testing.T) {
	b, err := New(2, 2, DefaultFormat())
	if err != nil {
		t.Fatal(err)
	}
	called := false
	if !b.Draw(func(img *image.RGBA) { called = img.Bounds().Dx() == 2 }) || !called {
		t.Fatal("Draw did not run on a valid buffer")
	}

	b.Invalidate()
	called = false
	if b.Draw(func(*image.RGBA) { called = true }) || called {
		t.Error("Draw ran on an invalid buffer")
	}
}

func TestFilterString(t *testing.T) {
	if FilterNearest.String() != "nearest" || FilterLinear.String() != "linear" {
		t.Errorf("filter names: %s %s", FilterNearest, FilterLinear)
	}
}
