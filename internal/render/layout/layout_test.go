package layout

import (
	"image"
	"testing"
)

func TestCenterScaled(t *testing.T) {
	tests := []struct {
		name         string
		dw, dh, w, h int
		ox, oy       int
		want         image.Rectangle
	}{
		{"exact", 1280, 960, 1280, 960, 0, 0, image.Rect(0, 0, 1280, 960)},
		{"odd width nudged", 1281, 960, 1280, 960, 1, 0, image.Rect(1, 0, 1281, 960)},
		{"even leftover", 800, 600, 640, 480, 0, 0, image.Rect(80, 60, 720, 540)},
		{"odd leftover", 1921, 1081, 1280, 960, 1, 1, image.Rect(321, 61, 1601, 1021)},
		{"degenerate", 100, 600, 0, 0, 0, 0, image.Rect(50, 300, 50, 300)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CenterScaled(tc.dw, tc.dh, tc.w, tc.h, tc.ox, tc.oy)
			if got != tc.want {
				t.Errorf("CenterScaled = %v, want %v", got, tc.want)
			}
			if got.Dx() != tc.w || got.Dy() != tc.h {
				t.Errorf("size changed: %dx%d", got.Dx(), got.Dy())
			}
		})
	}
}

func TestCenterScaledOversize(t *testing.T) {
	got := CenterScaled(10, 10, 13, 13, 0, 0)
	if got.Min.X != -2 || got.Max.X != 11 {
		t.Errorf("CenterScaled = %v", got)
	}
}

func TestInset(t *testing.T) {
	r := image.Rect(0, 0, 100, 50)
	if got := Inset(r, 10); got != image.Rect(10, 10, 90, 40) {
		t.Errorf("Inset = %v", got)
	}
	if got := Inset(r, 0); got != r {
		t.Errorf("Inset(0) = %v", got)
	}
	if got := Inset(r, 40); !got.Empty() {
		t.Errorf("Inset beyond size = %v, want empty", got)
	}
}

func TestSplits(t *testing.T) {
	top, bottom := SplitHorizontal(image.Rect(0, 0, 100, 50), 80)
	if top != image.Rect(0, 0, 100, 50) || !bottom.Empty() {
		t.Errorf("SplitHorizontal clamp: %v %v", top, bottom)
	}
	left, right := SplitVertical(image.Rect(0, 0, 100, 50), 30)
	if left != image.Rect(0, 0, 30, 50) || right != image.Rect(30, 0, 100, 50) {
		t.Errorf("SplitVertical: %v %v", left, right)
	}
}

func TestCornersAndFitSquare(t *testing.T) {
	c := Corners(image.Rect(0, 0, 320, 240), 8)
	if c[0] != image.Rect(0, 0, 8, 8) || c[3] != image.Rect(312, 232, 320, 240) {
		t.Errorf("Corners = %v", c)
	}
	if got := FitSquare(image.Rect(10, 10, 110, 50)); got != image.Rect(40, 10, 80, 50) {
		t.Errorf("FitSquare = %v", got)
	}
}
