package layout

import "image"

// CenterScaled places a width x height area on a displayW x displayH
// surface. The 0/1 offset rounds the centering toward the bottom-right so
// an odd leftover is resolved in whole pixels. A zero-size area yields an
// empty rectangle at the center.
func CenterScaled(displayW, displayH, width, height, offsetX, offsetY int) image.Rectangle {
	minX := floorHalf(displayW - width + offsetX)
	minY := floorHalf(displayH - height + offsetY)
	return image.Rect(minX, minY, minX+width, minY+height)
}

// floorHalf divides by two rounding toward negative infinity, so an area
// larger than the display stays centered instead of drifting right.
func floorHalf(v int) int {
	return v >> 1
}

// Inset shrinks rect by paddingPx on all sides.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	out := image.Rect(rect.Min.X+paddingPx, rect.Min.Y+paddingPx, rect.Max.X-paddingPx, rect.Max.Y-paddingPx)
	if out.Empty() {
		center := image.Pt(rect.Min.X+rect.Dx()/2, rect.Min.Y+rect.Dy()/2)
		return image.Rectangle{Min: center, Max: center}
	}
	return out
}

// SplitHorizontal splits rect into top and bottom parts.
// topHeightPx is clamped to [0, rect.Dy()].
func SplitHorizontal(rect image.Rectangle, topHeightPx int) (top image.Rectangle, bottom image.Rectangle) {
	rect = rect.Canon()
	topHeightPx = clamp(topHeightPx, 0, rect.Dy())
	top = image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+topHeightPx)
	bottom = image.Rect(rect.Min.X, rect.Min.Y+topHeightPx, rect.Max.X, rect.Max.Y)
	return top, bottom
}

// SplitVertical splits rect into left and right parts.
// leftWidthPx is clamped to [0, rect.Dx()].
func SplitVertical(rect image.Rectangle, leftWidthPx int) (left image.Rectangle, right image.Rectangle) {
	rect = rect.Canon()
	leftWidthPx = clamp(leftWidthPx, 0, rect.Dx())
	left = image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+leftWidthPx, rect.Max.Y)
	right = image.Rect(rect.Min.X+leftWidthPx, rect.Min.Y, rect.Max.X, rect.Max.Y)
	return left, right
}

// Corners returns size x size squares in the four corners of rect,
// ordered top-left, top-right, bottom-left, bottom-right.
func Corners(rect image.Rectangle, size int) [4]image.Rectangle {
	rect = rect.Canon()
	size = clamp(size, 0, min(rect.Dx(), rect.Dy()))
	return [4]image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+size, rect.Min.Y+size),
		image.Rect(rect.Max.X-size, rect.Min.Y, rect.Max.X, rect.Min.Y+size),
		image.Rect(rect.Min.X, rect.Max.Y-size, rect.Min.X+size, rect.Max.Y),
		image.Rect(rect.Max.X-size, rect.Max.Y-size, rect.Max.X, rect.Max.Y),
	}
}

// FitSquare returns the largest square that fits into rect, centered.
func FitSquare(rect image.Rectangle) image.Rectangle {
	rect = rect.Canon()
	size := min(rect.Dx(), rect.Dy())
	return CenterScaled(rect.Dx(), rect.Dy(), size, size, 0, 0).Add(rect.Min)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
