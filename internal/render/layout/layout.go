// Package layout has rectangle helpers for placing a rendered scene on a
// fixed-size surface such as the framebuffer.
package layout

import "image"

// Inset shrinks rect by paddingPx on all sides.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	out := image.Rect(rect.Min.X+paddingPx, rect.Min.Y+paddingPx, rect.Max.X-paddingPx, rect.Max.Y-paddingPx)
	return Normalize(out)
}

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// Center returns a rectangle of size (widthPx, heightPx) centred in rect.
// The size is clamped to rect.
func Center(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = Normalize(rect)
	widthPx = clamp(widthPx, 0, rect.Dx())
	heightPx = clamp(heightPx, 0, rect.Dy())
	x := rect.Min.X + (rect.Dx()-widthPx)/2
	y := rect.Min.Y + (rect.Dy()-heightPx)/2
	return image.Rect(x, y, x+widthPx, y+heightPx)
}

// Fit returns the largest rectangle with the aspect ratio of content that
// fits into rect, centred.
func Fit(rect image.Rectangle, content image.Rectangle) image.Rectangle {
	rect = Normalize(rect)
	contentW, contentH := content.Dx(), content.Dy()
	if contentW <= 0 || contentH <= 0 || rect.Empty() {
		return image.Rectangle{Min: rect.Min, Max: rect.Min}
	}
	// Compare rect.Dx()/contentW with rect.Dy()/contentH without floats.
	width, height := rect.Dx(), rect.Dy()
	if width*contentH > height*contentW {
		width = height * contentW / contentH
	} else {
		height = width * contentH / contentW
	}
	return Center(rect, width, height)
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
