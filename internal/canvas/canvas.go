// Package canvas is the drawing surface the physics scene paints into. Two surfaces exist: the live
// raylib window (graphics.WindowSurface) and Raster, an offscreen gg context used for snapshots.
package canvas

import "image/color"

// Surface is what a scene needs from a 2D drawing target. Coordinates are pixels, +Y down; Rotate
// takes radians. Push/Pop save and restore the transform.
type Surface interface {
	Size() (width, height int)
	Clear(bg color.RGBA)
	Push()
	Pop()
	Translate(x, y float64)
	Rotate(angle float64)
	// RoundedRect fills then strokes a rectangle whose top-left corner is (x, y) in the current transform.
	RoundedRect(x, y, w, h, radius float64, fill, stroke color.RGBA, strokeWidth float64)
	// TextCentered draws s centered on (x, y) in the current transform.
	TextCentered(s string, x, y, size float64, col color.RGBA)
}
