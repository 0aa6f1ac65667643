package marbling

import "image/color"

// Surface is the drawing target the engine renders drops onto.
//
// Implementations live in the surface/ sub-packages (raster via gg, SVG,
// terminal). Any type with these two methods works, which keeps the engine
// free of drawing dependencies.
type Surface interface {
	// Clear erases the surface to its background.
	Clear()

	// FillPolygon fills the closed polygon through points, in order, with
	// fill. The last point implicitly connects to the first. The slice is
	// reused by the caller after the call returns and must not be retained.
	FillPolygon(points []Vec2, fill color.NRGBA) error
}

// Flusher is an optional interface for surfaces that present or commit a
// finished frame. Engine.Frame calls Flush after rendering.
type Flusher interface {
	Flush() error
}
