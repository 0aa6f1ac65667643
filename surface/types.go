// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import "image/color"

// Options configures surface creation.
type Options struct {
	// Width is the canvas width in canvas units (pixels for raster).
	Width int

	// Height is the canvas height in canvas units.
	Height int

	// Background is the color Clear paints.
	// Default: white
	Background color.Color

	// Caption is optional text drawn over each frame by backends that
	// support it.
	Caption string

	// Custom options for specific backends, e.g. the tcell screen used by
	// the term backend.
	Custom map[string]any
}

// DefaultOptions returns Options with default values.
func DefaultOptions(width, height int) Options {
	return Options{
		Width:      width,
		Height:     height,
		Background: color.White,
	}
}

// BackgroundOrDefault returns o.Background, or white if unset.
func (o Options) BackgroundOrDefault() color.Color {
	if o.Background == nil {
		return color.White
	}
	return o.Background
}

// Validate checks the dimensions.
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return &InvalidSizeError{Width: o.Width, Height: o.Height}
	}
	return nil
}
