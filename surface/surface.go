// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"io"

	"github.com/gogpu/marbling"
)

// Surface is a drawing target created by the registry.
//
// Surfaces are NOT thread-safe. Each surface should be used from the
// goroutine that drives the engine.
type Surface interface {
	marbling.Surface

	// Width returns the canvas width in canvas units.
	Width() int

	// Height returns the canvas height in canvas units.
	Height() int

	// Close releases all resources associated with the surface.
	// Close is idempotent; multiple calls are safe.
	Close() error
}

// Encoder is an optional interface for surfaces that can serialize the
// current frame, such as PNG or SVG output.
type Encoder interface {
	// Encode writes the current frame to w.
	Encode(w io.Writer) error

	// Extension returns the conventional file extension, including the dot.
	Extension() string
}
