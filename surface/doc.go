// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface selects and builds drawing targets for the marbling engine.
//
// Every backend implements marbling.Surface (Clear and FillPolygon) plus the
// sizing and lifecycle methods of Surface. Backends live in sub-packages and
// register themselves from init, so a program only links the backends it
// imports:
//
//   - raster: software rasterizer built on gg, PNG output
//   - svg: vector output, one path per drop
//   - term: tcell terminal cells
//
// # Registry
//
//	import (
//	    "github.com/gogpu/marbling/surface"
//	    _ "github.com/gogpu/marbling/surface/raster"
//	    _ "github.com/gogpu/marbling/surface/svg"
//	)
//
//	// Highest priority available backend:
//	s, err := surface.New(surface.Options{Width: 800, Height: 600})
//
//	// Or by name:
//	s, err := surface.NewByName("svg", surface.Options{Width: 800, Height: 600})
//
// # Usage
//
//	defer s.Close()
//	for range frames {
//	    if err := eng.Frame(s); err != nil {
//	        return err
//	    }
//	}
//	if enc, ok := s.(surface.Encoder); ok {
//	    err = enc.Encode(w)
//	}
package surface
