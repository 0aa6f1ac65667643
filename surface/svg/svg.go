// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package svg provides a vector surface that serializes each frame as an SVG
// document, one path per drop.
//
// Importing the package registers the "svg" backend with the surface registry.
package svg

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/jbeda/geom"

	"github.com/gogpu/marbling"
	"github.com/gogpu/marbling/surface"
)

// Name is the registry name of this backend.
const Name = "svg"

func init() {
	surface.Register(Name, 20, func(opts surface.Options) (surface.Surface, error) {
		return NewWithOptions(opts), nil
	}, nil)
}

type polygon struct {
	points []geom.Coord
	fill   color.NRGBA
}

// Surface records the polygons of the current frame.
//
// Surface is NOT safe for concurrent use.
type Surface struct {
	viewBox  geom.Rect
	bg       color.NRGBA
	caption  string
	polygons []polygon
	closed   bool
}

// New creates an SVG surface with a white background.
func New(width, height int) *Surface {
	return NewWithOptions(surface.DefaultOptions(width, height))
}

// NewWithOptions creates an SVG surface from registry options.
func NewWithOptions(opts surface.Options) *Surface {
	return &Surface{
		viewBox: geom.Rect{
			Min: geom.Coord{X: 0, Y: 0},
			Max: geom.Coord{X: float64(opts.Width), Y: float64(opts.Height)},
		},
		bg:      color.NRGBAModel.Convert(opts.BackgroundOrDefault()).(color.NRGBA),
		caption: opts.Caption,
	}
}

// Width returns the canvas width in user units.
func (s *Surface) Width() int {
	return int(s.viewBox.Width())
}

// Height returns the canvas height in user units.
func (s *Surface) Height() int {
	return int(s.viewBox.Height())
}

// SetCaption changes the text written at the bottom left of the document.
func (s *Surface) SetCaption(caption string) {
	s.caption = caption
}

// Clear discards the polygons of the previous frame.
func (s *Surface) Clear() {
	s.polygons = s.polygons[:0]
}

// FillPolygon records a closed polygon. The points are copied.
func (s *Surface) FillPolygon(points []marbling.Vec2, fill color.NRGBA) error {
	if s.closed {
		return marbling.ErrClosed
	}
	if len(points) < 3 || fill.A == 0 {
		return nil
	}

	coords := make([]geom.Coord, len(points))
	for i, p := range points {
		coords[i] = geom.Coord{X: p.X, Y: p.Y}
	}
	s.polygons = append(s.polygons, polygon{points: coords, fill: fill})
	return nil
}

// Len returns the number of polygons recorded since the last Clear.
func (s *Surface) Len() int {
	return len(s.polygons)
}

// Bounds returns the bounding box of everything drawn this frame, or the
// empty rect if nothing was drawn.
func (s *Surface) Bounds() geom.Rect {
	if len(s.polygons) == 0 {
		return geom.Rect{}
	}
	first := s.polygons[0].points[0]
	r := geom.Rect{Min: first, Max: first}
	for _, p := range s.polygons {
		for _, c := range p.points {
			r.ExpandToContainCoord(c)
		}
	}
	return r
}

// Encode writes the current frame as a standalone SVG document.
func (s *Surface) Encode(w io.Writer) error {
	if s.closed {
		return marbling.ErrClosed
	}

	bw := bufio.NewWriter(w)
	out := &writer{w: bw}

	vb := s.viewBox
	out.printf(`<?xml version="1.0"?>
<svg version="1.1"
     width="%d" height="%d"
     viewBox="%g %g %g %g"
     xmlns="http://www.w3.org/2000/svg">
`, s.Width(), s.Height(), vb.Min.X, vb.Min.Y, vb.Width(), vb.Height())
	out.printf("<rect x='%g' y='%g' width='%g' height='%g' style='fill: %s'/>\n",
		vb.Min.X, vb.Min.Y, vb.Width(), vb.Height(), rgb(s.bg))

	for _, p := range s.polygons {
		out.path(p)
	}

	if s.caption != "" {
		var esc strings.Builder
		_ = xml.EscapeText(&esc, []byte(s.caption))
		out.printf("<text x='8' y='%g' style='font-family: sans-serif; font-size: 14px; fill: black; fill-opacity: 0.8'>%s</text>\n",
			vb.Max.Y-8, esc.String())
	}

	out.printf("</svg>\n")
	if out.err != nil {
		return out.err
	}
	return bw.Flush()
}

// Extension returns ".svg".
func (s *Surface) Extension() string {
	return ".svg"
}

// SaveSVG writes the current frame to a file.
func (s *Surface) SaveSVG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.Encode(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Close drops the recorded frame. Close is idempotent.
func (s *Surface) Close() error {
	s.closed = true
	s.polygons = nil
	return nil
}

// writer keeps the first write error so the document can be emitted without
// checking every call.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) printf(format string, a ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, a...)
}

func (w *writer) path(p polygon) {
	w.printf("<path d='M%.3f,%.3f", p.points[0].X, p.points[0].Y)
	for _, c := range p.points[1:] {
		w.printf(" L%.3f,%.3f", c.X, c.Y)
	}
	w.printf(" Z' style='fill: %s; fill-opacity: %.3f'/>\n", rgb(p.fill), float64(p.fill.A)/255)
}

func rgb(c color.NRGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

var (
	_ surface.Surface = (*Surface)(nil)
	_ surface.Encoder = (*Surface)(nil)
)
