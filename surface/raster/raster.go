// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster provides a CPU surface backed by a gg drawing context.
//
// Each drop is filled as one closed polygon with anti-aliasing. Frames can be
// saved or streamed as PNG:
//
//	s := raster.New(800, 600)
//	defer s.Close()
//	_ = eng.Frame(s)
//	_ = s.SavePNG("frame.png")
//
// Importing the package registers the "raster" backend with the surface
// registry.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"io"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/marbling"
	"github.com/gogpu/marbling/surface"
)

// Name is the registry name of this backend.
const Name = "raster"

// CaptionSize is the font size of the caption in pixels.
const CaptionSize = 14.0

func init() {
	surface.Register(Name, 30, func(opts surface.Options) (surface.Surface, error) {
		return NewWithOptions(opts), nil
	}, nil)
}

// captionFont parses the bundled Go font once per process.
var captionFont = sync.OnceValues(func() (*text.FontSource, error) {
	return text.NewFontSource(goregular.TTF)
})

// Surface draws drops into an in-memory image.
//
// Surface is NOT safe for concurrent use.
type Surface struct {
	dc      *gg.Context
	bg      gg.RGBA
	caption string
	face    text.Face
	closed  bool
}

// New creates a raster surface with a white background.
func New(width, height int) *Surface {
	return NewWithOptions(surface.DefaultOptions(width, height))
}

// NewWithOptions creates a raster surface from registry options.
// Dimensions are not validated here; use the registry for that.
func NewWithOptions(opts surface.Options) *Surface {
	s := &Surface{
		dc:      gg.NewContext(opts.Width, opts.Height),
		bg:      gg.FromColor(opts.BackgroundOrDefault()),
		caption: opts.Caption,
	}
	s.dc.SetFillRule(gg.FillRuleNonZero)
	s.Clear()
	return s
}

// Width returns the image width in pixels.
func (s *Surface) Width() int {
	return s.dc.Width()
}

// Height returns the image height in pixels.
func (s *Surface) Height() int {
	return s.dc.Height()
}

// SetCaption changes the text drawn by Flush. An empty caption draws nothing.
func (s *Surface) SetCaption(caption string) {
	s.caption = caption
}

// Clear paints the whole image with the background color.
func (s *Surface) Clear() {
	if s.closed {
		return
	}
	s.dc.ClearWithColor(s.bg)
}

// FillPolygon fills the closed polygon through points with fill.
// Fewer than three points draw nothing.
func (s *Surface) FillPolygon(points []marbling.Vec2, fill color.NRGBA) error {
	if s.closed {
		return marbling.ErrClosed
	}
	if len(points) < 3 || fill.A == 0 {
		return nil
	}

	s.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		s.dc.LineTo(p.X, p.Y)
	}
	s.dc.ClosePath()
	s.dc.SetRGBA(
		float64(fill.R)/255,
		float64(fill.G)/255,
		float64(fill.B)/255,
		float64(fill.A)/255,
	)
	return s.dc.Fill()
}

// Flush draws the caption, if any, over the finished frame.
func (s *Surface) Flush() error {
	if s.closed {
		return marbling.ErrClosed
	}
	if s.caption == "" {
		return nil
	}

	if s.face == nil {
		src, err := captionFont()
		if err != nil {
			return err
		}
		s.face = src.Face(CaptionSize)
		s.dc.SetFont(s.face)
	}
	s.dc.SetRGBA(0, 0, 0, 0.8)
	s.dc.DrawString(s.caption, 8, float64(s.dc.Height())-8)
	return nil
}

// Image returns a copy of the current frame.
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

// RGBA returns the current frame as *image.RGBA, converting if needed.
func (s *Surface) RGBA() *image.RGBA {
	img := s.dc.Image()
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba
}

// SavePNG writes the current frame to a PNG file.
func (s *Surface) SavePNG(path string) error {
	return s.dc.SavePNG(path)
}

// Encode writes the current frame as PNG.
func (s *Surface) Encode(w io.Writer) error {
	return s.dc.EncodePNG(w)
}

// Extension returns ".png".
func (s *Surface) Extension() string {
	return ".png"
}

// Close releases the drawing context. Close is idempotent.
func (s *Surface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.dc.Close()
}

var (
	_ surface.Surface  = (*Surface)(nil)
	_ surface.Encoder  = (*Surface)(nil)
	_ marbling.Flusher = (*Surface)(nil)
)
