// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package term draws drops onto a tcell screen, one colored cell per sample.
//
// The canvas (Options.Width x Options.Height) is stretched over the whole
// screen. Each cell is sampled at its center: a cell is inside a drop when
// its center is inside the drop polygon by the even-odd rule. Drops are
// composited source-over into a cell color buffer and written to the screen
// on Flush.
//
//	screen, _ := tcell.NewScreen()
//	_ = screen.Init()
//	opts := surface.DefaultOptions(cols*8, rows*16)
//	opts.Custom = map[string]any{term.ScreenKey: screen}
//	s, err := surface.NewByName(term.Name, opts)
//
// Importing the package registers the "term" backend with the surface registry.
package term

import (
	"image/color"
	"math"
	"slices"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/marbling"
	"github.com/gogpu/marbling/surface"
)

const (
	// Name is the registry name of this backend.
	Name = "term"

	// ScreenKey is the Options.Custom key holding the tcell.Screen.
	ScreenKey = "screen"
)

func init() {
	surface.Register(Name, 10, func(opts surface.Options) (surface.Surface, error) {
		return NewWithOptions(opts)
	}, nil)
}

// Surface composites drops into a grid of terminal cells.
//
// Surface does not own the screen: Close does not call Fini.
type Surface struct {
	screen  tcell.Screen
	width   int
	height  int
	cols    int
	rows    int
	bg      color.NRGBA
	caption string
	cells   []color.NRGBA
	xs      []float64
	closed  bool
}

// New creates a surface mapping a width x height canvas onto screen.
func New(screen tcell.Screen, width, height int) *Surface {
	s := &Surface{
		screen: screen,
		width:  width,
		height: height,
		bg:     color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
	s.Sync()
	return s
}

// NewWithOptions creates a surface from registry options. The screen must be
// stored in opts.Custom under ScreenKey.
func NewWithOptions(opts surface.Options) (*Surface, error) {
	screen, ok := opts.Custom[ScreenKey].(tcell.Screen)
	if !ok || screen == nil {
		return nil, surface.ErrMissingScreen
	}
	s := New(screen, opts.Width, opts.Height)
	s.bg = opaque(opts.BackgroundOrDefault())
	s.caption = opts.Caption
	s.Clear()
	return s, nil
}

// Width returns the canvas width.
func (s *Surface) Width() int { return s.width }

// Height returns the canvas height.
func (s *Surface) Height() int { return s.height }

// Cols returns the number of screen columns in use.
func (s *Surface) Cols() int { return s.cols }

// Rows returns the number of screen rows in use.
func (s *Surface) Rows() int { return s.rows }

// SetCaption changes the text written on the last row by Flush.
func (s *Surface) SetCaption(caption string) {
	s.caption = caption
}

// Resize changes the canvas size and re-reads the screen size.
func (s *Surface) Resize(width, height int) {
	s.width = width
	s.height = height
	s.Sync()
}

// Sync re-reads the screen size, e.g. after a tcell.EventResize, and
// reallocates the cell buffer.
func (s *Surface) Sync() {
	s.cols, s.rows = s.screen.Size()
	if n := s.cols * s.rows; cap(s.cells) >= n {
		s.cells = s.cells[:n]
	} else {
		s.cells = make([]color.NRGBA, n)
	}
	s.Clear()
}

// CanvasPoint maps a screen cell to the canvas point at its center.
func (s *Surface) CanvasPoint(col, row int) marbling.Vec2 {
	sx, sy := s.cellSize()
	return marbling.V2((float64(col)+0.5)*sx, (float64(row)+0.5)*sy)
}

// Cell returns the composited color of a cell, or the zero color when out of
// range.
func (s *Surface) Cell(col, row int) color.NRGBA {
	if col < 0 || col >= s.cols || row < 0 || row >= s.rows {
		return color.NRGBA{}
	}
	return s.cells[row*s.cols+col]
}

// Clear resets every cell to the background.
func (s *Surface) Clear() {
	for i := range s.cells {
		s.cells[i] = s.bg
	}
}

// FillPolygon composites fill into every cell whose center lies inside the
// polygon.
func (s *Surface) FillPolygon(points []marbling.Vec2, fill color.NRGBA) error {
	if s.closed {
		return marbling.ErrClosed
	}
	if len(points) < 3 || fill.A == 0 || s.cols == 0 || s.rows == 0 {
		return nil
	}

	sx, sy := s.cellSize()
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	r0 := max(0, int(math.Ceil(minY/sy-0.5)))
	r1 := min(s.rows-1, int(math.Floor(maxY/sy-0.5)))

	for row := r0; row <= r1; row++ {
		y := (float64(row) + 0.5) * sy
		s.xs = crossings(s.xs[:0], points, y)
		slices.Sort(s.xs)

		for i := 0; i+1 < len(s.xs); i += 2 {
			c0 := max(0, int(math.Ceil(s.xs[i]/sx-0.5)))
			c1 := min(s.cols-1, int(math.Ceil(s.xs[i+1]/sx-0.5))-1)
			for col := c0; col <= c1; col++ {
				idx := row*s.cols + col
				s.cells[idx] = over(fill, s.cells[idx])
			}
		}
	}
	return nil
}

// Flush writes the cell buffer and caption to the screen and shows it.
func (s *Surface) Flush() error {
	if s.closed {
		return marbling.ErrClosed
	}

	for row := range s.rows {
		for col := range s.cols {
			c := s.cells[row*s.cols+col]
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
			s.screen.SetContent(col, row, ' ', nil, style)
		}
	}

	if s.caption != "" && s.rows > 0 {
		row := s.rows - 1
		col := 0
		for _, r := range s.caption {
			if col >= s.cols {
				break
			}
			c := s.cells[row*s.cols+col]
			style := tcell.StyleDefault.
				Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))).
				Foreground(tcell.ColorBlack)
			s.screen.SetContent(col, row, r, nil, style)
			col++
		}
	}

	s.screen.Show()
	return nil
}

// Close marks the surface closed. The screen is left to its owner.
func (s *Surface) Close() error {
	s.closed = true
	return nil
}

func (s *Surface) cellSize() (sx, sy float64) {
	sx = float64(s.width) / float64(max(s.cols, 1))
	sy = float64(s.height) / float64(max(s.rows, 1))
	return sx, sy
}

// crossings appends the x coordinates where the closed polygon crosses the
// horizontal line at y. Half-open edges avoid double counting vertices.
func crossings(dst []float64, points []marbling.Vec2, y float64) []float64 {
	j := len(points) - 1
	for i := range points {
		a, b := points[j], points[i]
		if (a.Y <= y) != (b.Y <= y) {
			dst = append(dst, a.X+(y-a.Y)/(b.Y-a.Y)*(b.X-a.X))
		}
		j = i
	}
	return dst
}

// over composites src onto an opaque dst.
func over(src, dst color.NRGBA) color.NRGBA {
	if src.A == 255 {
		return src
	}
	a := uint32(src.A)
	inv := 255 - a
	return color.NRGBA{
		R: uint8((uint32(src.R)*a + uint32(dst.R)*inv + 127) / 255),
		G: uint8((uint32(src.G)*a + uint32(dst.G)*inv + 127) / 255),
		B: uint8((uint32(src.B)*a + uint32(dst.B)*inv + 127) / 255),
		A: 255,
	}
}

func opaque(c color.Color) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 255
	return n
}

var (
	_ surface.Surface  = (*Surface)(nil)
	_ marbling.Flusher = (*Surface)(nil)
)
