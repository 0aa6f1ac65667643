// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package svg

import (
	"bytes"
	"encoding/xml"
	"errors"
	"image/color"
	"io"
	"strings"
	"testing"

	"github.com/gogpu/marbling"
	"github.com/gogpu/marbling/surface"
)

var tri = []marbling.Vec2{{X: 10, Y: 10}, {X: 50, Y: 10}, {X: 30, Y: 40}}

func encode(t *testing.T, s *Surface) string {
	t.Helper()
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return buf.String()
}

func TestEncode_WellFormed(t *testing.T) {
	s := New(200, 100)
	s.SetCaption("a < b & c")
	_ = s.FillPolygon(tri, color.NRGBA{R: 255, A: 128})

	doc := encode(t, s)

	dec := xml.NewDecoder(strings.NewReader(doc))
	paths := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			t.Fatalf("document is not well formed: %v\n%s", err, doc)
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "path" {
			paths++
		}
	}
	if paths != 1 {
		t.Errorf("found %d paths, want 1", paths)
	}

	for _, want := range []string{
		`viewBox="0 0 200 100"`,
		"M10.000,10.000 L50.000,10.000 L30.000,40.000 Z",
		"fill: rgb(255,0,0); fill-opacity: 0.502",
		"a &lt; b &amp; c",
		"fill: rgb(255,255,255)",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestClear(t *testing.T) {
	s := New(10, 10)
	_ = s.FillPolygon(tri, color.NRGBA{A: 255})
	_ = s.FillPolygon(tri, color.NRGBA{A: 255})
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", s.Len())
	}
	if doc := encode(t, s); strings.Contains(doc, "<path") {
		t.Error("cleared frame still has paths")
	}
}

func TestFillPolygon_Skipped(t *testing.T) {
	s := New(10, 10)
	_ = s.FillPolygon(tri[:2], color.NRGBA{A: 255})
	_ = s.FillPolygon(tri, color.NRGBA{R: 9})
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestFillPolygon_CopiesPoints(t *testing.T) {
	s := New(100, 100)
	pts := append([]marbling.Vec2(nil), tri...)
	_ = s.FillPolygon(pts, color.NRGBA{A: 255})
	pts[0] = marbling.V2(-1000, -1000)

	b := s.Bounds()
	if b.Min.X != 10 || b.Min.Y != 10 || b.Max.X != 50 || b.Max.Y != 40 {
		t.Errorf("Bounds() = %+v, want (10,10)-(50,40)", b)
	}
}

func TestEngineFrame(t *testing.T) {
	eng, err := marbling.NewEngine(marbling.WithDetail(32), marbling.WithDropCap(3))
	if err != nil {
		t.Fatal(err)
	}
	defer eng.Close()

	for i := range 5 {
		if _, err := eng.Spawn(float64(20+i*10), 50, 15, marbling.RGB(0, 0, 255)); err != nil {
			t.Fatal(err)
		}
	}

	s := New(100, 100)
	if err := eng.Frame(s); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want one path per live drop (3)", s.Len())
	}
	if n := strings.Count(encode(t, s), "<path"); n != 3 {
		t.Errorf("encoded %d paths, want 3", n)
	}
}

func TestClose(t *testing.T) {
	s := New(10, 10)
	_ = s.Close()
	_ = s.Close()

	if err := s.FillPolygon(tri, color.NRGBA{A: 255}); !errors.Is(err, marbling.ErrClosed) {
		t.Errorf("FillPolygon after Close = %v, want ErrClosed", err)
	}
	if err := s.Encode(&bytes.Buffer{}); !errors.Is(err, marbling.ErrClosed) {
		t.Errorf("Encode after Close = %v, want ErrClosed", err)
	}
}

func TestRegistered(t *testing.T) {
	s, err := surface.NewByName(Name, surface.DefaultOptions(30, 20))
	if err != nil {
		t.Fatalf("NewByName: %v", err)
	}
	defer s.Close()

	if s.Width() != 30 || s.Height() != 20 {
		t.Errorf("size = %dx%d, want 30x20", s.Width(), s.Height())
	}
	if enc, ok := s.(surface.Encoder); !ok || enc.Extension() != ".svg" {
		t.Errorf("%T is not an svg Encoder", s)
	}
}
