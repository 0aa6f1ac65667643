package marbling

import (
	"image/color"
	"math"
)

// Age controls the direction of a drop's opacity animation.
type Age uint8

const (
	// Young drops fade in.
	Young Age = iota
	// Mature drops fade out. A drop never returns to Young.
	Mature
)

// String returns the age name.
func (a Age) String() string {
	switch a {
	case Young:
		return "young"
	case Mature:
		return "mature"
	default:
		return "unknown"
	}
}

// Drop is one ink deposit: a ring of vertices around an origin together
// with its render state.
//
// Vertices are stored relative to the origin. The ring starts as a circle
// and accumulates the displacement of every drop spawned after it; its
// length never changes.
type Drop struct {
	origin      Vec2
	radius      float64
	color       Color
	opacity     float64
	age         Age
	marbleCount int
	vertices    []Vec2
}

// newDrop samples detail vertices evenly around a circle of radius r.
func newDrop(x, y, r float64, c Color, detail int) *Drop {
	d := &Drop{
		origin:   V2(x, y),
		radius:   r,
		color:    c,
		vertices: make([]Vec2, detail),
	}
	for i := range d.vertices {
		angle := 2 * math.Pi * float64(i) / float64(detail)
		v := V2(math.Cos(angle), math.Sin(angle))
		v.Scale(r)
		d.vertices[i] = v
	}
	return d
}

// marble displaces other's ring as if d, a new drop of radius r, had just
// been placed on the surface. Each vertex is moved radially away from d's
// origin by the factor sqrt(1 + r²/m), where m is its squared distance from
// that origin, floored at eps. It returns how many vertices hit the floor.
//
// d's own ring is not touched.
func (d *Drop) marble(other *Drop, r, eps, matureAfter float64) (clamped int) {
	difference := other.origin.Copy()
	difference.Sub(d.origin)

	rr := r * r
	for i := range other.vertices {
		v := &other.vertices[i]
		v.Add(difference) // relative to d.origin
		m := v.LengthSq()
		if m < eps {
			m = eps
			clamped++
		}
		v.Scale(math.Sqrt(1 + rr/m))
		v.Sub(difference) // back to other.origin
	}

	other.marbleCount++
	if other.age == Young && float64(other.marbleCount) > matureAfter {
		other.age = Mature
	}
	return clamped
}

// tick advances the opacity animation by one frame.
func (d *Drop) tick(increase, decrease float64) {
	if d.age == Young {
		d.opacity = clamp01(d.opacity + increase)
	} else {
		d.opacity = clamp01(d.opacity - decrease)
	}
}

// Origin returns the drop's center on the canvas.
func (d *Drop) Origin() Vec2 { return d.origin }

// Radius returns the radius the drop was created with.
func (d *Drop) Radius() float64 { return d.radius }

// Color returns the ink color.
func (d *Drop) Color() Color { return d.color }

// Opacity returns the current opacity in [0, 1].
func (d *Drop) Opacity() float64 { return d.opacity }

// Age returns the current age.
func (d *Drop) Age() Age { return d.age }

// MarbleCount returns how many later drops have displaced this one.
func (d *Drop) MarbleCount() int { return d.marbleCount }

// Detail returns the number of vertices in the ring.
func (d *Drop) Detail() int { return len(d.vertices) }

// Fill returns the ink color with alpha derived from the current opacity.
func (d *Drop) Fill() color.NRGBA { return d.color.WithOpacity(d.opacity) }

// Vertices returns a copy of the ring, relative to Origin.
func (d *Drop) Vertices() []Vec2 {
	out := make([]Vec2, len(d.vertices))
	copy(out, d.vertices)
	return out
}

// Points returns the ring in absolute canvas coordinates.
func (d *Drop) Points() []Vec2 {
	return d.AppendPoints(nil)
}

// AppendPoints appends the ring in absolute canvas coordinates to dst and
// returns the extended slice. Renderers reuse dst across drops.
func (d *Drop) AppendPoints(dst []Vec2) []Vec2 {
	for _, v := range d.vertices {
		p := v.Copy()
		p.Add(d.origin)
		dst = append(dst, p)
	}
	return dst
}

// Snapshot is an immutable copy of a drop's render state.
type Snapshot struct {
	Origin      Vec2
	Points      []Vec2
	Fill        color.NRGBA
	Age         Age
	MarbleCount int
}

// Snapshot copies the drop's current render state. Later marbling does not
// affect the returned value.
func (d *Drop) Snapshot() Snapshot {
	return Snapshot{
		Origin:      d.origin,
		Points:      d.Points(),
		Fill:        d.Fill(),
		Age:         d.age,
		MarbleCount: d.marbleCount,
	}
}
