package marbling

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestNewDrop_Circle(t *testing.T) {
	tests := []struct {
		name   string
		detail int
		radius float64
	}{
		{"square", 4, 1},
		{"hexagon", 6, 2.5},
		{"fine", 1000, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDrop(3, -7, tt.radius, Black, tt.detail)
			if d.Detail() != tt.detail {
				t.Fatalf("Detail() = %d, want %d", d.Detail(), tt.detail)
			}
			for i, v := range d.vertices {
				if math.Abs(v.Length()-tt.radius) > 1e-9 {
					t.Errorf("vertex %d at distance %v, want %v", i, v.Length(), tt.radius)
				}
				angle := 2 * math.Pi * float64(i) / float64(tt.detail)
				want := V2(math.Cos(angle)*tt.radius, math.Sin(angle)*tt.radius)
				if !v.Approx(want, 1e-9) {
					t.Errorf("vertex %d = %v, want %v", i, v, want)
				}
			}
			if d.Opacity() != 0 || d.Age() != Young || d.MarbleCount() != 0 {
				t.Errorf("new drop state = (%v, %v, %d), want (0, young, 0)",
					d.Opacity(), d.Age(), d.MarbleCount())
			}
		})
	}
}

func TestMarble_ClosedForm(t *testing.T) {
	a := newDrop(0, 0, 1, Black, 4)
	b := newDrop(4, 0, 1, Black, 4)
	before := a.Vertices()

	b.marble(a, 1, DefaultEpsilon, 100)

	difference := V2(-4, 0) // a.origin - b.origin
	for i, v := range before {
		p := v.Copy()
		p.Add(difference)
		p.Scale(math.Sqrt(1 + 1/p.LengthSq()))
		p.Sub(difference)
		if a.vertices[i] != p {
			t.Errorf("vertex %d = %v, want bit-identical %v", i, a.vertices[i], p)
		}
	}
}

func TestMarble_DoesNotTouchReceiver(t *testing.T) {
	a := newDrop(0, 0, 10, Black, 32)
	b := newDrop(5, 5, 10, Black, 32)
	want := b.Vertices()

	b.marble(a, 10, DefaultEpsilon, 100)

	if diff := cmp.Diff(want, b.vertices); diff != "" {
		t.Errorf("receiver ring changed (-want +got):\n%s", diff)
	}
	if b.origin != V2(5, 5) || a.origin != V2(0, 0) {
		t.Errorf("origins changed: a=%v b=%v", a.origin, b.origin)
	}
}

func TestMarble_MonotonicStretch(t *testing.T) {
	tests := []struct {
		name   string
		origin Vec2
		r      float64
	}{
		{"far", V2(500, 0), 3},
		{"overlapping", V2(0.5, 0.25), 2},
		{"inside", V2(0.1, -0.1), 0.5},
		{"huge radius", V2(10, 10), 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := newDrop(0, 0, 1, Black, 64)
			d := newDrop(tt.origin.X, tt.origin.Y, tt.r, Black, 64)

			dist := func(v Vec2) float64 {
				p := v.Copy()
				p.Add(other.origin)
				p.Sub(d.origin)
				return p.Length()
			}

			before := other.Vertices()
			d.marble(other, tt.r, DefaultEpsilon, 100)

			for i := range before {
				if dist(other.vertices[i])+1e-12 < dist(before[i]) {
					t.Errorf("vertex %d moved closer: %v -> %v", i, dist(before[i]), dist(other.vertices[i]))
				}
			}
		})
	}
}

func TestMarble_RingSizeInvariant(t *testing.T) {
	a := newDrop(0, 0, 5, Black, 17)
	for i := range 200 {
		d := newDrop(float64(i%13), float64(i%7), 3, Black, 17)
		d.marble(a, 3, DefaultEpsilon, 1e9)
		if a.Detail() != 17 {
			t.Fatalf("after %d marbles ring has %d vertices, want 17", i+1, a.Detail())
		}
	}
	if a.MarbleCount() != 200 {
		t.Errorf("MarbleCount() = %d, want 200", a.MarbleCount())
	}
}

func TestMarble_VertexOnCenterStaysFinite(t *testing.T) {
	other := newDrop(0, 0, 1, Black, 4)
	// Vertex 0 sits at absolute (1, 0).
	d := newDrop(1, 0, 2, Black, 4)

	clamped := d.marble(other, 2, DefaultEpsilon, 100)
	if clamped != 1 {
		t.Errorf("clamped = %d, want 1", clamped)
	}
	for i, v := range other.vertices {
		if !v.IsFinite() {
			t.Errorf("vertex %d = %v, want finite", i, v)
		}
	}
	if !other.vertices[0].Approx(V2(1, 0), 1e-12) {
		t.Errorf("vertex on center moved to %v, want (1, 0)", other.vertices[0])
	}
}

func TestMarble_AgeTransition(t *testing.T) {
	const threshold = 3.0
	a := newDrop(0, 0, 1, Black, 8)

	for i := 1; i <= 10; i++ {
		d := newDrop(float64(10*i), 0, 1, Black, 8)
		d.marble(a, 1, DefaultEpsilon, threshold)

		wantAge := Young
		if float64(i) > threshold {
			wantAge = Mature
		}
		if a.Age() != wantAge {
			t.Errorf("after %d marbles age = %v, want %v", i, a.Age(), wantAge)
		}
	}
}

func TestDrop_TickClamp(t *testing.T) {
	d := newDrop(0, 0, 1, Black, 4)
	for range 1000 {
		d.tick(0.3, 0.7)
		if d.Opacity() < 0 || d.Opacity() > 1 {
			t.Fatalf("young opacity %v out of [0, 1]", d.Opacity())
		}
	}
	if d.Opacity() != 1 {
		t.Errorf("young opacity = %v, want saturated at 1", d.Opacity())
	}

	d.age = Mature
	for range 1000 {
		d.tick(0.3, 0.7)
		if d.Opacity() < 0 || d.Opacity() > 1 {
			t.Fatalf("mature opacity %v out of [0, 1]", d.Opacity())
		}
	}
	if d.Opacity() != 0 {
		t.Errorf("mature opacity = %v, want 0", d.Opacity())
	}
}

func TestDrop_PointsAreAbsolute(t *testing.T) {
	d := newDrop(10, 20, 2, Black, 4)
	got := d.Points()
	want := []Vec2{V2(12, 20), V2(10, 22), V2(8, 20), V2(10, 18)}

	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Points() mismatch (-want +got):\n%s", diff)
	}
}

func TestDrop_VerticesIsCopy(t *testing.T) {
	d := newDrop(0, 0, 1, Black, 4)
	vs := d.Vertices()
	vs[0].Add(V2(100, 100))

	if d.vertices[0].X > 2 {
		t.Error("mutating Vertices() result changed the drop")
	}
}

func TestDrop_SnapshotIsolated(t *testing.T) {
	a := newDrop(0, 0, 1, RGB(10, 20, 30), 8)
	a.opacity = 0.5
	snap := a.Snapshot()

	newDrop(1, 1, 1, Black, 8).marble(a, 1, DefaultEpsilon, 100)

	if diff := cmp.Diff(snap.Points, a.Points()); diff == "" {
		t.Error("expected the drop to move after marbling")
	}
	if snap.MarbleCount != 0 {
		t.Errorf("snapshot MarbleCount = %d, want 0", snap.MarbleCount)
	}
	if snap.Fill.A != 128 {
		t.Errorf("snapshot alpha = %d, want 128", snap.Fill.A)
	}
}

func TestAge_String(t *testing.T) {
	if Young.String() != "young" || Mature.String() != "mature" || Age(9).String() != "unknown" {
		t.Errorf("unexpected Age strings: %v %v %v", Young, Mature, Age(9))
	}
}

func BenchmarkMarble(b *testing.B) {
	other := newDrop(0, 0, 100, Black, DefaultDetail)
	d := newDrop(50, 50, 100, Black, DefaultDetail)
	b.ReportAllocs()
	for b.Loop() {
		d.marble(other, 1e-3, DefaultEpsilon, math.Inf(1))
	}
}
