package schedule

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/marbling"
)

func TestIsPrime(t *testing.T) {
	primes := map[uint64]bool{2: true, 3: true, 5: true, 7: true, 11: true, 13: true, 17: true, 19: true, 23: true, 29: true}
	for n := uint64(0); n < 30; n++ {
		if got := IsPrime(n); got != primes[n] {
			t.Errorf("IsPrime(%d) = %v, want %v", n, got, primes[n])
		}
	}
	// Carmichael number and a large prime.
	if IsPrime(561) {
		t.Error("IsPrime(561) = true")
	}
	if !IsPrime(1_000_000_007) {
		t.Error("IsPrime(1e9+7) = false")
	}
}

func TestNext_PrimeFrames(t *testing.T) {
	s, err := New(Config{Width: 100, Height: 100, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}

	var got []uint64
	for range 30 {
		if _, ok := s.Next(); ok {
			got = append(got, s.Frame())
		}
	}

	want := []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("spawn frames mismatch (-want +got):\n%s", diff)
	}
}

func TestNext_Bounds(t *testing.T) {
	s, err := New(Config{Width: 640, Height: 480, MinRadius: 10, MaxRadius: 50, Seed: 7})
	if err != nil {
		t.Fatal(err)
	}

	for range 200 {
		req := s.Draw()
		if req.X < 0 || req.X >= 640 || req.Y < 0 || req.Y >= 480 {
			t.Fatalf("position (%g,%g) outside canvas", req.X, req.Y)
		}
		if req.R < 10 || req.R > 50 {
			t.Fatalf("radius %g outside [10,50]", req.R)
		}
	}
}

func TestDeterministic(t *testing.T) {
	run := func() []Request {
		s, _ := New(Config{Width: 10, Height: 10, MinRadius: 1, MaxRadius: 2, Seed: 42})
		var reqs []Request
		for range 50 {
			if req, ok := s.Next(); ok {
				reqs = append(reqs, req)
			}
		}
		return reqs
	}

	if diff := cmp.Diff(run(), run()); diff != "" {
		t.Errorf("same seed produced different requests (-a +b):\n%s", diff)
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero width", Config{Height: 10}},
		{"negative height", Config{Width: 10, Height: -1}},
		{"inverted radius", Config{Width: 10, Height: 10, MinRadius: 5, MaxRadius: 1}},
		{"max without min", Config{Width: 10, Height: 10, MaxRadius: 5}},
		{"negative min", Config{Width: 10, Height: 10, MinRadius: -1, MaxRadius: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); !errors.Is(err, marbling.ErrInvalidConfiguration) {
				t.Errorf("New() error = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestHappyPalette(t *testing.T) {
	p := HappyPalette(0.5, 0.8)
	rng := rand.New(rand.NewPCG(1, 2))

	for range 100 {
		c := p(rng)
		hi := max(c.R, c.G, c.B)
		// Value is the largest channel.
		if hi < 203 {
			t.Fatalf("color %v darker than value 0.8", c)
		}
	}
}

func TestFixed(t *testing.T) {
	c := marbling.RGB(1, 2, 3)
	s, _ := New(Config{Width: 1, Height: 1, Palette: Fixed(c)})
	if got := s.Draw().Color; got != c {
		t.Errorf("Color = %v, want %v", got, c)
	}
}

func TestApply(t *testing.T) {
	eng, err := marbling.NewEngine(marbling.WithDetail(16), marbling.WithDropCap(100))
	if err != nil {
		t.Fatal(err)
	}
	defer eng.Close()

	s, _ := New(Config{Width: 100, Height: 100, Seed: 3})
	spawned := 0
	for range 100 {
		d, err := s.Apply(eng)
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if d != nil {
			spawned++
			if d.Radius() != marbling.DefaultRadius {
				t.Errorf("Radius() = %g, want default %g", d.Radius(), marbling.DefaultRadius)
			}
		}
	}

	// There are 25 primes below 100.
	if spawned != 25 || eng.Len() != 25 {
		t.Errorf("spawned %d, engine holds %d, want 25", spawned, eng.Len())
	}
}

func TestResize(t *testing.T) {
	s, _ := New(Config{Width: 1000, Height: 1000, Seed: 9})
	if err := s.Resize(20, 10); err != nil {
		t.Fatalf("Resize: %v", err)
	}

	for range 100 {
		req := s.Draw()
		if req.X >= 20 || req.Y >= 10 {
			t.Fatalf("position (%g,%g) outside resized canvas 20x10", req.X, req.Y)
		}
	}

	if err := s.Resize(0, 10); !errors.Is(err, marbling.ErrInvalidConfiguration) {
		t.Errorf("Resize(0, 10) = %v, want ErrInvalidConfiguration", err)
	}
}
