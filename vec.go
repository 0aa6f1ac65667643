package marbling

import "math"

// Vec2 is a mutable 2D vector.
//
// Unlike gg.Vec2, the arithmetic methods work in place: Add, Sub, Scale and
// Set overwrite the receiver. Drop vertex rings are updated this way on the
// marbling hot path without allocating. Use Copy to take a snapshot before
// mutating.
type Vec2 struct {
	X, Y float64
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add adds w to v component-wise.
func (v *Vec2) Add(w Vec2) {
	v.X += w.X
	v.Y += w.Y
}

// Sub subtracts w from v component-wise.
func (v *Vec2) Sub(w Vec2) {
	v.X -= w.X
	v.Y -= w.Y
}

// Scale multiplies v by c.
func (v *Vec2) Scale(c float64) {
	v.X *= c
	v.Y *= c
}

// Set overwrites v with the components of w.
func (v *Vec2) Set(w Vec2) {
	v.X = w.X
	v.Y = w.Y
}

// Copy returns an independent vector with the same components.
func (v Vec2) Copy() Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}

// Length returns the Euclidean norm of v.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSq returns the squared norm of v.
// This avoids the square root when only magnitudes are compared.
func (v Vec2) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// IsZero returns true if v is the zero vector.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// IsFinite reports whether both components are finite.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Approx returns true if two vectors are approximately equal within epsilon.
func (v Vec2) Approx(w Vec2, epsilon float64) bool {
	return math.Abs(v.X-w.X) < epsilon && math.Abs(v.Y-w.Y) < epsilon
}
