package geom

import "math"

// Point represents a 2D point or vector.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// LengthSquared returns the squared length of the vector.
func (p Point) LengthSquared() float64 {
	return p.X*p.X + p.Y*p.Y
}

// Normalize returns the unit vector in the direction of p and the
// original length. Vectors of length 1e-6 or less are returned unchanged.
func (p Point) Normalize() (Point, float64) {
	d := p.Length()
	if d > 1e-6 {
		id := 1.0 / d
		return Point{X: p.X * id, Y: p.Y * id}, d
	}
	return p, d
}

// IsFinite reports whether both coordinates are neither NaN nor infinite.
func (p Point) IsFinite() bool {
	return IsFinite(p.X, p.Y)
}

// IsFinite reports whether every value is neither NaN nor infinite.
func IsFinite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// PointsEqual reports whether a and b are closer than tol.
func PointsEqual(a, b Point, tol float64) bool {
	return b.Sub(a).LengthSquared() < tol*tol
}

// DistPtSegSq returns the squared distance from p to the segment a-b.
// The projection of p onto the segment is clamped to its end points.
func DistPtSegSq(p, a, b Point) float64 {
	seg := b.Sub(a)
	d := seg.LengthSquared()
	t := seg.Dot(p.Sub(a))
	if d > 0 {
		t /= d
	}
	t = math.Max(0, math.Min(1, t))
	return a.Add(seg.Mul(t)).Sub(p).LengthSquared()
}

// Cross returns d1.X*d0.Y - d0.X*d1.Y. In a y-down coordinate system it
// is positive when d1 points counter-clockwise of d0 on screen.
func Cross(d0, d1 Point) float64 {
	return d1.X*d0.Y - d0.X*d1.Y
}

// QuadToCubic elevates the quadratic Bezier p0, c, p1 to a cubic and
// returns the two cubic control points.
func QuadToCubic(p0, c, p1 Point) (c0, c1 Point) {
	c0 = p0.Add(c.Sub(p0).Mul(2.0 / 3.0))
	c1 = p1.Add(c.Sub(p1).Mul(2.0 / 3.0))
	return c0, c1
}
