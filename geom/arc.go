package geom

import "math"

// Sweep is the direction an arc is traced in.
type Sweep uint8

const (
	// Clockwise traces an arc with increasing angles, which is clockwise
	// on screen when y points down.
	Clockwise Sweep = iota
	// CounterClockwise traces an arc with decreasing angles.
	CounterClockwise
)

// String returns the string representation of a Sweep.
func (s Sweep) String() string {
	switch s {
	case Clockwise:
		return "cw"
	case CounterClockwise:
		return "ccw"
	default:
		return "unknown"
	}
}

// SweepFor returns the direction that traces the signed angle.
// Positive angles sweep clockwise.
func SweepFor(radians float64) Sweep {
	if radians > 0 {
		return Clockwise
	}
	return CounterClockwise
}

// Cubic is one cubic Bezier segment; the start point is implied.
type Cubic struct {
	C0, C1, P Point
}

// PathBuilder receives path construction calls. Backends implement it,
// and the shape helpers in this package are written against it.
type PathBuilder interface {
	MoveTo(p Point)
	LineTo(p Point)
	CurveTo(c0, c1, p Point)
	ClosePath()
	CurrentPoint() (Point, bool)
}

const maxArcSegment = math.Pi / 2

// ArcSegments approximates a circular arc with cubic Bezier segments of
// at most 90 degrees each. The end angle is first brought within one
// full turn of the start angle in the sweep direction, and a sweep longer
// than one turn is cut to a full circle. The returned start
// point is the arc's first point; for a non-positive radius it is the
// center and no segments are returned.
func ArcSegments(center Point, radius, a0, a1 float64, sweep Sweep) (Point, []Cubic) {
	if radius <= 0 {
		return center, nil
	}
	a1 = normalizeSweep(a0, a1, sweep)
	start := center.Add(Pt(math.Cos(a0), math.Sin(a0)).Mul(radius))

	delta := a1 - a0
	if delta == 0 {
		return start, nil
	}
	// Sweeps past one full turn retrace the circle.
	if math.Abs(delta) > 2*math.Pi {
		delta = math.Copysign(2*math.Pi, delta)
	}
	n := int(math.Ceil(math.Abs(delta)/maxArcSegment - 1e-9))
	if n < 1 {
		n = 1
	}
	step := delta / float64(n)
	segs := make([]Cubic, 0, n)
	for i := 0; i < n; i++ {
		s := a0 + float64(i)*step
		segs = append(segs, arcSegment(center, radius, s, s+step))
	}
	return start, segs
}

// normalizeSweep moves a1 so that tracing from a0 in the sweep direction
// covers less than one extra turn.
func normalizeSweep(a0, a1 float64, sweep Sweep) float64 {
	const twoPi = 2 * math.Pi
	switch sweep {
	case Clockwise:
		if a1 < a0 {
			a1 = math.Mod(a1-a0, twoPi)
			if a1 < 0 {
				a1 += twoPi
			}
			a1 += a0
		}
	case CounterClockwise:
		if a1 > a0 {
			a1 = math.Mod(a1-a0, twoPi)
			if a1 > 0 {
				a1 -= twoPi
			}
			a1 += a0
		}
	}
	return a1
}

// arcSegment returns the cubic for a single arc span of at most 90
// degrees, with handle length 4/3*tan(span/4).
func arcSegment(center Point, radius, a1, a2 float64) Cubic {
	h := 4.0 / 3.0 * math.Tan((a2-a1)/4)

	cos1, sin1 := math.Cos(a1), math.Sin(a1)
	cos2, sin2 := math.Cos(a2), math.Sin(a2)

	p1 := center.Add(Pt(cos1, sin1).Mul(radius))
	p2 := center.Add(Pt(cos2, sin2).Mul(radius))

	return Cubic{
		C0: Pt(p1.X-h*radius*sin1, p1.Y+h*radius*cos1),
		C1: Pt(p2.X+h*radius*sin2, p2.Y-h*radius*cos2),
		P:  p2,
	}
}

// Arc appends a circular arc to b. The arc is joined to the current
// point by a straight line; without a current point it starts a new
// subpath.
func Arc(b PathBuilder, center Point, radius, a0, a1 float64, sweep Sweep) {
	start, segs := ArcSegments(center, radius, a0, a1, sweep)
	if _, ok := b.CurrentPoint(); ok {
		b.LineTo(start)
	} else {
		b.MoveTo(start)
	}
	for _, s := range segs {
		b.CurveTo(s.C0, s.C1, s.P)
	}
}

// ArcTo is the result of SolveArcTo. When Line is set the corner is
// replaced by a straight line to it and the arc fields are unused.
type ArcTo struct {
	Line   bool
	Center Point
	Radius float64
	A0, A1 float64
	Sweep  Sweep
}

// maxTangentLength bounds the distance from the corner to the tangent
// points; larger values come from nearly collinear input.
const maxTangentLength = 10000

// SolveArcTo computes the arc of the given radius tangent to the
// segments p0-p1 and p1-p2. Coincident points, a corner lying on the
// segment p0-p2, a radius below tol and tangent lengths above 10000 all
// degrade to a straight line to p1.
func SolveArcTo(p0, p1, p2 Point, radius, tol float64) ArcTo {
	if PointsEqual(p0, p1, tol) ||
		PointsEqual(p1, p2, tol) ||
		DistPtSegSq(p1, p0, p2) < tol*tol ||
		radius < tol {
		return ArcTo{Line: true}
	}

	d0, _ := p0.Sub(p1).Normalize()
	d1, _ := p2.Sub(p1).Normalize()

	dot := math.Max(-1, math.Min(1, d0.Dot(d1)))
	angle := math.Acos(dot)
	d := radius / math.Tan(angle/2)
	if d > maxTangentLength || math.IsNaN(d) {
		return ArcTo{Line: true}
	}

	if Cross(d0, d1) > 0 {
		return ArcTo{
			Center: Pt(p1.X+d0.X*d+d0.Y*radius, p1.Y+d0.Y*d-d0.X*radius),
			Radius: radius,
			A0:     math.Atan2(d0.X, -d0.Y),
			A1:     math.Atan2(-d1.X, d1.Y),
			Sweep:  Clockwise,
		}
	}
	return ArcTo{
		Center: Pt(p1.X+d0.X*d-d0.Y*radius, p1.Y+d0.Y*d+d0.X*radius),
		Radius: radius,
		A0:     math.Atan2(-d0.X, d0.Y),
		A1:     math.Atan2(d1.X, -d1.Y),
		Sweep:  CounterClockwise,
	}
}
