package geom

import "math"

// Kappa90 is the control handle length, as a fraction of the radius, of
// a cubic Bezier approximating a 90 degree circular arc.
const Kappa90 = 0.5522847493

// RectPath appends the rectangle (0,0)-(w,h) as a closed subpath.
func RectPath(b PathBuilder, w, h float64) {
	b.MoveTo(Pt(0, 0))
	b.LineTo(Pt(w, 0))
	b.LineTo(Pt(w, h))
	b.LineTo(Pt(0, h))
	b.ClosePath()
}

// RoundedRect appends the rectangle (0,0)-(w,h) with corners rounded by
// four quadrant arcs, traced top-left, top-right, bottom-right,
// bottom-left. The radius is clamped to [0, min(|w|,|h|)/2]. A zero
// radius traces the same points as RectPath.
func RoundedRect(b PathBuilder, w, h, r float64) {
	r = math.Max(0, math.Min(r, math.Min(math.Abs(w), math.Abs(h))/2))
	const q = math.Pi / 2
	Arc(b, Pt(r, r), r, 2*q, 3*q, Clockwise)
	Arc(b, Pt(w-r, r), r, 3*q, 4*q, Clockwise)
	Arc(b, Pt(w-r, h-r), r, 0, q, Clockwise)
	Arc(b, Pt(r, h-r), r, q, 2*q, Clockwise)
	b.ClosePath()
}

// Ellipse appends an ellipse centred on the origin as four cubic
// segments with handles of Kappa90 times each radius.
func Ellipse(b PathBuilder, rx, ry float64) {
	ox, oy := rx*Kappa90, ry*Kappa90
	b.MoveTo(Pt(-rx, 0))
	b.CurveTo(Pt(-rx, oy), Pt(-ox, ry), Pt(0, ry))
	b.CurveTo(Pt(ox, ry), Pt(rx, oy), Pt(rx, 0))
	b.CurveTo(Pt(rx, -oy), Pt(ox, -ry), Pt(0, -ry))
	b.CurveTo(Pt(-ox, -ry), Pt(-rx, -oy), Pt(-rx, 0))
	b.ClosePath()
}

// Circle appends a full circle centred on the origin.
func Circle(b PathBuilder, r float64) {
	Arc(b, Pt(0, 0), r, 0, 2*math.Pi, Clockwise)
}

// ArcFromZero appends an arc centred on the origin that starts at angle
// zero and sweeps the signed angle.
func ArcFromZero(b PathBuilder, r, radians float64) {
	Arc(b, Pt(0, 0), r, 0, radians, SweepFor(radians))
}

// Sector appends a closed pie slice: a line from the origin to (r,0),
// the signed arc, and back.
func Sector(b PathBuilder, r, radians float64) {
	b.MoveTo(Pt(0, 0))
	b.LineTo(Pt(r, 0))
	ArcFromZero(b, r, radians)
	b.ClosePath()
}

// Polygon appends a closed subpath through pts.
func Polygon(b PathBuilder, pts ...Point) {
	if len(pts) == 0 {
		return
	}
	b.MoveTo(pts[0])
	for _, p := range pts[1:] {
		b.LineTo(p)
	}
	b.ClosePath()
}
