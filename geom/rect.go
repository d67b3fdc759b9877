package geom

// Rect is a rectangle given by its origin and signed size. Sprite
// mappings keep the sign so a negative size mirrors the image.
type Rect struct {
	X, Y float64
	W, H float64
}

// NewRect creates a rectangle from position and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// IsEmpty returns true if the rectangle has zero area.
func (r Rect) IsEmpty() bool {
	return r.W == 0 || r.H == 0
}

// IsFinite reports whether origin and size are finite.
func (r Rect) IsFinite() bool {
	return IsFinite(r.X, r.Y, r.W, r.H)
}

// MapTo returns the matrix that maps r onto dst with independent
// horizontal and vertical scale factors dst.W/r.W and dst.H/r.H.
// The second result is false when r is empty.
func (r Rect) MapTo(dst Rect) (Matrix, bool) {
	if r.IsEmpty() {
		return Identity(), false
	}
	m := Translate(dst.X, dst.Y).
		Multiply(Scale(dst.W/r.W, dst.H/r.H)).
		Multiply(Translate(-r.X, -r.Y))
	return m, true
}
