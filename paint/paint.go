// Package paint defines the fill and stroke paints used by the script
// interpreter: solid colors, two-stop linear and radial gradients, and
// image patterns.
package paint

import (
	"fmt"
	"image"

	"github.com/gogpu/ggscript/geom"
)

// Color is a color with four 8-bit channels, not premultiplied.
type Color struct {
	R, G, B, A uint8
}

// RGBA8 is a convenience function to create a Color.
func RGBA8(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Common colors.
var (
	Black       = Color{A: 255}
	White       = Color{R: 255, G: 255, B: 255, A: 255}
	Transparent = Color{}
)

// Float returns the channels scaled to [0, 1] by dividing by 255.
func (c Color) Float() (r, g, b, a float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, float64(c.A) / 255
}

// String returns the color as rgba(r,g,b,a).
func (c Color) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%d)", c.R, c.G, c.B, c.A)
}

// Paint is a fill or stroke coloring rule.
// This is a sealed interface - only types in this package implement it.
type Paint interface {
	// paintMarker is an unexported method that seals this interface.
	paintMarker()
}

// Solid paints with a single color.
type Solid struct {
	Color Color
}

func (Solid) paintMarker() {}

// NewSolid creates a solid paint.
func NewSolid(c Color) Solid {
	return Solid{Color: c}
}

// LinearGradient transitions from StartColor at Start to EndColor at End.
// Offsets 0 and 1 are the only stops.
type LinearGradient struct {
	Start, End           geom.Point
	StartColor, EndColor Color
}

func (LinearGradient) paintMarker() {}

// RadialGradient transitions between two circles sharing Center, from
// StartColor at InnerRadius to EndColor at OuterRadius.
type RadialGradient struct {
	Center                   geom.Point
	InnerRadius, OuterRadius float64
	StartColor, EndColor     Color
}

func (RadialGradient) paintMarker() {}

// ImageKind tells whether an image pattern may be cached between draws.
// Both kinds resolve through the same image lookup.
type ImageKind uint8

const (
	// KindImage is a static image.
	KindImage ImageKind = iota
	// KindStream is a stream frame whose pixels may change between passes,
	// so backends convert it on every draw.
	KindStream
)

// String returns the string representation of an ImageKind.
func (k ImageKind) String() string {
	if k == KindStream {
		return "stream"
	}
	return "image"
}

// ImagePattern paints with an image whose pixel grid is aligned to user
// space at the time of the draw. It samples without smoothing.
type ImagePattern struct {
	ID    string
	Kind  ImageKind
	Image image.Image
}

func (ImagePattern) paintMarker() {}

// IsImage reports whether p samples an image.
func IsImage(p Paint) bool {
	_, ok := p.(ImagePattern)
	return ok
}

// Describe returns a short human readable form of p for logs.
func Describe(p Paint) string {
	switch v := p.(type) {
	case nil:
		return "none"
	case Solid:
		return "solid " + v.Color.String()
	case LinearGradient:
		return fmt.Sprintf("linear (%g,%g)-(%g,%g) %s..%s",
			v.Start.X, v.Start.Y, v.End.X, v.End.Y, v.StartColor, v.EndColor)
	case RadialGradient:
		return fmt.Sprintf("radial (%g,%g) r=%g..%g %s..%s",
			v.Center.X, v.Center.Y, v.InnerRadius, v.OuterRadius, v.StartColor, v.EndColor)
	case ImagePattern:
		return v.Kind.String() + " " + v.ID
	default:
		return fmt.Sprintf("%T", p)
	}
}
