package ggscript

import (
	"image"
	"io"

	"github.com/gogpu/ggscript/geom"
	"github.com/gogpu/ggscript/paint"
	"github.com/gogpu/ggscript/resource"
)

// Backend is the capability set a render pass drives. Concrete backends
// rasterize (raster), record (trace) or translate the calls into another
// output format.
//
// Path construction is in user space: points are mapped by the current
// transform when they are added, so changing the transform afterwards
// does not move path points already added.
//
// # Implementation Contract
//
// Each backend must:
//  1. Register in init() using ggscript.Register()
//  2. Handle all Backend methods (even if no-op for some)
//  3. Keep its own stack for Save/Restore covering transform and clip
//  4. Leave the current path untouched when drawing glyphs or images
//
// # Example Backend Registration
//
//	func init() {
//	    ggscript.Register("svg", func() ggscript.Backend {
//	        return NewSVGBackend()
//	    })
//	}
type Backend interface {
	geom.PathBuilder

	// Lifecycle methods

	// Begin prepares a surface of the given size. It must be called
	// before any drawing operation.
	Begin(width, height int) error

	// End finalizes the pass. Output methods are valid afterwards.
	End() error

	// State management methods

	// Save pushes the transform and clip. Restore pops them; restoring
	// with nothing saved is a no-op.
	Save()
	Restore()

	// Path methods, beyond geom.PathBuilder

	// NewPath discards the current path.
	NewPath()

	// Arc appends a circular arc joined to the current point by a line.
	Arc(center geom.Point, radius, a0, a1 float64, sweep geom.Sweep)

	// Rectangle appends the closed rectangle (x,y)-(x+w,y+h).
	Rectangle(x, y, w, h float64)

	// Paint application methods

	// FillPath fills the current path with p. The path is kept when
	// preserve is set and cleared otherwise.
	FillPath(p paint.Paint, preserve bool)

	// StrokePath strokes the current path with p and style.
	StrokePath(p paint.Paint, style StrokeStyle, preserve bool)

	// Clip intersects the clip with the current path and clears it.
	Clip()

	// Transform methods, each composed with the current transform.
	Transform(m geom.Matrix)
	Translate(x, y float64)
	Scale(sx, sy float64)
	Rotate(radians float64)

	// SetAntialias switches edge smoothing and image filtering. It is not
	// part of the state covered by Save and Restore.
	SetAntialias(enabled bool)

	// Text methods

	// ShapeText shapes text with font at size. The result may only be
	// passed to DrawGlyphs of the same backend.
	ShapeText(font resource.Font, size float64, text string) (*ShapedText, error)

	// DrawGlyphs draws shaped text with its origin at (0,0) in user
	// space.
	DrawGlyphs(t *ShapedText, p paint.Paint)

	// Image methods

	// DrawImageRegion draws the src region of img scaled onto dst.
	DrawImageRegion(img resource.Image, src, dst geom.Rect)
}

// Glyph is one positioned glyph of shaped text. Positions are pen
// offsets from the text origin in user space, y-down.
type Glyph struct {
	ID      uint32
	Cluster int // byte offset of the first rune of the glyph's cluster
	X, Y    float64
	Advance float64
}

// ShapedText is text shaped into glyph clusters together with the
// metrics needed to align it.
type ShapedText struct {
	Text   string
	Font   resource.Font
	Size   float64
	Glyphs []Glyph

	// Width is the total advance.
	Width float64

	// Ascent and Descent are the font's extents above and below the
	// baseline, both positive.
	Ascent, Descent float64
}

// Clusters groups the glyphs by cluster, in glyph order.
func (t *ShapedText) Clusters() [][]Glyph {
	var out [][]Glyph
	start := 0
	for i := 1; i <= len(t.Glyphs); i++ {
		if i == len(t.Glyphs) || t.Glyphs[i].Cluster != t.Glyphs[start].Cluster {
			out = append(out, t.Glyphs[start:i])
			start = i
		}
	}
	return out
}

// WriterBackend extends Backend with the ability to write its output to
// an io.Writer after End.
type WriterBackend interface {
	Backend

	// WriteTo writes the rendered output. Returns the number of bytes
	// written and any error.
	WriteTo(w io.Writer) (int64, error)
}

// ImageBackend extends Backend with access to the rendered pixels.
type ImageBackend interface {
	Backend

	// Image returns the rendered image, or nil before Begin.
	Image() image.Image
}
