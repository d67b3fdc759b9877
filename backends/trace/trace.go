// Package trace provides a backend that records every call it receives.
//
// Paths are kept in device space, as a rasterizer would see them, so a
// recorded FillPath shows both the geometry and the effect of the
// transform in force when each point was added. Text is shaped with one
// glyph per rune and fixed metrics, which makes alignment arithmetic easy
// to check.
//
// The backend registers itself as "trace":
//
//	import _ "github.com/gogpu/ggscript/backends/trace"
//
//	b, err := ggscript.NewBackend("trace")
package trace

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/gogpu/ggscript"
	"github.com/gogpu/ggscript/geom"
	"github.com/gogpu/ggscript/paint"
	"github.com/gogpu/ggscript/resource"
)

func init() {
	ggscript.Register("trace", func() ggscript.Backend {
		return New()
	})
}

// Fixed text metrics, as fractions of the font size.
const (
	AdvanceRatio = 0.5
	AscentRatio  = 0.8
	DescentRatio = 0.2
)

// SegmentOp is the kind of a path segment.
type SegmentOp uint8

const (
	MoveTo SegmentOp = iota
	LineTo
	CurveTo
	Close
)

func (op SegmentOp) String() string {
	switch op {
	case MoveTo:
		return "M"
	case LineTo:
		return "L"
	case CurveTo:
		return "C"
	case Close:
		return "Z"
	default:
		return "?"
	}
}

// Segment is one path element in device space.
type Segment struct {
	Op     SegmentOp
	Points []geom.Point
}

// Call is one recorded backend call. Only the fields relevant to Method
// are set.
type Call struct {
	Method    string
	Args      []float64
	Paint     paint.Paint
	Stroke    ggscript.StrokeStyle
	Preserve  bool
	Path      []Segment   // path consumed by FillPath, StrokePath and Clip
	Transform geom.Matrix // transform in force when the call was made
	Enabled   bool        // SetAntialias
	Text      string      // ShapeText, DrawGlyphs
	Image     string      // DrawImageRegion
	Src, Dst  geom.Rect   // DrawImageRegion
}

// String formats the call on one line.
func (c Call) String() string {
	var sb strings.Builder
	sb.WriteString(c.Method)
	for _, a := range c.Args {
		fmt.Fprintf(&sb, " %g", a)
	}
	switch c.Method {
	case "FillPath", "StrokePath":
		fmt.Fprintf(&sb, " %s", paint.Describe(c.Paint))
		if c.Method == "StrokePath" {
			fmt.Fprintf(&sb, " width=%g cap=%s join=%s miter=%g",
				c.Stroke.Width, c.Stroke.Cap, c.Stroke.Join, c.Stroke.MiterLimit)
		}
		if c.Preserve {
			sb.WriteString(" preserve")
		}
		sb.WriteString(" ")
		sb.WriteString(FormatPath(c.Path))
	case "Clip":
		sb.WriteString(" ")
		sb.WriteString(FormatPath(c.Path))
	case "SetAntialias":
		fmt.Fprintf(&sb, " %t", c.Enabled)
	case "ShapeText":
		fmt.Fprintf(&sb, " %q", c.Text)
	case "DrawGlyphs":
		fmt.Fprintf(&sb, " %q %s at (%g,%g)", c.Text, paint.Describe(c.Paint), c.Transform.C, c.Transform.F)
	case "DrawImageRegion":
		fmt.Fprintf(&sb, " %s src=%v dst=%v", c.Image, c.Src, c.Dst)
	}
	return sb.String()
}

// FormatPath formats segments in SVG-like notation.
func FormatPath(path []Segment) string {
	parts := make([]string, 0, len(path))
	for _, s := range path {
		var sb strings.Builder
		sb.WriteString(s.Op.String())
		for i, p := range s.Points {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%g,%g", p.X, p.Y)
		}
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, " ")
}

type savedState struct {
	ctm   geom.Matrix
	clips int
}

// Backend records calls. The zero value is not ready; use New.
type Backend struct {
	// Calls holds every recorded call in order.
	Calls []Call

	// ShapeErr, when set, is returned by ShapeText.
	ShapeErr error

	width, height int
	ctm           geom.Matrix
	stack         []savedState
	clips         [][]Segment
	path          []Segment
	current       geom.Point // device space
	start         geom.Point // device space start of the current subpath
	hasCurrent    bool
	antialias     bool
}

// New creates a trace backend.
func New() *Backend {
	return &Backend{ctm: geom.Identity(), antialias: true}
}

var (
	_ ggscript.WriterBackend = (*Backend)(nil)
	_ geom.PathBuilder       = builder{}
)

func (b *Backend) record(c Call) {
	c.Transform = b.ctm
	b.Calls = append(b.Calls, c)
}

// Begin resets all state and records the surface size.
func (b *Backend) Begin(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("trace: invalid size %dx%d", width, height)
	}
	b.Calls = b.Calls[:0]
	b.width, b.height = width, height
	b.ctm = geom.Identity()
	b.stack = b.stack[:0]
	b.clips = b.clips[:0]
	b.clearPath()
	b.antialias = true
	b.record(Call{Method: "Begin", Args: []float64{float64(width), float64(height)}})
	return nil
}

// End records the end of the pass.
func (b *Backend) End() error {
	b.record(Call{Method: "End"})
	return nil
}

// Save pushes the transform and clip.
func (b *Backend) Save() {
	b.stack = append(b.stack, savedState{ctm: b.ctm, clips: len(b.clips)})
	b.record(Call{Method: "Save"})
}

// Restore pops the transform and clip. It is a no-op on an empty stack.
func (b *Backend) Restore() {
	if n := len(b.stack); n > 0 {
		s := b.stack[n-1]
		b.stack = b.stack[:n-1]
		b.ctm = s.ctm
		b.clips = b.clips[:s.clips]
	}
	b.record(Call{Method: "Restore"})
}

// NewPath discards the current path.
func (b *Backend) NewPath() {
	b.clearPath()
	b.record(Call{Method: "NewPath"})
}

// MoveTo starts a subpath at p.
func (b *Backend) MoveTo(p geom.Point) {
	b.moveTo(p)
	b.record(Call{Method: "MoveTo", Args: []float64{p.X, p.Y}})
}

// LineTo adds a line to p.
func (b *Backend) LineTo(p geom.Point) {
	b.lineTo(p)
	b.record(Call{Method: "LineTo", Args: []float64{p.X, p.Y}})
}

// CurveTo adds a cubic Bezier curve.
func (b *Backend) CurveTo(c0, c1, p geom.Point) {
	b.curveTo(c0, c1, p)
	b.record(Call{Method: "CurveTo", Args: []float64{c0.X, c0.Y, c1.X, c1.Y, p.X, p.Y}})
}

// Arc adds a circular arc.
func (b *Backend) Arc(center geom.Point, radius, a0, a1 float64, sweep geom.Sweep) {
	geom.Arc(builder{b}, center, radius, a0, a1, sweep)
	b.record(Call{Method: "Arc", Args: []float64{center.X, center.Y, radius, a0, a1, float64(sweep)}})
}

// Rectangle adds a closed rectangle.
func (b *Backend) Rectangle(x, y, w, h float64) {
	b.moveTo(geom.Pt(x, y))
	b.lineTo(geom.Pt(x+w, y))
	b.lineTo(geom.Pt(x+w, y+h))
	b.lineTo(geom.Pt(x, y+h))
	b.closePath()
	b.record(Call{Method: "Rectangle", Args: []float64{x, y, w, h}})
}

// ClosePath closes the current subpath.
func (b *Backend) ClosePath() {
	b.closePath()
	b.record(Call{Method: "ClosePath"})
}

// CurrentPoint returns the current point in user space.
func (b *Backend) CurrentPoint() (geom.Point, bool) {
	if !b.hasCurrent {
		return geom.Point{}, false
	}
	inv, _ := b.ctm.Invert()
	return inv.TransformPoint(b.current), true
}

// FillPath records a fill of the current path.
func (b *Backend) FillPath(p paint.Paint, preserve bool) {
	b.record(Call{Method: "FillPath", Paint: p, Preserve: preserve, Path: b.Path()})
	if !preserve {
		b.clearPath()
	}
}

// StrokePath records a stroke of the current path.
func (b *Backend) StrokePath(p paint.Paint, style ggscript.StrokeStyle, preserve bool) {
	b.record(Call{Method: "StrokePath", Paint: p, Stroke: style, Preserve: preserve, Path: b.Path()})
	if !preserve {
		b.clearPath()
	}
}

// Clip adds the current path to the clip and clears it.
func (b *Backend) Clip() {
	path := b.Path()
	b.clips = append(b.clips, path)
	b.record(Call{Method: "Clip", Path: path})
	b.clearPath()
}

// Transform multiplies the transform by m.
func (b *Backend) Transform(m geom.Matrix) {
	b.ctm = b.ctm.Multiply(m)
	b.record(Call{Method: "Transform", Args: []float64{m.A, m.B, m.C, m.D, m.E, m.F}})
}

// Translate translates the transform.
func (b *Backend) Translate(x, y float64) {
	b.ctm = b.ctm.Multiply(geom.Translate(x, y))
	b.record(Call{Method: "Translate", Args: []float64{x, y}})
}

// Scale scales the transform.
func (b *Backend) Scale(sx, sy float64) {
	b.ctm = b.ctm.Multiply(geom.Scale(sx, sy))
	b.record(Call{Method: "Scale", Args: []float64{sx, sy}})
}

// Rotate rotates the transform.
func (b *Backend) Rotate(radians float64) {
	b.ctm = b.ctm.Multiply(geom.Rotate(radians))
	b.record(Call{Method: "Rotate", Args: []float64{radians}})
}

// SetAntialias records the antialias mode.
func (b *Backend) SetAntialias(enabled bool) {
	b.antialias = enabled
	b.record(Call{Method: "SetAntialias", Enabled: enabled})
}

// ShapeText shapes one glyph per rune with an advance of half the size.
func (b *Backend) ShapeText(font resource.Font, size float64, text string) (*ggscript.ShapedText, error) {
	b.record(Call{Method: "ShapeText", Text: text, Args: []float64{size}})
	if b.ShapeErr != nil {
		return nil, b.ShapeErr
	}
	adv := size * AdvanceRatio
	t := &ggscript.ShapedText{
		Text:    text,
		Font:    font,
		Size:    size,
		Glyphs:  make([]ggscript.Glyph, 0, utf8.RuneCountInString(text)),
		Ascent:  size * AscentRatio,
		Descent: size * DescentRatio,
	}
	x := 0.0
	for i, r := range text {
		t.Glyphs = append(t.Glyphs, ggscript.Glyph{ID: uint32(r), Cluster: i, X: x, Advance: adv})
		x += adv
	}
	t.Width = x
	return t, nil
}

// DrawGlyphs records the text drawn at the current origin.
func (b *Backend) DrawGlyphs(t *ggscript.ShapedText, p paint.Paint) {
	b.record(Call{Method: "DrawGlyphs", Text: t.Text, Paint: p, Args: []float64{t.Width}})
}

// DrawImageRegion records an image blit.
func (b *Backend) DrawImageRegion(img resource.Image, src, dst geom.Rect) {
	b.record(Call{Method: "DrawImageRegion", Image: img.ID, Src: src, Dst: dst})
}

// WriteTo writes one line per recorded call.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, c := range b.Calls {
		n, err := io.WriteString(w, c.String()+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// --------------------------------------------------------------------------
// Inspection
// --------------------------------------------------------------------------

// Size returns the size passed to Begin.
func (b *Backend) Size() (width, height int) { return b.width, b.height }

// Path returns a copy of the current path in device space.
func (b *Backend) Path() []Segment {
	out := make([]Segment, len(b.path))
	for i, s := range b.path {
		out[i] = Segment{Op: s.Op, Points: slices.Clone(s.Points)}
	}
	return out
}

// CTM returns the current transform.
func (b *Backend) CTM() geom.Matrix { return b.ctm }

// Depth returns the number of saved states.
func (b *Backend) Depth() int { return len(b.stack) }

// Clips returns the clip paths in force, oldest first.
func (b *Backend) Clips() [][]Segment { return slices.Clone(b.clips) }

// Antialias returns the last antialias mode set.
func (b *Backend) Antialias() bool { return b.antialias }

// Find returns the recorded calls with the given method.
func (b *Backend) Find(method string) []Call {
	var out []Call
	for _, c := range b.Calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// Methods returns the method names of all recorded calls.
func (b *Backend) Methods() []string {
	out := make([]string, len(b.Calls))
	for i, c := range b.Calls {
		out[i] = c.Method
	}
	return out
}

// --------------------------------------------------------------------------
// Path model
// --------------------------------------------------------------------------

func (b *Backend) clearPath() {
	b.path = nil
	b.hasCurrent = false
}

func (b *Backend) moveTo(p geom.Point) {
	d := b.ctm.TransformPoint(p)
	b.path = append(b.path, Segment{Op: MoveTo, Points: []geom.Point{d}})
	b.current, b.start, b.hasCurrent = d, d, true
}

func (b *Backend) lineTo(p geom.Point) {
	if !b.hasCurrent {
		b.moveTo(p)
		return
	}
	d := b.ctm.TransformPoint(p)
	b.path = append(b.path, Segment{Op: LineTo, Points: []geom.Point{d}})
	b.current = d
}

func (b *Backend) curveTo(c0, c1, p geom.Point) {
	if !b.hasCurrent {
		b.moveTo(c0)
	}
	d := b.ctm.TransformPoint(p)
	b.path = append(b.path, Segment{Op: CurveTo, Points: []geom.Point{
		b.ctm.TransformPoint(c0), b.ctm.TransformPoint(c1), d,
	}})
	b.current = d
}

func (b *Backend) closePath() {
	if !b.hasCurrent {
		return
	}
	b.path = append(b.path, Segment{Op: Close})
	b.current = b.start
}

// builder adds path elements without recording calls, so shapes built
// by the geom helpers show up as a single recorded call.
type builder struct{ b *Backend }

func (p builder) MoveTo(pt geom.Point)             { p.b.moveTo(pt) }
func (p builder) LineTo(pt geom.Point)             { p.b.lineTo(pt) }
func (p builder) CurveTo(c0, c1, pt geom.Point)    { p.b.curveTo(c0, c1, pt) }
func (p builder) ClosePath()                       { p.b.closePath() }
func (p builder) CurrentPoint() (geom.Point, bool) { return p.b.CurrentPoint() }
