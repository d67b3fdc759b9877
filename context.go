package ggscript

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/gogpu/ggscript/geom"
	"github.com/gogpu/ggscript/paint"
	"github.com/gogpu/ggscript/resource"
)

// RenderContext holds the graphics state of one render pass and drives
// the backend. It is created for a pass and discarded at its end; it must
// not be shared between goroutines.
//
// RenderContext operations never validate numbers. The Interpreter
// rejects non-finite arguments before they reach it.
type RenderContext struct {
	backend Backend
	state   RenderState
	stack   StateStack
	tol     float64
	log     *slog.Logger

	// antialias mode last sent to the backend, valid when aaKnown is set
	aa      bool
	aaKnown bool
}

// NewRenderContext creates a context in the default state drawing to b.
// Begin must already have been called on b.
func NewRenderContext(b Backend, opts ...Option) *RenderContext {
	return newRenderContext(b, buildOptions(opts))
}

func newRenderContext(b Backend, o options) *RenderContext {
	return &RenderContext{
		backend: b,
		state:   DefaultState(),
		tol:     o.tolerance,
		log:     o.log(),
	}
}

// Backend returns the backend the context draws to.
func (c *RenderContext) Backend() Backend { return c.backend }

// State returns a copy of the current render state.
func (c *RenderContext) State() RenderState { return c.state.Clone() }

// Depth returns the number of states saved by PushState and not yet
// restored.
func (c *RenderContext) Depth() int { return c.stack.Len() }

// Tolerance returns the distance tolerance used by ArcTo.
func (c *RenderContext) Tolerance() float64 { return c.tol }

// --------------------------------------------------------------------------
// State stack
// --------------------------------------------------------------------------

// PushState saves the render state together with the backend transform
// and clip.
func (c *RenderContext) PushState() {
	c.stack.Push(c.state)
	c.backend.Save()
}

// PopState restores the backend transform and clip, then the render
// state saved by the matching PushState. Without a matching PushState it
// returns ErrStateStackUnderflow and changes nothing.
func (c *RenderContext) PopState() error {
	if c.stack.Len() == 0 {
		return ErrStateStackUnderflow
	}
	c.backend.Restore()
	s, err := c.stack.Pop()
	if err != nil {
		return err
	}
	c.state = s
	return nil
}

// Finish ends the pass. States still saved are restored on the backend
// and reported as ErrStateStackImbalance.
func (c *RenderContext) Finish() error {
	n := c.stack.Len()
	if n == 0 {
		return nil
	}
	var s RenderState
	for c.stack.Len() > 0 {
		c.backend.Restore()
		s, _ = c.stack.Pop()
	}
	c.state = s
	return fmt.Errorf("%w: %d push_state without pop_state", ErrStateStackImbalance, n)
}

// --------------------------------------------------------------------------
// Paints
// --------------------------------------------------------------------------

// SetFillPaint replaces the fill paint.
func (c *RenderContext) SetFillPaint(p paint.Paint) { c.state.FillPaint = p }

// SetStrokePaint replaces the stroke paint.
func (c *RenderContext) SetStrokePaint(p paint.Paint) { c.state.StrokePaint = p }

// SetFillColor sets a solid fill paint.
func (c *RenderContext) SetFillColor(col paint.Color) {
	c.SetFillPaint(paint.NewSolid(col))
}

// SetFillLinear sets a two-stop linear gradient fill paint.
func (c *RenderContext) SetFillLinear(start, end geom.Point, c0, c1 paint.Color) {
	c.SetFillPaint(paint.LinearGradient{Start: start, End: end, StartColor: c0, EndColor: c1})
}

// SetFillRadial sets a two-stop radial gradient fill paint.
func (c *RenderContext) SetFillRadial(center geom.Point, inner, outer float64, c0, c1 paint.Color) {
	c.SetFillPaint(paint.RadialGradient{
		Center: center, InnerRadius: inner, OuterRadius: outer,
		StartColor: c0, EndColor: c1,
	})
}

// SetFillImage sets img as the fill paint.
func (c *RenderContext) SetFillImage(img resource.Image) {
	c.SetFillPaint(imagePattern(img, paint.KindImage))
}

// SetFillStream sets the stream frame img as the fill paint.
func (c *RenderContext) SetFillStream(img resource.Image) {
	c.SetFillPaint(imagePattern(img, paint.KindStream))
}

// SetStrokeColor sets a solid stroke paint.
func (c *RenderContext) SetStrokeColor(col paint.Color) {
	c.SetStrokePaint(paint.NewSolid(col))
}

// SetStrokeLinear sets a two-stop linear gradient stroke paint.
func (c *RenderContext) SetStrokeLinear(start, end geom.Point, c0, c1 paint.Color) {
	c.SetStrokePaint(paint.LinearGradient{Start: start, End: end, StartColor: c0, EndColor: c1})
}

// SetStrokeRadial sets a two-stop radial gradient stroke paint.
func (c *RenderContext) SetStrokeRadial(center geom.Point, inner, outer float64, c0, c1 paint.Color) {
	c.SetStrokePaint(paint.RadialGradient{
		Center: center, InnerRadius: inner, OuterRadius: outer,
		StartColor: c0, EndColor: c1,
	})
}

// SetStrokeImage sets img as the stroke paint.
func (c *RenderContext) SetStrokeImage(img resource.Image) {
	c.SetStrokePaint(imagePattern(img, paint.KindImage))
}

// SetStrokeStream sets the stream frame img as the stroke paint.
func (c *RenderContext) SetStrokeStream(img resource.Image) {
	c.SetStrokePaint(imagePattern(img, paint.KindStream))
}

func imagePattern(img resource.Image, kind paint.ImageKind) paint.ImagePattern {
	return paint.ImagePattern{ID: img.ID, Kind: kind, Image: img.Data}
}

// setAntialias tells the backend to smooth the next draw unless it
// samples an image.
func (c *RenderContext) setAntialias(p paint.Paint) {
	c.antialias(!paint.IsImage(p))
}

func (c *RenderContext) antialias(on bool) {
	if c.aaKnown && c.aa == on {
		return
	}
	c.backend.SetAntialias(on)
	c.aa, c.aaKnown = on, true
}

// --------------------------------------------------------------------------
// Stroke and text style
// --------------------------------------------------------------------------

// SetStrokeWidth sets the stroke width. Negative widths are clamped to 0.
func (c *RenderContext) SetStrokeWidth(w float64) {
	if w < 0 {
		c.log.Warn("ggscript: negative stroke width clamped", "width", w)
		w = 0
	}
	c.state.StrokeWidth = w
}

// SetLineCap sets the line cap.
func (c *RenderContext) SetLineCap(lc LineCap) { c.state.LineCap = lc }

// SetLineJoin sets the line join.
func (c *RenderContext) SetLineJoin(lj LineJoin) { c.state.LineJoin = lj }

// SetMiterLimit sets the miter limit. Limits below 1 are clamped to 1.
func (c *RenderContext) SetMiterLimit(limit float64) {
	if limit < 1 {
		c.log.Warn("ggscript: miter limit clamped", "limit", limit)
		limit = 1
	}
	c.state.MiterLimit = limit
}

// SetFont selects the font used by DrawText.
func (c *RenderContext) SetFont(f resource.Font) {
	c.state.FontID = f.ID
	c.state.Font = f
}

// SetFontSize sets the font size used by DrawText.
func (c *RenderContext) SetFontSize(size float64) { c.state.FontSize = size }

// SetTextAlign sets the horizontal text alignment.
func (c *RenderContext) SetTextAlign(a TextAlign) { c.state.TextAlign = a }

// SetTextBaseline sets the text baseline.
func (c *RenderContext) SetTextBaseline(b TextBaseline) { c.state.TextBaseline = b }

// --------------------------------------------------------------------------
// Transform and clip
// --------------------------------------------------------------------------

// Transform multiplies the current transform by m.
func (c *RenderContext) Transform(m geom.Matrix) {
	c.state.Transform = c.state.Transform.Multiply(m)
	c.backend.Transform(m)
}

// Translate translates the current transform.
func (c *RenderContext) Translate(x, y float64) {
	c.state.Transform = c.state.Transform.Multiply(geom.Translate(x, y))
	c.backend.Translate(x, y)
}

// Scale scales the current transform.
func (c *RenderContext) Scale(sx, sy float64) {
	c.state.Transform = c.state.Transform.Multiply(geom.Scale(sx, sy))
	c.backend.Scale(sx, sy)
}

// Rotate rotates the current transform.
func (c *RenderContext) Rotate(radians float64) {
	c.state.Transform = c.state.Transform.Multiply(geom.Rotate(radians))
	c.backend.Rotate(radians)
}

// Scissor intersects the clip with the rectangle (0,0)-(w,h) in the
// current coordinate system. The current path is discarded.
func (c *RenderContext) Scissor(w, h float64) {
	c.backend.NewPath()
	c.backend.Rectangle(0, 0, w, h)
	c.backend.Clip()
	c.state.Clip = append(c.state.Clip, Scissor{Transform: c.state.Transform, Width: w, Height: h})
}

// --------------------------------------------------------------------------
// Paths
// --------------------------------------------------------------------------

// BeginPath discards the current path.
func (c *RenderContext) BeginPath() { c.backend.NewPath() }

// ClosePath closes the current subpath.
func (c *RenderContext) ClosePath() { c.backend.ClosePath() }

// MoveTo starts a new subpath at p.
func (c *RenderContext) MoveTo(p geom.Point) { c.backend.MoveTo(p) }

// LineTo adds a line to p.
func (c *RenderContext) LineTo(p geom.Point) { c.backend.LineTo(p) }

// BezierTo adds a cubic Bezier curve.
func (c *RenderContext) BezierTo(c0, c1, p geom.Point) { c.backend.CurveTo(c0, c1, p) }

// QuadraticTo adds a quadratic Bezier curve, elevated to a cubic. It does
// nothing without a current point.
func (c *RenderContext) QuadraticTo(ctrl, p geom.Point) {
	p0, ok := c.backend.CurrentPoint()
	if !ok {
		return
	}
	c0, c1 := geom.QuadToCubic(p0, ctrl, p)
	c.backend.CurveTo(c0, c1, p)
}

// ArcTo rounds the corner at p1 between the current point and p2 with an
// arc of the given radius. Degenerate corners become a line to p1. It
// does nothing without a current point.
func (c *RenderContext) ArcTo(p1, p2 geom.Point, radius float64) {
	p0, ok := c.backend.CurrentPoint()
	if !ok {
		return
	}
	a := geom.SolveArcTo(p0, p1, p2, radius, c.tol)
	if a.Line {
		c.backend.LineTo(p1)
		return
	}
	c.backend.Arc(a.Center, a.Radius, a.A0, a.A1, a.Sweep)
}

// Arc adds a circular arc.
func (c *RenderContext) Arc(center geom.Point, radius, a0, a1 float64, sweep geom.Sweep) {
	c.backend.Arc(center, radius, a0, a1, sweep)
}

// FillPath fills and clears the current path.
func (c *RenderContext) FillPath() { c.FillAndOrStroke(true, false) }

// StrokePath strokes and clears the current path.
func (c *RenderContext) StrokePath() { c.FillAndOrStroke(false, true) }

// FillAndOrStroke paints the current path. When both are requested the
// path is filled first and kept for the stroke. The path is cleared
// afterwards unless neither was requested.
func (c *RenderContext) FillAndOrStroke(fill, stroke bool) {
	if fill {
		c.setAntialias(c.state.FillPaint)
		c.backend.FillPath(c.state.FillPaint, stroke)
	}
	if stroke {
		c.setAntialias(c.state.StrokePaint)
		c.backend.StrokePath(c.state.StrokePaint, c.state.Stroke(), false)
	}
}

// --------------------------------------------------------------------------
// Shapes
// --------------------------------------------------------------------------

// DrawLine adds the segment a-b and strokes it when stroke is set.
func (c *RenderContext) DrawLine(a, b geom.Point, stroke bool) {
	c.backend.MoveTo(a)
	c.backend.LineTo(b)
	c.FillAndOrStroke(false, stroke)
}

// DrawTriangle adds the closed triangle a, b, d and paints it.
func (c *RenderContext) DrawTriangle(a, b, d geom.Point, fill, stroke bool) {
	geom.Polygon(c.backend, a, b, d)
	c.FillAndOrStroke(fill, stroke)
}

// DrawQuad adds the closed quadrilateral a, b, d, e and paints it.
func (c *RenderContext) DrawQuad(a, b, d, e geom.Point, fill, stroke bool) {
	geom.Polygon(c.backend, a, b, d, e)
	c.FillAndOrStroke(fill, stroke)
}

// DrawRect adds the rectangle (0,0)-(w,h) and paints it.
func (c *RenderContext) DrawRect(w, h float64, fill, stroke bool) {
	c.backend.Rectangle(0, 0, w, h)
	c.FillAndOrStroke(fill, stroke)
}

// DrawRRect adds a rounded rectangle at the origin and paints it.
func (c *RenderContext) DrawRRect(w, h, radius float64, fill, stroke bool) {
	geom.RoundedRect(c.backend, w, h, radius)
	c.FillAndOrStroke(fill, stroke)
}

// DrawArc adds an arc centred on the origin from angle zero through the
// signed angle and paints it.
func (c *RenderContext) DrawArc(radius, radians float64, fill, stroke bool) {
	c.backend.Arc(geom.Pt(0, 0), radius, 0, radians, geom.SweepFor(radians))
	c.FillAndOrStroke(fill, stroke)
}

// DrawSector adds a pie slice centred on the origin and paints it.
func (c *RenderContext) DrawSector(radius, radians float64, fill, stroke bool) {
	c.backend.MoveTo(geom.Pt(0, 0))
	c.backend.LineTo(geom.Pt(radius, 0))
	c.backend.Arc(geom.Pt(0, 0), radius, 0, radians, geom.SweepFor(radians))
	c.backend.ClosePath()
	c.FillAndOrStroke(fill, stroke)
}

// DrawCircle adds a circle centred on the origin and paints it.
func (c *RenderContext) DrawCircle(radius float64, fill, stroke bool) {
	c.backend.Arc(geom.Pt(0, 0), radius, 0, 2*math.Pi, geom.Clockwise)
	c.FillAndOrStroke(fill, stroke)
}

// DrawEllipse adds an ellipse centred on the origin and paints it.
func (c *RenderContext) DrawEllipse(rx, ry float64, fill, stroke bool) {
	geom.Ellipse(c.backend, rx, ry)
	c.FillAndOrStroke(fill, stroke)
}

// DrawText shapes text with the current font and size and draws it with
// the fill paint, offset by the alignment and baseline. Text that cannot
// be shaped is skipped.
func (c *RenderContext) DrawText(text string) {
	if text == "" {
		return
	}
	shaped, err := c.backend.ShapeText(c.state.Font, c.state.FontSize, text)
	if err != nil {
		c.log.Warn("ggscript: text shaping failed",
			"font", c.state.FontID, "size", c.state.FontSize, "text", text, "error", err)
		return
	}
	dx := AlignOffset(c.state.TextAlign, shaped.Width)
	dy := BaselineOffset(c.state.TextBaseline, shaped.Ascent, shaped.Descent)

	c.backend.Save()
	c.backend.Translate(dx, dy)
	c.setAntialias(c.state.FillPaint)
	c.backend.DrawGlyphs(shaped, c.state.FillPaint)
	c.backend.Restore()
}

// DrawSprites draws each sprite's source region of img onto its
// destination rectangle without smoothing. Sprites with an empty source
// or destination are skipped.
func (c *RenderContext) DrawSprites(img resource.Image, sprites []Sprite) {
	c.antialias(false)
	for i, s := range sprites {
		if s.Src.IsEmpty() || s.Dst.IsEmpty() {
			c.log.Debug("ggscript: empty sprite skipped", "image", img.ID, "sprite", i)
			continue
		}
		c.backend.DrawImageRegion(img, s.Src, s.Dst)
	}
}
