// Package raster provides a backend that renders scripts to pixels with
// gg's software rasterizer.
//
// # Supported Features
//
//   - Solid, linear gradient, radial gradient and image paints
//   - Path operations (fill, stroke, clip)
//   - Transform matrix
//   - Stroke styling (width, cap, join, miter limit)
//   - State management (Save/Restore)
//   - Text shaped with HarfBuzz and filled from glyph outlines
//   - Sprite blits
//   - PNG output
//
// # Limitations
//
// gg has no antialias switch. SetAntialias is recorded and reported by
// Antialias, and image paints are always sampled nearest-neighbour.
//
// # Example
//
//	// Import to register the backend
//	import _ "github.com/gogpu/ggscript/backends/raster"
//
//	// Create via registry
//	backend, _ := ggscript.NewBackend("raster")
//
//	// Or create directly
//	backend := raster.New()
//
//	// Render and save
//	_ = ggscript.New(backend, registry).Run(script)
//	backend.SavePNG("output.png")
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/ggscript"
	"github.com/gogpu/ggscript/geom"
	"github.com/gogpu/ggscript/internal/cache"
	"github.com/gogpu/ggscript/paint"
	"github.com/gogpu/ggscript/resource"
)

func init() {
	ggscript.Register("raster", func() ggscript.Backend {
		return New()
	})
}

// imageCacheSize bounds the converted images kept during a pass.
const imageCacheSize = 64

// ErrNotStarted is returned by output methods called before Begin.
var ErrNotStarted = errors.New("raster: backend not started")

// Backend renders to a pixel image using gg.Context.
//
// The current path is kept in device space next to the gg context and is
// handed to gg only when it is filled, stroked or clipped, so text and
// sprites can be drawn without disturbing a path under construction.
type Backend struct {
	dc     *gg.Context
	width  int
	height int

	path      *gg.Path // device space
	antialias bool
	images    *cache.Cache[string, *gg.ImageBuf]
	shaper    shaper
	logger    *slog.Logger
}

// Ensure Backend implements all required interfaces.
var (
	_ ggscript.Backend       = (*Backend)(nil)
	_ ggscript.WriterBackend = (*Backend)(nil)
	_ ggscript.ImageBackend  = (*Backend)(nil)
	_ ggscript.LoggerSetter  = (*Backend)(nil)
)

// New creates a raster backend. Begin must be called before drawing.
func New() *Backend {
	return &Backend{path: gg.NewPath(), antialias: true}
}

// SetLogger sends the backend's warnings to l. Without one they go to
// ggscript.Logger.
func (b *Backend) SetLogger(l *slog.Logger) { b.logger = l }

func (b *Backend) log() *slog.Logger {
	if b.logger != nil {
		return b.logger
	}
	return ggscript.Logger()
}

// Begin allocates a transparent surface of the given size.
func (b *Backend) Begin(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("raster: invalid size %dx%d", width, height)
	}
	if b.dc != nil {
		_ = b.dc.Close()
	}
	b.width = width
	b.height = height
	b.dc = gg.NewContext(width, height)
	b.path.Clear()
	b.antialias = true
	b.images = cache.New[string, *gg.ImageBuf](imageCacheSize)
	return nil
}

// End finishes the pass. Cached image buffers are released; the pixels
// stay available to the output methods.
func (b *Backend) End() error {
	if b.dc == nil {
		return ErrNotStarted
	}
	b.images.Clear()
	return nil
}

// Save saves the transform and clip.
func (b *Backend) Save() { b.dc.Push() }

// Restore restores the transform and clip.
func (b *Backend) Restore() { b.dc.Pop() }

// --------------------------------------------------------------------------
// Paths
// --------------------------------------------------------------------------

func (b *Backend) device(p geom.Point) gg.Point {
	return b.dc.GetTransform().TransformPoint(gg.Pt(p.X, p.Y))
}

// NewPath discards the current path.
func (b *Backend) NewPath() { b.path.Clear() }

// MoveTo starts a new subpath at p.
func (b *Backend) MoveTo(p geom.Point) {
	d := b.device(p)
	b.path.MoveTo(d.X, d.Y)
}

// LineTo adds a line to p. Without a current point it behaves as MoveTo.
func (b *Backend) LineTo(p geom.Point) {
	if !b.path.HasCurrentPoint() {
		b.MoveTo(p)
		return
	}
	d := b.device(p)
	b.path.LineTo(d.X, d.Y)
}

// CurveTo adds a cubic Bezier curve. Without a current point the curve
// starts at its first control point.
func (b *Backend) CurveTo(c0, c1, p geom.Point) {
	if !b.path.HasCurrentPoint() {
		b.MoveTo(c0)
	}
	d0, d1, d := b.device(c0), b.device(c1), b.device(p)
	b.path.CubicTo(d0.X, d0.Y, d1.X, d1.Y, d.X, d.Y)
}

// ClosePath closes the current subpath.
func (b *Backend) ClosePath() {
	if b.path.HasCurrentPoint() {
		b.path.Close()
	}
}

// CurrentPoint returns the current point in user space.
func (b *Backend) CurrentPoint() (geom.Point, bool) {
	if !b.path.HasCurrentPoint() {
		return geom.Point{}, false
	}
	p := b.dc.GetTransform().Invert().TransformPoint(b.path.CurrentPoint())
	return geom.Pt(p.X, p.Y), true
}

// Arc adds a circular arc, joined to the current point by a line.
func (b *Backend) Arc(center geom.Point, radius, a0, a1 float64, sweep geom.Sweep) {
	geom.Arc(b, center, radius, a0, a1, sweep)
}

// Rectangle adds a closed rectangle.
func (b *Backend) Rectangle(x, y, w, h float64) {
	b.MoveTo(geom.Pt(x, y))
	b.LineTo(geom.Pt(x+w, y))
	b.LineTo(geom.Pt(x+w, y+h))
	b.LineTo(geom.Pt(x, y+h))
	b.ClosePath()
}

// FillPath fills the current path with p.
func (b *Backend) FillPath(p paint.Paint, preserve bool) {
	b.applyPaint(p, true)
	b.dc.SetPath(b.path)
	if err := b.dc.Fill(); err != nil {
		b.log().Warn("raster: fill failed", "error", err)
	}
	if !preserve {
		b.path.Clear()
	}
}

// StrokePath strokes the current path with p.
func (b *Backend) StrokePath(p paint.Paint, style ggscript.StrokeStyle, preserve bool) {
	b.applyPaint(p, false)
	b.applyStroke(style)
	b.dc.SetPath(b.path)
	if err := b.dc.Stroke(); err != nil {
		b.log().Warn("raster: stroke failed", "error", err)
	}
	if !preserve {
		b.path.Clear()
	}
}

// Clip intersects the clip with the current path and clears it.
func (b *Backend) Clip() {
	b.dc.SetPath(b.path)
	b.dc.Clip()
	b.path.Clear()
}

// --------------------------------------------------------------------------
// Transform
// --------------------------------------------------------------------------

// Transform multiplies the current transform by m.
func (b *Backend) Transform(m geom.Matrix) { b.dc.Transform(toMatrix(m)) }

// Translate translates the current transform.
func (b *Backend) Translate(x, y float64) { b.dc.Translate(x, y) }

// Scale scales the current transform.
func (b *Backend) Scale(sx, sy float64) { b.dc.Scale(sx, sy) }

// Rotate rotates the current transform.
func (b *Backend) Rotate(radians float64) { b.dc.Rotate(radians) }

// SetAntialias records the requested antialias mode.
func (b *Backend) SetAntialias(enabled bool) { b.antialias = enabled }

// Antialias returns the last mode passed to SetAntialias.
func (b *Backend) Antialias() bool { return b.antialias }

func toMatrix(m geom.Matrix) gg.Matrix {
	return gg.Matrix{A: m.A, B: m.B, C: m.C, D: m.D, E: m.E, F: m.F}
}

// --------------------------------------------------------------------------
// Paints
// --------------------------------------------------------------------------

func toRGBA(c paint.Color) gg.RGBA {
	r, g, bl, a := c.Float()
	return gg.RGBA{R: r, G: g, B: bl, A: a}
}

// applyPaint installs p on the gg context. Gradient geometry is mapped to
// device space with the current transform.
func (b *Backend) applyPaint(p paint.Paint, fill bool) {
	ctm := b.dc.GetTransform()

	var brush gg.Brush
	switch pt := p.(type) {
	case paint.Solid:
		brush = gg.Solid(toRGBA(pt.Color))

	case paint.LinearGradient:
		s := ctm.TransformPoint(gg.Pt(pt.Start.X, pt.Start.Y))
		e := ctm.TransformPoint(gg.Pt(pt.End.X, pt.End.Y))
		brush = gg.NewLinearGradientBrush(s.X, s.Y, e.X, e.Y).
			AddColorStop(0, toRGBA(pt.StartColor)).
			AddColorStop(1, toRGBA(pt.EndColor))

	case paint.RadialGradient:
		c := ctm.TransformPoint(gg.Pt(pt.Center.X, pt.Center.Y))
		k := math.Sqrt(math.Abs(ctm.A*ctm.E - ctm.B*ctm.D))
		brush = gg.NewRadialGradientBrush(c.X, c.Y, pt.InnerRadius*k, pt.OuterRadius*k).
			AddColorStop(0, toRGBA(pt.StartColor)).
			AddColorStop(1, toRGBA(pt.EndColor))

	case paint.ImagePattern:
		pattern := b.imagePattern(pt, ctm)
		if pattern == nil {
			brush = gg.Solid(gg.RGBA{})
			break
		}
		if fill {
			b.dc.SetFillPattern(pattern)
		} else {
			b.dc.SetStrokePattern(pattern)
		}
		return

	default:
		brush = gg.Solid(gg.Black)
	}

	if fill {
		b.dc.SetFillBrush(brush)
	} else {
		b.dc.SetStrokeBrush(brush)
	}
}

// imagePattern returns a non-repeating pattern placing the image's origin
// at the user-space origin.
func (b *Backend) imagePattern(p paint.ImagePattern, ctm gg.Matrix) *gg.ImagePattern {
	buf := b.imageBuf(p.ID, p.Kind, p.Image)
	if buf == nil {
		return nil
	}
	pattern, ok := b.dc.CreateImagePattern(buf, 0, 0, 0, 0).(*gg.ImagePattern)
	if !ok {
		return nil
	}
	pattern.SetTransform(ctm)
	pattern.SetClamp(true)
	return pattern
}

// imageBuf converts img for sampling. Images are converted once per pass;
// stream frames change between draws and are always converted.
func (b *Backend) imageBuf(id string, kind paint.ImageKind, img image.Image) *gg.ImageBuf {
	if img == nil {
		return nil
	}
	if kind == paint.KindStream {
		return gg.ImageBufFromImage(img)
	}
	return b.images.GetOrCreate(id, func() *gg.ImageBuf {
		return gg.ImageBufFromImage(img)
	})
}

// applyStroke applies the stroke settings to the context.
func (b *Backend) applyStroke(s ggscript.StrokeStyle) {
	b.dc.SetLineWidth(s.Width)
	b.dc.SetLineCap(convertLineCap(s.Cap))
	b.dc.SetLineJoin(convertLineJoin(s.Join))
	b.dc.SetMiterLimit(s.MiterLimit)
	b.dc.ClearDash()
}

// convertLineCap converts ggscript.LineCap to gg.LineCap.
func convertLineCap(lc ggscript.LineCap) gg.LineCap {
	switch lc {
	case ggscript.LineCapRound:
		return gg.LineCapRound
	case ggscript.LineCapSquare:
		return gg.LineCapSquare
	default:
		return gg.LineCapButt
	}
}

// convertLineJoin converts ggscript.LineJoin to gg.LineJoin.
func convertLineJoin(join ggscript.LineJoin) gg.LineJoin {
	switch join {
	case ggscript.LineJoinRound:
		return gg.LineJoinRound
	case ggscript.LineJoinBevel:
		return gg.LineJoinBevel
	default:
		return gg.LineJoinMiter
	}
}

// --------------------------------------------------------------------------
// Images
// --------------------------------------------------------------------------

// DrawImageRegion draws the src region of img scaled onto dst. The
// current path is left untouched.
func (b *Backend) DrawImageRegion(img resource.Image, src, dst geom.Rect) {
	m, ok := src.MapTo(dst)
	if !ok {
		return
	}
	buf := b.imageBuf(img.ID, paint.KindImage, img.Data)
	if buf == nil {
		return
	}
	pattern, ok := b.dc.CreateImagePattern(buf, 0, 0, 0, 0).(*gg.ImagePattern)
	if !ok {
		return
	}
	pattern.SetTransform(b.dc.GetTransform().Multiply(toMatrix(m)))
	pattern.SetClamp(true)

	b.dc.ClearPath()
	b.dc.SetFillPattern(pattern)
	b.dc.DrawRectangle(dst.X, dst.Y, dst.W, dst.H)
	if err := b.dc.Fill(); err != nil {
		b.log().Warn("raster: image draw failed", "image", img.ID, "error", err)
	}
}

// --------------------------------------------------------------------------
// Output
// --------------------------------------------------------------------------

// WriteTo writes the rendered content as PNG to the given writer.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if b.dc == nil {
		return 0, ErrNotStarted
	}
	cw := &countingWriter{w: w}
	err := png.Encode(cw, b.dc.Image())
	return cw.n, err
}

// SavePNG saves the rendered content as a PNG file.
func (b *Backend) SavePNG(path string) error {
	if b.dc == nil {
		return ErrNotStarted
	}
	return b.dc.SavePNG(path)
}

// Image returns the rendered image, or nil before Begin.
func (b *Backend) Image() image.Image {
	if b.dc == nil {
		return nil
	}
	return b.dc.Image()
}

// Width returns the surface width.
func (b *Backend) Width() int { return b.width }

// Height returns the surface height.
func (b *Backend) Height() int { return b.height }

// countingWriter wraps an io.Writer and counts bytes written.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
