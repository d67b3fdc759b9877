package ggscript

import (
	"github.com/gogpu/ggscript/geom"
	"github.com/gogpu/ggscript/paint"
)

// OpType identifies the type of an opcode.
type OpType uint8

const (
	// Shape opcodes
	OpDrawLine OpType = iota
	OpDrawTriangle
	OpDrawQuad
	OpDrawRect
	OpDrawRRect
	OpDrawArc
	OpDrawSector
	OpDrawCircle
	OpDrawEllipse
	OpDrawText
	OpDrawSprites

	// Path opcodes
	OpBeginPath
	OpClosePath
	OpFillPath
	OpStrokePath
	OpMoveTo
	OpLineTo
	OpArcTo
	OpBezierTo
	OpQuadraticTo
	OpArc

	// State and transform opcodes
	OpPushState
	OpPopState
	OpScissor
	OpTransform
	OpScale
	OpRotate
	OpTranslate

	// Paint opcodes
	OpFillColor
	OpFillLinear
	OpFillRadial
	OpFillImage
	OpFillStream
	OpStrokeColor
	OpStrokeLinear
	OpStrokeRadial
	OpStrokeImage
	OpStrokeStream

	// Style opcodes
	OpStrokeWidth
	OpLineCap
	OpLineJoin
	OpMiterLimit
	OpFont
	OpFontSize
	OpTextAlign
	OpTextBase

	opCount
)

// opTypeNames are the script names of each opcode.
var opTypeNames = [...]string{
	OpDrawLine:     "draw_line",
	OpDrawTriangle: "draw_triangle",
	OpDrawQuad:     "draw_quad",
	OpDrawRect:     "draw_rect",
	OpDrawRRect:    "draw_rrect",
	OpDrawArc:      "draw_arc",
	OpDrawSector:   "draw_sector",
	OpDrawCircle:   "draw_circle",
	OpDrawEllipse:  "draw_ellipse",
	OpDrawText:     "draw_text",
	OpDrawSprites:  "draw_sprites",
	OpBeginPath:    "begin_path",
	OpClosePath:    "close_path",
	OpFillPath:     "fill_path",
	OpStrokePath:   "stroke_path",
	OpMoveTo:       "move_to",
	OpLineTo:       "line_to",
	OpArcTo:        "arc_to",
	OpBezierTo:     "bezier_to",
	OpQuadraticTo:  "quadratic_to",
	OpArc:          "arc",
	OpPushState:    "push_state",
	OpPopState:     "pop_state",
	OpScissor:      "scissor",
	OpTransform:    "transform",
	OpScale:        "scale",
	OpRotate:       "rotate",
	OpTranslate:    "translate",
	OpFillColor:    "fill_color",
	OpFillLinear:   "fill_linear",
	OpFillRadial:   "fill_radial",
	OpFillImage:    "fill_image",
	OpFillStream:   "fill_stream",
	OpStrokeColor:  "stroke_color",
	OpStrokeLinear: "stroke_linear",
	OpStrokeRadial: "stroke_radial",
	OpStrokeImage:  "stroke_image",
	OpStrokeStream: "stroke_stream",
	OpStrokeWidth:  "stroke_width",
	OpLineCap:      "line_cap",
	OpLineJoin:     "line_join",
	OpMiterLimit:   "miter_limit",
	OpFont:         "font",
	OpFontSize:     "font_size",
	OpTextAlign:    "text_align",
	OpTextBase:     "text_base",
}

// String returns the script name of an OpType.
func (t OpType) String() string {
	if int(t) < len(opTypeNames) {
		return opTypeNames[t]
	}
	return "unknown"
}

// LookupOpType returns the OpType with the given script name.
func LookupOpType(name string) (OpType, bool) {
	for i, n := range opTypeNames {
		if n == name {
			return OpType(i), true
		}
	}
	return 0, false
}

// Op is implemented by every opcode.
type Op interface {
	// Type returns the OpType for this opcode.
	Type() OpType
}

// finiteChecker is implemented by opcodes carrying numeric arguments.
type finiteChecker interface {
	finite() bool
}

// Script is a decoded drawing script and the size of the surface it
// targets.
type Script struct {
	Width, Height int
	Ops           []Op
}

// Sprite maps a region of a source image onto a destination rectangle.
type Sprite struct {
	Src, Dst geom.Rect
}

// --------------------------------------------------------------------------
// Shape opcodes
// --------------------------------------------------------------------------

// DrawLineOp strokes a single segment. Lines are never filled.
type DrawLineOp struct {
	From, To geom.Point
	Stroke   bool
}

func (DrawLineOp) Type() OpType   { return OpDrawLine }
func (o DrawLineOp) finite() bool { return o.From.IsFinite() && o.To.IsFinite() }

// DrawTriangleOp draws the closed triangle A, B, C.
type DrawTriangleOp struct {
	A, B, C      geom.Point
	Fill, Stroke bool
}

func (DrawTriangleOp) Type() OpType { return OpDrawTriangle }
func (o DrawTriangleOp) finite() bool {
	return o.A.IsFinite() && o.B.IsFinite() && o.C.IsFinite()
}

// DrawQuadOp draws the closed quadrilateral A, B, C, D.
type DrawQuadOp struct {
	A, B, C, D   geom.Point
	Fill, Stroke bool
}

func (DrawQuadOp) Type() OpType { return OpDrawQuad }
func (o DrawQuadOp) finite() bool {
	return o.A.IsFinite() && o.B.IsFinite() && o.C.IsFinite() && o.D.IsFinite()
}

// DrawRectOp draws the rectangle (0,0)-(Width,Height).
type DrawRectOp struct {
	Width, Height float64
	Fill, Stroke  bool
}

func (DrawRectOp) Type() OpType   { return OpDrawRect }
func (o DrawRectOp) finite() bool { return geom.IsFinite(o.Width, o.Height) }

// DrawRRectOp draws a rectangle at the origin with rounded corners.
type DrawRRectOp struct {
	Width, Height, Radius float64
	Fill, Stroke          bool
}

func (DrawRRectOp) Type() OpType   { return OpDrawRRect }
func (o DrawRRectOp) finite() bool { return geom.IsFinite(o.Width, o.Height, o.Radius) }

// DrawArcOp draws an open arc centred on the origin from angle zero
// through the signed angle Radians.
type DrawArcOp struct {
	Radius, Radians float64
	Fill, Stroke    bool
}

func (DrawArcOp) Type() OpType   { return OpDrawArc }
func (o DrawArcOp) finite() bool { return geom.IsFinite(o.Radius, o.Radians) }

// DrawSectorOp draws a pie slice centred on the origin.
type DrawSectorOp struct {
	Radius, Radians float64
	Fill, Stroke    bool
}

func (DrawSectorOp) Type() OpType   { return OpDrawSector }
func (o DrawSectorOp) finite() bool { return geom.IsFinite(o.Radius, o.Radians) }

// DrawCircleOp draws a circle centred on the origin.
type DrawCircleOp struct {
	Radius       float64
	Fill, Stroke bool
}

func (DrawCircleOp) Type() OpType   { return OpDrawCircle }
func (o DrawCircleOp) finite() bool { return geom.IsFinite(o.Radius) }

// DrawEllipseOp draws an ellipse centred on the origin.
type DrawEllipseOp struct {
	RadiusX, RadiusY float64
	Fill, Stroke     bool
}

func (DrawEllipseOp) Type() OpType   { return OpDrawEllipse }
func (o DrawEllipseOp) finite() bool { return geom.IsFinite(o.RadiusX, o.RadiusY) }

// DrawTextOp draws text at the origin with the fill paint, current font,
// size, alignment and baseline.
type DrawTextOp struct {
	Text string
}

func (DrawTextOp) Type() OpType { return OpDrawText }

// DrawSpritesOp draws regions of the image ID.
type DrawSpritesOp struct {
	ID      string
	Sprites []Sprite
}

func (DrawSpritesOp) Type() OpType { return OpDrawSprites }
func (o DrawSpritesOp) finite() bool {
	for _, s := range o.Sprites {
		if !s.Src.IsFinite() || !s.Dst.IsFinite() {
			return false
		}
	}
	return true
}

// --------------------------------------------------------------------------
// Path opcodes
// --------------------------------------------------------------------------

// BeginPathOp discards the current path.
type BeginPathOp struct{}

func (BeginPathOp) Type() OpType { return OpBeginPath }

// ClosePathOp closes the current subpath.
type ClosePathOp struct{}

func (ClosePathOp) Type() OpType { return OpClosePath }

// FillPathOp fills and clears the current path.
type FillPathOp struct{}

func (FillPathOp) Type() OpType { return OpFillPath }

// StrokePathOp strokes and clears the current path.
type StrokePathOp struct{}

func (StrokePathOp) Type() OpType { return OpStrokePath }

// MoveToOp starts a new subpath at P.
type MoveToOp struct {
	P geom.Point
}

func (MoveToOp) Type() OpType   { return OpMoveTo }
func (o MoveToOp) finite() bool { return o.P.IsFinite() }

// LineToOp adds a line to P.
type LineToOp struct {
	P geom.Point
}

func (LineToOp) Type() OpType   { return OpLineTo }
func (o LineToOp) finite() bool { return o.P.IsFinite() }

// ArcToOp rounds the corner at P1 between the current point and P2.
type ArcToOp struct {
	P1, P2 geom.Point
	Radius float64
}

func (ArcToOp) Type() OpType { return OpArcTo }
func (o ArcToOp) finite() bool {
	return o.P1.IsFinite() && o.P2.IsFinite() && geom.IsFinite(o.Radius)
}

// BezierToOp adds a cubic Bezier curve.
type BezierToOp struct {
	C0, C1, P geom.Point
}

func (BezierToOp) Type() OpType { return OpBezierTo }
func (o BezierToOp) finite() bool {
	return o.C0.IsFinite() && o.C1.IsFinite() && o.P.IsFinite()
}

// QuadraticToOp adds a quadratic Bezier curve.
type QuadraticToOp struct {
	C, P geom.Point
}

func (QuadraticToOp) Type() OpType   { return OpQuadraticTo }
func (o QuadraticToOp) finite() bool { return o.C.IsFinite() && o.P.IsFinite() }

// ArcOp adds a circular arc.
type ArcOp struct {
	Center     geom.Point
	Radius     float64
	Start, End float64
	Sweep      geom.Sweep
}

func (ArcOp) Type() OpType { return OpArc }
func (o ArcOp) finite() bool {
	return o.Center.IsFinite() && geom.IsFinite(o.Radius, o.Start, o.End)
}

// --------------------------------------------------------------------------
// State and transform opcodes
// --------------------------------------------------------------------------

// PushStateOp saves the graphics state.
type PushStateOp struct{}

func (PushStateOp) Type() OpType { return OpPushState }

// PopStateOp restores the most recently saved graphics state.
type PopStateOp struct{}

func (PopStateOp) Type() OpType { return OpPopState }

// ScissorOp intersects the clip with the rectangle (0,0)-(Width,Height).
type ScissorOp struct {
	Width, Height float64
}

func (ScissorOp) Type() OpType   { return OpScissor }
func (o ScissorOp) finite() bool { return geom.IsFinite(o.Width, o.Height) }

// TransformOp multiplies the current transform by Matrix.
type TransformOp struct {
	Matrix geom.Matrix
}

func (TransformOp) Type() OpType   { return OpTransform }
func (o TransformOp) finite() bool { return o.Matrix.IsFinite() }

// ScaleOp scales the current transform.
type ScaleOp struct {
	X, Y float64
}

func (ScaleOp) Type() OpType   { return OpScale }
func (o ScaleOp) finite() bool { return geom.IsFinite(o.X, o.Y) }

// RotateOp rotates the current transform.
type RotateOp struct {
	Radians float64
}

func (RotateOp) Type() OpType   { return OpRotate }
func (o RotateOp) finite() bool { return geom.IsFinite(o.Radians) }

// TranslateOp translates the current transform.
type TranslateOp struct {
	X, Y float64
}

func (TranslateOp) Type() OpType   { return OpTranslate }
func (o TranslateOp) finite() bool { return geom.IsFinite(o.X, o.Y) }

// --------------------------------------------------------------------------
// Paint opcodes
// --------------------------------------------------------------------------

// FillColorOp sets a solid fill paint.
type FillColorOp struct {
	Color paint.Color
}

func (FillColorOp) Type() OpType { return OpFillColor }

// FillLinearOp sets a linear gradient fill paint.
type FillLinearOp struct {
	Start, End           geom.Point
	StartColor, EndColor paint.Color
}

func (FillLinearOp) Type() OpType   { return OpFillLinear }
func (o FillLinearOp) finite() bool { return o.Start.IsFinite() && o.End.IsFinite() }

// FillRadialOp sets a radial gradient fill paint.
type FillRadialOp struct {
	Center               geom.Point
	Inner, Outer         float64
	StartColor, EndColor paint.Color
}

func (FillRadialOp) Type() OpType { return OpFillRadial }
func (o FillRadialOp) finite() bool {
	return o.Center.IsFinite() && geom.IsFinite(o.Inner, o.Outer)
}

// FillImageOp sets the image ID as the fill paint.
type FillImageOp struct {
	ID string
}

func (FillImageOp) Type() OpType { return OpFillImage }

// FillStreamOp sets image ID as the fill paint, re-read on every draw.
type FillStreamOp struct {
	ID string
}

func (FillStreamOp) Type() OpType { return OpFillStream }

// StrokeColorOp sets a solid stroke paint.
type StrokeColorOp struct {
	Color paint.Color
}

func (StrokeColorOp) Type() OpType { return OpStrokeColor }

// StrokeLinearOp sets a linear gradient stroke paint.
type StrokeLinearOp struct {
	Start, End           geom.Point
	StartColor, EndColor paint.Color
}

func (StrokeLinearOp) Type() OpType   { return OpStrokeLinear }
func (o StrokeLinearOp) finite() bool { return o.Start.IsFinite() && o.End.IsFinite() }

// StrokeRadialOp sets a radial gradient stroke paint.
type StrokeRadialOp struct {
	Center               geom.Point
	Inner, Outer         float64
	StartColor, EndColor paint.Color
}

func (StrokeRadialOp) Type() OpType { return OpStrokeRadial }
func (o StrokeRadialOp) finite() bool {
	return o.Center.IsFinite() && geom.IsFinite(o.Inner, o.Outer)
}

// StrokeImageOp sets the image ID as the stroke paint.
type StrokeImageOp struct {
	ID string
}

func (StrokeImageOp) Type() OpType { return OpStrokeImage }

// StrokeStreamOp sets image ID as the stroke paint, re-read on every draw.
type StrokeStreamOp struct {
	ID string
}

func (StrokeStreamOp) Type() OpType { return OpStrokeStream }

// --------------------------------------------------------------------------
// Style opcodes
// --------------------------------------------------------------------------

// StrokeWidthOp sets the stroke width.
type StrokeWidthOp struct {
	Width float64
}

func (StrokeWidthOp) Type() OpType   { return OpStrokeWidth }
func (o StrokeWidthOp) finite() bool { return geom.IsFinite(o.Width) }

// LineCapOp sets the line cap.
type LineCapOp struct {
	Cap LineCap
}

func (LineCapOp) Type() OpType { return OpLineCap }

// LineJoinOp sets the line join.
type LineJoinOp struct {
	Join LineJoin
}

func (LineJoinOp) Type() OpType { return OpLineJoin }

// MiterLimitOp sets the miter limit.
type MiterLimitOp struct {
	Limit float64
}

func (MiterLimitOp) Type() OpType   { return OpMiterLimit }
func (o MiterLimitOp) finite() bool { return geom.IsFinite(o.Limit) }

// FontOp selects the font ID.
type FontOp struct {
	ID string
}

func (FontOp) Type() OpType { return OpFont }

// FontSizeOp sets the font size.
type FontSizeOp struct {
	Size float64
}

func (FontSizeOp) Type() OpType   { return OpFontSize }
func (o FontSizeOp) finite() bool { return geom.IsFinite(o.Size) }

// TextAlignOp sets the horizontal text alignment.
type TextAlignOp struct {
	Align TextAlign
}

func (TextAlignOp) Type() OpType { return OpTextAlign }

// TextBaseOp sets the text baseline.
type TextBaseOp struct {
	Baseline TextBaseline
}

func (TextBaseOp) Type() OpType { return OpTextBase }
