package scriptfile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/ggscript"
	"github.com/gogpu/ggscript/geom"
	"github.com/gogpu/ggscript/paint"
)

// Entry errors.
var (
	ErrUnknownOp   = errors.New("unknown op")
	ErrArity       = errors.New("wrong number of args")
	ErrMissingID   = errors.New("missing id")
	ErrBadColor    = errors.New("invalid color")
	ErrBadSprite   = errors.New("sprite needs 8 numbers: src x y w h, dst x y w h")
	ErrUnknownMode = errors.New("unknown mode")
)

// arity is the number of numeric args each opcode takes.
var arity = map[ggscript.OpType]int{
	ggscript.OpDrawLine:     4,
	ggscript.OpDrawTriangle: 6,
	ggscript.OpDrawQuad:     8,
	ggscript.OpDrawRect:     2,
	ggscript.OpDrawRRect:    3,
	ggscript.OpDrawArc:      2,
	ggscript.OpDrawSector:   2,
	ggscript.OpDrawCircle:   1,
	ggscript.OpDrawEllipse:  2,
	ggscript.OpMoveTo:       2,
	ggscript.OpLineTo:       2,
	ggscript.OpArcTo:        5,
	ggscript.OpBezierTo:     6,
	ggscript.OpQuadraticTo:  4,
	ggscript.OpArc:          5,
	ggscript.OpScissor:      2,
	ggscript.OpTransform:    6,
	ggscript.OpScale:        2,
	ggscript.OpRotate:       1,
	ggscript.OpTranslate:    2,
	ggscript.OpFillLinear:   4,
	ggscript.OpFillRadial:   4,
	ggscript.OpStrokeLinear: 4,
	ggscript.OpStrokeRadial: 4,
	ggscript.OpStrokeWidth:  1,
	ggscript.OpMiterLimit:   1,
	ggscript.OpFontSize:     1,
}

// Build converts the entry to an opcode.
func (e Entry) Build() (ggscript.Op, error) {
	t, ok := ggscript.LookupOpType(e.Op)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownOp, e.Op)
	}
	if want := arity[t]; len(e.Args) != want {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrArity, len(e.Args), want)
	}
	a := e.Args
	pt := func(i int) geom.Point { return geom.Pt(a[i], a[i+1]) }

	switch t {
	// Shapes
	case ggscript.OpDrawLine:
		return ggscript.DrawLineOp{From: pt(0), To: pt(2), Stroke: e.Stroke}, nil
	case ggscript.OpDrawTriangle:
		return ggscript.DrawTriangleOp{A: pt(0), B: pt(2), C: pt(4), Fill: e.Fill, Stroke: e.Stroke}, nil
	case ggscript.OpDrawQuad:
		return ggscript.DrawQuadOp{A: pt(0), B: pt(2), C: pt(4), D: pt(6), Fill: e.Fill, Stroke: e.Stroke}, nil
	case ggscript.OpDrawRect:
		return ggscript.DrawRectOp{Width: a[0], Height: a[1], Fill: e.Fill, Stroke: e.Stroke}, nil
	case ggscript.OpDrawRRect:
		return ggscript.DrawRRectOp{Width: a[0], Height: a[1], Radius: a[2], Fill: e.Fill, Stroke: e.Stroke}, nil
	case ggscript.OpDrawArc:
		return ggscript.DrawArcOp{Radius: a[0], Radians: a[1], Fill: e.Fill, Stroke: e.Stroke}, nil
	case ggscript.OpDrawSector:
		return ggscript.DrawSectorOp{Radius: a[0], Radians: a[1], Fill: e.Fill, Stroke: e.Stroke}, nil
	case ggscript.OpDrawCircle:
		return ggscript.DrawCircleOp{Radius: a[0], Fill: e.Fill, Stroke: e.Stroke}, nil
	case ggscript.OpDrawEllipse:
		return ggscript.DrawEllipseOp{RadiusX: a[0], RadiusY: a[1], Fill: e.Fill, Stroke: e.Stroke}, nil
	case ggscript.OpDrawText:
		return ggscript.DrawTextOp{Text: e.Text}, nil
	case ggscript.OpDrawSprites:
		if e.ID == "" {
			return nil, ErrMissingID
		}
		sprites, err := buildSprites(e.Sprites)
		if err != nil {
			return nil, err
		}
		return ggscript.DrawSpritesOp{ID: e.ID, Sprites: sprites}, nil

	// Paths
	case ggscript.OpBeginPath:
		return ggscript.BeginPathOp{}, nil
	case ggscript.OpClosePath:
		return ggscript.ClosePathOp{}, nil
	case ggscript.OpFillPath:
		return ggscript.FillPathOp{}, nil
	case ggscript.OpStrokePath:
		return ggscript.StrokePathOp{}, nil
	case ggscript.OpMoveTo:
		return ggscript.MoveToOp{P: pt(0)}, nil
	case ggscript.OpLineTo:
		return ggscript.LineToOp{P: pt(0)}, nil
	case ggscript.OpArcTo:
		return ggscript.ArcToOp{P1: pt(0), P2: pt(2), Radius: a[4]}, nil
	case ggscript.OpBezierTo:
		return ggscript.BezierToOp{C0: pt(0), C1: pt(2), P: pt(4)}, nil
	case ggscript.OpQuadraticTo:
		return ggscript.QuadraticToOp{C: pt(0), P: pt(2)}, nil
	case ggscript.OpArc:
		sweep, err := parseSweep(e.Mode)
		if err != nil {
			return nil, err
		}
		return ggscript.ArcOp{Center: pt(0), Radius: a[2], Start: a[3], End: a[4], Sweep: sweep}, nil

	// State and transforms
	case ggscript.OpPushState:
		return ggscript.PushStateOp{}, nil
	case ggscript.OpPopState:
		return ggscript.PopStateOp{}, nil
	case ggscript.OpScissor:
		return ggscript.ScissorOp{Width: a[0], Height: a[1]}, nil
	case ggscript.OpTransform:
		return ggscript.TransformOp{Matrix: geom.Affine(a[0], a[1], a[2], a[3], a[4], a[5])}, nil
	case ggscript.OpScale:
		return ggscript.ScaleOp{X: a[0], Y: a[1]}, nil
	case ggscript.OpRotate:
		return ggscript.RotateOp{Radians: a[0]}, nil
	case ggscript.OpTranslate:
		return ggscript.TranslateOp{X: a[0], Y: a[1]}, nil

	// Paints
	case ggscript.OpFillColor, ggscript.OpStrokeColor:
		c, err := ParseColor(e.Color)
		if err != nil {
			return nil, err
		}
		if t == ggscript.OpFillColor {
			return ggscript.FillColorOp{Color: c}, nil
		}
		return ggscript.StrokeColorOp{Color: c}, nil
	case ggscript.OpFillLinear, ggscript.OpStrokeLinear:
		c0, c1, err := e.colorPair()
		if err != nil {
			return nil, err
		}
		if t == ggscript.OpFillLinear {
			return ggscript.FillLinearOp{Start: pt(0), End: pt(2), StartColor: c0, EndColor: c1}, nil
		}
		return ggscript.StrokeLinearOp{Start: pt(0), End: pt(2), StartColor: c0, EndColor: c1}, nil
	case ggscript.OpFillRadial, ggscript.OpStrokeRadial:
		c0, c1, err := e.colorPair()
		if err != nil {
			return nil, err
		}
		if t == ggscript.OpFillRadial {
			return ggscript.FillRadialOp{Center: pt(0), Inner: a[2], Outer: a[3], StartColor: c0, EndColor: c1}, nil
		}
		return ggscript.StrokeRadialOp{Center: pt(0), Inner: a[2], Outer: a[3], StartColor: c0, EndColor: c1}, nil
	case ggscript.OpFillImage, ggscript.OpFillStream, ggscript.OpStrokeImage, ggscript.OpStrokeStream, ggscript.OpFont:
		if e.ID == "" {
			return nil, ErrMissingID
		}
		switch t {
		case ggscript.OpFillImage:
			return ggscript.FillImageOp{ID: e.ID}, nil
		case ggscript.OpFillStream:
			return ggscript.FillStreamOp{ID: e.ID}, nil
		case ggscript.OpStrokeImage:
			return ggscript.StrokeImageOp{ID: e.ID}, nil
		case ggscript.OpStrokeStream:
			return ggscript.StrokeStreamOp{ID: e.ID}, nil
		default:
			return ggscript.FontOp{ID: e.ID}, nil
		}

	// Style
	case ggscript.OpStrokeWidth:
		return ggscript.StrokeWidthOp{Width: a[0]}, nil
	case ggscript.OpMiterLimit:
		return ggscript.MiterLimitOp{Limit: a[0]}, nil
	case ggscript.OpFontSize:
		return ggscript.FontSizeOp{Size: a[0]}, nil
	case ggscript.OpLineCap:
		c, err := ggscript.ParseLineCap(e.Mode)
		if err != nil {
			return nil, modeError(err)
		}
		return ggscript.LineCapOp{Cap: c}, nil
	case ggscript.OpLineJoin:
		j, err := ggscript.ParseLineJoin(e.Mode)
		if err != nil {
			return nil, modeError(err)
		}
		return ggscript.LineJoinOp{Join: j}, nil
	case ggscript.OpTextAlign:
		al, err := ggscript.ParseTextAlign(e.Mode)
		if err != nil {
			return nil, modeError(err)
		}
		return ggscript.TextAlignOp{Align: al}, nil
	case ggscript.OpTextBase:
		b, err := ggscript.ParseTextBaseline(e.Mode)
		if err != nil {
			return nil, modeError(err)
		}
		return ggscript.TextBaseOp{Baseline: b}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownOp, e.Op)
}

func modeError(err error) error { return fmt.Errorf("%w: %v", ErrUnknownMode, err) }

func (e Entry) colorPair() (paint.Color, paint.Color, error) {
	c0, err := ParseColor(e.Color)
	if err != nil {
		return paint.Color{}, paint.Color{}, err
	}
	c1, err := ParseColor(e.Color2)
	if err != nil {
		return paint.Color{}, paint.Color{}, err
	}
	return c0, c1, nil
}

func buildSprites(raw [][]float64) ([]ggscript.Sprite, error) {
	sprites := make([]ggscript.Sprite, 0, len(raw))
	for i, s := range raw {
		if len(s) != 8 {
			return nil, fmt.Errorf("sprite %d: %w", i, ErrBadSprite)
		}
		sprites = append(sprites, ggscript.Sprite{
			Src: geom.NewRect(s[0], s[1], s[2], s[3]),
			Dst: geom.NewRect(s[4], s[5], s[6], s[7]),
		})
	}
	return sprites, nil
}

// parseSweep reads an arc direction. Empty means clockwise.
func parseSweep(s string) (geom.Sweep, error) {
	switch s {
	case "", "cw":
		return geom.Clockwise, nil
	case "ccw":
		return geom.CounterClockwise, nil
	default:
		return 0, fmt.Errorf("%w %q: want cw or ccw", ErrUnknownMode, s)
	}
}

// ParseColor reads a color written as #rgb, #rrggbb or #rrggbbaa.
func ParseColor(s string) (paint.Color, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return paint.Color{}, fmt.Errorf("%w %q", ErrBadColor, s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return paint.Color{}, fmt.Errorf("%w %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return paint.Color{}, fmt.Errorf("%w %q", ErrBadColor, s)
	}
	return paint.RGBA8(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}
