package ggscript

import (
	"math"
	"reflect"
	"testing"

	"github.com/gogpu/ggscript/geom"
)

func TestOpTypeNames(t *testing.T) {
	seen := make(map[string]OpType)
	for op := OpType(0); op < opCount; op++ {
		name := op.String()
		if name == "" || name == "unknown" {
			t.Errorf("OpType %d has no name", op)
			continue
		}
		if prev, dup := seen[name]; dup {
			t.Errorf("name %q used by %d and %d", name, prev, op)
		}
		seen[name] = op

		got, ok := LookupOpType(name)
		if !ok || got != op {
			t.Errorf("LookupOpType(%q) = %d, %v, want %d", name, got, ok, op)
		}
	}
	if opCount.String() != "unknown" {
		t.Errorf("opCount.String() = %q, want unknown", opCount.String())
	}
	if _, ok := LookupOpType("draw_hexagon"); ok {
		t.Error("LookupOpType accepted an unknown name")
	}
}

func TestOpTypes(t *testing.T) {
	tests := []struct {
		op   Op
		want OpType
	}{
		{DrawLineOp{}, OpDrawLine},
		{DrawTriangleOp{}, OpDrawTriangle},
		{DrawQuadOp{}, OpDrawQuad},
		{DrawRectOp{}, OpDrawRect},
		{DrawRRectOp{}, OpDrawRRect},
		{DrawArcOp{}, OpDrawArc},
		{DrawSectorOp{}, OpDrawSector},
		{DrawCircleOp{}, OpDrawCircle},
		{DrawEllipseOp{}, OpDrawEllipse},
		{DrawTextOp{}, OpDrawText},
		{DrawSpritesOp{}, OpDrawSprites},
		{BeginPathOp{}, OpBeginPath},
		{ClosePathOp{}, OpClosePath},
		{FillPathOp{}, OpFillPath},
		{StrokePathOp{}, OpStrokePath},
		{MoveToOp{}, OpMoveTo},
		{LineToOp{}, OpLineTo},
		{ArcToOp{}, OpArcTo},
		{BezierToOp{}, OpBezierTo},
		{QuadraticToOp{}, OpQuadraticTo},
		{ArcOp{}, OpArc},
		{PushStateOp{}, OpPushState},
		{PopStateOp{}, OpPopState},
		{ScissorOp{}, OpScissor},
		{TransformOp{}, OpTransform},
		{ScaleOp{}, OpScale},
		{RotateOp{}, OpRotate},
		{TranslateOp{}, OpTranslate},
		{FillColorOp{}, OpFillColor},
		{FillLinearOp{}, OpFillLinear},
		{FillRadialOp{}, OpFillRadial},
		{FillImageOp{}, OpFillImage},
		{FillStreamOp{}, OpFillStream},
		{StrokeColorOp{}, OpStrokeColor},
		{StrokeLinearOp{}, OpStrokeLinear},
		{StrokeRadialOp{}, OpStrokeRadial},
		{StrokeImageOp{}, OpStrokeImage},
		{StrokeStreamOp{}, OpStrokeStream},
		{StrokeWidthOp{}, OpStrokeWidth},
		{LineCapOp{}, OpLineCap},
		{LineJoinOp{}, OpLineJoin},
		{MiterLimitOp{}, OpMiterLimit},
		{FontOp{}, OpFont},
		{FontSizeOp{}, OpFontSize},
		{TextAlignOp{}, OpTextAlign},
		{TextBaseOp{}, OpTextBase},
	}
	if len(tests) != int(opCount) {
		t.Fatalf("table covers %d opcodes, want %d", len(tests), opCount)
	}
	for _, tt := range tests {
		if got := tt.op.Type(); got != tt.want {
			t.Errorf("%T.Type() = %v, want %v", tt.op, got, tt.want)
		}
	}
}

func TestOpFinite(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		op   Op
		want bool
	}{
		{DrawRRectOp{Width: 1, Height: 1, Radius: 1}, true},
		{DrawRRectOp{Radius: nan}, false},
		{ArcToOp{P1: geom.Pt(1, 1), P2: geom.Pt(2, 2), Radius: math.Inf(1)}, false},
		{BezierToOp{C1: geom.Pt(nan, 0)}, false},
		{FillRadialOp{Outer: nan}, false},
		{StrokeLinearOp{End: geom.Pt(0, math.Inf(-1))}, false},
		{FontSizeOp{Size: 12}, true},
		{ScaleOp{X: 1, Y: nan}, false},
		{DrawSpritesOp{Sprites: []Sprite{{Dst: geom.NewRect(0, nan, 1, 1)}}}, false},
	}
	for _, tt := range tests {
		f, ok := tt.op.(finiteChecker)
		if !ok {
			t.Errorf("%T carries numbers but has no finite check", tt.op)
			continue
		}
		if got := f.finite(); got != tt.want {
			t.Errorf("%T%+v finite() = %v, want %v", tt.op, tt.op, got, tt.want)
		}
	}
}

func TestParseStyleNames(t *testing.T) {
	for _, name := range []string{"butt", "round", "square"} {
		c, err := ParseLineCap(name)
		if err != nil || c.String() != name {
			t.Errorf("ParseLineCap(%q) = %v, %v", name, c, err)
		}
	}
	for _, name := range []string{"miter", "round", "bevel"} {
		j, err := ParseLineJoin(name)
		if err != nil || j.String() != name {
			t.Errorf("ParseLineJoin(%q) = %v, %v", name, j, err)
		}
	}
	for _, name := range []string{"left", "center", "right"} {
		a, err := ParseTextAlign(name)
		if err != nil || a.String() != name {
			t.Errorf("ParseTextAlign(%q) = %v, %v", name, a, err)
		}
	}
	for _, name := range []string{"alphabetic", "top", "middle", "bottom"} {
		b, err := ParseTextBaseline(name)
		if err != nil || b.String() != name {
			t.Errorf("ParseTextBaseline(%q) = %v, %v", name, b, err)
		}
	}

	if _, err := ParseLineCap("pointy"); err == nil {
		t.Error("ParseLineCap accepted an unknown name")
	}
	if _, err := ParseTextBaseline("hanging"); err == nil {
		t.Error("ParseTextBaseline accepted an unknown name")
	}
}

func TestAlignOffset(t *testing.T) {
	tests := []struct {
		align TextAlign
		want  float64
	}{
		{TextAlignLeft, 0},
		{TextAlignCenter, -50},
		{TextAlignRight, -100},
	}
	for _, tt := range tests {
		if got := AlignOffset(tt.align, 100); got != tt.want {
			t.Errorf("AlignOffset(%v, 100) = %v, want %v", tt.align, got, tt.want)
		}
	}
}

func TestBaselineOffset(t *testing.T) {
	tests := []struct {
		base TextBaseline
		want float64
	}{
		{TextBaselineAlphabetic, 0},
		{TextBaselineTop, 12},
		{TextBaselineMiddle, 4},
		{TextBaselineBottom, -4},
	}
	for _, tt := range tests {
		if got := BaselineOffset(tt.base, 12, 4); got != tt.want {
			t.Errorf("BaselineOffset(%v, 12, 4) = %v, want %v", tt.base, got, tt.want)
		}
	}
}

func TestShapedTextClusters(t *testing.T) {
	st := &ShapedText{Glyphs: []Glyph{
		{ID: 1, Cluster: 0},
		{ID: 2, Cluster: 1},
		{ID: 3, Cluster: 1},
		{ID: 4, Cluster: 3},
	}}
	got := st.Clusters()
	want := [][]Glyph{
		{{ID: 1, Cluster: 0}},
		{{ID: 2, Cluster: 1}, {ID: 3, Cluster: 1}},
		{{ID: 4, Cluster: 3}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Clusters() = %v, want %v", got, want)
	}
	if c := (&ShapedText{}).Clusters(); len(c) != 0 {
		t.Errorf("empty text has %d clusters", len(c))
	}
}

func TestStateStack(t *testing.T) {
	var st StateStack
	if _, err := st.Pop(); err != ErrStateStackUnderflow {
		t.Fatalf("Pop on empty stack = %v, want ErrStateStackUnderflow", err)
	}

	s := DefaultState()
	s.Clip = []Scissor{{Width: 1, Height: 1}}
	st.Push(s)
	s.Clip[0].Width = 5

	got, err := st.Pop()
	if err != nil {
		t.Fatal(err)
	}
	if got.Clip[0].Width != 1 {
		t.Error("Push did not copy the clip list")
	}
	if st.Len() != 0 {
		t.Errorf("Len() = %d, want 0", st.Len())
	}
}
