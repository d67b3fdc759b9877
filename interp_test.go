package ggscript_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"log/slog"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/gogpu/ggscript"
	"github.com/gogpu/ggscript/backends/trace"
	"github.com/gogpu/ggscript/geom"
	"github.com/gogpu/ggscript/paint"
	"github.com/gogpu/ggscript/resource"
)

var (
	red   = paint.RGBA8(255, 0, 0, 255)
	green = paint.RGBA8(0, 255, 0, 255)
	blue  = paint.RGBA8(0, 0, 255, 255)
)

func run(t *testing.T, reg *resource.Registry, ops ...ggscript.Op) (*trace.Backend, error) {
	t.Helper()
	b := trace.New()
	var r ggscript.Resolver
	if reg != nil {
		r = reg
	}
	err := ggscript.New(b, r).Run(ggscript.Script{Width: 100, Height: 100, Ops: ops})
	return b, err
}

func mustRun(t *testing.T, reg *resource.Registry, ops ...ggscript.Op) *trace.Backend {
	t.Helper()
	b, err := run(t, reg, ops...)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return b
}

func TestRunFilledRect(t *testing.T) {
	b := mustRun(t, nil,
		ggscript.FillColorOp{Color: red},
		ggscript.DrawRectOp{Width: 10, Height: 10, Fill: true},
	)

	fills := b.Find("FillPath")
	if len(fills) != 1 {
		t.Fatalf("FillPath calls = %d, want 1", len(fills))
	}
	if got, want := fills[0].Paint, paint.Paint(paint.NewSolid(red)); got != want {
		t.Errorf("paint = %v, want %v", paint.Describe(got), paint.Describe(want))
	}
	if got, want := trace.FormatPath(fills[0].Path), "M0,0 L10,0 L10,10 L0,10 Z"; got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
	if fills[0].Preserve {
		t.Error("fill without stroke should consume the path")
	}
	if len(b.Find("StrokePath")) != 0 {
		t.Error("fill-only rect was stroked")
	}

	methods := b.Methods()
	if methods[0] != "Begin" || methods[len(methods)-1] != "End" {
		t.Errorf("pass not framed by Begin/End: %v", methods)
	}
}

func TestRunPushedTranslateIsScoped(t *testing.T) {
	b := mustRun(t, nil,
		ggscript.PushStateOp{},
		ggscript.TranslateOp{X: 50, Y: 50},
		ggscript.FillColorOp{Color: green},
		ggscript.DrawCircleOp{Radius: 10, Fill: true},
		ggscript.PopStateOp{},
		ggscript.FillColorOp{Color: blue},
		ggscript.DrawRectOp{Width: 10, Height: 10, Fill: true},
	)

	fills := b.Find("FillPath")
	if len(fills) != 2 {
		t.Fatalf("FillPath calls = %d, want 2", len(fills))
	}

	circle := fills[0]
	if circle.Paint != paint.Paint(paint.NewSolid(green)) {
		t.Errorf("circle paint = %s, want green", paint.Describe(circle.Paint))
	}
	start := circle.Path[0]
	if start.Op != trace.MoveTo || !geom.PointsEqual(start.Points[0], geom.Pt(60, 50), 1e-9) {
		t.Errorf("circle starts at %v, want M60,50", start)
	}
	if circle.Transform != geom.Translate(50, 50) {
		t.Errorf("circle drawn under %+v, want translate(50,50)", circle.Transform)
	}

	rect := fills[1]
	if rect.Paint != paint.Paint(paint.NewSolid(blue)) {
		t.Errorf("rect paint = %s, want blue", paint.Describe(rect.Paint))
	}
	if got := trace.FormatPath(rect.Path); got != "M0,0 L10,0 L10,10 L0,10 Z" {
		t.Errorf("rect path = %q, translation leaked past pop_state", got)
	}
	if b.Depth() != 0 {
		t.Errorf("backend depth = %d after balanced script", b.Depth())
	}
}

func TestRunFillThenStroke(t *testing.T) {
	b := mustRun(t, nil,
		ggscript.StrokeColorOp{Color: blue},
		ggscript.StrokeWidthOp{Width: 3},
		ggscript.LineCapOp{Cap: ggscript.LineCapRound},
		ggscript.DrawTriangleOp{A: geom.Pt(0, 0), B: geom.Pt(10, 0), C: geom.Pt(0, 10), Fill: true, Stroke: true},
	)

	var order []string
	for _, c := range b.Calls {
		if c.Method == "FillPath" || c.Method == "StrokePath" {
			order = append(order, c.Method)
		}
	}
	if !reflect.DeepEqual(order, []string{"FillPath", "StrokePath"}) {
		t.Fatalf("paint order = %v, want fill then stroke", order)
	}

	fill := b.Find("FillPath")[0]
	stroke := b.Find("StrokePath")[0]
	if !fill.Preserve {
		t.Error("fill before stroke must preserve the path")
	}
	if stroke.Preserve {
		t.Error("stroke must consume the path")
	}
	if got := trace.FormatPath(stroke.Path); got != "M0,0 L10,0 L0,10 Z" {
		t.Errorf("stroked path = %q", got)
	}
	want := ggscript.StrokeStyle{Width: 3, Cap: ggscript.LineCapRound, Join: ggscript.LineJoinMiter, MiterLimit: 10}
	if stroke.Stroke != want {
		t.Errorf("stroke style = %+v, want %+v", stroke.Stroke, want)
	}
}

func TestRunDrawLineStrokesOnly(t *testing.T) {
	b := mustRun(t, nil,
		ggscript.DrawLineOp{From: geom.Pt(1, 1), To: geom.Pt(9, 9), Stroke: true},
	)
	if len(b.Find("FillPath")) != 0 {
		t.Error("draw_line filled")
	}
	strokes := b.Find("StrokePath")
	if len(strokes) != 1 || trace.FormatPath(strokes[0].Path) != "M1,1 L9,9" {
		t.Errorf("strokes = %+v", strokes)
	}
}

func TestRunShapeWithoutPaintKeepsPath(t *testing.T) {
	b := mustRun(t, nil,
		ggscript.DrawRectOp{Width: 4, Height: 4},
		ggscript.LineToOp{P: geom.Pt(8, 8)},
		ggscript.StrokePathOp{},
	)
	strokes := b.Find("StrokePath")
	if len(strokes) != 1 {
		t.Fatalf("StrokePath calls = %d, want 1", len(strokes))
	}
	if got := trace.FormatPath(strokes[0].Path); got != "M0,0 L4,0 L4,4 L0,4 Z L8,8" {
		t.Errorf("path = %q, want the rectangle extended by the line", got)
	}
}

func TestRunStateStackUnderflow(t *testing.T) {
	b, err := run(t, nil,
		ggscript.FillColorOp{Color: red},
		ggscript.PopStateOp{},
		ggscript.DrawRectOp{Width: 1, Height: 1, Fill: true},
	)
	if !errors.Is(err, ggscript.ErrStateStackUnderflow) {
		t.Fatalf("err = %v, want ErrStateStackUnderflow", err)
	}
	var opErr *ggscript.OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("err = %T, want *OpError", err)
	}
	if opErr.Index != 1 || opErr.Op != ggscript.OpPopState {
		t.Errorf("OpError = %+v, want index 1 pop_state", opErr)
	}
	if len(b.Find("Restore")) != 0 {
		t.Error("underflow must not reach the backend")
	}
	if len(b.Find("FillPath")) != 0 {
		t.Error("ops after the failing op ran")
	}
	if len(b.Find("End")) != 1 {
		t.Error("End not called after a failed pass")
	}
}

func TestRunStateStackImbalance(t *testing.T) {
	b, err := run(t, nil,
		ggscript.PushStateOp{},
		ggscript.TranslateOp{X: 5, Y: 5},
		ggscript.PushStateOp{},
		ggscript.ScissorOp{Width: 10, Height: 10},
	)
	if !errors.Is(err, ggscript.ErrStateStackImbalance) {
		t.Fatalf("err = %v, want ErrStateStackImbalance", err)
	}
	if b.Depth() != 0 {
		t.Errorf("backend depth = %d, want unwound to 0", b.Depth())
	}
	if len(b.Clips()) != 0 || !b.CTM().IsIdentity() {
		t.Error("backend transform and clip not restored")
	}
	if got := len(b.Find("Restore")); got != 2 {
		t.Errorf("Restore calls = %d, want 2", got)
	}
	methods := b.Methods()
	if methods[len(methods)-1] != "End" {
		t.Errorf("last call = %s, want End", methods[len(methods)-1])
	}
}

func TestRunNonFinite(t *testing.T) {
	tests := []struct {
		name string
		op   ggscript.Op
	}{
		{"translate NaN", ggscript.TranslateOp{X: math.NaN()}},
		{"rect Inf", ggscript.DrawRectOp{Width: math.Inf(1), Height: 1, Fill: true}},
		{"move_to", ggscript.MoveToOp{P: geom.Pt(0, math.Inf(-1))}},
		{"stroke_width", ggscript.StrokeWidthOp{Width: math.NaN()}},
		{"transform", ggscript.TransformOp{Matrix: geom.Affine(1, 0, 0, 1, math.NaN(), 0)}},
		{"sprite", ggscript.DrawSpritesOp{ID: "x", Sprites: []ggscript.Sprite{{Src: geom.NewRect(0, 0, math.NaN(), 1)}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := run(t, nil, tt.op)
			if !errors.Is(err, ggscript.ErrNonFinite) {
				t.Fatalf("err = %v, want ErrNonFinite", err)
			}
			for _, m := range b.Methods() {
				if m != "Begin" && m != "End" {
					t.Errorf("non-finite op reached the backend: %s", m)
				}
			}
		})
	}
}

func TestExecuteUnknownResourcesLeaveStateUntouched(t *testing.T) {
	reg := resource.NewRegistry()
	if err := reg.LoadDefaultFont("regular"); err != nil {
		t.Fatal(err)
	}
	prefix := []ggscript.Op{
		ggscript.FillColorOp{Color: red},
		ggscript.StrokeLinearOp{Start: geom.Pt(0, 0), End: geom.Pt(10, 0), StartColor: green, EndColor: blue},
		ggscript.StrokeWidthOp{Width: 3},
		ggscript.FontOp{ID: "regular"},
		ggscript.TranslateOp{X: 5, Y: 5},
		ggscript.MoveToOp{P: geom.Pt(1, 2)},
		ggscript.LineToOp{P: geom.Pt(3, 4)},
	}

	misses := []ggscript.Op{
		ggscript.FillImageOp{ID: "missing"},
		ggscript.StrokeImageOp{ID: "missing"},
		ggscript.FillStreamOp{ID: "missing"},
		ggscript.StrokeStreamOp{ID: "missing"},
		ggscript.FontOp{ID: "missing"},
		ggscript.DrawSpritesOp{ID: "missing", Sprites: []ggscript.Sprite{{Src: geom.NewRect(0, 0, 1, 1), Dst: geom.NewRect(0, 0, 1, 1)}}},
	}
	for _, miss := range misses {
		t.Run(miss.Type().String(), func(t *testing.T) {
			b := trace.New()
			in := ggscript.New(b, reg)
			ctx := ggscript.NewRenderContext(b)
			for _, op := range prefix {
				if err := in.Execute(ctx, op); err != nil {
					t.Fatalf("Execute(%s) error = %v", op.Type(), err)
				}
			}
			before := ctx.State()
			calls := b.Methods()
			path := b.Path()

			if err := in.Execute(ctx, miss); err != nil {
				t.Fatalf("Execute(%s) error = %v", miss.Type(), err)
			}
			if got := ctx.State(); !reflect.DeepEqual(got, before) {
				t.Errorf("state changed:\ngot  %+v\nwant %+v", got, before)
			}
			if got := b.Methods(); !reflect.DeepEqual(got, calls) {
				t.Errorf("calls = %v, want %v", got, calls)
			}
			if got := b.Path(); !reflect.DeepEqual(got, path) {
				t.Errorf("path = %s, want %s", trace.FormatPath(got), trace.FormatPath(path))
			}
		})
	}
}

func TestRunStreamOpsResolveImages(t *testing.T) {
	reg := resource.NewRegistry()
	frame := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if err := reg.PutImage("cam", frame); err != nil {
		t.Fatal(err)
	}

	b := mustRun(t, reg,
		ggscript.FillImageOp{ID: "cam"},
		ggscript.DrawRectOp{Width: 1, Height: 1, Fill: true},
		ggscript.FillStreamOp{ID: "cam"},
		ggscript.StrokeStreamOp{ID: "cam"},
		ggscript.DrawRectOp{Width: 1, Height: 1, Fill: true, Stroke: true},
	)
	fills := b.Find("FillPath")
	if len(fills) != 2 {
		t.Fatalf("FillPath calls = %d, want 2", len(fills))
	}
	type want struct {
		name string
		p    paint.Paint
		kind paint.ImageKind
	}
	tests := []want{
		{"fill_image", fills[0].Paint, paint.KindImage},
		{"fill_stream", fills[1].Paint, paint.KindStream},
	}
	if strokes := b.Find("StrokePath"); len(strokes) == 1 {
		tests = append(tests, want{"stroke_stream", strokes[0].Paint, paint.KindStream})
	} else {
		t.Errorf("StrokePath calls = %d, want 1", len(strokes))
	}
	for _, tt := range tests {
		pat, ok := tt.p.(paint.ImagePattern)
		if !ok || pat.Kind != tt.kind || pat.ID != "cam" {
			t.Errorf("%s paint = %s, want image cam of kind %v", tt.name, paint.Describe(tt.p), tt.kind)
			continue
		}
		if pat.Image != frame {
			t.Errorf("%s did not draw the registered frame", tt.name)
		}
	}
}

func TestRunHugeArcSweep(t *testing.T) {
	b := mustRun(t, nil,
		ggscript.DrawArcOp{Radius: 5, Radians: 1e15, Stroke: true},
		ggscript.DrawSectorOp{Radius: 5, Radians: -math.MaxFloat64, Fill: true},
	)
	if n := len(b.Find("StrokePath")); n != 1 {
		t.Errorf("StrokePath calls = %d, want 1", n)
	}
	if n := len(b.Find("FillPath")); n != 1 {
		t.Errorf("FillPath calls = %d, want 1", n)
	}
}

func TestRunAntialiasFollowsPaint(t *testing.T) {
	reg := resource.NewRegistry()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.White)
	if err := reg.PutImage("tex", img); err != nil {
		t.Fatal(err)
	}

	b := mustRun(t, reg,
		ggscript.DrawRectOp{Width: 2, Height: 2, Fill: true},
		ggscript.FillImageOp{ID: "tex"},
		ggscript.DrawRectOp{Width: 2, Height: 2, Fill: true},
		ggscript.FillColorOp{Color: red},
		ggscript.DrawRectOp{Width: 2, Height: 2, Fill: true},
	)

	var modes []bool
	for _, c := range b.Calls {
		if c.Method == "SetAntialias" {
			modes = append(modes, c.Enabled)
		}
	}
	if !reflect.DeepEqual(modes, []bool{true, false, true}) {
		t.Errorf("antialias modes = %v, want [true false true]", modes)
	}
}

func TestRunSprites(t *testing.T) {
	reg := resource.NewRegistry()
	if err := reg.PutImage("atlas", image.NewRGBA(image.Rect(0, 0, 16, 16))); err != nil {
		t.Fatal(err)
	}

	b := mustRun(t, reg,
		ggscript.DrawSpritesOp{ID: "atlas", Sprites: []ggscript.Sprite{
			{Src: geom.NewRect(0, 0, 8, 8), Dst: geom.NewRect(10, 10, 16, 16)},
			{Src: geom.NewRect(0, 0, 0, 8), Dst: geom.NewRect(0, 0, 8, 8)},
			{Src: geom.NewRect(8, 8, 8, 8), Dst: geom.NewRect(30, 30, 8, 8)},
		}},
	)

	blits := b.Find("DrawImageRegion")
	if len(blits) != 2 {
		t.Fatalf("DrawImageRegion calls = %d, want 2 (empty sprite skipped)", len(blits))
	}
	if blits[0].Image != "atlas" || blits[0].Dst != geom.NewRect(10, 10, 16, 16) {
		t.Errorf("first blit = %+v", blits[0])
	}
	if aa := b.Find("SetAntialias"); len(aa) != 1 || aa[0].Enabled {
		t.Errorf("sprites should disable antialiasing once, got %+v", aa)
	}
}

func TestRunTextAlignment(t *testing.T) {
	// The trace backend shapes "abcd" at size 10 to width 20, ascent 8,
	// descent 2.
	tests := []struct {
		align  ggscript.TextAlign
		base   ggscript.TextBaseline
		dx, dy float64
	}{
		{ggscript.TextAlignLeft, ggscript.TextBaselineAlphabetic, 0, 0},
		{ggscript.TextAlignCenter, ggscript.TextBaselineAlphabetic, -10, 0},
		{ggscript.TextAlignRight, ggscript.TextBaselineTop, -20, 8},
		{ggscript.TextAlignLeft, ggscript.TextBaselineMiddle, 0, 3},
		{ggscript.TextAlignLeft, ggscript.TextBaselineBottom, 0, -2},
	}
	for _, tt := range tests {
		t.Run(tt.align.String()+"/"+tt.base.String(), func(t *testing.T) {
			b := mustRun(t, nil,
				ggscript.TranslateOp{X: 100, Y: 50},
				ggscript.TextAlignOp{Align: tt.align},
				ggscript.TextBaseOp{Baseline: tt.base},
				ggscript.DrawTextOp{Text: "abcd"},
			)
			draws := b.Find("DrawGlyphs")
			if len(draws) != 1 {
				t.Fatalf("DrawGlyphs calls = %d, want 1", len(draws))
			}
			m := draws[0].Transform
			if math.Abs(m.C-(100+tt.dx)) > 1e-9 || math.Abs(m.F-(50+tt.dy)) > 1e-9 {
				t.Errorf("glyph origin = (%g,%g), want (%g,%g)", m.C, m.F, 100+tt.dx, 50+tt.dy)
			}
			if b.CTM() != geom.Translate(100, 50) {
				t.Errorf("text offset leaked into the transform: %+v", b.CTM())
			}
		})
	}
}

func TestRunTextShapingFailureIsSkipped(t *testing.T) {
	var logs bytes.Buffer
	b := trace.New()
	b.ShapeErr = errors.New("broken font")

	err := ggscript.New(b, nil, ggscript.WithLogger(slog.New(slog.NewTextHandler(&logs, nil)))).Run(ggscript.Script{
		Ops: []ggscript.Op{
			ggscript.DrawTextOp{Text: "hello"},
			ggscript.DrawRectOp{Width: 1, Height: 1, Fill: true},
		},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(b.Find("DrawGlyphs")) != 0 {
		t.Error("glyphs drawn after a shaping failure")
	}
	if len(b.Find("FillPath")) != 1 {
		t.Error("pass did not continue after a shaping failure")
	}
	if !strings.Contains(logs.String(), "text shaping failed") {
		t.Errorf("shaping failure not logged: %q", logs.String())
	}
}

func TestRunEmptyTextIsSkipped(t *testing.T) {
	b := mustRun(t, nil, ggscript.DrawTextOp{})
	if len(b.Find("ShapeText")) != 0 {
		t.Error("empty text was shaped")
	}
}

func TestRunScissorClips(t *testing.T) {
	b := mustRun(t, nil,
		ggscript.MoveToOp{P: geom.Pt(1, 1)},
		ggscript.TranslateOp{X: 10, Y: 10},
		ggscript.ScissorOp{Width: 5, Height: 5},
		ggscript.LineToOp{P: geom.Pt(2, 2)},
	)
	clips := b.Find("Clip")
	if len(clips) != 1 {
		t.Fatalf("Clip calls = %d, want 1", len(clips))
	}
	if got := trace.FormatPath(clips[0].Path); got != "M10,10 L15,10 L15,15 L10,15 Z" {
		t.Errorf("clip path = %q", got)
	}
	if got := trace.FormatPath(b.Path()); got != "M12,12" {
		t.Errorf("path after scissor = %q, want a fresh path", got)
	}
}

func TestRunQuadraticTo(t *testing.T) {
	b := mustRun(t, nil,
		ggscript.MoveToOp{P: geom.Pt(0, 0)},
		ggscript.QuadraticToOp{C: geom.Pt(3, 3), P: geom.Pt(6, 0)},
	)
	path := b.Path()
	if len(path) != 2 || path[1].Op != trace.CurveTo {
		t.Fatalf("path = %s", trace.FormatPath(path))
	}
	want := []geom.Point{geom.Pt(2, 2), geom.Pt(4, 2), geom.Pt(6, 0)}
	for i, p := range path[1].Points {
		if !geom.PointsEqual(p, want[i], 1e-12) {
			t.Errorf("point %d = %v, want %v", i, p, want[i])
		}
	}
}

func TestRunCurvesWithoutCurrentPoint(t *testing.T) {
	b := mustRun(t, nil,
		ggscript.QuadraticToOp{C: geom.Pt(3, 3), P: geom.Pt(6, 0)},
		ggscript.ArcToOp{P1: geom.Pt(5, 0), P2: geom.Pt(5, 5), Radius: 2},
	)
	if len(b.Path()) != 0 {
		t.Errorf("path = %s, want empty", trace.FormatPath(b.Path()))
	}
}

func TestRunArcTo(t *testing.T) {
	tests := []struct {
		name    string
		p1, p2  geom.Point
		radius  float64
		wantArc bool
	}{
		{"corner", geom.Pt(10, 0), geom.Pt(10, 10), 2, true},
		{"zero radius", geom.Pt(10, 0), geom.Pt(10, 10), 0, false},
		{"collinear", geom.Pt(10, 0), geom.Pt(20, 0), 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustRun(t, nil,
				ggscript.MoveToOp{P: geom.Pt(0, 0)},
				ggscript.ArcToOp{P1: tt.p1, P2: tt.p2, Radius: tt.radius},
			)
			arcs := b.Find("Arc")
			if tt.wantArc {
				if len(arcs) != 1 {
					t.Fatalf("Arc calls = %d, want 1", len(arcs))
				}
				cx, cy, r := arcs[0].Args[0], arcs[0].Args[1], arcs[0].Args[2]
				if math.Abs(cx-8) > 1e-9 || math.Abs(cy-2) > 1e-9 || r != 2 {
					t.Errorf("arc = center (%g,%g) r=%g, want (8,2) r=2", cx, cy, r)
				}
				return
			}
			if len(arcs) != 0 {
				t.Errorf("degenerate corner drew an arc")
			}
			if got := trace.FormatPath(b.Path()); got != "M0,0 L10,0" {
				t.Errorf("path = %q, want a line to the corner", got)
			}
		})
	}
}

func TestRunStyleClamps(t *testing.T) {
	b := mustRun(t, nil,
		ggscript.StrokeWidthOp{Width: -4},
		ggscript.MiterLimitOp{Limit: 0.5},
		ggscript.DrawLineOp{From: geom.Pt(0, 0), To: geom.Pt(1, 0), Stroke: true},
	)
	s := b.Find("StrokePath")[0].Stroke
	if s.Width != 0 || s.MiterLimit != 1 {
		t.Errorf("stroke = %+v, want width 0 and miter limit 1", s)
	}
}

func TestRunIgnoresNilOps(t *testing.T) {
	b := mustRun(t, nil, nil, ggscript.DrawRectOp{Width: 1, Height: 1, Fill: true}, nil)
	if len(b.Find("FillPath")) != 1 {
		t.Error("nil ops should be skipped")
	}
}

func TestRunWithoutBackend(t *testing.T) {
	if err := ggscript.New(nil, nil).Run(ggscript.Script{}); !errors.Is(err, ggscript.ErrNoBackend) {
		t.Errorf("err = %v, want ErrNoBackend", err)
	}
}

func TestRunDebugLogsEveryOp(t *testing.T) {
	var logs bytes.Buffer
	l := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	b := trace.New()
	err := ggscript.New(b, nil, ggscript.WithDebug(true), ggscript.WithLogger(l)).Run(ggscript.Script{
		Ops: []ggscript.Op{ggscript.BeginPathOp{}, ggscript.ClosePathOp{}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(logs.String(), "ggscript: op"); got != 2 {
		t.Errorf("debug records = %d, want 2:\n%s", got, logs.String())
	}
}
