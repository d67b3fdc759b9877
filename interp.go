package ggscript

import (
	"errors"
	"fmt"
)

// Interpreter replays scripts against a backend. It keeps no state
// between passes, so one Interpreter may run many scripts in sequence;
// concurrent passes need separate backends.
type Interpreter struct {
	backend  Backend
	resolver Resolver
	opts     options
}

// New creates an interpreter drawing to b and resolving resource ids
// with r. A nil resolver resolves nothing. A backend implementing
// LoggerSetter is given the logger passed with WithLogger.
func New(b Backend, r Resolver, opts ...Option) *Interpreter {
	if r == nil {
		r = emptyResolver{}
	}
	o := buildOptions(opts)
	if ls, ok := b.(LoggerSetter); ok && o.logger != nil {
		ls.SetLogger(o.logger)
	}
	return &Interpreter{
		backend:  b,
		resolver: r,
		opts:     o,
	}
}

// Backend returns the interpreter's backend.
func (in *Interpreter) Backend() Backend { return in.backend }

// Run executes one render pass: Begin, every opcode in order, End.
//
// A pop_state without a matching push_state or a non-finite argument
// stops the pass with an *OpError. Opcodes that refer to an unknown
// resource id do nothing. States left pushed at the end are unwound and
// reported with ErrStateStackImbalance. End is called whenever Begin
// succeeded.
func (in *Interpreter) Run(s Script) error {
	if in.backend == nil {
		return ErrNoBackend
	}
	if err := in.backend.Begin(s.Width, s.Height); err != nil {
		return fmt.Errorf("ggscript: begin: %w", err)
	}

	ctx := newRenderContext(in.backend, in.opts)
	log := in.opts.log()

	var runErr error
	for i, op := range s.Ops {
		if op == nil {
			continue
		}
		if in.opts.debug {
			log.Debug("ggscript: op", "index", i, "op", op.Type().String(), "args", op)
		}
		if err := in.dispatch(ctx, op); err != nil {
			runErr = &OpError{Index: i, Op: op.Type(), Err: err}
			break
		}
	}

	if err := ctx.Finish(); err != nil && runErr == nil {
		runErr = err
	}
	if err := in.backend.End(); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("ggscript: end: %w", err))
	}
	return runErr
}

// Execute dispatches a single opcode against ctx. Hosts that drive a
// RenderContext themselves use it to feed opcodes one at a time.
func (in *Interpreter) Execute(ctx *RenderContext, op Op) error {
	if op == nil {
		return nil
	}
	return in.dispatch(ctx, op)
}

func (in *Interpreter) miss(kind, id string, op Op) {
	in.opts.log().Debug("ggscript: unresolved "+kind+", op skipped", "id", id, "op", op.Type().String())
}

func (in *Interpreter) dispatch(ctx *RenderContext, op Op) error {
	if f, ok := op.(finiteChecker); ok && !f.finite() {
		return ErrNonFinite
	}

	switch o := op.(type) {
	// Shapes
	case DrawLineOp:
		ctx.DrawLine(o.From, o.To, o.Stroke)
	case DrawTriangleOp:
		ctx.DrawTriangle(o.A, o.B, o.C, o.Fill, o.Stroke)
	case DrawQuadOp:
		ctx.DrawQuad(o.A, o.B, o.C, o.D, o.Fill, o.Stroke)
	case DrawRectOp:
		ctx.DrawRect(o.Width, o.Height, o.Fill, o.Stroke)
	case DrawRRectOp:
		ctx.DrawRRect(o.Width, o.Height, o.Radius, o.Fill, o.Stroke)
	case DrawArcOp:
		ctx.DrawArc(o.Radius, o.Radians, o.Fill, o.Stroke)
	case DrawSectorOp:
		ctx.DrawSector(o.Radius, o.Radians, o.Fill, o.Stroke)
	case DrawCircleOp:
		ctx.DrawCircle(o.Radius, o.Fill, o.Stroke)
	case DrawEllipseOp:
		ctx.DrawEllipse(o.RadiusX, o.RadiusY, o.Fill, o.Stroke)
	case DrawTextOp:
		ctx.DrawText(o.Text)
	case DrawSpritesOp:
		img, ok := in.resolver.ResolveImage(o.ID)
		if !ok {
			in.miss("image", o.ID, op)
			return nil
		}
		ctx.DrawSprites(img, o.Sprites)

	// Paths
	case BeginPathOp:
		ctx.BeginPath()
	case ClosePathOp:
		ctx.ClosePath()
	case FillPathOp:
		ctx.FillPath()
	case StrokePathOp:
		ctx.StrokePath()
	case MoveToOp:
		ctx.MoveTo(o.P)
	case LineToOp:
		ctx.LineTo(o.P)
	case ArcToOp:
		ctx.ArcTo(o.P1, o.P2, o.Radius)
	case BezierToOp:
		ctx.BezierTo(o.C0, o.C1, o.P)
	case QuadraticToOp:
		ctx.QuadraticTo(o.C, o.P)
	case ArcOp:
		ctx.Arc(o.Center, o.Radius, o.Start, o.End, o.Sweep)

	// State and transforms
	case PushStateOp:
		ctx.PushState()
	case PopStateOp:
		return ctx.PopState()
	case ScissorOp:
		ctx.Scissor(o.Width, o.Height)
	case TransformOp:
		ctx.Transform(o.Matrix)
	case ScaleOp:
		ctx.Scale(o.X, o.Y)
	case RotateOp:
		ctx.Rotate(o.Radians)
	case TranslateOp:
		ctx.Translate(o.X, o.Y)

	// Paints
	case FillColorOp:
		ctx.SetFillColor(o.Color)
	case FillLinearOp:
		ctx.SetFillLinear(o.Start, o.End, o.StartColor, o.EndColor)
	case FillRadialOp:
		ctx.SetFillRadial(o.Center, o.Inner, o.Outer, o.StartColor, o.EndColor)
	case FillImageOp:
		img, ok := in.resolver.ResolveImage(o.ID)
		if !ok {
			in.miss("image", o.ID, op)
			return nil
		}
		ctx.SetFillImage(img)
	case FillStreamOp:
		img, ok := in.resolver.ResolveImage(o.ID)
		if !ok {
			in.miss("image", o.ID, op)
			return nil
		}
		ctx.SetFillStream(img)
	case StrokeColorOp:
		ctx.SetStrokeColor(o.Color)
	case StrokeLinearOp:
		ctx.SetStrokeLinear(o.Start, o.End, o.StartColor, o.EndColor)
	case StrokeRadialOp:
		ctx.SetStrokeRadial(o.Center, o.Inner, o.Outer, o.StartColor, o.EndColor)
	case StrokeImageOp:
		img, ok := in.resolver.ResolveImage(o.ID)
		if !ok {
			in.miss("image", o.ID, op)
			return nil
		}
		ctx.SetStrokeImage(img)
	case StrokeStreamOp:
		img, ok := in.resolver.ResolveImage(o.ID)
		if !ok {
			in.miss("image", o.ID, op)
			return nil
		}
		ctx.SetStrokeStream(img)

	// Style
	case StrokeWidthOp:
		ctx.SetStrokeWidth(o.Width)
	case LineCapOp:
		ctx.SetLineCap(o.Cap)
	case LineJoinOp:
		ctx.SetLineJoin(o.Join)
	case MiterLimitOp:
		ctx.SetMiterLimit(o.Limit)
	case FontOp:
		f, ok := in.resolver.ResolveFont(o.ID)
		if !ok {
			in.miss("font", o.ID, op)
			return nil
		}
		ctx.SetFont(f)
	case FontSizeOp:
		ctx.SetFontSize(o.Size)
	case TextAlignOp:
		ctx.SetTextAlign(o.Align)
	case TextBaseOp:
		ctx.SetTextBaseline(o.Baseline)

	default:
		in.opts.log().Warn("ggscript: unsupported op skipped", "type", fmt.Sprintf("%T", op))
	}
	return nil
}
