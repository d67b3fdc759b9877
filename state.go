package ggscript

import (
	"slices"

	"github.com/gogpu/ggscript/geom"
	"github.com/gogpu/ggscript/paint"
	"github.com/gogpu/ggscript/resource"
)

// Default render state values.
const (
	DefaultStrokeWidth = 2.0
	DefaultMiterLimit  = 10.0
	DefaultFontSize    = 10.0
)

// Scissor is a clip rectangle (0,0)-(Width,Height) in the coordinate
// system given by Transform.
type Scissor struct {
	Transform     geom.Matrix
	Width, Height float64
}

// RenderState is the graphics state saved by push_state and restored by
// pop_state.
type RenderState struct {
	FillPaint   paint.Paint
	StrokePaint paint.Paint
	Transform   geom.Matrix

	StrokeWidth float64
	LineCap     LineCap
	LineJoin    LineJoin
	MiterLimit  float64

	FontID       string
	Font         resource.Font
	FontSize     float64
	TextAlign    TextAlign
	TextBaseline TextBaseline

	// Clip lists the scissor rectangles intersected into the clip, oldest
	// first.
	Clip []Scissor
}

// DefaultState returns the state a render pass starts with: black paints,
// identity transform, butt caps, miter joins.
func DefaultState() RenderState {
	return RenderState{
		FillPaint:    paint.NewSolid(paint.Black),
		StrokePaint:  paint.NewSolid(paint.Black),
		Transform:    geom.Identity(),
		StrokeWidth:  DefaultStrokeWidth,
		LineCap:      LineCapButt,
		LineJoin:     LineJoinMiter,
		MiterLimit:   DefaultMiterLimit,
		FontSize:     DefaultFontSize,
		TextAlign:    TextAlignLeft,
		TextBaseline: TextBaselineAlphabetic,
	}
}

// Clone returns a copy of s that shares nothing mutable with it.
func (s RenderState) Clone() RenderState {
	s.Clip = slices.Clone(s.Clip)
	return s
}

// Stroke returns the stroke style of s.
func (s RenderState) Stroke() StrokeStyle {
	return StrokeStyle{
		Width:      s.StrokeWidth,
		Cap:        s.LineCap,
		Join:       s.LineJoin,
		MiterLimit: s.MiterLimit,
	}
}

// StateStack is a LIFO of saved render states.
type StateStack struct {
	states []RenderState
}

// Push saves a copy of s.
func (st *StateStack) Push(s RenderState) {
	st.states = append(st.states, s.Clone())
}

// Pop removes and returns the most recently pushed state.
// It returns ErrStateStackUnderflow when the stack is empty.
func (st *StateStack) Pop() (RenderState, error) {
	n := len(st.states)
	if n == 0 {
		return RenderState{}, ErrStateStackUnderflow
	}
	s := st.states[n-1]
	st.states[n-1] = RenderState{}
	st.states = st.states[:n-1]
	return s, nil
}

// Len returns the number of saved states.
func (st *StateStack) Len() int {
	return len(st.states)
}

// Reset drops every saved state.
func (st *StateStack) Reset() {
	clear(st.states)
	st.states = st.states[:0]
}
