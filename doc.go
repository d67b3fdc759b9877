// Package ggscript interprets drawing scripts: ordered sequences of
// decoded drawing opcodes that build paths, set paints and transforms,
// draw text and sprites, and save or restore graphics state.
//
// # Overview
//
// A Script is replayed by an Interpreter against a Backend. The
// interpreter keeps the graphics state (paints, transform, stroke style,
// text mode, clip) in a RenderContext and synthesizes higher level shapes
// such as rounded rectangles, ellipses and tangent arcs from the path
// primitives every backend provides.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/ggscript"
//	    "github.com/gogpu/ggscript/backends/raster"
//	    "github.com/gogpu/ggscript/paint"
//	    "github.com/gogpu/ggscript/resource"
//	)
//
//	b := raster.New()
//	in := ggscript.New(b, resource.NewRegistry())
//	err := in.Run(ggscript.Script{
//	    Width: 64, Height: 64,
//	    Ops: []ggscript.Op{
//	        ggscript.FillColorOp{Color: paint.RGBA8(255, 0, 0, 255)},
//	        ggscript.DrawRectOp{Width: 10, Height: 10, Fill: true},
//	    },
//	})
//	if err == nil {
//	    err = b.SavePNG("out.png")
//	}
//
// # Backends
//
// Backends register themselves by name in init(), following the
// database/sql driver pattern. Import a backend package for its side
// effect and create instances with NewBackend.
//
//   - raster: CPU rasterizer built on github.com/gogpu/gg
//   - trace: records every call, used for tests and script debugging
//
// # Coordinate System
//
// Origin (0,0) at top-left, X increases right, Y increases down.
// Positive angles turn clockwise on screen.
//
// # Errors
//
// Missing images and fonts turn the opcode that needs them into
// a no-op. Text that fails to shape is skipped. Unbalanced pop_state and
// non-finite numbers stop the pass with an *OpError.
package ggscript
